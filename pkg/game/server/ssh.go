// Package server lets remote terminals explore a dungeon over SSH. Each
// connection gets its own game and viewer.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync/atomic"

	"github.com/gliderlabs/ssh"

	engineinput "crawlview/pkg/engine/input"
	"crawlview/pkg/game/config"
	"crawlview/pkg/game/renderer"
	"crawlview/pkg/game/renderer/tui"
	"crawlview/pkg/game/state"
)

// Loader creates the game a new session explores
type Loader func() (*state.Game, error)

// Server wraps the SSH listener. It implements renderer.Frontend.
type Server struct {
	cfg    *config.Config
	load   Loader
	srv    *ssh.Server
	active atomic.Int64
}

// New creates an SSH server for cfg.SSHAddr. Without a host key file an
// ephemeral key is generated.
func New(cfg *config.Config, load Loader) (*Server, error) {
	s := &Server{cfg: cfg, load: load}
	s.srv = &ssh.Server{
		Addr:    cfg.SSHAddr,
		Handler: s.handleSession,
	}
	if cfg.SSHHostKey != "" {
		if err := s.srv.SetOption(ssh.HostKeyFile(cfg.SSHHostKey)); err != nil {
			return nil, fmt.Errorf("set host key: %w", err)
		}
	}
	return s, nil
}

// Active returns the number of connected sessions
func (s *Server) Active() int {
	return int(s.active.Load())
}

// Run listens on the configured address until ctx ends
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.SSHAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts sessions on ln until ctx ends
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		s.srv.Close()
	}()

	slog.Info("SSH server listening", "addr", ln.Addr().String())
	err := s.srv.Serve(ln)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		sess.Exit(1)
		return
	}

	user := sess.User()
	if user == "" {
		user = "anonymous"
	}
	remote := sess.RemoteAddr().String()

	g, err := s.load()
	if err != nil {
		slog.Error("loading dungeon for session", "user", user, "err", err)
		fmt.Fprintln(sess, "Error: could not load dungeon")
		sess.Exit(1)
		return
	}

	s.active.Add(1)
	slog.Info("viewer connected", "user", user, "remote", remote, "active", s.Active())
	defer func() {
		s.active.Add(-1)
		slog.Info("viewer disconnected", "user", user, "remote", remote, "active", s.Active())
	}()

	viewer := renderer.New(g, s.cfg)
	defer viewer.Close()

	ctx := sess.Context()

	keys := make(chan []byte, 16)
	go func() {
		defer close(keys)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Debug("session read", "user", user, "err", err)
				}
				return
			}
			select {
			case keys <- append([]byte(nil), buf[:n]...):
			case <-ctx.Done():
				return
			}
		}
	}()

	sizes := make(chan tui.Size, 1)
	go func() {
		for win := range winCh {
			select {
			case sizes <- tui.Size{Cols: win.Width, Rows: win.Height}:
			case <-ctx.Done():
				return
			}
		}
	}()

	size := tui.Size{Cols: ptyReq.Window.Width, Rows: ptyReq.Window.Height}
	session := tui.NewSession(viewer, sess, engineinput.DeviceSSH, size)
	if err := session.Run(ctx, keys, sizes); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("session ended", "user", user, "err", err)
	}
}
