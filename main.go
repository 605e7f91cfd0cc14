package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leonelquinteros/gotext"

	"crawlview/pkg/engine/terminal"
	"crawlview/pkg/game/config"
	"crawlview/pkg/game/devtools"
	"crawlview/pkg/game/generator"
	"crawlview/pkg/game/renderer"
	"crawlview/pkg/game/renderer/ebiten"
	"crawlview/pkg/game/renderer/tui"
	"crawlview/pkg/game/server"
	"crawlview/pkg/game/state"
	"crawlview/pkg/game/view"
)

func main() {
	mode := flag.String("mode", "window", "front-end to run: window, tty or ssh")
	dungeonPath := flag.String("dungeon", "dungeons/crypt.yaml", "dungeon file to explore")
	configPath := flag.String("config", "", "config file (defaults to the user config dir)")
	localeDir := flag.String("locales", "locales", "directory holding message catalogues")
	screenshot := flag.String("screenshot", "", "render the start view to this PNG and exit")
	dump := flag.Bool("dump", false, "print the derived walls of the dungeon and exit")
	generate := flag.Bool("generate", false, "explore a generated dungeon instead of a file")
	seed := flag.Int64("seed", 0, "seed for -generate (0 picks one from the clock)")
	export := flag.String("export", "", "write the dungeon to this file and exit")
	flag.Parse()

	opts := options{
		mode:       *mode,
		dungeon:    *dungeonPath,
		config:     *configPath,
		locales:    *localeDir,
		screenshot: *screenshot,
		dump:       *dump,
		generate:   *generate,
		seed:       *seed,
		export:     *export,
	}
	if err := run(opts); err != nil {
		slog.Error("crawlview failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	config.SetCurrent(cfg)
	return cfg, nil
}

type options struct {
	mode, dungeon, config, locales string
	screenshot, export             string
	dump, generate                 bool
	seed                           int64
}

// loader returns how each viewer gets its dungeon
func (o options) loader() server.Loader {
	if !o.generate {
		return func() (*state.Game, error) { return state.LoadDungeon(o.dungeon) }
	}
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("generating dungeon", "seed", seed)
	return func() (*state.Game, error) { return generator.FromSeed(seed), nil }
}

func exportDungeon(path string, g *state.Game) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := state.WriteDungeon(f, g); err != nil {
		return err
	}
	return f.Close()
}

func run(o options) error {
	cfg, err := loadConfig(o.config)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	gotext.Configure(o.locales, cfg.Locale, "default")

	load := o.loader()
	g, err := load()
	if err != nil {
		return err
	}

	switch {
	case o.export != "":
		return exportDungeon(o.export, g)
	case o.dump:
		return devtools.DumpPerimeter(os.Stdout, g, terminal.IsInteractive())
	case o.screenshot != "":
		scene := view.NewScene(view.NewProceduralAtlas())
		scene.Depth, scene.Inset = cfg.MaxDepth, cfg.InsetFactor
		return devtools.SaveScreenshot(o.screenshot, g, scene, cfg.WindowWidth, cfg.WindowHeight)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var front renderer.Frontend
	switch o.mode {
	case "window":
		v := renderer.New(g, cfg)
		defer v.Close()
		front = ebiten.New(v)
	case "tty":
		v := renderer.New(g, cfg)
		defer v.Close()
		front = tui.NewLocal(v)
	case "ssh":
		srv, err := server.New(cfg, load)
		if err != nil {
			return err
		}
		front = srv
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}

	if err := front.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	if o.mode != "ssh" {
		fmt.Println(gotext.Get("GOODBYE"))
	}
	return nil
}
