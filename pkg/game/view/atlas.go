package view

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// TileID names one texture in the atlas
type TileID int

const (
	TileFloorClose TileID = iota
	TileFloorFar
	TileCeilingClose
	TileCeilingFar
	TileWallFront
	TileWallSide
	TileNarrowCorridor
	TileBackdrop
	TileDoor
	TileDoorLocked
	TileDoorSide
	TileGlow
	tileCount
)

var tileNames = [tileCount]string{
	TileFloorClose:     "floor_close",
	TileFloorFar:       "floor_far",
	TileCeilingClose:   "ceiling_close",
	TileCeilingFar:     "ceiling_far",
	TileWallFront:      "wall_front",
	TileWallSide:       "wall_side",
	TileNarrowCorridor: "narrow_corridor",
	TileBackdrop:       "backdrop",
	TileDoor:           "door",
	TileDoorLocked:     "door_locked",
	TileDoorSide:       "door_side",
	TileGlow:           "glow",
}

// String returns the file stem used for the tile
func (id TileID) String() string {
	if id < 0 || id >= tileCount {
		return fmt.Sprintf("tile(%d)", int(id))
	}
	return tileNames[id]
}

// AllTiles lists every tile id
func AllTiles() []TileID {
	out := make([]TileID, 0, tileCount)
	for id := TileID(0); id < tileCount; id++ {
		out = append(out, id)
	}
	return out
}

// TileSource hands out textures. A missing texture is reported with ok=false
// and the caller skips the draw.
type TileSource interface {
	Tile(id TileID) (img image.Image, ok bool)
}

// Atlas is a TileSource whose textures may arrive asynchronously. It is owned
// by a single renderer; nothing about it is process-wide.
type Atlas struct {
	mu     sync.RWMutex
	tiles  map[TileID]image.Image
	failed map[TileID]error
	onLoad func(TileID)

	loads errgroup.Group
}

// NewAtlas creates an empty atlas
func NewAtlas() *Atlas {
	return &Atlas{
		tiles:  make(map[TileID]image.Image),
		failed: make(map[TileID]error),
	}
}

// Tile implements TileSource
func (a *Atlas) Tile(id TileID) (image.Image, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	img, ok := a.tiles[id]
	return img, ok
}

// Set installs a texture, replacing any previous one
func (a *Atlas) Set(id TileID, img image.Image) {
	a.mu.Lock()
	a.tiles[id] = img
	delete(a.failed, id)
	fn := a.onLoad
	a.mu.Unlock()

	if fn != nil {
		fn(id)
	}
}

// OnLoad registers a callback run after each texture is installed. It may
// be called from a loader goroutine.
func (a *Atlas) OnLoad(fn func(TileID)) {
	a.mu.Lock()
	a.onLoad = fn
	a.mu.Unlock()
}

// Failed returns the load error recorded for a tile, if any
func (a *Atlas) Failed(id TileID) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.failed[id]
}

// LoadDir starts loading <dir>/<tile>.png for every tile in the background.
// Files that do not exist are ignored; whatever is already in the atlas
// keeps being used until a replacement has decoded.
func (a *Atlas) LoadDir(dir string) {
	for _, id := range AllTiles() {
		path := filepath.Join(dir, id.String()+".png")
		a.loads.Go(func() error {
			img, err := loadImage(path)
			switch {
			case errors.Is(err, os.ErrNotExist):
				slog.Debug("texture not present", "tile", id, "path", path)
			case err != nil:
				slog.Warn("texture load failed", "tile", id, "path", path, "err", err)
				a.mu.Lock()
				a.failed[id] = err
				a.mu.Unlock()
			default:
				a.Set(id, img)
			}
			return nil
		})
	}
}

// Wait blocks until every pending load has finished
func (a *Atlas) Wait() {
	_ = a.loads.Wait()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
