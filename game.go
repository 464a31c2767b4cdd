package main

import (
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"github.com/milk9111/gungame/ecs/entity"
	"github.com/milk9111/gungame/ecs/system"
	"github.com/milk9111/gungame/levels"
	"github.com/milk9111/gungame/logger"
	"github.com/milk9111/gungame/prefabs"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

type Game struct {
	levelName string
	debug     bool

	world    *ecs.World
	pipeline *system.Pipeline
	watcher  *prefabs.Watcher

	paused    bool
	quit      bool
	ui        *ebitenui.UI
	clipboard bool
}

func NewGame(levelName string, debug, watch bool) (*Game, error) {
	g := &Game{levelName: levelName, debug: debug}

	if watch {
		w, err := prefabs.NewWatcher(prefabs.DiskDir, prefabs.DiskDir+"/scripts")
		if err != nil {
			logger.Log.WithError(err).Warn("prefab watcher disabled")
		} else {
			g.watcher = w
			go g.logWatchErrors()
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Log.WithError(err).Warn("clipboard unavailable, F2 dump disabled")
	} else {
		g.clipboard = true
	}

	if err := g.loadLevel(); err != nil {
		g.Close()
		return nil, err
	}
	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.levelName)
	if err != nil {
		return fmt.Errorf("load level %q: %w", g.levelName, err)
	}

	world := ecs.NewWorld()
	if err := entity.LoadLevel(world, lvl); err != nil {
		return err
	}
	var changes <-chan string
	if g.watcher != nil {
		changes = g.watcher.Events
	}
	g.pipeline = system.Install(world, false, changes)
	g.pipeline.Render.Debug = g.debug
	g.world = world

	logger.Log.WithField("level", lvl.Name).Info("level loaded")
	return nil
}

// Restart rebuilds the current level from scratch.
func (g *Game) Restart() {
	if err := g.loadLevel(); err != nil {
		logger.Log.WithError(err).Error("restart level")
	}
	g.paused = false
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) logWatchErrors() {
	for err := range g.watcher.Errors {
		logger.Log.WithError(err).Warn("prefab watcher")
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.pipeline.Render.Debug = g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		if err := g.copySnapshots(); err != nil {
			logger.Log.WithError(err).Warn("copy agent snapshots")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.Restart()
		return nil
	}

	g.world.Update()

	if _, ok := g.world.First(component.PlayerTagComponent.Kind()); !ok {
		logger.Log.Info("player died, restarting level")
		g.Restart()
	}
	return nil
}

var errNoClipboard = errors.New("clipboard not initialized")

// copySnapshots puts a YAML dump of every agent on the clipboard.
func (g *Game) copySnapshots() error {
	if !g.clipboard {
		return errNoClipboard
	}
	data, err := yaml.Marshal(system.Snapshots(g.world))
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	logger.Log.WithField("bytes", len(data)).Info("agent snapshots copied")
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  F1 debug  F2 copy agents  F5 restart", ebiten.ActualFPS()))
	}
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
