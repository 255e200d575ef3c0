package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/scenario"
	"github.com/milk9111/platformer/sim"
)

const traceWindow = 600

type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	runner     *sim.Runner
	playerSpec prefabs.PlayerSpec
	input      sim.InputSource
	scriptName string

	watcher   *prefabs.Watcher
	clipboard bool

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	status  string

	last time.Time
}

func NewGame(cfg *config.Config, logger *slog.Logger, scriptName string) (*Game, error) {
	prefabs.Dir = cfg.Prefabs.Dir

	g := &Game{cfg: cfg, logger: logger, scriptName: scriptName, input: deviceInput{}}
	if scriptName != "" {
		script, err := scenario.Load(scriptName)
		if err != nil {
			return nil, err
		}
		g.input = script.WithLogger(logger)
	}

	if err := g.reload(); err != nil {
		return nil, err
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboard = true
	}

	if info, err := os.Stat(cfg.Prefabs.Dir); err == nil && info.IsDir() {
		dirs := []string{cfg.Prefabs.Dir}
		if scripts := filepath.Join(cfg.Prefabs.Dir, "scripts"); isDir(scripts) {
			dirs = append(dirs, scripts)
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			logger.Warn("prefab hot reload disabled", "err", err)
		} else {
			g.watcher = w
			logger.Info("watching prefabs", "dirs", dirs)
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// reload rebuilds the simulation from the prefabs on disk.
func (g *Game) reload() error {
	level, err := prefabs.LoadLevelSpec(g.cfg.Prefabs.Level)
	if err != nil {
		return err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	runner, err := sim.NewRunner(sim.Options{
		Level:         *level,
		Player:        *player,
		FixedStep:     g.cfg.FixedStep(),
		MaxFrameDelta: g.cfg.Sim.MaxFrameDelta,
		Input:         g.input,
		Logger:        g.logger,
		TraceLimit:    traceWindow,
	})
	if err != nil {
		return err
	}
	g.runner = runner
	g.playerSpec = *player
	g.last = time.Time{}
	g.logger.Info("level loaded", "level", level.Name, "platforms", len(level.Platforms))
	return nil
}

// retune applies player.yaml to the running controller.
func (g *Game) retune() error {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	if err := g.runner.Reconfigure(player.Movement.Config()); err != nil {
		return err
	}
	g.playerSpec.Movement = player.Movement
	return nil
}

func (g *Game) applyPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		var err error
		switch {
		case prefabs.IsPlayerFile(name):
			err = g.retune()
			g.setStatus("tuning reloaded")
		case filepath.Ext(name) == ".tengo":
			if g.scriptName == "" {
				continue
			}
			var script *scenario.Script
			if script, err = scenario.Load(g.scriptName); err == nil {
				g.input = script.WithLogger(g.logger)
				g.runner.SetInput(g.input)
				g.setStatus("script reloaded")
			}
		default:
			err = g.reload()
			g.setStatus("level reloaded")
		}
		if err != nil {
			g.logger.Error("prefab reload failed", "file", name, "err", err)
			g.setStatus("reload failed: " + err.Error())
		}
	}
}

// copyTuning puts the current tuning on the clipboard as player.yaml.
func (g *Game) copyTuning() error {
	if !g.clipboard {
		return errors.New("clipboard unavailable")
	}
	spec := g.playerSpec
	spec.Movement = prefabs.MovementSpecFrom(g.runner.Player().Config)
	data, err := prefabs.MarshalPlayerSpec(spec)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (g *Game) setStatus(s string) {
	g.status = s
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		g.last = time.Time{}
		return nil
	}

	g.applyPrefabChanges()

	now := time.Now()
	dt := g.cfg.FrameStep()
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	g.runner.Frame(dt)
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.cfg.Debug = !g.cfg.Debug
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x1c, B: 0x24, A: 0xff})

	player := g.runner.Player()
	cam := newCamera(player.Position)
	drawLevel(screen, g.runner.Physics(), cam)
	drawPlayer(screen, player, cam)
	if g.cfg.Debug {
		drawGroundProbe(screen, player, cam)
		drawStateText(screen, player, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), g.status)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
