// Package game implements the viewer's frame loop.
package game

import (
	"context"
	"fmt"
	stdmath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ascii3d/internal/config"
	"github.com/Faultbox/ascii3d/internal/engine/camera"
	"github.com/Faultbox/ascii3d/internal/engine/display"
	"github.com/Faultbox/ascii3d/internal/engine/input"
	"github.com/Faultbox/ascii3d/internal/engine/raycast"
	"github.com/Faultbox/ascii3d/internal/engine/render"
	"github.com/Faultbox/ascii3d/internal/logger"
	"github.com/Faultbox/ascii3d/internal/world"
	"github.com/Faultbox/ascii3d/pkg/math"
)

var posInf = stdmath.Inf(1)

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithLogger replaces the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) { g.log = l }
}

// Game is the frame loop of one map.
type Game struct {
	cfg      *config.Config
	grid     *world.Grid
	dev      display.Device
	camera   *camera.FirstPersonCamera
	renderer *render.Renderer
	input    *input.Input
	clock    Clock
	log      *zap.Logger

	state       State
	frame       FrameContext
	diag        render.Diagnostics
	showFPS     bool
	showMinimap bool
	showDebug   bool

	fpsFrames int
	fpsSince  time.Time
	viewW     int
	viewH     int
}

// New creates a game on grid drawing to dev. The camera starts on the
// grid's spawn point facing cfg.Camera.Heading.
func New(cfg *config.Config, grid *world.Grid, dev display.Device, opts ...Option) (*Game, error) {
	palette, err := render.NewPalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("building palette: %w", err)
	}
	spawn, err := grid.SpawnPoint()
	if err != nil {
		return nil, fmt.Errorf("placing camera: %w", err)
	}
	cam, err := camera.NewWithHeading(spawn, cfg.Camera.Heading, cfg.Camera.FOV)
	if err != nil {
		return nil, fmt.Errorf("creating camera: %w", err)
	}

	g := &Game{
		cfg:      cfg,
		grid:     grid,
		dev:      dev,
		camera:   cam,
		renderer: render.New(dev, palette, renderOptions(cfg.Graphics)),
		input:    input.New(),
		clock:    systemClock{},
		log:      logger.Named("game"),

		state:       StateRunning,
		showFPS:     cfg.Overlay.ShowFPS,
		showMinimap: cfg.Overlay.ShowMinimap,
		showDebug:   cfg.Overlay.ShowDebug,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func renderOptions(gc config.GraphicsConfig) render.Options {
	opts := render.DefaultOptions()
	opts.Margin = gc.Margin
	if r := []rune(gc.WallGlyph); len(r) == 1 {
		opts.WallGlyph = r[0]
	}
	if r := []rune(gc.ShadeGlyph); len(r) == 1 {
		opts.ShadeGlyph = r[0]
	}
	return opts
}

// Camera returns the player camera.
func (g *Game) Camera() *camera.FirstPersonCamera {
	return g.camera
}

// State returns the loop state.
func (g *Game) State() State {
	return g.state
}

// Frames returns the number of completed frames.
func (g *Game) Frames() int {
	return g.frame.Index
}

// Run drives frames until the player quits, the frame limit is reached, ctx
// is done, or a frame fails.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("frame loop started",
		zap.String("map", g.grid.Name()),
		zap.Int("width", g.grid.Width()),
		zap.Int("height", g.grid.Height()),
		zap.Stringer("camera", g.camera),
	)

	for g.state == StateRunning {
		if err := ctx.Err(); err != nil {
			g.log.Info("frame loop interrupted", zap.Error(err))
			g.state = StateTerminated
			break
		}

		fc := nextFrame(g.frame, g.clock.Now(), g.cfg.Camera.MaxDelta)
		if err := g.runFrame(fc); err != nil {
			g.state = StateTerminated
			g.log.Error("frame failed", zap.Int("frame", fc.Index), zap.Error(err))
			return fmt.Errorf("frame %d: %w", fc.Index, err)
		}
		g.frame = fc

		if limit := g.cfg.Game.MaxFrames; limit > 0 && fc.Index >= limit {
			g.state = StateTerminated
		}
		if g.state == StateRunning {
			g.limitRate(fc)
		}
	}

	g.log.Info("frame loop stopped", zap.Int("frames", g.frame.Index))
	return nil
}

func (g *Game) runFrame(fc FrameContext) error {
	g.trackRate(fc)

	t0 := g.clock.Now()
	if err := g.castPhase(fc); err != nil {
		return err
	}
	t1 := g.clock.Now()
	if err := g.renderPhase(fc); err != nil {
		return err
	}
	t2 := g.clock.Now()
	g.inputPhase(fc)
	t3 := g.clock.Now()

	g.diag = render.Diagnostics{Cast: t1.Sub(t0), Draw: t2.Sub(t1), Input: t3.Sub(t2)}
	return nil
}

// castPhase casts one ray per view column and draws the strips.
func (g *Game) castPhase(fc FrameContext) error {
	g.renderer.Clear()

	w, h := g.renderer.ViewSize()
	if w != g.viewW || h != g.viewH {
		g.log.Debug("view size changed", zap.Int("frame", fc.Index), zap.Int("width", w), zap.Int("height", h))
		g.viewW, g.viewH = w, h
	}

	for x := 0; x < w; x++ {
		hit, err := raycast.CastColumn(g.camera, g.grid, x, w)
		if err != nil {
			return fmt.Errorf("casting column %d: %w", x, err)
		}
		g.renderer.DrawHit(x, hit)
	}
	return nil
}

// renderPhase draws the overlays and presents the frame.
func (g *Game) renderPhase(fc FrameContext) error {
	if g.showFPS {
		g.renderer.DrawFPS(fc.FPS())
	}
	if g.showMinimap {
		g.renderer.DrawMinimap(g.grid, g.camera.Position)
	}
	if g.showDebug {
		g.renderer.DrawDebug(g.diag.String())
	}
	if err := g.renderer.Flush(); err != nil {
		return fmt.Errorf("flushing display: %w", err)
	}
	return nil
}

// inputPhase drains every pending event and applies it with this frame's
// speeds.
func (g *Game) inputPhase(fc FrameContext) {
	if g.input.Update(g.dev) {
		g.log.Info("quit requested", zap.Int("frame", fc.Index))
		g.state = StateTerminated
	}

	move := g.cfg.Camera.MoveSpeed * fc.Seconds()
	turn := g.cfg.Camera.RotationSpeed * fc.Seconds()

	if ev, ok := g.input.LastResize(); ok {
		g.log.Debug("terminal resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))
	}
	for _, ev := range g.input.Events() {
		if ev.Type == input.EventKey {
			g.apply(ev.Action, move, turn)
		}
	}
}

func (g *Game) apply(a input.Action, move, turn float64) {
	switch a {
	case input.ActionForward:
		g.move(1, move)
	case input.ActionBackward:
		g.move(-1, move)
	case input.ActionRotateLeft:
		g.camera.RotateLeft(turn)
	case input.ActionRotateRight:
		g.camera.RotateRight(turn)
	case input.ActionToggleMinimap:
		g.showMinimap = !g.showMinimap
	case input.ActionToggleDebug:
		g.showDebug = !g.showDebug
	}
}

// move displaces the camera distance cells along the view direction. Each
// axis moves in full or not at all.
func (g *Game) move(sign, distance float64) {
	g.camera.Position = g.grid.Step(g.camera.Position, g.camera.Direction, sign, distance)
}

func (g *Game) trackRate(fc FrameContext) {
	if g.fpsSince.IsZero() {
		g.fpsSince = fc.Start
	}
	g.fpsFrames++
	if elapsed := fc.Start.Sub(g.fpsSince); elapsed >= time.Second {
		g.log.Debug("fps",
			zap.Float64("fps", float64(g.fpsFrames)/elapsed.Seconds()),
			zap.Duration("delta", fc.Delta),
			zap.Stringer("camera", g.camera),
		)
		g.fpsFrames = 0
		g.fpsSince = fc.Start
	}
}

// limitRate sleeps out the rest of the frame budget when an fps limit is set.
func (g *Game) limitRate(fc FrameContext) {
	limit := g.cfg.Graphics.FPSLimit
	if limit <= 0 {
		return
	}
	budget := time.Second / time.Duration(limit)
	if spent := g.clock.Now().Sub(fc.Start); spent < budget {
		g.clock.Sleep(budget - spent)
	}
}

// Position returns the camera position.
func (g *Game) Position() math.Vec2 {
	return g.camera.Position
}
