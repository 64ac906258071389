package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"scene-walker/internal/assets"
	"scene-walker/internal/commands"
	"scene-walker/internal/config"
	"scene-walker/internal/debug"
	"scene-walker/internal/graphics"
	"scene-walker/internal/interaction"
	"scene-walker/internal/locomotion"
	"scene-walker/internal/logger"
	"scene-walker/internal/loop"
	"scene-walker/internal/session"
	"scene-walker/internal/shader"
	"scene-walker/internal/terminal"
	"scene-walker/internal/world"
)

// game wires the controller packages to the window. Everything here runs on the main
// goroutine except asset fetches and the shader watcher.
type game struct {
	cfg config.Config
	log *logger.Logger

	win      *graphics.Window
	rig      *graphics.Rig
	renderer *graphics.Renderer
	scene    *world.Scene
	session  *session.Session
	clicks   *interaction.Handler
	uniforms *shader.Uniforms
	loader   *assets.Loader
	reloads  <-chan string
	term     *terminal.Terminal
	hud      *debug.Debug
	driver   *loop.Driver
}

func newGame(ctx context.Context, cfg config.Config, log *logger.Logger) (*game, error) {
	scene, err := world.Build(cfg.World)
	if err != nil {
		return nil, err
	}
	log.Info("world built", zap.Int64("seed", scene.Seed), zap.Int("blocks", scene.Blocks()))

	sess, err := session.New(cfg.Movement)
	if err != nil {
		return nil, err
	}

	g := &game{cfg: cfg, log: log, scene: scene, session: sess}
	g.win = graphics.Open(cfg.Window)
	w, h := g.win.Size()
	g.uniforms = shader.NewUniforms(w, h, cfg.Shader.ResyncResolution)

	shaderDir := existingDir(cfg.Shader.Dir)
	g.renderer = graphics.NewRenderer(scene, shader.NewLibrary(shaderDir), g.uniforms, cfg.Shader.Name, log)
	g.rig = graphics.NewRig(cfg.Camera)
	g.clicks = interaction.New(scene.Store, scene, interaction.Options{
		SnapCell: cfg.Interaction.SnapCell,
		Lift:     cfg.Interaction.Lift,
		Reach:    cfg.Interaction.Reach,
	}, log)

	g.loader = assets.NewLoader(ctx, log)
	g.loadAssets()

	if cfg.Shader.HotReload && shaderDir != "" {
		ch, err := shader.Watch(ctx, shaderDir, log)
		if err != nil {
			log.Warn("shader hot reload disabled", zap.Error(err))
		} else {
			g.reloads = ch
			log.Info("watching shaders", zap.String("dir", shaderDir))
		}
	}

	reg := commands.NewRegistry()
	commands.RegisterScene(reg, g, log.Log)
	g.term = terminal.New(log, reg)
	g.term.OnToggle = func(open bool) {
		if open {
			g.rig.Unlock()
			g.session.SetActive(false)
		}
	}

	g.hud = debug.New()
	g.SetFPSVisible(cfg.Window.ShowFPS)

	g.driver = loop.NewDriver(g.win, nil, loop.Hooks{
		Poll:      g.poll,
		Uniforms:  g.pushUniforms,
		Integrate: g.integrate,
		Render:    g.render,
	})
	return g, nil
}

// assetRoots are the extra directories asset paths are tried against, so the binary works
// from the repo root, from cmd/walker, or installed next to its assets.
func assetRoots() []string {
	roots := []string{filepath.Join("..", "..")}
	if exe, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Dir(exe))
	}
	return roots
}

func existingDir(dir string) string {
	if dir == "" {
		return ""
	}
	for _, c := range append([]string{dir}, joinAll(assetRoots(), dir)...) {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	return ""
}

func joinAll(roots []string, p string) []string {
	out := make([]string, len(roots))
	for i, r := range roots {
		out[i] = filepath.Join(r, p)
	}
	return out
}

// loadAssets starts the optional sky and model loads. Failures are logged by the loader and
// the scene runs without them.
func (g *game) loadAssets() {
	env := g.scene.Env
	if sky := env.Sky; sky != nil {
		g.loader.Load("sky", func(ctx context.Context) (any, error) {
			path, err := assets.Resolve(sky.Texture, assetRoots()...)
			if err != nil {
				return nil, err
			}
			return assets.LoadImage(path, sky.MaxTexSize)
		}, func(v any) error {
			return g.renderer.SetSky(v.(*assets.Image))
		})
	}
	if model := env.Model; model != nil {
		g.loader.Load("model", func(ctx context.Context) (any, error) {
			return assets.Resolve(model.Path, assetRoots()...)
		}, func(v any) error {
			return g.renderer.SetModel(v.(string))
		})
	}
}

// Run blocks until the window closes or ctx is cancelled.
func (g *game) Run(ctx context.Context) error {
	err := g.driver.Run(ctx)
	g.log.Info("stopped", zap.Uint64("frames", g.driver.Frames()))
	return err
}

// Close releases the window after the loop has ended.
func (g *game) Close() {
	g.loader.Wait()
	g.renderer.Close()
	g.win.Close()
}

func (g *game) poll(loop.Frame) {
	g.term.Update()
	if g.rig.PointerLock() && !g.term.IsOpen() {
		switch {
		case g.rig.Locked() && !graphics.Focused():
			g.rig.Unlock()
			g.session.SetActive(false)
		case !g.rig.Locked() && graphics.LeftClick():
			g.rig.Lock()
			g.session.Resume(graphics.HeldKeys())
		case g.rig.Locked() && graphics.LeftClick() && g.cfg.Interaction.ClickSpawn:
			g.clicks.Click(g.rig.Position(), g.rig.Target())
		}
		graphics.PollKeys(g.session)
	}

	if w, h, ok := g.win.Resized(); ok && g.uniforms.Resize(w, h) {
		g.log.Debug("resolution resynced", zap.Int32("width", w), zap.Int32("height", h))
	}
	g.loader.Poll()
	if g.reloads != nil {
		for _, name := range shader.Drain(g.reloads) {
			g.renderer.Reload(name)
		}
	}
}

func (g *game) pushUniforms(f loop.Frame) {
	g.uniforms.SetTime(f.Time)
	g.renderer.PushUniforms()
}

func (g *game) integrate(f loop.Frame) {
	g.session.Frame(g.rig, f.Delta)
	g.rig.Update()
}

func (g *game) render(loop.Frame) {
	graphics.Frame(graphics.Color(g.scene.Env.Background), g.rig.Camera, func() {
		g.renderer.Draw(g.rig.Camera)
	}, g.overlay)
}

func (g *game) overlay() {
	if g.rig.PointerLock() {
		if g.rig.Locked() {
			debug.DrawCrosshair()
		} else if !g.term.IsOpen() {
			debug.DrawBlocker()
		}
	}
	g.hud.Draw(g.session.Kinematics())
	g.term.Draw()
}

// SetFPSVisible implements commands.Scene.
func (g *game) SetFPSVisible(on bool) {
	g.hud.SetShowFPS(on)
	g.hud.ShowKinematics = on && g.rig.PointerLock()
}

// Spawn implements commands.Scene.
func (g *game) Spawn(at mgl32.Vec3) {
	g.scene.Spawn(at)
}

// Teleport implements commands.Scene.
func (g *game) Teleport(to mgl32.Vec3) {
	g.rig.Teleport(to)
}

// SetFog implements commands.Scene.
func (g *game) SetFog(near, far float32) error {
	return g.renderer.SetFog(near, far)
}

// Fog implements commands.Scene.
func (g *game) Fog() (float32, float32) {
	return g.renderer.Fog()
}

// BlockCount implements commands.Scene.
func (g *game) BlockCount() int {
	return g.scene.Blocks()
}

// SetAcceleration implements commands.Scene.
func (g *game) SetAcceleration(mode string) error {
	m, err := locomotion.ParseMode(mode)
	if err != nil {
		return err
	}
	g.session.SetMode(m)
	return nil
}
