// Package graphics is the only package that talks to raylib. It opens the window, turns
// raylib key and mouse state into the controller's events, moves the camera and draws the
// scene built by the world package.
package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-walker/internal/config"
)

// Window owns the raylib window and GL context. All methods must run on the goroutine that
// called Open.
type Window struct {
	cfg    config.WindowConfig
	width  int32
	height int32
}

// Open creates the window. It is resizable; ESC is left to the console and the window
// closes through its close button.
func Open(cfg config.WindowConfig) *Window {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)

	w, h := cfg.Width, cfg.Height
	rl.InitWindow(w, h, cfg.Title)
	if cfg.Fullscreen {
		m := rl.GetCurrentMonitor()
		w, h = int32(rl.GetMonitorWidth(m)), int32(rl.GetMonitorHeight(m))
		rl.SetWindowSize(int(w), int(h))
	}
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(cfg.TargetFPS)
	return &Window{cfg: cfg, width: w, height: h}
}

// NextFrame reports whether another frame should run. Frame pacing to TargetFPS happens in
// EndDrawing at the end of the previous frame, so the call returns immediately.
func (w *Window) NextFrame() bool {
	return !rl.WindowShouldClose()
}

// Size returns the current drawable size.
func (w *Window) Size() (int32, int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

// Resized reports a size change since the last frame and the new size.
func (w *Window) Resized() (int32, int32, bool) {
	if !rl.IsWindowResized() {
		return w.width, w.height, false
	}
	w.width, w.height = w.Size()
	return w.width, w.height, true
}

// Close destroys the window and GL context.
func (w *Window) Close() {
	rl.CloseWindow()
}

// Frame draws one frame: clear to bg, then draw3D inside the camera's 3D mode, then the 2D
// overlay.
func Frame(bg rl.Color, cam rl.Camera3D, draw3D, overlay func()) {
	rl.BeginDrawing()
	rl.ClearBackground(bg)
	rl.BeginMode3D(cam)
	draw3D()
	rl.EndMode3D()
	overlay()
	rl.EndDrawing()
}

// Color converts a config colour to an opaque raylib colour.
func Color(c config.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
