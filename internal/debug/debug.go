package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"scene-walker/internal/locomotion"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30

	crosshairSize   = 8
	blockerFontSize = 36
	blockerHintSize = 20
	blockerHintGap  = 12
)

var (
	crosshairColor = rl.NewColor(255, 255, 255, 200)
	blockerColor   = rl.NewColor(0, 0, 0, 128)
)

// Debug holds the 2D overlays: FPS and memory counters, the kinematics readout, the
// crosshair and the "click to play" blocker. Counters are off by default.
type Debug struct {
	ShowFPS        bool
	ShowMemAlloc   bool
	ShowKinematics bool
	frameCount     uint32
	lastFpsText    string
	lastMemText    string
	lastMemStats   runtime.MemStats
}

// New returns a Debug system with all counters hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Draw renders any enabled counters. Call after scene and terminal in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw(k *locomotion.Kinematics) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	y := int32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += fpsLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, y)
		y += fpsLineHeight
	}
	// kinematics change every frame, so they are formatted every frame
	if d.ShowKinematics && k != nil {
		drawRight(fmt.Sprintf("v: %.2f  a: %.2f  lat: %.2f  (%s)", k.Speed(), k.Acceleration, k.Lateral, k.Mode()), y)
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, int32(rl.GetScreenWidth())-w-fpsPadding, y, fpsFontSize, rl.Green)
}

// DrawCrosshair marks the screen center, where clicks cast their ray.
func DrawCrosshair() {
	cx := int32(rl.GetScreenWidth()) / 2
	cy := int32(rl.GetScreenHeight()) / 2
	rl.DrawLine(cx-crosshairSize, cy, cx+crosshairSize, cy, crosshairColor)
	rl.DrawLine(cx, cy-crosshairSize, cx, cy+crosshairSize, crosshairColor)
}

// DrawBlocker dims the screen and asks for a click to capture the pointer.
func DrawBlocker() {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, w, h, blockerColor)

	title := "Click to play"
	hint := "Move: WASD / arrows   Sprint: Shift   Console: ESC"
	tw := rl.MeasureText(title, blockerFontSize)
	hw := rl.MeasureText(hint, blockerHintSize)
	y := h/2 - blockerFontSize
	rl.DrawText(title, (w-tw)/2, y, blockerFontSize, rl.White)
	rl.DrawText(hint, (w-hw)/2, y+blockerFontSize+blockerHintGap, blockerHintSize, rl.White)
}
