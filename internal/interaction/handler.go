// Package interaction turns a click into a placed block: cast from the camera through the
// screen center, take the nearest surface, snap it to the grid and spawn above it.
package interaction

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"scene-walker/internal/logger"
	"scene-walker/internal/world"
)

// Default grid and lift used when Options fields are zero.
const (
	DefaultSnapCell = 10
	DefaultLift     = 10
)

// Raycaster answers ray intersection queries, nearest first.
type Raycaster interface {
	Intersect(r world.Ray, maxDist float32) []world.Hit
}

// Spawner places a block centered at the given point.
type Spawner interface {
	Spawn(center mgl32.Vec3) world.Object
}

// Options tunes snapping.
type Options struct {
	SnapCell float32
	Lift     float32
	// Reach bounds the ray; 0 is unlimited.
	Reach float32
}

// Handler consumes clicks.
type Handler struct {
	rays  Raycaster
	spawn Spawner
	opts  Options
	log   *logger.Logger
}

// New returns a handler. A nil log discards messages.
func New(rays Raycaster, spawn Spawner, opts Options, log *logger.Logger) *Handler {
	if opts.SnapCell <= 0 {
		opts.SnapCell = DefaultSnapCell
	}
	if opts.Lift == 0 {
		opts.Lift = DefaultLift
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{rays: rays, spawn: spawn, opts: opts, log: log}
}

// Click casts from origin toward target (the camera position and look-at point) and spawns
// a block at the snapped nearest hit. It reports whether a block was placed; an empty
// intersection is not an error.
func (h *Handler) Click(origin, target mgl32.Vec3) (world.Object, bool) {
	ray := world.NewRay(origin, target.Sub(origin))
	hits := h.rays.Intersect(ray, h.opts.Reach)
	if len(hits) == 0 {
		h.log.Debug("click hit nothing", zap.Float32s("origin", origin[:]))
		return world.Object{}, false
	}
	p := Snap(hits[0].Point, h.opts.SnapCell)
	p[1] += h.opts.Lift
	obj := h.spawn.Spawn(p)
	h.log.Debug("block placed",
		zap.Float32s("at", p[:]),
		zap.Stringer("on", hits[0].Kind),
		zap.Float32("distance", hits[0].Distance))
	return obj, true
}

// Snap rounds each component to the nearest multiple of cell; halves round up
// (toward +Inf), so -15 snaps to -10.
func Snap(v mgl32.Vec3, cell float32) mgl32.Vec3 {
	return mgl32.Vec3{snap(v[0], cell), snap(v[1], cell), snap(v[2], cell)}
}

func snap(v, cell float32) float32 {
	return math32.Floor(v/cell+0.5) * cell
}
