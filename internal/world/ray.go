package world

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
)

// Ray is a half-line from Origin along the unit vector Dir.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay normalizes dir. A zero dir yields a ray that hits nothing.
func NewRay(origin, dir mgl32.Vec3) Ray {
	if dir.Len() == 0 {
		return Ray{Origin: origin}
	}
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Hit is one surface crossed by a ray.
type Hit struct {
	Entity   ecs.Entity
	Kind     Kind
	Distance float32
	Point    mgl32.Vec3
}

// Intersect returns every object the ray enters within maxDist, nearest first. Boxes the
// origin is inside of are skipped, matching front-face-only picking. maxDist <= 0 means
// unlimited.
func (s *Store) Intersect(r Ray, maxDist float32) []Hit {
	if r.Dir.Len() == 0 {
		return nil
	}
	if maxDist <= 0 {
		maxDist = math32.Inf(1)
	}
	var hits []Hit
	s.Each(func(o Object) bool {
		var t float32
		var ok bool
		if o.Kind == Ground {
			t, ok = hitPlane(r, o.Transform)
		} else {
			t, ok = hitBox(r, o.Min(), o.Max())
		}
		if ok && t <= maxDist {
			hits = append(hits, Hit{Entity: o.Entity, Kind: o.Kind, Distance: t, Point: r.At(t)})
		}
		return true
	})
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// hitBox is the slab test. It reports the entry distance, so a ray starting inside the box
// (entry behind the origin) misses.
func hitBox(r Ray, lo, hi mgl32.Vec3) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			if r.Origin[i] < lo[i] || r.Origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t0 := (lo[i] - r.Origin[i]) * inv
		t1 := (hi[i] - r.Origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math32.Max(tmin, t0)
		tmax = math32.Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmin < 0 {
		return 0, false
	}
	return tmin, true
}

// hitPlane intersects the horizontal plane through tr.Center, bounded by tr.Size on X/Z.
func hitPlane(r Ray, tr Transform) (float32, bool) {
	if r.Dir[1] == 0 {
		return 0, false
	}
	t := (tr.Center[1] - r.Origin[1]) / r.Dir[1]
	if t < 0 {
		return 0, false
	}
	p := r.At(t)
	hx, hz := tr.Size[0]/2, tr.Size[2]/2
	if math32.Abs(p[0]-tr.Center[0]) > hx || math32.Abs(p[2]-tr.Center[2]) > hz {
		return 0, false
	}
	return t, true
}
