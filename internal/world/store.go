// Package world holds the scene's static geometry: the scattered block field, the ground
// plane, the optional shader centerpiece and any blocks placed at runtime. Objects live in
// an ark ECS world so the renderer and the ray caster walk the same component arrays.
package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"
)

// Kind tags what an object is for.
type Kind uint8

const (
	// Scattered blocks come from the builder's random layout.
	Scattered Kind = iota
	// Spawned blocks were placed by a click.
	Spawned
	// Centerpiece is the cube drawn with the animated pattern shader.
	Centerpiece
	// Ground is the floor plane; its Size.Y is zero.
	Ground
)

func (k Kind) String() string {
	switch k {
	case Scattered:
		return "scattered"
	case Spawned:
		return "spawned"
	case Centerpiece:
		return "centerpiece"
	case Ground:
		return "ground"
	}
	return "unknown"
}

// Transform places an axis-aligned box by its center and full edge lengths.
type Transform struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

// Min returns the box's lower corner.
func (t Transform) Min() mgl32.Vec3 {
	return t.Center.Sub(t.Size.Mul(0.5))
}

// Max returns the box's upper corner.
func (t Transform) Max() mgl32.Vec3 {
	return t.Center.Add(t.Size.Mul(0.5))
}

// Shape carries the object's kind.
type Shape struct {
	Kind Kind
}

// Object is a read-only snapshot of one stored entity.
type Object struct {
	Entity ecs.Entity
	Kind   Kind
	Transform
}

// Store owns the ECS world. It is not safe for concurrent use; the render goroutine
// is its only writer.
type Store struct {
	world  ecs.World
	mapper *ecs.Map2[Transform, Shape]
	filter *ecs.Filter2[Transform, Shape]
	counts map[Kind]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{world: ecs.NewWorld(), counts: make(map[Kind]int)}
	s.mapper = ecs.NewMap2[Transform, Shape](&s.world)
	s.filter = ecs.NewFilter2[Transform, Shape](&s.world)
	return s
}

// Add stores a box and returns its entity.
func (s *Store) Add(kind Kind, center, size mgl32.Vec3) ecs.Entity {
	e := s.mapper.NewEntity(&Transform{Center: center, Size: size}, &Shape{Kind: kind})
	s.counts[kind]++
	return e
}

// Remove deletes e if it is still alive.
func (s *Store) Remove(e ecs.Entity) bool {
	if !s.world.Alive(e) {
		return false
	}
	_, shape := s.mapper.Get(e)
	s.counts[shape.Kind]--
	s.world.RemoveEntity(e)
	return true
}

// Get returns the object behind e.
func (s *Store) Get(e ecs.Entity) (Object, bool) {
	if !s.world.Alive(e) {
		return Object{}, false
	}
	tr, shape := s.mapper.Get(e)
	return Object{Entity: e, Kind: shape.Kind, Transform: *tr}, true
}

// Count reports how many objects of kind are stored.
func (s *Store) Count(kind Kind) int {
	return s.counts[kind]
}

// Len reports the total number of stored objects.
func (s *Store) Len() int {
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// Each calls fn for every object until fn returns false.
func (s *Store) Each(fn func(Object) bool) {
	q := s.filter.Query()
	for q.Next() {
		tr, shape := q.Get()
		if !fn(Object{Entity: q.Entity(), Kind: shape.Kind, Transform: *tr}) {
			q.Close()
			return
		}
	}
}

// Objects returns a snapshot of every object of kind.
func (s *Store) Objects(kind Kind) []Object {
	out := make([]Object, 0, s.counts[kind])
	s.Each(func(o Object) bool {
		if o.Kind == kind {
			out = append(out, o)
		}
		return true
	})
	return out
}
