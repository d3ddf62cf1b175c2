// Package pointer provides repulsor sources for the steering simulator.
//
// All sources satisfy steer.RepulsorSource. Positions live on the reference
// plane z=0 unless set explicitly.
package pointer

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Fixed is a repulsor that never moves.
type Fixed r3.Vec

// Repulsor implements steer.RepulsorSource.
func (f Fixed) Repulsor() r3.Vec { return r3.Vec(f) }

// Shared holds a repulsor written asynchronously, e.g. by an input goroutine,
// and read by the tick loop. Each read returns one consistent position.
type Shared struct {
	mu  sync.RWMutex
	pos r3.Vec
}

// NewShared returns a Shared starting at initial.
func NewShared(initial r3.Vec) *Shared {
	return &Shared{pos: initial}
}

// Set replaces the current position.
func (s *Shared) Set(p r3.Vec) {
	s.mu.Lock()
	s.pos = p
	s.mu.Unlock()
}

// SetFromRay projects a pick ray onto the plane z=0 and stores the hit.
// Rays parallel to the plane leave the position unchanged and return false.
func (s *Shared) SetFromRay(origin, dir r3.Vec) bool {
	p, ok := ProjectRay(origin, dir)
	if ok {
		s.Set(p)
	}
	return ok
}

// Repulsor implements steer.RepulsorSource.
func (s *Shared) Repulsor() r3.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pos
}

// ProjectRay intersects the ray origin + k*dir with the plane z=0,
// k = -origin.Z / dir.Z. ok is false when dir is parallel to the plane.
func ProjectRay(origin, dir r3.Vec) (hit r3.Vec, ok bool) {
	if dir.Z == 0 {
		return r3.Vec{}, false
	}
	k := -origin.Z / dir.Z
	hit = r3.Add(origin, r3.Scale(k, dir))
	hit.Z = 0 // exact plane
	return hit, true
}
