package easing

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/glide/ecs"
)

// EasingState holds the snapshots of one channel of one entity.
//
// Start and End are only meaningful when the matching Has flag is set, and the
// channel only blends when both are. Velocities are tangents in units (or radians for
// rotation, as a scaled axis) per second at each snapshot.
type EasingState[V comparable] struct {
	Start    V
	End      V
	HasStart bool
	HasEnd   bool

	StartVelocity    mgl64.Vec3
	EndVelocity      mgl64.Vec3
	HasStartVelocity bool
	HasEndVelocity   bool

	lastObserved V
	observed     bool

	// value at the previous window close and the velocity measured over that window,
	// used when no external velocity is available.
	prev            V
	hasPrev         bool
	lastVelocity    mgl64.Vec3
	hasLastVelocity bool
}

// SetStart records the value at window open.
func (s *EasingState[V]) SetStart(v V) {
	s.Start = v
	s.HasStart = true
}

// SetEnd records the value at window close.
func (s *EasingState[V]) SetEnd(v V) {
	s.End = v
	s.HasEnd = true
}

// Reset clears both snapshots and their velocities. The channel passes through until
// both are captured again.
func (s *EasingState[V]) Reset() {
	var zero V
	s.Start, s.End = zero, zero
	s.HasStart, s.HasEnd = false, false
	s.StartVelocity, s.EndVelocity = mgl64.Vec3{}, mgl64.Vec3{}
	s.HasStartVelocity, s.HasEndVelocity = false, false
}

// Pair returns both snapshots when the channel can blend.
func (s *EasingState[V]) Pair() (start, end V, ok bool) {
	return s.Start, s.End, s.HasStart && s.HasEnd
}

// Active reports whether both snapshots are present.
func (s *EasingState[V]) Active() bool {
	return s.HasStart && s.HasEnd
}

// Tangents returns the velocity at both snapshots when both are known.
func (s *EasingState[V]) Tangents() (start, end mgl64.Vec3, ok bool) {
	return s.StartVelocity, s.EndVelocity, s.HasStartVelocity && s.HasEndVelocity
}

// LastObserved returns the authoritative value seen by the most recent capture.
func (s *EasingState[V]) LastObserved() (V, bool) {
	return s.lastObserved, s.observed
}

func (s *EasingState[V]) observe(v V) {
	s.lastObserved = v
	s.observed = true
}

// changed reports whether current differs from what the last capture saw.
func (s *EasingState[V]) changed(current V) bool {
	return s.observed && s.lastObserved != current
}

// forget drops the velocity history so the next estimate starts from scratch.
func (s *EasingState[V]) forget() {
	var zero V
	s.prev, s.hasPrev = zero, false
	s.lastVelocity, s.hasLastVelocity = mgl64.Vec3{}, false
}

// invalidate handles a write the phases did not expect: the snapshots and the
// velocity history are discarded and current becomes the new baseline.
func (s *EasingState[V]) invalidate(current V) {
	s.Reset()
	s.forget()
	s.observe(current)
}

// Easing is the component holding the snapshots of all three channels.
type Easing struct {
	Translation EasingState[mgl64.Vec3]
	Rotation    EasingState[mgl64.Quat]
	Scale       EasingState[mgl64.Vec3]
}

// Reset clears the snapshots of one channel.
func (e *Easing) Reset(ch Channel) {
	switch ch {
	case ChannelTranslation:
		e.Translation.Reset()
	case ChannelRotation:
		e.Rotation.Reset()
	case ChannelScale:
		e.Scale.Reset()
	}
}

// ResetAll clears every channel, including the velocity history, so the entity
// renders its authoritative transform until the next window completes.
func (e *Easing) ResetAll() {
	e.Translation.Reset()
	e.Translation.forget()
	e.Rotation.Reset()
	e.Rotation.forget()
	e.Scale.Reset()
	e.Scale.forget()
}

// Active reports whether the channel currently blends.
func (e *Easing) Active(ch Channel) bool {
	switch ch {
	case ChannelTranslation:
		return e.Translation.Active()
	case ChannelRotation:
		return e.Rotation.Active()
	case ChannelScale:
		return e.Scale.Active()
	}
	return false
}

// Store gives per-entity access to Easing components kept in an ecs.Storage.
type Store struct {
	storage *ecs.Storage
}

func NewStore(storage *ecs.Storage) *Store {
	return &Store{storage: storage}
}

// Get returns the entity's Easing, or nil if it has none.
func (s *Store) Get(id ecs.EntityId) *Easing {
	return ecs.ReadComponent[Easing](s.storage, id)
}

// SetStart stores the channel of from as the start snapshot.
func (s *Store) SetStart(id ecs.EntityId, ch Channel, from Transform) bool {
	e := s.Get(id)
	if e == nil {
		return false
	}
	switch ch {
	case ChannelTranslation:
		e.Translation.SetStart(from.Translation)
	case ChannelRotation:
		e.Rotation.SetStart(from.Rotation)
	case ChannelScale:
		e.Scale.SetStart(from.Scale)
	}
	return true
}

// SetEnd stores the channel of from as the end snapshot.
func (s *Store) SetEnd(id ecs.EntityId, ch Channel, from Transform) bool {
	e := s.Get(id)
	if e == nil {
		return false
	}
	switch ch {
	case ChannelTranslation:
		e.Translation.SetEnd(from.Translation)
	case ChannelRotation:
		e.Rotation.SetEnd(from.Rotation)
	case ChannelScale:
		e.Scale.SetEnd(from.Scale)
	}
	return true
}

// Reset clears one channel of the entity.
func (s *Store) Reset(id ecs.EntityId, ch Channel) bool {
	e := s.Get(id)
	if e == nil {
		return false
	}
	e.Reset(ch)
	return true
}
