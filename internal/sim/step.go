package sim

import (
	"github.com/san-kum/rebound/internal/collide"
	"github.com/san-kum/rebound/internal/dynamo"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/input"
	"github.com/san-kum/rebound/internal/unique"
)

// Step advances the store by one frame. The stages run in a fixed order:
// input to acceleration, velocity integration, friction, velocity cap,
// tentative move, embed reset, world advance, embed accumulation from new
// terrain contacts and finally the corrective move.
func Step(s *entity.Store, src input.Source, frame int) (FrameReport, error) {
	report := FrameReport{Frame: frame}
	p := s.Params

	if acc := s.Acceleration.GetMut(s.Player); acc != nil {
		x, y := input.Direction(src)
		*acc = dynamo.V(x, y).Scale(p.Impulse)
	}

	for _, e := range unique.Join(s.Velocity.IterMut(), s.Acceleration.Iter()) {
		*e.A = e.A.Add(e.B)
	}
	for _, e := range unique.Join(s.Velocity.IterMut(), s.Friction.Iter()) {
		*e.A = e.A.Scale(e.B)
	}
	for _, e := range unique.Join(s.Velocity.IterMut(), s.VelocityCap.Iter()) {
		*e.A = e.A.Clamp(e.B.Neg(), e.B)
	}

	for _, e := range unique.Join(s.Bounds.Iter(), s.Velocity.Iter()) {
		if err := s.World.Translate(e.A, e.B); err != nil {
			return report, FrameError{Frame: frame, Err: err}
		}
	}

	for _, embed := range s.Embed.IterMut() {
		*embed = dynamo.Vec2{}
	}

	s.World.Advance()

	for _, ev := range s.World.Events() {
		if ev.Kind == collide.Stopped {
			report.Stopped++
			continue
		}
		report.Started++
		if accumulateEmbed(s, ev.A, ev.B) {
			report.TerrainContacts++
		}
	}

	for _, e := range unique.Join(s.Bounds.Iter(), s.Embed.Iter()) {
		if e.B.IsZero() {
			continue
		}
		if err := s.World.Translate(e.A, e.B.Scale(-p.CorrectionFactor)); err != nil {
			return report, FrameError{Frame: frame, Err: err}
		}
		report.Corrected++
	}
	return report, nil
}

// accumulateEmbed adds the penetration of a started entity-terrain pair to
// the entity's embed vector. Any other pairing is inert.
func accumulateEmbed(s *entity.Store, h1, h2 collide.Handle) bool {
	t1, ok1 := s.World.Tag(h1)
	t2, ok2 := s.World.Tag(h2)
	if !ok1 || !ok2 {
		return false
	}

	body, terrain, tag := h2, h1, t2
	switch {
	case t1.IsTerrain() && !t2.IsTerrain():
	case t2.IsTerrain() && !t1.IsTerrain():
		body, terrain, tag = h1, h2, t1
	default:
		// entity-entity contacts have no response
		return false
	}

	key, _ := tag.Entity()
	embed := s.Embed.GetMut(key)
	if embed == nil {
		return false
	}
	m, ok := s.World.ContactPair(body, terrain)
	if !ok {
		return false
	}
	*embed = embed.Add(m.Penetration())
	return true
}
