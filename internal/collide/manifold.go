package collide

import "github.com/san-kum/rebound/internal/dynamo"

// Contact is one manifold point. Moving the first object by -Normal*Depth
// separates it from the second at this point.
type Contact struct {
	Point  dynamo.Vec2
	Normal dynamo.Vec2
	Depth  float64
}

type Manifold struct {
	Contacts []Contact
}

func (m Manifold) Len() int { return len(m.Contacts) }

// Deepest returns the contact with the largest depth.
func (m Manifold) Deepest() (Contact, bool) {
	if len(m.Contacts) == 0 {
		return Contact{}, false
	}
	best := m.Contacts[0]
	for _, c := range m.Contacts[1:] {
		if c.Depth > best.Depth {
			best = c
		}
	}
	return best, true
}

// Flipped returns the manifold seen from the other object.
func (m Manifold) Flipped() Manifold {
	out := Manifold{Contacts: make([]Contact, len(m.Contacts))}
	for i, c := range m.Contacts {
		out.Contacts[i] = Contact{Point: c.Point, Normal: c.Normal.Neg(), Depth: c.Depth}
	}
	return out
}

// Penetration sums Normal*Depth over all points.
func (m Manifold) Penetration() dynamo.Vec2 {
	var sum dynamo.Vec2
	for _, c := range m.Contacts {
		sum = sum.Add(c.Normal.Scale(c.Depth))
	}
	return sum
}
