package collide

import (
	"math"

	"github.com/san-kum/rebound/internal/dynamo"
)

// collideShapes computes the manifold of a against b with normals pointing from a
// to b. The returned depth is the deepest penetration estimate: positive when the
// shapes overlap, otherwise minus the separation found.
func collideShapes(a Shape, isoA dynamo.Isometry, b Shape, isoB dynamo.Isometry) (Manifold, float64) {
	switch sa := a.(type) {
	case Cuboid:
		switch sb := b.(type) {
		case Cuboid:
			return boxBox(newOBB(sa, isoA), newOBB(sb, isoB))
		case Ball:
			m, depth := ballBox(sb, isoB.Translation, newOBB(sa, isoA))
			return m.Flipped(), depth
		}
	case Ball:
		switch sb := b.(type) {
		case Cuboid:
			return ballBox(sa, isoA.Translation, newOBB(sb, isoB))
		case Ball:
			return ballBall(sa, isoA.Translation, sb, isoB.Translation)
		}
	}
	return Manifold{}, math.Inf(-1)
}

type obb struct {
	center dynamo.Vec2
	axes   [2]dynamo.Vec2
	half   [2]float64
}

func newOBB(c Cuboid, iso dynamo.Isometry) obb {
	return obb{
		center: iso.Translation,
		axes:   [2]dynamo.Vec2{iso.ApplyVector(dynamo.Vec2{X: 1}), iso.ApplyVector(dynamo.Vec2{Y: 1})},
		half:   [2]float64{c.HalfExtents.X, c.HalfExtents.Y},
	}
}

func (b obb) radius(axis dynamo.Vec2) float64 {
	return b.half[0]*math.Abs(axis.Dot(b.axes[0])) + b.half[1]*math.Abs(axis.Dot(b.axes[1]))
}

// face returns the endpoints of the face with outward normal sign*axes[i].
func (b obb) face(i int, sign float64) (normal, p0, p1 dynamo.Vec2) {
	normal = b.axes[i].Scale(sign)
	center := b.center.Add(normal.Scale(b.half[i]))
	ext := b.axes[1-i].Scale(b.half[1-i])
	return normal, center.Sub(ext), center.Add(ext)
}

// boxBox separates two oriented boxes on their four face axes, then clips the
// incident face against the reference face to build up to two contact points.
func boxBox(a, b obb) (Manifold, float64) {
	d := b.center.Sub(a.center)

	best := math.Inf(1)
	var axis dynamo.Vec2
	refIsA, refIdx := true, 0
	for owner, box := range [2]obb{a, b} {
		for i := 0; i < 2; i++ {
			ax := box.axes[i]
			overlap := a.radius(ax) + b.radius(ax) - math.Abs(d.Dot(ax))
			if overlap < best-1e-12 {
				best, axis, refIsA, refIdx = overlap, ax, owner == 0, i
			}
		}
	}
	if best <= 0 {
		return Manifold{}, best
	}

	n := axis
	if d.Dot(n) < 0 {
		n = n.Neg()
	}

	ref, inc, refOut := a, b, n
	if !refIsA {
		ref, inc, refOut = b, a, n.Neg()
	}

	sign := 1.0
	if refOut.Dot(ref.axes[refIdx]) < 0 {
		sign = -1
	}
	fn, r0, r1 := ref.face(refIdx, sign)

	j := 0
	if math.Abs(fn.Dot(inc.axes[1])) > math.Abs(fn.Dot(inc.axes[0])) {
		j = 1
	}
	isign := -1.0
	if fn.Dot(inc.axes[j]) < 0 {
		isign = 1
	}
	_, i0, i1 := inc.face(j, isign)

	tangent := r1.Sub(r0).Normalize()
	pts := clip([]dynamo.Vec2{i0, i1}, tangent.Neg(), -tangent.Dot(r0))
	pts = clip(pts, tangent, tangent.Dot(r1))

	offset := fn.Dot(r0)
	contacts := make([]Contact, 0, 2)
	for _, p := range pts {
		if s := fn.Dot(p) - offset; s < 0 {
			contacts = append(contacts, Contact{Point: p, Normal: n, Depth: -s})
		}
	}
	if len(contacts) == 0 {
		// degenerate clip; fall back to the support point of the incident box
		support := inc.center.Sub(fn.Scale(inc.radius(fn)))
		contacts = append(contacts, Contact{Point: support, Normal: n, Depth: best})
	}
	return Manifold{Contacts: contacts}, best
}

// clip keeps the part of a segment where n·p <= offset.
func clip(pts []dynamo.Vec2, n dynamo.Vec2, offset float64) []dynamo.Vec2 {
	if len(pts) < 2 {
		out := make([]dynamo.Vec2, 0, len(pts))
		for _, p := range pts {
			if n.Dot(p) <= offset {
				out = append(out, p)
			}
		}
		return out
	}

	d0 := n.Dot(pts[0]) - offset
	d1 := n.Dot(pts[1]) - offset
	out := make([]dynamo.Vec2, 0, 2)
	if d0 <= 0 {
		out = append(out, pts[0])
	}
	if d1 <= 0 {
		out = append(out, pts[1])
	}
	if d0*d1 < 0 {
		t := d0 / (d0 - d1)
		out = append(out, pts[0].Add(pts[1].Sub(pts[0]).Scale(t)))
	}
	return out
}

// ballBox computes the manifold of a ball at c against a box, normal from ball to box.
func ballBox(ball Ball, c dynamo.Vec2, box obb) (Manifold, float64) {
	d := c.Sub(box.center)
	local := dynamo.Vec2{X: d.Dot(box.axes[0]), Y: d.Dot(box.axes[1])}

	if math.Abs(local.X) <= box.half[0] && math.Abs(local.Y) <= box.half[1] {
		gapX := box.half[0] - math.Abs(local.X)
		gapY := box.half[1] - math.Abs(local.Y)

		var out dynamo.Vec2
		gap := gapX
		if gapX <= gapY {
			out = box.axes[0]
			if local.X < 0 {
				out = out.Neg()
			}
		} else {
			gap = gapY
			out = box.axes[1]
			if local.Y < 0 {
				out = out.Neg()
			}
		}
		depth := ball.Radius + gap
		return Manifold{Contacts: []Contact{{Point: c.Add(out.Scale(gap)), Normal: out.Neg(), Depth: depth}}}, depth
	}

	q := dynamo.Vec2{
		X: math.Max(-box.half[0], math.Min(box.half[0], local.X)),
		Y: math.Max(-box.half[1], math.Min(box.half[1], local.Y)),
	}
	closest := box.center.Add(box.axes[0].Scale(q.X)).Add(box.axes[1].Scale(q.Y))
	diff := c.Sub(closest)
	depth := ball.Radius - diff.Len()
	if depth <= 0 {
		return Manifold{}, depth
	}
	return Manifold{Contacts: []Contact{{Point: closest, Normal: diff.Neg().Normalize(), Depth: depth}}}, depth
}

func ballBall(a Ball, ca dynamo.Vec2, b Ball, cb dynamo.Vec2) (Manifold, float64) {
	d := cb.Sub(ca)
	dist := d.Len()
	depth := a.Radius + b.Radius - dist
	if depth <= 0 {
		return Manifold{}, depth
	}
	n := dynamo.Vec2{X: 1}
	if dist > 0 {
		n = d.Scale(1 / dist)
	}
	return Manifold{Contacts: []Contact{{Point: ca.Add(n.Scale(a.Radius)), Normal: n, Depth: depth}}}, depth
}
