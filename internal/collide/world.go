package collide

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/san-kum/rebound/internal/dynamo"
)

// Handle identifies a registered object. Handles are never reused; 0 is never issued.
type Handle uint32

type EventKind uint8

const (
	Started EventKind = iota
	Stopped
)

func (k EventKind) String() string {
	if k == Started {
		return "started"
	}
	return "stopped"
}

// ContactEvent reports a pair that began or ceased touching during the last Advance.
// A is always the lower handle.
type ContactEvent struct {
	Kind      EventKind
	A, B      Handle
	Proximity bool
}

type object[T any] struct {
	pose  dynamo.Isometry
	shape Shape
	query QueryType
	tag   T
}

type pairState struct {
	proximity bool
	manifold  Manifold
}

// World holds every collision object and the pair state of the last Advance.
type World[T any] struct {
	tolerance float64
	objects   []*object[T] // indexed by handle-1, nil once removed
	count     int
	grid      *spatialGrid
	active    map[pairKey]*pairState
	events    []ContactEvent
	filter    func(a, b T) bool
}

// New creates a world. Tolerance is the contact/proximity generation distance
// applied to every object; cellSize sizes the broad-phase grid.
func New[T any](tolerance, cellSize float64) *World[T] {
	return &World[T]{
		tolerance: tolerance,
		objects:   make([]*object[T], 0, 32),
		grid:      newSpatialGrid(cellSize),
		active:    make(map[pairKey]*pairState),
	}
}

func (w *World[T]) Tolerance() float64 { return w.tolerance }

// SetFilter installs a predicate deciding whether two tags may interact at all.
func (w *World[T]) SetFilter(filter func(a, b T) bool) { w.filter = filter }

func (w *World[T]) Add(pose dynamo.Isometry, shape Shape, query QueryType, tag T) Handle {
	w.objects = append(w.objects, &object[T]{pose: pose, shape: shape, query: query, tag: tag})
	w.count++
	return Handle(len(w.objects))
}

func (w *World[T]) get(h Handle) (*object[T], error) {
	if h == 0 || int(h) > len(w.objects) || w.objects[h-1] == nil {
		return nil, fmt.Errorf("%w: %d", dynamo.ErrUnknownHandle, h)
	}
	return w.objects[h-1], nil
}

// Remove drops the object and any pair state involving it. No event is emitted.
func (w *World[T]) Remove(h Handle) error {
	if _, err := w.get(h); err != nil {
		return err
	}
	w.objects[h-1] = nil
	w.count--
	for key := range w.active {
		if key.a == h || key.b == h {
			delete(w.active, key)
		}
	}
	return nil
}

func (w *World[T]) Len() int { return w.count }

func (w *World[T]) Contains(h Handle) bool {
	_, err := w.get(h)
	return err == nil
}

func (w *World[T]) Position(h Handle) (dynamo.Isometry, error) {
	o, err := w.get(h)
	if err != nil {
		return dynamo.Isometry{}, err
	}
	return o.pose, nil
}

// SetPosition teleports the object. Pair state refreshes on the next Advance.
func (w *World[T]) SetPosition(h Handle, pose dynamo.Isometry) error {
	o, err := w.get(h)
	if err != nil {
		return err
	}
	o.pose = pose
	return nil
}

// Translate moves the object by delta, keeping its rotation.
func (w *World[T]) Translate(h Handle, delta dynamo.Vec2) error {
	pose, err := w.Position(h)
	if err != nil {
		return err
	}
	return w.SetPosition(h, pose.Translated(delta))
}

func (w *World[T]) Tag(h Handle) (T, bool) {
	o, err := w.get(h)
	if err != nil {
		var zero T
		return zero, false
	}
	return o.tag, true
}

func (w *World[T]) Shape(h Handle) (Shape, bool) {
	o, err := w.get(h)
	if err != nil {
		return nil, false
	}
	return o.shape, true
}

func (w *World[T]) AABB(h Handle) (AABB, bool) {
	o, err := w.get(h)
	if err != nil {
		return AABB{}, false
	}
	return o.shape.AABB(o.pose), true
}

// Handles yields live handles in ascending order.
func (w *World[T]) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for i, o := range w.objects {
			if o == nil {
				continue
			}
			if !yield(Handle(i + 1)) {
				return
			}
		}
	}
}

func (w *World[T]) margin(o *object[T]) float64 {
	return max(w.tolerance, o.query.Margin)
}

// Advance runs the broad and narrow phases over every object at its current pose
// and replaces the event list with the pairs that started or stopped touching.
func (w *World[T]) Advance() {
	w.grid.clear()
	for h := range w.Handles() {
		o := w.objects[h-1]
		w.grid.insert(h, o.shape.AABB(o.pose).Expand(w.margin(o)))
	}

	w.events = w.events[:0]
	touching := make(map[pairKey]struct{})
	for key := range w.grid.candidates() {
		a, b := w.objects[key.a-1], w.objects[key.b-1]
		if w.filter != nil && !w.filter(a.tag, b.tag) {
			continue
		}
		state, ok := w.narrow(a, b)
		if !ok {
			continue
		}
		touching[key] = struct{}{}
		if _, was := w.active[key]; !was {
			w.events = append(w.events, ContactEvent{Kind: Started, A: key.a, B: key.b, Proximity: state.proximity})
		}
		w.active[key] = state
	}

	for key, state := range w.active {
		if _, still := touching[key]; !still {
			w.events = append(w.events, ContactEvent{Kind: Stopped, A: key.a, B: key.b, Proximity: state.proximity})
			delete(w.active, key)
		}
	}

	slices.SortFunc(w.events, func(x, y ContactEvent) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		if c := cmp.Compare(x.B, y.B); c != 0 {
			return c
		}
		return cmp.Compare(x.Kind, y.Kind)
	})
}

func (w *World[T]) narrow(a, b *object[T]) (*pairState, bool) {
	m, depth := collideShapes(a.shape, a.pose, b.shape, b.pose)
	if a.query.IsProximity() || b.query.IsProximity() {
		margin := max(a.query.Margin, b.query.Margin)
		return &pairState{proximity: true}, depth > -margin
	}
	if depth <= 0 || m.Len() == 0 {
		return nil, false
	}
	return &pairState{manifold: m}, true
}

// Events returns the events of the last Advance. The slice is reused by the
// next Advance; drain it before calling Advance again.
func (w *World[T]) Events() []ContactEvent { return w.events }

// ContactPair returns the manifold the last Advance computed for a contacts pair,
// normals oriented from h1 to h2. Proximity pairs and untouched pairs report false.
func (w *World[T]) ContactPair(h1, h2 Handle) (Manifold, bool) {
	state, ok := w.active[makePair(h1, h2)]
	if !ok || state.proximity {
		return Manifold{}, false
	}
	if h1 > h2 {
		return state.manifold.Flipped(), true
	}
	return state.manifold, true
}

// Contact runs the narrow phase on demand at the objects' current poses,
// ignoring query types and filters.
func (w *World[T]) Contact(h1, h2 Handle) (Manifold, bool) {
	a, err := w.get(h1)
	if err != nil {
		return Manifold{}, false
	}
	b, err := w.get(h2)
	if err != nil {
		return Manifold{}, false
	}
	m, depth := collideShapes(a.shape, a.pose, b.shape, b.pose)
	if depth <= 0 || m.Len() == 0 {
		return Manifold{}, false
	}
	return m, true
}
