package collide

type queryKind uint8

const (
	queryContacts queryKind = iota
	queryProximity
)

// QueryType selects what the narrow phase generates for an object.
type QueryType struct {
	kind   queryKind
	Margin float64
}

// Contacts generates full manifolds. The prediction distance pads the object's
// broad-phase bounds.
func Contacts(prediction float64) QueryType {
	return QueryType{kind: queryContacts, Margin: prediction}
}

// Proximity generates overlap notifications for shapes closer than margin.
func Proximity(margin float64) QueryType {
	return QueryType{kind: queryProximity, Margin: margin}
}

func (q QueryType) IsProximity() bool { return q.kind == queryProximity }

func (q QueryType) String() string {
	if q.IsProximity() {
		return "proximity"
	}
	return "contacts"
}
