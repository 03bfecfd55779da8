package decode

// Point is a single output-space coordinate.
type Point struct {
	X, Y float64
}

// Ring is an ordered sequence of points forming (after closure synthesis)
// a closed linear ring.
type Ring []Point

// Kind tags which alternative of Geometry is populated.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindPoint
	KindMultiPoint
	KindLineString
	KindMultiLineString
	KindPolygon
	KindMultiPolygon
)

// Polygon is one exterior ring plus zero or more interior (hole) rings.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
}

// Geometry is THE CORE's output variant: exactly one of its fields is
// meaningful, selected by Kind. It is independent of any downstream
// geometry library; callers convert it to their own representation.
type Geometry struct {
	Kind Kind

	Point          Point
	MultiPoint     []Point
	Line           []Point
	MultiLine      [][]Point
	Polygon        Polygon
	MultiPolygon   []Polygon
}

// IsEmpty reports whether the geometry carries no shape at all.
func (g Geometry) IsEmpty() bool {
	return g.Kind == KindEmpty
}
