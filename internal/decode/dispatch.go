package decode

import (
	"iter"
	"log"
)

// Options carries the caller-supplied scale/origin for a single decode and
// the optional diagnostic sink described in the error handling design.
type Options struct {
	TileX, TileY   float64
	ScaleX, ScaleY float64
	Logger         *log.Logger
}

// DecodeSlice dispatches a geometry command stream backed by a random-access
// slice to the assembler matching geomType.
func DecodeSlice(data []uint32, geomType GeomType, opts Options) (Geometry, error) {
	c := newCursorFromSlice(data, opts.TileX, opts.TileY, opts.ScaleX, opts.ScaleY, opts.Logger)
	return dispatch(c, geomType)
}

// DecodeSeq dispatches a geometry command stream backed by a single-pass
// iterator to the assembler matching geomType.
func DecodeSeq(seq iter.Seq[uint32], geomType GeomType, opts Options) (Geometry, error) {
	c := newCursorFromSeq(seq, opts.TileX, opts.TileY, opts.ScaleX, opts.ScaleY, opts.Logger)
	return dispatch(c, geomType)
}

func dispatch(c *cursor, geomType GeomType) (Geometry, error) {
	switch geomType {
	case GeomTypePoint:
		return decodePoint(c), nil
	case GeomTypeLineString:
		return decodeLineString(c), nil
	case GeomTypePolygon:
		return decodePolygon(c), nil
	default:
		return Geometry{}, &ErrUnsupportedGeometryType{Type: geomType}
	}
}
