package decode

import (
	"fmt"
)

// GeomType identifies the MVT geometry type declared by a feature.
// Values match the MVT GeomType enum (UNKNOWN=0, POINT=1, LINESTRING=2, POLYGON=3).
type GeomType uint8

const (
	GeomTypeUnknown GeomType = iota
	GeomTypePoint
	GeomTypeLineString
	GeomTypePolygon
)

func (t GeomType) String() string {
	switch t {
	case GeomTypePoint:
		return "Point"
	case GeomTypeLineString:
		return "LineString"
	case GeomTypePolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// ErrUnsupportedGeometryType is returned by DecodeSlice and DecodeSeq when a feature's declared
// geometry type is UNKNOWN or not one of POINT/LINESTRING/POLYGON.
type ErrUnsupportedGeometryType struct {
	Type GeomType
}

func (e *ErrUnsupportedGeometryType) Error() string {
	return fmt.Sprintf("unsupported geometry type: %v", e.Type)
}
