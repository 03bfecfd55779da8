package mvt

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/glyphmaps/mvtgeom/internal/decode"
)

// Tile is a decoded Mapbox Vector Tile: a sequence of named layers, each
// carrying its own features and their attribute dictionaries.
//
// This is a hand-written reader against the low-level protobuf wire
// format (google.golang.org/protobuf/encoding/protowire), not generated
// code — the MVT schema (https://github.com/mapbox/vector-tile-spec) is
// small, public, and stable enough that a field-by-field reader is less
// machinery than a full protoc toolchain for a single message family.
type Tile struct {
	Layers []*Layer
}

// Layer is one named layer of a Tile, at its own extent (the size, in tile
// units, of the square the layer's coordinates are expressed against).
type Layer struct {
	Name     string
	Version  uint32
	Extent   uint32
	Keys     []string
	Values   []Value
	Features []*Feature
}

// Feature is a single MVT feature: an optional numeric ID, attribute tags
// (even-length index pairs into the owning Layer's Keys/Values), a declared
// geometry type, and the raw geometry command stream THE CORE decodes.
type Feature struct {
	ID       uint64
	Tags     []uint32
	Type     decode.GeomType
	Geometry []uint32
}

// Value is a decoded MVT attribute value, a oneof over the wire types the
// format supports.
type Value struct {
	StringValue string
	FloatValue  float32
	DoubleValue float64
	IntValue    int64
	UintValue   uint64
	SintValue   int64
	BoolValue   bool
	HasString   bool
	HasFloat    bool
	HasDouble   bool
	HasInt      bool
	HasUint     bool
	HasSint     bool
	HasBool     bool
}

// MVT top-level field numbers, per the vector-tile-spec v2 proto.
const (
	fieldTileLayers = 3

	fieldLayerName    = 1
	fieldLayerFeature = 2
	fieldLayerKeys    = 3
	fieldLayerValues  = 4
	fieldLayerExtent  = 5
	fieldLayerVersion = 15

	fieldFeatureID       = 1
	fieldFeatureTags     = 2
	fieldFeatureType     = 3
	fieldFeatureGeometry = 4

	fieldValueString = 1
	fieldValueFloat  = 2
	fieldValueDouble = 3
	fieldValueInt    = 4
	fieldValueUint   = 5
	fieldValueSint   = 6
	fieldValueBool   = 7
)

// field is one decoded (number, wire type, raw payload) triple from a
// protobuf message body, with the number of bytes it consumed from the
// front of the slice it was read from.
type field struct {
	num  protowire.Number
	typ  protowire.Type
	raw  []byte // for varint/fixed32/fixed64: the encoded bytes; for bytes: the inner payload
	n    int    // bytes consumed including the tag
}

// nextField consumes one tag plus its value from the front of data, the
// shared primitive every message reader below is built from.
func nextField(data []byte) (field, error) {
	num, typ, tagLen := protowire.ConsumeTag(data)
	if tagLen < 0 {
		return field{}, &ErrMalformedTile{Reason: "invalid field tag"}
	}
	rest := data[tagLen:]

	var valLen int
	var raw []byte
	switch typ {
	case protowire.VarintType:
		_, n := protowire.ConsumeVarint(rest)
		if n < 0 {
			return field{}, &ErrMalformedTile{Reason: "invalid varint field"}
		}
		valLen = n
		raw = rest[:valLen]
	case protowire.Fixed32Type:
		_, n := protowire.ConsumeFixed32(rest)
		if n < 0 {
			return field{}, &ErrMalformedTile{Reason: "truncated field value"}
		}
		valLen = n
		raw = rest[:valLen]
	case protowire.Fixed64Type:
		_, n := protowire.ConsumeFixed64(rest)
		if n < 0 {
			return field{}, &ErrMalformedTile{Reason: "truncated field value"}
		}
		valLen = n
		raw = rest[:valLen]
	case protowire.BytesType:
		b, n := protowire.ConsumeBytes(rest)
		if n < 0 {
			return field{}, &ErrMalformedTile{Reason: "invalid length-delimited field"}
		}
		raw = b
		valLen = n
	default:
		return field{}, &ErrMalformedTile{Reason: "unsupported wire type"}
	}

	if valLen < 0 || valLen > len(rest) {
		return field{}, &ErrMalformedTile{Reason: "truncated field value"}
	}

	return field{num: num, typ: typ, raw: raw, n: tagLen + valLen}, nil
}

// forEachField walks every top-level field of a message body, invoking fn
// with the decoded field. Iteration stops at the first error fn returns or
// the first malformed field.
func forEachField(data []byte, fn func(field) error) error {
	for len(data) > 0 {
		f, err := nextField(data)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			return err
		}
		data = data[f.n:]
	}
	return nil
}

func fieldVarint(f field) uint64 {
	v, _ := protowire.ConsumeVarint(f.raw)
	return v
}

// packedVarints decodes a length-delimited field carrying a run of
// concatenated, untagged varints (Tile.Feature.tags and .geometry are both
// declared `packed=true`).
func packedVarints(raw []byte) []uint32 {
	out := make([]uint32, 0, len(raw)/2)
	for len(raw) > 0 {
		v, n := protowire.ConsumeVarint(raw)
		if n < 0 {
			break
		}
		out = append(out, uint32(v))
		raw = raw[n:]
	}
	return out
}

// ReadTile parses a raw MVT payload into a Tile. Framing errors (a field
// that doesn't parse as a valid tag/value anywhere in the message tree)
// are always fatal and returned as *ErrMalformedTile.
func ReadTile(data []byte) (*Tile, error) {
	t := &Tile{}
	err := forEachField(data, func(f field) error {
		if f.num != fieldTileLayers || f.typ != protowire.BytesType {
			return nil // unknown top-level field: ignore, per proto3 convention
		}
		layer, err := readLayer(f.raw)
		if err != nil {
			return err
		}
		t.Layers = append(t.Layers, layer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func readLayer(data []byte) (*Layer, error) {
	l := &Layer{Version: 1, Extent: 4096}
	err := forEachField(data, func(f field) error {
		switch f.num {
		case fieldLayerName:
			l.Name = string(f.raw)
		case fieldLayerExtent:
			l.Extent = uint32(fieldVarint(f))
		case fieldLayerVersion:
			l.Version = uint32(fieldVarint(f))
		case fieldLayerKeys:
			l.Keys = append(l.Keys, string(f.raw))
		case fieldLayerValues:
			v, err := readValue(f.raw)
			if err != nil {
				return err
			}
			l.Values = append(l.Values, v)
		case fieldLayerFeature:
			feat, err := readFeature(f.raw)
			if err != nil {
				return err
			}
			l.Features = append(l.Features, feat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func readValue(data []byte) (Value, error) {
	var v Value
	err := forEachField(data, func(f field) error {
		switch f.num {
		case fieldValueString:
			v.StringValue, v.HasString = string(f.raw), true
		case fieldValueFloat:
			bits, _ := protowire.ConsumeFixed32(f.raw)
			v.FloatValue, v.HasFloat = math.Float32frombits(bits), true
		case fieldValueDouble:
			bits, _ := protowire.ConsumeFixed64(f.raw)
			v.DoubleValue, v.HasDouble = math.Float64frombits(bits), true
		case fieldValueInt:
			n, _ := protowire.ConsumeVarint(f.raw)
			v.IntValue, v.HasInt = int64(n), true
		case fieldValueUint:
			n, _ := protowire.ConsumeVarint(f.raw)
			v.UintValue, v.HasUint = n, true
		case fieldValueSint:
			n, _ := protowire.ConsumeVarint(f.raw)
			v.SintValue, v.HasSint = protowire.DecodeZigZag(n), true
		case fieldValueBool:
			n, _ := protowire.ConsumeVarint(f.raw)
			v.BoolValue, v.HasBool = n != 0, true
		}
		return nil
	})
	return v, err
}

func readFeature(data []byte) (*Feature, error) {
	f := &Feature{Type: decode.GeomTypeUnknown}
	err := forEachField(data, func(fl field) error {
		switch fl.num {
		case fieldFeatureID:
			f.ID = fieldVarint(fl)
		case fieldFeatureTags:
			f.Tags = packedVarints(fl.raw)
		case fieldFeatureType:
			f.Type = decode.GeomType(fieldVarint(fl))
		case fieldFeatureGeometry:
			f.Geometry = packedVarints(fl.raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Tags resolves a Feature's flat tag index pairs into a name->value map
// using the owning Layer's Keys and Values dictionaries. Out-of-range
// indices are skipped rather than treated as an error, matching THE CORE's
// partial-recovery stance on malformed-but-not-fatal input.
func (l *Layer) Tags(f *Feature) map[string]Value {
	tags := make(map[string]Value, len(f.Tags)/2)
	for i := 0; i+1 < len(f.Tags); i += 2 {
		ki, vi := int(f.Tags[i]), int(f.Tags[i+1])
		if ki < 0 || ki >= len(l.Keys) || vi < 0 || vi >= len(l.Values) {
			continue
		}
		tags[l.Keys[ki]] = l.Values[vi]
	}
	return tags
}
