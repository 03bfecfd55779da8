package mvt

import (
	"errors"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// appendTagVarint appends a tag/value pair for a varint field.
func appendTagVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// appendTagBytes appends a tag/length/payload triple for a bytes field.
func appendTagBytes(b []byte, num protowire.Number, payload []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

func buildValue(s string) []byte {
	var b []byte
	return appendTagBytes(b, fieldValueString, []byte(s))
}

func buildFeature(id uint64, tags []uint32, geomType uint64, geom []uint32) []byte {
	var b []byte
	b = appendTagVarint(b, fieldFeatureID, id)
	if len(tags) > 0 {
		var packed []byte
		for _, t := range tags {
			packed = protowire.AppendVarint(packed, uint64(t))
		}
		b = appendTagBytes(b, fieldFeatureTags, packed)
	}
	b = appendTagVarint(b, fieldFeatureType, geomType)
	if geom != nil {
		var packed []byte
		for _, g := range geom {
			packed = protowire.AppendVarint(packed, uint64(g))
		}
		b = appendTagBytes(b, fieldFeatureGeometry, packed)
	}
	return b
}

func buildLayer(name string, extent uint32, keys []string, values [][]byte, features [][]byte) []byte {
	var b []byte
	b = appendTagVarint(b, fieldLayerVersion, 2)
	b = appendTagBytes(b, fieldLayerName, []byte(name))
	for _, f := range features {
		b = appendTagBytes(b, fieldLayerFeature, f)
	}
	for _, k := range keys {
		b = appendTagBytes(b, fieldLayerKeys, []byte(k))
	}
	for _, v := range values {
		b = appendTagBytes(b, fieldLayerValues, v)
	}
	b = appendTagVarint(b, fieldLayerExtent, uint64(extent))
	return b
}

func buildTile(layers ...[]byte) []byte {
	var b []byte
	for _, l := range layers {
		b = appendTagBytes(b, fieldTileLayers, l)
	}
	return b
}

func TestReadTileSingleLayerPointFeature(t *testing.T) {
	geom := []uint32{9, 50, 34} // move_to (25,17)
	feat := buildFeature(1, []uint32{0, 0}, 1, geom)
	val := buildValue("forest")
	layer := buildLayer("landuse", 4096, []string{"class"}, [][]byte{val}, [][]byte{feat})
	data := buildTile(layer)

	tile, err := ReadTile(data)
	if err != nil {
		t.Fatalf("ReadTile: %v", err)
	}
	if len(tile.Layers) != 1 {
		t.Fatalf("expected 1 layer, got %d", len(tile.Layers))
	}
	l := tile.Layers[0]
	if l.Name != "landuse" || l.Extent != 4096 || l.Version != 2 {
		t.Fatalf("got %+v", l)
	}
	if len(l.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(l.Features))
	}
	f := l.Features[0]
	if f.ID != 1 {
		t.Errorf("expected id 1, got %d", f.ID)
	}
	tags := l.Tags(f)
	v, ok := tags["class"]
	if !ok || v.StringValue != "forest" || !v.HasString {
		t.Fatalf("expected class=forest, got %+v (ok=%v)", v, ok)
	}
}

func TestReadTileMultipleLayers(t *testing.T) {
	l1 := buildLayer("water", 4096, nil, nil, nil)
	l2 := buildLayer("roads", 4096, nil, nil, nil)
	tile, err := ReadTile(buildTile(l1, l2))
	if err != nil {
		t.Fatalf("ReadTile: %v", err)
	}
	if len(tile.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(tile.Layers))
	}
	if tile.Layers[0].Name != "water" || tile.Layers[1].Name != "roads" {
		t.Fatalf("got %v, %v", tile.Layers[0].Name, tile.Layers[1].Name)
	}
}

func TestReadTileDefaultsExtentAndVersion(t *testing.T) {
	var b []byte
	b = appendTagBytes(b, fieldLayerName, []byte("empty"))
	tile, err := ReadTile(buildTile(b))
	if err != nil {
		t.Fatalf("ReadTile: %v", err)
	}
	l := tile.Layers[0]
	if l.Extent != 4096 || l.Version != 1 {
		t.Fatalf("expected default extent/version, got %+v", l)
	}
}

func TestReadTileTruncatedFieldIsMalformed(t *testing.T) {
	data := []byte{0x1a, 0x05, 0x01, 0x02} // bytes field claiming length 5, only 2 present
	_, err := ReadTile(data)
	if err == nil {
		t.Fatal("expected error for truncated field")
	}
	var target *ErrMalformedTile
	if !errors.As(err, &target) {
		t.Fatalf("expected *ErrMalformedTile, got %T", err)
	}
	if target.Reason == "" {
		t.Fatal("expected a reason")
	}
}

func TestReadTileEmptyInput(t *testing.T) {
	tile, err := ReadTile(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tile.Layers) != 0 {
		t.Fatalf("expected no layers, got %d", len(tile.Layers))
	}
}

func TestReadTileUnknownTopLevelFieldIgnored(t *testing.T) {
	var b []byte
	b = appendTagVarint(b, 99, 42) // unknown field, not "layers"
	layer := buildLayer("roads", 4096, nil, nil, nil)
	b = appendTagBytes(b, fieldTileLayers, layer)

	tile, err := ReadTile(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tile.Layers) != 1 || tile.Layers[0].Name != "roads" {
		t.Fatalf("got %+v", tile.Layers)
	}
}

func TestReadValueFloatAndBool(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, fieldValueFloat, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(1.5))
	b = protowire.AppendTag(b, fieldValueBool, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	v, err := readValue(b)
	if err != nil {
		t.Fatalf("readValue: %v", err)
	}
	if !v.HasFloat || v.FloatValue != 1.5 {
		t.Errorf("expected float 1.5, got %+v", v)
	}
	if !v.HasBool || !v.BoolValue {
		t.Errorf("expected bool true, got %+v", v)
	}
}
