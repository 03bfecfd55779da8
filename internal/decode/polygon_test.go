package decode

import "testing"

func zz(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

func moveToHeader(count uint32) uint32 { return 1 | (count << 3) }
func lineToHeader(count uint32) uint32 { return 2 | (count << 3) }
func closeHeader() uint32              { return 7 | (1 << 3) }

func TestDecodePolygonCCWInputUnchanged(t *testing.T) {
	data := []uint32{
		moveToHeader(1), zz(0), zz(0),
		lineToHeader(3), zz(8), zz(0), zz(0), zz(8), zz(-8), zz(0),
		closeHeader(),
	}
	c := newCursorFromSlice(data, 0, 0, 1, 1, nil)
	got := decodePolygon(c)
	if got.Kind != KindPolygon {
		t.Fatalf("expected polygon, got %v", got.Kind)
	}
	want := Ring{{0, 0}, {8, 0}, {8, 8}, {0, 8}, {0, 0}}
	assertRingEqual(t, got.Polygon.Exterior, want)
	if len(got.Polygon.Holes) != 0 {
		t.Fatalf("expected no holes, got %d", len(got.Polygon.Holes))
	}
}

func TestDecodePolygonCWInputReversed(t *testing.T) {
	data := []uint32{
		moveToHeader(1), zz(0), zz(0),
		lineToHeader(3), zz(0), zz(8), zz(8), zz(0), zz(0), zz(-8),
		closeHeader(),
	}
	c := newCursorFromSlice(data, 0, 0, 1, 1, nil)
	got := decodePolygon(c)
	if got.Kind != KindPolygon {
		t.Fatalf("expected polygon, got %v", got.Kind)
	}
	want := Ring{{0, 0}, {8, 0}, {8, 8}, {0, 8}, {0, 0}}
	assertRingEqual(t, got.Polygon.Exterior, want)
}

func TestDecodePolygonWithHole(t *testing.T) {
	data := []uint32{
		// large CCW square (0,0)-(10,0)-(10,10)-(0,10)
		moveToHeader(1), zz(0), zz(0),
		lineToHeader(3), zz(10), zz(0), zz(0), zz(10), zz(-10), zz(0),
		closeHeader(),
		// small CW square (2,2)-(2,8)-(8,8)-(8,2), starting from (0,10)
		moveToHeader(1), zz(2), zz(-8),
		lineToHeader(3), zz(0), zz(6), zz(6), zz(0), zz(0), zz(-6),
		closeHeader(),
	}
	c := newCursorFromSlice(data, 0, 0, 1, 1, nil)
	got := decodePolygon(c)
	if got.Kind != KindPolygon {
		t.Fatalf("expected single polygon, got %v", got.Kind)
	}
	if isClockwise(got.Polygon.Exterior) {
		t.Errorf("exterior ring must be CCW")
	}
	if len(got.Polygon.Holes) != 1 {
		t.Fatalf("expected 1 hole, got %d", len(got.Polygon.Holes))
	}
	if !isClockwise(got.Polygon.Holes[0]) {
		t.Errorf("hole ring must be CW")
	}
}

func TestDecodePolygonDegenerateRingDropped(t *testing.T) {
	// A two-vertex ring: too short to close (size not > 2), so close adds
	// nothing, leaving a degenerate 2-vertex ring that must be dropped.
	data := []uint32{
		moveToHeader(1), zz(0), zz(0),
		lineToHeader(1), zz(4), zz(0),
		closeHeader(),
	}
	c := newCursorFromSlice(data, 0, 0, 1, 1, nil)
	rings := readRings(c)
	if len(rings) != 1 || len(rings[0]) != 2 {
		t.Fatalf("expected one 2-vertex ring, got %v", rings)
	}
	got := decodePolygons(rings)
	if got.Kind != KindEmpty {
		t.Fatalf("expected empty geometry for a degenerate ring, got %v", got.Kind)
	}
}

func TestDecodePolygonsMultiExterior(t *testing.T) {
	// Two disjoint CCW squares: two exteriors, no holes, multi-polygon.
	sq := func(dx, dy int32) []uint32 {
		return []uint32{
			moveToHeader(1), zz(dx), zz(dy),
			lineToHeader(3), zz(4), zz(0), zz(0), zz(4), zz(-4), zz(0),
			closeHeader(),
		}
	}
	data := append(sq(0, 0), sq(10, 0)...)
	c := newCursorFromSlice(data, 0, 0, 1, 1, nil)
	got := decodePolygon(c)
	if got.Kind != KindMultiPolygon {
		t.Fatalf("expected multipolygon, got %v", got.Kind)
	}
	if len(got.MultiPolygon) != 2 {
		t.Fatalf("expected 2 polygons, got %d", len(got.MultiPolygon))
	}
	for i, p := range got.MultiPolygon {
		if len(p.Holes) != 0 {
			t.Errorf("polygon %d: expected no holes, got %d", i, len(p.Holes))
		}
	}
}

func assertRingEqual(t *testing.T, got, want Ring) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
