package decode

// readRings drives the cursor to exhaustion, producing a flat list of
// linear rings in stream order. Ring boundaries are not explicit in the
// wire format: a new ring starts at every move_to after the first, and
// close synthesizes the closing vertex of the ring currently being filled
// without otherwise terminating it.
func readRings(c *cursor) []Ring {
	rings := []Ring{{}}
	first := true
	firstLineTo := true
	var x2, y2 float64

	for {
		cmd, x, y, runLen := c.Next()
		if cmd == CmdEnd {
			break
		}

		switch {
		case cmd == CmdMoveTo:
			x2, y2 = x, y
			if first {
				first = false
			} else {
				firstLineTo = true
				rings = append(rings, Ring{})
			}
		case firstLineTo && cmd == CmdLineTo:
			firstLineTo = false
			cur := rings[len(rings)-1]
			grown := make(Ring, len(cur), int(runLen)+2)
			copy(grown, cur)
			rings[len(rings)-1] = grown
		case cmd == CmdClose:
			ring := rings[len(rings)-1]
			if len(ring) > 2 {
				last := ring[len(ring)-1]
				if last.X != x2 || last.Y != y2 {
					rings[len(rings)-1] = append(ring, Point{X: x2, Y: y2})
				}
			}
			continue
		}

		last := len(rings) - 1
		rings[last] = append(rings[last], Point{X: x, Y: y})
	}

	return rings
}

// signedArea2 returns twice the signed area of the ring under the shoelace
// formula. Its sign determines winding: negative is clockwise in a
// conventional (x right, y up) plane, matching mapnik::util::is_clockwise's
// convention once interpreted in output coordinates.
func signedArea2(r Ring) float64 {
	var sum float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum
}

// isClockwise reports the ring's winding order via the shoelace sign.
func isClockwise(r Ring) bool {
	return signedArea2(r) < 0
}

func reverseRing(r Ring) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// decodePolygons classifies a flat list of rings into exterior/interior
// groups by winding-order parity and emits a polygon or multi-polygon.
//
// The classification conflates "new exterior" with "same winding as the
// first ring seen" — a known approximation that misclassifies producers
// emitting holes before their exterior, or inconsistent winding across
// polygons in one feature. This matches MVT v2 intent for conforming
// producers and is preserved rather than "fixed".
func decodePolygons(rings []Ring) Geometry {
	if len(rings) == 1 {
		ring := rings[0]
		if len(ring) < 4 {
			return Geometry{Kind: KindEmpty}
		}
		if isClockwise(ring) {
			reverseRing(ring)
		}
		return Geometry{Kind: KindPolygon, Polygon: Polygon{Exterior: ring}}
	}

	var polys []Polygon
	first := true
	var exteriorIsClockwise bool

	for _, ring := range rings {
		if len(ring) < 4 {
			continue // degenerate ring, dropped silently
		}

		ringCW := isClockwise(ring)

		switch {
		case first:
			exteriorIsClockwise = ringCW
			if exteriorIsClockwise {
				reverseRing(ring)
			}
			polys = append(polys, Polygon{Exterior: ring})
			first = false

		case ringCW == exteriorIsClockwise:
			// New exterior: starts another polygon.
			if exteriorIsClockwise {
				reverseRing(ring)
			}
			polys = append(polys, Polygon{Exterior: ring})

		default:
			// Opposite winding from the exterior convention: a hole of
			// the most recently started polygon.
			if exteriorIsClockwise {
				reverseRing(ring)
			}
			last := len(polys) - 1
			polys[last].Holes = append(polys[last].Holes, ring)
		}
	}

	switch len(polys) {
	case 0:
		return Geometry{Kind: KindEmpty}
	case 1:
		return Geometry{Kind: KindPolygon, Polygon: polys[0]}
	default:
		return Geometry{Kind: KindMultiPolygon, MultiPolygon: polys}
	}
}

// decodePolygon reads the full ring list from the cursor and classifies it.
func decodePolygon(c *cursor) Geometry {
	return decodePolygons(readRings(c))
}
