package decode

// decodePoint drives the cursor to exhaustion, treating every yielded
// coordinate as a point regardless of its command tag. A point feature
// SHOULD contain a single move_to with len >= 1, but a known encoding bug
// in some producers emits len inconsistent with the actual vertex count
// (see MalformedRun in the error taxonomy); this assembler is intentionally
// lenient about it rather than rejecting the feature.
func decodePoint(c *cursor) Geometry {
	var points []Point
	first := true

	for {
		cmd, x, y, runLen := c.Next()
		if cmd == CmdEnd {
			break
		}
		if first {
			first = false
			points = make([]Point, 0, runLen)
		}
		points = append(points, Point{X: x, Y: y})
	}

	switch len(points) {
	case 0:
		return Geometry{Kind: KindEmpty}
	case 1:
		return Geometry{Kind: KindPoint, Point: points[0]}
	default:
		return Geometry{Kind: KindMultiPoint, MultiPoint: points}
	}
}
