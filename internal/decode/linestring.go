package decode

// decodeLineString drives the cursor to exhaustion, splitting the stream
// into one line per move_to. The assembler appends every emitted coordinate
// unconditionally, including on a close tag (which should not occur in a
// well-formed linestring geometry) — this lenient behavior is preserved
// deliberately rather than fixed.
func decodeLineString(c *cursor) Geometry {
	lines := [][]Point{{}}
	first := true
	firstLineTo := true

	for {
		cmd, x, y, runLen := c.Next()
		if cmd == CmdEnd {
			break
		}

		if cmd == CmdMoveTo {
			if first {
				first = false
			} else {
				firstLineTo = true
				lines = append(lines, []Point{})
			}
		} else if firstLineTo && cmd == CmdLineTo {
			firstLineTo = false
			cur := lines[len(lines)-1]
			grown := make([]Point, len(cur), int(runLen)+1)
			copy(grown, cur)
			lines[len(lines)-1] = grown
		}

		last := len(lines) - 1
		lines[last] = append(lines[last], Point{X: x, Y: y})
	}

	if len(lines) == 1 {
		if len(lines[0]) >= 2 {
			return Geometry{Kind: KindLineString, Line: lines[0]}
		}
		return Geometry{Kind: KindEmpty}
	}
	return Geometry{Kind: KindMultiLineString, MultiLine: lines}
}
