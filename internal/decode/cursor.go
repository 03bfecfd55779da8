package decode

import (
	"iter"
	"log"
)

// Command is one of the MVT geometry command tags yielded by a cursor.
type Command uint8

const (
	// CmdEnd signals that the command stream is exhausted.
	CmdEnd Command = 0
	// CmdMoveTo starts a new subpath at the decoded coordinate.
	CmdMoveTo Command = 1
	// CmdLineTo extends the current subpath to the decoded coordinate.
	CmdLineTo Command = 2
	// CmdClose emits the synthesized closing vertex of the current ring.
	CmdClose Command = 7
)

// source is the minimal capability a command stream must offer: pull the
// next raw uint32, or report exhaustion. Both a random-access slice and a
// single-pass iter.Seq are adapted to it so the cursor's decode loop never
// needs to know which one backs it.
type source interface {
	next() (uint32, bool)
}

// sliceSource is a source backed by a random-access integer slice with a
// known length.
type sliceSource struct {
	data []uint32
	i    int
}

func (s *sliceSource) next() (uint32, bool) {
	if s.i >= len(s.data) {
		return 0, false
	}
	v := s.data[s.i]
	s.i++
	return v, true
}

// seqSource is a source backed by a single-pass forward iterator. It pulls
// one value at a time from an iter.Seq, the idiomatic Go equivalent of the
// begin/end iterator pair the original decoder supports.
type seqSource struct {
	pull func() (uint32, bool)
	stop func()
}

func newSeqSource(seq iter.Seq[uint32]) *seqSource {
	pull, stop := iter.Pull(seq)
	return &seqSource{pull: pull, stop: stop}
}

func (s *seqSource) next() (uint32, bool) {
	v, ok := s.pull()
	if !ok {
		s.stop()
	}
	return v, ok
}

// cursor is a stateful, one-shot iterator over an MVT command stream. Once
// Next returns CmdEnd, every subsequent call also returns CmdEnd without
// consuming further input. Construct a new cursor for a second pass.
type cursor struct {
	src source

	scaleX, scaleY float64
	x, y           float64
	ox, oy         float64

	cmd    uint8
	length uint32
	done   bool

	logger *log.Logger
}

// newCursorFromSlice builds a cursor over a random-access command stream.
func newCursorFromSlice(data []uint32, tileX, tileY, scaleX, scaleY float64, logger *log.Logger) *cursor {
	return &cursor{
		src:    &sliceSource{data: data},
		scaleX: scaleX,
		scaleY: scaleY,
		x:      tileX,
		y:      tileY,
		cmd:    uint8(CmdMoveTo),
		logger: logger,
	}
}

// newCursorFromSeq builds a cursor over a single-pass command stream.
func newCursorFromSeq(seq iter.Seq[uint32], tileX, tileY, scaleX, scaleY float64, logger *log.Logger) *cursor {
	return &cursor{
		src:    newSeqSource(seq),
		scaleX: scaleX,
		scaleY: scaleY,
		x:      tileX,
		y:      tileY,
		cmd:    uint8(CmdMoveTo),
		logger: logger,
	}
}

// zigzag decodes a zig-zag encoded unsigned integer to its signed delta.
func zigzag(n uint32) int32 {
	return int32(n>>1) ^ -int32(n&1)
}

// Next decodes the next event from the command stream. runLen reports the
// repetition count of the command header that was consumed on this call;
// it is only nonzero on the event that reads a new header (the first event
// of each run) and zero on the remaining steps of that run.
func (c *cursor) Next() (cmd Command, x, y float64, runLen uint32) {
	if c.done {
		return CmdEnd, 0, 0, 0
	}

	if c.length == 0 {
		header, ok := c.src.next()
		if !ok {
			c.done = true
			return CmdEnd, 0, 0, 0
		}
		c.cmd = uint8(header & 0x7)
		c.length = header >> 3
		runLen = c.length
	}
	c.length--

	switch Command(c.cmd) {
	case CmdMoveTo, CmdLineTo:
		dxRaw, ok1 := c.src.next()
		dyRaw, ok2 := c.src.next()
		if !ok1 || !ok2 {
			// Truncated mid-parameter: undefined at the spec level; this
			// implementation treats it as end and leaves output unset.
			c.done = true
			return CmdEnd, 0, 0, 0
		}
		dx := zigzag(dxRaw)
		dy := zigzag(dyRaw)
		c.x += float64(dx) / c.scaleX
		c.y += float64(dy) / c.scaleY
		if Command(c.cmd) == CmdMoveTo {
			c.ox = c.x
			c.oy = c.y
			return CmdMoveTo, c.x, c.y, runLen
		}
		return CmdLineTo, c.x, c.y, runLen
	case CmdClose:
		return CmdClose, c.ox, c.oy, runLen
	default:
		if c.logger != nil {
			c.logger.Printf("mvtgeom: unknown command %d in geometry stream", c.cmd)
		}
		c.done = true
		return CmdEnd, 0, 0, 0
	}
}
