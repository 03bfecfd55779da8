package mvt

import "log"

// DecodeOptions controls how a Layer's feature geometries are placed and
// scaled when converted to orb.Geometry, and where diagnostics go.
type DecodeOptions struct {
	// TileX, TileY are the tile's column/row at its zoom level, used to
	// compute the world-space origin the layer's local extent is offset
	// from. Both default to 0.
	TileX, TileY float64

	// WorldSize is the length, in output units, of one tile's edge: the
	// layer's full extent is scaled onto WorldSize and the tile's origin is
	// (TileX*WorldSize, TileY*WorldSize). A zero value leaves coordinates
	// in layer-extent units (no projection applied), which is the right
	// choice for callers that only want tile-local geometry.
	WorldSize float64

	// Logger receives non-fatal diagnostics encountered while decoding
	// (e.g. an unknown command in a geometry stream, or a feature dropped
	// for an unsupported geometry type). A nil Logger
	// discards diagnostics.
	Logger *log.Logger
}

// DefaultDecodeOptions returns the zero-projection, tile-local option set:
// geometries are left in layer-extent coordinate space and diagnostics are
// discarded.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{}
}
