package mvt

import "fmt"

// ErrMalformedTile indicates the top-level protobuf framing of a Tile,
// Layer, or Feature message could not be parsed. Unlike the lenient
// recovery policies inside the geometry decoder, framing errors are always
// fatal: there is no way to know where the next top-level field begins
// once one fails to parse.
type ErrMalformedTile struct {
	Reason string
}

func (e *ErrMalformedTile) Error() string {
	return fmt.Sprintf("malformed tile: %s", e.Reason)
}

// ErrFeatureIndexEmpty is returned by FeatureIndex.Query only when the
// index holds no features (NewFeatureIndex found no feature with a non-nil
// geometry). An index that has been populated but
// matched nothing returns a nil slice with no error.
type ErrFeatureIndexEmpty struct{}

func (e *ErrFeatureIndexEmpty) Error() string {
	return "feature index: no features have been indexed"
}
