package mvt

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// FeatureIndex provides fast spatial queries over a DecodedLayer's
// features, an R-tree built the same way the teacher builds its chart
// index: entries carry just enough metadata to bound and identify the
// underlying value, and a bounding-box query against the tree replaces a
// linear bounds check over every feature.
type FeatureIndex struct {
	entries []indexEntry
	rtree   *rtreego.Rtree
}

type indexEntry struct {
	feature DecodedFeature
	bound   orb.Bound
}

// Bounds satisfies rtreego.Spatial.
func (e indexEntry) Bounds() rtreego.Rect {
	min := e.bound.Min
	lengths := []float64{
		maxf(e.bound.Max[0]-e.bound.Min[0], minRectSize),
		maxf(e.bound.Max[1]-e.bound.Min[1], minRectSize),
	}
	rect, _ := rtreego.NewRect(rtreego.Point{min[0], min[1]}, lengths)
	return rect
}

// minRectSize keeps degenerate (point) bounds from producing a zero-size
// rtreego.Rect, which rtreego.NewRect rejects.
const minRectSize = 1e-9

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// NewFeatureIndex builds a spatial index over a decoded layer's features.
// Features whose geometry is nil (an empty decode result) are skipped.
func NewFeatureIndex(layer *DecodedLayer) *FeatureIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	entries := make([]indexEntry, 0, len(layer.Features))
	for _, f := range layer.Features {
		if f.Geometry == nil {
			continue
		}
		e := indexEntry{feature: f, bound: f.Geometry.Bound()}
		entries = append(entries, e)
		rtree.Insert(e)
	}
	return &FeatureIndex{entries: entries, rtree: rtree}
}

// Query returns every indexed feature whose bounding box intersects bound.
// It returns *ErrFeatureIndexEmpty only when the index holds no features at
// all; a populated index that matches nothing returns a nil slice and a nil
// error.
func (idx *FeatureIndex) Query(bound orb.Bound) ([]DecodedFeature, error) {
	if len(idx.entries) == 0 {
		return nil, &ErrFeatureIndexEmpty{}
	}
	lengths := []float64{
		maxf(bound.Max[0]-bound.Min[0], minRectSize),
		maxf(bound.Max[1]-bound.Min[1], minRectSize),
	}
	rect, err := rtreego.NewRect(rtreego.Point{bound.Min[0], bound.Min[1]}, lengths)
	if err != nil {
		return nil, err
	}

	spatials := idx.rtree.SearchIntersect(rect)
	if len(spatials) == 0 {
		return nil, nil
	}
	out := make([]DecodedFeature, len(spatials))
	for i, s := range spatials {
		out[i] = s.(indexEntry).feature
	}
	return out, nil
}

// Len returns the number of features held in the index.
func (idx *FeatureIndex) Len() int {
	return len(idx.entries)
}
