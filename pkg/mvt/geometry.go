package mvt

import (
	"github.com/paulmach/orb"

	"github.com/glyphmaps/mvtgeom/internal/decode"
)

// DecodedFeature pairs a feature's resolved attributes with its geometry,
// converted from THE CORE's internal representation to orb.Geometry so
// callers can hand it straight to anything in the orb ecosystem (encoding,
// simplification, planar operations).
type DecodedFeature struct {
	ID       uint64
	Tags     map[string]Value
	Geometry orb.Geometry
}

// DecodedLayer is a Layer with every feature's geometry decoded.
type DecodedLayer struct {
	Name     string
	Extent   uint32
	Features []DecodedFeature
}

// Decode parses a raw MVT payload and decodes every feature of every layer.
// A feature whose geometry stream is malformed in a way THE CORE tolerates
// (truncation, an unknown command) yields a partial or empty geometry
// rather than aborting the whole tile; only top-level framing errors
// (*ErrMalformedTile) abort Decode.
func Decode(data []byte, opts DecodeOptions) ([]DecodedLayer, error) {
	tile, err := ReadTile(data)
	if err != nil {
		return nil, err
	}
	out := make([]DecodedLayer, 0, len(tile.Layers))
	for _, l := range tile.Layers {
		dl, err := DecodeLayer(l, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, *dl)
	}
	return out, nil
}

// DecodeLayer decodes every feature of a single, already-parsed Layer.
func DecodeLayer(l *Layer, opts DecodeOptions) (*DecodedLayer, error) {
	scaleX, scaleY := 1.0, 1.0
	tileX, tileY := 0.0, 0.0
	if opts.WorldSize > 0 && l.Extent > 0 {
		scaleX = float64(l.Extent) / opts.WorldSize
		scaleY = scaleX
		tileX = opts.TileX * opts.WorldSize
		tileY = opts.TileY * opts.WorldSize
	}

	dl := &DecodedLayer{
		Name:     l.Name,
		Extent:   l.Extent,
		Features: make([]DecodedFeature, 0, len(l.Features)),
	}
	for _, f := range l.Features {
		geom, err := decode.DecodeSlice(f.Geometry, f.Type, decode.Options{
			TileX: tileX, TileY: tileY, ScaleX: scaleX, ScaleY: scaleY, Logger: opts.Logger,
		})
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Printf("mvtgeom: feature %d: %v", f.ID, err)
			}
			continue
		}
		dl.Features = append(dl.Features, DecodedFeature{
			ID:       f.ID,
			Tags:     l.Tags(f),
			Geometry: toOrb(geom),
		})
	}
	return dl, nil
}

// toOrb converts THE CORE's internal Geometry union to the matching
// orb.Geometry implementation. An empty internal geometry converts to a nil
// orb.Geometry (no orb type represents "empty" uniformly).
func toOrb(g decode.Geometry) orb.Geometry {
	switch g.Kind {
	case decode.KindPoint:
		return orb.Point{g.Point.X, g.Point.Y}
	case decode.KindMultiPoint:
		mp := make(orb.MultiPoint, len(g.MultiPoint))
		for i, p := range g.MultiPoint {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp
	case decode.KindLineString:
		return toOrbLineString(g.Line)
	case decode.KindMultiLineString:
		mls := make(orb.MultiLineString, len(g.MultiLine))
		for i, l := range g.MultiLine {
			mls[i] = toOrbLineString(l)
		}
		return mls
	case decode.KindPolygon:
		return toOrbPolygon(g.Polygon)
	case decode.KindMultiPolygon:
		mp := make(orb.MultiPolygon, len(g.MultiPolygon))
		for i, p := range g.MultiPolygon {
			mp[i] = toOrbPolygon(p)
		}
		return mp
	default:
		return nil
	}
}

func toOrbLineString(pts []decode.Point) orb.LineString {
	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

func toOrbRing(r decode.Ring) orb.Ring {
	ring := make(orb.Ring, len(r))
	for i, p := range r {
		ring[i] = orb.Point{p.X, p.Y}
	}
	return ring
}

func toOrbPolygon(p decode.Polygon) orb.Polygon {
	poly := make(orb.Polygon, 0, 1+len(p.Holes))
	poly = append(poly, toOrbRing(p.Exterior))
	for _, h := range p.Holes {
		poly = append(poly, toOrbRing(h))
	}
	return poly
}
