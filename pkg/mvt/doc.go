// Package mvt provides a clean public API for reading Mapbox Vector Tiles
// and decoding their feature geometries into github.com/paulmach/orb types.
package mvt
