package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/glyphmaps/mvtgeom/pkg/mvt"
)

func main() {
	tilePath := flag.String("tile", "", "Path to a .mvt/.pbf vector tile file")
	layerName := flag.String("layer", "", "Only report on this layer (default: all layers)")
	flag.Parse()

	if *tilePath == "" {
		log.Fatal("Please provide -tile path")
	}

	data, err := os.ReadFile(*tilePath)
	if err != nil {
		log.Fatal(err)
	}

	logger := log.New(os.Stderr, "mvtinfo: ", 0)
	layers, err := mvt.Decode(data, mvt.DecodeOptions{Logger: logger})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== Tile Information ===\n")
	fmt.Printf("Layers: %d\n\n", len(layers))

	for _, l := range layers {
		if *layerName != "" && l.Name != *layerName {
			continue
		}

		fmt.Printf("=== Layer: %s ===\n", l.Name)
		fmt.Printf("Extent: %d\n", l.Extent)
		fmt.Printf("Features: %d\n\n", len(l.Features))

		counts := make(map[string]int)
		for _, f := range l.Features {
			counts[geometryKind(f)]++
		}

		fmt.Printf("=== Geometry Types ===\n")
		for kind, count := range counts {
			fmt.Printf("%-16s: %d\n", kind, count)
		}
		fmt.Println()
	}
}

func geometryKind(f mvt.DecodedFeature) string {
	if f.Geometry == nil {
		return "(empty)"
	}
	return f.Geometry.GeoJSONType()
}
