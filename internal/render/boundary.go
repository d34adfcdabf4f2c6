package render

import (
	"errors"
	"fmt"

	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
)

// ErrNoPolygons is returned when the boundary shapefile contains no
// polygon shapes.
var ErrNoPolygons = errors.New("boundary shapefile contains no polygons")

// LoadBoundary reads the region outline from an ESRI shapefile and
// returns it as a MultiPolygon in lon/lat order. Every ring of every
// polygon record becomes its own single-ring polygon; for outline
// rendering the ring nesting does not matter.
func LoadBoundary(path string) (*geom.MultiPolygon, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open boundary shapefile %s: %w", path, err)
	}
	defer func() { _ = reader.Close() }()

	boundary := geom.NewMultiPolygon(geom.XY)

	for reader.Next() {
		_, shape := reader.Shape()
		polygon, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}

		for _, ring := range polygonRings(polygon) {
			poly := geom.NewPolygonFlat(geom.XY, ring, []int{len(ring)})
			if err = boundary.Push(poly); err != nil {
				return nil, fmt.Errorf("failed to assemble boundary geometry: %w", err)
			}
		}
	}

	if boundary.NumPolygons() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPolygons, path)
	}

	return boundary, nil
}

// polygonRings splits a shapefile polygon into its parts, each returned
// as a flat [x0 y0 x1 y1 ...] coordinate slice.
func polygonRings(polygon *shp.Polygon) [][]float64 {
	rings := make([][]float64, 0, polygon.NumParts)

	for i := int32(0); i < polygon.NumParts; i++ {
		start := polygon.Parts[i]
		end := int32(len(polygon.Points))
		if i+1 < polygon.NumParts {
			end = polygon.Parts[i+1]
		}

		if end-start < 3 {
			continue // degenerate ring
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, polygon.Points[j].X, polygon.Points[j].Y)
		}
		rings = append(rings, flat)
	}

	return rings
}
