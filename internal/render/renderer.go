package render

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/fogleman/gg"
	"github.com/twpayne/go-geom"
	"golang.org/x/image/font/basicfont"

	"github.com/quadrantgeo/pinmap/internal/models"
)

// Extent modes. "data" frames the plotted points with the fixed
// asymmetric padding; "boundary" frames the full region outline.
const (
	ExtentModeData     = "data"
	ExtentModeBoundary = "boundary"
)

// Padding, in degrees, around the data extent. Asymmetric on purpose:
// the legend sits in the lower-left corner and needs room below the
// southernmost marker.
const (
	padWest  = 0.3
	padEast  = 0.5
	padSouth = 1.7
	padNorth = 0.3
)

const boundaryPad = 0.25 // uniform degrees around the outline extent

// Options configures a map rendering pass.
type Options struct {
	BoundaryPath string // Path to the region outline shapefile.
	OutputPath   string // Path of the PNG to write.
	Title        string // Title drawn at the top of the map.
	ExtentMode   string // ExtentModeData or ExtentModeBoundary.
	Width        int    // Output image width in pixels.
	Height       int    // Output image height in pixels.
}

// Renderer draws a geocoded dataset over a region outline and writes the
// composed figure to a PNG file.
type Renderer struct {
	log  *slog.Logger
	opts Options
}

// NewRenderer creates a new Renderer with the given options.
func NewRenderer(log *slog.Logger, opts Options) *Renderer {
	return &Renderer{log: log, opts: opts}
}

// extent is the visible lon/lat window of the map.
type extent struct {
	minLon, maxLon float64
	minLat, maxLat float64
}

// Render plots the resolved rows of the dataset. Rows with absent
// coordinates are dropped; if nothing remains the renderer exits cleanly
// without writing a file. A missing boundary shapefile is a fatal error
// raised before any output is produced.
func (r *Renderer) Render(ctx context.Context, records []models.GeocodedRecord) error {
	plotted := resolvedOnly(records)
	if len(plotted) == 0 {
		r.log.InfoContext(ctx, "No valid addresses to plot, skipping map rendering")
		return nil
	}

	boundary, err := LoadBoundary(r.opts.BoundaryPath)
	if err != nil {
		return fmt.Errorf("failed to load region boundary: %w", err)
	}

	ext := r.computeExtent(plotted, boundary)

	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	dc.SetFontFace(basicfont.Face7x13)

	// Background.
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r.drawBoundary(dc, boundary, ext)
	r.drawMarkers(dc, plotted, ext)
	r.drawLegend(dc, plotted)
	r.drawTitle(dc)

	if err = dc.SavePNG(r.opts.OutputPath); err != nil {
		return fmt.Errorf("failed to write map image %s: %w", r.opts.OutputPath, err)
	}

	r.log.InfoContext(ctx, "Map image written", "path", r.opts.OutputPath,
		"markers", len(plotted), "width", r.opts.Width, "height", r.opts.Height)

	return nil
}

func resolvedOnly(records []models.GeocodedRecord) []models.GeocodedRecord {
	plotted := make([]models.GeocodedRecord, 0, len(records))
	for _, rec := range records {
		if rec.Resolved() {
			plotted = append(plotted, rec)
		}
	}
	return plotted
}

func (r *Renderer) computeExtent(records []models.GeocodedRecord, boundary *geom.MultiPolygon) extent {
	if r.opts.ExtentMode == ExtentModeBoundary {
		bounds := boundary.Bounds()
		return extent{
			minLon: bounds.Min(0) - boundaryPad,
			maxLon: bounds.Max(0) + boundaryPad,
			minLat: bounds.Min(1) - boundaryPad,
			maxLat: bounds.Max(1) + boundaryPad,
		}
	}

	minLon, maxLon := *records[0].Longitude, *records[0].Longitude
	minLat, maxLat := *records[0].Latitude, *records[0].Latitude
	for _, rec := range records[1:] {
		minLon = min(minLon, *rec.Longitude)
		maxLon = max(maxLon, *rec.Longitude)
		minLat = min(minLat, *rec.Latitude)
		maxLat = max(maxLat, *rec.Latitude)
	}

	return extent{
		minLon: minLon - padWest,
		maxLon: maxLon + padEast,
		minLat: minLat - padSouth,
		maxLat: maxLat + padNorth,
	}
}

// project maps lon/lat to pixel coordinates with a plate carree
// projection over the visible extent. The y axis is flipped: north up.
func (r *Renderer) project(lon, lat float64, ext extent) (float64, float64) {
	x := (lon - ext.minLon) / (ext.maxLon - ext.minLon) * float64(r.opts.Width)
	y := float64(r.opts.Height) - (lat-ext.minLat)/(ext.maxLat-ext.minLat)*float64(r.opts.Height)
	return x, y
}

func (r *Renderer) drawBoundary(dc *gg.Context, boundary *geom.MultiPolygon, ext extent) {
	for i := 0; i < boundary.NumPolygons(); i++ {
		polygon := boundary.Polygon(i)
		for j := 0; j < polygon.NumLinearRings(); j++ {
			flat := polygon.LinearRing(j).FlatCoords()

			dc.NewSubPath()
			for k := 0; k < len(flat); k += 2 {
				x, y := r.project(flat[k], flat[k+1], ext)
				if k == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
		}
	}

	// Land fill with a gray outline, matching the plain base-map look.
	dc.SetRGB255(245, 245, 238)
	dc.FillPreserve()
	dc.SetRGB255(128, 128, 128)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func (r *Renderer) drawMarkers(dc *gg.Context, records []models.GeocodedRecord, ext extent) {
	const markerRadius = 7.0

	for i, rec := range records {
		x, y := r.project(*rec.Longitude, *rec.Latitude, ext)

		dc.DrawCircle(x, y, markerRadius)
		dc.SetColor(MarkerColor(i))
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

// drawLegend renders a fixed two-column legend box in the lower-left
// corner, one swatch + institution name per plotted row.
func (r *Renderer) drawLegend(dc *gg.Context, records []models.GeocodedRecord) {
	const (
		margin  = 12.0
		padding = 10.0
		entryH  = 18.0
		swatchR = 5.0
		textGap = 16.0
		columns = 2
		colGap  = 24.0
	)

	rows := int(math.Ceil(float64(len(records)) / columns))

	// Column width follows the widest label.
	var maxTextW float64
	for _, rec := range records {
		w, _ := dc.MeasureString(rec.Institution)
		if w > maxTextW {
			maxTextW = w
		}
	}
	colW := swatchR*2 + textGap + maxTextW

	boxW := padding*2 + colW*columns + colGap*(columns-1)
	boxH := padding*2 + entryH*float64(rows)
	boxX := margin
	boxY := float64(r.opts.Height) - margin - boxH

	dc.DrawRectangle(boxX, boxY, boxW, boxH)
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.Stroke()

	for i, rec := range records {
		col := i / rows
		row := i % rows

		cx := boxX + padding + float64(col)*(colW+colGap) + swatchR
		cy := boxY + padding + float64(row)*entryH + entryH/2

		dc.DrawCircle(cx, cy, swatchR)
		dc.SetColor(MarkerColor(i))
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.DrawStringAnchored(rec.Institution, cx+swatchR+textGap/2, cy, 0, 0.35)
	}
}

func (r *Renderer) drawTitle(dc *gg.Context) {
	if r.opts.Title == "" {
		return
	}
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(r.opts.Title, float64(r.opts.Width)/2, 20, 0.5, 0.5)
}
