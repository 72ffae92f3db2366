package tilegrid

import (
	"image"

	"github.com/fogleman/gg"
)

// PreviewOptions controls Preview.
type PreviewOptions struct {
	// TilePixels is the edge length of one tile in the output, default 8.
	TilePixels int

	// ChunkLines outlines every render chunk.
	ChunkLines bool

	// Background fills empty cells.
	Background Color
}

// Preview draws the map as a flat grid of tile tints, one square per tile
// regardless of geometry. It's a debugging aid for chunk layout, not a
// renderer.
func Preview(m *Tilemap, opts PreviewOptions) image.Image {
	px := opts.TilePixels
	if px <= 0 {
		px = 8
	}
	size := m.Size()
	dc := gg.NewContext(int(size.X)*px, int(size.Y)*px)

	bg := opts.Background
	dc.SetRGBA(float64(bg[0]), float64(bg[1]), float64(bg[2]), float64(bg[3]))
	dc.Clear()

	for rec := range m.Grid().All() {
		c := rec.Color
		dc.SetRGBA(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
		dc.DrawRectangle(float64(int(rec.Coord.X)*px), float64(int(rec.Coord.Y)*px), float64(px), float64(px))
		dc.Fill()
	}

	if opts.ChunkLines {
		cs := m.ChunkSize()
		w, h := float64(dc.Width()), float64(dc.Height())
		dc.SetRGBA(1, 0, 0, 0.6)
		dc.SetLineWidth(1)
		for x := int(cs.X); x < int(size.X); x += int(cs.X) {
			dc.DrawLine(float64(x*px), 0, float64(x*px), h)
		}
		for y := int(cs.Y); y < int(size.Y); y += int(cs.Y) {
			dc.DrawLine(0, float64(y*px), w, float64(y*px))
		}
		dc.Stroke()
	}

	return dc.Image()
}
