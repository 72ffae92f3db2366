// Package pathtile holds the pathfinding cost layer of a tilemap and the
// provider that persists it.
package pathtile

import (
	"fmt"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/persist"
)

// Cell is the pathfinding data of one grid cell.
type Cell struct {
	Cost uint32 `yaml:"cost"`
}

// Layer is a sparse per-cell cost grid the size of its tilemap.
type Layer struct {
	size  tilegrid.UVec2
	cells []*Cell
}

// New returns an empty layer of the given extent.
func New(size tilegrid.UVec2) *Layer {
	return &Layer{size: size, cells: make([]*Cell, size.Area())}
}

func (l *Layer) Size() tilegrid.UVec2 { return l.size }

// Set writes the cost at coord.
func (l *Layer) Set(coord tilegrid.UVec2, c Cell) error {
	if !l.size.Contains(coord) {
		return fmt.Errorf("%w: %v not within %v", tilegrid.ErrOutOfBounds, coord, l.size)
	}
	l.cells[l.index(coord)] = &c
	return nil
}

// At returns the cost at coord, if one was set.
func (l *Layer) At(coord tilegrid.UVec2) (Cell, bool) {
	if !l.size.Contains(coord) {
		return Cell{}, false
	}
	c := l.cells[l.index(coord)]
	if c == nil {
		return Cell{}, false
	}
	return *c, true
}

// Clear removes the cost at coord.
func (l *Layer) Clear(coord tilegrid.UVec2) {
	if l.size.Contains(coord) {
		l.cells[l.index(coord)] = nil
	}
}

// Len is the number of cells with a cost.
func (l *Layer) Len() int {
	n := 0
	for _, c := range l.cells {
		if c != nil {
			n++
		}
	}
	return n
}

// Cells returns a row-major copy of the layer, nil where unset.
func (l *Layer) Cells() []*Cell {
	out := make([]*Cell, len(l.cells))
	for i, c := range l.cells {
		if c != nil {
			cp := *c
			out[i] = &cp
		}
	}
	return out
}

func (l *Layer) index(coord tilegrid.UVec2) int {
	return int(coord.Y)*int(l.size.X) + int(coord.X)
}

// fromCells builds a layer from a row-major sequence.
func fromCells(size tilegrid.UVec2, cells []*Cell) (*Layer, error) {
	if len(cells) != size.Area() {
		return nil, fmt.Errorf("expected %d path cells for %v, found %d", size.Area(), size, len(cells))
	}
	l := New(size)
	copy(l.cells, cells)
	return l, nil
}

// layerKey is the tilemap attachment key of a Layer.
type layerKey struct{}

// Attach sets the path layer of m. The layer must match the map size.
func Attach(m *tilegrid.Tilemap, l *Layer) error {
	if l.size != m.Size() {
		return fmt.Errorf("path layer %v does not match tilemap %v", l.size, m.Size())
	}
	m.Attach(layerKey{}, l)
	return nil
}

// Of returns the path layer attached to m.
func Of(m *tilegrid.Tilemap) (*Layer, bool) {
	v, ok := m.Attachment(layerKey{})
	if !ok {
		return nil, false
	}
	return v.(*Layer), true
}

// Crop copies the rectangle of l starting at origin into a new layer of
// the given size. Cells outside l are left unset.
func Crop(l *Layer, origin, size tilegrid.UVec2) *Layer {
	out := New(size)
	for y := uint32(0); y < size.Y; y++ {
		for x := uint32(0); x < size.X; x++ {
			at, ok := origin.Offset(tilegrid.Vec(x, y))
			if !ok {
				continue
			}
			if c, ok := l.At(at); ok {
				out.cells[out.index(tilegrid.Vec(x, y))] = &c
			}
		}
	}
	return out
}

// Stamp copies the path cells of p into the path layer of m with the
// pattern's top left at origin, creating the layer if m has none. Unset
// pattern cells leave the map's costs alone. Nothing is written unless
// every set cell lands inside m. It reports false if p holds no path data.
func Stamp(m *tilegrid.Tilemap, p *persist.Pattern, origin tilegrid.UVec2) (bool, error) {
	cells := []*Cell{}
	found, err := p.DecodeLayer(FileName, &cells)
	if err != nil {
		return false, fmt.Errorf("decoding %s: %w", FileName, err)
	}
	if !found {
		return false, nil
	}
	src, err := fromCells(p.Size, cells)
	if err != nil {
		return false, err
	}

	size := m.Size()
	targets := make([]tilegrid.UVec2, len(src.cells))
	for i, c := range src.cells {
		if c == nil {
			continue
		}
		at, ok := origin.Offset(tilegrid.Vec(uint32(i)%p.Size.X, uint32(i)/p.Size.X))
		if !ok || !size.Contains(at) {
			return false, fmt.Errorf("%w: path cell %d of pattern at %v", tilegrid.ErrOutOfBounds, i, origin)
		}
		targets[i] = at
	}

	l, ok := Of(m)
	if !ok {
		l = New(size)
		if err := Attach(m, l); err != nil {
			return false, err
		}
	}
	for i, c := range src.cells {
		if c != nil {
			l.cells[l.index(targets[i])] = &Cell{Cost: c.Cost}
		}
	}
	return true, nil
}
