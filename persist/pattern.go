package persist

import (
	"fmt"

	"github.com/go-yaml/yaml"

	"github.com/voidshard/tilegrid"
)

// Pattern is a location-agnostic snapshot of a tile layout, meant to be
// stamped into other tilemaps. It carries no map identity or texture.
type Pattern struct {
	Label *string           `yaml:"label"`
	Size  tilegrid.UVec2    `yaml:"size"`
	Tiles []*SerializedTile `yaml:"tiles"`

	// Layers holds auxiliary layer sequences keyed by provider name,
	// e.g. "path_tiles".
	Layers map[string]interface{} `yaml:",inline"`
}

func newPattern(size tilegrid.UVec2) *Pattern {
	return &Pattern{
		Size:   size,
		Tiles:  []*SerializedTile{},
		Layers: map[string]interface{}{},
	}
}

// CapturePattern copies the tiles in the rectangle starting at origin into
// a new pattern. Cells outside the map are left empty.
func CapturePattern(m *tilegrid.Tilemap, origin, size tilegrid.UVec2, label string) *Pattern {
	p := newPattern(size)
	if label != "" {
		p.Label = &label
	}
	for y := uint32(0); y < size.Y; y++ {
		for x := uint32(0); x < size.X; x++ {
			at, ok := origin.Offset(tilegrid.Vec(x, y))
			if !ok {
				p.Tiles = append(p.Tiles, nil)
				continue
			}
			r, ok := m.Grid().At(at)
			if !ok {
				p.Tiles = append(p.Tiles, nil)
				continue
			}
			p.Tiles = append(p.Tiles, serializeTile(r))
		}
	}
	return p
}

// cells visits every non-empty tile with its offset inside the pattern.
func (p *Pattern) cells(fn func(offset tilegrid.UVec2, st *SerializedTile) bool) {
	if p.Size.X == 0 {
		return
	}
	for i, st := range p.Tiles {
		if st == nil {
			continue
		}
		// the reverse of index = y * width + x
		off := tilegrid.Vec(uint32(i)%p.Size.X, uint32(i)/p.Size.X)
		if !fn(off, st) {
			return
		}
	}
}

// Fits returns if stamping the pattern with its top left at origin would
// stay inside t and not overwrite any tile already there. Empty pattern
// cells are ignored.
func (p *Pattern) Fits(t tilegrid.Tileable, origin tilegrid.UVec2) bool {
	size := t.Size()
	fits := true
	p.cells(func(off tilegrid.UVec2, _ *SerializedTile) bool {
		at, ok := origin.Offset(off)
		if !ok || !size.Contains(at) {
			fits = false
			return false
		}
		if _, taken := t.At(at); taken {
			fits = false
			return false
		}
		return true
	})
	return fits
}

// Stamp places the pattern's tiles with its top left at origin. Nothing is
// placed unless the whole pattern fits.
func (p *Pattern) Stamp(t tilegrid.Tileable, origin tilegrid.UVec2) (int, error) {
	if !p.Fits(t, origin) {
		return 0, fmt.Errorf("%w at %v", ErrPatternDoesNotFit, origin)
	}

	placed := 0
	var err error
	p.cells(func(off tilegrid.UVec2, st *SerializedTile) bool {
		// Fits has ruled out overflow
		at, _ := origin.Offset(off)
		if _, err = t.Place(at, tilegrid.BuilderFromRecord(st.Record())); err != nil {
			return false
		}
		placed++
		return true
	})
	return placed, err
}

// layerDecoder returns a decode function for an auxiliary layer held in
// Layers. The value was decoded generically, so it is re-encoded and then
// decoded into the provider's own type.
func (p *Pattern) layerDecoder(name string) (func(interface{}) error, bool) {
	raw, ok := p.Layers[name]
	if !ok {
		return nil, false
	}
	return func(v interface{}) error {
		data, err := yaml.Marshal(raw)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, v)
	}, true
}

// DecodeLayer decodes the auxiliary layer saved under name into v. It
// reports false, with no error, when the pattern has no such layer.
func (p *Pattern) DecodeLayer(name string, v interface{}) (bool, error) {
	decode, ok := p.layerDecoder(name)
	if !ok {
		return false, nil
	}
	return true, decode(v)
}
