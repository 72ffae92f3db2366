package pathtile

import (
	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/persist"
)

// FileName is the file (tilemap mode) or key (pattern mode) the layer is
// saved under.
const FileName = "path_tiles"

// Provider persists path layers; register it with persist.NewCodec.
type Provider struct{}

func (Provider) Layer() persist.Layer { return persist.LayerPath }

func (Provider) Name() string { return FileName }

func (Provider) Export(m *tilegrid.Tilemap) (interface{}, bool) {
	l, ok := Of(m)
	if !ok {
		return nil, false
	}
	return l.Cells(), true
}

func (Provider) Import(m *tilegrid.Tilemap, decode func(interface{}) error) error {
	cells := []*Cell{}
	if err := decode(&cells); err != nil {
		return err
	}
	l, err := fromCells(m.Size(), cells)
	if err != nil {
		return err
	}
	return Attach(m, l)
}
