package persist

import "github.com/voidshard/tilegrid"

// LayerProvider persists one auxiliary per-tile layer. Providers are
// registered with a Codec under their Layer bit.
type LayerProvider interface {
	// Layer is the mask bit this provider answers to. LayerTiles is
	// handled by the codec itself.
	Layer() Layer

	// Name is the file name in ModeTilemap and the key in ModePattern.
	Name() string

	// Export returns the layer of m as a row-major sequence with one
	// entry per cell, nil for empty cells. It returns false if m doesn't
	// carry this layer, in which case nothing is written.
	Export(m *tilegrid.Tilemap) (interface{}, bool)

	// Import decodes a previously exported sequence and attaches it to m.
	Import(m *tilegrid.Tilemap, decode func(interface{}) error) error
}
