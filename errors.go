package tilegrid

import "errors"

var (
	// ErrOutOfBounds is returned for a coordinate outside the grid extent.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrSlotOccupied is returned when placing over an existing tile.
	// Remove the old tile first.
	ErrSlotOccupied = errors.New("tile slot occupied")

	// ErrLayerOutOfRange is returned for a layer index >= MaxLayerCount.
	ErrLayerOutOfRange = errors.New("texture layer out of range")

	// ErrTextureOutOfRange is returned for a texture index that does not
	// fit a signed 32 bit vertex attribute.
	ErrTextureOutOfRange = errors.New("texture index out of range")

	// ErrAnimationOwnsLayer is returned when writing a static texture index
	// to a layer driven by the tile's animation.
	ErrAnimationOwnsLayer = errors.New("texture layer is driven by an animation")

	// ErrNoSuchTile is returned for a stale or unknown TileID.
	ErrNoSuchTile = errors.New("no such tile")

	// ErrNoSuchMap is returned for a stale or unknown MapID.
	ErrNoSuchMap = errors.New("no such tilemap")

	// ErrAnimationTableFull is returned when the shared frame table has no
	// room for another sequence.
	ErrAnimationTableFull = errors.New("animation table full")
)

// ErrNoTexture is returned when exporting an untextured map to a format
// that needs a tileset.
var ErrNoTexture = errors.New("tilemap has no texture")
