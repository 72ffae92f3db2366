package tilegrid

// Tileable is something tiles can be placed into.
type Tileable interface {
	// Size is the extent in tiles; valid coordinates are < Size.
	Size() UVec2

	// At returns a copy of the tile at coord, if any.
	At(coord UVec2) (Record, bool)

	// Place a new tile at coord. Fails if coord is out of bounds or
	// already holds a tile.
	Place(coord UVec2, b *Builder) (TileID, error)

	// Remove the tile at coord, returning it.
	Remove(coord UVec2) (Record, bool)
}
