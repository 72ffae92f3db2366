package tilegrid

// ChunksPerRow is how many render chunks span the width of a map.
// A trailing partial chunk counts as a full one.
func ChunksPerRow(gridSize, chunkSize UVec2) int {
	n := gridSize.X / chunkSize.X
	if gridSize.X%chunkSize.X != 0 {
		n++
	}
	return int(n)
}

// ChunksPerColumn is ChunksPerRow for the map height.
func ChunksPerColumn(gridSize, chunkSize UVec2) int {
	n := gridSize.Y / chunkSize.Y
	if gridSize.Y%chunkSize.Y != 0 {
		n++
	}
	return int(n)
}

// ChunkCount is the number of render chunks covering the whole map.
func ChunkCount(gridSize, chunkSize UVec2) int {
	return ChunksPerRow(gridSize, chunkSize) * ChunksPerColumn(gridSize, chunkSize)
}

// ChunkIndex maps a tile coordinate to the linear id of the render chunk
// holding it. Chunks are numbered row-major; the row stride is rounded up
// when the map width is not a multiple of the chunk width.
//
// coord must lie within gridSize and chunkSize must be non zero.
func ChunkIndex(coord, gridSize, chunkSize UVec2) int {
	return int(coord.Y/chunkSize.Y)*ChunksPerRow(gridSize, chunkSize) + int(coord.X/chunkSize.X)
}

// ChunkOrigin is the coordinate of the top left tile of chunk id.
func ChunkOrigin(id int, gridSize, chunkSize UVec2) UVec2 {
	perRow := ChunksPerRow(gridSize, chunkSize)
	return UVec2{
		X: uint32(id%perRow) * chunkSize.X,
		Y: uint32(id/perRow) * chunkSize.Y,
	}
}
