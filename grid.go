package tilegrid

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// slot is one arena entry. A slot is live while a tile occupies it; on
// removal its generation is bumped and it joins the free list.
type slot struct {
	rec  Record
	gen  uint32
	live bool
	seq  uint64 // insertion order, used to rebuild chunk lists
}

// Grid is the sparse tile storage of a single tilemap.
//
// Tiles live in an arena indexed by TileID. A dense cell array maps
// coordinates to arena slots, and each render chunk keeps its tiles in
// insertion order for batched upload.
//
// Grid is not safe for concurrent mutation.
type Grid struct {
	owner     MapID
	size      UVec2
	chunkSize UVec2

	slots []slot
	free  []uint32

	// cells holds slot index + 1 per coordinate, row major; 0 is empty.
	cells  []uint32
	chunks map[int][]uint32

	seq uint64
	len int
}

// NewGrid returns an empty grid of the given extent. chunkSize must be
// non zero in both dimensions.
func NewGrid(owner MapID, size, chunkSize UVec2) *Grid {
	if chunkSize.X == 0 || chunkSize.Y == 0 {
		panic(fmt.Sprintf("tilegrid: invalid render chunk size %v", chunkSize))
	}
	return &Grid{
		owner:     owner,
		size:      size,
		chunkSize: chunkSize,
		cells:     make([]uint32, size.Area()),
		chunks:    map[int][]uint32{},
	}
}

func (g *Grid) Owner() MapID     { return g.owner }
func (g *Grid) Size() UVec2      { return g.size }
func (g *Grid) ChunkSize() UVec2 { return g.chunkSize }

// Len is the number of tiles placed.
func (g *Grid) Len() int { return g.len }

// ChunkCount is the number of render chunks covering the grid, populated
// or not.
func (g *Grid) ChunkCount() int {
	return ChunkCount(g.size, g.chunkSize)
}

// cell returns the index into g.cells for coord
func (g *Grid) cell(coord UVec2) int {
	return int(coord.Y)*int(g.size.X) + int(coord.X)
}

// Place stores a new tile at coord and returns its handle.
func (g *Grid) Place(coord UVec2, b *Builder) (TileID, error) {
	if !g.size.Contains(coord) {
		return TileID{}, fmt.Errorf("%w: %v not within %v", ErrOutOfBounds, coord, g.size)
	}
	if err := b.Err(); err != nil {
		return TileID{}, err
	}
	ci := g.cell(coord)
	if g.cells[ci] != 0 {
		return TileID{}, fmt.Errorf("%w: %v", ErrSlotOccupied, coord)
	}

	rec := b.record()
	rec.Map = g.owner
	rec.Coord = coord
	rec.Chunk = ChunkIndex(coord, g.size, g.chunkSize)

	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		idx = uint32(len(g.slots))
		g.slots = append(g.slots, slot{})
	}

	s := &g.slots[idx]
	s.rec = rec
	s.live = true
	s.seq = g.seq
	g.seq++

	g.cells[ci] = idx + 1
	g.chunks[rec.Chunk] = append(g.chunks[rec.Chunk], idx)
	g.len++

	return TileID{Index: idx, Generation: s.gen}, nil
}

// Remove detaches the tile at coord and returns it.
func (g *Grid) Remove(coord UVec2) (Record, bool) {
	id, ok := g.Lookup(coord)
	if !ok {
		return Record{}, false
	}
	return g.RemoveID(id)
}

// RemoveID detaches the tile with the given handle and returns it.
func (g *Grid) RemoveID(id TileID) (Record, bool) {
	s := g.slot(id)
	if s == nil {
		return Record{}, false
	}

	rec := s.rec
	g.cells[g.cell(rec.Coord)] = 0

	members := g.chunks[rec.Chunk]
	if i := slices.Index(members, id.Index); i >= 0 {
		members = slices.Delete(members, i, i+1)
	}
	if len(members) == 0 {
		delete(g.chunks, rec.Chunk)
	} else {
		g.chunks[rec.Chunk] = members
	}

	s.rec = Record{}
	s.live = false
	s.gen++
	g.free = append(g.free, id.Index)
	g.len--

	return rec, true
}

// Lookup returns the handle of the tile at coord.
func (g *Grid) Lookup(coord UVec2) (TileID, bool) {
	if !g.size.Contains(coord) {
		return TileID{}, false
	}
	v := g.cells[g.cell(coord)]
	if v == 0 {
		return TileID{}, false
	}
	idx := v - 1
	return TileID{Index: idx, Generation: g.slots[idx].gen}, true
}

// At returns a copy of the tile at coord.
func (g *Grid) At(coord UVec2) (Record, bool) {
	id, ok := g.Lookup(coord)
	if !ok {
		return Record{}, false
	}
	return g.Get(id)
}

// Get returns a copy of the tile with the given handle.
func (g *Grid) Get(id TileID) (Record, bool) {
	s := g.slot(id)
	if s == nil {
		return Record{}, false
	}
	return s.rec.clone(), true
}

func (g *Grid) slot(id TileID) *slot {
	if int(id.Index) >= len(g.slots) {
		return nil
	}
	s := &g.slots[id.Index]
	if !s.live || s.gen != id.Generation {
		return nil
	}
	return s
}

// SetLayer writes a static texture index to one layer of a tile. Passing
// NoTexture clears the layer.
func (g *Grid) SetLayer(id TileID, layer int, texture int32) error {
	if layer < 0 || layer >= MaxLayerCount {
		return fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer)
	}
	s := g.slot(id)
	if s == nil {
		return ErrNoSuchTile
	}
	if s.rec.Animated(layer) {
		return fmt.Errorf("%w: %d", ErrAnimationOwnsLayer, layer)
	}
	s.rec.Textures[layer] = texture
	s.rec.updateTop()
	return nil
}

// SetFlip sets the flip flags of one layer of a tile.
func (g *Grid) SetFlip(id TileID, layer int, f Flip) error {
	if layer < 0 || layer >= MaxLayerCount {
		return fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer)
	}
	s := g.slot(id)
	if s == nil {
		return ErrNoSuchTile
	}
	s.rec.Flip[layer] = f
	return nil
}

// SetColor changes the tint of a tile.
func (g *Grid) SetColor(id TileID, c Color) error {
	s := g.slot(id)
	if s == nil {
		return ErrNoSuchTile
	}
	s.rec.Color = c
	return nil
}

// SetAnimation attaches, replaces or (with nil) removes the animation of a
// tile. Retargeting an animation to another layer is done here, not via
// SetLayer.
func (g *Grid) SetAnimation(id TileID, a *Animation) error {
	s := g.slot(id)
	if s == nil {
		return ErrNoSuchTile
	}
	if a == nil {
		s.rec.Animation = nil
		s.rec.updateTop()
		return nil
	}
	if a.Layer < 0 || a.Layer >= MaxLayerCount {
		return fmt.Errorf("%w: animation layer %d", ErrLayerOutOfRange, a.Layer)
	}
	cp := *a
	s.rec.Animation = &cp
	s.rec.updateTop()
	return nil
}

// Chunk yields the tiles of one render chunk in insertion order.
// The grid must not be mutated while iterating.
func (g *Grid) Chunk(id int) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, idx := range g.chunks[id] {
			if !yield(g.slots[idx].rec.clone()) {
				return
			}
		}
	}
}

// ChunkLen is the number of tiles in a render chunk.
func (g *Grid) ChunkLen(id int) int {
	return len(g.chunks[id])
}

// ChunkIDs lists every chunk holding at least one tile, ascending.
func (g *Grid) ChunkIDs() []int {
	ids := make([]int, 0, len(g.chunks))
	for id := range g.chunks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// All yields every tile in row-major coordinate order.
func (g *Grid) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, v := range g.cells {
			if v == 0 {
				continue
			}
			if !yield(g.slots[v-1].rec.clone()) {
				return
			}
		}
	}
}

// SetChunkSize changes the render chunk size, recomputing every cached
// chunk id. Tiles keep their relative insertion order within a chunk.
func (g *Grid) SetChunkSize(chunkSize UVec2) {
	if chunkSize.X == 0 || chunkSize.Y == 0 {
		panic(fmt.Sprintf("tilegrid: invalid render chunk size %v", chunkSize))
	}
	g.chunkSize = chunkSize

	live := make([]uint32, 0, g.len)
	for i := range g.slots {
		if g.slots[i].live {
			live = append(live, uint32(i))
		}
	}
	sort.Slice(live, func(i, j int) bool {
		return g.slots[live[i]].seq < g.slots[live[j]].seq
	})

	g.chunks = map[int][]uint32{}
	for _, idx := range live {
		s := &g.slots[idx]
		s.rec.Chunk = ChunkIndex(s.rec.Coord, g.size, g.chunkSize)
		g.chunks[s.rec.Chunk] = append(g.chunks[s.rec.Chunk], idx)
	}
}
