package tilegrid

// MapID identifies a tilemap within a World.
type MapID uint32

// TileID is a stable handle to a tile in a Grid. The generation guards
// against a handle outliving its tile: once a tile is removed its slot may
// be reused, but never under the same TileID.
type TileID struct {
	Index      uint32
	Generation uint32
}

// Animation drives one texture layer of a tile from a sequence in the
// tilemap's AnimationTable.
type Animation struct {
	Layer  int     `yaml:"layer"`
	Start  uint32  `yaml:"sequence_start"`
	Length uint32  `yaml:"sequence_length"`
	FPS    float32 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

// Record is everything the renderer needs to know about a tile.
type Record struct {
	// Map is the tilemap this tile belongs to.
	Map MapID

	// Chunk is cached from ChunkIndex(Coord, ...); the grid keeps it in sync.
	Chunk int

	Coord    UVec2
	Textures [MaxLayerCount]int32
	Flip     [MaxLayerCount]Flip
	TopLayer int
	Color    Color

	// Animation is nil for static tiles.
	Animation *Animation
}

// Animated reports whether texture layer `layer` is driven by an animation.
func (r *Record) Animated(layer int) bool {
	return r.Animation != nil && r.Animation.Layer == layer
}

// clone copies the record so callers never share the animation pointer
// with the grid.
func (r Record) clone() Record {
	if r.Animation != nil {
		a := *r.Animation
		r.Animation = &a
	}
	return r
}

// updateTop recomputes TopLayer as the highest populated or animated layer.
func (r *Record) updateTop() {
	r.TopLayer = 0
	for i := MaxLayerCount - 1; i >= 0; i-- {
		if r.Textures[i] >= 0 || r.Animated(i) {
			r.TopLayer = i
			return
		}
	}
}
