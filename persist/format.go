package persist

import (
	"github.com/voidshard/tilegrid"
)

// File names, relative to the save directory.
const (
	MetaFile      = "tilemap_meta"
	TilesFile     = "tiles"
	PatternSuffix = ".pattern"
)

// formatVersion is bumped on incompatible changes to the files below.
const formatVersion = 1

// SerializedTile is one tile on disk. Its coordinate is implied by its
// position in the row-major cell sequence, and its chunk is recomputed on
// load.
//
// Per-layer values are lists rather than arrays so files written with a
// different layer count still load: missing layers are empty and extra
// ones are dropped.
type SerializedTile struct {
	Textures  []int32             `yaml:"texture_indices,flow"`
	Flip      []uint32            `yaml:"flip,flow"`
	TopLayer  int                 `yaml:"top_layer"`
	Color     []float32           `yaml:"color,flow"`
	Animation *tilegrid.Animation `yaml:"anim,omitempty"`
}

func serializeTile(r tilegrid.Record) *SerializedTile {
	st := &SerializedTile{
		Textures: append([]int32(nil), r.Textures[:]...),
		Flip:     make([]uint32, len(r.Flip)),
		TopLayer: r.TopLayer,
		Color:    append([]float32(nil), r.Color[:]...),
	}
	for i, f := range r.Flip {
		st.Flip[i] = uint32(f)
	}
	if r.Animation != nil {
		a := *r.Animation
		st.Animation = &a
	}
	return st
}

// Record converts back to a placeable record.
func (st *SerializedTile) Record() tilegrid.Record {
	r := tilegrid.Record{
		TopLayer: st.TopLayer,
		Color:    tilegrid.White,
	}
	for i := range r.Textures {
		r.Textures[i] = tilegrid.NoTexture
	}
	copy(r.Textures[:], st.Textures)
	for i := 0; i < len(st.Flip) && i < len(r.Flip); i++ {
		r.Flip[i] = tilegrid.Flip(st.Flip[i])
	}
	if len(st.Color) > 0 {
		r.Color = tilegrid.Color{}
		copy(r.Color[:], st.Color)
	}
	if st.Animation != nil {
		a := *st.Animation
		r.Animation = &a
	}
	return r
}

// serializeTiles captures every cell of g in row-major order, nil for
// empty cells.
func serializeTiles(g *tilegrid.Grid) []*SerializedTile {
	size := g.Size()
	out := make([]*SerializedTile, 0, size.Area())
	for y := uint32(0); y < size.Y; y++ {
		for x := uint32(0); x < size.X; x++ {
			r, ok := g.At(tilegrid.Vec(x, y))
			if !ok {
				out = append(out, nil)
				continue
			}
			out = append(out, serializeTile(r))
		}
	}
	return out
}

// SerializedTilemap is the tilemap_meta file.
type SerializedTilemap struct {
	Version    int                      `yaml:"version"`
	Name       string                   `yaml:"name"`
	Size       tilegrid.UVec2           `yaml:"size"`
	ChunkSize  tilegrid.UVec2           `yaml:"render_chunk_size"`
	Geometry   tilegrid.Geometry        `yaml:"geometry"`
	TileSize   tilegrid.UVec2           `yaml:"tile_size"`
	Texture    *tilegrid.Texture        `yaml:"texture,omitempty"`
	Layers     LayerMask                `yaml:"layers"`
	Animations *tilegrid.AnimationTable `yaml:"animations,omitempty"`
	Properties *tilegrid.Properties     `yaml:"properties,omitempty"`
}

// serializeTilemap builds the metadata record. mask is the set of layers
// actually written, which Load trusts.
func serializeTilemap(m *tilegrid.Tilemap, req *SaveRequest, mask LayerMask) *SerializedTilemap {
	st := &SerializedTilemap{
		Version:    formatVersion,
		Name:       m.Name,
		Size:       m.Size(),
		ChunkSize:  m.ChunkSize(),
		Geometry:   m.Geometry,
		TileSize:   m.TileSize,
		Layers:     mask,
		Animations: m.Animations,
		Properties: m.MapProperties(),
	}
	if m.Texture != nil {
		t := *m.Texture
		st.Texture = &t
	}
	if req.TexturePath != "" {
		if st.Texture == nil {
			st.Texture = &tilegrid.Texture{}
		}
		st.Texture.Path = req.TexturePath
	}
	return st
}
