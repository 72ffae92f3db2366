package render

import (
	"encoding/binary"
	"math"

	"github.com/voidshard/tilegrid"
)

const (
	verticesPerTile = 4
	indicesPerTile  = 6
)

// quadIndices are the two clockwise triangles of a tile quad whose
// corners are numbered bottom-left, top-left, top-right, bottom-right.
var quadIndices = [indicesPerTile]uint32{0, 1, 2, 0, 2, 3}

// ChunkMesh is the vertex and index data of one render chunk.
type ChunkMesh struct {
	Chunk    int
	Vertices []byte
	Indices  []uint32
	Stride   uint64
	Tiles    int
}

// BuildChunkMesh packs the tiles of a chunk into vertices laid out as
// VertexFormats(textured) describes.
//
// Each tile becomes a quad of four vertices. The position is the tile
// coordinate with the corner number in z; the shader projects it for the
// map geometry.
func BuildChunkMesh(g *tilegrid.Grid, chunk int, textured bool) ChunkMesh {
	layout := VertexLayout(0, VertexFormats(textured)...)
	stride := layout.ArrayStride

	n := g.ChunkLen(chunk)
	mesh := ChunkMesh{
		Chunk:    chunk,
		Vertices: make([]byte, 0, uint64(n*verticesPerTile)*stride),
		Indices:  make([]uint32, 0, n*indicesPerTile),
		Stride:   stride,
	}

	for rec := range g.Chunk(chunk) {
		base := uint32(mesh.Tiles * verticesPerTile)
		for corner := 0; corner < verticesPerTile; corner++ {
			mesh.Vertices = appendVertex(mesh.Vertices, &rec, corner, textured)
		}
		for _, i := range quadIndices {
			mesh.Indices = append(mesh.Indices, base+i)
		}
		mesh.Tiles++
	}
	return mesh
}

func appendVertex(buf []byte, rec *tilegrid.Record, corner int, textured bool) []byte {
	le := binary.LittleEndian

	// position
	buf = le.AppendUint32(buf, math.Float32bits(float32(rec.Coord.X)))
	buf = le.AppendUint32(buf, math.Float32bits(float32(rec.Coord.Y)))
	buf = le.AppendUint32(buf, math.Float32bits(float32(corner)))

	// top layer, anim start, anim length, anim layer
	animStart, animLen, animLayer := int32(-1), int32(0), int32(-1)
	if a := rec.Animation; a != nil {
		animStart, animLen, animLayer = int32(a.Start), int32(a.Length), int32(a.Layer)
	}
	buf = le.AppendUint32(buf, uint32(int32(rec.TopLayer)))
	buf = le.AppendUint32(buf, uint32(animStart))
	buf = le.AppendUint32(buf, uint32(animLen))
	buf = le.AppendUint32(buf, uint32(animLayer))

	// color
	for _, c := range rec.Color {
		buf = le.AppendUint32(buf, math.Float32bits(c))
	}

	if !textured {
		return buf
	}
	for _, t := range rec.Textures {
		buf = le.AppendUint32(buf, uint32(t))
	}
	for _, f := range rec.Flip {
		buf = le.AppendUint32(buf, uint32(f))
	}
	return buf
}
