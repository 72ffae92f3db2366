package render

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/tilegrid"
)

func TestBuildChunkMesh(t *testing.T) {
	g := tilegrid.NewGrid(1, tilegrid.Vec(8, 8), tilegrid.Vec(4, 4))

	_, err := tilegrid.NewBuilder(3).WithFlip(0, tilegrid.FlipVertical).Build(g, tilegrid.Vec(5, 1))
	require.NoError(t, err)
	_, err = tilegrid.NewBuilder(1).WithAnimation(tilegrid.Animation{Layer: 1, Start: 6, Length: 2}).Build(g, tilegrid.Vec(4, 0))
	require.NoError(t, err)
	_, err = tilegrid.NewBuilder(0).Build(g, tilegrid.Vec(0, 0))
	require.NoError(t, err)

	mesh := BuildChunkMesh(g, 1, true)
	assert.Equal(t, 1, mesh.Chunk)
	assert.Equal(t, 2, mesh.Tiles)
	assert.Equal(t, VertexLayout(0, VertexFormats(true)...).ArrayStride, mesh.Stride)
	assert.Len(t, mesh.Vertices, int(mesh.Stride)*4*2)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, mesh.Indices)

	le := binary.LittleEndian
	word := func(vertex, i int) uint32 {
		off := vertex*int(mesh.Stride) + i*4
		return le.Uint32(mesh.Vertices[off:])
	}

	// first tile in insertion order is (5,1)
	assert.Equal(t, float32(5), math.Float32frombits(word(0, 0)))
	assert.Equal(t, float32(1), math.Float32frombits(word(0, 1)))
	assert.Equal(t, float32(2), math.Float32frombits(word(2, 2)), "corner in z")
	assert.Equal(t, int32(-1), int32(word(0, 4)), "no animation")
	assert.Equal(t, uint32(3), word(0, 11), "texture layer 0")
	assert.Equal(t, uint32(tilegrid.FlipVertical), word(0, 15), "flip layer 0")

	// second tile is animated on layer 1
	assert.Equal(t, int32(1), int32(word(4, 3)), "top layer")
	assert.Equal(t, int32(6), int32(word(4, 4)))
	assert.Equal(t, int32(2), int32(word(4, 5)))
	assert.Equal(t, int32(1), int32(word(4, 6)))
}

func TestBuildChunkMeshUntextured(t *testing.T) {
	g := tilegrid.NewGrid(1, tilegrid.Vec(4, 4), tilegrid.Vec(4, 4))
	_, err := tilegrid.NewColorBuilder(tilegrid.Color{0.25, 0.5, 0.75, 1}).Build(g, tilegrid.Vec(2, 3))
	require.NoError(t, err)

	mesh := BuildChunkMesh(g, 0, false)
	assert.Equal(t, uint64(44), mesh.Stride)
	assert.Len(t, mesh.Vertices, 44*4)
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(mesh.Vertices[7*4+2*4:])))

	empty := BuildChunkMesh(g, 3, false)
	assert.Equal(t, 0, empty.Tiles)
	assert.Empty(t, empty.Vertices)
}
