package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/pathtile"
	"github.com/voidshard/tilegrid/persist"
)

// saveMap writes a w*h map with a tile and a path cost on every cell where
// fill returns true.
func saveMap(t *testing.T, codec *persist.Codec, dir, name string, w, h uint32, fill func(x, y uint32) bool) {
	world := tilegrid.NewWorld()
	cfg := tilegrid.DefaultConfig()
	cfg.Name = name
	cfg.MapWidth, cfg.MapHeight = uint(w), uint(h)
	m, err := world.Spawn(cfg)
	require.NoError(t, err)

	l := pathtile.New(m.Size())
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			if !fill(x, y) {
				continue
			}
			_, err := tilegrid.NewBuilder(x + y*w).Build(m.Grid(), tilegrid.Vec(x, y))
			require.NoError(t, err)
			require.NoError(t, l.Set(tilegrid.Vec(x, y), pathtile.Cell{Cost: 100 + x + y*w}))
		}
	}
	require.NoError(t, pathtile.Attach(m, l))

	require.NoError(t, persist.NewSaveRequest(dir).WithLayer(persist.LayerTiles).WithLayer(persist.LayerPath).Build(m))
	require.NoError(t, codec.Save(context.Background(), world))
}

func TestStampKeepsPathLayer(t *testing.T) {
	dir := t.TempDir()
	codec, err := persist.NewCodec(persist.DirStore{}, pathtile.Provider{})
	require.NoError(t, err)

	// target has its left column filled, source is full
	saveMap(t, codec, dir, "target", 4, 4, func(x, _ uint32) bool { return x == 0 })
	saveMap(t, codec, dir, "source", 2, 2, func(_, _ uint32) bool { return true })

	cut := &cutCmd{Input: dir, Map: "source", Name: "rock", X0: 0, Y0: 0, X1: "+2", Y1: "+2"}
	require.NoError(t, cut.Run(codec))

	stamp := &stampCmd{Input: dir, Map: "target", Pattern: "rock", X: 2, Y: 1}
	require.NoError(t, stamp.Run(codec))

	m, err := codec.Load(context.Background(), tilegrid.NewWorld(), dir, "target", persist.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 8, m.Grid().Len())

	l, ok := pathtile.Of(m)
	require.True(t, ok, "path layer survives the stamp")
	assert.Equal(t, 8, l.Len())

	// original cost
	c, ok := l.At(tilegrid.Vec(0, 3))
	assert.True(t, ok)
	assert.Equal(t, uint32(100+3*4), c.Cost)

	// stamped cost from source (1,1)
	c, ok = l.At(tilegrid.Vec(3, 2))
	assert.True(t, ok)
	assert.Equal(t, uint32(100+1+1*2), c.Cost)
}

func TestStampRejectsWrappedOrigin(t *testing.T) {
	dir := t.TempDir()
	codec, err := persist.NewCodec(persist.DirStore{}, pathtile.Provider{})
	require.NoError(t, err)

	saveMap(t, codec, dir, "target", 4, 4, func(_, _ uint32) bool { return false })
	saveMap(t, codec, dir, "source", 2, 1, func(x, _ uint32) bool { return x == 1 })
	require.NoError(t, (&cutCmd{Input: dir, Map: "source", Name: "post", X1: "+2", Y1: "+1"}).Run(codec))

	err = (&stampCmd{Input: dir, Map: "target", Pattern: "post", X: 1<<32 - 1, Y: 0}).Run(codec)
	assert.ErrorIs(t, err, persist.ErrPatternDoesNotFit)

	m, err := codec.Load(context.Background(), tilegrid.NewWorld(), dir, "target", persist.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Grid().Len())
}
