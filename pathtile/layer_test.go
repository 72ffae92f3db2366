package pathtile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/persist"
)

func TestLayer(t *testing.T) {
	l := New(tilegrid.Vec(3, 2))

	require.NoError(t, l.Set(tilegrid.Vec(2, 1), Cell{Cost: 7}))
	assert.ErrorIs(t, l.Set(tilegrid.Vec(3, 0), Cell{}), tilegrid.ErrOutOfBounds)

	c, ok := l.At(tilegrid.Vec(2, 1))
	assert.True(t, ok)
	assert.Equal(t, uint32(7), c.Cost)
	_, ok = l.At(tilegrid.Vec(0, 0))
	assert.False(t, ok)
	_, ok = l.At(tilegrid.Vec(9, 9))
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())

	cells := l.Cells()
	require.Len(t, cells, 6)
	assert.Equal(t, &Cell{Cost: 7}, cells[5])

	// Cells is a copy
	cells[5].Cost = 1
	c, _ = l.At(tilegrid.Vec(2, 1))
	assert.Equal(t, uint32(7), c.Cost)

	l.Clear(tilegrid.Vec(2, 1))
	assert.Equal(t, 0, l.Len())
}

func TestCrop(t *testing.T) {
	l := New(tilegrid.Vec(3, 3))
	require.NoError(t, l.Set(tilegrid.Vec(1, 1), Cell{Cost: 2}))
	require.NoError(t, l.Set(tilegrid.Vec(2, 2), Cell{Cost: 3}))

	c := Crop(l, tilegrid.Vec(1, 1), tilegrid.Vec(3, 3))
	assert.Equal(t, tilegrid.Vec(3, 3), c.Size())
	assert.Equal(t, 2, c.Len())
	v, ok := c.At(tilegrid.Vec(1, 1))
	assert.True(t, ok)
	assert.Equal(t, uint32(3), v.Cost)
}

func TestCropPastMaxCoordinate(t *testing.T) {
	l := New(tilegrid.Vec(3, 3))
	require.NoError(t, l.Set(tilegrid.Vec(0, 0), Cell{Cost: 1}))
	require.NoError(t, l.Set(tilegrid.Vec(0, 1), Cell{Cost: 2}))

	c := Crop(l, tilegrid.Vec(math.MaxUint32, 1), tilegrid.Vec(2, 1))
	assert.Equal(t, 0, c.Len(), "cells past the last coordinate are not wrapped")
}

func pathPattern(cells []*Cell) *persist.Pattern {
	return &persist.Pattern{
		Size:   tilegrid.Vec(2, 2),
		Layers: map[string]interface{}{FileName: cells},
	}
}

func TestStamp(t *testing.T) {
	cfg := tilegrid.DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 4, 4
	m, err := tilegrid.New(1, cfg)
	require.NoError(t, err)

	found, err := Stamp(m, &persist.Pattern{Size: tilegrid.Vec(2, 2)}, tilegrid.Vec(0, 0))
	require.NoError(t, err)
	assert.False(t, found)
	_, ok := Of(m)
	assert.False(t, ok, "no layer is created without path data")

	p := pathPattern([]*Cell{nil, {Cost: 5}, {Cost: 6}, nil})
	found, err = Stamp(m, p, tilegrid.Vec(2, 1))
	require.NoError(t, err)
	assert.True(t, found)

	l, ok := Of(m)
	require.True(t, ok)
	assert.Equal(t, 2, l.Len())
	c, ok := l.At(tilegrid.Vec(3, 1))
	assert.True(t, ok)
	assert.Equal(t, uint32(5), c.Cost)
	c, ok = l.At(tilegrid.Vec(2, 2))
	assert.True(t, ok)
	assert.Equal(t, uint32(6), c.Cost)

	// existing costs under unset pattern cells are kept
	require.NoError(t, l.Set(tilegrid.Vec(0, 0), Cell{Cost: 9}))
	_, err = Stamp(m, pathPattern([]*Cell{nil, {Cost: 1}, nil, nil}), tilegrid.Vec(0, 0))
	require.NoError(t, err)
	c, _ = l.At(tilegrid.Vec(0, 0))
	assert.Equal(t, uint32(9), c.Cost)
	c, _ = l.At(tilegrid.Vec(1, 0))
	assert.Equal(t, uint32(1), c.Cost)
}

func TestStampOutOfBounds(t *testing.T) {
	cfg := tilegrid.DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 4, 4
	m, err := tilegrid.New(1, cfg)
	require.NoError(t, err)

	p := pathPattern([]*Cell{{Cost: 1}, {Cost: 2}, nil, nil})

	_, err = Stamp(m, p, tilegrid.Vec(3, 0))
	assert.ErrorIs(t, err, tilegrid.ErrOutOfBounds)

	_, err = Stamp(m, p, tilegrid.Vec(math.MaxUint32, 0))
	assert.ErrorIs(t, err, tilegrid.ErrOutOfBounds)

	_, ok := Of(m)
	assert.False(t, ok, "nothing written")

	_, err = Stamp(m, pathPattern([]*Cell{{Cost: 1}}), tilegrid.Vec(0, 0))
	assert.Error(t, err, "cell count must match the pattern size")
}

func TestAttach(t *testing.T) {
	m, err := tilegrid.New(1, tilegrid.DefaultConfig())
	require.NoError(t, err)

	_, ok := Of(m)
	assert.False(t, ok)

	assert.Error(t, Attach(m, New(tilegrid.Vec(1, 1))))

	l := New(m.Size())
	require.NoError(t, Attach(m, l))
	got, ok := Of(m)
	assert.True(t, ok)
	assert.Same(t, l, got)
}

func TestProvider(t *testing.T) {
	cfg := tilegrid.DefaultConfig()
	cfg.MapWidth, cfg.MapHeight = 2, 2
	m, err := tilegrid.New(1, cfg)
	require.NoError(t, err)

	p := Provider{}
	_, ok := p.Export(m)
	assert.False(t, ok, "nothing to export without a layer")

	l := New(m.Size())
	require.NoError(t, l.Set(tilegrid.Vec(0, 1), Cell{Cost: 4}))
	require.NoError(t, Attach(m, l))

	data, ok := p.Export(m)
	require.True(t, ok)
	exported := data.([]*Cell)

	other, err := tilegrid.New(2, cfg)
	require.NoError(t, err)
	err = p.Import(other, func(v interface{}) error {
		*(v.(*[]*Cell)) = exported
		return nil
	})
	require.NoError(t, err)

	got, ok := Of(other)
	require.True(t, ok)
	assert.Equal(t, l.Cells(), got.Cells())

	// wrong length
	err = p.Import(other, func(v interface{}) error {
		*(v.(*[]*Cell)) = exported[:1]
		return nil
	})
	assert.Error(t, err)
}
