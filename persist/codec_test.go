package persist_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-yaml/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/pathtile"
	"github.com/voidshard/tilegrid/persist"
)

func testConfig(name string) *tilegrid.Config {
	cfg := tilegrid.DefaultConfig()
	cfg.Name = name
	cfg.MapWidth, cfg.MapHeight = 5, 4
	cfg.ChunkWidth, cfg.ChunkHeight = 2, 2
	cfg.Geometry = "hexagonal(flat)"
	cfg.Texture = &tilegrid.Texture{
		Path:     "tiles.png",
		Size:     tilegrid.Vec(64, 64),
		TileSize: tilegrid.Vec(16, 16),
	}
	return cfg
}

// spawnTestMap fills every cell where (x+y) is odd, leaving the rest empty.
func spawnTestMap(t *testing.T, w *tilegrid.World, name string) *tilegrid.Tilemap {
	m, err := w.Spawn(testConfig(name))
	require.NoError(t, err)

	anim, err := m.Animations.Add(2, []int32{8, 9, 10}, 4, true)
	require.NoError(t, err)

	size := m.Size()
	for y := uint32(0); y < size.Y; y++ {
		for x := uint32(0); x < size.X; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			b := tilegrid.NewBuilder(x).
				WithLayer(1, y).
				WithFlip(1, tilegrid.FlipHorizontal).
				WithColor(tilegrid.Color{float32(x) / 4, float32(y) / 4, 0.5, 1})
			if x == 3 {
				b = b.WithAnimation(anim)
			}
			_, err := b.Build(m.Grid(), tilegrid.Vec(x, y))
			require.NoError(t, err)
		}
	}
	m.MapProperties().SetString("biome", "swamp")
	return m
}

func addPaths(t *testing.T, m *tilegrid.Tilemap) *pathtile.Layer {
	l := pathtile.New(m.Size())
	size := m.Size()
	for y := uint32(0); y < size.Y; y++ {
		for x := uint32(0); x < size.X; x++ {
			if x == 0 {
				continue
			}
			require.NoError(t, l.Set(tilegrid.Vec(x, y), pathtile.Cell{Cost: x*10 + y}))
		}
	}
	require.NoError(t, pathtile.Attach(m, l))
	return l
}

// snapshot maps coordinates to records, ignoring map identity.
func snapshot(m *tilegrid.Tilemap) map[tilegrid.UVec2]tilegrid.Record {
	out := map[tilegrid.UVec2]tilegrid.Record{}
	for r := range m.Grid().All() {
		r.Map = 0
		out[r.Coord] = r
	}
	return out
}

func newCodec(t *testing.T, s persist.Store) *persist.Codec {
	c, err := persist.NewCodec(s, pathtile.Provider{})
	require.NoError(t, err)
	return c
}

func TestTilemapRoundTrip(t *testing.T) {
	dir := t.TempDir()
	codec := newCodec(t, persist.DirStore{})

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "swamp")
	require.NoError(t, persist.NewSaveRequest(dir).WithLayer(persist.LayerTiles).WithTexture("art/swamp.png").Build(m))

	require.NoError(t, codec.Save(context.Background(), w))

	_, pending := persist.Pending(m)
	assert.False(t, pending, "request is cleared after the save")
	assert.Equal(t, 1, w.Len(), "map is kept unless asked otherwise")

	assert.FileExists(t, filepath.Join(dir, "swamp", persist.MetaFile))
	assert.FileExists(t, filepath.Join(dir, "swamp", persist.TilesFile))
	assert.NoFileExists(t, filepath.Join(dir, "swamp", pathtile.FileName))

	// empty cells are written as explicit gaps
	data, err := os.ReadFile(filepath.Join(dir, "swamp", persist.TilesFile))
	require.NoError(t, err)
	cells := []*persist.SerializedTile{}
	require.NoError(t, yaml.Unmarshal(data, &cells))
	require.Len(t, cells, 20)
	assert.Nil(t, cells[0])
	assert.NotNil(t, cells[1])

	loadedWorld := tilegrid.NewWorld()
	loaded, err := codec.Load(context.Background(), loadedWorld, dir, "swamp", persist.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, snapshot(m), snapshot(loaded))
	_, ok := loaded.Grid().At(tilegrid.Vec(0, 0))
	assert.False(t, ok)

	assert.Equal(t, "swamp", loaded.Name)
	assert.Equal(t, m.Size(), loaded.Size())
	assert.Equal(t, m.ChunkSize(), loaded.ChunkSize())
	assert.Equal(t, tilegrid.HexagonalGeometry(tilegrid.FlatTop), loaded.Geometry)
	assert.Equal(t, m.TileSize, loaded.TileSize)
	require.NotNil(t, loaded.Texture)
	assert.Equal(t, "art/swamp.png", loaded.Texture.Path)
	assert.Equal(t, m.Texture.TileSize, loaded.Texture.TileSize)
	assert.Equal(t, m.Animations, loaded.Animations)
	biome, _ := loaded.MapProperties().String("biome")
	assert.Equal(t, "swamp", biome)
}

func TestLoadRecomputesChunks(t *testing.T) {
	store := newMemStore()
	codec := newCodec(t, store)

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "swamp")
	require.NoError(t, persist.NewSaveRequest("maps").Build(m))
	require.NoError(t, codec.Save(context.Background(), w))

	chunk := tilegrid.Vec(3, 3)
	loaded, err := codec.Load(context.Background(), tilegrid.NewWorld(), "maps", "swamp", persist.LoadOptions{ChunkSize: &chunk})
	require.NoError(t, err)

	assert.Equal(t, chunk, loaded.ChunkSize())
	for r := range loaded.Grid().All() {
		assert.Equal(t, tilegrid.ChunkIndex(r.Coord, loaded.Size(), chunk), r.Chunk)
	}
	assert.Equal(t, m.Grid().Len(), loaded.Grid().Len())
}

func TestTilemapRoundTripWithPaths(t *testing.T) {
	store := newMemStore()
	codec := newCodec(t, store)

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "swamp")
	paths := addPaths(t, m)
	require.NoError(t, persist.NewSaveRequest("maps").WithLayer(persist.LayerTiles).WithLayer(persist.LayerPath).Build(m))
	require.NoError(t, codec.Save(context.Background(), w))

	assert.Equal(t, []string{"maps/swamp/path_tiles", "maps/swamp/tilemap_meta", "maps/swamp/tiles"}, store.names())

	loaded, err := codec.Load(context.Background(), tilegrid.NewWorld(), "maps", "swamp", persist.LoadOptions{})
	require.NoError(t, err)
	lp, ok := pathtile.Of(loaded)
	require.True(t, ok)
	assert.Equal(t, paths.Cells(), lp.Cells())

	// layers can be skipped on load
	tilesOnly, err := codec.Load(context.Background(), tilegrid.NewWorld(), "maps", "swamp", persist.LoadOptions{Layers: persist.LayerMask(persist.LayerTiles)})
	require.NoError(t, err)
	_, ok = pathtile.Of(tilesOnly)
	assert.False(t, ok)
	assert.Equal(t, snapshot(m), snapshot(tilesOnly))
}

func TestSaveMapWithoutLayers(t *testing.T) {
	store := newMemStore()
	codec := newCodec(t, store)

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "swamp")
	addPaths(t, m)
	require.NoError(t, codec.SaveMap(context.Background(), m, &persist.SaveRequest{Path: "maps"}))

	assert.Equal(t, []string{"maps/swamp/tilemap_meta", "maps/swamp/tiles"}, store.names())

	meta := &persist.SerializedTilemap{}
	data, err := store.ReadFile("maps/swamp/tilemap_meta")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, meta))
	assert.Equal(t, persist.LayerMask(persist.LayerTiles), meta.Layers)

	loaded, err := codec.Load(context.Background(), tilegrid.NewWorld(), "maps", "swamp", persist.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, m.Grid().Len(), loaded.Grid().Len())
	assert.Equal(t, snapshot(m), snapshot(loaded))
}

func TestPatternRoundTrip(t *testing.T) {
	dir := t.TempDir()
	codec := newCodec(t, persist.DirStore{})

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "bridge")
	paths := addPaths(t, m)

	require.NoError(t, persist.NewSaveRequest(dir).
		WithLayer(persist.LayerTiles).
		WithLayer(persist.LayerPath).
		WithMode(persist.ModePattern).
		WithLabel("stone bridge").
		Build(m))
	require.NoError(t, codec.Save(context.Background(), w))

	assert.FileExists(t, filepath.Join(dir, "bridge"+persist.PatternSuffix))
	assert.NoDirExists(t, filepath.Join(dir, "bridge"))

	p, err := codec.LoadPattern(dir, "bridge")
	require.NoError(t, err)
	require.NotNil(t, p.Label)
	assert.Equal(t, "stone bridge", *p.Label)
	assert.Equal(t, m.Size(), p.Size)
	assert.Len(t, p.Tiles, m.Size().Area())
	assert.Contains(t, p.Layers, pathtile.FileName)

	cfg := tilegrid.DefaultConfig()
	cfg.Name = "copy"
	cfg.ChunkWidth, cfg.ChunkHeight = 2, 2
	copied, err := codec.Instantiate(w, p, cfg)
	require.NoError(t, err)

	assert.Equal(t, m.Size(), copied.Size())
	assert.Equal(t, snapshot(m), snapshot(copied))
	cp, ok := pathtile.Of(copied)
	require.True(t, ok)
	assert.Equal(t, paths.Size(), cp.Size())
	assert.Equal(t, paths.Cells(), cp.Cells())
}

func TestPatternWithoutLabel(t *testing.T) {
	store := newMemStore()
	codec := newCodec(t, store)

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "plain")
	require.NoError(t, persist.NewSaveRequest("p").WithMode(persist.ModePattern).Build(m))
	require.NoError(t, codec.Save(context.Background(), w))

	assert.Equal(t, []string{"p/plain.pattern"}, store.names())

	p, err := codec.LoadPattern("p", "plain")
	require.NoError(t, err)
	assert.Nil(t, p.Label)
	assert.NotContains(t, p.Layers, pathtile.FileName)
}

func TestRemoveAfterDone(t *testing.T) {
	codec := newCodec(t, newMemStore())

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "gone")
	require.NoError(t, persist.NewSaveRequest("maps").RemoveMapAfterDone().Build(m))

	require.NoError(t, codec.Save(context.Background(), w))
	assert.Equal(t, 0, w.Len())
	_, err := w.Get(m.ID)
	assert.ErrorIs(t, err, tilegrid.ErrNoSuchMap)
}

func TestFailedSaveKeepsMap(t *testing.T) {
	store := newMemStore()
	store.failOn = "bad"
	codec := newCodec(t, store)

	w := tilegrid.NewWorld()
	bad := spawnTestMap(t, w, "bad")
	good := spawnTestMap(t, w, "good")
	for _, m := range []*tilegrid.Tilemap{bad, good} {
		addPaths(t, m)
		require.NoError(t, persist.NewSaveRequest("maps").
			WithLayer(persist.LayerTiles).
			WithLayer(persist.LayerPath).
			RemoveMapAfterDone().
			Build(m))
	}

	err := codec.Save(context.Background(), w)
	require.Error(t, err)
	assert.True(t, persist.IsKind(err, persist.IoFailure))
	assert.ErrorIs(t, err, errDiskFull)

	// the failed map stays, the other one completed and went
	_, err = w.Get(bad.ID)
	assert.NoError(t, err)
	_, err = w.Get(good.ID)
	assert.ErrorIs(t, err, tilegrid.ErrNoSuchMap)

	// the first failed write aborts the rest for that map
	assert.Equal(t, []string{
		"maps/bad/tilemap_meta",
		"maps/good/tilemap_meta",
		"maps/good/tiles",
		"maps/good/path_tiles",
	}, store.writes)

	// and the request is not retried
	_, pending := persist.Pending(bad)
	assert.False(t, pending)
	require.NoError(t, codec.Save(context.Background(), w))
	assert.Len(t, store.writes, 4)
}

func TestSaveErrorPath(t *testing.T) {
	store := newMemStore()
	store.failOn = persist.TilesFile
	codec := newCodec(t, store)

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "swamp")
	require.NoError(t, persist.NewSaveRequest("maps").Build(m))

	err := codec.Save(context.Background(), w)
	var pe *persist.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, persist.IoFailure, pe.Kind)
	assert.Equal(t, filepath.Join("maps", "swamp", persist.TilesFile), pe.Path)
}

func TestSaveCancelled(t *testing.T) {
	store := newMemStore()
	codec := newCodec(t, store)

	w := tilegrid.NewWorld()
	m := spawnTestMap(t, w, "swamp")
	require.NoError(t, persist.NewSaveRequest("maps").RemoveMapAfterDone().Build(m))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := codec.Save(ctx, w)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.writes)
	assert.Equal(t, 1, w.Len())
}

func TestLoadErrors(t *testing.T) {
	store := newMemStore()
	codec := newCodec(t, store)
	w := tilegrid.NewWorld()

	_, err := codec.Load(context.Background(), w, "maps", "missing", persist.LoadOptions{})
	assert.True(t, persist.IsKind(err, persist.IoFailure))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	m := spawnTestMap(t, w, "swamp")
	require.NoError(t, persist.NewSaveRequest("maps").RemoveMapAfterDone().Build(m))
	require.NoError(t, codec.Save(context.Background(), w))
	require.Equal(t, 0, w.Len())

	// a tiles file for a different map size
	require.NoError(t, store.WriteFile("maps/swamp/tiles", []byte("- null\n- null\n")))
	_, err = codec.Load(context.Background(), w, "maps", "swamp", persist.LoadOptions{})
	assert.True(t, persist.IsKind(err, persist.EncodingFailure))
	assert.Equal(t, 0, w.Len(), "partially loaded map is removed")

	require.NoError(t, store.WriteFile("maps/swamp/tiles", []byte("{not: [a list")))
	_, err = codec.Load(context.Background(), w, "maps", "swamp", persist.LoadOptions{})
	assert.True(t, persist.IsKind(err, persist.EncodingFailure))
}

func TestRegister(t *testing.T) {
	codec := newCodec(t, newMemStore())

	assert.ErrorIs(t, codec.Register(pathtile.Provider{}), persist.ErrLayerTaken)
	assert.ErrorIs(t, codec.Register(tileLayerProvider{}), persist.ErrLayerTaken)

	_, err := persist.NewCodec(nil, pathtile.Provider{}, pathtile.Provider{})
	assert.ErrorIs(t, err, persist.ErrLayerTaken)
}

type tileLayerProvider struct{ pathtile.Provider }

func (tileLayerProvider) Layer() persist.Layer { return persist.LayerTiles }
