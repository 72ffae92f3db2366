package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/go-yaml/yaml"

	"github.com/voidshard/tilegrid"
)

// Codec saves and loads tilemaps through a Store.
//
// A Codec is not safe for concurrent use, and a tilemap must not be
// mutated while it is being saved.
type Codec struct {
	store     Store
	providers map[Layer]LayerProvider
}

// NewCodec returns a codec writing to store. A nil store means DirStore.
func NewCodec(store Store, providers ...LayerProvider) (*Codec, error) {
	if store == nil {
		store = DirStore{}
	}
	c := &Codec{store: store, providers: map[Layer]LayerProvider{}}
	for _, p := range providers {
		if err := c.Register(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds an auxiliary layer provider.
func (c *Codec) Register(p LayerProvider) error {
	l := p.Layer()
	if l == LayerTiles {
		return fmt.Errorf("%w: tiles layer is built in", ErrLayerTaken)
	}
	if _, ok := c.providers[l]; ok {
		return fmt.Errorf("%w: %s", ErrLayerTaken, LayerMask(l))
	}
	c.providers[l] = p
	return nil
}

// sortedProviders returns providers selected by mask in bit order.
func (c *Codec) sortedProviders(mask LayerMask) []LayerProvider {
	out := []LayerProvider{}
	for l, p := range c.providers {
		if mask.Has(l) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Layer() < out[j].Layer() })
	return out
}

// Save writes every tilemap in w carrying a SaveRequest.
//
// A failure aborts the remaining writes for that tilemap only; the pass
// carries on with the next one and the failures are joined into the
// returned error. The request is always cleared so the save does not
// repeat. A tilemap is despawned (if requested) only after a fully
// successful save. Cancelling ctx stops the pass between layer writes.
func (c *Codec) Save(ctx context.Context, w *tilegrid.World) error {
	var errs []error
	for _, m := range w.Maps() {
		req, ok := Pending(m)
		if !ok {
			continue
		}
		m.Detach(saveRequestKey{})

		err := c.SaveMap(ctx, m, req)
		if err != nil {
			tilegrid.Logger().Warn("tilemap save failed", "name", m.Name, "mode", req.Mode.String(), "err", err)
			errs = append(errs, fmt.Errorf("saving tilemap %q: %w", m.Name, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if req.RemoveAfter {
			w.Despawn(m.ID)
		}
	}
	return errors.Join(errs...)
}

// SaveMap writes a single tilemap as req describes.
func (c *Codec) SaveMap(ctx context.Context, m *tilegrid.Tilemap, req *SaveRequest) error {
	dir := filepath.Join(req.Path, m.Name)
	mask := req.Layers
	if mask == 0 {
		mask = LayerMask(LayerTiles)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Mode == ModeTilemap {
		if err := c.write(filepath.Join(dir, MetaFile), serializeTilemap(m, req, mask)); err != nil {
			return err
		}
	}

	pattern := newPattern(m.Size())
	if req.Label != "" {
		label := req.Label
		pattern.Label = &label
	}

	if mask.Has(LayerTiles) {
		if err := ctx.Err(); err != nil {
			return err
		}
		tiles := serializeTiles(m.Grid())
		switch req.Mode {
		case ModeTilemap:
			if err := c.write(filepath.Join(dir, TilesFile), tiles); err != nil {
				return err
			}
		case ModePattern:
			pattern.Tiles = tiles
		}
	}

	for _, p := range c.sortedProviders(mask) {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, ok := p.Export(m)
		if !ok {
			tilegrid.Logger().Debug("tilemap has no data for layer", "name", m.Name, "layer", p.Name())
			continue
		}
		switch req.Mode {
		case ModeTilemap:
			if err := c.write(filepath.Join(dir, p.Name()), data); err != nil {
				return err
			}
		case ModePattern:
			pattern.Layers[p.Name()] = data
		}
	}

	if req.Mode == ModePattern {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.WritePattern(req.Path, m.Name, pattern); err != nil {
			return err
		}
	}

	tilegrid.Logger().Info("tilemap saved", "name", m.Name, "mode", req.Mode.String(), "layers", mask.String(), "path", req.Path)
	return nil
}

// WritePattern writes p to <basePath>/<name>.pattern.
func (c *Codec) WritePattern(basePath, name string, p *Pattern) error {
	return c.write(filepath.Join(basePath, name+PatternSuffix), p)
}

// write encodes v and stores it at name. No fallback is attempted.
func (c *Codec) write(name string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return &Error{Kind: EncodingFailure, Path: name, Err: err}
	}
	if err := c.store.WriteFile(name, data); err != nil {
		return &Error{Kind: IoFailure, Path: name, Err: err}
	}
	tilegrid.Logger().Debug("wrote file", "path", name, "bytes", len(data))
	return nil
}

// read loads name and decodes it into v.
func (c *Codec) read(name string, v interface{}) error {
	data, err := c.store.ReadFile(name)
	if err != nil {
		return &Error{Kind: IoFailure, Path: name, Err: err}
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return &Error{Kind: EncodingFailure, Path: name, Err: err}
	}
	return nil
}

// LoadOptions tune Codec.Load.
type LoadOptions struct {
	// ChunkSize overrides the saved render chunk size.
	ChunkSize *tilegrid.UVec2

	// Layers limits which saved layers are read; zero reads all of them.
	Layers LayerMask
}

// Load reads the tilemap saved as <basePath>/<name>/ and spawns it in w.
// Chunk ids are always recomputed for the chunk size in effect.
func (c *Codec) Load(ctx context.Context, w *tilegrid.World, basePath, name string, opts LoadOptions) (*tilegrid.Tilemap, error) {
	dir := filepath.Join(basePath, name)

	meta := &SerializedTilemap{}
	if err := c.read(filepath.Join(dir, MetaFile), meta); err != nil {
		return nil, err
	}
	if meta.Version > formatVersion {
		return nil, &Error{
			Kind: EncodingFailure,
			Path: filepath.Join(dir, MetaFile),
			Err:  fmt.Errorf("format version %d is newer than supported %d", meta.Version, formatVersion),
		}
	}

	chunk := meta.ChunkSize
	if opts.ChunkSize != nil {
		chunk = *opts.ChunkSize
	}
	cfg := &tilegrid.Config{
		Name:        meta.Name,
		MapWidth:    uint(meta.Size.X),
		MapHeight:   uint(meta.Size.Y),
		ChunkWidth:  uint(chunk.X),
		ChunkHeight: uint(chunk.Y),
		TileWidth:   uint(meta.TileSize.X),
		TileHeight:  uint(meta.TileSize.Y),
		Geometry:    meta.Geometry.String(),
		Texture:     meta.Texture,
	}
	m, err := w.Spawn(cfg)
	if err != nil {
		return nil, &Error{Kind: EncodingFailure, Path: filepath.Join(dir, MetaFile), Err: err}
	}
	if meta.Animations != nil {
		m.Animations = meta.Animations
	}
	m.SetMapProperties(meta.Properties)

	if err := c.loadLayers(ctx, m, dir, meta.Layers, opts.Layers); err != nil {
		w.Despawn(m.ID)
		return nil, err
	}

	tilegrid.Logger().Info("tilemap loaded", "name", m.Name, "tiles", m.Grid().Len(), "layers", meta.Layers.String())
	return m, nil
}

func (c *Codec) loadLayers(ctx context.Context, m *tilegrid.Tilemap, dir string, saved, wanted LayerMask) error {
	mask := saved
	if wanted != 0 {
		mask &= wanted
	}

	if mask.Has(LayerTiles) {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Join(dir, TilesFile)
		tiles := []*SerializedTile{}
		if err := c.read(name, &tiles); err != nil {
			return err
		}
		if err := placeTiles(m.Grid(), tiles); err != nil {
			return &Error{Kind: EncodingFailure, Path: name, Err: err}
		}
	}

	for _, p := range c.sortedProviders(mask) {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.Join(dir, p.Name())
		data, err := c.store.ReadFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			// the map had no data for this layer when saved
			continue
		}
		if err != nil {
			return &Error{Kind: IoFailure, Path: name, Err: err}
		}
		decode := func(v interface{}) error { return yaml.Unmarshal(data, v) }
		if err := p.Import(m, decode); err != nil {
			return &Error{Kind: EncodingFailure, Path: name, Err: err}
		}
	}
	return nil
}

// placeTiles inserts a row-major cell sequence into an empty grid.
func placeTiles(g *tilegrid.Grid, tiles []*SerializedTile) error {
	size := g.Size()
	if len(tiles) != size.Area() {
		return fmt.Errorf("expected %d cells for a %v map, found %d", size.Area(), size, len(tiles))
	}
	for i, st := range tiles {
		if st == nil {
			continue
		}
		at := tilegrid.Vec(uint32(i)%size.X, uint32(i)/size.X)
		if _, err := g.Place(at, tilegrid.BuilderFromRecord(st.Record())); err != nil {
			return err
		}
	}
	return nil
}

// LoadPattern reads <basePath>/<name>.pattern.
func (c *Codec) LoadPattern(basePath, name string) (*Pattern, error) {
	fname := filepath.Join(basePath, name+PatternSuffix)
	p := &Pattern{}
	if err := c.read(fname, p); err != nil {
		return nil, err
	}
	if len(p.Tiles) != 0 && len(p.Tiles) != p.Size.Area() {
		return nil, &Error{
			Kind: EncodingFailure,
			Path: fname,
			Err:  fmt.Errorf("expected %d cells for a %v pattern, found %d", p.Size.Area(), p.Size, len(p.Tiles)),
		}
	}
	if p.Layers == nil {
		p.Layers = map[string]interface{}{}
	}
	return p, nil
}

// Instantiate spawns a new tilemap from a pattern. The map takes the
// pattern's size; cfg supplies everything else. Auxiliary layers are
// imported through the registered providers.
func (c *Codec) Instantiate(w *tilegrid.World, p *Pattern, cfg *tilegrid.Config) (*tilegrid.Tilemap, error) {
	mc := *cfg
	mc.MapWidth = uint(p.Size.X)
	mc.MapHeight = uint(p.Size.Y)

	m, err := w.Spawn(&mc)
	if err != nil {
		return nil, err
	}

	if _, err := p.Stamp(m.Grid(), tilegrid.Vec(0, 0)); err != nil {
		w.Despawn(m.ID)
		return nil, err
	}

	for _, prov := range c.sortedProviders(^LayerMask(0)) {
		decode, ok := p.layerDecoder(prov.Name())
		if !ok {
			continue
		}
		if err := prov.Import(m, decode); err != nil {
			w.Despawn(m.ID)
			return nil, fmt.Errorf("importing %s: %w", prov.Name(), err)
		}
	}
	return m, nil
}
