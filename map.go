/* file holds the tilemap itself: the descriptor the renderer and the
   persistence code read, plus the grid of tiles it owns.
*/
package tilegrid

// Texture describes the atlas a textured tilemap samples from.
type Texture struct {
	Path     string `yaml:"path"`
	Size     UVec2  `yaml:"size"`      // in pixels
	TileSize UVec2  `yaml:"tile_size"` // in pixels
	Filter   string `yaml:"filter,omitempty"`
}

// Tilemap is a single map: its descriptor, its tiles and any auxiliary
// data attached by other packages.
type Tilemap struct {
	ID       MapID
	Name     string
	Geometry Geometry
	TileSize UVec2

	// Texture is nil for untextured maps.
	Texture    *Texture
	Animations *AnimationTable

	grid        *Grid
	properties  *Properties
	attachments map[interface{}]interface{}
}

// New returns a detached tilemap built from cfg. Most callers want
// World.Spawn, which also assigns the ID.
func New(id MapID, cfg *Config) (*Tilemap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	geom, _ := ParseGeometry(cfg.Geometry)

	var tex *Texture
	if cfg.Texture != nil {
		t := *cfg.Texture
		tex = &t
	}

	return &Tilemap{
		ID:          id,
		Name:        cfg.Name,
		Geometry:    geom,
		TileSize:    Vec(uint32(cfg.TileWidth), uint32(cfg.TileHeight)),
		Texture:     tex,
		Animations:  NewAnimationTable(),
		grid:        NewGrid(id, cfg.size(), cfg.chunkSize()),
		properties:  NewProperties(),
		attachments: map[interface{}]interface{}{},
	}, nil
}

// Grid returns the tiles of this map.
func (m *Tilemap) Grid() *Grid { return m.grid }

// Size is the map extent in tiles.
func (m *Tilemap) Size() UVec2 { return m.grid.Size() }

// ChunkSize is the render chunk extent in tiles.
func (m *Tilemap) ChunkSize() UVec2 { return m.grid.ChunkSize() }

// Textured reports whether tiles sample a texture or are plain fills.
func (m *Tilemap) Textured() bool { return m.Texture != nil }

// MapProperties returns properties set on the map itself
func (m *Tilemap) MapProperties() *Properties {
	return m.properties
}

// SetMapProperties replaces the properties set on the map
func (m *Tilemap) SetMapProperties(in *Properties) {
	if in == nil {
		in = NewProperties()
	}
	m.properties = in
}

// Attach stores auxiliary data under key. Keys should be unexported types
// owned by the attaching package, as with context values.
func (m *Tilemap) Attach(key, value interface{}) {
	m.attachments[key] = value
}

// Attachment returns the value stored under key.
func (m *Tilemap) Attachment(key interface{}) (interface{}, bool) {
	v, ok := m.attachments[key]
	return v, ok
}

// Detach removes the value stored under key.
func (m *Tilemap) Detach(key interface{}) {
	delete(m.attachments, key)
}
