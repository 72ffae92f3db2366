package tilegrid

import (
	"fmt"
	"io/ioutil"

	"github.com/go-yaml/yaml"
	"github.com/mitchellh/go-homedir"
)

// Config includes settings for a Tilemap
type Config struct {
	// used to name the tilemap's save files
	Name string `yaml:"name"`

	// in tiles
	MapWidth    uint `yaml:"map_width"`
	MapHeight   uint `yaml:"map_height"`
	ChunkWidth  uint `yaml:"chunk_width"`
	ChunkHeight uint `yaml:"chunk_height"`

	// in pixels
	TileWidth  uint `yaml:"tile_width"`
	TileHeight uint `yaml:"tile_height"`

	// square, isometric, hexagonal(pointy) or hexagonal(flat)
	Geometry string `yaml:"geometry"`

	// nil for untextured (color only) maps
	Texture *Texture `yaml:"texture,omitempty"`

	// where saves go by default, may start with ~
	SaveRoot string `yaml:"save_root"`
}

// DefaultConfig returns a map config with default settings.
func DefaultConfig() *Config {
	return &Config{
		Name:        "tilemap",
		TileWidth:   32,
		TileHeight:  32,
		MapWidth:    100,
		MapHeight:   100,
		ChunkWidth:  32,
		ChunkHeight: 32,
		Geometry:    "square",
		SaveRoot:    "~/.tilegrid",
	}
}

// LoadConfig reads a YAML config file. Unset fields keep their defaults.
func LoadConfig(fname string) (*Config, error) {
	data, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", fname, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the config describes a usable map.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("tilemap name is required")
	}
	if c.MapWidth == 0 || c.MapHeight == 0 {
		return fmt.Errorf("map size %dx%d is empty", c.MapWidth, c.MapHeight)
	}
	if c.ChunkWidth == 0 || c.ChunkHeight == 0 {
		return fmt.Errorf("render chunk size %dx%d is empty", c.ChunkWidth, c.ChunkHeight)
	}
	_, err := ParseGeometry(c.Geometry)
	return err
}

// SaveDir is SaveRoot with any leading ~ expanded.
func (c *Config) SaveDir() (string, error) {
	return homedir.Expand(c.SaveRoot)
}

func (c *Config) size() UVec2 {
	return Vec(uint32(c.MapWidth), uint32(c.MapHeight))
}

func (c *Config) chunkSize() UVec2 {
	return Vec(uint32(c.ChunkWidth), uint32(c.ChunkHeight))
}
