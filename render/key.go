package render

import "github.com/voidshard/tilegrid"

// Key selects one specialization of the tilemap pipeline. It is
// comparable, so it can key a map directly.
type Key struct {
	SampleCount uint32
	Geometry    tilegrid.Geometry
	Textured    bool
}

// KeyFor classifies a tilemap for drawing with the given MSAA sample count.
func KeyFor(m *tilegrid.Tilemap, sampleCount uint32) Key {
	return Key{
		SampleCount: sampleCount,
		Geometry:    m.Geometry,
		Textured:    m.Textured(),
	}
}
