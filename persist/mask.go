package persist

import (
	"fmt"
	"strings"
)

// Layer is a single bit of a LayerMask.
type Layer uint32

const (
	// LayerTiles is the tile / color layer.
	LayerTiles Layer = 1 << 0

	// LayerPath is the pathfinding cost layer.
	LayerPath Layer = 1 << 1
)

// LayerMask selects which layers a save or load touches. Bits above
// LayerPath are free for providers registered by the embedding program.
type LayerMask uint32

// Has reports whether l is selected.
func (m LayerMask) Has(l Layer) bool {
	return uint32(m)&uint32(l) != 0
}

// With returns m with l selected.
func (m LayerMask) With(l Layer) LayerMask {
	return m | LayerMask(l)
}

func (m LayerMask) String() string {
	if m == 0 {
		return "none"
	}
	parts := []string{}
	for bit := 0; bit < 32; bit++ {
		l := Layer(1) << bit
		if !m.Has(l) {
			continue
		}
		switch l {
		case LayerTiles:
			parts = append(parts, "tiles")
		case LayerPath:
			parts = append(parts, "path")
		default:
			parts = append(parts, fmt.Sprintf("bit%d", bit))
		}
	}
	return strings.Join(parts, "|")
}

// Mode picks between saving a whole tilemap and saving a reusable pattern.
type Mode uint8

const (
	// ModeTilemap writes <base>/<name>/ with one file per layer plus metadata.
	ModeTilemap Mode = iota

	// ModePattern writes a single <base>/<name>.pattern file with no map
	// identity or texture metadata.
	ModePattern
)

func (m Mode) String() string {
	switch m {
	case ModeTilemap:
		return "tilemap"
	case ModePattern:
		return "pattern"
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode reads the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "tilemap", "":
		return ModeTilemap, nil
	case "pattern":
		return ModePattern, nil
	}
	return 0, fmt.Errorf("unknown save mode %q", s)
}
