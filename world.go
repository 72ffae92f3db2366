package tilegrid

import (
	"fmt"
	"sort"
)

// World owns every live tilemap. It stands in for the entity registry of
// whatever engine embeds the maps.
type World struct {
	maps map[MapID]*Tilemap
	next MapID
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{maps: map[MapID]*Tilemap{}, next: 1}
}

// Spawn creates a tilemap from cfg.
func (w *World) Spawn(cfg *Config) (*Tilemap, error) {
	m, err := New(w.next, cfg)
	if err != nil {
		return nil, err
	}
	w.maps[m.ID] = m
	w.next++

	Logger().Debug("tilemap spawned", "id", m.ID, "name", m.Name, "size", m.Size().String())
	return m, nil
}

// Get returns the tilemap with the given id.
func (w *World) Get(id MapID) (*Tilemap, error) {
	m, ok := w.maps[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchMap, id)
	}
	return m, nil
}

// Despawn destroys a tilemap and everything attached to it.
func (w *World) Despawn(id MapID) bool {
	m, ok := w.maps[id]
	if !ok {
		return false
	}
	delete(w.maps, id)
	Logger().Debug("tilemap despawned", "id", id, "name", m.Name)
	return true
}

// Maps returns every live tilemap in ID order.
func (w *World) Maps() []*Tilemap {
	out := make([]*Tilemap, 0, len(w.maps))
	for _, m := range w.maps {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len is the number of live tilemaps.
func (w *World) Len() int {
	return len(w.maps)
}
