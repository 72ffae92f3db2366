/* this file exports textured tilemaps as TMX (doc.mapeditor.org) so they
can be inspected and touched up in Tiled.

Only the subset of TMX we can fill is written: one tileset pointing at the
texture atlas, one CSV encoded tile layer per texture layer, tile
animations and map properties.
*/
package tilegrid

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Tiled stores flips in the high bits of a global tile id.
const (
	tmxFlipHorizontal uint32 = 0x80000000
	tmxFlipVertical   uint32 = 0x40000000
	tmxFirstGID       uint32 = 1
)

// tmxMap is the root <map> element.
type tmxMap struct {
	XMLName      xml.Name       `xml:"map"`
	Version      string         `xml:"version,attr"`
	Orientation  string         `xml:"orientation,attr"`
	RenderOrder  string         `xml:"renderorder,attr"`
	Width        uint32         `xml:"width,attr"`      // in tiles
	Height       uint32         `xml:"height,attr"`     // in tiles
	TileWidth    uint32         `xml:"tilewidth,attr"`  // in pixels
	TileHeight   uint32         `xml:"tileheight,attr"` // in pixels
	HexSide      uint32         `xml:"hexsidelength,attr,omitempty"`
	StaggerAxis  string         `xml:"staggeraxis,attr,omitempty"`
	StaggerIndex string         `xml:"staggerindex,attr,omitempty"`
	Properties   []*tmxProperty `xml:"properties>property"`
	Tilesets     []*tmxTileset  `xml:"tileset"`
	Layers       []*tmxLayer    `xml:"layer"`
}

type tmxTileset struct {
	FirstGID   uint32     `xml:"firstgid,attr"`
	Name       string     `xml:"name,attr"`
	TileWidth  uint32     `xml:"tilewidth,attr"`
	TileHeight uint32     `xml:"tileheight,attr"`
	TileCount  uint32     `xml:"tilecount,attr"`
	Columns    uint32     `xml:"columns,attr"`
	Image      *tmxImage  `xml:"image"`
	Tiles      []*tmxTile `xml:"tile"`
}

type tmxImage struct {
	Source string `xml:"source,attr"`
	Width  uint32 `xml:"width,attr"`
	Height uint32 `xml:"height,attr"`
}

type tmxTile struct {
	ID        uint32      `xml:"id,attr"`
	Animation []*tmxFrame `xml:"animation>frame"`
}

type tmxFrame struct {
	TileID   uint32 `xml:"tileid,attr"`
	Duration int    `xml:"duration,attr"` // ms
}

type tmxProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
	Type  string `xml:"type,attr,omitempty"` // string (default), int, bool
}

type tmxLayer struct {
	ID     uint32  `xml:"id,attr"`
	Name   string  `xml:"name,attr"`
	Width  uint32  `xml:"width,attr"`
	Height uint32  `xml:"height,attr"`
	Data   tmxData `xml:"data"`
}

type tmxData struct {
	Encoding string `xml:"encoding,attr"`
	RawData  []byte `xml:",innerxml"`
}

// encodeCSV turns our list of tile ids into csv format
func encodeCSV(width, height int, in []uint32) []byte {
	values := make([]string, height)

	for row := 0; row < height; row++ {
		csvrow := make([]string, width)
		for col := 0; col < width; col++ {
			csvrow[col] = strconv.FormatUint(uint64(in[row*width+col]), 10)
		}
		values[row] = strings.Join(csvrow, ",")
	}

	return []byte("\n" + strings.Join(values, ",\n") + "\n")
}

// tmxGID is the global tile id of one layer of a tile, 0 for none.
// Animated layers show the first frame of their sequence.
func tmxGID(m *Tilemap, rec Record, layer int) uint32 {
	tex := rec.Textures[layer]
	if rec.Animated(layer) {
		if frames := m.Animations.Sequence(*rec.Animation); len(frames) > 0 {
			tex = frames[0]
		}
	}
	if tex < 0 {
		return 0
	}

	gid := uint32(tex) + tmxFirstGID
	f := rec.Flip[layer]
	if f&FlipHorizontal != 0 {
		gid |= tmxFlipHorizontal
	}
	if f&FlipVertical != 0 {
		gid |= tmxFlipVertical
	}
	return gid
}

// tmxAnimations collects one <tile> per animated first frame.
func tmxAnimations(m *Tilemap) []*tmxTile {
	byFirst := map[uint32]*tmxTile{}
	for rec := range m.grid.All() {
		a := rec.Animation
		if a == nil || a.FPS <= 0 {
			continue
		}
		frames := m.Animations.Sequence(*a)
		if len(frames) == 0 || frames[0] < 0 {
			continue
		}
		first := uint32(frames[0])
		if _, ok := byFirst[first]; ok {
			continue
		}
		t := &tmxTile{ID: first}
		for _, f := range frames {
			t.Animation = append(t.Animation, &tmxFrame{TileID: uint32(f), Duration: int(1000 / a.FPS)})
		}
		byFirst[first] = t
	}

	out := make([]*tmxTile, 0, len(byFirst))
	for _, t := range byFirst {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func tmxProperties(p *Properties) []*tmxProperty {
	out := []*tmxProperty{}
	for k, v := range p.ints {
		out = append(out, &tmxProperty{Name: k, Value: strconv.Itoa(v), Type: "int"})
	}
	for k, v := range p.strings {
		out = append(out, &tmxProperty{Name: k, Value: v})
	}
	for k, v := range p.bools {
		out = append(out, &tmxProperty{Name: k, Value: strconv.FormatBool(v), Type: "bool"})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// EncodeTMX writes m as a Tiled map. Only textured maps can be exported.
func EncodeTMX(m *Tilemap, w io.Writer) error {
	if m.Texture == nil {
		return ErrNoTexture
	}
	tex := m.Texture
	if tex.TileSize.X == 0 || tex.TileSize.Y == 0 {
		return fmt.Errorf("texture %s has no tile size", tex.Path)
	}

	size := m.Size()
	columns := tex.Size.X / tex.TileSize.X
	out := &tmxMap{
		Version:     "1.0",
		Orientation: "orthogonal",
		RenderOrder: "right-down",
		Width:       size.X,
		Height:      size.Y,
		TileWidth:   m.TileSize.X,
		TileHeight:  m.TileSize.Y,
		Properties:  tmxProperties(m.properties),
		Tilesets: []*tmxTileset{
			{
				FirstGID:   tmxFirstGID,
				Name:       m.Name,
				TileWidth:  tex.TileSize.X,
				TileHeight: tex.TileSize.Y,
				TileCount:  columns * (tex.Size.Y / tex.TileSize.Y),
				Columns:    columns,
				Image:      &tmxImage{Source: tex.Path, Width: tex.Size.X, Height: tex.Size.Y},
				Tiles:      tmxAnimations(m),
			},
		},
	}

	switch m.Geometry.Kind {
	case Isometric:
		out.Orientation = "isometric"
	case Hexagonal:
		out.Orientation = "hexagonal"
		out.StaggerIndex = "odd"
		if m.Geometry.Orientation == FlatTop {
			out.StaggerAxis = "x"
			out.HexSide = m.TileSize.X / 2
		} else {
			out.StaggerAxis = "y"
			out.HexSide = m.TileSize.Y / 2
		}
	}

	gids := make([][]uint32, MaxLayerCount)
	for i := range gids {
		gids[i] = make([]uint32, size.Area())
	}
	for rec := range m.grid.All() {
		cell := int(rec.Coord.Y)*int(size.X) + int(rec.Coord.X)
		for layer := 0; layer < MaxLayerCount; layer++ {
			gids[layer][cell] = tmxGID(m, rec, layer)
		}
	}
	for layer, ids := range gids {
		out.Layers = append(out.Layers, &tmxLayer{
			ID:     uint32(layer + 1),
			Name:   fmt.Sprintf("layer%d", layer),
			Width:  size.X,
			Height: size.Y,
			Data:   tmxData{Encoding: "csv", RawData: encodeCSV(int(size.X), int(size.Y), ids)},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	return enc.Encode(out)
}
