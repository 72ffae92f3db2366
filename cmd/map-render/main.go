package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"

	"github.com/alecthomas/kong"
	"github.com/nfnt/resize"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/internal/cmdutil"
	"github.com/voidshard/tilegrid/pathtile"
	"github.com/voidshard/tilegrid/persist"
)

const desc = `Draws a PNG preview of a saved tilemap, one flat square per tile, and optionally exports it for Tiled.`

var cli struct {
	cmdutil.Logging
	cmdutil.Storage

	// where the tilemap was saved and under what name
	Input string `short:"i" required:"" help:"save directory the tilemap was written under"`
	Name  string `short:"n" required:"" help:"tilemap name"`

	Output string `short:"o" help:"where to write the png. Defaults to <name>.png"`
	TMX    string `help:"also export the map as a Tiled .tmx file (textured maps only)"`

	TilePixels int  `default:"8" help:"edge of one tile in px"`
	Width      uint `help:"resize the output to this width in px, keeping aspect"`
	Chunks     bool `help:"outline render chunks"`

	ChunkWidth  uint32 `help:"override the saved render chunk width"`
	ChunkHeight uint32 `help:"override the saved render chunk height"`

	// set properties on map
	Props map[string]string `short:"p" help:"set props on the map and save them back"`
}

func main() {
	kong.Parse(&cli, kong.Name("map-render"), kong.Description(desc))

	defer cli.Logging.Setup().Close()

	if cli.Output == "" {
		cli.Output = fmt.Sprintf("%s.png", cli.Name)
	}

	store, closer, err := cli.Storage.Open()
	if err != nil {
		panic(err)
	}
	defer closer.Close()

	codec, err := persist.NewCodec(store, pathtile.Provider{})
	if err != nil {
		panic(err)
	}

	opts := persist.LoadOptions{}
	if cli.ChunkWidth > 0 && cli.ChunkHeight > 0 {
		cs := tilegrid.Vec(cli.ChunkWidth, cli.ChunkHeight)
		opts.ChunkSize = &cs
	}

	ctx := context.Background()
	world := tilegrid.NewWorld()
	m, err := codec.Load(ctx, world, cli.Input, cli.Name, opts)
	if err != nil {
		panic(err)
	}

	img := tilegrid.Preview(m, tilegrid.PreviewOptions{
		TilePixels: cli.TilePixels,
		ChunkLines: cli.Chunks,
	})
	if cli.Width > 0 {
		img = resize.Resize(cli.Width, 0, img, resize.NearestNeighbor)
	}

	if err := savePng(cli.Output, img); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %s (%d tiles, %d chunks)\n", cli.Output, m.Grid().Len(), len(m.Grid().ChunkIDs()))

	if cli.TMX != "" {
		buf := new(bytes.Buffer)
		if err := tilegrid.EncodeTMX(m, buf); err != nil {
			panic(err)
		}
		if err := ioutil.WriteFile(cli.TMX, buf.Bytes(), 0644); err != nil {
			panic(err)
		}
		fmt.Printf("wrote %s\n", cli.TMX)
	}

	if len(cli.Props) == 0 {
		return
	}
	m.MapProperties().Merge(tilegrid.ParseProperties(cli.Props))

	b := persist.NewSaveRequest(cli.Input)
	if _, ok := pathtile.Of(m); ok {
		b = b.WithLayer(persist.LayerTiles).WithLayer(persist.LayerPath)
	}
	if err := b.Build(m); err != nil {
		panic(err)
	}
	if err := codec.Save(ctx, world); err != nil {
		panic(err)
	}
	fmt.Printf("updated properties of %s\n", cli.Name)
}

// savePng to disk
func savePng(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(fpath, buff.Bytes(), 0644)
}
