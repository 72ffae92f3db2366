package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/internal/cmdutil"
	"github.com/voidshard/tilegrid/pathtile"
	"github.com/voidshard/tilegrid/persist"
	"github.com/voidshard/tilegrid/render"
)

const desc = `Builds a small example tilemap, specializes its render pipeline and saves it.`

var cli struct {
	cmdutil.Logging
	cmdutil.Storage

	Config  string `short:"c" type:"existingfile" help:"tilemap config file"`
	Output  string `short:"o" help:"save directory, defaults to the config's save_root"`
	Pattern bool   `help:"save as a pattern rather than a tilemap"`
	Samples uint32 `default:"4" help:"MSAA sample count to specialize for"`
}

var (
	grass = tilegrid.Color{0.3, 0.7, 0.2, 1}
	water = tilegrid.Color{0.1, 0.3, 0.8, 1}
	rock  = tilegrid.Color{0.5, 0.5, 0.5, 1}
)

func main() {
	ctx := kong.Parse(&cli, kong.Name("demo"), kong.Description(desc))

	defer cli.Logging.Setup().Close()

	cfg := tilegrid.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = tilegrid.LoadConfig(cli.Config)
		ctx.FatalIfErrorf(err)
	}
	cfg.Name = "demo"
	cfg.MapWidth, cfg.MapHeight = 41, 41
	cfg.ChunkWidth, cfg.ChunkHeight = 16, 16

	world := tilegrid.NewWorld()
	m, err := world.Spawn(cfg)
	ctx.FatalIfErrorf(err)

	paths := pathtile.New(m.Size())
	size := m.Size()
	for y := uint32(0); y < size.Y; y++ {
		for x := uint32(0); x < size.X; x++ {
			at := tilegrid.Vec(x, y)
			c, cost := grass, uint32(1)
			switch {
			case x > 10 && x < 15:
				c, cost = water, 8
			case (x+y)%7 == 0:
				c, cost = rock, 3
			}
			_, err := tilegrid.NewColorBuilder(c).Build(m.Grid(), at)
			ctx.FatalIfErrorf(err)
			ctx.FatalIfErrorf(paths.Set(at, pathtile.Cell{Cost: cost}))
		}
	}
	ctx.FatalIfErrorf(pathtile.Attach(m, paths))

	if m.Textured() {
		anim, err := m.Animations.Add(1, []int32{4, 5, 6, 7}, 6, true)
		ctx.FatalIfErrorf(err)
		id, _ := m.Grid().Lookup(tilegrid.Vec(12, 12))
		ctx.FatalIfErrorf(m.Grid().SetAnimation(id, &anim))
	}

	pipeline, err := render.NewPipeline(render.Options{})
	ctx.FatalIfErrorf(err)
	cache := render.NewCache(pipeline)
	pd := cache.Get(render.KeyFor(m, cli.Samples))
	fmt.Printf("pipeline %s: defines %v, %d bind groups\n", pd.Label, pd.Vertex.ShaderDefs, len(pd.Layout))

	for _, chunk := range m.Grid().ChunkIDs() {
		mesh := render.BuildChunkMesh(m.Grid(), chunk, m.Textured())
		fmt.Printf("chunk %d: %d tiles, %d bytes of vertices\n", chunk, mesh.Tiles, len(mesh.Vertices))
	}

	out := cli.Output
	if out == "" {
		out, err = cfg.SaveDir()
		ctx.FatalIfErrorf(err)
	}

	store, closer, err := cli.Storage.Open()
	ctx.FatalIfErrorf(err)
	defer closer.Close()

	codec, err := persist.NewCodec(store, pathtile.Provider{})
	ctx.FatalIfErrorf(err)

	mode := persist.ModeTilemap
	if cli.Pattern {
		mode = persist.ModePattern
	}
	req := persist.NewSaveRequest(out).
		WithLayer(persist.LayerTiles).
		WithLayer(persist.LayerPath).
		WithMode(mode).
		WithLabel("demo").
		RemoveMapAfterDone()
	if m.Texture != nil {
		req = req.WithTexture(m.Texture.Path)
	}
	ctx.FatalIfErrorf(req.Build(m))
	ctx.FatalIfErrorf(codec.Save(context.Background(), world))

	fmt.Printf("saved %s to %s as %s, %d maps left\n", cfg.Name, out, mode, world.Len())
}
