package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/voidshard/tilegrid"
	"github.com/voidshard/tilegrid/internal/cmdutil"
	"github.com/voidshard/tilegrid/pathtile"
	"github.com/voidshard/tilegrid/persist"
)

const desc = `Cuts a reusable pattern out of a saved tilemap, or stamps a pattern into one.

A pattern is a single file holding a rectangle of tiles (and their path costs, if the map has them)
with no map identity or texture attached. Patterns can be stamped into any map with room for them,
or instantiated as a new map of their own.`

var cli struct {
	cmdutil.Logging
	cmdutil.Storage

	Cut   cutCmd   `cmd:"" help:"cut a pattern out of a tilemap"`
	Stamp stampCmd `cmd:"" help:"stamp a pattern into a tilemap"`
	Spawn spawnCmd `cmd:"" help:"save a pattern as a new tilemap"`
}

type cutCmd struct {
	Input string `short:"i" required:"" help:"save directory of the source tilemap"`
	Map   string `short:"m" required:"" help:"source tilemap name"`

	// name of output pattern
	Name   string `short:"n" default:"out" help:"output pattern name"`
	Output string `short:"o" help:"directory to write the pattern to, defaults to --input"`
	Label  string `short:"l" help:"label stored in the pattern"`

	// don't write anything
	DryRun bool `help:"print out what you're planning"`

	// where the desired object lives (rectangle x0,y0 x1,y1 top-left -> bottom-right)
	X0 uint32 `arg:"" default:"0" help:"where to start getting tiles from (x0)"`
	Y0 uint32 `arg:"" default:"0" help:"where to start getting tiles from (y0)"`
	X1 string `arg:"" default:"+1" help:"where to stop getting tiles from (x1, exclusive). Either an absolute tile or a '+' offset from x0, defaults to +1"`
	Y1 string `arg:"" default:"+1" help:"where to stop getting tiles from (y1, exclusive). Either an absolute tile or a '+' offset from y0, defaults to +1"`
}

func (c *cutCmd) Run(codec *persist.Codec) error {
	x1, err := parseOffset(c.X0, c.X1)
	if err != nil {
		return err
	}
	y1, err := parseOffset(c.Y0, c.Y1)
	if err != nil {
		return err
	}
	if x1 <= c.X0 || y1 <= c.Y0 {
		return fmt.Errorf("empty rectangle (%d,%d)->(%d,%d)", c.X0, c.Y0, x1, y1)
	}

	world := tilegrid.NewWorld()
	m, err := codec.Load(context.Background(), world, c.Input, c.Map, persist.LoadOptions{})
	if err != nil {
		return err
	}

	origin := tilegrid.Vec(c.X0, c.Y0)
	size := tilegrid.Vec(x1-c.X0, y1-c.Y0)
	p := persist.CapturePattern(m, origin, size, c.Label)
	if l, ok := pathtile.Of(m); ok {
		p.Layers[pathtile.FileName] = pathtile.Crop(l, origin, size).Cells()
	}

	fmt.Printf("read %v->(%d,%d) from %s, pattern is %v tiles\n", origin, x1, y1, c.Map, size)
	if c.DryRun {
		fmt.Println("dry-run detected: doing nothing")
		return nil
	}

	out := c.Output
	if out == "" {
		out = c.Input
	}
	if err := codec.WritePattern(out, c.Name, p); err != nil {
		return err
	}
	fmt.Printf("wrote %s%s\n", c.Name, persist.PatternSuffix)
	return nil
}

type stampCmd struct {
	Input   string `short:"i" required:"" help:"save directory of the target tilemap and the pattern"`
	Map     string `short:"m" required:"" help:"target tilemap name"`
	Pattern string `short:"p" required:"" help:"pattern name"`

	X uint32 `arg:"" help:"x of the pattern's top left corner"`
	Y uint32 `arg:"" help:"y of the pattern's top left corner"`
}

func (c *stampCmd) Run(codec *persist.Codec) error {
	ctx := context.Background()
	world := tilegrid.NewWorld()

	m, err := codec.Load(ctx, world, c.Input, c.Map, persist.LoadOptions{})
	if err != nil {
		return err
	}
	p, err := codec.LoadPattern(c.Input, c.Pattern)
	if err != nil {
		return err
	}

	origin := tilegrid.Vec(c.X, c.Y)
	n, err := p.Stamp(m.Grid(), origin)
	if err != nil {
		return err
	}
	paths, err := pathtile.Stamp(m, p, origin)
	if err != nil {
		return err
	}

	req := persist.NewSaveRequest(c.Input).WithLayer(persist.LayerTiles)
	if _, ok := pathtile.Of(m); ok {
		req = req.WithLayer(persist.LayerPath)
	}
	if err := req.Build(m); err != nil {
		return err
	}
	if err := codec.Save(ctx, world); err != nil {
		return err
	}
	fmt.Printf("stamped %d tiles into %s (path costs: %v)\n", n, c.Map, paths)
	return nil
}

type spawnCmd struct {
	Input   string `short:"i" required:"" help:"directory holding the pattern"`
	Pattern string `short:"p" required:"" help:"pattern name"`
	Name    string `short:"n" required:"" help:"name of the new tilemap"`
	Config  string `short:"c" type:"existingfile" help:"tilemap config file for everything but the size"`
}

func (c *spawnCmd) Run(codec *persist.Codec) error {
	cfg := tilegrid.DefaultConfig()
	if c.Config != "" {
		var err error
		cfg, err = tilegrid.LoadConfig(c.Config)
		if err != nil {
			return err
		}
	}
	cfg.Name = c.Name

	p, err := codec.LoadPattern(c.Input, c.Pattern)
	if err != nil {
		return err
	}

	world := tilegrid.NewWorld()
	m, err := codec.Instantiate(world, p, cfg)
	if err != nil {
		return err
	}

	req := persist.NewSaveRequest(c.Input).WithLayer(persist.LayerTiles)
	if _, ok := pathtile.Of(m); ok {
		req = req.WithLayer(persist.LayerPath)
	}
	if err := req.Build(m); err != nil {
		return err
	}
	if err := codec.Save(context.Background(), world); err != nil {
		return err
	}
	fmt.Printf("wrote tilemap %s (%v)\n", m.Name, m.Size())
	return nil
}

// parseOffset handles reading
// "+<someint>" as "start + offset in tiles"
// or an absolute value
func parseOffset(start uint32, offset string) (uint32, error) {
	relative := strings.HasPrefix(offset, "+")

	num, err := strconv.ParseUint(strings.TrimPrefix(offset, "+"), 10, 32)
	if err != nil {
		return 0, err
	}

	if relative {
		return start + uint32(num), nil
	}
	return uint32(num), nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("pattern"),
		kong.Description(desc),
	)

	defer cli.Logging.Setup().Close()

	store, closer, err := cli.Storage.Open()
	ctx.FatalIfErrorf(err)
	defer closer.Close()

	codec, err := persist.NewCodec(store, pathtile.Provider{})
	ctx.FatalIfErrorf(err)

	ctx.FatalIfErrorf(ctx.Run(codec))
}
