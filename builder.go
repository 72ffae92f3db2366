package tilegrid

import (
	"fmt"
	"math"
)

// Builder collects the attributes of a tile before it is placed.
//
// Misuse (an out of range layer, or a static index written to the layer an
// animation drives) is remembered and reported by Build.
type Builder struct {
	textures [MaxLayerCount]int32
	flip     [MaxLayerCount]Flip
	color    Color
	anim     *Animation
	err      error
}

// NewBuilder starts a tile showing `texture` on layer 0.
func NewBuilder(texture uint32) *Builder {
	b := NewColorBuilder(White)
	b.setTexture(0, texture)
	return b
}

// NewColorBuilder starts an untextured tile, a plain fill of color c.
func NewColorBuilder(c Color) *Builder {
	b := &Builder{color: c}
	for i := range b.textures {
		b.textures[i] = NoTexture
	}
	return b
}

// BuilderFromRecord rebuilds a tile from a previously captured record.
// Map, Chunk and Coord are ignored; the grid assigns them on Place.
func BuilderFromRecord(r Record) *Builder {
	b := &Builder{
		textures: r.Textures,
		flip:     r.Flip,
		color:    r.Color,
	}
	if r.Animation != nil {
		a := *r.Animation
		b.anim = &a
	}
	return b
}

func (b *Builder) WithColor(c Color) *Builder {
	b.color = c
	return b
}

// WithAnimation attaches an animation. From then on the animation owns
// its layer and WithLayer for that layer is an error.
func (b *Builder) WithAnimation(a Animation) *Builder {
	if a.Layer < 0 || a.Layer >= MaxLayerCount {
		b.fail(fmt.Errorf("%w: animation layer %d", ErrLayerOutOfRange, a.Layer))
		return b
	}
	b.anim = &a
	return b
}

// WithLayer sets the static texture shown on `layer`.
func (b *Builder) WithLayer(layer int, texture uint32) *Builder {
	switch {
	case layer < 0 || layer >= MaxLayerCount:
		b.fail(fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer))
	case b.anim != nil && b.anim.Layer == layer:
		b.fail(fmt.Errorf("%w: %d", ErrAnimationOwnsLayer, layer))
	default:
		b.setTexture(layer, texture)
	}
	return b
}

// setTexture stores an atlas index, rejecting ones past math.MaxInt32.
func (b *Builder) setTexture(layer int, texture uint32) {
	if texture > math.MaxInt32 {
		b.fail(fmt.Errorf("%w: %d", ErrTextureOutOfRange, texture))
		return
	}
	b.textures[layer] = int32(texture)
}

// WithFlip mirrors the texture on `layer`.
func (b *Builder) WithFlip(layer int, f Flip) *Builder {
	if layer < 0 || layer >= MaxLayerCount {
		b.fail(fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer))
		return b
	}
	b.flip[layer] = f
	return b
}

// Build places the tile at coord.
func (b *Builder) Build(t Tileable, coord UVec2) (TileID, error) {
	return t.Place(coord, b)
}

// Err returns the first misuse recorded by the builder, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// record produces the placement-independent part of a Record.
func (b *Builder) record() Record {
	r := Record{
		Textures: b.textures,
		Flip:     b.flip,
		Color:    b.color,
	}
	if b.anim != nil {
		a := *b.anim
		r.Animation = &a
	}
	r.updateTop()
	return r
}
