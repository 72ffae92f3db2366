package tilegrid

import "fmt"

const (
	// MaxLayerCount is the number of texture layers a single tile carries.
	MaxLayerCount = 4

	// NoTexture marks an unused texture layer.
	NoTexture int32 = -1
)

// UVec2 is an unsigned 2D integer vector, used for grid coordinates and extents.
type UVec2 struct {
	X uint32 `yaml:"x"`
	Y uint32 `yaml:"y"`
}

// Vec returns a UVec2.
func Vec(x, y uint32) UVec2 {
	return UVec2{X: x, Y: y}
}

// Area is X*Y
func (v UVec2) Area() int {
	return int(v.X) * int(v.Y)
}

// Contains reports whether c lies within an extent of v.
func (v UVec2) Contains(c UVec2) bool {
	return c.X < v.X && c.Y < v.Y
}

// Offset returns v+d, or false if either component overflows.
func (v UVec2) Offset(d UVec2) (UVec2, bool) {
	out := UVec2{X: v.X + d.X, Y: v.Y + d.Y}
	if out.X < v.X || out.Y < v.Y {
		return UVec2{}, false
	}
	return out, true
}

func (v UVec2) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Color is an RGBA tint with float components in [0,1].
type Color [4]float32

// White is the default opaque tint.
var White = Color{1, 1, 1, 1}

// Flip flags mirror a single texture layer.
type Flip uint32

const (
	FlipNone       Flip = 0
	FlipHorizontal Flip = 0b01
	FlipVertical   Flip = 0b10
	FlipBoth       Flip = 0b11
)
