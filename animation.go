package tilegrid

import "fmt"

const (
	// MaxAnimationCount is the number of sequences an AnimationTable holds.
	MaxAnimationCount = 64

	// MaxAnimationLength is the longest sequence, in frames.
	MaxAnimationLength = 16
)

// AnimationTable is the frame table shared by every animated tile in a
// tilemap. Tiles address it with Animation.Start / Animation.Length; the
// renderer uploads Frames as-is.
type AnimationTable struct {
	Frames    []int32 `yaml:"frames"`
	Sequences int     `yaml:"sequences"`
}

// NewAnimationTable returns an empty table.
func NewAnimationTable() *AnimationTable {
	return &AnimationTable{Frames: []int32{}}
}

// Add appends a sequence of texture indices and returns an Animation
// playing it on the given layer.
func (t *AnimationTable) Add(layer int, frames []int32, fps float32, loop bool) (Animation, error) {
	if layer < 0 || layer >= MaxLayerCount {
		return Animation{}, fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer)
	}
	if len(frames) == 0 || len(frames) > MaxAnimationLength {
		return Animation{}, fmt.Errorf("animation must have 1-%d frames, got %d", MaxAnimationLength, len(frames))
	}
	if t.Sequences >= MaxAnimationCount {
		return Animation{}, ErrAnimationTableFull
	}

	start := uint32(len(t.Frames))
	t.Frames = append(t.Frames, frames...)
	t.Sequences++

	return Animation{
		Layer:  layer,
		Start:  start,
		Length: uint32(len(frames)),
		FPS:    fps,
		Loop:   loop,
	}, nil
}

// Sequence returns the frames an animation plays (nil if out of range).
func (t *AnimationTable) Sequence(a Animation) []int32 {
	end := int(a.Start) + int(a.Length)
	if end > len(t.Frames) {
		return nil
	}
	return t.Frames[a.Start:end]
}
