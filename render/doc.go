// Package render builds the GPU pipeline description for drawing
// tilemaps and packs tile chunks into vertex data matching it.
//
// A single tilemap shader is specialized per Key: the map geometry picks
// a shader define, untextured maps drop the texture attributes and bind
// groups, and the sample count feeds the multisample state. Descriptors
// are pure data built on github.com/gogpu/gputypes; creating the actual
// GPU objects is left to the embedding renderer.
package render
