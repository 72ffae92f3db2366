package render

import "github.com/gogpu/gputypes"

// ShaderHandle is an opaque reference to a loaded shader.
type ShaderHandle uint64

// TilemapShader is the built in tilemap shader.
const TilemapShader ShaderHandle = 0x7a3c_11e5_0b1d_4f27

// ShaderRef names a shader either by handle or by asset path. The zero
// value means the built in tilemap shader.
type ShaderRef struct {
	Handle ShaderHandle
	Path   string
}

// ShaderLoader resolves asset paths to shader handles.
type ShaderLoader interface {
	Load(path string) ShaderHandle
}

// Material customizes how tilemaps are shaded.
type Material interface {
	VertexShader() ShaderRef
	FragmentShader() ShaderRef

	// BindGroupLayout is bound at group 4. Materials with nothing extra to
	// bind return nil and the group is left out.
	BindGroupLayout() *gputypes.BindGroupLayoutDescriptor

	// Specialize may adjust the descriptor after the base pipeline is built.
	Specialize(d *Descriptor, key Key)
}

// StandardMaterial is the default material: built in shaders, no extra
// bindings, no overrides.
type StandardMaterial struct{}

func (StandardMaterial) VertexShader() ShaderRef                              { return ShaderRef{} }
func (StandardMaterial) FragmentShader() ShaderRef                            { return ShaderRef{} }
func (StandardMaterial) BindGroupLayout() *gputypes.BindGroupLayoutDescriptor { return nil }
func (StandardMaterial) Specialize(*Descriptor, Key)                          {}
