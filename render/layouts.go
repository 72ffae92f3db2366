package render

import "github.com/gogpu/gputypes"

// SharedLayouts are the bind group layouts every tilemap pipeline uses.
// They are created once and shared by reference; treat them as immutable.
type SharedLayouts struct {
	View         *gputypes.BindGroupLayoutDescriptor // group 0
	Uniforms     *gputypes.BindGroupLayoutDescriptor // group 1
	ColorTexture *gputypes.BindGroupLayoutDescriptor // group 2, textured only
	Storage      *gputypes.BindGroupLayoutDescriptor // group 3, textured only
}

// DefaultLayouts returns the layouts matching the built in shader.
func DefaultLayouts() SharedLayouts {
	vf := gputypes.ShaderStageVertex | gputypes.ShaderStageFragment
	return SharedLayouts{
		View: &gputypes.BindGroupLayoutDescriptor{
			Label: "tilemap_view_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: vf,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform, HasDynamicOffset: true},
				},
			},
		},
		Uniforms: &gputypes.BindGroupLayoutDescriptor{
			Label: "tilemap_uniforms_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					// transform, tile size, chunk size, geometry parameters
					Binding:    0,
					Visibility: vf,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform, HasDynamicOffset: true},
				},
			},
		},
		ColorTexture: &gputypes.BindGroupLayoutDescriptor{
			Label: "tilemap_color_texture_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageFragment,
					Texture: &gputypes.TextureBindingLayout{
						SampleType:    gputypes.TextureSampleTypeFloat,
						ViewDimension: gputypes.TextureViewDimension2DArray,
					},
				},
				{
					Binding:    1,
					Visibility: gputypes.ShaderStageFragment,
					Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
				},
			},
		},
		Storage: &gputypes.BindGroupLayoutDescriptor{
			Label: "tilemap_storage_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					// animation frame table
					Binding:    0,
					Visibility: vf,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
				},
				{
					// atlas tile descriptors
					Binding:    1,
					Visibility: vf,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
				},
			},
		},
	}
}
