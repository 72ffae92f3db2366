package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/voidshard/tilegrid"
)

// Shader defines understood by the tilemap shader.
const (
	DefineSquare         = "SQUARE"
	DefineIsometric      = "ISOMETRIC"
	DefineHexagonal      = "HEXAGONAL"
	DefineWithoutTexture = "WITHOUT_TEXTURE"
	DefineAtlas          = "ATLAS"
)

const (
	vertexEntryPoint   = "tilemap_vertex"
	fragmentEntryPoint = "tilemap_fragment"
	pipelineLabel      = "tilemap_pipeline"
)

// ErrNoShaderLoader is returned when a material names a shader by path
// but no loader was configured.
var ErrNoShaderLoader = errors.New("render: shader path given without a loader")

// Options configure a Pipeline.
type Options struct {
	// Layouts defaults to DefaultLayouts().
	Layouts *SharedLayouts

	// Material defaults to StandardMaterial.
	Material Material

	// Loader resolves material shader paths. Only needed when the material
	// names shaders by path.
	Loader ShaderLoader

	// TargetFormat is the color target format, as reported by the device.
	// Defaults to BGRA8UnormSrgb.
	TargetFormat gputypes.TextureFormat

	// Atlas compiles the shader for atlas textures rather than texture
	// arrays.
	Atlas bool
}

// Pipeline specializes the tilemap render pipeline per Key.
//
// Specialize is a pure function of the key and the pipeline's immutable
// configuration, so a Pipeline may be shared between goroutines.
type Pipeline struct {
	layouts        SharedLayouts
	material       Material
	vertexShader   ShaderHandle
	fragmentShader ShaderHandle
	format         gputypes.TextureFormat
	atlas          bool
}

// NewPipeline resolves the material's shaders and returns a Pipeline.
func NewPipeline(opts Options) (*Pipeline, error) {
	p := &Pipeline{
		material: opts.Material,
		format:   opts.TargetFormat,
		atlas:    opts.Atlas,
	}
	if opts.Layouts != nil {
		p.layouts = *opts.Layouts
	} else {
		p.layouts = DefaultLayouts()
	}
	if p.material == nil {
		p.material = StandardMaterial{}
	}
	if p.format == gputypes.TextureFormatUndefined {
		p.format = gputypes.TextureFormatBGRA8UnormSrgb
	}

	var err error
	p.vertexShader, err = resolveShader(p.material.VertexShader(), opts.Loader)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	p.fragmentShader, err = resolveShader(p.material.FragmentShader(), opts.Loader)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	return p, nil
}

func resolveShader(ref ShaderRef, loader ShaderLoader) (ShaderHandle, error) {
	switch {
	case ref.Handle != 0:
		return ref.Handle, nil
	case ref.Path != "":
		if loader == nil {
			return 0, fmt.Errorf("%w: %s", ErrNoShaderLoader, ref.Path)
		}
		return loader.Load(ref.Path), nil
	}
	return TilemapShader, nil
}

// geometryDefine picks the shader define for a geometry. An unknown kind
// is a programming error.
func geometryDefine(g tilegrid.Geometry) string {
	switch g.Kind {
	case tilegrid.Square:
		return DefineSquare
	case tilegrid.Isometric:
		return DefineIsometric
	case tilegrid.Hexagonal:
		return DefineHexagonal
	}
	panic(fmt.Sprintf("render: unregistered map geometry %v", g))
}

// VertexFormats lists the per-vertex attributes for a specialization, in
// shader location order.
func VertexFormats(textured bool) []gputypes.VertexFormat {
	formats := []gputypes.VertexFormat{
		// position
		gputypes.VertexFormatFloat32x3,
		// top layer + anim start + anim length + anim layer
		gputypes.VertexFormatSint32x4,
		// color
		gputypes.VertexFormatFloat32x4,
	}
	if textured {
		formats = append(formats,
			// texture indices
			gputypes.VertexFormatSint32x4,
			// flip
			gputypes.VertexFormatUint32x4,
		)
	}
	return formats
}

// Specialize builds the pipeline descriptor for key.
func (p *Pipeline) Specialize(key Key) *Descriptor {
	defs := []string{geometryDefine(key.Geometry)}
	if p.atlas {
		defs = append(defs, DefineAtlas)
	}
	if !key.Textured {
		defs = append(defs, DefineWithoutTexture)
	}

	layout := []*gputypes.BindGroupLayoutDescriptor{
		p.layouts.View,     // group(0)
		p.layouts.Uniforms, // group(1)
	}
	if key.Textured {
		layout = append(layout,
			p.layouts.ColorTexture, // group(2)
			p.layouts.Storage,      // group(3)
		)
	}
	if extra := p.material.BindGroupLayout(); extra != nil {
		// group(4)
		layout = append(layout, extra)
	}

	blend := gputypes.BlendStateAlpha()
	desc := &Descriptor{
		Label:  pipelineLabel,
		Layout: layout,
		Vertex: VertexStage{
			Shader:     p.vertexShader,
			ShaderDefs: append([]string(nil), defs...),
			EntryPoint: vertexEntryPoint,
			Buffers: []gputypes.VertexBufferLayout{
				VertexLayout(gputypes.VertexStepModeVertex, VertexFormats(key.Textured)...),
			},
		},
		Fragment: &FragmentStage{
			Shader:     p.fragmentShader,
			ShaderDefs: append([]string(nil), defs...),
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCW,
			CullMode:  gputypes.CullModeBack,
		},
		DepthStencil: nil,
		Multisample: gputypes.MultisampleState{
			Count:                  key.SampleCount,
			Mask:                   ^uint64(0),
			AlphaToCoverageEnabled: false,
		},
	}

	p.material.Specialize(desc, key)
	return desc
}
