package render

import "github.com/gogpu/gputypes"

// VertexStage is the vertex half of a Descriptor.
type VertexStage struct {
	Shader     ShaderHandle
	ShaderDefs []string
	EntryPoint string
	Buffers    []gputypes.VertexBufferLayout
}

// FragmentStage is the fragment half of a Descriptor.
type FragmentStage struct {
	Shader     ShaderHandle
	ShaderDefs []string
	EntryPoint string
	Targets    []gputypes.ColorTargetState
}

// Descriptor fully describes one specialized tilemap render pipeline.
// Layout[i] is bound at group i.
type Descriptor struct {
	Label        string
	Layout       []*gputypes.BindGroupLayoutDescriptor
	Vertex       VertexStage
	Fragment     *FragmentStage
	Primitive    gputypes.PrimitiveState
	DepthStencil *gputypes.DepthStencilState
	Multisample  gputypes.MultisampleState
}

// HasDefine reports whether both shader stages are compiled with def.
func (d *Descriptor) HasDefine(def string) bool {
	return contains(d.Vertex.ShaderDefs, def) && d.Fragment != nil && contains(d.Fragment.ShaderDefs, def)
}

func contains(defs []string, def string) bool {
	for _, d := range defs {
		if d == def {
			return true
		}
	}
	return false
}

// VertexLayout packs formats back to back into one buffer layout, giving
// attribute i shader location i.
func VertexLayout(step gputypes.VertexStepMode, formats ...gputypes.VertexFormat) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(formats))
	offset := uint64(0)
	for i, f := range formats {
		attrs[i] = gputypes.VertexAttribute{
			Format:         f,
			Offset:         offset,
			ShaderLocation: uint32(i),
		}
		offset += f.Size()
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    step,
		Attributes:  attrs,
	}
}
