package gpucore

import "github.com/gogpu/gputypes"

// TextVertexStride is the size of one text vertex in bytes.
const TextVertexStride = 16

// TextVertexFloats is the number of float32 values per text vertex.
const TextVertexFloats = TextVertexStride / 4

// TextTopology is the primitive topology of text meshes.
const TextTopology = gputypes.PrimitiveTopologyTriangleList

// TextVertexLayout returns the vertex buffer layout of text meshes.
func TextVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: TextVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
		},
	}
}

// TextMeshDesc returns the mesh descriptor for vertexCount text vertices.
func TextMeshDesc(label string, vertexCount int) MeshDesc {
	return MeshDesc{
		Label:       label,
		Layout:      TextVertexLayout(),
		Topology:    TextTopology,
		VertexCount: vertexCount,
	}
}
