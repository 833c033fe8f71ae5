package mesh

import (
	"fmt"
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/meshcombine/utils"
)

// ExportGLTF writes the merged mesh as a glTF document with one primitive
// per surface. Materials keep their resource names; surfaces merged under
// the nil material get a primitive without a material reference.
func (m *Merged) ExportGLTF() (*gltf.Document, error) {
	doc := gltf.NewDocument()

	materialIndexes := make(map[*Material]uint32)

	gltfMesh := &gltf.Mesh{
		Name:       "combined",
		Primitives: make([]*gltf.Primitive, 0, len(m.Surfaces)),
	}

	for _, surface := range m.Surfaces {
		attributes := make(map[string]uint32)
		attributes["POSITION"] = modeler.WritePosition(doc, utils.Vec3SliceToArrays(surface.Positions))
		if len(surface.Normals) != 0 {
			attributes["NORMAL"] = modeler.WriteNormal(doc, utils.Vec3SliceToArrays(surface.Normals))
		}
		if len(surface.UVs) != 0 {
			attributes["TEXCOORD_0"] = modeler.WriteTextureCoord(doc, utils.Vec2SliceToArrays(surface.UVs))
		}

		indicesAccessor := modeler.WriteIndices(doc, surface.Indices)

		primitive := &gltf.Primitive{
			Indices:    gltf.Index(indicesAccessor),
			Attributes: attributes,
		}

		if surface.Material != nil {
			index, ex := materialIndexes[surface.Material]
			if !ex {
				index = uint32(len(doc.Materials))
				materialIndexes[surface.Material] = index
				doc.Materials = append(doc.Materials, &gltf.Material{
					Name:        surface.Material.Name,
					DoubleSided: true,
				})
			}
			primitive.Material = gltf.Index(index)
		}

		gltfMesh.Primitives = append(gltfMesh.Primitives, primitive)
	}

	doc.Meshes = append(doc.Meshes, gltfMesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: gltfMesh.Name,
		Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))

	return doc, nil
}

// ExportGLTFBinary encodes the merged mesh as binary glTF (glb).
func (m *Merged) ExportGLTFBinary(w io.Writer) error {
	doc, err := m.ExportGLTF()
	if err != nil {
		return err
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("Failed to encode gltf: %v", err)
	}
	return nil
}
