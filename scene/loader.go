package scene

import (
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/meshcombine/mesh"
	"github.com/mogaika/meshcombine/utils"
)

type yamlSurface struct {
	Material  string       `yaml:"material"`
	Positions [][3]float32 `yaml:"positions"`
	Normals   [][3]float32 `yaml:"normals"`
	UVs       [][2]float32 `yaml:"uvs"`
	Indices   []uint32     `yaml:"indices"`
}

type yamlMesh struct {
	Name     string        `yaml:"name"`
	Surfaces []yamlSurface `yaml:"surfaces"`
}

type yamlShape struct {
	Name     string       `yaml:"name"`
	Vertices [][3]float32 `yaml:"vertices"`
	Indices  []uint32     `yaml:"indices"`
}

type yamlNode struct {
	Name            string         `yaml:"name"`
	Kind            string         `yaml:"kind"`
	Translation     [3]float32     `yaml:"translation"`
	RotationDegrees [3]float32     `yaml:"rotation_degrees"`
	Scale           *[3]float32    `yaml:"scale"`
	Visible         *bool          `yaml:"visible"`
	Mesh            *yamlMesh      `yaml:"mesh"`
	Overrides       map[int]string `yaml:"overrides"`
	Shape           *yamlShape     `yaml:"shape"`
	Children        []*yamlNode    `yaml:"children"`
}

type yamlScene struct {
	Root *yamlNode `yaml:"root"`
}

// Loader builds a node tree from a yaml snapshot. Materials are resolved by
// name through a shared table, so every node referencing "stone" ends up
// with the same *mesh.Material and identity-keyed grouping works after load.
type Loader struct {
	materials map[string]*mesh.Material
}

func NewLoader() *Loader {
	return &Loader{materials: make(map[string]*mesh.Material)}
}

func (l *Loader) material(name string) *mesh.Material {
	if name == "" {
		return nil
	}
	if m, ex := l.materials[name]; ex {
		return m
	}
	m := &mesh.Material{Name: name}
	l.materials[name] = m
	return m
}

func vec3(a [3]float32) mgl32.Vec3 { return mgl32.Vec3{a[0], a[1], a[2]} }

func vec3Slice(in [][3]float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(in))
	for i, a := range in {
		out[i] = vec3(a)
	}
	return out
}

func vec2Slice(in [][2]float32) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(in))
	for i, a := range in {
		out[i] = mgl32.Vec2{a[0], a[1]}
	}
	return out
}

func parseKind(s string) (Kind, error) {
	switch s {
	case "", "spatial":
		return KIND_SPATIAL, nil
	case "mesh":
		return KIND_MESH_INSTANCE, nil
	case "body":
		return KIND_STATIC_BODY, nil
	case "shape":
		return KIND_COLLISION_SHAPE, nil
	}
	return KIND_SPATIAL, errors.Errorf("Unknown node kind %q", s)
}

func (l *Loader) buildMesh(ym *yamlMesh) (*mesh.Mesh, error) {
	m := &mesh.Mesh{Name: ym.Name}
	for iSurface, ys := range ym.Surfaces {
		surface := &mesh.Surface{
			Positions: vec3Slice(ys.Positions),
			Normals:   vec3Slice(ys.Normals),
			UVs:       vec2Slice(ys.UVs),
			Indices:   ys.Indices,
			Material:  l.material(ys.Material),
		}
		if len(surface.Normals) != 0 && len(surface.Normals) != len(surface.Positions) {
			return nil, errors.Errorf("Mesh %q surface %d: %d normals for %d positions",
				ym.Name, iSurface, len(surface.Normals), len(surface.Positions))
		}
		if len(surface.UVs) != 0 && len(surface.UVs) != len(surface.Positions) {
			return nil, errors.Errorf("Mesh %q surface %d: %d uvs for %d positions",
				ym.Name, iSurface, len(surface.UVs), len(surface.Positions))
		}
		for _, index := range surface.Indices {
			if int(index) >= len(surface.Positions) {
				return nil, errors.Errorf("Mesh %q surface %d: index %d out of %d vertices",
					ym.Name, iSurface, index, len(surface.Positions))
			}
		}
		m.Surfaces = append(m.Surfaces, surface)
	}
	return m, nil
}

func (l *Loader) buildNode(yn *yamlNode) (*Node, error) {
	kind, err := parseKind(yn.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "Node %q", yn.Name)
	}

	n := NewNode(yn.Name, kind)

	scale := mgl32.Vec3{1, 1, 1}
	if yn.Scale != nil {
		scale = vec3(*yn.Scale)
	}
	n.Transform = utils.TRSToMat4(
		vec3(yn.Translation),
		utils.DegreeToRadiansV3(vec3(yn.RotationDegrees)),
		scale)

	if yn.Visible != nil {
		n.Visible = *yn.Visible
	}

	if yn.Mesh != nil {
		if kind != KIND_MESH_INSTANCE {
			return nil, errors.Errorf("Node %q of kind %v cannot carry mesh data", yn.Name, kind)
		}
		if n.Mesh, err = l.buildMesh(yn.Mesh); err != nil {
			return nil, errors.Wrapf(err, "Node %q", yn.Name)
		}
	}

	if len(yn.Overrides) != 0 {
		n.MaterialOverrides = make(map[int]*mesh.Material, len(yn.Overrides))
		for iSurface, name := range yn.Overrides {
			n.MaterialOverrides[iSurface] = l.material(name)
		}
	}

	if yn.Shape != nil {
		if kind != KIND_COLLISION_SHAPE {
			return nil, errors.Errorf("Node %q of kind %v cannot carry a collision shape", yn.Name, kind)
		}
		n.Shape = &mesh.Shape{
			Name:     yn.Shape.Name,
			Vertices: vec3Slice(yn.Shape.Vertices),
			Indices:  yn.Shape.Indices,
		}
	}

	for _, yc := range yn.Children {
		child, err := l.buildNode(yc)
		if err != nil {
			return nil, err
		}
		n.AttachChild(child)
	}

	return n, nil
}

func (l *Loader) Load(r io.Reader) (*Node, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read scene")
	}

	var ys yamlScene
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse scene yaml")
	}
	if ys.Root == nil {
		return nil, errors.Errorf("Scene has no root node")
	}

	root, err := l.buildNode(ys.Root)
	if err != nil {
		return nil, err
	}

	log.Printf("[scene] Loaded scene rooted at %q (%d materials)", root.Name, len(l.materials))
	return root, nil
}

func LoadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open scene file")
	}
	defer f.Close()

	return NewLoader().Load(f)
}
