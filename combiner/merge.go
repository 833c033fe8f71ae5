package combiner

import (
	"fmt"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcombine/mesh"
	"github.com/mogaika/meshcombine/scene"
	"github.com/mogaika/meshcombine/status"
	"github.com/mogaika/meshcombine/utils"
)

var (
	// ErrEmptyInput reports that no mesh-bearing descendant yielded a
	// surface. Informational: the scene simply has nothing to merge.
	ErrEmptyInput = errors.New("No mesh surfaces found under anchor")

	// ErrEmptyCommit reports that every accumulated group committed empty.
	ErrEmptyCommit = errors.New("Merge committed no surfaces")

	// ErrMergeInFlight reports a rejected re-entrant merge invocation.
	ErrMergeInFlight = errors.New("Merge already in progress")
)

// group accumulates geometry of every surface that shares one material.
// The vertex offset re-bases appended index data so that indices always
// point into this group's own buffers.
type group struct {
	material  *mesh.Material
	positions []mesh.Position
	normals   []mesh.Normal
	uvs       []mesh.UV
	indices   []uint32
	offset    uint32
}

func (g *group) append(s *mesh.Surface, transform mgl32.Mat4) {
	normalMatrix := utils.NormalMatrix(transform)

	for _, p := range s.Positions {
		g.positions = append(g.positions, utils.TransformPosition(transform, p))
	}

	// Position, normal and uv buffers stay parallel: sources that carry no
	// normals or uvs contribute zero values.
	for iVertex := range s.Positions {
		if iVertex < len(s.Normals) {
			g.normals = append(g.normals, utils.TransformNormal(normalMatrix, s.Normals[iVertex]))
		} else {
			g.normals = append(g.normals, mesh.Normal{})
		}
		if iVertex < len(s.UVs) {
			g.uvs = append(g.uvs, s.UVs[iVertex])
		} else {
			g.uvs = append(g.uvs, mesh.UV{})
		}
	}

	for _, index := range s.Indices {
		g.indices = append(g.indices, index+g.offset)
	}

	g.offset += uint32(len(s.Positions))
}

// accumulator groups collected surfaces by material identity. Insertion
// order of first encounter is kept in a separate list, so committed surface
// order is deterministic. Map iteration alone would randomize it.
type accumulator struct {
	groups map[*mesh.Material]*group
	order  []*group
}

func newAccumulator() *accumulator {
	return &accumulator{groups: make(map[*mesh.Material]*group)}
}

func (a *accumulator) add(ref SurfaceRef) {
	g, ex := a.groups[ref.Material]
	if !ex {
		g = &group{material: ref.Material}
		a.groups[ref.Material] = g
		a.order = append(a.order, g)
	}
	g.append(ref.Surface, ref.Transform)
}

// commit emits one surface per non-empty group, in first-seen order.
func (a *accumulator) commit() (*mesh.Merged, error) {
	merged := &mesh.Merged{}

	for iGroup, g := range a.order {
		status.Progress(fmt.Sprintf("Committing group %q", materialName(g.material)),
			float32(iGroup+1)/float32(len(a.order)))
		if len(g.indices) == 0 {
			status.Infof("[combiner] Group %q has no triangles, not emitting a surface", materialName(g.material))
			continue
		}
		if len(g.positions) == 0 {
			// Indices without geometry: data anomaly, drop this surface only.
			status.Errorf("[combiner] Group %q committed %d indices but no geometry, dropping surface",
				materialName(g.material), len(g.indices))
			continue
		}
		merged.Surfaces = append(merged.Surfaces, &mesh.Surface{
			Positions: g.positions,
			Normals:   g.normals,
			UVs:       g.uvs,
			Indices:   g.indices,
			Material:  g.material,
		})
	}

	if len(merged.Surfaces) == 0 {
		return nil, ErrEmptyCommit
	}
	return merged, nil
}

func materialName(m *mesh.Material) string {
	if m == nil {
		return "<no material>"
	}
	return m.Name
}

// Options carries the secondary-effect wiring of a merge run. Both fields
// are optional.
type Options struct {
	// CollisionDestination receives deep copies of static collision shapes
	// found under processed mesh nodes. Must be inside the anchor's tree.
	CollisionDestination *scene.Node

	// Queue receives deferred tree mutations. When nil, a private queue is
	// used and flushed before Merge returns.
	Queue *scene.DeferredQueue
}

var mergeInFlight int32

// Merge walks every descendant of anchor, accumulates surface geometry per
// distinct material and returns the combined mesh with one surface per
// material in first-seen order. The returned value is owned by the caller;
// Merge itself keeps no result state. At most one merge may run at a time.
func Merge(anchor *scene.Node, opts Options) (*mesh.Merged, error) {
	if !atomic.CompareAndSwapInt32(&mergeInFlight, 0, 1) {
		return nil, ErrMergeInFlight
	}
	defer atomic.StoreInt32(&mergeInFlight, 0)

	queue := opts.Queue
	if queue == nil {
		queue = &scene.DeferredQueue{}
	}

	acc := newAccumulator()
	collected := 0
	extractor := newCollisionExtractor(anchor, opts.CollisionDestination)

	collector := NewCollector(anchor,
		func(ref SurfaceRef) {
			acc.add(ref)
			collected++
		},
		extractor.extract)

	if !collector.Collect() {
		status.Infof("[combiner] Nothing to merge under %q", anchor.Name)
		return nil, ErrEmptyInput
	}

	merged, err := acc.commit()
	if err != nil {
		// A failed merge leaves the tree untouched: collision duplicates
		// collected during traversal are never attached.
		extractor.discard()
		status.Errorf("[combiner] Merge under %q failed: %v", anchor.Name, err)
		return nil, err
	}

	// The traversal is over; this is the mutation-safe point for the
	// collision attachments collected during it.
	extractor.schedule(queue)
	queue.Flush()

	status.Infof("[combiner] Merged %d surfaces of %q into %d material groups",
		collected, anchor.Name, merged.SurfaceCount())
	return merged, nil
}
