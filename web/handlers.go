package web

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/mogaika/meshcombine/combiner"
	"github.com/mogaika/meshcombine/config"
	"github.com/mogaika/meshcombine/mesh"
	"github.com/mogaika/meshcombine/scene"
	"github.com/mogaika/meshcombine/status"
	"github.com/mogaika/meshcombine/utils"
	"github.com/mogaika/meshcombine/webutils"
)

type jNode struct {
	Name     string
	Kind     string
	Visible  bool
	Surfaces int      `json:",omitempty"`
	Children []*jNode `json:",omitempty"`
}

func marshalNode(n *scene.Node) *jNode {
	j := &jNode{
		Name:     n.Name,
		Kind:     n.Kind.String(),
		Visible:  n.Visible,
		Surfaces: n.Mesh.SurfaceCount(),
	}
	for _, child := range n.Children() {
		j.Children = append(j.Children, marshalNode(child))
	}
	return j
}

type jSurface struct {
	Material  string
	Vertices  int
	Triangles int
}

type jResult struct {
	Merged   bool
	Surfaces []jSurface
}

func marshalResult(m *mesh.Merged) *jResult {
	j := &jResult{Merged: m != nil}
	if m == nil {
		return j
	}
	for _, surface := range m.Surfaces {
		name := "<no material>"
		if surface.Material != nil {
			name = surface.Material.Name
		}
		j.Surfaces = append(j.Surfaces, jSurface{
			Material:  name,
			Vertices:  surface.VertexCount(),
			Triangles: surface.TriangleCount(),
		})
	}
	return j
}

func HandlerSceneJson(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()
	webutils.WriteJson(w, marshalNode(server.root))
}

func HandlerResultJson(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()
	webutils.WriteJson(w, marshalResult(server.result))
}

func (s *Server) collisionDestination() *scene.Node {
	path := config.GetSettings().CollisionDestination
	if path == "" {
		return nil
	}
	dest := s.root.FindPath(path)
	if dest == nil {
		status.Warnf("[web] Collision destination path %q does not resolve, merging without it", path)
	}
	return dest
}

func HandlerActionMerge(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	merged, err := combiner.Merge(server.anchor, combiner.Options{
		CollisionDestination: server.collisionDestination(),
		Queue:                server.queue,
	})
	if err != nil {
		server.result = nil
		webutils.WriteError(w, err)
		return
	}

	server.result = merged
	if config.GetSettings().ToggleVisibility {
		combiner.SetChildrenVisible(server.anchor, false)
	}

	webutils.WriteJson(w, marshalResult(server.result))
}

func HandlerActionClear(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	combiner.Clear(server.anchor, server.collisionDestination())
	server.result = nil

	webutils.WriteJson(w, marshalResult(server.result))
}

func HandlerActionVisibility(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	switch state := mux.Vars(r)["state"]; state {
	case "show":
		combiner.SetChildrenVisible(server.anchor, true)
	case "hide":
		combiner.SetChildrenVisible(server.anchor, false)
	default:
		webutils.WriteError(w, errors.Errorf("Unknown visibility state %q", state))
		return
	}

	webutils.WriteJson(w, marshalNode(server.anchor))
}

func HandlerDumpGLTF(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	if server.result == nil {
		webutils.WriteError(w, errors.Errorf("No merge result to dump"))
		return
	}

	var buf bytes.Buffer
	if err := server.result.ExportGLTFBinary(&buf); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, server.anchor.Name+".glb")
}

// HandlerDumpScene serves a spew rendering of the scene tree summary.
// Text form of /json/scene, meant for eyeballing node state in a browser.
func HandlerDumpScene(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	w.Header().Set("Content-Type", "text/plain")
	webutils.WriteResult(w, []byte(utils.SDump(marshalNode(server.root))))
}

// HandlerDumpResult serves a spew rendering of the current merge result
// summary, or an error when no merge committed yet.
func HandlerDumpResult(w http.ResponseWriter, r *http.Request) {
	server.mu.Lock()
	defer server.mu.Unlock()

	if server.result == nil {
		webutils.WriteError(w, errors.Errorf("No merge result to dump"))
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	webutils.WriteResult(w, []byte(utils.SDump(marshalResult(server.result))))
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func HandlerWsStatus(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	status.NewClient(conn)
}
