package web

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mogaika/meshcombine/mesh"
	"github.com/mogaika/meshcombine/scene"
)

func testServer() *Server {
	root := scene.NewNode("root", scene.KIND_SPATIAL)
	anchor := scene.NewNode("anchor", scene.KIND_SPATIAL)
	root.AttachChild(anchor)
	return &Server{root: root, anchor: anchor, queue: &scene.DeferredQueue{}}
}

func TestHandlerDumpScene(t *testing.T) {
	server = testServer()

	w := httptest.NewRecorder()
	HandlerDumpScene(w, httptest.NewRequest("GET", "/dump/scene", nil))

	if ct := w.Header().Get("Content-Type"); ct != "text/plain" {
		t.Errorf("Content-Type %q, expected text/plain", ct)
	}
	body := w.Body.String()
	for _, name := range []string{"root", "anchor"} {
		if !strings.Contains(body, name) {
			t.Errorf("Dump does not mention node %q:\n%s", name, body)
		}
	}
}

func TestHandlerDumpResult(t *testing.T) {
	server = testServer()

	w := httptest.NewRecorder()
	HandlerDumpResult(w, httptest.NewRequest("GET", "/dump/result", nil))
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("Dump of an absent result did not report an error: %s", w.Body.String())
	}

	server.result = &mesh.Merged{Surfaces: []*mesh.Surface{{
		Positions: []mesh.Position{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
		Material:  &mesh.Material{Name: "stone"},
	}}}

	w = httptest.NewRecorder()
	HandlerDumpResult(w, httptest.NewRequest("GET", "/dump/result", nil))
	if !strings.Contains(w.Body.String(), "stone") {
		t.Errorf("Dump does not mention the surface material:\n%s", w.Body.String())
	}
}
