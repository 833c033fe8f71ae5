package web

import (
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/meshcombine/mesh"
	"github.com/mogaika/meshcombine/scene"
)

// Server owns the live scene and the current merge result. The result is
// swapped atomically under the lock: handlers either see the previous
// complete mesh or the new one, never a partial build.
type Server struct {
	mu     sync.Mutex
	root   *scene.Node
	anchor *scene.Node
	queue  *scene.DeferredQueue
	result *mesh.Merged
}

var server *Server

func StartServer(addr string, root, anchor *scene.Node) error {
	server = &Server{
		root:   root,
		anchor: anchor,
		queue:  &scene.DeferredQueue{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", HandlerSceneJson)
	r.HandleFunc("/json/result", HandlerResultJson)
	r.HandleFunc("/action/merge", HandlerActionMerge)
	r.HandleFunc("/action/clear", HandlerActionClear)
	r.HandleFunc("/action/visibility/{state}", HandlerActionVisibility)
	r.HandleFunc("/dump/gltf", HandlerDumpGLTF)
	r.HandleFunc("/dump/scene", HandlerDumpScene)
	r.HandleFunc("/dump/result", HandlerDumpResult)
	r.HandleFunc("/ws/status", HandlerWsStatus)

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
