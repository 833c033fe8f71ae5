package main

import (
	"flag"
	"log"
	"os"

	"github.com/mogaika/meshcombine/combiner"
	"github.com/mogaika/meshcombine/config"
	"github.com/mogaika/meshcombine/scene"
	"github.com/mogaika/meshcombine/web"
)

func main() {
	var addr, scenePath, settingsPath, anchorPath, collisionPath, gltfOut string
	var doMerge, runMode bool
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&scenePath, "scene", "", "Path to scene yaml file")
	flag.StringVar(&settingsPath, "settings", "", "Path to settings yaml file")
	flag.StringVar(&anchorPath, "anchor", "", "Path from scene root to the anchor node (empty - root itself)")
	flag.StringVar(&collisionPath, "collision", "", "Collision destination path override")
	flag.BoolVar(&doMerge, "merge", false, "Run one merge and exit instead of serving")
	flag.StringVar(&gltfOut, "gltf", "", "Write merged mesh as binary gltf to this file (with -merge)")
	flag.BoolVar(&runMode, "run", false, "Apply run-mode transition behaviors before anything else")
	flag.Parse()

	if scenePath == "" {
		flag.PrintDefaults()
		return
	}

	if settingsPath != "" {
		if err := config.LoadSettings(settingsPath); err != nil {
			log.Fatal(err)
		}
	}
	if collisionPath != "" {
		s := config.GetSettings()
		s.CollisionDestination = collisionPath
		config.SetSettings(s)
	}

	root, err := scene.LoadFile(scenePath)
	if err != nil {
		log.Fatal(err)
	}

	anchor := root.FindPath(anchorPath)
	if anchor == nil {
		log.Fatalf("Anchor path %q does not resolve", anchorPath)
	}

	queue := &scene.DeferredQueue{}

	if runMode {
		combiner.EnterRunMode(anchor, config.GetSettings().DeleteOnLaunch, queue)
		queue.Flush()
	}

	if doMerge {
		var dest *scene.Node
		if path := config.GetSettings().CollisionDestination; path != "" {
			if dest = root.FindPath(path); dest == nil {
				log.Printf("[main] Collision destination path %q does not resolve, merging without it", path)
			}
		}

		merged, err := combiner.Merge(anchor, combiner.Options{
			CollisionDestination: dest,
			Queue:                queue,
		})
		if err != nil {
			log.Fatal(err)
		}

		if config.GetSettings().ToggleVisibility {
			combiner.SetChildrenVisible(anchor, false)
		}

		if gltfOut != "" {
			f, err := os.Create(gltfOut)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			if err := merged.ExportGLTFBinary(f); err != nil {
				log.Fatal(err)
			}
			log.Printf("[main] Wrote %d surfaces to %s", merged.SurfaceCount(), gltfOut)
		}
		return
	}

	if err := web.StartServer(addr, root, anchor); err != nil {
		log.Fatal(err)
	}
}
