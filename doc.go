// Package fwstep is a step-by-step Floyd–Warshall debugger engine: it turns
// a tile map into a graph and lets you walk the all-pairs shortest-path
// algorithm one pseudocode line at a time, forwards and backwards.
//
// 🚀 What is inside?
//
//	tilemap/ parse "." / "#" tile maps into an adjacency matrix
//	matrix/  Dense storage, validators and the reference APSP closure
//	program/ the numbered pseudocode and its line-by-line transition function
//	fwstate/ immutable execution snapshots and their packed binary form
//	history/ ring buffer of recent states and the sparse checkpoint index
//	stepper/ the timeline: step, step back, seek, progress, background precompute
//	player/  debugger controls: play/pause, speed, breakpoints, seeking
//	paths/   shortest-path reconstruction from the next-hop table
//	config/  viper-backed settings (file + FWSTEP_* environment)
//	logger/  logrus setup shared by every component
//
// Quick example:
//
//	adj, _ := tilemap.Build("...\n.#.\n...")
//	st := stepper.New()
//	_ = st.Initialize(adj)
//	for {
//		s, err := st.StepForward()
//		if err != nil {
//			break // stepper.ErrAlreadyDone
//		}
//		fmt.Println(s.Step(), program.Text(s.Line()))
//	}
//	path, _ := st.ReconstructPath(0, 8)
//
// Stepping backwards is cheap for recent states (ring buffer) and bounded
// for older ones: replay starts from the nearest checkpoint, and there are
// at most config.DefaultMaxCheckpoints of those per run.
//
//	go get github.com/katalvlaran/fwstep
package fwstep
