// Package plannerruntime provides a Go boundary layer for the temporal
// planner engine, an externally implemented solver shipped as a WebAssembly
// artifact with a fixed C-convention export set.
//
// The host never sees the engine's internals. It drives the engine through
// six boundary operations: create/destroy an opaque instance handle, solve
// from PDDL file paths or raw PDDL text, query the engine version, and
// release engine-allocated strings. All text crosses the boundary as
// null-terminated UTF-8 in the engine's linear memory, and every solve
// reports one of six closed integer outcome codes.
//
// # Architecture Overview
//
//	plannerruntime/      Root package with Memory and Allocator interfaces
//	├── engine/          wazero integration: artifact loading and the
//	│                    resolved, signature-checked boundary symbol table
//	├── planner/         High-level API: handle lifecycle, call
//	│                    marshalling, outcome decoding, string ownership
//	├── errors/          Structured error types for boundary failures
//	├── enginetest/      Scriptable stub engine artifact for tests
//	└── cmd/plansolve/   Demo CLI with an interactive TUI mode
//
// # Quick Start
//
//	eng, err := engine.New(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	art, err := eng.LoadFile(ctx, "temporal_planner.wasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inst, err := art.Instantiate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	err = planner.With(ctx, inst, func(p *planner.Planner) error {
//	    res, err := p.SolveFiles(ctx, "domain.pddl", "problem.pddl")
//	    if err != nil {
//	        return err
//	    }
//	    if res.Outcome == planner.SolutionFound {
//	        fmt.Println("plan length:", res.PlanLength)
//	    }
//	    return nil
//	})
//
// # Ownership
//
// An instance handle is exclusively owned by one planner.Planner and is
// invalidated on release, so use-after-release and double-destroy fail
// deterministically in Go instead of corrupting the engine. Version strings
// are transferred from the engine and released through the paired
// free-string operation exactly once; solve inputs are borrowed by the
// engine only for the duration of the call.
//
// # Thread Safety
//
// Engine and Artifact are safe for concurrent use. An Instance and any
// Planner acquired from it must be confined to one goroutine or externally
// serialized; distinct instances are fully independent and may run
// concurrently.
package plannerruntime
