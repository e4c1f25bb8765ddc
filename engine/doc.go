// Package engine provides the low-level boundary to the planner artifact.
//
// This package wraps wazero to load a compiled planner engine, resolve its
// fixed boundary export set, and expose each operation as a typed Go call
// over the artifact's linear memory.
//
// # Boundary Contract
//
// A conforming artifact exports, with C-convention core-wasm signatures:
//
//	temporal_planner_create        () -> i32 handle (0 on failure)
//	temporal_planner_destroy       (i32 handle)
//	temporal_planner_solve_files   (i32 handle, i32 domainPtr, i32 problemPtr, i32 outPtr) -> i32
//	temporal_planner_solve_content (i32 handle, i32 domainPtr, i32 problemPtr, i32 outPtr) -> i32
//	temporal_planner_get_version   () -> i32 stringPtr (0 for none)
//	temporal_planner_free_string   (i32 stringPtr)
//
// plus an exported linear memory and an allocator pair (alloc/free, with
// toolchain-dependent fallback names) used by the host to stage call
// inputs. All string pointers address null-terminated UTF-8.
//
// Binding happens once per instance at Instantiate: every symbol is
// checked for presence and exact signature, and a missing or mismatched
// export fails immediately with a bind-phase error rather than trapping
// mid-call later.
//
// # Instantiation Flow
//
//  1. Engine.Load compiles the artifact bytes
//  2. Artifact.Instantiate creates an isolated instance and binds symbols
//  3. planner.Acquire / planner.With drive solves through the instance
//
// Most users should use the planner package; this package is for callers
// needing direct control over the boundary.
package engine
