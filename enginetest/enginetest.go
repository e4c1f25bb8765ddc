// Package enginetest builds scriptable stub planner artifacts in memory,
// so boundary behavior can be tested without shipping a real engine build.
//
// The stub implements the full boundary export set. Its solve operations
// are scripted through the domain text: the first byte (as an ASCII
// digit) becomes the raw outcome code, and when that code is
// solution-found the second byte becomes the plan length written to the
// out-parameter. A solve on handle zero reports the invalid-handle code.
//
// Exported counters let tests assert release discipline:
//
//	live_handles  created minus destroyed engine instances
//	string_frees  temporal_planner_free_string invocations
//	buffer_frees  guest free invocations for borrowed input buffers
package enginetest

import (
	"github.com/tempoplan/planner-runtime/enginetest/internal/wasmenc"
)

// Script prefixes for solve inputs: Outcome digit, then plan length digit.
// "17..." reports solution-found with a 7-action plan.

const (
	versionPtr = 1024
	heapBase   = 2048
)

// Options select a stub variant. The zero value is a well-behaved engine.
type Options struct {
	// Version is the C string get_version points at. Default "0.3.1".
	Version string

	// FailCreate makes create return a null handle.
	FailCreate bool

	// NullVersion makes get_version return a null pointer.
	NullVersion bool

	// BadCreateSignature exports the create symbol with a destroy-shaped
	// type, to exercise signature validation.
	BadCreateSignature bool

	// OmitExports drops the named exports from the artifact.
	OmitExports []string
}

// Build returns the wasm bytes of a stub engine artifact.
func Build(opts Options) []byte {
	version := opts.Version
	if version == "" {
		version = "0.3.1"
	}

	// Type indices
	const (
		tNoneToI32 = iota // () -> i32
		tI32ToNone        // (i32)
		tSolve            // (handle, domainPtr, problemPtr, outPtr) -> i32
		tI32ToI32         // (i32) -> i32
	)

	// Function indices
	const (
		fCreate = iota
		fDestroy
		fSolve
		fGetVersion
		fFreeString
		fAlloc
		fFree
	)

	// Globals
	const (
		gNextHandle = iota
		gLive
		gStringFrees
		gHeap
		gBufferFrees
	)

	create := wasmenc.Code{}
	if opts.FailCreate {
		create = create.I32Const(0).End()
	} else {
		create = create.
			GlobalGet(gNextHandle).
			GlobalGet(gNextHandle).I32Const(1).I32Add().GlobalSet(gNextHandle).
			GlobalGet(gLive).I32Const(1).I32Add().GlobalSet(gLive).
			End()
	}

	destroy := wasmenc.Code{}.
		GlobalGet(gLive).I32Const(1).I32Sub().GlobalSet(gLive).
		End()

	// Raw code is domain[0]-'0'; plan length domain[1]-'0' when code is 1.
	solve := wasmenc.Code{}.
		LocalGet(0).I32Eqz().If().
		I32Const(5).Return().
		End().
		LocalGet(1).I32Load8U(0).I32Const('0').I32Sub().LocalSet(4).
		LocalGet(4).I32Const(1).I32Eq().If().
		LocalGet(3).LocalGet(1).I32Load8U(1).I32Const('0').I32Sub().I32Store(0).
		End().
		LocalGet(4).
		End()

	getVersion := wasmenc.Code{}
	if opts.NullVersion {
		getVersion = getVersion.I32Const(0).End()
	} else {
		getVersion = getVersion.I32Const(versionPtr).End()
	}

	freeString := wasmenc.Code{}.
		GlobalGet(gStringFrees).I32Const(1).I32Add().GlobalSet(gStringFrees).
		End()

	// Bump allocator, 4-byte aligned, never reclaims.
	alloc := wasmenc.Code{}.
		GlobalGet(gHeap).
		GlobalGet(gHeap).LocalGet(0).I32Add().
		I32Const(3).I32Add().I32Const(-4).I32And().
		GlobalSet(gHeap).
		End()

	free := wasmenc.Code{}.
		GlobalGet(gBufferFrees).I32Const(1).I32Add().GlobalSet(gBufferFrees).
		End()

	createExport := uint32(fCreate)
	if opts.BadCreateSignature {
		createExport = fDestroy
	}

	exports := []wasmenc.Export{
		{Name: "memory", Kind: wasmenc.KindMemory, Index: 0},
		{Name: "temporal_planner_create", Kind: wasmenc.KindFunc, Index: createExport},
		{Name: "temporal_planner_destroy", Kind: wasmenc.KindFunc, Index: fDestroy},
		{Name: "temporal_planner_solve_files", Kind: wasmenc.KindFunc, Index: fSolve},
		{Name: "temporal_planner_solve_content", Kind: wasmenc.KindFunc, Index: fSolve},
		{Name: "temporal_planner_get_version", Kind: wasmenc.KindFunc, Index: fGetVersion},
		{Name: "temporal_planner_free_string", Kind: wasmenc.KindFunc, Index: fFreeString},
		{Name: "alloc", Kind: wasmenc.KindFunc, Index: fAlloc},
		{Name: "free", Kind: wasmenc.KindFunc, Index: fFree},
		{Name: "live_handles", Kind: wasmenc.KindGlobal, Index: gLive},
		{Name: "string_frees", Kind: wasmenc.KindGlobal, Index: gStringFrees},
		{Name: "buffer_frees", Kind: wasmenc.KindGlobal, Index: gBufferFrees},
	}
	if len(opts.OmitExports) > 0 {
		kept := exports[:0]
		for _, e := range exports {
			omitted := false
			for _, name := range opts.OmitExports {
				if e.Name == name {
					omitted = true
					break
				}
			}
			if !omitted {
				kept = append(kept, e)
			}
		}
		exports = kept
	}

	mod := &wasmenc.Module{
		Types: []wasmenc.FuncType{
			tNoneToI32: {Params: 0, Results: 1},
			tI32ToNone: {Params: 1, Results: 0},
			tSolve:     {Params: 4, Results: 1},
			tI32ToI32:  {Params: 1, Results: 1},
		},
		Funcs: []wasmenc.Func{
			fCreate:     {Type: tNoneToI32, Body: create},
			fDestroy:    {Type: tI32ToNone, Body: destroy},
			fSolve:      {Type: tSolve, LocalI32: 1, Body: solve},
			fGetVersion: {Type: tNoneToI32, Body: getVersion},
			fFreeString: {Type: tI32ToNone, Body: freeString},
			fAlloc:      {Type: tI32ToI32, Body: alloc},
			fFree:       {Type: tI32ToNone, Body: free},
		},
		MemPages: 1,
		Globals: []wasmenc.Global{
			gNextHandle:  {Init: 1},
			gLive:        {Init: 0},
			gStringFrees: {Init: 0},
			gHeap:        {Init: heapBase},
			gBufferFrees: {Init: 0},
		},
		Exports: exports,
		Data: []wasmenc.Segment{
			{Offset: versionPtr, Bytes: append([]byte(version), 0)},
		},
	}

	return mod.Encode()
}
