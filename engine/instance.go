package engine

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/tempoplan/planner-runtime/errors"
)

// Artifact is a compiled planner artifact. Instantiate may be called any
// number of times; each instance is independent and owns its own engine
// memory. Safe for concurrent use.
type Artifact struct {
	engine   *Engine
	compiled wazero.CompiledModule
}

// Instance is a running engine artifact with the boundary symbol table
// resolved and signature-checked. It implements plannerruntime.Memory and
// plannerruntime.Allocator for the call marshaller.
//
// An Instance is NOT safe for concurrent use; confine it to one goroutine
// or serialize access externally. Distinct instances share nothing.
type Instance struct {
	mod api.Module
	mem api.Memory

	create       api.Function
	destroy      api.Function
	solveFiles   api.Function
	solveContent api.Function
	getVersion   api.Function
	freeString   api.Function

	allocFn api.Function
	freeFn  api.Function
}

// Instantiate creates a fresh engine instance and binds the boundary
// function table, validating that the artifact exports every required
// symbol with the expected C-convention signature. Performed once per
// instance; the resolved table is read-only afterwards.
func (a *Artifact) Instantiate(ctx context.Context) (*Instance, error) {
	if a.engine.cfg.EnableWASI {
		if err := a.engine.initWASI(ctx); err != nil {
			return nil, err
		}
	}

	// Anonymous module name so parallel instantiations never collide.
	modCfg := wazero.NewModuleConfig().WithName("")
	if a.engine.cfg.EnableWASI && a.engine.cfg.FSRoot != "" {
		modCfg = modCfg.WithFSConfig(
			wazero.NewFSConfig().WithDirMount(a.engine.cfg.FSRoot, "/"))
	}

	mod, err := a.engine.runtime.InstantiateModule(ctx, a.compiled, modCfg)
	if err != nil {
		return nil, errors.BadArtifact("instantiate artifact", err)
	}

	inst, err := bindSymbols(mod)
	if err != nil {
		_ = mod.Close(ctx)
		return nil, err
	}

	Logger().Debug("boundary symbols bound",
		zap.String("allocator", inst.allocFn.Definition().Name()))

	return inst, nil
}

// bindSymbols resolves the boundary function table from a live module.
func bindSymbols(mod api.Module) (*Instance, error) {
	defs := mod.ExportedFunctionDefinitions()

	resolve := func(sym string) (api.Function, error) {
		def, ok := defs[sym]
		if !ok {
			return nil, errors.MissingExport(sym)
		}
		want := requiredExports[sym]
		if !want.matches(def) {
			got := formatType(def.ParamTypes(), def.ResultTypes())
			return nil, errors.SignatureMismatch(sym, got, want.String())
		}
		return mod.ExportedFunction(sym), nil
	}

	inst := &Instance{mod: mod}

	var err error
	if inst.create, err = resolve(SymCreate); err != nil {
		return nil, err
	}
	if inst.destroy, err = resolve(SymDestroy); err != nil {
		return nil, err
	}
	if inst.solveFiles, err = resolve(SymSolveFiles); err != nil {
		return nil, err
	}
	if inst.solveContent, err = resolve(SymSolveContent); err != nil {
		return nil, err
	}
	if inst.getVersion, err = resolve(SymGetVersion); err != nil {
		return nil, err
	}
	if inst.freeString, err = resolve(SymFreeString); err != nil {
		return nil, err
	}

	// Module.Memory returns the memory whether or not it is exported;
	// the boundary contract requires the export, so resolve it by name.
	inst.mem = mod.ExportedMemory("memory")
	if inst.mem == nil {
		return nil, errors.New(errors.PhaseBind, errors.KindMissingExport).
			Symbol("memory").
			Detail("artifact exports no linear memory").
			Build()
	}

	// Allocator pair, fallback name chain across engine toolchains.
	for _, name := range allocNames {
		if def, ok := defs[name]; ok && allocSignature.matches(def) {
			inst.allocFn = mod.ExportedFunction(name)
			break
		}
	}
	if inst.allocFn == nil {
		return nil, errors.MissingExport("alloc")
	}
	for _, name := range freeNames {
		if def, ok := defs[name]; ok && freeSignature.matches(def) {
			inst.freeFn = mod.ExportedFunction(name)
			break
		}
	}
	if inst.freeFn == nil {
		return nil, errors.MissingExport("free")
	}

	return inst, nil
}

// Close releases the instance and all engine-side memory behind it.
func (i *Instance) Close(ctx context.Context) error {
	return i.mod.Close(ctx)
}

// Boundary calls. Each blocks the calling goroutine until the engine
// returns; there is no cancellation of an in-flight solve.

// Create calls the boundary create operation and returns the raw handle.
// A zero return means the engine failed to construct an instance.
func (i *Instance) Create(ctx context.Context) (uint32, error) {
	results, err := i.create.Call(ctx)
	if err != nil {
		return 0, errors.Trap(SymCreate, err)
	}
	return uint32(results[0]), nil
}

// Destroy calls the boundary destroy operation for handle.
func (i *Instance) Destroy(ctx context.Context, handle uint32) error {
	if _, err := i.destroy.Call(ctx, uint64(handle)); err != nil {
		return errors.Trap(SymDestroy, err)
	}
	return nil
}

// SolveFiles invokes the file-path solve variant. All pointer arguments
// are addresses of null-terminated UTF-8 strings (or the i32 out-param
// slot) previously written into this instance's memory.
func (i *Instance) SolveFiles(ctx context.Context, handle, domainPtr, problemPtr, outPtr uint32) (int32, error) {
	return i.callSolve(ctx, i.solveFiles, SymSolveFiles, handle, domainPtr, problemPtr, outPtr)
}

// SolveContent invokes the raw-text solve variant.
func (i *Instance) SolveContent(ctx context.Context, handle, domainPtr, problemPtr, outPtr uint32) (int32, error) {
	return i.callSolve(ctx, i.solveContent, SymSolveContent, handle, domainPtr, problemPtr, outPtr)
}

func (i *Instance) callSolve(ctx context.Context, fn api.Function, sym string, handle, domainPtr, problemPtr, outPtr uint32) (int32, error) {
	results, err := fn.Call(ctx,
		uint64(handle), uint64(domainPtr), uint64(problemPtr), uint64(outPtr))
	if err != nil {
		return 0, errors.Trap(sym, err)
	}
	return int32(uint32(results[0])), nil
}

// GetVersion calls the boundary version operation. The returned pointer
// is transferred to the caller, who must release it through FreeString
// exactly once, or not at all when it is zero.
func (i *Instance) GetVersion(ctx context.Context) (uint32, error) {
	results, err := i.getVersion.Call(ctx)
	if err != nil {
		return 0, errors.Trap(SymGetVersion, err)
	}
	return uint32(results[0]), nil
}

// FreeString releases a string previously transferred by GetVersion.
func (i *Instance) FreeString(ctx context.Context, ptr uint32) error {
	if _, err := i.freeString.Call(ctx, uint64(ptr)); err != nil {
		return errors.Trap(SymFreeString, err)
	}
	return nil
}

// Read copies length bytes of engine memory starting at offset.
func (i *Instance) Read(offset, length uint32) ([]byte, error) {
	view, ok := i.mem.Read(offset, length)
	if !ok {
		return nil, errors.New(errors.PhaseCall, errors.KindAllocation).
			Detail("read [%d,%d) outside engine memory", offset, offset+length).
			Build()
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, nil
}

// Write copies data into engine memory at offset.
func (i *Instance) Write(offset uint32, data []byte) error {
	if !i.mem.Write(offset, data) {
		return errors.New(errors.PhaseEncode, errors.KindAllocation).
			Detail("write [%d,%d) outside engine memory", offset, offset+uint32(len(data))).
			Build()
	}
	return nil
}

// MemorySize returns the current engine memory size in bytes.
func (i *Instance) MemorySize() uint32 {
	return i.mem.Size()
}

// Alloc reserves size bytes of engine scratch memory for call inputs.
func (i *Instance) Alloc(ctx context.Context, size uint32) (uint32, error) {
	results, err := i.allocFn.Call(ctx, uint64(size))
	if err != nil {
		return 0, errors.AllocationFailed(size, err)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, errors.AllocationFailed(size, nil)
	}
	return ptr, nil
}

// Free returns a buffer obtained from Alloc. Best effort: a failing
// guest free is logged, not propagated, since the call it supported has
// already completed.
func (i *Instance) Free(ctx context.Context, ptr uint32) {
	if _, err := i.freeFn.Call(ctx, uint64(ptr)); err != nil {
		Logger().Warn("guest free failed",
			zap.Uint32("ptr", ptr),
			zap.Error(err))
	}
}

// Global reads an exported i32/i64 global, for diagnostics and tests.
func (i *Instance) Global(name string) (uint64, bool) {
	g := i.mod.ExportedGlobal(name)
	if g == nil {
		return 0, false
	}
	return g.Get(), true
}
