package engine

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/tempoplan/planner-runtime/errors"
)

// Config holds explicit configuration for engine creation. The artifact
// location is always passed in by the caller (see Locate for the
// conventional search) rather than discovered ambiently, so multiple
// engine artifacts can be loaded side by side.
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// EnableWASI instantiates the wasi_snapshot_preview1 host module so
	// engine builds that read PDDL files from disk can do so. The
	// file-based solve variant reports missing files as a FileError
	// outcome; the wrapper never checks paths itself.
	EnableWASI bool

	// FSRoot is a host directory mounted at the guest root when WASI is
	// enabled. Empty means no filesystem access.
	FSRoot string
}

// Engine owns a wazero runtime and loads planner artifacts into it.
// Safe for concurrent use.
type Engine struct {
	runtime  wazero.Runtime
	cfg      Config
	wasiMu   sync.Mutex
	wasiDone atomic.Bool
}

// New creates an engine. A nil cfg uses defaults.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()

	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(c.MemoryLimitPages)
	}

	return &Engine{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		cfg:     c,
	}, nil
}

// Load compiles a planner artifact from raw bytes. Compilation failure
// (truncated file, wrong format, incompatible feature set) is a
// BadArtifact error: the wrapper could not even talk to the engine.
func (e *Engine) Load(ctx context.Context, artifactBytes []byte) (*Artifact, error) {
	compiled, err := e.runtime.CompileModule(ctx, artifactBytes)
	if err != nil {
		return nil, errors.BadArtifact("compile artifact", err)
	}

	Logger().Debug("artifact compiled",
		zap.Int("size", len(artifactBytes)))

	return &Artifact{engine: e, compiled: compiled}, nil
}

// LoadFile reads and compiles a planner artifact from disk.
func (e *Engine) LoadFile(ctx context.Context, path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.BadArtifact("read artifact "+path, err)
	}
	return e.Load(ctx, data)
}

// Close releases the runtime and every instance created from it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// initWASI instantiates the WASI host module once per runtime.
// Safe for concurrent calls from multiple artifacts sharing the engine.
func (e *Engine) initWASI(ctx context.Context) error {
	if e.wasiDone.Load() {
		return nil
	}

	e.wasiMu.Lock()
	defer e.wasiMu.Unlock()

	if e.wasiDone.Load() {
		return nil
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, e.runtime); err != nil {
		return errors.BadArtifact("instantiate WASI", err)
	}

	e.wasiDone.Store(true)
	return nil
}
