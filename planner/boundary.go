package planner

import (
	"context"

	plannerruntime "github.com/tempoplan/planner-runtime"
)

// Boundary is the resolved planner boundary: the six engine operations
// plus access to engine memory for marshalling. engine.Instance is the
// production implementation.
//
// Calls on one Boundary must be serialized by the caller; the wrapper
// takes no locks. Distinct boundaries are fully independent.
type Boundary interface {
	plannerruntime.Memory
	plannerruntime.Allocator

	Create(ctx context.Context) (uint32, error)
	Destroy(ctx context.Context, handle uint32) error
	SolveFiles(ctx context.Context, handle, domainPtr, problemPtr, outPtr uint32) (int32, error)
	SolveContent(ctx context.Context, handle, domainPtr, problemPtr, outPtr uint32) (int32, error)
	GetVersion(ctx context.Context) (uint32, error)
	FreeString(ctx context.Context, ptr uint32) error
}
