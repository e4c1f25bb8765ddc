package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/tempoplan/planner-runtime/engine"
	"github.com/tempoplan/planner-runtime/errors"
)

// Planner owns one opaque engine handle. Exactly one Planner holds a
// given handle at a time; the handle value itself never leaves this
// struct, so the host cannot dereference, copy, or outlive it.
//
// Not safe for concurrent use: calls on one Planner must be serialized
// by the caller.
type Planner struct {
	boundary Boundary
	handle   uint32
	poisoned bool
}

// Acquire creates an engine instance through the boundary and wraps its
// handle. A zero handle from the engine is a creation failure. Callers
// using Acquire directly carry the release obligation; prefer With.
func Acquire(ctx context.Context, b Boundary) (*Planner, error) {
	handle, err := b.Create(ctx)
	if err != nil {
		return nil, err
	}
	if handle == 0 {
		return nil, errors.NullHandle(engine.SymCreate)
	}
	return &Planner{boundary: b, handle: handle}, nil
}

// Release destroys the engine-side instance. The handle is consumed:
// the boundary destroy runs at most once per handle, and every later
// operation on this Planner fails deterministically. Releasing twice is
// an error in Go, never a double-free at the boundary.
func (p *Planner) Release(ctx context.Context) error {
	if p.handle == 0 {
		return errors.HandleReleased("release")
	}
	handle := p.handle
	p.handle = 0
	return p.boundary.Destroy(ctx, handle)
}

// With runs fn with a freshly acquired Planner and guarantees release on
// every exit path, including when fn fails. This is the sanctioned way
// to hold a handle.
func With(ctx context.Context, b Boundary, fn func(*Planner) error) (err error) {
	p, acqErr := Acquire(ctx, b)
	if acqErr != nil {
		return acqErr
	}
	defer func() {
		relErr := p.Release(ctx)
		if relErr == nil {
			return
		}
		if err == nil {
			err = relErr
			return
		}
		// fn already failed; keep its error and note the release failure.
		Logger().Warn("release after failed use", zap.Error(relErr))
	}()
	return fn(p)
}

// SolveFiles solves the problem described by two PDDL file paths. The
// engine resolves the paths itself; a missing or unreadable file comes
// back as the FileError outcome, not a Go error, and leaves the handle
// usable for further calls.
func (p *Planner) SolveFiles(ctx context.Context, domainPath, problemPath string) (Result, error) {
	return p.solve(ctx, p.boundary.SolveFiles, "solve_files", domainPath, problemPath)
}

// SolveContent solves the problem described by raw PDDL text.
func (p *Planner) SolveContent(ctx context.Context, domainText, problemText string) (Result, error) {
	return p.solve(ctx, p.boundary.SolveContent, "solve_content", domainText, problemText)
}

type solveCall func(ctx context.Context, handle, domainPtr, problemPtr, outPtr uint32) (int32, error)

func (p *Planner) solve(ctx context.Context, call solveCall, op, domain, problem string) (Result, error) {
	if p.handle == 0 {
		return Result{}, errors.HandleReleased(op)
	}
	if p.poisoned {
		return Result{}, errors.HandlePoisoned(op)
	}

	// Stage both inputs and the out-param slot in engine memory. The
	// buffers are borrowed by the engine for this call only and are
	// returned on every exit path.
	domainPtr, release, err := writeCString(ctx, p.boundary, domain, "domain")
	if err != nil {
		return Result{}, err
	}
	defer release()

	problemPtr, release, err := writeCString(ctx, p.boundary, problem, "problem")
	if err != nil {
		return Result{}, err
	}
	defer release()

	outPtr, release, err := writeOutParam(ctx, p.boundary)
	if err != nil {
		return Result{}, err
	}
	defer release()

	raw, err := call(ctx, p.handle, domainPtr, problemPtr, outPtr)
	if err != nil {
		return Result{}, err
	}

	outcome, err := DecodeOutcome(raw)
	if err != nil {
		// Version skew between wrapper and engine. The handle cannot be
		// trusted afterwards; further solves are refused.
		p.poisoned = true
		return Result{}, err
	}

	res := Result{Outcome: outcome}
	if outcome == SolutionFound {
		length, err := readOutParam(p.boundary, outPtr)
		if err != nil {
			return Result{}, err
		}
		res.PlanLength = int(length)
	}

	Logger().Debug("solve completed",
		zap.String("op", op),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("plan_length", res.PlanLength))

	return res, nil
}
