package planner_test

import (
	"context"
	goerrors "errors"
	"sync"
	"testing"

	"github.com/tempoplan/planner-runtime/engine"
	"github.com/tempoplan/planner-runtime/enginetest"
	"github.com/tempoplan/planner-runtime/errors"
	"github.com/tempoplan/planner-runtime/planner"
)

// newInstance spins up a stub engine artifact and returns a bound
// boundary instance.
func newInstance(t *testing.T, opts enginetest.Options) *engine.Instance {
	t.Helper()
	ctx := context.Background()

	eng, err := engine.New(ctx, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	t.Cleanup(func() { eng.Close(ctx) })

	art, err := eng.Load(ctx, enginetest.Build(opts))
	if err != nil {
		t.Fatalf("load artifact: %v", err)
	}
	inst, err := art.Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	t.Cleanup(func() { inst.Close(ctx) })
	return inst
}

func mustGlobal(t *testing.T, inst *engine.Instance, name string) uint64 {
	t.Helper()
	v, ok := inst.Global(name)
	if !ok {
		t.Fatalf("stub does not export global %q", name)
	}
	return v
}

func TestAcquireRelease(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	p, err := planner.Acquire(ctx, inst)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if got := mustGlobal(t, inst, "live_handles"); got != 1 {
		t.Errorf("live_handles = %d after acquire, want 1", got)
	}

	if err := p.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := mustGlobal(t, inst, "live_handles"); got != 0 {
		t.Errorf("live_handles = %d after release, want 0", got)
	}
}

func TestRelease_ConsumesHandle(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	p, err := planner.Acquire(ctx, inst)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := p.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}

	// Every operation on a released handle fails deterministically.
	if _, err := p.SolveContent(ctx, "17domain", "problem"); !goerrors.Is(err,
		&errors.Error{Phase: errors.PhaseCall, Kind: errors.KindHandleReleased}) {
		t.Errorf("solve after release: err = %v, want handle_released", err)
	}
	if err := p.Release(ctx); !goerrors.Is(err,
		&errors.Error{Phase: errors.PhaseCall, Kind: errors.KindHandleReleased}) {
		t.Errorf("double release: err = %v, want handle_released", err)
	}

	// The boundary destroy ran exactly once.
	if got := mustGlobal(t, inst, "live_handles"); got != 0 {
		t.Errorf("live_handles = %d, want 0", got)
	}
}

func TestAcquire_NullHandle(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{FailCreate: true})

	_, err := planner.Acquire(ctx, inst)
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseCreate, Kind: errors.KindNullHandle}) {
		t.Fatalf("err = %v, want null_handle", err)
	}
}

func TestWith_ReleasesOnEveryPath(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	if err := planner.With(ctx, inst, func(p *planner.Planner) error {
		res, err := p.SolveContent(ctx, "15domain", "problem")
		if err != nil {
			return err
		}
		if res.Outcome != planner.SolutionFound || res.PlanLength != 5 {
			t.Errorf("res = %+v, want solution_found with 5 actions", res)
		}
		return nil
	}); err != nil {
		t.Fatalf("with: %v", err)
	}
	if got := mustGlobal(t, inst, "live_handles"); got != 0 {
		t.Errorf("live_handles = %d after clean scope, want 0", got)
	}

	// Release must also run when the usage fails.
	boom := goerrors.New("usage failed")
	if err := planner.With(ctx, inst, func(*planner.Planner) error {
		return boom
	}); !goerrors.Is(err, boom) {
		t.Fatalf("with: err = %v, want usage error", err)
	}
	if got := mustGlobal(t, inst, "live_handles"); got != 0 {
		t.Errorf("live_handles = %d after failed scope, want 0", got)
	}
}

func TestSolveContent_Outcomes(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	tests := []struct {
		name   string
		domain string
		want   planner.Result
	}{
		{"success", "0domain", planner.Result{Outcome: planner.Success}},
		{"solution with plan length", "17domain", planner.Result{Outcome: planner.SolutionFound, PlanLength: 7}},
		{"no solution ignores out-param", "29domain", planner.Result{Outcome: planner.NoSolutionFound}},
		{"parse error", "3domain", planner.Result{Outcome: planner.ParseError}},
	}

	if err := planner.With(ctx, inst, func(p *planner.Planner) error {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res, err := p.SolveContent(ctx, tt.domain, "(define (problem p))")
				if err != nil {
					t.Fatalf("solve: %v", err)
				}
				if res != tt.want {
					t.Errorf("res = %+v, want %+v", res, tt.want)
				}
			})
		}
		return nil
	}); err != nil {
		t.Fatalf("with: %v", err)
	}
}

func TestSolveFiles_MissingFileLeavesHandleUsable(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	if err := planner.With(ctx, inst, func(p *planner.Planner) error {
		res, err := p.SolveFiles(ctx, "4no-such-domain.pddl", "4no-such-problem.pddl")
		if err != nil {
			t.Fatalf("solve files: %v", err)
		}
		if res.Outcome != planner.FileError {
			t.Fatalf("outcome = %v, want file_error", res.Outcome)
		}

		// The engine reported a domain outcome; the handle stays good.
		res, err = p.SolveFiles(ctx, "13domain.pddl", "problem.pddl")
		if err != nil {
			t.Fatalf("second solve: %v", err)
		}
		if res.Outcome != planner.SolutionFound || res.PlanLength != 3 {
			t.Errorf("res = %+v, want solution_found with 3 actions", res)
		}
		return nil
	}); err != nil {
		t.Fatalf("with: %v", err)
	}
}

func TestSolve_ProtocolViolationPoisonsHandle(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	p, err := planner.Acquire(ctx, inst)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer p.Release(ctx)

	_, err = p.SolveContent(ctx, "9domain", "problem")
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnknownOutcome}) {
		t.Fatalf("err = %v, want unknown_outcome", err)
	}

	// Version skew is not recoverable for this handle.
	_, err = p.SolveContent(ctx, "17domain", "problem")
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseCall, Kind: errors.KindHandlePoisoned}) {
		t.Errorf("solve after violation: err = %v, want handle_poisoned", err)
	}
}

func TestSolve_EmbeddedTerminatorRejectedBeforeBoundary(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	p, err := planner.Acquire(ctx, inst)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer p.Release(ctx)

	_, err = p.SolveContent(ctx, "1domain\x00hidden", "problem")
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindEmbeddedTerminator}) {
		t.Fatalf("err = %v, want embedded_terminator", err)
	}

	// Rejected before anything crossed: no buffers were staged or freed.
	if got := mustGlobal(t, inst, "buffer_frees"); got != 0 {
		t.Errorf("buffer_frees = %d, want 0", got)
	}

	// The failed call leaves the handle valid for reuse.
	res, err := p.SolveContent(ctx, "12domain", "problem")
	if err != nil {
		t.Fatalf("solve after encoding failure: %v", err)
	}
	if res.Outcome != planner.SolutionFound || res.PlanLength != 2 {
		t.Errorf("res = %+v, want solution_found with 2 actions", res)
	}
}

func TestSolve_BorrowedBuffersReturned(t *testing.T) {
	ctx := context.Background()
	inst := newInstance(t, enginetest.Options{})

	if err := planner.With(ctx, inst, func(p *planner.Planner) error {
		if _, err := p.SolveContent(ctx, "17domain", "problem"); err != nil {
			return err
		}
		return nil
	}); err != nil {
		t.Fatalf("with: %v", err)
	}

	// Domain text, problem text, and the out-param slot.
	if got := mustGlobal(t, inst, "buffer_frees"); got != 3 {
		t.Errorf("buffer_frees = %d, want 3", got)
	}
}

func TestConcurrentInstances(t *testing.T) {
	ctx := context.Background()

	eng, err := engine.New(ctx, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	t.Cleanup(func() { eng.Close(ctx) })

	art, err := eng.Load(ctx, enginetest.Build(enginetest.Options{}))
	if err != nil {
		t.Fatalf("load artifact: %v", err)
	}

	// Two independent instances, one solve each on its own goroutine.
	domains := []struct {
		text string
		plan int
	}{
		{"15domain-a", 5},
		{"13domain-b", 3},
	}

	var wg sync.WaitGroup
	for _, d := range domains {
		inst, err := art.Instantiate(ctx)
		if err != nil {
			t.Fatalf("instantiate: %v", err)
		}
		t.Cleanup(func() { inst.Close(ctx) })

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := planner.With(ctx, inst, func(p *planner.Planner) error {
				res, err := p.SolveContent(ctx, d.text, "problem")
				if err != nil {
					return err
				}
				if res.Outcome != planner.SolutionFound || res.PlanLength != d.plan {
					t.Errorf("res = %+v, want solution_found with %d actions", res, d.plan)
				}
				return nil
			})
			if err != nil {
				t.Errorf("solve on %q: %v", d.text, err)
			}
		}()
	}
	wg.Wait()
}
