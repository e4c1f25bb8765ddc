package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseBind,
				Kind:   KindSignatureMismatch,
				Symbol: "temporal_planner_create",
				Detail: "export has signature (i32), boundary requires ()->i32",
			},
			contains: []string{"[bind]", "signature_mismatch", "temporal_planner_create", "()->i32"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindUnknownOutcome,
			},
			contains: []string{"[decode]", "unknown_outcome"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindBadArtifact,
				Detail: "compile artifact",
				Cause:  errors.New("invalid magic number"),
			},
			contains: []string{"[load]", "bad_artifact", "compile artifact", "caused by", "invalid magic number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseCall,
		Kind:  KindTrap,
		Cause: cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not match the cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := MissingExport("temporal_planner_destroy")

	if !errors.Is(err, &Error{Phase: PhaseBind, Kind: KindMissingExport}) {
		t.Error("expected match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseBind, Kind: KindSignatureMismatch}) {
		t.Error("unexpected match across kinds")
	}
	if errors.Is(err, &Error{Phase: PhaseLoad, Kind: KindMissingExport}) {
		t.Error("unexpected match across phases")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("oom")
	err := New(PhaseEncode, KindAllocation).
		Symbol("alloc").
		Detail("failed to allocate %d bytes", 128).
		Cause(cause).
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindAllocation {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Symbol != "alloc" {
		t.Errorf("symbol = %q", err.Symbol)
	}
	if err.Detail != "failed to allocate 128 bytes" {
		t.Errorf("detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
}

func TestUnknownOutcome_CarriesValue(t *testing.T) {
	err := UnknownOutcome(-3)
	if err.Value != int32(-3) {
		t.Errorf("value = %v, want -3", err.Value)
	}
	if !strings.Contains(err.Error(), "-3") {
		t.Errorf("message %q should name the raw code", err.Error())
	}
}
