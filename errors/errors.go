package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where along the boundary the error occurred
type Phase string

const (
	PhaseLoad    Phase = "load"    // artifact loading and compilation
	PhaseBind    Phase = "bind"    // export resolution and signature checks
	PhaseCreate  Phase = "create"  // engine instance creation
	PhaseEncode  Phase = "encode"  // host text to boundary representation
	PhaseCall    Phase = "call"    // boundary invocation
	PhaseDecode  Phase = "decode"  // raw outcome interpretation
	PhaseVersion Phase = "version" // version query and string release
)

// Kind categorizes the error
type Kind string

const (
	KindBadArtifact        Kind = "bad_artifact"
	KindMissingExport      Kind = "missing_export"
	KindSignatureMismatch  Kind = "signature_mismatch"
	KindNullHandle         Kind = "null_handle"
	KindHandleReleased     Kind = "handle_released"
	KindHandlePoisoned     Kind = "handle_poisoned"
	KindEmbeddedTerminator Kind = "embedded_terminator"
	KindInvalidUTF8        Kind = "invalid_utf8"
	KindUnknownOutcome     Kind = "unknown_outcome"
	KindAllocation         Kind = "allocation"
	KindTrap               Kind = "trap"
)

// Error is the structured error type used throughout the wrapper.
// Phase distinguishes "could not even talk to the engine" failures
// (load, bind, create) from per-call failures that leave the engine
// instance usable (encode, call, decode).
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Symbol string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(" at ")
		b.WriteString(e.Symbol)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Symbol sets the boundary symbol the error relates to
func (b *Builder) Symbol(sym string) *Builder {
	b.err.Symbol = sym
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// BadArtifact creates an artifact loading error
func BadArtifact(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindBadArtifact,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingExport creates a binding error for an absent boundary symbol
func MissingExport(symbol string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindMissingExport,
		Symbol: symbol,
		Detail: "required export not found in artifact",
	}
}

// SignatureMismatch creates a binding error for an export whose type
// does not match the boundary contract
func SignatureMismatch(symbol, got, want string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindSignatureMismatch,
		Symbol: symbol,
		Detail: fmt.Sprintf("export has signature %s, boundary requires %s", got, want),
	}
}

// NullHandle creates a creation error for a null engine handle
func NullHandle(symbol string) *Error {
	return &Error{
		Phase:  PhaseCreate,
		Kind:   KindNullHandle,
		Symbol: symbol,
		Detail: "engine returned a null instance handle",
	}
}

// HandleReleased creates an error for an operation on a released handle
func HandleReleased(op string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindHandleReleased,
		Detail: fmt.Sprintf("%s on a released planner handle", op),
	}
}

// HandlePoisoned creates an error for an operation on a handle that
// previously observed a protocol violation
func HandlePoisoned(op string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindHandlePoisoned,
		Detail: fmt.Sprintf("%s on a handle poisoned by an earlier protocol violation", op),
	}
}

// EmbeddedTerminator creates an encoding error for input text that
// cannot be represented as a null-terminated string
func EmbeddedTerminator(field string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEmbeddedTerminator,
		Detail: fmt.Sprintf("%s contains an embedded NUL byte", field),
	}
}

// InvalidUTF8 creates an error for engine bytes that are not valid UTF-8
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// UnknownOutcome creates a protocol violation error for a raw outcome
// code outside the closed set. The value is never coerced to a valid
// outcome; it indicates wrapper/engine version skew.
func UnknownOutcome(raw int32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownOutcome,
		Detail: fmt.Sprintf("outcome code %d outside closed set 0-5", raw),
		Value:  raw,
	}
}

// AllocationFailed creates an error for a failed engine memory allocation
func AllocationFailed(size uint32, cause error) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes in engine memory", size),
		Cause:  cause,
	}
}

// Trap creates a call error for a boundary invocation that trapped
func Trap(symbol string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindTrap,
		Symbol: symbol,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
