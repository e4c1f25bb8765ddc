// Package errors provides structured error types for the planner boundary.
//
// Every failure carries a Phase (where along the boundary it happened) and
// a Kind (what went wrong), so callers can distinguish setup failures that
// abort the whole session (load, bind, create) from per-call failures that
// leave the engine instance valid for reuse (encode, call), and from
// protocol violations that poison a handle (decode).
//
// Matching uses errors.Is with a prototype:
//
//	if errors.Is(err, &Error{Phase: PhaseBind, Kind: KindMissingExport}) {
//	    // artifact does not implement the boundary contract
//	}
package errors
