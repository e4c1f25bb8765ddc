// Package planner is the high-level API over the planner boundary.
//
// It owns the three contracts the boundary's raw integers cannot express
// in Go's type system:
//
//   - Handle lifecycle: Acquire/Release with single ownership, and With
//     for scoped acquisition where release is guaranteed on every exit
//     path. A released handle is consumed; using it again fails
//     deterministically instead of corrupting the engine.
//
//   - Outcome decoding: the engine's raw 0-5 codes become the closed
//     Outcome type at the boundary, once, so downstream logic handles
//     every member exhaustively. Out-of-range codes are protocol
//     violations that poison the handle.
//
//   - String ownership: solve inputs are borrowed by the engine for the
//     duration of one call and returned afterwards; the version string is
//     transferred to the host and released through the paired free-string
//     operation exactly once.
//
// Domain outcomes such as FileError, ParseError and NoSolutionFound are
// ordinary Result values the caller branches on, not Go errors: the
// engine ran and reported them. Go errors mean the boundary itself
// misbehaved or was misused.
package planner
