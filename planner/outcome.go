package planner

import "github.com/tempoplan/planner-runtime/errors"

// Outcome is the closed set of codes the engine reports for a solve or
// lifecycle operation. Downstream logic switches over every member; raw
// integers outside the set never become an Outcome.
type Outcome int32

const (
	Success Outcome = iota
	SolutionFound
	NoSolutionFound
	ParseError
	FileError
	InvalidHandle
)

var outcomeNames = [...]string{
	Success:         "success",
	SolutionFound:   "solution_found",
	NoSolutionFound: "no_solution_found",
	ParseError:      "parse_error",
	FileError:       "file_error",
	InvalidHandle:   "invalid_handle",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "invalid_outcome"
	}
	return outcomeNames[o]
}

// DecodeOutcome maps a raw boundary code to its named Outcome. Total and
// pure: codes 0-5 map one-to-one, everything else (including negatives)
// is a protocol violation indicating wrapper/engine version skew and is
// never coerced to a nearby valid value.
func DecodeOutcome(raw int32) (Outcome, error) {
	if raw < int32(Success) || raw > int32(InvalidHandle) {
		return 0, errors.UnknownOutcome(raw)
	}
	return Outcome(raw), nil
}

// Result is the decoded outcome of one solve call. PlanLength is the
// number of plan actions and is meaningful only when Outcome is
// SolutionFound; it is zero and not to be trusted otherwise.
type Result struct {
	Outcome    Outcome
	PlanLength int
}
