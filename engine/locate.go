package engine

import (
	"os"

	"github.com/tempoplan/planner-runtime/errors"
)

// artifactCandidates are the conventional build locations for the planner
// artifact, checked in order by Locate.
var artifactCandidates = []string{
	"./temporal_planner.wasm",
	"./target/wasm32-wasip1/release/temporal_planner.wasm",
	"./target/wasm32-wasip1/debug/temporal_planner.wasm",
	"/usr/local/lib/temporal_planner.wasm",
}

// Locate searches the conventional locations for a planner artifact and
// returns the first path that exists. It is a convenience for tools; the
// core API always takes an explicit path or byte slice.
func Locate() (string, error) {
	for _, path := range artifactCandidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", errors.BadArtifact("no planner artifact found in conventional locations", nil)
}
