package planner

import (
	"context"
	"unicode/utf8"

	"github.com/tempoplan/planner-runtime/errors"
)

// VersionUnknown is reported when the engine returns no version string.
const VersionUnknown = "Unknown"

// transferredString is an engine-allocated string whose release
// obligation has passed to the host. release is one-shot: the paired
// free-string call runs at most once, and never for a null pointer.
type transferredString struct {
	boundary Boundary
	ptr      uint32
	released bool
}

func (t *transferredString) release(ctx context.Context) error {
	if t.released || t.ptr == 0 {
		return nil
	}
	t.released = true
	return t.boundary.FreeString(ctx, t.ptr)
}

// Version queries the engine version. The boundary transfers ownership
// of the returned string to the host, which releases it exactly once
// after decoding, even when decoding fails. A null pointer yields the
// VersionUnknown sentinel and no release call.
func Version(ctx context.Context, b Boundary) (string, error) {
	ptr, err := b.GetVersion(ctx)
	if err != nil {
		return "", err
	}
	if ptr == 0 {
		return VersionUnknown, nil
	}

	ts := &transferredString{boundary: b, ptr: ptr}
	raw, err := readCString(b, ptr)
	if relErr := ts.release(ctx); err == nil {
		err = relErr
	}
	if err != nil {
		return "", err
	}

	if !utf8.Valid(raw) {
		return "", errors.InvalidUTF8(errors.PhaseVersion, raw)
	}
	return string(raw), nil
}
