package planner

import (
	"context"
	"encoding/binary"
	"strings"

	"github.com/tempoplan/planner-runtime/errors"
)

// outParamSize is the width of the engine's plan-length out-parameter.
const outParamSize = 4

// writeCString stages s in engine memory as null-terminated UTF-8 and
// returns the guest address plus a release func for the borrowed buffer.
// Text containing an embedded NUL cannot be represented and is rejected
// before anything crosses the boundary; it is never truncated.
func writeCString(ctx context.Context, b Boundary, s, field string) (uint32, func(), error) {
	if strings.IndexByte(s, 0) >= 0 {
		return 0, nil, errors.EmbeddedTerminator(field)
	}

	size := uint32(len(s)) + 1
	ptr, err := b.Alloc(ctx, size)
	if err != nil {
		return 0, nil, err
	}

	buf := make([]byte, size)
	copy(buf, s)
	// buf[len(s)] is already the terminator

	if err := b.Write(ptr, buf); err != nil {
		b.Free(ctx, ptr)
		return 0, nil, err
	}

	return ptr, func() { b.Free(ctx, ptr) }, nil
}

// writeOutParam stages a zero-initialized i32 slot the engine populates
// with the plan length.
func writeOutParam(ctx context.Context, b Boundary) (uint32, func(), error) {
	ptr, err := b.Alloc(ctx, outParamSize)
	if err != nil {
		return 0, nil, err
	}
	if err := b.Write(ptr, make([]byte, outParamSize)); err != nil {
		b.Free(ctx, ptr)
		return 0, nil, err
	}
	return ptr, func() { b.Free(ctx, ptr) }, nil
}

// readOutParam reads back the populated i32 out-parameter.
func readOutParam(b Boundary, ptr uint32) (int32, error) {
	raw, err := b.Read(ptr, outParamSize)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(raw)), nil
}

// readCString reads the null-terminated string at ptr from engine
// memory, scanning in chunks so short strings stay cheap.
func readCString(b Boundary, ptr uint32) ([]byte, error) {
	const chunk = 64

	var out []byte
	for offset := ptr; ; {
		size := uint32(chunk)
		buf, err := b.Read(offset, size)
		if err != nil {
			// Near the end of memory a full chunk may be out of range;
			// retry byte-wise until the terminator or a hard failure.
			size = 1
			buf, err = b.Read(offset, size)
			if err != nil {
				return nil, err
			}
		}
		for i, c := range buf {
			if c == 0 {
				return append(out, buf[:i]...), nil
			}
		}
		out = append(out, buf...)
		offset += size
	}
}
