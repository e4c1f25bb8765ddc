package plannerruntime

import "context"

// Memory is the engine's linear memory as seen from the host.
// Offsets are engine-side addresses; the host never holds raw pointers.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// Allocator reserves scratch space inside engine memory for call inputs.
// Buffers obtained here are borrowed by the engine for the duration of a
// single boundary call and must be returned with Free by the host.
type Allocator interface {
	Alloc(ctx context.Context, size uint32) (uint32, error)
	Free(ctx context.Context, ptr uint32)
}
