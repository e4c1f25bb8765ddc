package wasmenc

// Minimal WebAssembly module emitter: i32-only function types, one
// memory, mutable i32 globals, active data segments. Enough to express
// small test modules without carrying a full encoder.

// ValI32 is the only value type this emitter knows.
const ValI32 byte = 0x7f

// Export kinds.
const (
	KindFunc   byte = 0x00
	KindMemory byte = 0x02
	KindGlobal byte = 0x03
)

// FuncType is an i32^Params -> i32^Results function type.
type FuncType struct {
	Params  int
	Results int
}

// Func is a function body referencing a type index. LocalI32 declares
// one group of i32 locals after the parameters.
type Func struct {
	Type     uint32
	LocalI32 uint32
	Body     Code
}

// Global is a mutable i32 global with a constant initializer.
type Global struct {
	Init int32
}

// Export names a function, memory, or global.
type Export struct {
	Name  string
	Kind  byte
	Index uint32
}

// Segment is an active data segment in memory 0.
type Segment struct {
	Offset uint32
	Bytes  []byte
}

// Module is the set of sections the emitter encodes.
type Module struct {
	Types    []FuncType
	Funcs    []Func
	MemPages uint32
	Globals  []Global
	Exports  []Export
	Data     []Segment
}

func section(id byte, content []byte) []byte {
	out := append([]byte{id}, AppendU32(nil, uint32(len(content)))...)
	return append(out, content...)
}

// Encode renders the module in binary format, sections in required order.
func (m *Module) Encode() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	// Type section
	c := AppendU32(nil, uint32(len(m.Types)))
	for _, t := range m.Types {
		c = append(c, 0x60)
		c = AppendU32(c, uint32(t.Params))
		for i := 0; i < t.Params; i++ {
			c = append(c, ValI32)
		}
		c = AppendU32(c, uint32(t.Results))
		for i := 0; i < t.Results; i++ {
			c = append(c, ValI32)
		}
	}
	out = append(out, section(1, c)...)

	// Function section
	c = AppendU32(nil, uint32(len(m.Funcs)))
	for _, f := range m.Funcs {
		c = AppendU32(c, f.Type)
	}
	out = append(out, section(3, c)...)

	// Memory section
	if m.MemPages > 0 {
		c = AppendU32(nil, 1)
		c = append(c, 0x00) // limits: min only
		c = AppendU32(c, m.MemPages)
		out = append(out, section(5, c)...)
	}

	// Global section
	if len(m.Globals) > 0 {
		c = AppendU32(nil, uint32(len(m.Globals)))
		for _, g := range m.Globals {
			c = append(c, ValI32, 0x01) // mutable i32
			c = AppendS32(append(c, 0x41), g.Init)
			c = append(c, 0x0b)
		}
		out = append(out, section(6, c)...)
	}

	// Export section
	c = AppendU32(nil, uint32(len(m.Exports)))
	for _, e := range m.Exports {
		c = AppendU32(c, uint32(len(e.Name)))
		c = append(c, e.Name...)
		c = append(c, e.Kind)
		c = AppendU32(c, e.Index)
	}
	out = append(out, section(7, c)...)

	// Code section
	c = AppendU32(nil, uint32(len(m.Funcs)))
	for _, f := range m.Funcs {
		var entry []byte
		if f.LocalI32 > 0 {
			entry = AppendU32(entry, 1) // one local group
			entry = AppendU32(entry, f.LocalI32)
			entry = append(entry, ValI32)
		} else {
			entry = AppendU32(entry, 0)
		}
		entry = append(entry, f.Body...)
		c = AppendU32(c, uint32(len(entry)))
		c = append(c, entry...)
	}
	out = append(out, section(10, c)...)

	// Data section
	if len(m.Data) > 0 {
		c = AppendU32(nil, uint32(len(m.Data)))
		for _, d := range m.Data {
			c = AppendU32(c, 0) // active, memory 0
			c = AppendS32(append(c, 0x41), int32(d.Offset))
			c = append(c, 0x0b)
			c = AppendU32(c, uint32(len(d.Bytes)))
			c = append(c, d.Bytes...)
		}
		out = append(out, section(11, c)...)
	}

	return out
}
