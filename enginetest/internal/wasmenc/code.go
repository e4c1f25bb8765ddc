package wasmenc

// Code builds a function body instruction by instruction. Each method
// appends one instruction and returns the extended body, so bodies read
// top to bottom like the instruction stream they produce.
type Code []byte

func (c Code) LocalGet(i uint32) Code  { return Code(AppendU32(append(c, 0x20), i)) }
func (c Code) LocalSet(i uint32) Code  { return Code(AppendU32(append(c, 0x21), i)) }
func (c Code) GlobalGet(i uint32) Code { return Code(AppendU32(append(c, 0x23), i)) }
func (c Code) GlobalSet(i uint32) Code { return Code(AppendU32(append(c, 0x24), i)) }

func (c Code) I32Const(v int32) Code { return Code(AppendS32(append(c, 0x41), v)) }

func (c Code) I32Eqz() Code { return append(c, 0x45) }
func (c Code) I32Eq() Code  { return append(c, 0x46) }
func (c Code) I32Add() Code { return append(c, 0x6a) }
func (c Code) I32Sub() Code { return append(c, 0x6b) }
func (c Code) I32And() Code { return append(c, 0x71) }

// I32Load8U loads one byte with static offset; byte loads use align 0.
func (c Code) I32Load8U(offset uint32) Code {
	return Code(AppendU32(AppendU32(append(c, 0x2d), 0), offset))
}

// I32Store stores an i32 with static offset and natural alignment.
func (c Code) I32Store(offset uint32) Code {
	return Code(AppendU32(AppendU32(append(c, 0x36), 2), offset))
}

// If opens a conditional with an empty block type.
func (c Code) If() Code { return append(c, 0x04, 0x40) }

func (c Code) Else() Code   { return append(c, 0x05) }
func (c Code) End() Code    { return append(c, 0x0b) }
func (c Code) Return() Code { return append(c, 0x0f) }
func (c Code) Drop() Code   { return append(c, 0x1a) }
