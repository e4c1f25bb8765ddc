package wasmenc

import (
	"bytes"
	"testing"
)

func TestAppendU32(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
		{0xffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		if got := AppendU32(nil, tt.v); !bytes.Equal(got, tt.want) {
			t.Errorf("AppendU32(%d) = %x, want %x", tt.v, got, tt.want)
		}
	}
}

func TestAppendS32(t *testing.T) {
	tests := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{63, []byte{0x3f}},
		{64, []byte{0xc0, 0x00}},
		{-1, []byte{0x7f}},
		{-4, []byte{0x7c}},
		{-64, []byte{0x40}},
		{-65, []byte{0xbf, 0x7f}},
		{-123456, []byte{0xc0, 0xbb, 0x78}},
		{2048, []byte{0x80, 0x10}},
	}
	for _, tt := range tests {
		if got := AppendS32(nil, tt.v); !bytes.Equal(got, tt.want) {
			t.Errorf("AppendS32(%d) = %x, want %x", tt.v, got, tt.want)
		}
	}
}
