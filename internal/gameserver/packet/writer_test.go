package packet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  []byte
	}{
		{"byte", func(w *Writer) { _ = w.WriteByte(0x42) }, []byte{0x42}},
		{"bool true", func(w *Writer) { w.WriteBool(true) }, []byte{0x01}},
		{"bool false", func(w *Writer) { w.WriteBool(false) }, []byte{0x00}},
		{"short", func(w *Writer) { w.WriteShort(0x1234) }, []byte{0x34, 0x12}},
		{"negative short", func(w *Writer) { w.WriteShort(-1) }, []byte{0xFF, 0xFF}},
		{"int", func(w *Writer) { w.WriteInt(0x12345678) }, []byte{0x78, 0x56, 0x34, 0x12}},
		{"uint", func(w *Writer) { w.WriteUInt(0xDEADBEEF) }, []byte{0xEF, 0xBE, 0xAD, 0xDE}},
		{"long", func(w *Writer) { w.WriteLong(0x0102030405060708) }, []byte{8, 7, 6, 5, 4, 3, 2, 1}},
		{"float", func(w *Writer) { w.WriteFloat(1.0) }, []byte{0x00, 0x00, 0x80, 0x3F}},
		{"bytes", func(w *Writer) { w.WriteBytes([]byte{1, 2, 3}) }, []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(16)
			tt.write(w)
			assert.Equal(t, tt.want, w.Bytes())
			assert.Equal(t, len(tt.want), w.Len())
		})
	}
}

func TestWriter_Double(t *testing.T) {
	w := NewWriter(8)
	w.WriteDouble(math.Pi)

	r := NewReader(w.Bytes())
	got, err := r.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(math.Pi), uint64(got))
}

func TestWriter_Reset(t *testing.T) {
	w := NewWriter(8)
	w.WriteInt(7)
	w.Reset()

	assert.Zero(t, w.Len())
	w.WriteShort(1)
	assert.Equal(t, []byte{1, 0}, w.Bytes())
}

func TestWriter_Pool(t *testing.T) {
	w := Get()
	w.WriteInt(100)
	w.Put()

	w2 := Get()
	defer w2.Put()
	assert.Zero(t, w2.Len(), "pooled writer must come back reset")
}
