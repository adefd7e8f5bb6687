package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Primitives(t *testing.T) {
	w := NewWriter(make([]byte, 32))
	require.NoError(t, w.WriteUint8(0xAB))
	require.NoError(t, w.WriteUint16(0x1234))
	require.NoError(t, w.WriteUint24(0x00FFEE))
	require.NoError(t, w.WriteUint32(0xDEADBEEF))
	require.NoError(t, w.WriteUint64(0x0102030405060708))
	require.NoError(t, w.WriteBytes([]byte{0x01, 0x02}))

	want := []byte{
		0xAB,
		0x12, 0x34,
		0x00, 0xFF, 0xEE,
		0xDE, 0xAD, 0xBE, 0xEF,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x01, 0x02,
	}
	assert.Equal(t, want, w.Written())
}

func TestWriter_BufferTooSmall(t *testing.T) {
	w := NewWriter(make([]byte, 1))
	err := w.WriteUint16(1)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestWriter_SkipAndBackPatch(t *testing.T) {
	w := NewWriter(make([]byte, 8))
	pos, err := w.Skip(2)
	require.NoError(t, err)
	require.NoError(t, w.WriteBytes([]byte{1, 2, 3, 4}))
	require.NoError(t, w.BackPatchUint16(pos, uint16(4)))

	want := []byte{0x00, 0x04, 1, 2, 3, 4}
	assert.Equal(t, want, w.Written())
}

func TestWriter_BackPatchOutOfRange(t *testing.T) {
	w := NewWriter(make([]byte, 4))
	err := w.BackPatchUint16(10, 1)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}
