package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Primitives(t *testing.T) {
	buf := []byte{
		0xAB,
		0x12, 0x34,
		0x00, 0xFF, 0xEE,
		0xDE, 0xAD, 0xBE, 0xEF,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x01, 0x02,
	}
	r := NewReader(buf)

	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), u8)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u24, err := r.ReadUint24()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00FFEE), u24)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	b, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)

	assert.Equal(t, 0, r.Len())
}

func TestReader_Underflow(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadUint16()
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestReader_PeekDoesNotConsume(t *testing.T) {
	r := NewReader([]byte{0xAA, 0xBB})
	b, err := r.Peek(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xBB), b)
	assert.Equal(t, 2, r.Len())
}

func TestReader_SubBoundsChildLoop(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	sub, err := r.Sub(2)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, 2, r.Len())

	v, err := sub.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v)
	assert.Equal(t, 0, sub.Len())
}

func TestReader_SkipOutOfRange(t *testing.T) {
	r := NewReader([]byte{0x01})
	err := r.Skip(5)
	require.ErrorIs(t, err, ErrInvalidLength)
}
