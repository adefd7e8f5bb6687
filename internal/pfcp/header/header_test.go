package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfcp-core/internal/wire"
)

func TestEncodeDecode_NoSEID_RoundTrip(t *testing.T) {
	h := Header{
		Version:        1,
		MessageType:    1, // Heartbeat Request
		SequenceNumber: 42,
	}
	buf := make([]byte, 64)
	w := wire.NewWriter(buf)
	lengthPos, err := Encode(w, h)
	require.NoError(t, err)
	require.NoError(t, w.BackPatchUint16(lengthPos, uint16(w.Len()-4)))

	written := w.Written()
	assert.Equal(t, uint8(0x20), written[0])
	assert.Equal(t, uint8(0x01), written[1])
	assert.Equal(t, []byte{0x00, 0x04}, written[2:4]) // length before any IE body
	assert.Equal(t, []byte{0x00, 0x00, 0x2A}, written[4:7])
	assert.Equal(t, uint8(0x00), written[7])

	got, err := Decode(wire.NewReader(written))
	require.NoError(t, err)
	assert.Equal(t, h.MessageType, got.MessageType)
	assert.Equal(t, h.SequenceNumber, got.SequenceNumber)
	assert.False(t, got.HasSEID)
}

func TestEncodeDecode_WithSEID_RoundTrip(t *testing.T) {
	h := Header{
		Version:        1,
		HasSEID:        true,
		MessageType:    50, // Session Establishment Request
		SEID:           0x1234567890ABCDEF,
		SequenceNumber: 200,
	}
	buf := make([]byte, 64)
	w := wire.NewWriter(buf)
	_, err := Encode(w, h)
	require.NoError(t, err)
	assert.Equal(t, 16, w.Len())

	written := w.Written()
	assert.Equal(t, uint8(0x21), written[0])

	got, err := Decode(wire.NewReader(written))
	require.NoError(t, err)
	assert.True(t, got.HasSEID)
	assert.Equal(t, h.SEID, got.SEID)
	assert.Equal(t, h.SequenceNumber, got.SequenceNumber)
}

func TestDecode_RejectsUnsupportedVersion(t *testing.T) {
	buf := []byte{0x40, 0x01, 0x00, 0x04, 0x00, 0x00, 0x2A, 0x00}
	_, err := Decode(wire.NewReader(buf))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestSetSequenceNumber_Masks24Bits(t *testing.T) {
	var h Header
	h.SetSequenceNumber(0xFFFFFFFF)
	assert.Equal(t, uint32(0x00FFFFFF), h.SequenceNumber)
}

func TestSetSEID(t *testing.T) {
	var h Header
	h.SetSEID(0x42)
	assert.True(t, h.HasSEID)
	assert.Equal(t, uint64(0x42), h.SEID)
}
