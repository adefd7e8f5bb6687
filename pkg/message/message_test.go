package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfcp-core/pkg/ie"
)

func TestHeartbeatRequest_WireBytes(t *testing.T) {
	// Header 0x20 0x01 0x00 0x0C 0x00 0x00 0x2A 0x00 (message_length 12 =
	// 16-byte datagram minus the first 4 octets) followed by Recovery Time
	// Stamp IE 0x00 0x60 0x00 0x04 0x12 0x34 0x56 0x78.
	recovery := ie.New(ie.TypeRecoveryTimeStamp, []byte{0x12, 0x34, 0x56, 0x78})
	msg := NewHeartbeatRequest(42, recovery)

	b := make([]byte, msg.MarshalLen())
	require.NoError(t, msg.MarshalTo(b))

	want := []byte{0x20, 0x01, 0x00, 0x0C, 0x00, 0x00, 0x2A, 0x00}
	want = append(want, 0x00, 0x60, 0x00, 0x04, 0x12, 0x34, 0x56, 0x78)
	assert.Equal(t, want, b)

	parsed, err := Parse(b)
	require.NoError(t, err)
	hb, ok := parsed.(*HeartbeatRequest)
	require.True(t, ok)
	assert.Equal(t, uint32(42), hb.Sequence())
	assert.Equal(t, MsgTypeHeartbeatRequest, hb.MessageType())
	require.NotNil(t, hb.RecoveryTimeStamp)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, hb.RecoveryTimeStamp.Payload)
	require.NoError(t, hb.Validate())
}

func TestHeartbeatRequest_MissingMandatoryIE(t *testing.T) {
	msg := NewHeartbeatRequest(1, nil)
	assert.Error(t, msg.Validate())
}

func TestParse_UnknownMessageType(t *testing.T) {
	recovery := ie.New(ie.TypeRecoveryTimeStamp, []byte{0x12, 0x34, 0x56, 0x78})
	msg := NewHeartbeatRequest(1, recovery)
	b := make([]byte, msg.MarshalLen())
	require.NoError(t, msg.MarshalTo(b))
	b[1] = 200 // mutate message type to something unregistered

	_, err := Parse(b)
	assert.Error(t, err)
}

func TestParse_UnsupportedVersionEchoesSequence(t *testing.T) {
	recovery := ie.New(ie.TypeRecoveryTimeStamp, []byte{0x12, 0x34, 0x56, 0x78})
	msg := NewHeartbeatRequest(99, recovery)
	b := make([]byte, msg.MarshalLen())
	require.NoError(t, msg.MarshalTo(b))
	b[0] = (2 << 5) | (b[0] & 0x03) // bump version to 2, keep flag bits

	_, err := Parse(b)
	require.Error(t, err)
	var verErr *UnsupportedVersionError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, uint32(99), verErr.Sequence)
}

func TestSessionMessage_SetSEIDAndSequence(t *testing.T) {
	req := NewSessionDeletionRequest(0x1122334455667788, 7)
	assert.True(t, req.HasSEID())
	assert.Equal(t, uint64(0x1122334455667788), req.SEID())

	req.SetSEID(0xAABBCCDD)
	req.SetSequenceNumber(0xFFFFFFFF) // must mask to 24 bits
	assert.Equal(t, uint64(0xAABBCCDD), req.SEID())
	assert.Equal(t, uint32(0x00FFFFFF), req.Sequence())
}

func TestMessageTypeName_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, "HeartbeatRequest", MessageTypeName(MsgTypeHeartbeatRequest))
	assert.Equal(t, "Unknown(250)", MessageTypeName(250))
}

func TestIsRequest_IsSessionMessage(t *testing.T) {
	assert.True(t, IsRequest(MsgTypeSessionEstablishmentRequest))
	assert.False(t, IsRequest(MsgTypeSessionEstablishmentResponse))
	assert.True(t, IsSessionMessage(MsgTypeSessionEstablishmentRequest))
	assert.False(t, IsSessionMessage(MsgTypeHeartbeatRequest))
}
