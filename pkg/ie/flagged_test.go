package ie

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSEID_RoundTrip(t *testing.T) {
	seid := uint64(0x123456789ABCDEF0)
	v4 := net.ParseIP("10.0.0.1")
	orig := NewFSEID(seid, v4, nil)

	b, err := Marshal(orig)
	require.NoError(t, err)
	parsed, _, err := Parse(b)
	require.NoError(t, err)

	got, err := parsed.FSEID()
	require.NoError(t, err)
	assert.Equal(t, seid, got.SEID)
	assert.True(t, v4.Equal(got.IPv4Address))
	assert.Nil(t, got.IPv6Address)
}

func TestFTEID_Concrete_RoundTrip(t *testing.T) {
	v4 := net.ParseIP("10.0.0.1")
	orig := NewFTEID(0x12345678, v4, nil)

	b, err := Marshal(orig)
	require.NoError(t, err)
	parsed, _, err := Parse(b)
	require.NoError(t, err)

	got, err := parsed.FTEID()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), got.TEID)
	assert.True(t, v4.Equal(got.IPv4Address))
	assert.False(t, got.Choose)
	assert.False(t, got.HasChooseID)
}

func TestFTEID_Choose_WireBytes(t *testing.T) {
	// spec.md scenario 5: flags byte 0x02, TEID zero, no trailing address.
	orig := NewFTEIDChoose()
	b, err := Marshal(orig)
	require.NoError(t, err)

	body := b[4:]
	assert.Equal(t, uint8(0x02), body[0])
	assert.Equal(t, []byte{0, 0, 0, 0}, body[1:5])
	assert.Len(t, body, 5)

	parsed, _, err := Parse(b)
	require.NoError(t, err)
	got, err := parsed.FTEID()
	require.NoError(t, err)
	assert.True(t, got.Choose)
	assert.False(t, got.HasChooseID)
	assert.Nil(t, got.IPv4Address)
	assert.Nil(t, got.IPv6Address)
}

func TestFTEID_ChooseWithChooseID(t *testing.T) {
	body := []byte{fteidFlagCH | fteidFlagCHID, 0, 0, 0, 0, 0x07}
	parsed := New(TypeFTEID, body)
	got, err := parsed.FTEID()
	require.NoError(t, err)
	assert.True(t, got.Choose)
	assert.True(t, got.HasChooseID)
	assert.Equal(t, uint8(0x07), got.ChooseID)
}

func TestFTEID_FlagMismatchIsInvalidLength(t *testing.T) {
	// V4 flag set but no trailing IPv4 bytes.
	body := []byte{fteidFlagV4, 0, 0, 0, 0}
	parsed := New(TypeFTEID, body)
	_, err := parsed.FTEID()
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestUEIPAddress_BothFamilies(t *testing.T) {
	v4 := net.ParseIP("192.168.1.1")
	v6 := net.ParseIP("2001:db8::1")
	orig := NewUEIPAddress(v4, v6)

	b, err := Marshal(orig)
	require.NoError(t, err)
	parsed, _, err := Parse(b)
	require.NoError(t, err)

	got, err := parsed.UEIPAddress()
	require.NoError(t, err)
	assert.True(t, v4.Equal(got.IPv4Address))
	assert.True(t, v6.Equal(got.IPv6Address))
}

func TestVolumeThreshold_PartialFlags(t *testing.T) {
	total := uint64(1000)
	orig := NewVolumeThreshold(Volume{Total: &total})

	b, err := Marshal(orig)
	require.NoError(t, err)
	parsed, _, err := Parse(b)
	require.NoError(t, err)

	got, err := parsed.VolumeThreshold()
	require.NoError(t, err)
	require.NotNil(t, got.Total)
	assert.Equal(t, total, *got.Total)
	assert.Nil(t, got.Uplink)
	assert.Nil(t, got.Downlink)
}

func TestVolumeQuota_AllFlags(t *testing.T) {
	total, ul, dl := uint64(100), uint64(60), uint64(40)
	orig := NewVolumeQuota(Volume{Total: &total, Uplink: &ul, Downlink: &dl})

	b, err := Marshal(orig)
	require.NoError(t, err)
	parsed, _, err := Parse(b)
	require.NoError(t, err)

	got, err := parsed.VolumeQuota()
	require.NoError(t, err)
	assert.Equal(t, total, *got.Total)
	assert.Equal(t, ul, *got.Uplink)
	assert.Equal(t, dl, *got.Downlink)
}
