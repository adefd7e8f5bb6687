package ie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryTimeStamp_WireBytes(t *testing.T) {
	// spec.md scenario 1: IE 0x0060 0x0004 0x12 0x34 0x56 0x78
	raw := New(TypeRecoveryTimeStamp, []byte{0x12, 0x34, 0x56, 0x78})
	b, err := Marshal(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x60, 0x00, 0x04, 0x12, 0x34, 0x56, 0x78}, b)

	parsed, n, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)
	assert.Equal(t, TypeRecoveryTimeStamp, parsed.Type)
	assert.Equal(t, raw.Payload, parsed.Payload)
}

func TestParse_SkipsUnknownIE(t *testing.T) {
	unknown := New(Type(0x9999&^vendorSpecificBit), []byte{0xAA, 0xBB, 0xCC})
	known := NewCause(CauseRequestAccepted)
	var buf []byte
	ub, _ := Marshal(unknown)
	kb, _ := Marshal(known)
	buf = append(buf, ub...)
	buf = append(buf, kb...)

	all, err := ParseAll(buf)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, unknown.Type, all[0].Type)
	assert.Equal(t, TypeCause, all[1].Type)
	cause, err := all[1].Cause()
	require.NoError(t, err)
	assert.Equal(t, CauseRequestAccepted, cause)
}

func TestParse_VendorSpecificSkipsEnterpriseID(t *testing.T) {
	vendorType := Type(0x8001)
	v := &IE{Type: vendorType, EnterpriseID: 0xAABBCCDD, Payload: []byte{0x01, 0x02}}
	b, err := Marshal(v)
	require.NoError(t, err)
	// type(2) + length(2) + enterpriseID(4) + payload(2)
	assert.Len(t, b, 10)

	parsed, n, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)
	assert.Equal(t, uint32(0xAABBCCDD), parsed.EnterpriseID)
	assert.Equal(t, []byte{0x01, 0x02}, parsed.Payload)
}

func TestFind_FindAll(t *testing.T) {
	ies := []*IE{
		NewCause(CauseRequestAccepted),
		NewURRID(1),
		NewURRID(2),
	}
	assert.NotNil(t, Find(ies, TypeCause))
	assert.Nil(t, Find(ies, TypeQERID))
	assert.Len(t, FindAll(ies, TypeURRID), 2)
}

func TestGroupedIE_RecursesIntoChildren(t *testing.T) {
	pdr, err := NewCreatePDR(
		NewPDRID(1),
		NewPrecedence(100),
		mustPDI(t),
	)
	require.NoError(t, err)

	b, err := Marshal(pdr)
	require.NoError(t, err)

	parsed, _, err := Parse(b)
	require.NoError(t, err)
	require.Len(t, parsed.Children, 3)
	assert.Equal(t, TypePDRID, parsed.Children[0].Type)
	assert.Equal(t, TypePrecedence, parsed.Children[1].Type)
	assert.Equal(t, TypePDI, parsed.Children[2].Type)
	assert.Len(t, parsed.Children[2].Children, 1)
}

func mustPDI(t *testing.T) *IE {
	t.Helper()
	pdi, err := NewPDI(NewSourceInterface(InterfaceAccess))
	require.NoError(t, err)
	return pdi
}

func TestMarshalTo_RejectsOversizedBody(t *testing.T) {
	huge := New(TypeNetworkInstance, make([]byte, 0x10000))
	_, err := Marshal(huge)
	assert.Error(t, err)
}
