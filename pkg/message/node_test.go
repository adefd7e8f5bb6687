package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfcp-core/pkg/ie"
)

func TestAssociationSetupRequest_RoundTrip(t *testing.T) {
	nodeID := ie.NewNodeID("10.0.0.1", "", "")
	recovery := ie.NewRecoveryTimeStamp(mustTime())
	features := ie.NewUPFunctionFeatures(0x1234)

	req := NewAssociationSetupRequest(1, nodeID, recovery, features)
	require.NoError(t, req.Validate())

	b := make([]byte, req.MarshalLen())
	require.NoError(t, req.MarshalTo(b))

	parsed, err := Parse(b)
	require.NoError(t, err)
	got, ok := parsed.(*AssociationSetupRequest)
	require.True(t, ok)
	require.NoError(t, got.Validate())
	require.NotNil(t, got.UPFunctionFeatures)
	id, err := got.NodeID.NodeID()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", id.IPv4.String())
}

func TestAssociationSetupRequest_MissingNodeIDFailsValidate(t *testing.T) {
	req := NewAssociationSetupRequest(1, nil, ie.NewRecoveryTimeStamp(mustTime()))
	assert.Error(t, req.Validate())
}

func TestAssociationSetupResponse_RoundTrip(t *testing.T) {
	resp := NewAssociationSetupResponse(2, ie.NewNodeID("10.0.0.2", "", ""), ie.NewCause(ie.CauseRequestAccepted), ie.NewRecoveryTimeStamp(mustTime()))
	b := make([]byte, resp.MarshalLen())
	require.NoError(t, resp.MarshalTo(b))

	parsed, err := Parse(b)
	require.NoError(t, err)
	got, ok := parsed.(*AssociationSetupResponse)
	require.True(t, ok)
	cause, err := got.Cause.Cause()
	require.NoError(t, err)
	assert.True(t, cause.Accepted())
}

func TestVersionNotSupportedResponse_NoBody(t *testing.T) {
	resp := NewVersionNotSupportedResponse(5)
	assert.Equal(t, 8, resp.MarshalLen())
	b := make([]byte, resp.MarshalLen())
	require.NoError(t, resp.MarshalTo(b))

	parsed, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, MsgTypeVersionNotSupportedResponse, parsed.MessageType())
}

func TestNodeReportRequest_MissingMandatoryFields(t *testing.T) {
	req := NewNodeReportRequest(1, ie.NewNodeID("10.0.0.1", "", ""), nil)
	assert.Error(t, req.Validate())
}

func TestSessionSetDeletionRequest_RoundTrip(t *testing.T) {
	req := NewSessionSetDeletionRequest(9, ie.NewNodeID("10.0.0.9", "", ""))
	b := make([]byte, req.MarshalLen())
	require.NoError(t, req.MarshalTo(b))

	parsed, err := Parse(b)
	require.NoError(t, err)
	got, ok := parsed.(*SessionSetDeletionRequest)
	require.True(t, ok)
	require.NoError(t, got.Validate())
}

func mustTime() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
