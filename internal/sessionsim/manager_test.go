package sessionsim

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfcp-core/internal/config"
	"pfcp-core/internal/pfcpconn"
	"pfcp-core/internal/stats"
	"pfcp-core/pkg/ie"
	"pfcp-core/pkg/message"
)

func buildEstablishmentCapture(t *testing.T) []byte {
	t.Helper()
	pdi, err := ie.NewPDI(ie.NewSourceInterface(ie.InterfaceAccess))
	require.NoError(t, err)
	pdr, err := ie.NewCreatePDR(ie.NewPDRID(1), ie.NewPrecedence(100), pdi)
	require.NoError(t, err)
	far, err := ie.NewCreateFAR(ie.NewFARID(1), ie.NewApplyAction(ie.ApplyActionForward), nil)
	require.NoError(t, err)

	req := message.NewSessionEstablishmentRequest(1,
		ie.NewNodeID("192.0.2.1", "", ""),
		ie.NewFSEID(0x99, net.ParseIP("192.0.2.1"), nil),
		pdr, far)

	b := make([]byte, req.MarshalLen())
	require.NoError(t, req.MarshalTo(b))
	return b
}

// upfHandler answers Session Establishment and Session Deletion Requests
// with Request Accepted, simulating a cooperative UPF; any other request
// gets no reply.
func upfHandler(ctx context.Context, req message.Message, from *net.UDPAddr) message.Message {
	switch r := req.(type) {
	case *message.SessionEstablishmentRequest:
		created, _ := ie.NewCreatedPDR(ie.NewPDRID(1), nil)
		return message.NewSessionEstablishmentResponse(0xBEEF, r.Sequence(),
			ie.NewNodeID("192.0.2.2", "", ""), ie.NewCause(ie.CauseRequestAccepted),
			ie.NewFSEID(0xBEEF, net.ParseIP("192.0.2.2"), nil), created)
	case *message.SessionDeletionRequest:
		return message.NewSessionDeletionResponse(r.SEID(), r.Sequence(), ie.NewCause(ie.CauseRequestAccepted))
	default:
		return nil
	}
}

func TestManager_ReplayEstablishAndDelete(t *testing.T) {
	upfAddr := "127.0.0.1:29905"
	smfAddr := "127.0.0.1:29906"

	upf, err := pfcpconn.Dial(upfAddr, smfAddr, pfcpconn.DefaultConfig, upfHandler)
	require.NoError(t, err)
	defer upf.Close()
	upf.ReceiveDispatch(context.Background())

	smf, err := pfcpconn.Dial(smfAddr, upfAddr, pfcpconn.DefaultConfig, nil)
	require.NoError(t, err)
	defer smf.Close()
	smf.ReceiveDispatch(context.Background())

	cfg := &config.Config{
		Local:       config.EndpointConfig{Address: "192.0.2.1"},
		Association: config.AssociationConfig{Enabled: false},
		Session: config.SessionConfig{
			SEIDStart:    1,
			SEIDStrategy: "sequential",
			UEIPPool:     "10.60.0.0/24",
			StripIPv6:    true,
		},
	}
	mgr, err := NewManager(cfg, smf, stats.NewCollector())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	capture := buildEstablishmentCapture(t)
	parsed, err := message.Parse(capture)
	require.NoError(t, err)
	req, ok := parsed.(*message.SessionEstablishmentRequest)
	require.True(t, ok)

	require.NoError(t, mgr.handleSessionEstablishment(ctx, req))
	assert.Equal(t, 1, mgr.ActiveSessionCount())

	mgr.mu.RLock()
	var remoteSEID uint64
	for _, s := range mgr.byLocalSEID {
		remoteSEID = s.RemoteSEID
	}
	mgr.mu.RUnlock()
	assert.Equal(t, uint64(0xBEEF), remoteSEID)

	// A captured deletion carries the capture's SEID, not the live one;
	// with no recorded mapping the manager matches it on the original CP
	// SEID (0x99) and rewrites it to the live remote SEID before sending.
	delReq := message.NewSessionDeletionRequest(0x99, 2)
	require.NoError(t, mgr.handleSessionDeletion(ctx, delReq))
	assert.Equal(t, 0, mgr.ActiveSessionCount())
}
