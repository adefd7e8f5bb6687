package pfcpconn

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfcp-core/pkg/ie"
	"pfcp-core/pkg/message"
)

func TestConn_SendRequestRoundTrip(t *testing.T) {
	serverAddr := "127.0.0.1:29805"
	clientAddr := "127.0.0.1:29806"

	handler := func(ctx context.Context, req message.Message, from *net.UDPAddr) message.Message {
		return message.NewHeartbeatResponse(req.Sequence(), ie.NewRecoveryTimeStamp(time.Now()))
	}
	server, err := Dial(serverAddr, clientAddr, DefaultConfig, handler)
	require.NoError(t, err)
	defer server.Close()
	server.ReceiveDispatch(context.Background())

	client, err := Dial(clientAddr, serverAddr, DefaultConfig, nil)
	require.NoError(t, err)
	defer client.Close()
	client.ReceiveDispatch(context.Background())

	req := message.NewHeartbeatRequest(0, ie.NewRecoveryTimeStamp(time.Now()))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := client.SendRequest(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, message.MsgTypeHeartbeatResponse, resp.MessageType())
}

func TestConn_SendRequestTimesOutWithoutResponder(t *testing.T) {
	serverAddr := "127.0.0.1:29807"
	clientAddr := "127.0.0.1:29808"

	// nobody is listening on serverAddr, so every attempt goes unanswered.
	client, err := Dial(clientAddr, serverAddr, Config{T1: 20 * time.Millisecond, N1: 1}, nil)
	require.NoError(t, err)
	defer client.Close()
	client.ReceiveDispatch(context.Background())

	req := message.NewHeartbeatRequest(0, ie.NewRecoveryTimeStamp(time.Now()))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = client.SendRequest(ctx, req)
	require.Error(t, err)
}

func TestConn_UnsupportedVersionGetsVersionNotSupportedReply(t *testing.T) {
	serverAddr := "127.0.0.1:29809"
	clientAddr := "127.0.0.1:29810"

	server, err := Dial(serverAddr, clientAddr, DefaultConfig, nil)
	require.NoError(t, err)
	defer server.Close()
	server.ReceiveDispatch(context.Background())

	client, err := Dial(clientAddr, serverAddr, DefaultConfig, nil)
	require.NoError(t, err)
	defer client.Close()

	bogus := []byte{0x40, 1, 0x00, 0x04, 0x00, 0x00, 0x2a, 0x00}
	require.NoError(t, client.socket.Send(bogus))

	buf := make([]byte, 1500)
	client.socket.conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := client.socket.ReadFrom(buf)
	require.NoError(t, err)
	resp, err := message.Parse(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, message.MsgTypeVersionNotSupportedResponse, resp.MessageType())
	assert.Equal(t, uint32(0x2a), resp.Sequence())
}
