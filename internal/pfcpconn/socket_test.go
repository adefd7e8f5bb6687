package pfcpconn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSocket_SendAndReadFromLoopback(t *testing.T) {
	a, err := NewSocket("127.0.0.1:0", "127.0.0.1:0")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewSocket(a.RemoteAddr().String(), a.LocalAddr().String())
	require.NoError(t, err)
	defer b.Close()

	// redial a against b's actual bound port, since a's remote above was a
	// throwaway ephemeral address.
	a.Close()
	a, err = NewSocket("127.0.0.1:0", b.LocalAddr().String())
	require.NoError(t, err)
	defer a.Close()

	payload := []byte("heartbeat")
	require.NoError(t, a.Send(payload))

	buf := make([]byte, 1500)
	n, from, err := b.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, payload, buf[:n])
	require.NotNil(t, from)
}

func TestSocket_InvalidAddressFails(t *testing.T) {
	_, err := NewSocket("not-an-address", "127.0.0.1:0")
	require.Error(t, err)
}
