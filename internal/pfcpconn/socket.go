package pfcpconn

import (
	"fmt"
	"net"

	"pfcp-core/internal/pfcperr"
)

// Socket is a bound UDP endpoint dedicated to one PFCP peer, combining
// the teacher's UDPClient (send) and Receiver (listen) into a single
// connection-scoped transport.
type Socket struct {
	conn   *net.UDPConn
	remote *net.UDPAddr
}

// NewSocket binds to localAddr and targets remoteAddr for every Send.
func NewSocket(localAddr, remoteAddr string) (*Socket, error) {
	local, err := net.ResolveUDPAddr("udp", localAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve local address %s: %v", pfcperr.ErrTransport, localAddr, err)
	}
	remote, err := net.ResolveUDPAddr("udp", remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve remote address %s: %v", pfcperr.ErrTransport, remoteAddr, err)
	}
	conn, err := net.ListenUDP("udp", local)
	if err != nil {
		return nil, fmt.Errorf("%w: bind %s: %v", pfcperr.ErrTransport, localAddr, err)
	}
	return &Socket{conn: conn, remote: remote}, nil
}

// Send writes b to the peer this socket was dialed against.
func (s *Socket) Send(b []byte) error {
	if _, err := s.conn.WriteToUDP(b, s.remote); err != nil {
		return fmt.Errorf("%w: send to %s: %v", pfcperr.ErrTransport, s.remote, err)
	}
	return nil
}

// ReadFrom reads one datagram into buf, returning its length and sender.
func (s *Socket) ReadFrom(buf []byte) (int, *net.UDPAddr, error) {
	n, addr, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", pfcperr.ErrTransport, err)
	}
	return n, addr, nil
}

// LocalAddr returns the socket's bound local address.
func (s *Socket) LocalAddr() net.Addr { return s.conn.LocalAddr() }

// RemoteAddr returns the peer address this socket sends to.
func (s *Socket) RemoteAddr() net.Addr { return s.remote }

// Close releases the underlying UDP connection.
func (s *Socket) Close() error { return s.conn.Close() }
