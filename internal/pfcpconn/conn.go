package pfcpconn

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"pfcp-core/internal/pfcperr"
	"pfcp-core/pkg/message"
)

// Config bounds a Conn's retransmission behavior. T1 is the per-attempt
// timeout and N1 the maximum number of retransmissions before a request
// fails, matching the T1/N1 naming 3GPP TS 29.244 Annex B uses for PFCP's
// default retransmission timer.
type Config struct {
	T1 time.Duration
	N1 int
}

// DefaultConfig is 3GPP's recommended T1=5s, N1=3 (four attempts total).
var DefaultConfig = Config{T1: 5 * time.Second, N1: 3}

// RequestHandler processes a request this Conn did not itself send, such
// as a Session Report Request pushed by a UP function, and returns the
// response to send back. A nil return suppresses the reply (the caller
// answers out of band, e.g. after async processing).
type RequestHandler func(ctx context.Context, req message.Message, from *net.UDPAddr) message.Message

// Conn is a live PFCP connection to one peer: a UDP socket plus the
// sequence/pending bookkeeping needed to turn SendRequest calls into
// correlated responses and to answer requests the peer initiates.
type Conn struct {
	id      string
	socket  *Socket
	seq     *SequenceGenerator
	pending *PendingTable
	cfg     Config
	handler RequestHandler
	dedup   singleflight.Group
	log     *log.Entry

	cancel context.CancelFunc
}

// Dial binds localAddr, targets remoteAddr, and returns a ready Conn.
// handler may be nil if this peer never expects unsolicited requests.
func Dial(localAddr, remoteAddr string, cfg Config, handler RequestHandler) (*Conn, error) {
	sock, err := NewSocket(localAddr, remoteAddr)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	return &Conn{
		id:      id,
		socket:  sock,
		seq:     NewSequenceGenerator(),
		pending: NewPendingTable(),
		cfg:     cfg,
		handler: handler,
		log:     log.WithField("conn_id", id),
	}, nil
}

// LocalAddr returns the connection's bound local address.
func (c *Conn) LocalAddr() net.Addr { return c.socket.LocalAddr() }

// Close stops the receive loop (if running) and releases the socket,
// failing every request still awaiting a response.
func (c *Conn) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.pending.CancelAll(fmt.Errorf("%w: connection closed", pfcperr.ErrTransport))
	return c.socket.Close()
}

// SendRequest marshals req, allocates it a sequence number, transmits
// it, and blocks until a matching response arrives, ctx is cancelled, or
// N1 retransmissions are exhausted. ReceiveDispatch must be running
// concurrently for the response to ever arrive.
func (c *Conn) SendRequest(ctx context.Context, req message.Message) (message.Message, error) {
	seq, err := c.seq.Next()
	if err != nil {
		return nil, err
	}
	defer c.seq.Release(seq)
	req.SetSequenceNumber(seq)

	payload := make([]byte, req.MarshalLen())
	if err := req.MarshalTo(payload); err != nil {
		return nil, fmt.Errorf("pfcpconn: marshal request: %w", err)
	}

	resultCh := c.pending.Track(seq, payload)
	if err := c.socket.Send(payload); err != nil {
		c.pending.Fail(seq, err)
		return nil, err
	}

	return c.awaitResponse(ctx, seq, resultCh)
}

// awaitResponse drives the T1/N1 retransmission loop for seq, collapsing
// concurrent waiters for the same sequence (e.g. a caller and a
// diagnostic goroutine both awaiting the same in-flight request) into a
// single retransmission timer via singleflight.
func (c *Conn) awaitResponse(ctx context.Context, seq uint32, resultCh <-chan Result) (message.Message, error) {
	key := strconv.FormatUint(uint64(seq), 10)
	v, err, _ := c.dedup.Do(key, func() (interface{}, error) {
		timer := time.NewTimer(c.cfg.T1)
		defer timer.Stop()
		attempts := 0
		for {
			select {
			case res := <-resultCh:
				if res.Err != nil {
					return nil, res.Err
				}
				return res.Response, nil
			case <-timer.C:
				attempts++
				if attempts > c.cfg.N1 {
					c.pending.Fail(seq, fmt.Errorf("%w: sequence %d after %d attempts", pfcperr.ErrTimeout, seq, attempts))
					return nil, fmt.Errorf("%w: sequence %d after %d attempts", pfcperr.ErrTimeout, seq, attempts)
				}
				retries, ok := c.pending.MarkRetried(seq)
				if !ok {
					// resolved between the timer firing and the lock.
					continue
				}
				c.log.WithFields(log.Fields{"sequence": seq, "attempt": retries}).Warn("retransmitting PFCP request")
				if pr := c.pendingPayload(seq); pr != nil {
					if err := c.socket.Send(pr); err != nil {
						c.log.WithError(err).WithField("sequence", seq).Error("retransmission failed")
					}
				}
				timer.Reset(c.cfg.T1)
			case <-ctx.Done():
				c.pending.Fail(seq, ctx.Err())
				return nil, ctx.Err()
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return v.(message.Message), nil
}

// pendingPayload recovers the original marshalled request for a
// retransmit; it returns nil if seq is no longer pending (resolved
// concurrently).
func (c *Conn) pendingPayload(seq uint32) []byte {
	c.pending.mu.Lock()
	defer c.pending.mu.Unlock()
	pr, ok := c.pending.pending[seq]
	if !ok {
		return nil
	}
	return pr.Payload
}

// ReceiveDispatch starts a background loop reading datagrams from the
// socket, resolving pending requests by sequence number and routing
// unsolicited requests to handler. It stops when ctx is cancelled.
func (c *Conn) ReceiveDispatch(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	go c.receiveLoop(ctx)
}

func (c *Conn) receiveLoop(ctx context.Context) {
	buf := make([]byte, 65535)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, from, err := c.socket.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.log.WithError(err).Warn("error reading PFCP datagram")
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])

		c.dispatch(ctx, data, from)
	}
}

func (c *Conn) dispatch(ctx context.Context, data []byte, from *net.UDPAddr) {
	msg, err := message.Parse(data)
	if err != nil {
		var verErr *message.UnsupportedVersionError
		if errors.As(err, &verErr) {
			c.replyVersionNotSupported(verErr.Sequence, from)
			return
		}
		c.log.WithError(err).WithField("from", from).Warn("failed to parse PFCP datagram")
		return
	}

	if message.IsRequest(msg.MessageType()) {
		if c.handler == nil {
			c.log.WithField("type", message.MessageTypeName(msg.MessageType())).Warn("no handler for unsolicited PFCP request")
			return
		}
		resp := c.handler(ctx, msg, from)
		if resp == nil {
			return
		}
		b := make([]byte, resp.MarshalLen())
		if err := resp.MarshalTo(b); err != nil {
			c.log.WithError(err).Error("failed to marshal handler response")
			return
		}
		if err := c.socket.Send(b); err != nil {
			c.log.WithError(err).Error("failed to send handler response")
		}
		return
	}

	if !c.pending.Resolve(msg.Sequence(), msg) {
		c.log.WithField("sequence", msg.Sequence()).Warn("received response for unknown or already-resolved request")
	}
}

func (c *Conn) replyVersionNotSupported(seq uint32, from *net.UDPAddr) {
	resp := message.NewVersionNotSupportedResponse(seq)
	b := make([]byte, resp.MarshalLen())
	if err := resp.MarshalTo(b); err != nil {
		c.log.WithError(err).Error("failed to marshal version not supported response")
		return
	}
	if err := c.socket.Send(b); err != nil {
		c.log.WithError(err).WithField("from", from).Error("failed to send version not supported response")
	}
}
