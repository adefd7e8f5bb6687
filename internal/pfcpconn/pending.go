package pfcpconn

import (
	"sync"
	"time"

	"pfcp-core/pkg/message"
)

// Result is delivered to a PendingRequest's waiter once a response
// arrives or the request has been abandoned.
type Result struct {
	Response message.Message
	Err      error
}

// PendingRequest tracks one in-flight request awaiting its response,
// mirroring the teacher's PendingTransaction.
type PendingRequest struct {
	Sequence uint32
	Payload  []byte
	SentAt   time.Time
	Retries  int

	resultCh chan Result
}

// PendingTable correlates outbound requests with their eventual
// responses by sequence number.
type PendingTable struct {
	mu      sync.Mutex
	pending map[uint32]*PendingRequest
}

// NewPendingTable returns an empty table.
func NewPendingTable() *PendingTable {
	return &PendingTable{pending: make(map[uint32]*PendingRequest)}
}

// Track registers seq as awaiting a response and returns the channel its
// eventual Result will be delivered on.
func (t *PendingTable) Track(seq uint32, payload []byte) <-chan Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan Result, 1)
	t.pending[seq] = &PendingRequest{Sequence: seq, Payload: payload, SentAt: time.Now(), resultCh: ch}
	return ch
}

// Resolve matches a received response to its pending request by
// sequence number. It reports false if no request is waiting on seq,
// e.g. a duplicate or unexpectedly late response.
func (t *PendingTable) Resolve(seq uint32, resp message.Message) bool {
	t.mu.Lock()
	pr, ok := t.pending[seq]
	if ok {
		delete(t.pending, seq)
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	pr.resultCh <- Result{Response: resp}
	return true
}

// TimedOut returns every pending request whose SentAt is older than
// timeout, without removing them; the caller decides whether to retry
// or give up on each.
func (t *PendingTable) TimedOut(timeout time.Duration) []*PendingRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []*PendingRequest
	now := time.Now()
	for _, pr := range t.pending {
		if now.Sub(pr.SentAt) > timeout {
			out = append(out, pr)
		}
	}
	return out
}

// MarkRetried bumps a pending request's retry count and resets its
// SentAt; call it right after actually retransmitting the payload.
func (t *PendingTable) MarkRetried(seq uint32) (retries int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pr, ok := t.pending[seq]
	if !ok {
		return 0, false
	}
	pr.Retries++
	pr.SentAt = time.Now()
	return pr.Retries, true
}

// Fail delivers err to seq's waiter and removes it from the table.
func (t *PendingTable) Fail(seq uint32, err error) {
	t.mu.Lock()
	pr, ok := t.pending[seq]
	if ok {
		delete(t.pending, seq)
	}
	t.mu.Unlock()
	if ok {
		pr.resultCh <- Result{Err: err}
	}
}

// Len reports the number of requests currently awaiting a response.
func (t *PendingTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// CancelAll fails every pending request with err, used when the
// connection is closed out from under them.
func (t *PendingTable) CancelAll(err error) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[uint32]*PendingRequest)
	t.mu.Unlock()
	for _, pr := range pending {
		pr.resultCh <- Result{Err: err}
	}
}
