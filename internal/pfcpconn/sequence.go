// Package pfcpconn implements the UDP connection layer: sequence number
// allocation, request/response correlation, and T1/N1 retransmission,
// grounded on the teacher's internal/network package (UDPClient,
// Receiver, TransactionTracker) generalised from a one-shot generator
// into a long-lived peer connection.
package pfcpconn

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"pfcp-core/internal/pfcperr"
)

// seqMask truncates the underlying counter to PFCP's 24-bit sequence
// number space, 0x000000-0xFFFFFF.
const seqMask = 0x00FFFFFF

// SequenceGenerator issues the 24-bit sequence numbers PFCP requests
// carry: 1, 2, …, 0xFFFFFF, 0, 1, … — the 2^24th call wraps back to 0,
// not 1, matching the counter's N mod 2^24 definition. It refuses to
// reissue a number still awaiting a response rather than silently
// reusing it out from under a pending request; callers retry Next() to
// get a fresh one.
type SequenceGenerator struct {
	counter *atomic.Uint32
	mu      sync.Mutex
	inUse   map[uint32]bool
}

// NewSequenceGenerator returns a generator starting at sequence 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{counter: atomic.NewUint32(0), inUse: make(map[uint32]bool)}
}

// Next allocates the next sequence number and marks it in use. The
// caller must call Release once the request it tags has been resolved
// or abandoned.
func (s *SequenceGenerator) Next() (uint32, error) {
	seq := s.counter.Inc() & seqMask
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inUse[seq] {
		return 0, fmt.Errorf("%w: %d", pfcperr.ErrSequenceInUse, seq)
	}
	s.inUse[seq] = true
	return seq, nil
}

// Release marks seq free for reallocation once its request is done.
func (s *SequenceGenerator) Release(seq uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inUse, seq)
}

// InUse reports whether seq is currently allocated, for tests and metrics.
func (s *SequenceGenerator) InUse(seq uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inUse[seq]
}
