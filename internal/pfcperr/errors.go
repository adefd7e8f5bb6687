// Package pfcperr collects the sentinel errors shared across the codec,
// message, and connection layers, so callers can errors.Is against one
// taxonomy regardless of which package actually detected the problem.
package pfcperr

import "errors"

var (
	// ErrBufferTooSmall is returned when encoding a message into a buffer
	// that cannot hold it.
	ErrBufferTooSmall = errors.New("pfcp: buffer too small")

	// ErrInvalidLength is returned when a decoded length field disagrees
	// with the bytes actually available.
	ErrInvalidLength = errors.New("pfcp: invalid length")

	// ErrInvalidVersion is returned when a header's version field is not
	// the one this module understands.
	ErrInvalidVersion = errors.New("pfcp: unsupported version")

	// ErrInvalidMessageType is returned by Parse when the message type
	// byte does not match any message this module knows how to decode.
	ErrInvalidMessageType = errors.New("pfcp: unknown message type")

	// ErrMissingMandatoryIE is returned by Validate when a message is
	// missing an Information Element its type requires.
	ErrMissingMandatoryIE = errors.New("pfcp: missing mandatory IE")

	// ErrTimeout is returned by the connection layer when a request
	// exhausts its retransmissions without a matching response.
	ErrTimeout = errors.New("pfcp: request timed out")

	// ErrTransport wraps failures from the underlying UDP socket.
	ErrTransport = errors.New("pfcp: transport error")

	// ErrSequenceInUse is returned by SequenceGenerator when the 24-bit
	// sequence space has wrapped back onto a number still awaiting a
	// response; the caller should retry to get a fresh one.
	ErrSequenceInUse = errors.New("pfcp: sequence number still pending")
)
