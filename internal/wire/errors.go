// Package wire implements the big-endian primitive codec PFCP messages are
// built on: a bounds-checked Writer/Reader pair with deferred back-patching
// for TLV and header length fields.
package wire

import "pfcp-core/internal/pfcperr"

// ErrBufferTooSmall is returned when a Writer does not have enough
// remaining capacity to satisfy a write. It is pfcperr.ErrBufferTooSmall.
var ErrBufferTooSmall = pfcperr.ErrBufferTooSmall

// ErrInvalidLength is returned when a Reader is asked to consume more
// bytes than remain, or a declared length field does not match the bytes
// actually available. It is pfcperr.ErrInvalidLength.
var ErrInvalidLength = pfcperr.ErrInvalidLength
