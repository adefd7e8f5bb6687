// Package header encodes and decodes the PFCP message header: the 8-byte
// (no SEID) or 16-byte (with SEID) prefix carrying version, flags, message
// type, length, optional SEID, and the 24-bit sequence number.
package header

import (
	"errors"
	"fmt"

	"pfcp-core/internal/wire"
)

// Version is the only PFCP version this module understands.
const Version = 1

// ErrUnsupportedVersion is returned by Decode when the header's version
// field is not Version. The caller is expected to answer with a Version
// Not Supported Response echoing the sequence number.
var ErrUnsupportedVersion = errors.New("header: unsupported PFCP version")

// Header is the parsed form of a PFCP message's leading bytes.
type Header struct {
	Version        uint8
	MP             bool // Message Priority flag (node messages only)
	HasSEID        bool
	MessageType    uint8
	MessageLength  uint16 // bytes following the first 4 octets
	SEID           uint64 // valid only if HasSEID
	SequenceNumber uint32 // 24-bit
}

// FixedLen returns the header's own length on the wire: 8 bytes without an
// SEID, 16 with one.
func (h Header) FixedLen() int {
	if h.HasSEID {
		return 16
	}
	return 8
}

// SetSEID sets the header's SEID field and HasSEID flag, mirroring the
// mutable-header idiom call sites use when rewriting a message for replay
// (SetSEID(0) before establishment, SetSEID(remote) thereafter).
func (h *Header) SetSEID(seid uint64) {
	h.HasSEID = true
	h.SEID = seid
}

// SetSequenceNumber overwrites the 24-bit sequence number.
func (h *Header) SetSequenceNumber(seq uint32) {
	h.SequenceNumber = seq & 0x00FFFFFF
}

// Encode writes the header into w with message_length reserved but not
// yet filled; it returns the buffer offset of the length field so the
// caller can BackPatchUint16 it once the body has been serialised.
func Encode(w *wire.Writer, h Header) (lengthPos int, err error) {
	flags := uint8(Version<<5) | boolBit(h.MP, 1) | boolBit(h.HasSEID, 0)
	if err := w.WriteUint8(flags); err != nil {
		return 0, err
	}
	if err := w.WriteUint8(h.MessageType); err != nil {
		return 0, err
	}
	lengthPos, err = w.Skip(2)
	if err != nil {
		return 0, err
	}
	if h.HasSEID {
		if err := w.WriteUint64(h.SEID); err != nil {
			return 0, err
		}
	}
	if err := w.WriteUint24(h.SequenceNumber & 0x00FFFFFF); err != nil {
		return 0, err
	}
	if err := w.WriteUint8(0); err != nil { // spare
		return 0, err
	}
	return lengthPos, nil
}

// Decode reads a header from r. It rejects any version other than
// Version with ErrUnsupportedVersion; all other fields are parsed
// regardless so a caller that wants to echo the sequence number in a
// Version Not Supported Response still can.
func Decode(r *wire.Reader) (Header, error) {
	flags, err := r.ReadUint8()
	if err != nil {
		return Header{}, err
	}
	h := Header{
		Version: flags >> 5,
		MP:      flags&0x02 != 0, // bit 1
		HasSEID: flags&0x01 != 0,
	}
	if h.MessageType, err = r.ReadUint8(); err != nil {
		return Header{}, err
	}
	length, err := r.ReadUint16()
	if err != nil {
		return Header{}, err
	}
	h.MessageLength = length

	if h.HasSEID {
		if h.SEID, err = r.ReadUint64(); err != nil {
			return Header{}, err
		}
	}
	seq, err := r.ReadUint24()
	if err != nil {
		return Header{}, err
	}
	h.SequenceNumber = seq
	if _, err := r.ReadUint8(); err != nil { // spare
		return Header{}, err
	}

	if h.Version != Version {
		return h, fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, h.Version)
	}
	return h, nil
}

func boolBit(b bool, shift uint8) uint8 {
	if b {
		return 1 << shift
	}
	return 0
}
