// Package message implements the PFCP message layer: the ~20 node- and
// session-level message types, their mandatory/optional Information
// Element cardinalities, and the Parse dispatch that turns a decoded
// header plus IE list into one of the typed structs below.
package message

import (
	"errors"
	"fmt"

	"pfcp-core/internal/pfcp/header"
	"pfcp-core/internal/pfcperr"
	"pfcp-core/internal/wire"
	"pfcp-core/pkg/ie"
)

// UnsupportedVersionError wraps pfcperr.ErrInvalidVersion with the
// sequence number the offending request carried, since a peer replies to
// an unsupported version with a Version Not Supported Response that
// echoes it rather than dropping the datagram silently.
type UnsupportedVersionError struct {
	Sequence uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s: sequence %d", pfcperr.ErrInvalidVersion, e.Sequence)
}

func (e *UnsupportedVersionError) Unwrap() error { return pfcperr.ErrInvalidVersion }

// Message type codes (3GPP TS 29.244 §7.2.2). Node-related messages use
// 1-15; session-related messages use 50-57.
const (
	MsgTypeHeartbeatRequest  uint8 = 1
	MsgTypeHeartbeatResponse uint8 = 2

	MsgTypePFDManagementRequest  uint8 = 3
	MsgTypePFDManagementResponse uint8 = 4

	MsgTypeAssociationSetupRequest  uint8 = 5
	MsgTypeAssociationSetupResponse uint8 = 6

	MsgTypeAssociationUpdateRequest  uint8 = 7
	MsgTypeAssociationUpdateResponse uint8 = 8

	MsgTypeAssociationReleaseRequest  uint8 = 9
	MsgTypeAssociationReleaseResponse uint8 = 10

	MsgTypeVersionNotSupportedResponse uint8 = 11

	MsgTypeNodeReportRequest  uint8 = 12
	MsgTypeNodeReportResponse uint8 = 13

	MsgTypeSessionSetDeletionRequest  uint8 = 14
	MsgTypeSessionSetDeletionResponse uint8 = 15

	MsgTypeSessionEstablishmentRequest  uint8 = 50
	MsgTypeSessionEstablishmentResponse uint8 = 51

	MsgTypeSessionModificationRequest  uint8 = 52
	MsgTypeSessionModificationResponse uint8 = 53

	MsgTypeSessionDeletionRequest  uint8 = 54
	MsgTypeSessionDeletionResponse uint8 = 55

	MsgTypeSessionReportRequest  uint8 = 56
	MsgTypeSessionReportResponse uint8 = 57
)

// Validatable is implemented by message types with mandatory-IE checks
// (most request/response kinds spec.md §3.1 gives a cardinality table
// for). Not every Message implements it — callers must type-assert.
type Validatable interface {
	Validate() error
}

// Message is implemented by every PFCP message type this package defines.
// The mutable Set* methods mirror the header package's own idiom, used
// when a connection layer rewrites sequence numbers or SEIDs for a
// retransmit or a session handoff.
type Message interface {
	MessageType() uint8
	Sequence() uint32
	SetSequenceNumber(seq uint32)
	HasSEID() bool
	SEID() uint64
	SetSEID(seid uint64)
	IEs() []*ie.IE
	MarshalLen() int
	MarshalTo(b []byte) error
}

// base is embedded by every concrete message type and implements the
// header-level parts of the Message interface; IEs() is provided by each
// concrete type since the field ordering differs per message.
type base struct {
	Header header.Header
}

func (b *base) MessageType() uint8            { return b.Header.MessageType }
func (b *base) Sequence() uint32              { return b.Header.SequenceNumber }
func (b *base) SetSequenceNumber(seq uint32)  { b.Header.SetSequenceNumber(seq) }
func (b *base) HasSEID() bool                 { return b.Header.HasSEID }
func (b *base) SEID() uint64                  { return b.Header.SEID }
func (b *base) SetSEID(seid uint64)           { b.Header.SetSEID(seid) }

// marshalLen computes a message's total wire length: the fixed header
// plus every non-nil IE's own MarshalLen.
func marshalLen(h header.Header, ies []*ie.IE) int {
	total := h.FixedLen()
	for _, i := range ies {
		if i != nil {
			total += i.MarshalLen()
		}
	}
	return total
}

// marshalTo encodes the header followed by ies into b, back-patching the
// header's message_length field once the body size is known.
func marshalTo(b []byte, h header.Header, ies []*ie.IE) error {
	w := wire.NewWriter(b)
	lengthPos, err := header.Encode(w, h)
	if err != nil {
		return err
	}
	for _, i := range ies {
		if i == nil {
			continue
		}
		ieBytes, err := ie.Marshal(i)
		if err != nil {
			return fmt.Errorf("message: marshal IE %d: %w", i.Type, err)
		}
		if err := w.WriteBytes(ieBytes); err != nil {
			return err
		}
	}
	// message_length covers everything after the first 4 octets of the
	// header, i.e. SEID + sequence + spare + body.
	if err := w.BackPatchUint16(lengthPos, uint16(w.Len()-4)); err != nil {
		return err
	}
	return nil
}

// decodeHeaderAndIEs parses the fixed header and the flat list of
// top-level IEs that follow it; grouped IEs recurse via ie.Parse.
func decodeHeaderAndIEs(b []byte) (header.Header, []*ie.IE, error) {
	r := wire.NewReader(b)
	h, err := header.Decode(r)
	if err != nil && !errors.Is(err, header.ErrUnsupportedVersion) {
		return header.Header{}, nil, err
	}
	// A version mismatch still yields a fully-decoded header (see
	// header.Decode's doc comment); callers that want to answer with a
	// Version Not Supported Response need the sequence number, so only
	// bail out here on errors that left the header unusable.
	versionErr := err
	body, rerr := r.ReadBytes(r.Len())
	if rerr != nil {
		return h, nil, rerr
	}
	ies, perr := ie.ParseAll(body)
	if perr != nil {
		return h, ies, perr
	}
	return h, ies, versionErr
}

// MessageTypeName returns a human-readable name for a message type code,
// "Unknown(n)" for anything this module doesn't recognise.
func MessageTypeName(t uint8) string {
	switch t {
	case MsgTypeHeartbeatRequest:
		return "HeartbeatRequest"
	case MsgTypeHeartbeatResponse:
		return "HeartbeatResponse"
	case MsgTypePFDManagementRequest:
		return "PFDManagementRequest"
	case MsgTypePFDManagementResponse:
		return "PFDManagementResponse"
	case MsgTypeAssociationSetupRequest:
		return "AssociationSetupRequest"
	case MsgTypeAssociationSetupResponse:
		return "AssociationSetupResponse"
	case MsgTypeAssociationUpdateRequest:
		return "AssociationUpdateRequest"
	case MsgTypeAssociationUpdateResponse:
		return "AssociationUpdateResponse"
	case MsgTypeAssociationReleaseRequest:
		return "AssociationReleaseRequest"
	case MsgTypeAssociationReleaseResponse:
		return "AssociationReleaseResponse"
	case MsgTypeVersionNotSupportedResponse:
		return "VersionNotSupportedResponse"
	case MsgTypeNodeReportRequest:
		return "NodeReportRequest"
	case MsgTypeNodeReportResponse:
		return "NodeReportResponse"
	case MsgTypeSessionSetDeletionRequest:
		return "SessionSetDeletionRequest"
	case MsgTypeSessionSetDeletionResponse:
		return "SessionSetDeletionResponse"
	case MsgTypeSessionEstablishmentRequest:
		return "SessionEstablishmentRequest"
	case MsgTypeSessionEstablishmentResponse:
		return "SessionEstablishmentResponse"
	case MsgTypeSessionModificationRequest:
		return "SessionModificationRequest"
	case MsgTypeSessionModificationResponse:
		return "SessionModificationResponse"
	case MsgTypeSessionDeletionRequest:
		return "SessionDeletionRequest"
	case MsgTypeSessionDeletionResponse:
		return "SessionDeletionResponse"
	case MsgTypeSessionReportRequest:
		return "SessionReportRequest"
	case MsgTypeSessionReportResponse:
		return "SessionReportResponse"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsRequest reports whether t is a request message type (as opposed to a
// response or the lone Version Not Supported notification).
func IsRequest(t uint8) bool {
	switch t {
	case MsgTypeHeartbeatRequest,
		MsgTypePFDManagementRequest,
		MsgTypeAssociationSetupRequest,
		MsgTypeAssociationUpdateRequest,
		MsgTypeAssociationReleaseRequest,
		MsgTypeNodeReportRequest,
		MsgTypeSessionSetDeletionRequest,
		MsgTypeSessionEstablishmentRequest,
		MsgTypeSessionModificationRequest,
		MsgTypeSessionDeletionRequest,
		MsgTypeSessionReportRequest:
		return true
	default:
		return false
	}
}

// IsSessionMessage reports whether t carries an SEID in its header.
func IsSessionMessage(t uint8) bool {
	switch t {
	case MsgTypeSessionEstablishmentRequest,
		MsgTypeSessionEstablishmentResponse,
		MsgTypeSessionModificationRequest,
		MsgTypeSessionModificationResponse,
		MsgTypeSessionDeletionRequest,
		MsgTypeSessionDeletionResponse,
		MsgTypeSessionReportRequest,
		MsgTypeSessionReportResponse:
		return true
	default:
		return false
	}
}

// Parse decodes one PFCP message from b and dispatches it to the typed
// constructor for its message type. An unrecognised message type yields
// ErrInvalidMessageType; the caller is expected to answer unsupported
// versions and unknown types the same way real PFCP peers do, by
// replying rather than silently dropping the datagram.
func Parse(b []byte) (Message, error) {
	h, ies, err := decodeHeaderAndIEs(b)
	if err != nil {
		if errors.Is(err, header.ErrUnsupportedVersion) {
			return nil, &UnsupportedVersionError{Sequence: h.SequenceNumber}
		}
		return nil, err
	}
	build, ok := registry[h.MessageType]
	if !ok {
		return nil, fmt.Errorf("%w: type %d", pfcperr.ErrInvalidMessageType, h.MessageType)
	}
	return build(h, ies), nil
}

var registry = map[uint8]func(header.Header, []*ie.IE) Message{}

func register(t uint8, build func(header.Header, []*ie.IE) Message) {
	registry[t] = build
}
