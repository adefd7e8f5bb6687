package ie

import (
	"fmt"

	"pfcp-core/internal/wire"
)

// IE is the common representation for every Information Element. Leaf IEs
// carry their encoded fields in Payload and are decoded on demand by
// typed accessor methods (Cause, NodeID, FSEID, ...). Grouped IEs
// additionally populate Children with the recursively parsed child IEs;
// Payload still holds the raw concatenated child TLVs so re-marshalling
// an untouched grouped IE never needs to re-encode its children.
type IE struct {
	Type         Type
	EnterpriseID uint32 // valid only when Type.IsVendorSpecific()
	Payload      []byte
	Children     []*IE // populated for grouped IE types
}

// groupedTypes lists every IE type whose body is a sequence of child
// TLVs rather than a single scalar/bit-flagged payload.
var groupedTypes = map[Type]bool{
	TypeCreatePDR:              true,
	TypePDI:                    true,
	TypeCreateFAR:              true,
	TypeForwardingParameters:   true,
	TypeDuplicatingParameters:  true,
	TypeCreateURR:              true,
	TypeCreateQER:              true,
	TypeCreatedPDR:             true,
	TypeUpdatePDR:              true,
	TypeUpdateFAR:              true,
	TypeUpdateForwardingParams: true,
	TypeUpdateURR:              true,
	TypeUpdateQER:              true,
	TypeUpdateBARWithinSMR:     true,
	TypeUpdateBARWithinSRR:     true,
	TypeRemovePDR:              true,
	TypeRemoveFAR:              true,
	TypeRemoveURR:              true,
	TypeRemoveQER:              true,
	TypeCreateBAR:              true,
	TypeRemoveBAR:              true,
	TypeLoadControlInformation: true,
	TypeOverloadControlInfo:    true,
	TypeUsageReportSMR:         true,
	TypeUsageReportSDR:         true,
	TypeUsageReportSRR:         true,
	TypeDownlinkDataReport:     true,
	TypeErrorIndicationReport:  true,
	TypeCreateTrafficEndpoint:  true,
	TypeCreatedTrafficEndpoint: true,
	TypeUpdateTrafficEndpoint:  true,
	TypeRemoveTrafficEndpoint:  true,
	TypeEthernetPacketFilter:   true,
	TypeQoSInformation:         true,
	TypeApplicationDetectionInfo: true,
}

// IsGrouped reports whether t's body is a sequence of child TLVs.
func IsGrouped(t Type) bool {
	return groupedTypes[t]
}

// New builds a leaf IE from an already-encoded payload.
func New(t Type, payload []byte) *IE {
	return &IE{Type: t, Payload: payload}
}

// NewGrouped builds a grouped IE from its already-constructed children,
// encoding them into Payload immediately so MarshalLen/MarshalTo never
// need to fail partway through a grouped body.
func NewGrouped(t Type, children ...*IE) (*IE, error) {
	var body []byte
	for _, child := range children {
		if child == nil {
			continue
		}
		b, err := Marshal(child)
		if err != nil {
			return nil, fmt.Errorf("ie: marshal child %d of group %d: %w", child.Type, t, err)
		}
		body = append(body, b...)
	}
	return &IE{Type: t, Payload: body, Children: children}, nil
}

// headerLen returns the number of bytes the type+length+enterprise-id
// prefix occupies for this IE (4, or 8 for vendor-specific types).
func (i *IE) headerLen() int {
	if i.Type.IsVendorSpecific() {
		return 8
	}
	return 4
}

// MarshalLen returns the total encoded size of the IE, header included.
func (i *IE) MarshalLen() int {
	return i.headerLen() + len(i.Payload)
}

// MarshalTo encodes the IE's TLV frame into b, which must be at least
// MarshalLen() bytes, and returns the number of bytes written.
func (i *IE) MarshalTo(b []byte) (int, error) {
	if len(i.Payload) > 0xFFFF {
		return 0, fmt.Errorf("ie: type %d body of %d bytes exceeds 65535-byte TLV length field", i.Type, len(i.Payload))
	}
	w := wire.NewWriter(b)
	if err := w.WriteUint16(uint16(i.Type)); err != nil {
		return 0, err
	}
	lengthPos, err := w.Skip(2)
	if err != nil {
		return 0, err
	}
	bodyLen := len(i.Payload)
	if i.Type.IsVendorSpecific() {
		if err := w.WriteUint32(i.EnterpriseID); err != nil {
			return 0, err
		}
		bodyLen += 4
	}
	if err := w.WriteBytes(i.Payload); err != nil {
		return 0, err
	}
	if err := w.BackPatchUint16(lengthPos, uint16(bodyLen)); err != nil {
		return 0, err
	}
	return w.Len(), nil
}

// Marshal encodes a single IE's full TLV frame.
func Marshal(i *IE) ([]byte, error) {
	b := make([]byte, i.MarshalLen())
	if _, err := i.MarshalTo(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Parse reads one TLV frame from the start of b and returns the decoded
// IE plus the number of bytes it consumed. Grouped IE bodies are
// recursively parsed into Children; if any child fails to parse,
// Children is left nil and the group still decodes, with its raw body
// kept in Payload.
func Parse(b []byte) (*IE, int, error) {
	r := wire.NewReader(b)
	rawType, err := r.ReadUint16()
	if err != nil {
		return nil, 0, err
	}
	declaredLen, err := r.ReadUint16()
	if err != nil {
		return nil, 0, err
	}
	t := Type(rawType)

	bodyLen := int(declaredLen)
	var enterpriseID uint32
	if t.IsVendorSpecific() {
		if bodyLen < 4 {
			return nil, 0, fmt.Errorf("%w: vendor-specific IE %d declares length %d shorter than its enterprise ID", ErrInvalidLength, t, declaredLen)
		}
		enterpriseID, err = r.ReadUint32()
		if err != nil {
			return nil, 0, err
		}
		bodyLen -= 4
	}

	body, err := r.ReadBytes(bodyLen)
	if err != nil {
		return nil, 0, err
	}
	owned := make([]byte, len(body))
	copy(owned, body)

	result := &IE{Type: t, EnterpriseID: enterpriseID, Payload: owned}
	if IsGrouped(t) {
		children, err := ParseAll(owned)
		if err == nil {
			result.Children = children
		}
	}
	return result, r.Pos(), nil
}

// ParseAll repeatedly calls Parse over b until every byte has been
// consumed, returning the ordered list of decoded IEs. It is used both
// for grouped-IE bodies and for the top-level IE list of a message.
func ParseAll(b []byte) ([]*IE, error) {
	var out []*IE
	for len(b) > 0 {
		item, n, err := Parse(b)
		if err != nil {
			return out, err
		}
		out = append(out, item)
		b = b[n:]
	}
	return out, nil
}

// Find returns the first IE of type t among ies, or nil.
func Find(ies []*IE, t Type) *IE {
	for _, i := range ies {
		if i.Type == t {
			return i
		}
	}
	return nil
}

// FindAll returns every IE of type t among ies, in order.
func FindAll(ies []*IE, t Type) []*IE {
	var out []*IE
	for _, i := range ies {
		if i.Type == t {
			out = append(out, i)
		}
	}
	return out
}
