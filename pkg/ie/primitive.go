package ie

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"pfcp-core/pkg/ntptime"
)

// Cause is the one-byte PFCP Cause value. Values below 64 indicate
// acceptance; 64 and above indicate a rejection reason.
type Cause uint8

// Cause values named by 3GPP TS 29.244 Table 8.2.1-1 (abridged to the
// set spec.md calls out).
const (
	CauseRequestAccepted        Cause = 1
	CauseMoreUsageReportToSend  Cause = 2
	CauseRequestRejected        Cause = 64
	CauseSessionContextNotFound Cause = 65
	CauseMandatoryIEMissing     Cause = 66
	CauseConditionalIEMissing   Cause = 67
	CauseInvalidLength          Cause = 68
	CauseMandatoryIEIncorrect   Cause = 69
	CauseInvalidForwardingPolicy Cause = 70
	CauseNoEstablishedPFCPAssoc Cause = 72
	CauseRuleCreationFailure    Cause = 73
	CausePFCPEntityInCongestion Cause = 74
	CauseNoResourcesAvailable   Cause = 75
	CauseSystemFailure          Cause = 77
	CauseVersionNotSupported    Cause = 78
)

// Accepted reports whether c is a success cause (< 64).
func (c Cause) Accepted() bool {
	return c < 64
}

// NewCause builds a Cause IE.
func NewCause(c Cause) *IE {
	return New(TypeCause, []byte{byte(c)})
}

// Cause decodes a Cause IE's value.
func (i *IE) Cause() (Cause, error) {
	if i.Type != TypeCause {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return Cause(i.Payload[0]), nil
}

// NodeIDType is the 4-bit discriminator in the first byte of a NodeID IE.
type NodeIDType uint8

const (
	NodeIDTypeIPv4 NodeIDType = 0
	NodeIDTypeIPv6 NodeIDType = 1
	NodeIDTypeFQDN NodeIDType = 2
	// NodeIDTypeUnknown is returned by NodeID() when the wire discriminator
	// is outside {0,1,2}; 3GPP reserves further values for future releases
	// and this module preserves them instead of failing to parse.
	NodeIDTypeUnknown NodeIDType = 0xFF
)

// NodeID is the decoded form of a NodeID IE.
type NodeID struct {
	IDType  NodeIDType
	RawType uint8 // the wire discriminator, even when IDType is Unknown
	IPv4    net.IP
	IPv6    net.IP
	FQDN    string
}

// NewNodeID builds a NodeID IE. Exactly one of v4, v6, fqdn should be
// non-empty; the first non-empty one wins, checked in that order.
func NewNodeID(v4, v6, fqdn string) *IE {
	switch {
	case v4 != "":
		ip := net.ParseIP(v4).To4()
		return New(TypeNodeID, append([]byte{byte(NodeIDTypeIPv4)}, ip...))
	case v6 != "":
		ip := net.ParseIP(v6).To16()
		return New(TypeNodeID, append([]byte{byte(NodeIDTypeIPv6)}, ip...))
	default:
		return New(TypeNodeID, append([]byte{byte(NodeIDTypeFQDN)}, []byte(fqdn)...))
	}
}

// NodeID decodes a NodeID IE.
func (i *IE) NodeID() (NodeID, error) {
	if i.Type != TypeNodeID {
		return NodeID{}, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return NodeID{}, ErrInvalidLength
	}
	raw := i.Payload[0]
	body := i.Payload[1:]
	switch NodeIDType(raw) {
	case NodeIDTypeIPv4:
		if len(body) != 4 {
			return NodeID{}, ErrInvalidLength
		}
		return NodeID{IDType: NodeIDTypeIPv4, RawType: raw, IPv4: net.IP(append([]byte(nil), body...))}, nil
	case NodeIDTypeIPv6:
		if len(body) != 16 {
			return NodeID{}, ErrInvalidLength
		}
		return NodeID{IDType: NodeIDTypeIPv6, RawType: raw, IPv6: net.IP(append([]byte(nil), body...))}, nil
	case NodeIDTypeFQDN:
		return NodeID{IDType: NodeIDTypeFQDN, RawType: raw, FQDN: string(body)}, nil
	default:
		return NodeID{IDType: NodeIDTypeUnknown, RawType: raw}, nil
	}
}

// NewRecoveryTimeStamp builds a Recovery Time Stamp IE from a UNIX time.
func NewRecoveryTimeStamp(t time.Time) *IE {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, ntptime.FromUnix(t))
	return New(TypeRecoveryTimeStamp, buf)
}

// RecoveryTimeStamp decodes a Recovery Time Stamp IE into a UNIX time.
func (i *IE) RecoveryTimeStamp() (time.Time, error) {
	if i.Type != TypeRecoveryTimeStamp {
		return time.Time{}, ErrWrongType
	}
	if len(i.Payload) != 4 {
		return time.Time{}, ErrInvalidLength
	}
	return ntptime.ToUnix(binary.BigEndian.Uint32(i.Payload)), nil
}

// InterfaceValue enumerates the PFCP Source/Destination Interface values.
type InterfaceValue uint8

const (
	InterfaceAccess     InterfaceValue = 0
	InterfaceCore       InterfaceValue = 1
	InterfaceSGiLAN     InterfaceValue = 2
	InterfaceCPFunction InterfaceValue = 3
)

// NewSourceInterface builds a Source Interface IE.
func NewSourceInterface(v InterfaceValue) *IE {
	return New(TypeSourceInterface, []byte{byte(v) & 0x0F})
}

// SourceInterface decodes a Source Interface IE.
func (i *IE) SourceInterface() (InterfaceValue, error) {
	if i.Type != TypeSourceInterface {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return InterfaceValue(i.Payload[0] & 0x0F), nil
}

// NewDestinationInterface builds a Destination Interface IE.
func NewDestinationInterface(v InterfaceValue) *IE {
	return New(TypeDestinationInterface, []byte{byte(v) & 0x0F})
}

// DestinationInterface decodes a Destination Interface IE.
func (i *IE) DestinationInterface() (InterfaceValue, error) {
	if i.Type != TypeDestinationInterface {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return InterfaceValue(i.Payload[0] & 0x0F), nil
}

func newUint16IE(t Type, v uint16) *IE {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, v)
	return New(t, buf)
}

func (i *IE) uint16Value(want Type) (uint16, error) {
	if i.Type != want {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 2 {
		return 0, ErrInvalidLength
	}
	return binary.BigEndian.Uint16(i.Payload), nil
}

func newUint32IE(t Type, v uint32) *IE {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return New(t, buf)
}

func (i *IE) uint32Value(want Type) (uint32, error) {
	if i.Type != want {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 4 {
		return 0, ErrInvalidLength
	}
	return binary.BigEndian.Uint32(i.Payload), nil
}

// NewPDRID builds a PDR ID IE (16-bit rule identifier).
func NewPDRID(v uint16) *IE { return newUint16IE(TypePDRID, v) }

// PDRID decodes a PDR ID IE.
func (i *IE) PDRID() (uint16, error) { return i.uint16Value(TypePDRID) }

// NewFARID builds a FAR ID IE (32-bit rule identifier).
func NewFARID(v uint32) *IE { return newUint32IE(TypeFARID, v) }

// FARID decodes a FAR ID IE.
func (i *IE) FARID() (uint32, error) { return i.uint32Value(TypeFARID) }

// NewURRID builds a URR ID IE.
func NewURRID(v uint32) *IE { return newUint32IE(TypeURRID, v) }

// URRID decodes a URR ID IE.
func (i *IE) URRID() (uint32, error) { return i.uint32Value(TypeURRID) }

// NewQERID builds a QER ID IE.
func NewQERID(v uint32) *IE { return newUint32IE(TypeQERID, v) }

// QERID decodes a QER ID IE.
func (i *IE) QERID() (uint32, error) { return i.uint32Value(TypeQERID) }

// NewBARID builds a BAR ID IE (8-bit identifier).
func NewBARID(v uint8) *IE { return New(TypeBARID, []byte{v}) }

// BARID decodes a BAR ID IE.
func (i *IE) BARID() (uint8, error) {
	if i.Type != TypeBARID {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return i.Payload[0], nil
}

// NewPrecedence builds a Precedence IE.
func NewPrecedence(v uint32) *IE { return newUint32IE(TypePrecedence, v) }

// Precedence decodes a Precedence IE.
func (i *IE) Precedence() (uint32, error) { return i.uint32Value(TypePrecedence) }

// GateStatus bit values (UL/DL gate open or closed), packed two bits per
// direction into a single octet: bits 0-1 = UL, bits 2-3 = DL.
type GateStatus uint8

const (
	GateOpen   GateStatus = 0
	GateClosed GateStatus = 1
)

// NewGateStatus builds a Gate Status IE from independent UL/DL gates.
func NewGateStatus(ul, dl GateStatus) *IE {
	return New(TypeGateStatus, []byte{byte(ul&0x03) | byte(dl&0x03)<<2})
}

// GateStatus decodes UL and DL gate status from a Gate Status IE.
func (i *IE) GateStatus() (ul, dl GateStatus, err error) {
	if i.Type != TypeGateStatus {
		return 0, 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, 0, ErrInvalidLength
	}
	return GateStatus(i.Payload[0] & 0x03), GateStatus((i.Payload[0] >> 2) & 0x03), nil
}

// NewMBR builds an MBR (Maximum Bit Rate) IE: two 5-octet bitrates in
// kbps, uplink then downlink, matching 3GPP's 40-bit MBR encoding.
func NewMBR(ulKbps, dlKbps uint64) *IE {
	return New(TypeMBR, marshalBitRatePair(ulKbps, dlKbps))
}

// MBR decodes uplink/downlink bit rates (kbps) from an MBR IE.
func (i *IE) MBR() (ulKbps, dlKbps uint64, err error) {
	if i.Type != TypeMBR {
		return 0, 0, ErrWrongType
	}
	return unmarshalBitRatePair(i.Payload)
}

// NewGBR builds a GBR (Guaranteed Bit Rate) IE, same wire shape as MBR.
func NewGBR(ulKbps, dlKbps uint64) *IE {
	return New(TypeGBR, marshalBitRatePair(ulKbps, dlKbps))
}

// GBR decodes uplink/downlink bit rates (kbps) from a GBR IE.
func (i *IE) GBR() (ulKbps, dlKbps uint64, err error) {
	if i.Type != TypeGBR {
		return 0, 0, ErrWrongType
	}
	return unmarshalBitRatePair(i.Payload)
}

func marshalBitRatePair(ul, dl uint64) []byte {
	buf := make([]byte, 10)
	put40(buf[0:5], ul)
	put40(buf[5:10], dl)
	return buf
}

func unmarshalBitRatePair(b []byte) (ul, dl uint64, err error) {
	if len(b) != 10 {
		return 0, 0, ErrInvalidLength
	}
	return get40(b[0:5]), get40(b[5:10]), nil
}

func put40(b []byte, v uint64) {
	for i := 0; i < 5; i++ {
		b[4-i] = byte(v >> uint(8*i))
	}
}

func get40(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// NewNetworkInstance builds a Network Instance IE from a DNS-label string.
func NewNetworkInstance(s string) *IE {
	return New(TypeNetworkInstance, []byte(s))
}

// NetworkInstance decodes a Network Instance IE.
func (i *IE) NetworkInstance() (string, error) {
	if i.Type != TypeNetworkInstance {
		return "", ErrWrongType
	}
	return string(i.Payload), nil
}

// NewQFI builds a QFI (QoS Flow Identifier) IE (6-bit value).
func NewQFI(v uint8) *IE {
	return New(TypeQFI, []byte{v & 0x3F})
}

// QFI decodes a QFI IE.
func (i *IE) QFI() (uint8, error) {
	if i.Type != TypeQFI {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return i.Payload[0] & 0x3F, nil
}

// SNSSAI is the decoded form of an S-NSSAI IE.
type SNSSAI struct {
	SST uint8
	SD  []byte // 3 bytes when present
}

// NewSNSSAI builds an S-NSSAI IE. sd may be nil to omit the optional
// Slice Differentiator.
func NewSNSSAI(sst uint8, sd []byte) *IE {
	body := []byte{sst}
	body = append(body, sd...)
	return New(TypeSNSSAI, body)
}

// SNSSAI decodes an S-NSSAI IE.
func (i *IE) SNSSAI() (SNSSAI, error) {
	if i.Type != TypeSNSSAI {
		return SNSSAI{}, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return SNSSAI{}, ErrInvalidLength
	}
	s := SNSSAI{SST: i.Payload[0]}
	if len(i.Payload) >= 4 {
		s.SD = append([]byte(nil), i.Payload[1:4]...)
	}
	return s, nil
}

// NewRATType builds a RAT Type IE.
func NewRATType(v uint8) *IE { return New(TypeRATType, []byte{v}) }

// RATType decodes a RAT Type IE.
func (i *IE) RATType() (uint8, error) {
	if i.Type != TypeRATType {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return i.Payload[0], nil
}

// PDUSessionTypeValue enumerates the PDU Session Type IE's value.
type PDUSessionTypeValue uint8

const (
	PDUSessionTypeIPv4   PDUSessionTypeValue = 1
	PDUSessionTypeIPv6   PDUSessionTypeValue = 2
	PDUSessionTypeIPv4v6 PDUSessionTypeValue = 3
	PDUSessionTypeEthernet PDUSessionTypeValue = 4
	PDUSessionTypeUnstructured PDUSessionTypeValue = 5
)

// NewPDUSessionType builds a PDU Session Type IE.
func NewPDUSessionType(v PDUSessionTypeValue) *IE {
	return New(TypePDUSessionType, []byte{byte(v) & 0x07})
}

// PDUSessionType decodes a PDU Session Type IE.
func (i *IE) PDUSessionType() (PDUSessionTypeValue, error) {
	if i.Type != TypePDUSessionType {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return PDUSessionTypeValue(i.Payload[0] & 0x07), nil
}

// MeasurementMethod bit flags.
type MeasurementMethod uint8

const (
	MeasurementMethodDuration MeasurementMethod = 1 << 0
	MeasurementMethodVolume   MeasurementMethod = 1 << 1
	MeasurementMethodEvent    MeasurementMethod = 1 << 2
)

// NewMeasurementMethod builds a Measurement Method IE from OR'd flags.
func NewMeasurementMethod(flags MeasurementMethod) *IE {
	return New(TypeMeasurementMethod, []byte{byte(flags)})
}

// MeasurementMethod decodes a Measurement Method IE's flags.
func (i *IE) MeasurementMethod() (MeasurementMethod, error) {
	if i.Type != TypeMeasurementMethod {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return MeasurementMethod(i.Payload[0]), nil
}

// ReportingTriggers is a 3-octet bitmask of report trigger conditions.
type ReportingTriggers uint32

// NewReportingTriggers builds a Reporting Triggers IE from its 24-bit flags.
func NewReportingTriggers(flags ReportingTriggers) *IE {
	buf := make([]byte, 3)
	buf[0] = byte(flags >> 16)
	buf[1] = byte(flags >> 8)
	buf[2] = byte(flags)
	return New(TypeReportingTriggers, buf)
}

// ReportingTriggers decodes a Reporting Triggers IE.
func (i *IE) ReportingTriggers() (ReportingTriggers, error) {
	if i.Type != TypeReportingTriggers {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 3 {
		return 0, ErrInvalidLength
	}
	return ReportingTriggers(uint32(i.Payload[0])<<16 | uint32(i.Payload[1])<<8 | uint32(i.Payload[2])), nil
}

// UsageReportTrigger is a bitmask of why a usage report was generated.
type UsageReportTrigger uint32

// NewUsageReportTrigger builds a Usage Report Trigger IE from its 24-bit flags.
func NewUsageReportTrigger(flags UsageReportTrigger) *IE {
	buf := make([]byte, 3)
	buf[0] = byte(flags >> 16)
	buf[1] = byte(flags >> 8)
	buf[2] = byte(flags)
	return New(TypeUsageReportTrigger, buf)
}

// UsageReportTrigger decodes a Usage Report Trigger IE.
func (i *IE) UsageReportTrigger() (UsageReportTrigger, error) {
	if i.Type != TypeUsageReportTrigger {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 3 {
		return 0, ErrInvalidLength
	}
	return UsageReportTrigger(uint32(i.Payload[0])<<16 | uint32(i.Payload[1])<<8 | uint32(i.Payload[2])), nil
}

// NewDurationMeasurement builds a Duration Measurement IE (seconds).
func NewDurationMeasurement(d time.Duration) *IE {
	return newUint32IE(TypeDurationMeasurement, uint32(d.Seconds()))
}

// DurationMeasurement decodes a Duration Measurement IE.
func (i *IE) DurationMeasurement() (time.Duration, error) {
	v, err := i.uint32Value(TypeDurationMeasurement)
	return time.Duration(v) * time.Second, err
}

// NewTimeThreshold builds a Time Threshold IE (seconds).
func NewTimeThreshold(d time.Duration) *IE {
	return newUint32IE(TypeTimeThreshold, uint32(d.Seconds()))
}

// TimeThreshold decodes a Time Threshold IE.
func (i *IE) TimeThreshold() (time.Duration, error) {
	v, err := i.uint32Value(TypeTimeThreshold)
	return time.Duration(v) * time.Second, err
}

// NewTimeQuota builds a Time Quota IE (seconds).
func NewTimeQuota(d time.Duration) *IE {
	return newUint32IE(TypeTimeQuota, uint32(d.Seconds()))
}

// TimeQuota decodes a Time Quota IE.
func (i *IE) TimeQuota() (time.Duration, error) {
	v, err := i.uint32Value(TypeTimeQuota)
	return time.Duration(v) * time.Second, err
}

// NewQuotaHoldingTime builds a Quota Holding Time IE (seconds).
func NewQuotaHoldingTime(d time.Duration) *IE {
	return newUint32IE(TypeQuotaHoldingTime, uint32(d.Seconds()))
}

// QuotaHoldingTime decodes a Quota Holding Time IE.
func (i *IE) QuotaHoldingTime() (time.Duration, error) {
	v, err := i.uint32Value(TypeQuotaHoldingTime)
	return time.Duration(v) * time.Second, err
}

func newNTPTimeIE(t Type, when time.Time) *IE {
	return newUint32IE(t, ntptime.FromUnix(when))
}

func (i *IE) ntpTimeValue(want Type) (time.Time, error) {
	v, err := i.uint32Value(want)
	if err != nil {
		return time.Time{}, err
	}
	return ntptime.ToUnix(v), nil
}

// NewTimeOfFirstPacket builds a Time of First Packet IE.
func NewTimeOfFirstPacket(t time.Time) *IE { return newNTPTimeIE(TypeTimeOfFirstPacket, t) }

// TimeOfFirstPacket decodes a Time of First Packet IE.
func (i *IE) TimeOfFirstPacket() (time.Time, error) { return i.ntpTimeValue(TypeTimeOfFirstPacket) }

// NewTimeOfLastPacket builds a Time of Last Packet IE.
func NewTimeOfLastPacket(t time.Time) *IE { return newNTPTimeIE(TypeTimeOfLastPacket, t) }

// TimeOfLastPacket decodes a Time of Last Packet IE.
func (i *IE) TimeOfLastPacket() (time.Time, error) { return i.ntpTimeValue(TypeTimeOfLastPacket) }

// NewStartTime builds a Start Time IE.
func NewStartTime(t time.Time) *IE { return newNTPTimeIE(TypeStartTime, t) }

// StartTime decodes a Start Time IE.
func (i *IE) StartTime() (time.Time, error) { return i.ntpTimeValue(TypeStartTime) }

// NewEndTime builds an End Time IE.
func NewEndTime(t time.Time) *IE { return newNTPTimeIE(TypeEndTime, t) }

// EndTime decodes an End Time IE.
func (i *IE) EndTime() (time.Time, error) { return i.ntpTimeValue(TypeEndTime) }

// ApplyAction is a bitmask of forwarding actions a FAR applies.
type ApplyAction uint16

const (
	ApplyActionDrop    ApplyAction = 1 << 0
	ApplyActionForward ApplyAction = 1 << 1
	ApplyActionBuffer  ApplyAction = 1 << 2
	ApplyActionNotifyCP ApplyAction = 1 << 3
	ApplyActionDuplicate ApplyAction = 1 << 4
)

// NewApplyAction builds an Apply Action IE.
func NewApplyAction(flags ApplyAction) *IE {
	return New(TypeApplyAction, []byte{byte(flags)})
}

// ApplyAction decodes an Apply Action IE.
func (i *IE) ApplyAction() (ApplyAction, error) {
	if i.Type != TypeApplyAction {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return ApplyAction(i.Payload[0]), nil
}

// OuterHeaderRemovalDescription enumerates which outer header a UPF
// strips before forwarding. Values outside the named set are preserved
// rather than rejected: OuterHeaderRemoval returns the raw byte alongside
// the typed value, per spec.md's forward-compatibility requirement for
// enum IEs.
type OuterHeaderRemovalDescription uint8

const (
	OuterHeaderRemovalGTPUUDPIPv4 OuterHeaderRemovalDescription = 0
	OuterHeaderRemovalGTPUUDPIPv6 OuterHeaderRemovalDescription = 1
	OuterHeaderRemovalUDPIPv4     OuterHeaderRemovalDescription = 2
	OuterHeaderRemovalUDPIPv6     OuterHeaderRemovalDescription = 3
)

// NewOuterHeaderRemoval builds an Outer Header Removal IE.
func NewOuterHeaderRemoval(d OuterHeaderRemovalDescription) *IE {
	return New(TypeOuterHeaderRemoval, []byte{byte(d)})
}

// OuterHeaderRemoval decodes an Outer Header Removal IE. The raw byte is
// always returned alongside the typed value so callers can detect values
// 3GPP has reserved for later releases.
func (i *IE) OuterHeaderRemoval() (desc OuterHeaderRemovalDescription, raw uint8, err error) {
	if i.Type != TypeOuterHeaderRemoval {
		return 0, 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, 0, ErrInvalidLength
	}
	return OuterHeaderRemovalDescription(i.Payload[0]), i.Payload[0], nil
}

// NewOffendingIE builds an Offending IE, carrying the type code of the
// mandatory IE a rejected message was missing.
func NewOffendingIE(t Type) *IE {
	return newUint16IE(TypeOffendingIE, uint16(t))
}

// OffendingIE decodes the type code carried by an Offending IE.
func (i *IE) OffendingIE() (Type, error) {
	v, err := i.uint16Value(TypeOffendingIE)
	return Type(v), err
}

// SDFFilter carries a raw IPFilterRule flow description string; the
// surrounding bit-flag byte 3GPP defines for SDF Filter (FD, TTC, SPI,
// FL, BID) is collapsed here to "is a flow description present" since
// this module does not model TTC/SPI/BID/FL sub-fields.
type SDFFilter struct {
	FlowDescription string
}

// NewSDFFilter builds an SDF Filter IE carrying only a flow description.
func NewSDFFilter(flowDescription string) *IE {
	body := []byte{0x01, 0x00} // flags: FD present; spare
	ln := make([]byte, 2)
	binary.BigEndian.PutUint16(ln, uint16(len(flowDescription)))
	body = append(body, ln...)
	body = append(body, []byte(flowDescription)...)
	return New(TypeSDFFilter, body)
}

// SDFFilter decodes an SDF Filter IE's flow description, if present.
func (i *IE) SDFFilter() (SDFFilter, error) {
	if i.Type != TypeSDFFilter {
		return SDFFilter{}, ErrWrongType
	}
	if len(i.Payload) < 2 {
		return SDFFilter{}, ErrInvalidLength
	}
	flags := i.Payload[0]
	if flags&0x01 == 0 {
		return SDFFilter{}, ErrFieldNotPresent
	}
	if len(i.Payload) < 4 {
		return SDFFilter{}, ErrInvalidLength
	}
	fdLen := int(binary.BigEndian.Uint16(i.Payload[2:4]))
	if len(i.Payload) < 4+fdLen {
		return SDFFilter{}, fmt.Errorf("%w: SDF filter declares %d-byte flow description, have %d", ErrInvalidLength, fdLen, len(i.Payload)-4)
	}
	return SDFFilter{FlowDescription: string(i.Payload[4 : 4+fdLen])}, nil
}

// ReportType is a bitmask of why a Node Report Request was sent.
type ReportType uint8

const (
	ReportTypeDLDR ReportType = 1 << 0 // Downlink Data Report
	ReportTypeUSAR ReportType = 1 << 1 // Usage Report
	ReportTypeERIR ReportType = 1 << 2 // Error Indication Report
	ReportTypeUPIR ReportType = 1 << 3 // User Plane Inactivity Report
)

// NewReportType builds a Report Type IE from OR'd flags.
func NewReportType(flags ReportType) *IE {
	return New(TypeReportType, []byte{byte(flags)})
}

// ReportType decodes a Report Type IE's flags.
func (i *IE) ReportType() (ReportType, error) {
	if i.Type != TypeReportType {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return ReportType(i.Payload[0]), nil
}

// NodeReportType is a bitmask carried in a Node Report Request.
type NodeReportType uint8

const (
	NodeReportTypeUPFR NodeReportType = 1 << 0 // User Plane Path Failure Report
)

// NewNodeReportType builds a Node Report Type IE from OR'd flags.
func NewNodeReportType(flags NodeReportType) *IE {
	return New(TypeNodeReportType, []byte{byte(flags)})
}

// NodeReportType decodes a Node Report Type IE's flags.
func (i *IE) NodeReportType() (NodeReportType, error) {
	if i.Type != TypeNodeReportType {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return NodeReportType(i.Payload[0]), nil
}

// UPFunctionFeatures is a bitmask of UPF-supported optional features,
// carried as a variable-length octet string; this module models the
// first two octets (the features 3GPP assigns lowest-numbered bits to)
// and preserves any additional octets verbatim on round-trip.
type UPFunctionFeatures struct {
	Supported uint16
	Extra     []byte
}

// NewUPFunctionFeatures builds a UP Function Features IE.
func NewUPFunctionFeatures(supported uint16) *IE {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, supported)
	return New(TypeUPFunctionFeatures, buf)
}

// UPFunctionFeatures decodes a UP Function Features IE.
func (i *IE) UPFunctionFeatures() (UPFunctionFeatures, error) {
	if i.Type != TypeUPFunctionFeatures {
		return UPFunctionFeatures{}, ErrWrongType
	}
	if len(i.Payload) < 2 {
		return UPFunctionFeatures{}, ErrInvalidLength
	}
	out := UPFunctionFeatures{Supported: binary.LittleEndian.Uint16(i.Payload[:2])}
	if len(i.Payload) > 2 {
		out.Extra = i.Payload[2:]
	}
	return out, nil
}

// NewCPFunctionFeatures builds a CP Function Features IE from an octet
// of OR'd feature flags.
func NewCPFunctionFeatures(supported uint8) *IE {
	return New(TypeCPFunctionFeatures, []byte{supported})
}

// CPFunctionFeatures decodes a CP Function Features IE.
func (i *IE) CPFunctionFeatures() (uint8, error) {
	if i.Type != TypeCPFunctionFeatures {
		return 0, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return 0, ErrInvalidLength
	}
	return i.Payload[0], nil
}
