package ie

import (
	"encoding/binary"
	"net"
)

// fseid flag bits.
const (
	fseidFlagV4 = 1 << 0
	fseidFlagV6 = 1 << 1
)

// FSEID is the decoded form of an F-SEID IE: an SEID paired with the IP
// address(es) of the node that assigned it.
type FSEID struct {
	SEID        uint64
	IPv4Address net.IP
	IPv6Address net.IP
}

// NewFSEID builds an F-SEID IE. v4/v6 may each be nil; at least one
// should be non-nil for the IE to be meaningful on the wire.
func NewFSEID(seid uint64, v4, v6 net.IP) *IE {
	var flags uint8
	body := make([]byte, 9)
	binary.BigEndian.PutUint64(body[1:9], seid)
	if v4 != nil {
		if ip4 := v4.To4(); ip4 != nil {
			flags |= fseidFlagV4
			body = append(body, ip4...)
		}
	}
	if v6 != nil {
		if ip6 := v6.To16(); ip6 != nil && v6.To4() == nil {
			flags |= fseidFlagV6
			body = append(body, ip6...)
		}
	}
	body[0] = flags
	return New(TypeFSEID, body)
}

// FSEID decodes an F-SEID IE, enforcing that exactly the trailing fields
// its flag byte names are present.
func (i *IE) FSEID() (FSEID, error) {
	if i.Type != TypeFSEID {
		return FSEID{}, ErrWrongType
	}
	if len(i.Payload) < 9 {
		return FSEID{}, ErrInvalidLength
	}
	flags := i.Payload[0]
	seid := binary.BigEndian.Uint64(i.Payload[1:9])
	rest := i.Payload[9:]

	var out FSEID
	out.SEID = seid
	if flags&fseidFlagV4 != 0 {
		if len(rest) < 4 {
			return FSEID{}, ErrInvalidLength
		}
		out.IPv4Address = net.IP(append([]byte(nil), rest[:4]...))
		rest = rest[4:]
	}
	if flags&fseidFlagV6 != 0 {
		if len(rest) < 16 {
			return FSEID{}, ErrInvalidLength
		}
		out.IPv6Address = net.IP(append([]byte(nil), rest[:16]...))
		rest = rest[16:]
	}
	if len(rest) != 0 {
		return FSEID{}, ErrInvalidLength
	}
	return out, nil
}

// f-teid flag bits, per spec.md §4.3: bit3=V4, bit2=V6, bit1=CH, bit0=CHID.
const (
	fteidFlagCHID = 1 << 0
	fteidFlagCH   = 1 << 1
	fteidFlagV6   = 1 << 2
	fteidFlagV4   = 1 << 3
)

// FTEID is the decoded form of an F-TEID IE.
type FTEID struct {
	Choose      bool // CH: defer TEID selection to the peer
	ChooseID    uint8
	HasChooseID bool
	TEID        uint32
	IPv4Address net.IP
	IPv6Address net.IP
}

// NewFTEID builds a concrete F-TEID IE carrying an explicit TEID and
// address(es).
func NewFTEID(teid uint32, v4, v6 net.IP) *IE {
	var flags uint8
	body := make([]byte, 5)
	binary.BigEndian.PutUint32(body[1:5], teid)
	if v4 != nil {
		if ip4 := v4.To4(); ip4 != nil {
			flags |= fteidFlagV4
			body = append(body, ip4...)
		}
	}
	if v6 != nil {
		if ip6 := v6.To16(); ip6 != nil && v6.To4() == nil {
			flags |= fteidFlagV6
			body = append(body, ip6...)
		}
	}
	body[0] = flags
	return New(TypeFTEID, body)
}

// NewFTEIDChoose builds an F-TEID IE that lets the peer choose the TEID
// and address (CH flag set). The TEID field is still emitted as required
// by the fixed-payload layout, zeroed since it carries no meaning here.
func NewFTEIDChoose() *IE {
	body := make([]byte, 5)
	body[0] = fteidFlagCH
	return New(TypeFTEID, body)
}

// FTEID decodes an F-TEID IE, enforcing that exactly the trailing fields
// its flag byte names are present.
func (i *IE) FTEID() (FTEID, error) {
	if i.Type != TypeFTEID {
		return FTEID{}, ErrWrongType
	}
	if len(i.Payload) < 5 {
		return FTEID{}, ErrInvalidLength
	}
	flags := i.Payload[0]
	out := FTEID{
		Choose: flags&fteidFlagCH != 0,
		TEID:   binary.BigEndian.Uint32(i.Payload[1:5]),
	}
	rest := i.Payload[5:]

	if flags&fteidFlagV4 != 0 {
		if len(rest) < 4 {
			return FTEID{}, ErrInvalidLength
		}
		out.IPv4Address = net.IP(append([]byte(nil), rest[:4]...))
		rest = rest[4:]
	}
	if flags&fteidFlagV6 != 0 {
		if len(rest) < 16 {
			return FTEID{}, ErrInvalidLength
		}
		out.IPv6Address = net.IP(append([]byte(nil), rest[:16]...))
		rest = rest[16:]
	}
	if flags&fteidFlagCHID != 0 {
		if len(rest) < 1 {
			return FTEID{}, ErrInvalidLength
		}
		out.HasChooseID = true
		out.ChooseID = rest[0]
		rest = rest[1:]
	}
	if len(rest) != 0 {
		return FTEID{}, ErrInvalidLength
	}
	return out, nil
}

// ue ip address flag bits.
const (
	ueIPFlagV6 = 1 << 0
	ueIPFlagV4 = 1 << 1
)

// UEIPAddress is the decoded form of a UE IP Address IE.
type UEIPAddress struct {
	IPv4Address net.IP
	IPv6Address net.IP
}

// NewUEIPAddress builds a UE IP Address IE.
func NewUEIPAddress(v4, v6 net.IP) *IE {
	var flags uint8
	var body []byte
	if v4 != nil {
		if ip4 := v4.To4(); ip4 != nil {
			flags |= ueIPFlagV4
			body = append(body, ip4...)
		}
	}
	if v6 != nil {
		if ip6 := v6.To16(); ip6 != nil && v6.To4() == nil {
			flags |= ueIPFlagV6
			body = append(body, ip6...)
		}
	}
	return New(TypeUEIPAddress, append([]byte{flags}, body...))
}

// UEIPAddress decodes a UE IP Address IE.
func (i *IE) UEIPAddress() (UEIPAddress, error) {
	if i.Type != TypeUEIPAddress {
		return UEIPAddress{}, ErrWrongType
	}
	if len(i.Payload) < 1 {
		return UEIPAddress{}, ErrInvalidLength
	}
	flags := i.Payload[0]
	rest := i.Payload[1:]
	var out UEIPAddress
	if flags&ueIPFlagV4 != 0 {
		if len(rest) < 4 {
			return UEIPAddress{}, ErrInvalidLength
		}
		out.IPv4Address = net.IP(append([]byte(nil), rest[:4]...))
		rest = rest[4:]
	}
	if flags&ueIPFlagV6 != 0 {
		if len(rest) < 16 {
			return UEIPAddress{}, ErrInvalidLength
		}
		out.IPv6Address = net.IP(append([]byte(nil), rest[:16]...))
		rest = rest[16:]
	}
	if len(rest) != 0 {
		return UEIPAddress{}, ErrInvalidLength
	}
	return out, nil
}

// volume flag bits: TOVOL, ULVOL, DLVOL each gate an 8-byte counter, in
// that order, matching the layout shared by Volume Threshold/Quota/Measurement.
const (
	volumeFlagTOVOL = 1 << 0
	volumeFlagULVOL = 1 << 1
	volumeFlagDLVOL = 1 << 2
)

// Volume is the decoded form of the shared Volume Threshold/Quota/Measurement
// body shape.
type Volume struct {
	Total      *uint64
	Uplink     *uint64
	Downlink   *uint64
}

func marshalVolume(v Volume) []byte {
	var flags uint8
	body := []byte{0}
	if v.Total != nil {
		flags |= volumeFlagTOVOL
		body = appendUint64(body, *v.Total)
	}
	if v.Uplink != nil {
		flags |= volumeFlagULVOL
		body = appendUint64(body, *v.Uplink)
	}
	if v.Downlink != nil {
		flags |= volumeFlagDLVOL
		body = appendUint64(body, *v.Downlink)
	}
	body[0] = flags
	return body
}

func appendUint64(b []byte, v uint64) []byte {
	tmp := make([]byte, 8)
	binary.BigEndian.PutUint64(tmp, v)
	return append(b, tmp...)
}

func unmarshalVolume(payload []byte) (Volume, error) {
	if len(payload) < 1 {
		return Volume{}, ErrInvalidLength
	}
	flags := payload[0]
	rest := payload[1:]
	var out Volume
	readField := func(set bool) (*uint64, error) {
		if !set {
			return nil, nil
		}
		if len(rest) < 8 {
			return nil, ErrInvalidLength
		}
		v := binary.BigEndian.Uint64(rest[:8])
		rest = rest[8:]
		return &v, nil
	}
	var err error
	if out.Total, err = readField(flags&volumeFlagTOVOL != 0); err != nil {
		return Volume{}, err
	}
	if out.Uplink, err = readField(flags&volumeFlagULVOL != 0); err != nil {
		return Volume{}, err
	}
	if out.Downlink, err = readField(flags&volumeFlagDLVOL != 0); err != nil {
		return Volume{}, err
	}
	if len(rest) != 0 {
		return Volume{}, ErrInvalidLength
	}
	return out, nil
}

// NewVolumeThreshold builds a Volume Threshold IE.
func NewVolumeThreshold(v Volume) *IE { return New(TypeVolumeThreshold, marshalVolume(v)) }

// VolumeThreshold decodes a Volume Threshold IE.
func (i *IE) VolumeThreshold() (Volume, error) {
	if i.Type != TypeVolumeThreshold {
		return Volume{}, ErrWrongType
	}
	return unmarshalVolume(i.Payload)
}

// NewVolumeQuota builds a Volume Quota IE.
func NewVolumeQuota(v Volume) *IE { return New(TypeVolumeQuota, marshalVolume(v)) }

// VolumeQuota decodes a Volume Quota IE.
func (i *IE) VolumeQuota() (Volume, error) {
	if i.Type != TypeVolumeQuota {
		return Volume{}, ErrWrongType
	}
	return unmarshalVolume(i.Payload)
}

// NewVolumeMeasurement builds a Volume Measurement IE.
func NewVolumeMeasurement(v Volume) *IE { return New(TypeVolumeMeasurement, marshalVolume(v)) }

// VolumeMeasurement decodes a Volume Measurement IE.
func (i *IE) VolumeMeasurement() (Volume, error) {
	if i.Type != TypeVolumeMeasurement {
		return Volume{}, ErrWrongType
	}
	return unmarshalVolume(i.Payload)
}
