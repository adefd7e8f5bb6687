package message

import (
	"fmt"

	"pfcp-core/internal/pfcp/header"
	"pfcp-core/internal/pfcperr"
	"pfcp-core/pkg/ie"
)

func newHeader(t uint8, seq uint32) header.Header {
	h := header.Header{Version: header.Version, MessageType: t}
	h.SetSequenceNumber(seq)
	return h
}

// HeartbeatRequest carries the sender's restart epoch so the peer can
// detect a node restart across a liveness check.
type HeartbeatRequest struct {
	base
	RecoveryTimeStamp *ie.IE
	Extra             []*ie.IE
}

// NewHeartbeatRequest builds a Heartbeat Request for sequence number seq.
func NewHeartbeatRequest(seq uint32, recoveryTimeStamp *ie.IE) *HeartbeatRequest {
	m := &HeartbeatRequest{RecoveryTimeStamp: recoveryTimeStamp}
	m.Header = newHeader(MsgTypeHeartbeatRequest, seq)
	return m
}

func (m *HeartbeatRequest) IEs() []*ie.IE {
	return append([]*ie.IE{m.RecoveryTimeStamp}, m.Extra...)
}
func (m *HeartbeatRequest) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *HeartbeatRequest) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

// Validate checks the Heartbeat Request carries its one mandatory IE.
func (m *HeartbeatRequest) Validate() error {
	if m.RecoveryTimeStamp == nil {
		return fmt.Errorf("%w: recovery time stamp", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseHeartbeatRequest(h header.Header, ies []*ie.IE) Message {
	m := &HeartbeatRequest{}
	m.Header = h
	for _, i := range ies {
		if i.Type == ie.TypeRecoveryTimeStamp && m.RecoveryTimeStamp == nil {
			m.RecoveryTimeStamp = i
			continue
		}
		m.Extra = append(m.Extra, i)
	}
	return m
}

func init() { register(MsgTypeHeartbeatRequest, parseHeartbeatRequest) }

// HeartbeatResponse echoes the peer's restart epoch back.
type HeartbeatResponse struct {
	base
	RecoveryTimeStamp *ie.IE
	Extra             []*ie.IE
}

// NewHeartbeatResponse builds a Heartbeat Response for the request's sequence.
func NewHeartbeatResponse(seq uint32, recoveryTimeStamp *ie.IE) *HeartbeatResponse {
	m := &HeartbeatResponse{RecoveryTimeStamp: recoveryTimeStamp}
	m.Header = newHeader(MsgTypeHeartbeatResponse, seq)
	return m
}

func (m *HeartbeatResponse) IEs() []*ie.IE {
	return append([]*ie.IE{m.RecoveryTimeStamp}, m.Extra...)
}
func (m *HeartbeatResponse) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *HeartbeatResponse) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *HeartbeatResponse) Validate() error {
	if m.RecoveryTimeStamp == nil {
		return fmt.Errorf("%w: recovery time stamp", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseHeartbeatResponse(h header.Header, ies []*ie.IE) Message {
	m := &HeartbeatResponse{}
	m.Header = h
	for _, i := range ies {
		if i.Type == ie.TypeRecoveryTimeStamp && m.RecoveryTimeStamp == nil {
			m.RecoveryTimeStamp = i
			continue
		}
		m.Extra = append(m.Extra, i)
	}
	return m
}

func init() { register(MsgTypeHeartbeatResponse, parseHeartbeatResponse) }

// VersionNotSupportedResponse carries no IEs; its entire purpose is to
// echo the offending request's sequence number with a header whose
// version the peer itself understands.
type VersionNotSupportedResponse struct {
	base
}

// NewVersionNotSupportedResponse builds the fixed reply to an
// unsupported-version request, echoing its sequence number.
func NewVersionNotSupportedResponse(seq uint32) *VersionNotSupportedResponse {
	m := &VersionNotSupportedResponse{}
	m.Header = newHeader(MsgTypeVersionNotSupportedResponse, seq)
	return m
}

func (m *VersionNotSupportedResponse) IEs() []*ie.IE        { return nil }
func (m *VersionNotSupportedResponse) MarshalLen() int          { return marshalLen(m.Header, nil) }
func (m *VersionNotSupportedResponse) MarshalTo(b []byte) error { return marshalTo(b, m.Header, nil) }

func parseVersionNotSupportedResponse(h header.Header, ies []*ie.IE) Message {
	return &VersionNotSupportedResponse{base{h}}
}

func init() { register(MsgTypeVersionNotSupportedResponse, parseVersionNotSupportedResponse) }

// PFDManagementRequest carries Application IDs' PFDs updates. This module
// does not model the nested Application ID's PFDs / PFD Context grouped
// IEs individually; they round-trip through IEList unexamined.
type PFDManagementRequest struct {
	base
	IEList []*ie.IE
}

// NewPFDManagementRequest builds a PFD Management Request from raw IEs.
func NewPFDManagementRequest(seq uint32, ies ...*ie.IE) *PFDManagementRequest {
	m := &PFDManagementRequest{IEList: ies}
	m.Header = newHeader(MsgTypePFDManagementRequest, seq)
	return m
}

func (m *PFDManagementRequest) IEs() []*ie.IE          { return m.IEList }
func (m *PFDManagementRequest) MarshalLen() int          { return marshalLen(m.Header, m.IEList) }
func (m *PFDManagementRequest) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEList) }

func parsePFDManagementRequest(h header.Header, ies []*ie.IE) Message {
	return &PFDManagementRequest{base{h}, ies}
}

func init() { register(MsgTypePFDManagementRequest, parsePFDManagementRequest) }

// PFDManagementResponse reports whether the PFD update was accepted.
type PFDManagementResponse struct {
	base
	Cause *ie.IE
	Extra []*ie.IE
}

// NewPFDManagementResponse builds a PFD Management Response.
func NewPFDManagementResponse(seq uint32, cause *ie.IE) *PFDManagementResponse {
	m := &PFDManagementResponse{Cause: cause}
	m.Header = newHeader(MsgTypePFDManagementResponse, seq)
	return m
}

func (m *PFDManagementResponse) IEs() []*ie.IE {
	return append([]*ie.IE{m.Cause}, m.Extra...)
}
func (m *PFDManagementResponse) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *PFDManagementResponse) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *PFDManagementResponse) Validate() error {
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parsePFDManagementResponse(h header.Header, ies []*ie.IE) Message {
	m := &PFDManagementResponse{}
	m.Header = h
	for _, i := range ies {
		if i.Type == ie.TypeCause && m.Cause == nil {
			m.Cause = i
			continue
		}
		m.Extra = append(m.Extra, i)
	}
	return m
}

func init() { register(MsgTypePFDManagementResponse, parsePFDManagementResponse) }

// AssociationSetupRequest establishes a PFCP association between a CP
// and UP function. NodeID and RecoveryTimeStamp are mandatory.
type AssociationSetupRequest struct {
	base
	NodeID             *ie.IE
	RecoveryTimeStamp  *ie.IE
	UPFunctionFeatures *ie.IE
	CPFunctionFeatures *ie.IE
	Extra              []*ie.IE
}

// NewAssociationSetupRequest builds an Association Setup Request.
func NewAssociationSetupRequest(seq uint32, nodeID, recoveryTimeStamp *ie.IE, optional ...*ie.IE) *AssociationSetupRequest {
	m := &AssociationSetupRequest{NodeID: nodeID, RecoveryTimeStamp: recoveryTimeStamp}
	m.Header = newHeader(MsgTypeAssociationSetupRequest, seq)
	m.applyOptional(optional)
	return m
}

func (m *AssociationSetupRequest) applyOptional(ies []*ie.IE) {
	for _, i := range ies {
		switch i.Type {
		case ie.TypeUPFunctionFeatures:
			m.UPFunctionFeatures = i
		case ie.TypeCPFunctionFeatures:
			m.CPFunctionFeatures = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
}

func (m *AssociationSetupRequest) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.RecoveryTimeStamp, m.UPFunctionFeatures, m.CPFunctionFeatures}, m.Extra...)
}
func (m *AssociationSetupRequest) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *AssociationSetupRequest) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *AssociationSetupRequest) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.RecoveryTimeStamp == nil {
		return fmt.Errorf("%w: recovery time stamp", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseAssociationSetupRequest(h header.Header, ies []*ie.IE) Message {
	m := &AssociationSetupRequest{}
	m.Header = h
	var rest []*ie.IE
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeRecoveryTimeStamp:
			m.RecoveryTimeStamp = i
		default:
			rest = append(rest, i)
		}
	}
	m.applyOptional(rest)
	return m
}

func init() { register(MsgTypeAssociationSetupRequest, parseAssociationSetupRequest) }

// AssociationSetupResponse answers an Association Setup Request.
type AssociationSetupResponse struct {
	base
	NodeID             *ie.IE
	Cause              *ie.IE
	RecoveryTimeStamp  *ie.IE
	UPFunctionFeatures *ie.IE
	CPFunctionFeatures *ie.IE
	Extra              []*ie.IE
}

// NewAssociationSetupResponse builds an Association Setup Response.
func NewAssociationSetupResponse(seq uint32, nodeID, cause, recoveryTimeStamp *ie.IE, optional ...*ie.IE) *AssociationSetupResponse {
	m := &AssociationSetupResponse{NodeID: nodeID, Cause: cause, RecoveryTimeStamp: recoveryTimeStamp}
	m.Header = newHeader(MsgTypeAssociationSetupResponse, seq)
	m.applyOptional(optional)
	return m
}

func (m *AssociationSetupResponse) applyOptional(ies []*ie.IE) {
	for _, i := range ies {
		switch i.Type {
		case ie.TypeUPFunctionFeatures:
			m.UPFunctionFeatures = i
		case ie.TypeCPFunctionFeatures:
			m.CPFunctionFeatures = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
}

func (m *AssociationSetupResponse) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.Cause, m.RecoveryTimeStamp, m.UPFunctionFeatures, m.CPFunctionFeatures}, m.Extra...)
}
func (m *AssociationSetupResponse) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *AssociationSetupResponse) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *AssociationSetupResponse) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	if m.RecoveryTimeStamp == nil {
		return fmt.Errorf("%w: recovery time stamp", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseAssociationSetupResponse(h header.Header, ies []*ie.IE) Message {
	m := &AssociationSetupResponse{}
	m.Header = h
	var rest []*ie.IE
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeCause:
			m.Cause = i
		case ie.TypeRecoveryTimeStamp:
			m.RecoveryTimeStamp = i
		default:
			rest = append(rest, i)
		}
	}
	m.applyOptional(rest)
	return m
}

func init() { register(MsgTypeAssociationSetupResponse, parseAssociationSetupResponse) }

// AssociationUpdateRequest updates a previously established association
// (feature renegotiation, graceful release request flag, ...).
type AssociationUpdateRequest struct {
	base
	NodeID             *ie.IE
	UPFunctionFeatures *ie.IE
	CPFunctionFeatures *ie.IE
	Extra              []*ie.IE
}

// NewAssociationUpdateRequest builds an Association Update Request.
func NewAssociationUpdateRequest(seq uint32, nodeID *ie.IE, optional ...*ie.IE) *AssociationUpdateRequest {
	m := &AssociationUpdateRequest{NodeID: nodeID}
	m.Header = newHeader(MsgTypeAssociationUpdateRequest, seq)
	for _, i := range optional {
		switch i.Type {
		case ie.TypeUPFunctionFeatures:
			m.UPFunctionFeatures = i
		case ie.TypeCPFunctionFeatures:
			m.CPFunctionFeatures = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func (m *AssociationUpdateRequest) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.UPFunctionFeatures, m.CPFunctionFeatures}, m.Extra...)
}
func (m *AssociationUpdateRequest) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *AssociationUpdateRequest) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *AssociationUpdateRequest) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseAssociationUpdateRequest(h header.Header, ies []*ie.IE) Message {
	m := &AssociationUpdateRequest{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeUPFunctionFeatures:
			m.UPFunctionFeatures = i
		case ie.TypeCPFunctionFeatures:
			m.CPFunctionFeatures = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeAssociationUpdateRequest, parseAssociationUpdateRequest) }

// AssociationUpdateResponse answers an Association Update Request.
type AssociationUpdateResponse struct {
	base
	NodeID *ie.IE
	Cause  *ie.IE
	Extra  []*ie.IE
}

// NewAssociationUpdateResponse builds an Association Update Response.
func NewAssociationUpdateResponse(seq uint32, nodeID, cause *ie.IE) *AssociationUpdateResponse {
	m := &AssociationUpdateResponse{NodeID: nodeID, Cause: cause}
	m.Header = newHeader(MsgTypeAssociationUpdateResponse, seq)
	return m
}

func (m *AssociationUpdateResponse) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.Cause}, m.Extra...)
}
func (m *AssociationUpdateResponse) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *AssociationUpdateResponse) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *AssociationUpdateResponse) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseAssociationUpdateResponse(h header.Header, ies []*ie.IE) Message {
	m := &AssociationUpdateResponse{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeCause:
			m.Cause = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeAssociationUpdateResponse, parseAssociationUpdateResponse) }

// AssociationReleaseRequest tears down a previously established
// association; NodeID is the only mandatory IE.
type AssociationReleaseRequest struct {
	base
	NodeID *ie.IE
	Extra  []*ie.IE
}

// NewAssociationReleaseRequest builds an Association Release Request.
func NewAssociationReleaseRequest(seq uint32, nodeID *ie.IE) *AssociationReleaseRequest {
	m := &AssociationReleaseRequest{NodeID: nodeID}
	m.Header = newHeader(MsgTypeAssociationReleaseRequest, seq)
	return m
}

func (m *AssociationReleaseRequest) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID}, m.Extra...)
}
func (m *AssociationReleaseRequest) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *AssociationReleaseRequest) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *AssociationReleaseRequest) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseAssociationReleaseRequest(h header.Header, ies []*ie.IE) Message {
	m := &AssociationReleaseRequest{}
	m.Header = h
	for _, i := range ies {
		if i.Type == ie.TypeNodeID && m.NodeID == nil {
			m.NodeID = i
			continue
		}
		m.Extra = append(m.Extra, i)
	}
	return m
}

func init() { register(MsgTypeAssociationReleaseRequest, parseAssociationReleaseRequest) }

// AssociationReleaseResponse answers an Association Release Request.
type AssociationReleaseResponse struct {
	base
	NodeID *ie.IE
	Cause  *ie.IE
	Extra  []*ie.IE
}

// NewAssociationReleaseResponse builds an Association Release Response.
func NewAssociationReleaseResponse(seq uint32, nodeID, cause *ie.IE) *AssociationReleaseResponse {
	m := &AssociationReleaseResponse{NodeID: nodeID, Cause: cause}
	m.Header = newHeader(MsgTypeAssociationReleaseResponse, seq)
	return m
}

func (m *AssociationReleaseResponse) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.Cause}, m.Extra...)
}
func (m *AssociationReleaseResponse) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *AssociationReleaseResponse) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *AssociationReleaseResponse) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseAssociationReleaseResponse(h header.Header, ies []*ie.IE) Message {
	m := &AssociationReleaseResponse{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeCause:
			m.Cause = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeAssociationReleaseResponse, parseAssociationReleaseResponse) }

// NodeReportRequest notifies the peer of a node-level condition such as a
// User Plane Path Failure.
type NodeReportRequest struct {
	base
	NodeID         *ie.IE
	NodeReportType *ie.IE
	Extra          []*ie.IE
}

// NewNodeReportRequest builds a Node Report Request.
func NewNodeReportRequest(seq uint32, nodeID, nodeReportType *ie.IE, optional ...*ie.IE) *NodeReportRequest {
	m := &NodeReportRequest{NodeID: nodeID, NodeReportType: nodeReportType, Extra: optional}
	m.Header = newHeader(MsgTypeNodeReportRequest, seq)
	return m
}

func (m *NodeReportRequest) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.NodeReportType}, m.Extra...)
}
func (m *NodeReportRequest) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *NodeReportRequest) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *NodeReportRequest) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.NodeReportType == nil {
		return fmt.Errorf("%w: node report type", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseNodeReportRequest(h header.Header, ies []*ie.IE) Message {
	m := &NodeReportRequest{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeNodeReportType:
			m.NodeReportType = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeNodeReportRequest, parseNodeReportRequest) }

// NodeReportResponse answers a Node Report Request.
type NodeReportResponse struct {
	base
	NodeID *ie.IE
	Cause  *ie.IE
	Extra  []*ie.IE
}

// NewNodeReportResponse builds a Node Report Response.
func NewNodeReportResponse(seq uint32, nodeID, cause *ie.IE) *NodeReportResponse {
	m := &NodeReportResponse{NodeID: nodeID, Cause: cause}
	m.Header = newHeader(MsgTypeNodeReportResponse, seq)
	return m
}

func (m *NodeReportResponse) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.Cause}, m.Extra...)
}
func (m *NodeReportResponse) MarshalLen() int          { return marshalLen(m.Header, m.IEs()) }
func (m *NodeReportResponse) MarshalTo(b []byte) error { return marshalTo(b, m.Header, m.IEs()) }

func (m *NodeReportResponse) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseNodeReportResponse(h header.Header, ies []*ie.IE) Message {
	m := &NodeReportResponse{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeCause:
			m.Cause = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeNodeReportResponse, parseNodeReportResponse) }

// SessionSetDeletionRequest tears down every session anchored to a given
// (failed) CP or UP function, identified by its F-QCSID set. This module
// does not model F-QCSID individually; it round-trips through Extra.
type SessionSetDeletionRequest struct {
	base
	NodeID *ie.IE
	Extra  []*ie.IE
}

// NewSessionSetDeletionRequest builds a Session Set Deletion Request.
func NewSessionSetDeletionRequest(seq uint32, nodeID *ie.IE, optional ...*ie.IE) *SessionSetDeletionRequest {
	m := &SessionSetDeletionRequest{NodeID: nodeID, Extra: optional}
	m.Header = newHeader(MsgTypeSessionSetDeletionRequest, seq)
	return m
}

func (m *SessionSetDeletionRequest) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID}, m.Extra...)
}
func (m *SessionSetDeletionRequest) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionSetDeletionRequest) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionSetDeletionRequest) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionSetDeletionRequest(h header.Header, ies []*ie.IE) Message {
	m := &SessionSetDeletionRequest{}
	m.Header = h
	for _, i := range ies {
		if i.Type == ie.TypeNodeID && m.NodeID == nil {
			m.NodeID = i
			continue
		}
		m.Extra = append(m.Extra, i)
	}
	return m
}

func init() { register(MsgTypeSessionSetDeletionRequest, parseSessionSetDeletionRequest) }

// SessionSetDeletionResponse answers a Session Set Deletion Request.
type SessionSetDeletionResponse struct {
	base
	NodeID *ie.IE
	Cause  *ie.IE
	Extra  []*ie.IE
}

// NewSessionSetDeletionResponse builds a Session Set Deletion Response.
func NewSessionSetDeletionResponse(seq uint32, nodeID, cause *ie.IE) *SessionSetDeletionResponse {
	m := &SessionSetDeletionResponse{NodeID: nodeID, Cause: cause}
	m.Header = newHeader(MsgTypeSessionSetDeletionResponse, seq)
	return m
}

func (m *SessionSetDeletionResponse) IEs() []*ie.IE {
	return append([]*ie.IE{m.NodeID, m.Cause}, m.Extra...)
}
func (m *SessionSetDeletionResponse) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionSetDeletionResponse) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionSetDeletionResponse) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionSetDeletionResponse(h header.Header, ies []*ie.IE) Message {
	m := &SessionSetDeletionResponse{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeCause:
			m.Cause = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeSessionSetDeletionResponse, parseSessionSetDeletionResponse) }
