package message

import (
	"fmt"

	"pfcp-core/internal/pfcp/header"
	"pfcp-core/internal/pfcperr"
	"pfcp-core/pkg/ie"
)

func newSessionHeader(t uint8, seid uint64, seq uint32) header.Header {
	h := header.Header{Version: header.Version, MessageType: t}
	h.SetSEID(seid)
	h.SetSequenceNumber(seq)
	return h
}

// SessionEstablishmentRequest creates a PFCP session on the UP function.
// NodeID and the CP's F-SEID are mandatory; at least one Create PDR and
// one Create FAR are required to make the session forward any traffic,
// though this module only enforces the two that are unconditionally so.
type SessionEstablishmentRequest struct {
	base
	NodeID         *ie.IE
	CPFSEID        *ie.IE
	CreatePDR      []*ie.IE
	CreateFAR      []*ie.IE
	CreateURR      []*ie.IE
	CreateQER      []*ie.IE
	CreateBAR      *ie.IE
	PDUSessionType *ie.IE
	Extra          []*ie.IE
}

// NewSessionEstablishmentRequest builds a Session Establishment Request.
// The local SEID in the header is 0 until the peer allocates one; it is
// the CP F-SEID (carried as an IE), not the header SEID, that identifies
// the session during establishment.
func NewSessionEstablishmentRequest(seq uint32, nodeID, cpfseid *ie.IE, optional ...*ie.IE) *SessionEstablishmentRequest {
	m := &SessionEstablishmentRequest{NodeID: nodeID, CPFSEID: cpfseid}
	m.Header = newSessionHeader(MsgTypeSessionEstablishmentRequest, 0, seq)
	m.applyOptional(optional)
	return m
}

func (m *SessionEstablishmentRequest) applyOptional(ies []*ie.IE) {
	for _, i := range ies {
		switch i.Type {
		case ie.TypeCreatePDR:
			m.CreatePDR = append(m.CreatePDR, i)
		case ie.TypeCreateFAR:
			m.CreateFAR = append(m.CreateFAR, i)
		case ie.TypeCreateURR:
			m.CreateURR = append(m.CreateURR, i)
		case ie.TypeCreateQER:
			m.CreateQER = append(m.CreateQER, i)
		case ie.TypeCreateBAR:
			m.CreateBAR = i
		case ie.TypePDUSessionType:
			m.PDUSessionType = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
}

func (m *SessionEstablishmentRequest) IEs() []*ie.IE {
	out := []*ie.IE{m.NodeID, m.CPFSEID}
	out = append(out, m.CreatePDR...)
	out = append(out, m.CreateFAR...)
	out = append(out, m.CreateURR...)
	out = append(out, m.CreateQER...)
	if m.CreateBAR != nil {
		out = append(out, m.CreateBAR)
	}
	if m.PDUSessionType != nil {
		out = append(out, m.PDUSessionType)
	}
	return append(out, m.Extra...)
}
func (m *SessionEstablishmentRequest) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionEstablishmentRequest) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionEstablishmentRequest) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.CPFSEID == nil {
		return fmt.Errorf("%w: cp f-seid", pfcperr.ErrMissingMandatoryIE)
	}
	if len(m.CreatePDR) == 0 {
		return fmt.Errorf("%w: create pdr", pfcperr.ErrMissingMandatoryIE)
	}
	if len(m.CreateFAR) == 0 {
		return fmt.Errorf("%w: create far", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionEstablishmentRequest(h header.Header, ies []*ie.IE) Message {
	m := &SessionEstablishmentRequest{}
	m.Header = h
	var rest []*ie.IE
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeFSEID:
			m.CPFSEID = i
		default:
			rest = append(rest, i)
		}
	}
	m.applyOptional(rest)
	return m
}

func init() { register(MsgTypeSessionEstablishmentRequest, parseSessionEstablishmentRequest) }

// SessionEstablishmentResponse answers a Session Establishment Request.
// NodeID and Cause are mandatory; the UP F-SEID is conditional (present
// only when Cause indicates acceptance), so it is modeled as optional
// here and left for the caller to require when building a success reply.
type SessionEstablishmentResponse struct {
	base
	NodeID     *ie.IE
	Cause      *ie.IE
	UPFSEID    *ie.IE
	CreatedPDR []*ie.IE
	Extra      []*ie.IE
}

// NewSessionEstablishmentResponse builds a Session Establishment
// Response with localSEID as the header SEID. When replying to a CP
// function that is the SEID the CP allocated (test/mockupf sends it and
// internal/pcapreplay reads it that way); the UP function's own SEID
// travels in the optional F-SEID IE.
func NewSessionEstablishmentResponse(localSEID uint64, seq uint32, nodeID, cause *ie.IE, optional ...*ie.IE) *SessionEstablishmentResponse {
	m := &SessionEstablishmentResponse{NodeID: nodeID, Cause: cause}
	m.Header = newSessionHeader(MsgTypeSessionEstablishmentResponse, localSEID, seq)
	m.applyOptional(optional)
	return m
}

func (m *SessionEstablishmentResponse) applyOptional(ies []*ie.IE) {
	for _, i := range ies {
		switch i.Type {
		case ie.TypeFSEID:
			m.UPFSEID = i
		case ie.TypeCreatedPDR:
			m.CreatedPDR = append(m.CreatedPDR, i)
		default:
			m.Extra = append(m.Extra, i)
		}
	}
}

func (m *SessionEstablishmentResponse) IEs() []*ie.IE {
	out := []*ie.IE{m.NodeID, m.Cause}
	if m.UPFSEID != nil {
		out = append(out, m.UPFSEID)
	}
	out = append(out, m.CreatedPDR...)
	return append(out, m.Extra...)
}
func (m *SessionEstablishmentResponse) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionEstablishmentResponse) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionEstablishmentResponse) Validate() error {
	if m.NodeID == nil {
		return fmt.Errorf("%w: node id", pfcperr.ErrMissingMandatoryIE)
	}
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionEstablishmentResponse(h header.Header, ies []*ie.IE) Message {
	m := &SessionEstablishmentResponse{}
	m.Header = h
	var rest []*ie.IE
	for _, i := range ies {
		switch i.Type {
		case ie.TypeNodeID:
			m.NodeID = i
		case ie.TypeCause:
			m.Cause = i
		default:
			rest = append(rest, i)
		}
	}
	m.applyOptional(rest)
	return m
}

func init() { register(MsgTypeSessionEstablishmentResponse, parseSessionEstablishmentResponse) }

// SessionModificationRequest updates the rules installed for a session
// already identified by the header's SEID; no IE in this message is
// unconditionally mandatory.
type SessionModificationRequest struct {
	base
	CPFSEID   *ie.IE // present only when the CP is reallocating its own F-SEID
	CreatePDR []*ie.IE
	CreateFAR []*ie.IE
	CreateURR []*ie.IE
	CreateQER []*ie.IE
	UpdatePDR []*ie.IE
	UpdateFAR []*ie.IE
	UpdateURR []*ie.IE
	UpdateQER []*ie.IE
	RemovePDR []*ie.IE
	RemoveFAR []*ie.IE
	RemoveURR []*ie.IE
	RemoveQER []*ie.IE
	Extra     []*ie.IE
}

// NewSessionModificationRequest builds a Session Modification Request
// against the session identified by seid.
func NewSessionModificationRequest(seid uint64, seq uint32, ies ...*ie.IE) *SessionModificationRequest {
	m := &SessionModificationRequest{}
	m.Header = newSessionHeader(MsgTypeSessionModificationRequest, seid, seq)
	m.applyAll(ies)
	return m
}

func (m *SessionModificationRequest) applyAll(ies []*ie.IE) {
	for _, i := range ies {
		switch i.Type {
		case ie.TypeFSEID:
			m.CPFSEID = i
		case ie.TypeCreatePDR:
			m.CreatePDR = append(m.CreatePDR, i)
		case ie.TypeCreateFAR:
			m.CreateFAR = append(m.CreateFAR, i)
		case ie.TypeCreateURR:
			m.CreateURR = append(m.CreateURR, i)
		case ie.TypeCreateQER:
			m.CreateQER = append(m.CreateQER, i)
		case ie.TypeUpdatePDR:
			m.UpdatePDR = append(m.UpdatePDR, i)
		case ie.TypeUpdateFAR:
			m.UpdateFAR = append(m.UpdateFAR, i)
		case ie.TypeUpdateURR:
			m.UpdateURR = append(m.UpdateURR, i)
		case ie.TypeUpdateQER:
			m.UpdateQER = append(m.UpdateQER, i)
		case ie.TypeRemovePDR:
			m.RemovePDR = append(m.RemovePDR, i)
		case ie.TypeRemoveFAR:
			m.RemoveFAR = append(m.RemoveFAR, i)
		case ie.TypeRemoveURR:
			m.RemoveURR = append(m.RemoveURR, i)
		case ie.TypeRemoveQER:
			m.RemoveQER = append(m.RemoveQER, i)
		default:
			m.Extra = append(m.Extra, i)
		}
	}
}

func (m *SessionModificationRequest) IEs() []*ie.IE {
	var out []*ie.IE
	if m.CPFSEID != nil {
		out = append(out, m.CPFSEID)
	}
	for _, group := range [][]*ie.IE{
		m.CreatePDR, m.CreateFAR, m.CreateURR, m.CreateQER,
		m.UpdatePDR, m.UpdateFAR, m.UpdateURR, m.UpdateQER,
		m.RemovePDR, m.RemoveFAR, m.RemoveURR, m.RemoveQER,
	} {
		out = append(out, group...)
	}
	return append(out, m.Extra...)
}
func (m *SessionModificationRequest) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionModificationRequest) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func parseSessionModificationRequest(h header.Header, ies []*ie.IE) Message {
	m := &SessionModificationRequest{}
	m.Header = h
	m.applyAll(ies)
	return m
}

func init() { register(MsgTypeSessionModificationRequest, parseSessionModificationRequest) }

// SessionModificationResponse answers a Session Modification Request;
// Cause is the only unconditionally mandatory IE.
type SessionModificationResponse struct {
	base
	Cause         *ie.IE
	CreatedPDR    []*ie.IE
	UsageReportSMR []*ie.IE
	Extra         []*ie.IE
}

// NewSessionModificationResponse builds a Session Modification Response.
func NewSessionModificationResponse(seid uint64, seq uint32, cause *ie.IE, optional ...*ie.IE) *SessionModificationResponse {
	m := &SessionModificationResponse{Cause: cause}
	m.Header = newSessionHeader(MsgTypeSessionModificationResponse, seid, seq)
	m.applyOptional(optional)
	return m
}

func (m *SessionModificationResponse) applyOptional(ies []*ie.IE) {
	for _, i := range ies {
		switch i.Type {
		case ie.TypeCreatedPDR:
			m.CreatedPDR = append(m.CreatedPDR, i)
		case ie.TypeUsageReportSMR:
			m.UsageReportSMR = append(m.UsageReportSMR, i)
		default:
			m.Extra = append(m.Extra, i)
		}
	}
}

func (m *SessionModificationResponse) IEs() []*ie.IE {
	out := []*ie.IE{m.Cause}
	out = append(out, m.CreatedPDR...)
	out = append(out, m.UsageReportSMR...)
	return append(out, m.Extra...)
}
func (m *SessionModificationResponse) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionModificationResponse) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionModificationResponse) Validate() error {
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionModificationResponse(h header.Header, ies []*ie.IE) Message {
	m := &SessionModificationResponse{}
	m.Header = h
	var rest []*ie.IE
	for _, i := range ies {
		if i.Type == ie.TypeCause && m.Cause == nil {
			m.Cause = i
			continue
		}
		rest = append(rest, i)
	}
	m.applyOptional(rest)
	return m
}

func init() { register(MsgTypeSessionModificationResponse, parseSessionModificationResponse) }

// SessionDeletionRequest tears down the session identified by the
// header's SEID; it carries no IEs of its own.
type SessionDeletionRequest struct {
	base
}

// NewSessionDeletionRequest builds a Session Deletion Request.
func NewSessionDeletionRequest(seid uint64, seq uint32) *SessionDeletionRequest {
	m := &SessionDeletionRequest{}
	m.Header = newSessionHeader(MsgTypeSessionDeletionRequest, seid, seq)
	return m
}

func (m *SessionDeletionRequest) IEs() []*ie.IE          { return nil }
func (m *SessionDeletionRequest) MarshalLen() int          { return marshalLen(m.Header, nil) }
func (m *SessionDeletionRequest) MarshalTo(b []byte) error { return marshalTo(b, m.Header, nil) }

func parseSessionDeletionRequest(h header.Header, ies []*ie.IE) Message {
	return &SessionDeletionRequest{base{h}}
}

func init() { register(MsgTypeSessionDeletionRequest, parseSessionDeletionRequest) }

// SessionDeletionResponse answers a Session Deletion Request, reporting
// final usage for every URR the session carried.
type SessionDeletionResponse struct {
	base
	Cause         *ie.IE
	UsageReportSDR []*ie.IE
	Extra         []*ie.IE
}

// NewSessionDeletionResponse builds a Session Deletion Response.
func NewSessionDeletionResponse(seid uint64, seq uint32, cause *ie.IE, usageReports ...*ie.IE) *SessionDeletionResponse {
	m := &SessionDeletionResponse{Cause: cause, UsageReportSDR: usageReports}
	m.Header = newSessionHeader(MsgTypeSessionDeletionResponse, seid, seq)
	return m
}

func (m *SessionDeletionResponse) IEs() []*ie.IE {
	return append(append([]*ie.IE{m.Cause}, m.UsageReportSDR...), m.Extra...)
}
func (m *SessionDeletionResponse) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionDeletionResponse) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionDeletionResponse) Validate() error {
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionDeletionResponse(h header.Header, ies []*ie.IE) Message {
	m := &SessionDeletionResponse{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeCause:
			m.Cause = i
		case ie.TypeUsageReportSDR:
			m.UsageReportSDR = append(m.UsageReportSDR, i)
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeSessionDeletionResponse, parseSessionDeletionResponse) }

// SessionReportRequest notifies the CP of a session-level event: usage
// reports, a downlink data arrival, or an error indication from a peer
// GTP-U endpoint. ReportType is the only unconditionally mandatory IE.
type SessionReportRequest struct {
	base
	ReportType           *ie.IE
	UsageReportSRR       []*ie.IE
	DownlinkDataReport   *ie.IE
	ErrorIndicationReport *ie.IE
	Extra                []*ie.IE
}

// NewSessionReportRequest builds a Session Report Request.
func NewSessionReportRequest(seid uint64, seq uint32, reportType *ie.IE, optional ...*ie.IE) *SessionReportRequest {
	m := &SessionReportRequest{ReportType: reportType}
	m.Header = newSessionHeader(MsgTypeSessionReportRequest, seid, seq)
	m.applyOptional(optional)
	return m
}

func (m *SessionReportRequest) applyOptional(ies []*ie.IE) {
	for _, i := range ies {
		switch i.Type {
		case ie.TypeUsageReportSRR:
			m.UsageReportSRR = append(m.UsageReportSRR, i)
		case ie.TypeDownlinkDataReport:
			m.DownlinkDataReport = i
		case ie.TypeErrorIndicationReport:
			m.ErrorIndicationReport = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
}

func (m *SessionReportRequest) IEs() []*ie.IE {
	out := []*ie.IE{m.ReportType}
	out = append(out, m.UsageReportSRR...)
	if m.DownlinkDataReport != nil {
		out = append(out, m.DownlinkDataReport)
	}
	if m.ErrorIndicationReport != nil {
		out = append(out, m.ErrorIndicationReport)
	}
	return append(out, m.Extra...)
}
func (m *SessionReportRequest) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionReportRequest) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionReportRequest) Validate() error {
	if m.ReportType == nil {
		return fmt.Errorf("%w: report type", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionReportRequest(h header.Header, ies []*ie.IE) Message {
	m := &SessionReportRequest{}
	m.Header = h
	var rest []*ie.IE
	for _, i := range ies {
		if i.Type == ie.TypeReportType && m.ReportType == nil {
			m.ReportType = i
			continue
		}
		rest = append(rest, i)
	}
	m.applyOptional(rest)
	return m
}

func init() { register(MsgTypeSessionReportRequest, parseSessionReportRequest) }

// SessionReportResponse answers a Session Report Request; Cause is
// mandatory, OffendingIE is present only when Cause reports a
// mandatory-IE failure the CP needs to diagnose.
type SessionReportResponse struct {
	base
	Cause       *ie.IE
	OffendingIE *ie.IE
	Extra       []*ie.IE
}

// NewSessionReportResponse builds a Session Report Response.
func NewSessionReportResponse(seid uint64, seq uint32, cause *ie.IE, optional ...*ie.IE) *SessionReportResponse {
	m := &SessionReportResponse{Cause: cause}
	m.Header = newSessionHeader(MsgTypeSessionReportResponse, seid, seq)
	for _, i := range optional {
		if i.Type == ie.TypeOffendingIE {
			m.OffendingIE = i
			continue
		}
		m.Extra = append(m.Extra, i)
	}
	return m
}

func (m *SessionReportResponse) IEs() []*ie.IE {
	out := []*ie.IE{m.Cause}
	if m.OffendingIE != nil {
		out = append(out, m.OffendingIE)
	}
	return append(out, m.Extra...)
}
func (m *SessionReportResponse) MarshalLen() int { return marshalLen(m.Header, m.IEs()) }
func (m *SessionReportResponse) MarshalTo(b []byte) error {
	return marshalTo(b, m.Header, m.IEs())
}

func (m *SessionReportResponse) Validate() error {
	if m.Cause == nil {
		return fmt.Errorf("%w: cause", pfcperr.ErrMissingMandatoryIE)
	}
	return nil
}

func parseSessionReportResponse(h header.Header, ies []*ie.IE) Message {
	m := &SessionReportResponse{}
	m.Header = h
	for _, i := range ies {
		switch i.Type {
		case ie.TypeCause:
			m.Cause = i
		case ie.TypeOffendingIE:
			m.OffendingIE = i
		default:
			m.Extra = append(m.Extra, i)
		}
	}
	return m
}

func init() { register(MsgTypeSessionReportResponse, parseSessionReportResponse) }
