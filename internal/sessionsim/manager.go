package sessionsim

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"pfcp-core/internal/config"
	"pfcp-core/internal/pfcperr"
	"pfcp-core/internal/pfcpconn"
	"pfcp-core/internal/stats"
	"pfcp-core/pkg/ie"
	"pfcp-core/pkg/message"
	"pfcp-core/pkg/types"
)

// missingIEName extracts the IE name Validate() appended to
// pfcperr.ErrMissingMandatoryIE (e.g. "cp f-seid" from "pfcp: missing
// mandatory IE: cp f-seid"), falling back to the full error text for
// anything else Validate() might return.
func missingIEName(err error) string {
	prefix := pfcperr.ErrMissingMandatoryIE.Error() + ": "
	if name, ok := strings.CutPrefix(err.Error(), prefix); ok {
		return name
	}
	return err.Error()
}

// recordResponseCause decodes a response's Cause IE and tallies it,
// counting anything other than Request Accepted as a failure for name.
func recordResponseCause(collector *stats.Collector, name string, cause *ie.IE) {
	if cause == nil {
		return
	}
	c, err := cause.Cause()
	if err != nil {
		return
	}
	collector.RecordCause(name, c)
}

// Manager orchestrates a PFCP session replay: it drives a pfcpconn.Conn
// through a sequence of captured requests, rewriting node identity,
// SEIDs, and UE IPs so the same capture can be driven repeatedly from a
// clean local session table.
type Manager struct {
	cfg      *config.Config
	conn     *pfcpconn.Conn
	modifier *Modifier
	seidAlloc *SEIDAllocator
	ipPool   *UEIPPool
	stats    *stats.Collector

	byOriginalCPSEID     map[uint64]*types.SessionInfo
	byOriginalRemoteSEID map[uint64]*types.SessionInfo
	byLocalSEID          map[uint64]*types.SessionInfo
	mu                   sync.RWMutex

	originalSEIDMappings map[uint64]uint64
}

// NewManager creates a session manager driving conn.
func NewManager(cfg *config.Config, conn *pfcpconn.Conn, statsCollector *stats.Collector) (*Manager, error) {
	nodeIP := net.ParseIP(cfg.Local.Address)
	seidAlloc := NewSEIDAllocator(cfg.Session.SEIDStrategy, cfg.Session.SEIDStart)

	ipPool, err := NewUEIPPool(cfg.Session.UEIPPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create UE IP pool: %w", err)
	}

	return &Manager{
		cfg:                  cfg,
		conn:                 conn,
		modifier:             NewModifier(nodeIP, cfg.Session.StripIPv6),
		seidAlloc:            seidAlloc,
		ipPool:               ipPool,
		stats:                statsCollector,
		byOriginalCPSEID:     make(map[uint64]*types.SessionInfo),
		byOriginalRemoteSEID: make(map[uint64]*types.SessionInfo),
		byLocalSEID:          make(map[uint64]*types.SessionInfo),
		originalSEIDMappings: make(map[uint64]uint64),
	}, nil
}

// SetSEIDMappings registers the original CP SEID -> remote SEID mappings
// extracted from Session Establishment Response messages in a pcap.
func (m *Manager) SetSEIDMappings(mappings []types.SEIDMapping) {
	for _, mapping := range mappings {
		m.originalSEIDMappings[mapping.OriginalCPSEID] = mapping.OriginalRemoteSEID
	}
}

// Replay processes all captured PFCP messages in order against the live
// UPF this Manager's connection targets.
func (m *Manager) Replay(ctx context.Context, messages []types.RawPFCPMessage) error {
	interval := time.Duration(m.cfg.Timing.MessageIntervalMs) * time.Millisecond

	for i, raw := range messages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := message.Parse(raw.Data)
		if err != nil {
			log.WithError(err).WithField("index", i).Warn("failed to parse captured PFCP message, skipping")
			continue
		}
		if v, ok := msg.(message.Validatable); ok {
			if err := v.Validate(); err != nil {
				ieName := missingIEName(err)
				m.stats.RecordIEValidationFailure(ieName)
				log.WithError(err).WithFields(log.Fields{
					"index":    i,
					"msg_type": message.MessageTypeName(msg.MessageType()),
				}).Warn("captured message failed mandatory-IE validation, skipping")
				continue
			}
		}

		if err := m.processMessage(ctx, msg); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"index":    i,
				"msg_type": message.MessageTypeName(msg.MessageType()),
			}).Error("failed to replay message")
		}

		if interval > 0 && i < len(messages)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}
	}

	return nil
}

func (m *Manager) processMessage(ctx context.Context, msg message.Message) error {
	switch req := msg.(type) {
	case *message.AssociationSetupRequest:
		return m.handleAssociationSetup(ctx, req)
	case *message.SessionEstablishmentRequest:
		return m.handleSessionEstablishment(ctx, req)
	case *message.SessionModificationRequest:
		return m.handleSessionModification(ctx, req)
	case *message.SessionDeletionRequest:
		return m.handleSessionDeletion(ctx, req)
	case *message.HeartbeatRequest:
		return m.handleHeartbeat(ctx, req)
	default:
		log.WithField("msg_type", message.MessageTypeName(msg.MessageType())).Debug("skipping unhandled captured message type")
		return nil
	}
}

func (m *Manager) handleAssociationSetup(ctx context.Context, req *message.AssociationSetupRequest) error {
	if !m.cfg.Association.Enabled {
		return nil
	}
	m.modifier.RewriteNodeID(&req.NodeID)

	const name = "AssociationSetupRequest"
	m.stats.RecordSent(name)
	start := time.Now()
	resp, err := m.conn.SendRequest(ctx, req)
	if err != nil {
		m.stats.RecordTimeout(name)
		return fmt.Errorf("association setup failed: %w", err)
	}
	m.stats.RecordReceived("AssociationSetupResponse")
	if assocResp, ok := resp.(*message.AssociationSetupResponse); ok {
		recordResponseCause(m.stats, name, assocResp.Cause)
	}
	m.stats.RecordSuccess(name, time.Since(start))
	return nil
}

func (m *Manager) handleSessionEstablishment(ctx context.Context, req *message.SessionEstablishmentRequest) error {
	originalCPSEID, err := ExtractCPSEID(req.CPFSEID)
	if err != nil {
		log.WithError(err).Warn("could not extract original CP SEID, using 0")
		originalCPSEID = 0
	}

	localSEID, err := m.seidAlloc.Allocate()
	if err != nil {
		m.stats.RecordSessionFailed()
		return fmt.Errorf("failed to allocate SEID: %w", err)
	}
	ueIP, err := m.ipPool.Allocate()
	if err != nil {
		m.seidAlloc.Release(localSEID)
		m.stats.RecordSessionFailed()
		return fmt.Errorf("failed to allocate UE IP: %w", err)
	}

	session := &types.SessionInfo{
		OriginalCPSEID: originalCPSEID,
		LocalSEID:      localSEID,
		UEIP:           ueIP,
		State:          "establishing",
		CreatedAt:      time.Now(),
	}

	m.mu.Lock()
	m.byOriginalCPSEID[originalCPSEID] = session
	m.byLocalSEID[localSEID] = session
	if origRemote, ok := m.originalSEIDMappings[originalCPSEID]; ok {
		session.OriginalRemoteSEID = origRemote
		m.byOriginalRemoteSEID[origRemote] = session
	}
	m.mu.Unlock()

	req.SetSEID(0)
	cpfseid, err := m.modifier.RewriteCPFSEID(req.CPFSEID, localSEID)
	if err != nil {
		return err
	}
	req.CPFSEID = cpfseid
	m.modifier.RewriteNodeID(&req.NodeID)
	m.modifier.RewriteUEIPInPDRs(req.CreatePDR, ueIP)

	const name = "SessionEstablishmentRequest"
	m.stats.RecordSent(name)
	start := time.Now()
	respMsg, err := m.conn.SendRequest(ctx, req)
	if err != nil {
		m.stats.RecordTimeout(name)
		m.stats.RecordSessionFailed()
		session.State = "failed"
		return fmt.Errorf("session establishment timeout: %w", err)
	}
	m.stats.RecordReceived("SessionEstablishmentResponse")

	resp, ok := respMsg.(*message.SessionEstablishmentResponse)
	if !ok {
		m.stats.RecordFailure(name)
		m.stats.RecordSessionFailed()
		return fmt.Errorf("unexpected response type: %T", respMsg)
	}
	recordResponseCause(m.stats, name, resp.Cause)
	if resp.Cause != nil {
		if cause, cerr := resp.Cause.Cause(); cerr == nil && cause != ie.CauseRequestAccepted {
			m.stats.RecordSessionFailed()
			session.State = "failed"
			return fmt.Errorf("session establishment rejected with cause %d", cause)
		}
	}

	remoteSEID, err := ExtractRemoteSEID(resp.UPFSEID)
	if err != nil {
		m.stats.RecordFailure(name)
		m.stats.RecordSessionFailed()
		return fmt.Errorf("failed to extract remote SEID: %w", err)
	}

	m.mu.Lock()
	session.RemoteSEID = remoteSEID
	session.State = "established"
	m.mu.Unlock()

	m.stats.RecordSuccess(name, time.Since(start))
	m.stats.RecordSessionEstablished()
	return nil
}

func (m *Manager) handleSessionModification(ctx context.Context, req *message.SessionModificationRequest) error {
	originalRemoteSEID := req.SEID()
	session := m.findSessionByOriginalRemoteSEID(originalRemoteSEID)
	if session == nil {
		return fmt.Errorf("no session found for original remote SEID %d", originalRemoteSEID)
	}

	req.SetSEID(session.RemoteSEID)
	m.modifier.RewriteUEIPInPDRs(req.CreatePDR, session.UEIP)
	m.modifier.RewriteUEIPInPDRs(req.UpdatePDR, session.UEIP)

	const name = "SessionModificationRequest"
	m.stats.RecordSent(name)
	start := time.Now()
	respMsg, err := m.conn.SendRequest(ctx, req)
	if err != nil {
		m.stats.RecordTimeout(name)
		return fmt.Errorf("session modification timeout: %w", err)
	}
	m.stats.RecordReceived("SessionModificationResponse")
	if modResp, ok := respMsg.(*message.SessionModificationResponse); ok {
		recordResponseCause(m.stats, name, modResp.Cause)
	}
	m.stats.RecordSuccess(name, time.Since(start))
	m.stats.RecordSessionModified()
	return nil
}

func (m *Manager) handleSessionDeletion(ctx context.Context, req *message.SessionDeletionRequest) error {
	originalRemoteSEID := req.SEID()
	session := m.findSessionByOriginalRemoteSEID(originalRemoteSEID)
	if session == nil {
		return fmt.Errorf("no session found for original remote SEID %d", originalRemoteSEID)
	}

	req.SetSEID(session.RemoteSEID)

	const name = "SessionDeletionRequest"
	m.stats.RecordSent(name)
	start := time.Now()
	respMsg, err := m.conn.SendRequest(ctx, req)
	if err != nil {
		m.stats.RecordTimeout(name)
		return fmt.Errorf("session deletion timeout: %w", err)
	}
	m.stats.RecordReceived("SessionDeletionResponse")
	if delResp, ok := respMsg.(*message.SessionDeletionResponse); ok {
		recordResponseCause(m.stats, name, delResp.Cause)
	}
	m.stats.RecordSuccess(name, time.Since(start))
	m.stats.RecordSessionDeleted()

	m.seidAlloc.Release(session.LocalSEID)
	if session.UEIP != nil {
		m.ipPool.Release(session.UEIP)
	}
	m.mu.Lock()
	session.State = "deleted"
	m.mu.Unlock()
	return nil
}

func (m *Manager) handleHeartbeat(ctx context.Context, req *message.HeartbeatRequest) error {
	const name = "HeartbeatRequest"
	m.stats.RecordSent(name)
	start := time.Now()
	_, err := m.conn.SendRequest(ctx, req)
	if err != nil {
		m.stats.RecordTimeout(name)
		return fmt.Errorf("heartbeat timeout: %w", err)
	}
	m.stats.RecordReceived("HeartbeatResponse")
	m.stats.RecordSuccess(name, time.Since(start))
	return nil
}

// CleanupSessions sends a Session Deletion Request for every session
// still marked established.
func (m *Manager) CleanupSessions(ctx context.Context) {
	m.mu.RLock()
	var active []*types.SessionInfo
	for _, s := range m.byLocalSEID {
		if s.State == "established" {
			active = append(active, s)
		}
	}
	m.mu.RUnlock()
	if len(active) == 0 {
		return
	}
	log.WithField("count", len(active)).Info("cleaning up active sessions")

	for _, session := range active {
		select {
		case <-ctx.Done():
			return
		default:
		}
		req := message.NewSessionDeletionRequest(session.RemoteSEID, 0)
		if _, err := m.conn.SendRequest(ctx, req); err != nil {
			log.WithError(err).WithField("local_seid", session.LocalSEID).Warn("cleanup deletion failed")
			continue
		}
		m.stats.RecordSessionDeleted()
		m.mu.Lock()
		session.State = "deleted"
		m.mu.Unlock()
	}
}

func (m *Manager) findSessionByOriginalRemoteSEID(seid uint64) *types.SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if session, ok := m.byOriginalRemoteSEID[seid]; ok {
		return session
	}
	if session, ok := m.byOriginalCPSEID[seid]; ok {
		return session
	}
	return nil
}

// ActiveSessionCount returns the number of currently established sessions.
func (m *Manager) ActiveSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, s := range m.byLocalSEID {
		if s.State == "established" {
			count++
		}
	}
	return count
}
