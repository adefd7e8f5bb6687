// Package sessionsim replays a sequence of captured PFCP requests against
// a live UPF, rewriting SEIDs, sequence numbers, and UE IP addresses so
// the same capture can be driven many times from a clean node identity,
// grounded on the teacher's internal/session package (Manager,
// SEIDAllocator, UEIPPool) generalised off go-pfcp onto this module's own
// pkg/message and pkg/ie.
package sessionsim

import (
	"fmt"
	"net"

	"pfcp-core/pkg/ie"
)

// Modifier rewrites captured PFCP requests to use a locally assigned
// node identity, SEID, and UE IP before they go out over the wire.
type Modifier struct {
	nodeIP    net.IP
	stripIPv6 bool
}

// NewModifier creates a Modifier that rewrites Node ID IEs to nodeIP and,
// when stripIPv6 is set, collapses dual-stack UE IP Address IEs to
// IPv4-only.
func NewModifier(nodeIP net.IP, stripIPv6 bool) *Modifier {
	return &Modifier{nodeIP: nodeIP, stripIPv6: stripIPv6}
}

func (m *Modifier) nodeID() *ie.IE {
	if m.nodeIP == nil {
		return nil
	}
	if m.nodeIP.To4() != nil {
		return ie.NewNodeID(m.nodeIP.String(), "", "")
	}
	return ie.NewNodeID("", m.nodeIP.String(), "")
}

// RewriteNodeID replaces nodeID in place with this Modifier's configured
// node identity, leaving it untouched if no node IP was configured.
func (m *Modifier) RewriteNodeID(nodeID **ie.IE) {
	if n := m.nodeID(); n != nil && *nodeID != nil {
		*nodeID = n
	}
}

// RewriteCPFSEID replaces a CP F-SEID IE's SEID field with localSEID,
// preserving the original IP family unless this Modifier has its own
// node IP configured.
func (m *Modifier) RewriteCPFSEID(fseid *ie.IE, localSEID uint64) (*ie.IE, error) {
	if fseid == nil {
		return nil, nil
	}
	var v4, v6 net.IP
	if m.nodeIP != nil {
		if m.nodeIP.To4() != nil {
			v4 = m.nodeIP
		} else {
			v6 = m.nodeIP
		}
	} else {
		decoded, err := fseid.FSEID()
		if err != nil {
			return nil, fmt.Errorf("sessionsim: decode CP F-SEID: %w", err)
		}
		v4, v6 = decoded.IPv4Address, decoded.IPv6Address
	}
	return ie.NewFSEID(localSEID, v4, v6), nil
}

// RewriteUEIPInPDRs walks a list of Create/Update PDR grouped IEs and
// replaces any UE IP Address IE found nested inside their PDI with
// newUEIP, leaving PDRs without a UE IP untouched.
func (m *Modifier) RewriteUEIPInPDRs(pdrs []*ie.IE, newUEIP net.IP) {
	if newUEIP == nil {
		return
	}
	for idx, pdr := range pdrs {
		if pdr == nil {
			continue
		}
		pdrs[idx] = m.rewriteUEIPInPDR(pdr, newUEIP)
	}
}

func (m *Modifier) rewriteUEIPInPDR(pdr *ie.IE, newUEIP net.IP) *ie.IE {
	if len(pdr.Children) == 0 {
		return pdr
	}
	newChildren := make([]*ie.IE, len(pdr.Children))
	changed := false
	for i, child := range pdr.Children {
		if child.Type == ie.TypePDI {
			rewritten, ok := m.rewriteUEIPInPDI(child, newUEIP)
			newChildren[i] = rewritten
			changed = changed || ok
			continue
		}
		newChildren[i] = child
	}
	if !changed {
		return pdr
	}
	out, err := ie.NewGrouped(pdr.Type, newChildren...)
	if err != nil {
		return pdr
	}
	return out
}

func (m *Modifier) rewriteUEIPInPDI(pdi *ie.IE, newUEIP net.IP) (*ie.IE, bool) {
	if len(pdi.Children) == 0 {
		return pdi, false
	}
	newChildren := make([]*ie.IE, len(pdi.Children))
	changed := false
	for i, child := range pdi.Children {
		if child.Type == ie.TypeUEIPAddress {
			newChildren[i] = m.rewriteUEIPAddress(child, newUEIP)
			changed = true
			continue
		}
		newChildren[i] = child
	}
	if !changed {
		return pdi, false
	}
	out, err := ie.NewGrouped(ie.TypePDI, newChildren...)
	if err != nil {
		return pdi, false
	}
	return out, true
}

func (m *Modifier) rewriteUEIPAddress(original *ie.IE, newUEIP net.IP) *ie.IE {
	decoded, err := original.UEIPAddress()
	if err != nil {
		return original
	}
	if m.stripIPv6 {
		return ie.NewUEIPAddress(newUEIP, nil)
	}
	return ie.NewUEIPAddress(newUEIP, decoded.IPv6Address)
}

// ExtractCPSEID reads the SEID carried in a CP F-SEID IE.
func ExtractCPSEID(fseid *ie.IE) (uint64, error) {
	if fseid == nil {
		return 0, fmt.Errorf("sessionsim: no CP F-SEID present")
	}
	decoded, err := fseid.FSEID()
	if err != nil {
		return 0, fmt.Errorf("sessionsim: decode CP F-SEID: %w", err)
	}
	return decoded.SEID, nil
}

// ExtractRemoteSEID reads the SEID carried in a UP F-SEID IE.
func ExtractRemoteSEID(fseid *ie.IE) (uint64, error) {
	if fseid == nil {
		return 0, fmt.Errorf("sessionsim: no UP F-SEID present")
	}
	decoded, err := fseid.FSEID()
	if err != nil {
		return 0, fmt.Errorf("sessionsim: decode UP F-SEID: %w", err)
	}
	return decoded.SEID, nil
}
