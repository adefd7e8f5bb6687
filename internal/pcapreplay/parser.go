// Package pcapreplay extracts PFCP request datagrams from a pcap capture
// so a session simulation run can replay a real SMF's traffic pattern
// against a UPF, grounded on the teacher's internal/pcap package with
// decoding switched from go-pfcp to this module's own pkg/message.
package pcapreplay

import (
	"fmt"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	log "github.com/sirupsen/logrus"

	"pfcp-core/pkg/message"
	"pfcp-core/pkg/types"
)

// pfcpPort is PFCP's IANA-assigned UDP port (3GPP TS 29.244 §4.1).
const pfcpPort = 8805

// Parser reads pcap files and extracts PFCP request messages.
type Parser struct{}

// NewParser creates a new pcap parser.
func NewParser() *Parser { return &Parser{} }

// ParseResult contains the parsed PFCP request messages and SEID mappings
// discovered in the pcap.
type ParseResult struct {
	Messages     []types.RawPFCPMessage
	SEIDMappings []types.SEIDMapping
}

// Parse reads a pcap file and returns all PFCP request messages in order.
func (p *Parser) Parse(filename string) ([]types.RawPFCPMessage, error) {
	result, err := p.ParseWithMappings(filename)
	if err != nil {
		return nil, err
	}
	return result.Messages, nil
}

// ParseWithMappings reads a pcap file and returns request messages plus the
// CP-SEID-to-remote-SEID mappings carried in Session Establishment
// Responses, needed to correlate later Modification/Deletion requests
// that address the session by its UPF-assigned SEID.
func (p *Parser) ParseWithMappings(filename string) (*ParseResult, error) {
	handle, err := pcap.OpenOffline(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pcap file %s: %w", filename, err)
	}
	defer handle.Close()

	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
	packetSource.DecodeOptions.Lazy = true
	packetSource.DecodeOptions.NoCopy = true

	result := &ParseResult{}
	totalPackets, pfcpPackets, requestPackets := 0, 0, 0

	for packet := range packetSource.Packets() {
		totalPackets++

		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok {
			continue
		}
		if udp.DstPort != pfcpPort && udp.SrcPort != pfcpPort {
			continue
		}
		payload := udp.Payload
		if len(payload) == 0 {
			continue
		}
		pfcpPackets++

		msg, err := message.Parse(payload)
		if err != nil {
			log.WithError(err).WithField("packet", totalPackets).Warn("failed to parse PFCP message, skipping")
			continue
		}

		if resp, ok := msg.(*message.SessionEstablishmentResponse); ok && resp.UPFSEID != nil {
			if fseid, ferr := resp.UPFSEID.FSEID(); ferr == nil {
				result.SEIDMappings = append(result.SEIDMappings, types.SEIDMapping{
					OriginalCPSEID:     resp.SEID(),
					OriginalRemoteSEID: fseid.SEID,
				})
			}
		}

		if !message.IsRequest(msg.MessageType()) {
			continue
		}
		requestPackets++

		var srcIP, dstIP net.IP
		if ipv4Layer := packet.Layer(layers.LayerTypeIPv4); ipv4Layer != nil {
			ipv4, _ := ipv4Layer.(*layers.IPv4)
			srcIP, dstIP = ipv4.SrcIP, ipv4.DstIP
		} else if ipv6Layer := packet.Layer(layers.LayerTypeIPv6); ipv6Layer != nil {
			ipv6, _ := ipv6Layer.(*layers.IPv6)
			srcIP, dstIP = ipv6.SrcIP, ipv6.DstIP
		}

		dataCopy := make([]byte, len(payload))
		copy(dataCopy, payload)

		result.Messages = append(result.Messages, types.RawPFCPMessage{
			Data:      dataCopy,
			Timestamp: packet.Metadata().Timestamp,
			SrcIP:     srcIP,
			DstIP:     dstIP,
			SrcPort:   uint16(udp.SrcPort),
			DstPort:   uint16(udp.DstPort),
		})
	}

	log.WithFields(log.Fields{
		"total_packets":   totalPackets,
		"pfcp_packets":    pfcpPackets,
		"request_packets": requestPackets,
	}).Info("pcap parsing complete")

	return result, nil
}

// CountMessages returns a summary of message types found in a pcap file.
func (p *Parser) CountMessages(filename string) (map[string]int, error) {
	handle, err := pcap.OpenOffline(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open pcap file %s: %w", filename, err)
	}
	defer handle.Close()

	packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
	counts := make(map[string]int)

	for packet := range packetSource.Packets() {
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok || (udp.DstPort != pfcpPort && udp.SrcPort != pfcpPort) || len(udp.Payload) == 0 {
			continue
		}
		msg, err := message.Parse(udp.Payload)
		if err != nil {
			continue
		}
		counts[message.MessageTypeName(msg.MessageType())]++
	}

	return counts, nil
}

// ValidateHasEstablishment checks that messages contains at least one
// Session Establishment Request.
func (p *Parser) ValidateHasEstablishment(messages []types.RawPFCPMessage) error {
	for _, raw := range messages {
		msg, err := message.Parse(raw.Data)
		if err != nil {
			continue
		}
		if msg.MessageType() == message.MsgTypeSessionEstablishmentRequest {
			return nil
		}
	}
	return fmt.Errorf("pcap file does not contain any Session Establishment Request messages")
}

// HasDeletionRequests reports whether messages contains a Session
// Deletion Request.
func (p *Parser) HasDeletionRequests(messages []types.RawPFCPMessage) bool {
	for _, raw := range messages {
		msg, err := message.Parse(raw.Data)
		if err != nil {
			continue
		}
		if msg.MessageType() == message.MsgTypeSessionDeletionRequest {
			return true
		}
	}
	return false
}
