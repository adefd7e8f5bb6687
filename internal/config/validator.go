package config

import (
	"fmt"
	"net"
	"os"
	"strings"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if net.ParseIP(c.Local.Address) == nil {
		errs = append(errs, fmt.Sprintf("local.address must be a valid IP address, got %q", c.Local.Address))
	}

	if c.Local.Port <= 0 || c.Local.Port > 65535 {
		errs = append(errs, fmt.Sprintf("local.port must be between 1 and 65535, got %d", c.Local.Port))
	}

	if net.ParseIP(c.Remote.Address) == nil {
		errs = append(errs, fmt.Sprintf("remote.address must be a valid IP address, got %q", c.Remote.Address))
	}

	if c.Remote.Port <= 0 || c.Remote.Port > 65535 {
		errs = append(errs, fmt.Sprintf("remote.port must be between 1 and 65535, got %d", c.Remote.Port))
	}

	// Exactly one NodeID encoding must be configured; ie.NewNodeID's own
	// precedence (IPv4, then IPv6, then FQDN) would otherwise silently
	// pick one of several conflicting values.
	set := 0
	if c.NodeID.IPv4 != "" {
		if ip := net.ParseIP(c.NodeID.IPv4); ip == nil || ip.To4() == nil {
			errs = append(errs, fmt.Sprintf("node_id.ipv4 must be a valid IPv4 address, got %q", c.NodeID.IPv4))
		}
		set++
	}
	if c.NodeID.IPv6 != "" {
		if ip := net.ParseIP(c.NodeID.IPv6); ip == nil || ip.To4() != nil {
			errs = append(errs, fmt.Sprintf("node_id.ipv6 must be a valid IPv6 address, got %q", c.NodeID.IPv6))
		}
		set++
	}
	if c.NodeID.FQDN != "" {
		set++
	}
	if set == 0 {
		errs = append(errs, "exactly one of node_id.ipv4, node_id.ipv6, node_id.fqdn must be set, got none")
	} else if set > 1 {
		errs = append(errs, "exactly one of node_id.ipv4, node_id.ipv6, node_id.fqdn must be set, got more than one")
	}

	// PCAP file must exist
	if c.Input.PcapFile == "" {
		errs = append(errs, "input.pcap_file must be specified")
	} else if _, err := os.Stat(c.Input.PcapFile); os.IsNotExist(err) {
		errs = append(errs, fmt.Sprintf("pcap file not found: %s", c.Input.PcapFile))
	}

	// UE IP pool must be valid CIDR
	if c.Session.UEIPPool == "" {
		errs = append(errs, "session.ue_ip_pool must be specified")
	} else if _, _, err := net.ParseCIDR(c.Session.UEIPPool); err != nil {
		errs = append(errs, fmt.Sprintf("invalid UE IP pool CIDR %q: %v", c.Session.UEIPPool, err))
	}

	// SEID start must be > 0
	if c.Session.SEIDStart == 0 {
		errs = append(errs, "session.seid_start must be > 0")
	}

	// SEID strategy must be known
	if c.Session.SEIDStrategy != "sequential" && c.Session.SEIDStrategy != "random" {
		errs = append(errs, fmt.Sprintf("session.seid_strategy must be 'sequential' or 'random', got %q", c.Session.SEIDStrategy))
	}

	// Response timeout must be positive
	if c.Timing.ResponseTimeoutMs <= 0 {
		errs = append(errs, "timing.response_timeout_ms must be > 0")
	}

	// Max retries must be non-negative
	if c.Timing.MaxRetries < 0 {
		errs = append(errs, "timing.max_retries must be >= 0")
	}

	// Log level must be valid
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
