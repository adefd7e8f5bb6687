package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pfcp-core/internal/pfcpconn"
	"pfcp-core/pkg/ie"
)

// Config holds all configuration for a PFCP endpoint (either the CP or the
// UP side of the association, since this module is not specific to an
// SMF/UPF role — see NodeID/Local below).
type Config struct {
	Local       EndpointConfig    `yaml:"local"       mapstructure:"local"`
	Remote      EndpointConfig    `yaml:"remote"      mapstructure:"remote"`
	NodeID      NodeIDConfig      `yaml:"node_id"      mapstructure:"node_id"`
	Association AssociationConfig `yaml:"association" mapstructure:"association"`
	Session     SessionConfig     `yaml:"session"     mapstructure:"session"`
	Timing      TimingConfig      `yaml:"timing"      mapstructure:"timing"`
	Input       InputConfig       `yaml:"input"       mapstructure:"input"`
	Logging     LoggingConfig     `yaml:"logging"     mapstructure:"logging"`
	Stats       StatsConfig       `yaml:"stats"       mapstructure:"stats"`
}

// EndpointConfig names one side of the PFCP association: this endpoint's
// own bind address, or the peer it dials/expects traffic from.
type EndpointConfig struct {
	Address string `yaml:"address" mapstructure:"address"`
	Port    int    `yaml:"port"    mapstructure:"port"`
}

// NodeIDConfig selects which of the three NodeID IE encodings (spec.md §6,
// ie.NodeIDType) this endpoint advertises in Association/Heartbeat
// messages. Exactly one of IPv4/IPv6/FQDN should be set; IE builds the IE
// in that priority order, matching ie.NewNodeID's own precedence.
type NodeIDConfig struct {
	IPv4 string `yaml:"ipv4" mapstructure:"ipv4"`
	IPv6 string `yaml:"ipv6" mapstructure:"ipv6"`
	FQDN string `yaml:"fqdn" mapstructure:"fqdn"`
}

// IE builds the wire NodeID IE this endpoint identifies itself with.
func (n NodeIDConfig) IE() *ie.IE {
	return ie.NewNodeID(n.IPv4, n.IPv6, n.FQDN)
}

type AssociationConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

type SessionConfig struct {
	SEIDStart     uint64 `yaml:"seid_start"      mapstructure:"seid_start"`
	SEIDStrategy  string `yaml:"seid_strategy"   mapstructure:"seid_strategy"`
	UEIPPool      string `yaml:"ue_ip_pool"      mapstructure:"ue_ip_pool"`
	StripIPv6     bool   `yaml:"strip_ipv6"      mapstructure:"strip_ipv6"`
	CleanupOnExit bool   `yaml:"cleanup_on_exit" mapstructure:"cleanup_on_exit"`
}

// TimingConfig drives the T1/N1 retransmission parameters
// internal/pfcpconn.Conn enforces (3GPP TS 29.244 Annex B naming).
type TimingConfig struct {
	MessageIntervalMs int `yaml:"message_interval_ms" mapstructure:"message_interval_ms"`
	ResponseTimeoutMs int `yaml:"response_timeout_ms" mapstructure:"response_timeout_ms"`
	MaxRetries        int `yaml:"max_retries"         mapstructure:"max_retries"`
}

// ConnConfig translates the YAML/CLI timing knobs into the pfcpconn.Config
// the connection layer actually consumes, so the ambient config surface
// stays wired to the CORE retransmission logic instead of being read and
// discarded.
func (t TimingConfig) ConnConfig() pfcpconn.Config {
	return pfcpconn.Config{
		T1: time.Duration(t.ResponseTimeoutMs) * time.Millisecond,
		N1: t.MaxRetries,
	}
}

type InputConfig struct {
	PcapFile string `yaml:"pcap_file" mapstructure:"pcap_file"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"   mapstructure:"level"`
	File    string `yaml:"file"    mapstructure:"file"`
	Console bool   `yaml:"console" mapstructure:"console"`
}

type StatsConfig struct {
	Enabled           bool   `yaml:"enabled"             mapstructure:"enabled"`
	ReportIntervalSec int    `yaml:"report_interval_sec" mapstructure:"report_interval_sec"`
	ExportFile        string `yaml:"export_file"         mapstructure:"export_file"`
}

// SetDefaults configures default values for the configuration.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("local.port", 8805)
	v.SetDefault("remote.port", 8805)
	v.SetDefault("node_id.ipv4", "")
	v.SetDefault("association.enabled", true)
	v.SetDefault("session.seid_start", 1)
	v.SetDefault("session.seid_strategy", "sequential")
	v.SetDefault("session.strip_ipv6", true)
	v.SetDefault("session.cleanup_on_exit", false)
	v.SetDefault("timing.message_interval_ms", 100)
	v.SetDefault("timing.response_timeout_ms", 5000)
	v.SetDefault("timing.max_retries", 3)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("stats.enabled", true)
	v.SetDefault("stats.report_interval_sec", 10)
}

// Load reads configuration from a YAML file and returns a Config.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadWithViper reads configuration using an existing viper instance (for CLI flag binding).
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Summary returns a human-readable summary of the configuration.
func (c *Config) Summary() string {
	var sb strings.Builder
	sb.WriteString("Configuration:\n")
	sb.WriteString(fmt.Sprintf("  Local:         %s:%d\n", c.Local.Address, c.Local.Port))
	sb.WriteString(fmt.Sprintf("  Remote:        %s:%d\n", c.Remote.Address, c.Remote.Port))
	sb.WriteString(fmt.Sprintf("  NodeID:        ipv4=%q ipv6=%q fqdn=%q\n", c.NodeID.IPv4, c.NodeID.IPv6, c.NodeID.FQDN))
	sb.WriteString(fmt.Sprintf("  Association:   enabled=%v\n", c.Association.Enabled))
	sb.WriteString(fmt.Sprintf("  PCAP:          %s\n", c.Input.PcapFile))
	sb.WriteString(fmt.Sprintf("  UE Pool:       %s\n", c.Session.UEIPPool))
	sb.WriteString(fmt.Sprintf("  Strip IPv6:    %v\n", c.Session.StripIPv6))
	sb.WriteString(fmt.Sprintf("  SEID Start:    %d (%s)\n", c.Session.SEIDStart, c.Session.SEIDStrategy))
	sb.WriteString(fmt.Sprintf("  Msg Interval:  %dms\n", c.Timing.MessageIntervalMs))
	sb.WriteString(fmt.Sprintf("  T1/N1:         %dms / %d retries\n", c.Timing.ResponseTimeoutMs, c.Timing.MaxRetries))
	sb.WriteString(fmt.Sprintf("  Cleanup:       %v\n", c.Session.CleanupOnExit))
	return sb.String()
}
