package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Local:       EndpointConfig{Address: "192.0.2.1", Port: 8805},
		Remote:      EndpointConfig{Address: "192.0.2.2", Port: 8805},
		NodeID:      NodeIDConfig{IPv4: "192.0.2.1"},
		Association: AssociationConfig{Enabled: true},
		Session: SessionConfig{
			SEIDStart:    1,
			SEIDStrategy: "sequential",
			UEIPPool:     "10.60.0.0/24",
		},
		Timing: TimingConfig{ResponseTimeoutMs: 5000, MaxRetries: 3},
		Input:  InputConfig{PcapFile: "/dev/null"},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func TestValidate_AcceptsWellFormedConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsNoNodeIDSet(t *testing.T) {
	cfg := validConfig()
	cfg.NodeID = NodeIDConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node_id.ipv4, node_id.ipv6, node_id.fqdn must be set, got none")
}

func TestValidate_RejectsMultipleNodeIDEncodings(t *testing.T) {
	cfg := validConfig()
	cfg.NodeID = NodeIDConfig{IPv4: "192.0.2.1", FQDN: "smf.example.com"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got more than one")
}

func TestValidate_RejectsMalformedNodeIDAddress(t *testing.T) {
	cfg := validConfig()
	cfg.NodeID = NodeIDConfig{IPv4: "not-an-ip"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node_id.ipv4 must be a valid IPv4 address")
}

func TestNodeIDConfig_IEEncodesConfiguredForm(t *testing.T) {
	n := NodeIDConfig{FQDN: "smf.example.com"}
	nodeIE := n.IE()
	decoded, err := nodeIE.NodeID()
	require.NoError(t, err)
	assert.Equal(t, "smf.example.com", decoded.FQDN)
}

func TestTimingConfig_ConnConfigTranslatesMillisToDuration(t *testing.T) {
	cc := TimingConfig{ResponseTimeoutMs: 2500, MaxRetries: 4}.ConnConfig()
	assert.Equal(t, int(4), cc.N1)
	assert.EqualValues(t, 2500_000_000, cc.T1)
}
