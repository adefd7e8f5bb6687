package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pfcp-core/pkg/ie"
)

func TestCollector_RecordCause_TalliesAcceptedWithoutFailure(t *testing.T) {
	c := NewCollector()
	c.RecordCause("SessionEstablishmentResponse", ie.CauseRequestAccepted)

	assert.Equal(t, uint64(1), c.CauseCounts[ie.CauseRequestAccepted])
	assert.Equal(t, uint64(0), c.MessageStats["SessionEstablishmentResponse"].Failed)
}

func TestCollector_RecordCause_TalliesRejectionAsFailure(t *testing.T) {
	c := NewCollector()
	c.RecordCause("SessionEstablishmentResponse", ie.CauseMandatoryIEMissing)

	assert.Equal(t, uint64(1), c.CauseCounts[ie.CauseMandatoryIEMissing])
	assert.Equal(t, uint64(1), c.MessageStats["SessionEstablishmentResponse"].Failed)
}

func TestCollector_RecordIEValidationFailure_TalliesByIEName(t *testing.T) {
	c := NewCollector()
	c.RecordIEValidationFailure("cp f-seid")
	c.RecordIEValidationFailure("cp f-seid")
	c.RecordIEValidationFailure("create pdr")

	assert.Equal(t, uint64(2), c.IEValidationFailures["cp f-seid"])
	assert.Equal(t, uint64(1), c.IEValidationFailures["create pdr"])
}

func TestCollector_Snapshot_DeepCopiesNewMaps(t *testing.T) {
	c := NewCollector()
	c.RecordCause("HeartbeatResponse", ie.CauseRequestAccepted)
	c.RecordIEValidationFailure("node id")

	snap := c.Snapshot()
	c.RecordCause("HeartbeatResponse", ie.CauseRequestAccepted)
	c.RecordIEValidationFailure("node id")

	assert.Equal(t, uint64(1), snap.CauseCounts[ie.CauseRequestAccepted])
	assert.Equal(t, uint64(1), snap.IEValidationFailures["node id"])
	assert.Equal(t, uint64(2), c.CauseCounts[ie.CauseRequestAccepted])
	assert.Equal(t, uint64(2), c.IEValidationFailures["node id"])
}
