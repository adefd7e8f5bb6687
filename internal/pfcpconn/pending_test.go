package pfcpconn

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pfcp-core/pkg/ie"
	"pfcp-core/pkg/message"
)

func TestPendingTable_TrackAndResolve(t *testing.T) {
	pt := NewPendingTable()
	ch := pt.Track(7, []byte("payload"))
	assert.Equal(t, 1, pt.Len())

	resp := message.NewHeartbeatResponse(7, ie.NewRecoveryTimeStamp(time.Now()))
	ok := pt.Resolve(7, resp)
	require.True(t, ok)

	select {
	case res := <-ch:
		require.NoError(t, res.Err)
		assert.Equal(t, resp, res.Response)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for result")
	}
	assert.Equal(t, 0, pt.Len())
}

func TestPendingTable_ResolveUnknownSequenceReturnsFalse(t *testing.T) {
	pt := NewPendingTable()
	assert.False(t, pt.Resolve(42, nil))
}

func TestPendingTable_MarkRetriedIncrementsCount(t *testing.T) {
	pt := NewPendingTable()
	pt.Track(3, nil)
	retries, ok := pt.MarkRetried(3)
	require.True(t, ok)
	assert.Equal(t, 1, retries)

	retries, ok = pt.MarkRetried(3)
	require.True(t, ok)
	assert.Equal(t, 2, retries)
}

func TestPendingTable_MarkRetriedUnknownSequence(t *testing.T) {
	pt := NewPendingTable()
	_, ok := pt.MarkRetried(99)
	assert.False(t, ok)
}

func TestPendingTable_FailDeliversError(t *testing.T) {
	pt := NewPendingTable()
	ch := pt.Track(5, nil)
	wantErr := errors.New("boom")
	pt.Fail(5, wantErr)

	res := <-ch
	assert.ErrorIs(t, res.Err, wantErr)
	assert.Equal(t, 0, pt.Len())
}

func TestPendingTable_CancelAllFailsEveryEntry(t *testing.T) {
	pt := NewPendingTable()
	ch1 := pt.Track(1, nil)
	ch2 := pt.Track(2, nil)
	wantErr := errors.New("closed")
	pt.CancelAll(wantErr)

	assert.ErrorIs(t, (<-ch1).Err, wantErr)
	assert.ErrorIs(t, (<-ch2).Err, wantErr)
	assert.Equal(t, 0, pt.Len())
}

func TestPendingTable_TimedOutReportsOnlyStaleEntries(t *testing.T) {
	pt := NewPendingTable()
	pt.Track(1, nil)
	stale := pt.TimedOut(-time.Second)
	require.Len(t, stale, 1)
	assert.Equal(t, uint32(1), stale[0].Sequence)

	fresh := pt.TimedOut(time.Hour)
	assert.Len(t, fresh, 0)
}
