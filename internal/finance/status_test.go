package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKnownStatusHasBucket(t *testing.T) {
	require.Len(t, statusBuckets, len(KnownStatuses()))
	for _, s := range KnownStatuses() {
		_, ok := statusBuckets[s]
		assert.True(t, ok, "status %q has no bucket", s)
	}
}

func TestBucketOf(t *testing.T) {
	assert.Equal(t, BucketCompleted, BucketOf(StatusCompleted))
	assert.Equal(t, BucketRunning, BucketOf(StatusRunning))
	assert.Equal(t, BucketOther, BucketOf(StatusBooking))
	assert.Equal(t, BucketOther, BucketOf(StatusCancelled))
	assert.Equal(t, BucketOther, BucketOf(StatusOutForDelivery))
	assert.Equal(t, BucketOther, BucketOf("Dikembalikan"))
	assert.Equal(t, BucketCompleted, BucketOf("completed"))
}

func TestParseBookingStatus(t *testing.T) {
	st, ok := ParseBookingStatus(" selesai ")
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, st)

	st, ok = ParseBookingStatus("OUT FOR DELIVERY")
	assert.True(t, ok)
	assert.Equal(t, StatusOutForDelivery, st)

	_, ok = ParseBookingStatus("unknown")
	assert.False(t, ok)
}
