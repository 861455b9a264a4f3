package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestWindowFilterOpenDay(t *testing.T) {
	start := time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)
	w := Window{GTE: start}

	filter := w.Filter()

	rangeFilter, ok := filter["created_at"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, start, rangeFilter["$gte"])

	// An open day has no upper bound at all, not a far-future sentinel.
	_, hasLTE := rangeFilter["$lte"]
	assert.False(t, hasLTE)
}

func TestWindowFilterClosedDay(t *testing.T) {
	start := time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)
	stop := start.Add(12 * time.Hour)
	w := Window{GTE: start, LTE: &stop}

	filter := w.Filter()

	rangeFilter, ok := filter["created_at"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, start, rangeFilter["$gte"])
	assert.Equal(t, stop, rangeFilter["$lte"])
}

func TestWindowFilterEverything(t *testing.T) {
	assert.Equal(t, bson.M{}, Everything.Filter())
	assert.False(t, Everything.IsBounded())
}

func TestWindowIsBounded(t *testing.T) {
	assert.True(t, Window{GTE: time.Now()}.IsBounded())

	stop := time.Now()
	assert.True(t, Window{LTE: &stop}.IsBounded())
}

func TestPaidFilter(t *testing.T) {
	start := time.Date(2024, 11, 2, 8, 0, 0, 0, time.UTC)
	w := Window{GTE: start}

	tests := []struct {
		name    string
		channel Channel
		orderid interface{}
		hasKey  bool
	}{
		{name: "all channels has no order clause", channel: ChannelAll, hasKey: false},
		{name: "offline requires nil order", channel: ChannelOffline, orderid: nil, hasKey: true},
		{name: "online requires non-nil order", channel: ChannelOnline, orderid: bson.M{"$ne": nil}, hasKey: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := paidFilter(w, tt.channel)

			assert.Equal(t, true, filter["ispayed"])
			assert.Contains(t, filter, "created_at")

			got, ok := filter["orderid"]
			assert.Equal(t, tt.hasKey, ok)
			if tt.hasKey {
				assert.Equal(t, tt.orderid, got)
			}
		})
	}
}
