package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdo261/server-pokemon/models"
)

func TestFoldDetailsByProduct(t *testing.T) {
	// Two records selling cola: one offline with q=3, one online with q=2.
	// The bucket counts the records (2) and sums the units (5).
	blobs := []string{
		`[{"name":"cola","category":"drinks","q":3}]`,
		`[{"name":"Cola","category":"Drinks","q":2}]`,
	}

	buckets, err := foldDetails(blobs, models.LineItem.ProductKey)
	require.NoError(t, err)

	require.Len(t, buckets, 1)
	assert.Equal(t, BucketStats{Count: 2, TotalQuantity: 5}, buckets["Drinks Cola"])
}

func TestFoldDetailsCountsRecordOncePerKey(t *testing.T) {
	// One record with two line items of the same product still counts as a
	// single record touching the bucket; the quantities add up.
	blobs := []string{
		`[{"name":"cola","category":"drinks","q":3},{"name":"COLA","category":"drinks","q":4}]`,
	}

	buckets, err := foldDetails(blobs, models.LineItem.ProductKey)
	require.NoError(t, err)

	assert.Equal(t, BucketStats{Count: 1, TotalQuantity: 7}, buckets["Drinks Cola"])
}

func TestFoldDetailsSeparateKeys(t *testing.T) {
	blobs := []string{
		`[{"name":"cola","category":"drinks","q":1},{"name":"pizza","category":"food","q":2}]`,
		`[{"name":"pizza","category":"food","q":1}]`,
	}

	buckets, err := foldDetails(blobs, models.LineItem.ProductKey)
	require.NoError(t, err)

	assert.Equal(t, BucketStats{Count: 1, TotalQuantity: 1}, buckets["Drinks Cola"])
	assert.Equal(t, BucketStats{Count: 2, TotalQuantity: 3}, buckets["Food Pizza"])
}

func TestFoldDetailsByOfferKey(t *testing.T) {
	blobs := []string{
		`[{"name":"duo menu","q":2}]`,
		`[{"name":"Duo menu","q":1}]`,
	}

	buckets, err := foldDetails(blobs, models.LineItem.OfferKey)
	require.NoError(t, err)

	require.Len(t, buckets, 1)
	assert.Equal(t, BucketStats{Count: 2, TotalQuantity: 3}, buckets["Duo menu"])
}

func TestFoldDetailsPropagatesDecodeError(t *testing.T) {
	blobs := []string{
		`[{"name":"cola","category":"drinks","q":3}]`,
		`not json`,
	}

	_, err := foldDetails(blobs, models.LineItem.ProductKey)
	require.Error(t, err)
	var decodeErr *models.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestFoldDetailsEmpty(t *testing.T) {
	buckets, err := foldDetails(nil, models.LineItem.ProductKey)
	require.NoError(t, err)
	assert.Empty(t, buckets)
}

func TestAssembleQuantityReport(t *testing.T) {
	// Offline products: 1 record / 3 units; online products: 1 record /
	// 2 units. Record counts and unit sums stay distinct end to end.
	report := assembleQuantityReport(
		tally{count: 1, quantity: 3},
		tally{count: 2, quantity: 4},
		tally{count: 1, quantity: 2},
		tally{count: 0, quantity: 0},
	)

	require.NotNil(t, report.OfflinePayments)
	assert.Equal(t, 1, report.OfflinePayments.Products)
	assert.Equal(t, 2, report.OfflinePayments.Offers)
	assert.Equal(t, 3, *report.OfflinePayments.TotalQuantityProducts)
	assert.Equal(t, 4, *report.OfflinePayments.TotalQuantityOffers)

	require.NotNil(t, report.OnlinePayments)
	assert.Equal(t, 1, report.OnlinePayments.Products)
	assert.Equal(t, 2, *report.OnlinePayments.TotalQuantityProducts)

	require.NotNil(t, report.TotalPayments)
	assert.Equal(t, 3, report.TotalPayments.Offline.Count)
	assert.Equal(t, 1, report.TotalPayments.Online.Count)
	assert.Equal(t, 4, report.TotalPayments.All.Count)
	assert.Equal(t, 5, *report.TotalPayments.All.TotalQuantityProducts)
	assert.Equal(t, 4, *report.TotalPayments.All.TotalQuantityOffers)
}

func TestAssembleQuantityReportZero(t *testing.T) {
	report := assembleQuantityReport(tally{}, tally{}, tally{}, tally{})

	assert.Equal(t, 0, report.TotalPayments.All.Count)
	assert.Equal(t, 0, *report.TotalPayments.All.TotalQuantityProducts)
	assert.Equal(t, 0, *report.TotalPayments.All.TotalQuantityOffers)
	assert.Equal(t, 0, report.OfflinePayments.Products)
	assert.Equal(t, 0, report.OnlinePayments.Offers)
}

func TestAssembleCountReport(t *testing.T) {
	report := assembleCountReport(
		tally{count: 2},
		tally{count: 1},
		tally{count: 3},
		tally{count: 4},
	)

	assert.Equal(t, 2, report.OfflinePayments.Products)
	assert.Equal(t, 1, report.OfflinePayments.Offers)
	assert.Equal(t, 3, report.OnlinePayments.Products)
	assert.Equal(t, 4, report.OnlinePayments.Offers)
	assert.Equal(t, 3, report.TotalPayments.Offline.Count)
	assert.Equal(t, 7, report.TotalPayments.Online.Count)
	assert.Equal(t, 10, report.TotalPayments.All.Count)

	// Counts-only mode never reports quantities.
	assert.Nil(t, report.OfflinePayments.TotalQuantityProducts)
	assert.Nil(t, report.TotalPayments.All.TotalQuantityProducts)
}

func TestBucketCounts(t *testing.T) {
	buckets := map[string]BucketStats{
		"Drinks Cola": {Count: 2, TotalQuantity: 5},
		"Food Pizza":  {Count: 1, TotalQuantity: 1},
	}

	counts := bucketCounts(buckets)
	assert.Equal(t, map[string]int{"Drinks Cola": 2, "Food Pizza": 1}, counts)
}
