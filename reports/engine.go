package reports

import (
	"context"

	"github.com/abdo261/server-pokemon/models"
)

// Mode picks which breakdown Aggregate computes. The near-duplicate count
// endpoints all funnel through the same builder so the window and isPayed
// rules cannot drift apart between them.
type Mode int

const (
	// ModeTotals: record counts per channel plus delivered/returned orders.
	ModeTotals Mode = iota
	// ModeTotalsWithQuantity: ModeTotals plus unit-quantity sums decoded
	// from every record's line items.
	ModeTotalsWithQuantity
	// ModeByProduct: record counts keyed by normalized "Category Product".
	ModeByProduct
	// ModeByOffer: record counts keyed by normalized offer name.
	ModeByOffer
	// ModeByProductWithQuantity: by-product counts plus quantity sums.
	ModeByProductWithQuantity
	// ModeByOfferWithQuantity: by-offer counts plus quantity sums.
	ModeByOfferWithQuantity
)

// ChannelTotals describes one side of the offline/online split. The
// quantity fields are present only in with-quantity modes: a record count
// and a unit-quantity sum are different numbers and are never conflated.
type ChannelTotals struct {
	Products              int  `json:"products"`
	Offers                int  `json:"offers"`
	TotalQuantityProducts *int `json:"totalQuantityProducts,omitempty"`
	TotalQuantityOffers   *int `json:"totalQuantityOffers,omitempty"`
}

// ChannelSum is one row of the nested totalPayments block.
type ChannelSum struct {
	Count                 int  `json:"count"`
	TotalQuantityProducts *int `json:"totalQuantityProducts,omitempty"`
	TotalQuantityOffers   *int `json:"totalQuantityOffers,omitempty"`
}

type PaymentTotals struct {
	Offline ChannelSum `json:"offline"`
	Online  ChannelSum `json:"online"`
	All     ChannelSum `json:"all"`
}

// BucketStats accumulates one aggregation bucket: how many records touched
// the entity and how many units of it they sold.
type BucketStats struct {
	Count         int `json:"count"`
	TotalQuantity int `json:"totalQuantity"`
}

// Report is the result of Aggregate. Only the sections of the requested
// mode are populated; handlers emit them as-is or unwrap a single map.
type Report struct {
	OfflinePayments *ChannelTotals `json:"offlinePayments,omitempty"`
	OnlinePayments  *ChannelTotals `json:"onlinePayments,omitempty"`
	TotalPayments   *PaymentTotals `json:"totalPayments,omitempty"`

	Products      map[string]BucketStats `json:"products,omitempty"`
	Offers        map[string]BucketStats `json:"offers,omitempty"`
	ProductCounts map[string]int         `json:"productCounts,omitempty"`
	OfferCounts   map[string]int         `json:"offerCounts,omitempty"`

	TotalPaymentCountProducts *int `json:"totalPaymentCountProducts,omitempty"`
	TotalPaymentCountOffers   *int `json:"totalPaymentCountOffers,omitempty"`

	DeliveredOrders *int64 `json:"deliveredOrders,omitempty"`
	ReturnedOrders  *int64 `json:"returnedOrders,omitempty"`
}

// Aggregate computes the report of a window in the requested mode. The
// window has already been resolved; an unknown day never reaches this
// point. A details blob that fails to decode aborts the whole report —
// a partial total would look right and be wrong.
func Aggregate(ctx context.Context, w Window, mode Mode) (*Report, error) {
	switch mode {
	case ModeTotalsWithQuantity:
		return quantityTotals(ctx, w)
	case ModeByProduct, ModeByProductWithQuantity:
		return productBreakdown(ctx, w, mode == ModeByProduct)
	case ModeByOffer, ModeByOfferWithQuantity:
		return offerBreakdown(ctx, w, mode == ModeByOffer)
	default:
		return countTotals(ctx, w)
	}
}

func countTotals(ctx context.Context, w Window) (*Report, error) {
	offlineProducts, err := CountPayments(ctx, w, ChannelOffline)
	if err != nil {
		return nil, err
	}
	offlineOffers, err := CountPaymentOffers(ctx, w, ChannelOffline)
	if err != nil {
		return nil, err
	}
	onlineProducts, err := CountPayments(ctx, w, ChannelOnline)
	if err != nil {
		return nil, err
	}
	onlineOffers, err := CountPaymentOffers(ctx, w, ChannelOnline)
	if err != nil {
		return nil, err
	}

	delivered, returned, err := orderCounts(ctx, w)
	if err != nil {
		return nil, err
	}

	report := assembleCountReport(
		tally{count: int(offlineProducts)},
		tally{count: int(offlineOffers)},
		tally{count: int(onlineProducts)},
		tally{count: int(onlineOffers)},
	)
	report.DeliveredOrders = &delivered
	report.ReturnedOrders = &returned
	return report, nil
}

func quantityTotals(ctx context.Context, w Window) (*Report, error) {
	offlineProducts, err := paymentTally(ctx, w, ChannelOffline)
	if err != nil {
		return nil, err
	}
	offlineOffers, err := paymentOfferTally(ctx, w, ChannelOffline)
	if err != nil {
		return nil, err
	}
	onlineProducts, err := paymentTally(ctx, w, ChannelOnline)
	if err != nil {
		return nil, err
	}
	onlineOffers, err := paymentOfferTally(ctx, w, ChannelOnline)
	if err != nil {
		return nil, err
	}

	delivered, returned, err := orderCounts(ctx, w)
	if err != nil {
		return nil, err
	}

	report := assembleQuantityReport(offlineProducts, offlineOffers, onlineProducts, onlineOffers)
	report.DeliveredOrders = &delivered
	report.ReturnedOrders = &returned
	return report, nil
}

func productBreakdown(ctx context.Context, w Window, countsOnly bool) (*Report, error) {
	payments, err := FetchPayments(ctx, w, ChannelAll)
	if err != nil {
		return nil, err
	}

	blobs := make([]string, len(payments))
	for i, p := range payments {
		blobs[i] = p.Details
	}
	buckets, err := foldDetails(blobs, models.LineItem.ProductKey)
	if err != nil {
		return nil, err
	}

	if countsOnly {
		return &Report{ProductCounts: bucketCounts(buckets)}, nil
	}
	total := len(payments)
	return &Report{Products: buckets, TotalPaymentCountProducts: &total}, nil
}

func offerBreakdown(ctx context.Context, w Window, countsOnly bool) (*Report, error) {
	offers, err := FetchPaymentOffers(ctx, w, ChannelAll)
	if err != nil {
		return nil, err
	}

	blobs := make([]string, len(offers))
	for i, o := range offers {
		blobs[i] = o.Details
	}
	buckets, err := foldDetails(blobs, models.LineItem.OfferKey)
	if err != nil {
		return nil, err
	}

	if countsOnly {
		return &Report{OfferCounts: bucketCounts(buckets)}, nil
	}
	total := len(offers)
	return &Report{Offers: buckets, TotalPaymentCountOffers: &total}, nil
}

func orderCounts(ctx context.Context, w Window) (delivered, returned int64, err error) {
	delivered, err = CountOrdersByStatus(ctx, w, models.OrderStatusDelivered)
	if err != nil {
		return 0, 0, err
	}
	returned, err = CountOrdersByStatus(ctx, w, models.OrderStatusReturned)
	if err != nil {
		return 0, 0, err
	}
	return delivered, returned, nil
}

func paymentTally(ctx context.Context, w Window, ch Channel) (tally, error) {
	payments, err := FetchPayments(ctx, w, ch)
	if err != nil {
		return tally{}, err
	}
	t := tally{count: len(payments)}
	for _, p := range payments {
		items, err := models.DecodeDetails(p.Details)
		if err != nil {
			return tally{}, err
		}
		t.quantity += models.TotalQuantity(items)
	}
	return t, nil
}

func paymentOfferTally(ctx context.Context, w Window, ch Channel) (tally, error) {
	offers, err := FetchPaymentOffers(ctx, w, ch)
	if err != nil {
		return tally{}, err
	}
	t := tally{count: len(offers)}
	for _, o := range offers {
		items, err := models.DecodeDetails(o.Details)
		if err != nil {
			return tally{}, err
		}
		t.quantity += models.TotalQuantity(items)
	}
	return t, nil
}

// tally is one fetched record set reduced to its two metrics.
type tally struct {
	count    int
	quantity int
}

func assembleCountReport(offlineProducts, offlineOffers, onlineProducts, onlineOffers tally) *Report {
	return &Report{
		OfflinePayments: &ChannelTotals{
			Products: offlineProducts.count,
			Offers:   offlineOffers.count,
		},
		OnlinePayments: &ChannelTotals{
			Products: onlineProducts.count,
			Offers:   onlineOffers.count,
		},
		TotalPayments: &PaymentTotals{
			Offline: ChannelSum{Count: offlineProducts.count + offlineOffers.count},
			Online:  ChannelSum{Count: onlineProducts.count + onlineOffers.count},
			All: ChannelSum{
				Count: offlineProducts.count + offlineOffers.count +
					onlineProducts.count + onlineOffers.count,
			},
		},
	}
}

func assembleQuantityReport(offlineProducts, offlineOffers, onlineProducts, onlineOffers tally) *Report {
	allProductQty := offlineProducts.quantity + onlineProducts.quantity
	allOfferQty := offlineOffers.quantity + onlineOffers.quantity

	return &Report{
		OfflinePayments: &ChannelTotals{
			Products:              offlineProducts.count,
			Offers:                offlineOffers.count,
			TotalQuantityProducts: intPtr(offlineProducts.quantity),
			TotalQuantityOffers:   intPtr(offlineOffers.quantity),
		},
		OnlinePayments: &ChannelTotals{
			Products:              onlineProducts.count,
			Offers:                onlineOffers.count,
			TotalQuantityProducts: intPtr(onlineProducts.quantity),
			TotalQuantityOffers:   intPtr(onlineOffers.quantity),
		},
		TotalPayments: &PaymentTotals{
			Offline: ChannelSum{
				Count:                 offlineProducts.count + offlineOffers.count,
				TotalQuantityProducts: intPtr(offlineProducts.quantity),
				TotalQuantityOffers:   intPtr(offlineOffers.quantity),
			},
			Online: ChannelSum{
				Count:                 onlineProducts.count + onlineOffers.count,
				TotalQuantityProducts: intPtr(onlineProducts.quantity),
				TotalQuantityOffers:   intPtr(onlineOffers.quantity),
			},
			All: ChannelSum{
				Count: offlineProducts.count + offlineOffers.count +
					onlineProducts.count + onlineOffers.count,
				TotalQuantityProducts: intPtr(allProductQty),
				TotalQuantityOffers:   intPtr(allOfferQty),
			},
		},
	}
}

// foldDetails decodes every blob and folds its items into buckets under the
// given key. Count increments once per record touching a key, no matter how
// many of its line items land there; quantities always add up.
func foldDetails(blobs []string, key func(models.LineItem) string) (map[string]BucketStats, error) {
	buckets := make(map[string]BucketStats)
	for _, blob := range blobs {
		items, err := models.DecodeDetails(blob)
		if err != nil {
			return nil, err
		}
		touched := make(map[string]bool)
		for _, item := range items {
			k := key(item)
			bucket := buckets[k]
			if !touched[k] {
				bucket.Count++
				touched[k] = true
			}
			bucket.TotalQuantity += item.Quantity
			buckets[k] = bucket
		}
	}
	return buckets, nil
}

func bucketCounts(buckets map[string]BucketStats) map[string]int {
	counts := make(map[string]int, len(buckets))
	for k, b := range buckets {
		counts[k] = b.Count
	}
	return counts
}

func intPtr(v int) *int { return &v }
