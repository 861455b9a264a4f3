package reports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdo261/server-pokemon/models"
)

// DeliverySummary rolls one deliverer's window activity together with a
// sanitized profile. Rows without a delivery reference belong to the counter,
// not to a deliverer, and never show up here.
type DeliverySummary struct {
	User            models.User           `json:"user"`
	PaymentProducts []models.Payment      `json:"paymentProducts"`
	PaymentOffers   []models.PaymentOffer `json:"paymentOffers"`
}

// ResolveDeliveries gathers the paid sales of a window per deliverer. Ids
// pointing at deleted or deactivated accounts are dropped silently: the rows
// stay in the store totals, they just have nobody to be attributed to.
func ResolveDeliveries(ctx context.Context, w Window) ([]DeliverySummary, error) {
	payments, err := FetchPayments(ctx, w, ChannelAll)
	if err != nil {
		return nil, err
	}
	offers, err := FetchPaymentOffers(ctx, w, ChannelAll)
	if err != nil {
		return nil, err
	}

	ids := deliveryIDs(payments, offers)
	users, err := FetchUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return groupDeliveries(users, payments, offers), nil
}

// deliveryIDs collects the distinct delivery references across both record
// kinds, in first-seen order.
func deliveryIDs(payments []models.Payment, offers []models.PaymentOffer) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID

	add := func(id *primitive.ObjectID) {
		if id == nil || seen[*id] {
			return
		}
		seen[*id] = true
		ids = append(ids, *id)
	}
	for _, p := range payments {
		add(p.DeliveryID)
	}
	for _, o := range offers {
		add(o.DeliveryID)
	}
	return ids
}

// groupDeliveries attributes rows to the fetched users. The user list is the
// source of truth for who appears: an id with no matching user yields no
// summary.
func groupDeliveries(users []models.User, payments []models.Payment, offers []models.PaymentOffer) []DeliverySummary {
	summaries := make([]DeliverySummary, 0, len(users))
	for _, u := range users {
		s := DeliverySummary{
			User:            u.Sanitize(),
			PaymentProducts: []models.Payment{},
			PaymentOffers:   []models.PaymentOffer{},
		}
		for _, p := range payments {
			if p.DeliveryID != nil && *p.DeliveryID == u.ID {
				s.PaymentProducts = append(s.PaymentProducts, p)
			}
		}
		for _, o := range offers {
			if o.DeliveryID != nil && *o.DeliveryID == u.ID {
				s.PaymentOffers = append(s.PaymentOffers, o)
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}
