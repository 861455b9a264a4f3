package reports

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/models"
)

// Channel selects which side of the offline/online split a fetch covers.
// A record is online when it carries an order reference, offline when it
// does not.
type Channel int

const (
	ChannelAll Channel = iota
	ChannelOffline
	ChannelOnline
)

func (ch Channel) filter() bson.M {
	switch ch {
	case ChannelOffline:
		return bson.M{"orderid": nil}
	case ChannelOnline:
		return bson.M{"orderid": bson.M{"$ne": nil}}
	default:
		return bson.M{}
	}
}

// paidFilter merges the window, channel and isPayed clauses. Unpaid records
// never reach a financial aggregate.
func paidFilter(w Window, ch Channel) bson.M {
	filter := w.Filter()
	for k, v := range ch.filter() {
		filter[k] = v
	}
	filter["ispayed"] = true
	return filter
}

// FetchPayments returns the paid product sales of a window and channel.
func FetchPayments(ctx context.Context, w Window, ch Channel) ([]models.Payment, error) {
	cursor, err := config.PaymentCollection.Find(ctx, paidFilter(w, ch))
	if err != nil {
		return nil, fmt.Errorf("fetch payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}

// FetchPaymentOffers returns the paid bundle sales of a window and channel.
func FetchPaymentOffers(ctx context.Context, w Window, ch Channel) ([]models.PaymentOffer, error) {
	cursor, err := config.PaymentOfferCollection.Find(ctx, paidFilter(w, ch))
	if err != nil {
		return nil, fmt.Errorf("fetch payment offers: %w", err)
	}
	defer cursor.Close(ctx)

	offers := []models.PaymentOffer{}
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("decode payment offers: %w", err)
	}
	return offers, nil
}

// CountPayments counts paid product sales without fetching them.
func CountPayments(ctx context.Context, w Window, ch Channel) (int64, error) {
	n, err := config.PaymentCollection.CountDocuments(ctx, paidFilter(w, ch))
	if err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}

// CountPaymentOffers counts paid bundle sales without fetching them.
func CountPaymentOffers(ctx context.Context, w Window, ch Channel) (int64, error) {
	n, err := config.PaymentOfferCollection.CountDocuments(ctx, paidFilter(w, ch))
	if err != nil {
		return 0, fmt.Errorf("count payment offers: %w", err)
	}
	return n, nil
}

// CountOrdersByStatus counts orders in a window with the exact status.
// Order lifecycle counts deliberately ignore isPayed: they reflect what the
// delivery flow did with the order, not whether payment was captured.
func CountOrdersByStatus(ctx context.Context, w Window, status string) (int64, error) {
	filter := w.Filter()
	filter["status"] = status

	n, err := config.OrderCollection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s orders: %w", status, err)
	}
	return n, nil
}

// FetchUsersByIDs loads the user profiles behind a set of delivery ids.
func FetchUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	cursor, err := config.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("fetch delivery users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode delivery users: %w", err)
	}
	return users, nil
}
