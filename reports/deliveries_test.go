package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdo261/server-pokemon/models"
)

func TestDeliveryIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	payments := []models.Payment{
		{DeliveryID: &a},
		{DeliveryID: nil}, // counter sale, no deliverer
		{DeliveryID: &a},  // duplicate
	}
	offers := []models.PaymentOffer{
		{DeliveryID: &b},
		{DeliveryID: &a},
	}

	ids := deliveryIDs(payments, offers)
	assert.Equal(t, []primitive.ObjectID{a, b}, ids)
}

func TestDeliveryIDsEmpty(t *testing.T) {
	assert.Empty(t, deliveryIDs(nil, nil))
	assert.Empty(t, deliveryIDs(
		[]models.Payment{{DeliveryID: nil}},
		[]models.PaymentOffer{{DeliveryID: nil}},
	))
}

func TestGroupDeliveries(t *testing.T) {
	alice := models.User{ID: primitive.NewObjectID(), UserName: "alice", Role: models.RoleLivreur, Password: "hash"}
	bob := models.User{ID: primitive.NewObjectID(), UserName: "bob", Role: models.RoleLivreur}

	payments := []models.Payment{
		{ID: primitive.NewObjectID(), DeliveryID: &alice.ID},
		{ID: primitive.NewObjectID(), DeliveryID: &bob.ID},
		{ID: primitive.NewObjectID(), DeliveryID: nil},
	}
	offers := []models.PaymentOffer{
		{ID: primitive.NewObjectID(), DeliveryID: &alice.ID},
	}

	summaries := groupDeliveries([]models.User{alice, bob}, payments, offers)
	require.Len(t, summaries, 2)

	assert.Equal(t, "alice", summaries[0].User.UserName)
	assert.Empty(t, summaries[0].User.Password, "passwords never leave the rollup")
	assert.Len(t, summaries[0].PaymentProducts, 1)
	assert.Len(t, summaries[0].PaymentOffers, 1)

	assert.Equal(t, "bob", summaries[1].User.UserName)
	assert.Len(t, summaries[1].PaymentProducts, 1)
	assert.Empty(t, summaries[1].PaymentOffers)
}

func TestGroupDeliveriesDropsUnknownIDs(t *testing.T) {
	// A delivery id pointing at a deleted account yields no summary; the
	// user list decides who appears.
	ghost := primitive.NewObjectID()
	payments := []models.Payment{{DeliveryID: &ghost}}

	summaries := groupDeliveries(nil, payments, nil)
	assert.Empty(t, summaries)
}

func TestGroupDeliveriesNoActivity(t *testing.T) {
	// A fetched user with no in-window rows still gets empty slices, never
	// nil, so the response marshals as [] instead of null.
	u := models.User{ID: primitive.NewObjectID(), UserName: "idle"}

	summaries := groupDeliveries([]models.User{u}, nil, nil)
	require.Len(t, summaries, 1)
	assert.NotNil(t, summaries[0].PaymentProducts)
	assert.NotNil(t, summaries[0].PaymentOffers)
	assert.Empty(t, summaries[0].PaymentProducts)
}
