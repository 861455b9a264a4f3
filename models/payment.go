package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses. LIVREE and REFUSE are the two the reporting
// engine counts; the others exist so the checkout flow can persist them.
const (
	OrderStatusPending    = "EN_ATTENTE"
	OrderStatusPreparing  = "EN_PREPARATION"
	OrderStatusDelivering = "EN_LIVRAISON"
	OrderStatusDelivered  = "LIVREE"
	OrderStatusReturned   = "REFUSE"
)

type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Payment is a product sale. Details holds the encoded line items exactly as
// they were at sale time; the catalog is never consulted when reporting on
// them. OrderID nil means the sale was recorded locally (offline), non-nil
// means it came through the online ordering flow.
type Payment struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Details           string               `bson:"details" json:"details"`
	TotalPrice        float64              `bson:"totalprice" json:"totalPrice"`
	IsPayed           bool                 `bson:"ispayed" json:"isPayed"`
	ClientPhoneNumber string               `bson:"clientphonenumber,omitempty" json:"clientPhoneNumber,omitempty"`
	DeliveryID        *primitive.ObjectID  `bson:"deliveryid,omitempty" json:"deliveryId,omitempty"`
	DeliveryPrice     float64              `bson:"deliveryprice,omitempty" json:"deliveryPrice,omitempty"`
	ProductIDs        []primitive.ObjectID `bson:"productids,omitempty" json:"productIds,omitempty"`
	OrderID           *primitive.ObjectID  `bson:"orderid,omitempty" json:"orderId,omitempty"`
	CreatedAt         time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// PaymentOffer is a bundle sale, same shape as Payment but referencing
// offers instead of products.
type PaymentOffer struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Details           string               `bson:"details" json:"details"`
	TotalPrice        float64              `bson:"totalprice" json:"totalPrice"`
	IsPayed           bool                 `bson:"ispayed" json:"isPayed"`
	ClientPhoneNumber string               `bson:"clientphonenumber,omitempty" json:"clientPhoneNumber,omitempty"`
	DeliveryID        *primitive.ObjectID  `bson:"deliveryid,omitempty" json:"deliveryId,omitempty"`
	DeliveryPrice     float64              `bson:"deliveryprice,omitempty" json:"deliveryPrice,omitempty"`
	OfferIDs          []primitive.ObjectID `bson:"offerids,omitempty" json:"offerIds,omitempty"`
	OrderID           *primitive.ObjectID  `bson:"orderid,omitempty" json:"orderId,omitempty"`
	CreatedAt         time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}
