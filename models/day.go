package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Day is a sales session used to bucket payments for reporting. StopAt nil
// means the session is still open and the reporting window has no upper
// bound. A Day only points at a time range; deleting it never touches the
// payments or orders it windowed.
type Day struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StartAt time.Time          `bson:"startat" json:"startAt"`
	StopAt  *time.Time         `bson:"stopat,omitempty" json:"stopAt,omitempty"`
}
