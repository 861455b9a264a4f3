package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/models"
)

// ErrDayNotFound is returned when a report names a day that does not exist.
// Handlers translate it to a 404.
var ErrDayNotFound = errors.New("day not found")

// Window is the createdAt range of a report. GTE is always set for
// day-bounded reports; LTE is set only when the day was closed — an open day
// has no upper bound at all, not a +infinity one. The zero Window means
// all-time.
type Window struct {
	GTE time.Time
	LTE *time.Time
}

// Everything is the unbounded window used by the global endpoints.
var Everything = Window{}

func (w Window) IsBounded() bool {
	return !w.GTE.IsZero() || w.LTE != nil
}

// Filter builds the createdAt clause for Mongo queries, or an empty filter
// for the all-time window. Both bounds are inclusive.
func (w Window) Filter() bson.M {
	if !w.IsBounded() {
		return bson.M{}
	}
	rangeFilter := bson.M{"$gte": w.GTE}
	if w.LTE != nil {
		rangeFilter["$lte"] = *w.LTE
	}
	return bson.M{"created_at": rangeFilter}
}

// ResolveWindow loads a day and turns it into the window its reports run
// over.
func ResolveWindow(ctx context.Context, dayID string) (Window, error) {
	day, err := FindDay(ctx, dayID)
	if err != nil {
		return Window{}, err
	}
	return Window{GTE: day.StartAt, LTE: day.StopAt}, nil
}

// FindDay looks a day up by its hex id. An unparseable or unknown id is
// ErrDayNotFound.
func FindDay(ctx context.Context, dayID string) (*models.Day, error) {
	objID, err := primitive.ObjectIDFromHex(dayID)
	if err != nil {
		return nil, ErrDayNotFound
	}

	var day models.Day
	err = config.DayCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find day: %w", err)
	}
	return &day, nil
}

// LatestDay returns the most recently started day, or nil when no day has
// ever been opened.
func LatestDay(ctx context.Context) (*models.Day, error) {
	opts := options.FindOne().SetSort(bson.M{"startat": -1})

	var day models.Day
	err := config.DayCollection.FindOne(ctx, bson.M{}, opts).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find latest day: %w", err)
	}
	return &day, nil
}
