package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineItem is one entry of a payment's details blob: what was sold, under
// which name and category, at the moment of the sale. Names are plain
// strings on purpose — catalog renames and deletions must never rewrite
// history.
type LineItem struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Quantity int     `json:"q"`
	Price    float64 `json:"price,omitempty"`
}

// DecodeError marks a details blob that cannot be interpreted. It is a
// data-integrity fault: callers must surface it, not skip the record.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode payment details: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode payment details: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeDetails parses the encoded line-item blob of a payment record.
// An empty or "null" blob is a valid empty sale.
func DecodeDetails(blob string) ([]LineItem, error) {
	if strings.TrimSpace(blob) == "" {
		return []LineItem{}, nil
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, &DecodeError{Reason: "malformed blob", Err: err}
	}
	for i, item := range items {
		if item.Quantity < 0 {
			return nil, &DecodeError{Reason: fmt.Sprintf("item %d has negative quantity %d", i, item.Quantity)}
		}
	}
	if items == nil {
		items = []LineItem{}
	}
	return items, nil
}

func EncodeDetails(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TotalQuantity sums the unit quantities of a record's line items. This is
// the record's unit contribution; it is never derived from the record count.
func TotalQuantity(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Capitalize uppercases the first letter and lowercases the rest. Used both
// for display and as the grouping normalization, so "tea" and "Tea" share a
// bucket.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ProductKey is the aggregation key of a product line item:
// "{Category} {Product}", each part capitalized.
func (it LineItem) ProductKey() string {
	return Capitalize(it.Category) + " " + Capitalize(it.Name)
}

// OfferKey is the aggregation key of an offer line item.
func (it LineItem) OfferKey() string {
	return Capitalize(it.Name)
}
