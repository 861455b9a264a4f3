package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDetails(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want []LineItem
	}{
		{
			name: "empty blob is an empty sale",
			blob: "",
			want: []LineItem{},
		},
		{
			name: "whitespace blob is an empty sale",
			blob: "   ",
			want: []LineItem{},
		},
		{
			name: "json null is an empty sale",
			blob: "null",
			want: []LineItem{},
		},
		{
			name: "single item",
			blob: `[{"name":"cola","category":"drinks","q":3}]`,
			want: []LineItem{{Name: "cola", Category: "drinks", Quantity: 3}},
		},
		{
			name: "zero quantity is allowed",
			blob: `[{"name":"cola","category":"drinks","q":0}]`,
			want: []LineItem{{Name: "cola", Category: "drinks", Quantity: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeDetails(tt.blob)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeDetailsErrors(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "malformed json", blob: `[{"name":`},
		{name: "not an array", blob: `{"name":"cola"}`},
		{name: "negative quantity", blob: `[{"name":"cola","q":-1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDetails(tt.blob)
			require.Error(t, err)
			var decodeErr *DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []LineItem{
		{Name: "cola", Category: "drinks", Quantity: 3, Price: 2.5},
		{Name: "pizza", Category: "food", Quantity: 1},
	}

	blob, err := EncodeDetails(items)
	require.NoError(t, err)

	got, err := DecodeDetails(blob)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestEncodeDetailsNil(t *testing.T) {
	blob, err := EncodeDetails(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", blob)
}

func TestTotalQuantity(t *testing.T) {
	assert.Equal(t, 0, TotalQuantity(nil))
	assert.Equal(t, 0, TotalQuantity([]LineItem{}))
	assert.Equal(t, 5, TotalQuantity([]LineItem{
		{Name: "cola", Quantity: 3},
		{Name: "tea", Quantity: 2},
	}))
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"tea", "Tea"},
		{"Tea", "Tea"},
		{"TEA", "Tea"},
		{"  tea  ", "Tea"},
		{"éclair", "Éclair"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in), "Capitalize(%q)", tt.in)
	}
}

func TestGroupingKeys(t *testing.T) {
	item := LineItem{Name: "cola", Category: "drinks", Quantity: 3}
	assert.Equal(t, "Drinks Cola", item.ProductKey())
	assert.Equal(t, "Cola", item.OfferKey())

	// Case variants of the same entity share a key.
	upper := LineItem{Name: "COLA", Category: "DRINKS"}
	assert.Equal(t, item.ProductKey(), upper.ProductKey())
	assert.Equal(t, item.OfferKey(), upper.OfferKey())
}
