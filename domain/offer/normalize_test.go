package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FieldPriority(t *testing.T) {
	rec := map[string]any{
		"title":         "A",
		"product_title": "B",
		"name":          "C",
		"link":          "https://a.example/x",
		"product_link":  "https://b.example/y",
		"source":        "ShopA",
		"merchant":      "ShopB",
		"price":         "$12.50",
	}

	o := Normalize(rec)
	assert.Equal(t, "A", o.Title)
	assert.Equal(t, "https://a.example/x", o.URL)
	assert.Equal(t, "ShopA", o.Seller)
	require.NotNil(t, o.Price)
	assert.Equal(t, 12.50, *o.Price)
}

func TestNormalize_Fallbacks(t *testing.T) {
	rec := map[string]any{
		"product_title":   "Fallback Title",
		"offer_link":      "https://c.example/z",
		"store":           "Corner Store",
		"extracted_price": float64(8),
	}

	o := Normalize(rec)
	assert.Equal(t, "Fallback Title", o.Title)
	assert.Equal(t, "https://c.example/z", o.URL)
	assert.Equal(t, "Corner Store", o.Seller)
	require.NotNil(t, o.Price)
	assert.Equal(t, 8.0, *o.Price)
}

func TestNormalize_EmptyRecord(t *testing.T) {
	o := Normalize(map[string]any{})
	assert.Empty(t, o.Title)
	assert.Empty(t, o.URL)
	assert.Empty(t, o.Seller)
	assert.Nil(t, o.Price)
	assert.NotNil(t, o.Raw)
}

func TestNormalize_KeepsRawVerbatim(t *testing.T) {
	rec := map[string]any{
		"title":    "Widget",
		"obscure":  "provider-specific field",
		"nested":   map[string]any{"deep": true},
		"bad_url":  "not a url at all",
		"link":     "also not a url",
	}

	o := Normalize(rec)
	assert.Equal(t, rec, o.Raw)
	// Malformed URLs pass through unvalidated.
	assert.Equal(t, "also not a url", o.URL)
}

func TestLowest(t *testing.T) {
	price := func(f float64) *float64 { return &f }

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Lowest(nil))
		assert.Nil(t, Lowest([]Offer{}))
	})

	t.Run("all unpriced", func(t *testing.T) {
		assert.Nil(t, Lowest([]Offer{{}, {}, {}}))
	})

	t.Run("mixed", func(t *testing.T) {
		offers := []Offer{
			{Price: price(12.50)},
			{},
			{Price: price(8)},
			{Price: price(99.99)},
		}
		got := Lowest(offers)
		require.NotNil(t, got)
		assert.Equal(t, 8.0, *got)
	})

	t.Run("order independent", func(t *testing.T) {
		a := []Offer{{Price: price(3)}, {Price: price(1)}, {Price: price(2)}}
		b := []Offer{{Price: price(2)}, {Price: price(3)}, {Price: price(1)}}
		require.NotNil(t, Lowest(a))
		require.NotNil(t, Lowest(b))
		assert.Equal(t, *Lowest(a), *Lowest(b))
	})
}
