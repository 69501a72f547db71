package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_AttrsKnownDish(t *testing.T) {
	index := NewIndex()
	index.Rebuild(
		[]Restaurant{{ID: "1", Name: "Pizza House"}},
		[]Dish{{
			ID:             "7",
			Name:           "Маргарита",
			Price:          decimal.RequireFromString("250"),
			Image:          "https://img.example/margherita.jpg",
			RestaurantID:   "1",
			RestaurantName: "Pizza House",
		}},
	)

	attrs := index.Attrs("7")
	assert.Equal(t, "Маргарита", attrs.Name)
	assert.True(t, attrs.Price.Equal(decimal.RequireFromString("250")))
	assert.Equal(t, "Pizza House", attrs.RestaurantName)
}

func TestIndex_AttrsFallbackForUnknownDish(t *testing.T) {
	index := NewIndex()

	attrs := index.Attrs("99")
	assert.Equal(t, "Блюдо #99", attrs.Name)
	assert.True(t, attrs.Price.IsZero())
	assert.Equal(t, "Ресторан", attrs.RestaurantName)
}

func TestIndex_RebuildReplacesContent(t *testing.T) {
	index := NewIndex()
	index.Rebuild(nil, []Dish{{ID: "7", Name: "Маргарита"}})

	index.Rebuild(nil, []Dish{{ID: "9", Name: "Пепперони"}})

	_, ok := index.Dish("7")
	assert.False(t, ok, "stale dishes are dropped on rebuild")
	dish, ok := index.Dish("9")
	require.True(t, ok)
	assert.Equal(t, "Пепперони", dish.Name)
}

func TestPlaceholderImage(t *testing.T) {
	uri := PlaceholderImage("Пицца", 1)

	assert.True(t, strings.HasPrefix(uri, "data:image/svg+xml;charset=utf-8,"))
	assert.Contains(t, uri, "%23FF6B6B", "category gradient color is embedded")
	assert.NotContains(t, uri, "+", "spaces must be percent-encoded for data URIs")

	unknown := PlaceholderImage("Неизвестно", 2)
	assert.Contains(t, unknown, "%239E9E9E", "unknown categories fall back to grey")
}
