// Package catalog maintains the read-only dish lookup the cart renders
// against. The index is rebuilt wholesale from menu loads; lookups never
// fail, unknown dishes get a synthetic fallback record so the cart stays
// renderable when the catalog has not loaded yet or a dish was retired.
package catalog

import (
	"fmt"
	"sync"

	"github.com/foodexpress/foodexpress-client/internal/cart"
	"github.com/shopspring/decimal"
)

// Restaurant is a delivery restaurant as shown to the customer.
type Restaurant struct {
	ID           string
	Name         string
	Description  string
	MinOrder     decimal.Decimal
	DeliveryFee  decimal.Decimal
	DeliveryTime string
	IsActive     bool
}

// Dish is a menu entry enriched for display.
type Dish struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal
	Image          string
	RestaurantID   string
	RestaurantName string
	Category       string
	IsAvailable    bool
}

// Index is the dishId -> display attributes lookup. Safe for concurrent
// reads; Rebuild swaps the content atomically.
type Index struct {
	mu          sync.RWMutex
	dishes      map[string]Dish
	restaurants []Restaurant
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{dishes: make(map[string]Dish)}
}

// Rebuild replaces the index content with a fresh menu load.
func (i *Index) Rebuild(restaurants []Restaurant, dishes []Dish) {
	byID := make(map[string]Dish, len(dishes))
	for _, dish := range dishes {
		byID[dish.ID] = dish
	}

	i.mu.Lock()
	i.dishes = byID
	i.restaurants = append([]Restaurant(nil), restaurants...)
	i.mu.Unlock()
}

// Dish returns the catalog record for the id, if known.
func (i *Index) Dish(dishID string) (Dish, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	dish, ok := i.dishes[dishID]
	return dish, ok
}

// Restaurants returns the last loaded restaurant list.
func (i *Index) Restaurants() []Restaurant {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]Restaurant(nil), i.restaurants...)
}

// Dishes returns every dish of the last menu load, in no particular order.
func (i *Index) Dishes() []Dish {
	i.mu.RLock()
	defer i.mu.RUnlock()
	dishes := make([]Dish, 0, len(i.dishes))
	for _, dish := range i.dishes {
		dishes = append(dishes, dish)
	}
	return dishes
}

// Attrs resolves the cart display attributes for a dish id. Unknown ids get
// the fallback record instead of an error.
func (i *Index) Attrs(dishID string) cart.ItemAttrs {
	if dish, ok := i.Dish(dishID); ok {
		return cart.ItemAttrs{
			DishID:         dish.ID,
			Name:           dish.Name,
			Price:          dish.Price,
			Image:          dish.Image,
			RestaurantID:   dish.RestaurantID,
			RestaurantName: dish.RestaurantName,
		}
	}
	return cart.ItemAttrs{
		DishID:         dishID,
		Name:           fmt.Sprintf("Блюдо #%s", dishID),
		Price:          decimal.Zero,
		RestaurantID:   "0",
		RestaurantName: "Ресторан",
	}
}
