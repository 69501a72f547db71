package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
)

// Loader pulls the full menu from the restaurant service and rebuilds the
// index. Invoked once at session start and on every requested reload.
type Loader struct {
	gw    *gateway.Client
	index *Index
}

// NewLoader creates a menu loader feeding the given index
func NewLoader(gw *gateway.Client, index *Index) *Loader {
	return &Loader{gw: gw, index: index}
}

// Load fetches restaurants, then categories and dishes per restaurant
// concurrently, and swaps the result into the index.
func (l *Loader) Load(ctx context.Context) error {
	restaurantsOut, err := l.gw.Restaurants(ctx)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}

	restaurants := make([]Restaurant, 0, len(restaurantsOut))
	nameByID := make(map[string]string, len(restaurantsOut))
	for _, r := range restaurantsOut {
		restaurant := Restaurant{
			ID:           strconv.FormatInt(r.ID, 10),
			Name:         r.Name,
			Description:  r.Description,
			MinOrder:     r.MinOrderAmount,
			DeliveryFee:  r.DeliveryFee,
			DeliveryTime: fmt.Sprintf("%d-%d мин", r.DeliveryTimeMin, r.DeliveryTimeMax),
			IsActive:     r.IsActive,
		}
		restaurants = append(restaurants, restaurant)
		nameByID[restaurant.ID] = restaurant.Name
	}

	var (
		mu     sync.Mutex
		dishes []Dish
		wg     sync.WaitGroup
	)
	for _, r := range restaurantsOut {
		wg.Add(1)
		go func(restaurantID int64) {
			defer wg.Done()

			categories, err := l.gw.Categories(ctx, restaurantID)
			if err != nil {
				logger.Warn("Failed to load restaurant categories", map[string]interface{}{
					"restaurant_id": restaurantID,
					"error":         err.Error(),
				})
				return
			}
			restaurantDishes, err := l.gw.Dishes(ctx, restaurantID)
			if err != nil {
				logger.Warn("Failed to load restaurant dishes", map[string]interface{}{
					"restaurant_id": restaurantID,
					"error":         err.Error(),
				})
				return
			}

			categoryByID := make(map[int64]string, len(categories))
			for _, category := range categories {
				categoryByID[category.ID] = category.Name
			}

			converted := make([]Dish, 0, len(restaurantDishes))
			for i, dish := range restaurantDishes {
				categoryName := "Без категории"
				if dish.CategoryID != nil {
					if name, ok := categoryByID[*dish.CategoryID]; ok {
						categoryName = name
					}
				}
				image := dish.ImageURL
				if image == "" {
					image = PlaceholderImage(categoryName, i+1)
				}
				restID := strconv.FormatInt(dish.RestaurantID, 10)
				converted = append(converted, Dish{
					ID:             strconv.FormatInt(dish.ID, 10),
					Name:           dish.Name,
					Description:    dish.Description,
					Price:          dish.Price,
					Image:          image,
					RestaurantID:   restID,
					RestaurantName: nameByID[restID],
					Category:       categoryName,
					IsAvailable:    dish.IsAvailable,
				})
			}

			mu.Lock()
			dishes = append(dishes, converted...)
			mu.Unlock()
		}(r.ID)
	}
	wg.Wait()

	l.index.Rebuild(restaurants, dishes)
	logger.Info("Menu loaded", map[string]interface{}{
		"restaurants": len(restaurants),
		"dishes":      len(dishes),
	})
	return nil
}
