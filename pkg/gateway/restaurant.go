package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Restaurant is the restaurant service's listing record.
type Restaurant struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	MinOrderAmount  decimal.Decimal `json:"min_order_amount"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	DeliveryTimeMin int             `json:"delivery_time_min"`
	DeliveryTimeMax int             `json:"delivery_time_max"`
	IsActive        bool            `json:"is_active"`
}

// Category is a menu section within a restaurant.
type Category struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// Dish is a restaurant menu entry.
type Dish struct {
	ID            int64           `json:"id"`
	RestaurantID  int64           `json:"restaurant_id"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsAvailable   bool            `json:"is_available"`
	IsRecommended bool            `json:"is_recommended"`
}

// CategoryInput is the payload for category create/update (restaurant admin).
type CategoryInput struct {
	RestaurantID int64  `json:"restaurant_id,omitempty"`
	Name         string `json:"name,omitempty"`
	DisplayOrder int    `json:"display_order,omitempty"`
}

// DishInput is the payload for dish create/update (restaurant admin).
type DishInput struct {
	RestaurantID  int64            `json:"restaurant_id,omitempty"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	Name          string           `json:"name,omitempty"`
	Description   string           `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	IsAvailable   *bool            `json:"is_available,omitempty"`
	IsRecommended *bool            `json:"is_recommended,omitempty"`
}

// Restaurants lists all restaurants.
func (c *Client) Restaurants(ctx context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	url := c.config.RestaurantURL + "/restaurants"
	if err := c.doJSON(ctx, http.MethodGet, url, nil, "", &restaurants); err != nil {
		return nil, fmt.Errorf("restaurants: %w", err)
	}
	return restaurants, nil
}

// Categories lists the menu categories of one restaurant.
func (c *Client) Categories(ctx context.Context, restaurantID int64) ([]Category, error) {
	var categories []Category
	url := fmt.Sprintf("%s/restaurants/%d/categories", c.config.RestaurantURL, restaurantID)
	if err := c.doJSON(ctx, http.MethodGet, url, nil, "", &categories); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return categories, nil
}

// Dishes lists the dishes of one restaurant.
func (c *Client) Dishes(ctx context.Context, restaurantID int64) ([]Dish, error) {
	var dishes []Dish
	url := fmt.Sprintf("%s/restaurants/%d/dishes", c.config.RestaurantURL, restaurantID)
	if err := c.doJSON(ctx, http.MethodGet, url, nil, "", &dishes); err != nil {
		return nil, fmt.Errorf("dishes: %w", err)
	}
	return dishes, nil
}

// CreateCategory adds a menu category (restaurant admin).
func (c *Client) CreateCategory(ctx context.Context, credential string, input CategoryInput) (Category, error) {
	var category Category
	url := c.config.RestaurantURL + "/categories"
	if err := c.doJSON(ctx, http.MethodPost, url, input, credential, &category); err != nil {
		return Category{}, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// UpdateCategory updates a menu category (restaurant admin).
func (c *Client) UpdateCategory(ctx context.Context, credential string, categoryID int64, input CategoryInput) (Category, error) {
	var category Category
	url := fmt.Sprintf("%s/categories/%d", c.config.RestaurantURL, categoryID)
	if err := c.doJSON(ctx, http.MethodPut, url, input, credential, &category); err != nil {
		return Category{}, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a menu category (restaurant admin).
func (c *Client) DeleteCategory(ctx context.Context, credential string, categoryID int64) error {
	url := fmt.Sprintf("%s/categories/%d", c.config.RestaurantURL, categoryID)
	if err := c.doJSON(ctx, http.MethodDelete, url, nil, credential, nil); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// CreateDish adds a dish (restaurant admin).
func (c *Client) CreateDish(ctx context.Context, credential string, input DishInput) (Dish, error) {
	var dish Dish
	url := c.config.RestaurantURL + "/dishes"
	if err := c.doJSON(ctx, http.MethodPost, url, input, credential, &dish); err != nil {
		return Dish{}, fmt.Errorf("create dish: %w", err)
	}
	return dish, nil
}

// UpdateDish updates a dish (restaurant admin).
func (c *Client) UpdateDish(ctx context.Context, credential string, dishID int64, input DishInput) (Dish, error) {
	var dish Dish
	url := fmt.Sprintf("%s/dishes/%d", c.config.RestaurantURL, dishID)
	if err := c.doJSON(ctx, http.MethodPut, url, input, credential, &dish); err != nil {
		return Dish{}, fmt.Errorf("update dish: %w", err)
	}
	return dish, nil
}

// DeleteDish removes a dish (restaurant admin).
func (c *Client) DeleteDish(ctx context.Context, credential string, dishID int64) error {
	url := fmt.Sprintf("%s/dishes/%d", c.config.RestaurantURL, dishID)
	if err := c.doJSON(ctx, http.MethodDelete, url, nil, credential, nil); err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	return nil
}
