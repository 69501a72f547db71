package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one row of the server-side cart. The id is the server's cart
// item id, distinct from the dish id.
type CartLine struct {
	ID       int64 `json:"id"`
	DishID   int64 `json:"dish_id"`
	Quantity int   `json:"quantity"`
}

// CheckoutResult is the order service's response to a checkout.
type CheckoutResult struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// OrderLine is one dish entry of a placed order.
type OrderLine struct {
	DishID   int64           `json:"dish_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is a placed order with line detail.
type Order struct {
	ID           int64           `json:"id"`
	RestaurantID int64           `json:"restaurant_id"`
	Status       string          `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	Items        []OrderLine     `json:"items"`
}

// ListCart returns the authoritative server cart for the credential.
func (c *Client) ListCart(ctx context.Context, credential string) ([]CartLine, error) {
	var lines []CartLine
	if err := c.doJSON(ctx, http.MethodGet, c.config.OrderURL+"/cart", nil, credential, &lines); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return lines, nil
}

// AddCartItem creates a cart row for the dish. The server may merge into an
// existing row for the same dish; callers holding a known cart item id must
// use UpdateCartItem instead of re-adding.
func (c *Client) AddCartItem(ctx context.Context, credential string, dishID int64, quantity int) (CartLine, error) {
	payload := map[string]interface{}{
		"dish_id":  dishID,
		"quantity": quantity,
	}

	var line CartLine
	if err := c.doJSON(ctx, http.MethodPost, c.config.OrderURL+"/cart/add", payload, credential, &line); err != nil {
		return CartLine{}, fmt.Errorf("add cart item: %w", err)
	}
	return line, nil
}

// UpdateCartItem sets the quantity of an existing cart row.
func (c *Client) UpdateCartItem(ctx context.Context, credential string, cartItemID int64, quantity int) (CartLine, error) {
	payload := map[string]interface{}{"quantity": quantity}
	url := fmt.Sprintf("%s/cart/item/%d", c.config.OrderURL, cartItemID)

	var line CartLine
	if err := c.doJSON(ctx, http.MethodPatch, url, payload, credential, &line); err != nil {
		return CartLine{}, fmt.Errorf("update cart item: %w", err)
	}
	return line, nil
}

// RemoveCartItem deletes a cart row. A row already gone server-side is
// treated as success.
func (c *Client) RemoveCartItem(ctx context.Context, credential string, cartItemID int64) error {
	url := fmt.Sprintf("%s/cart/item/%d", c.config.OrderURL, cartItemID)
	err := c.doJSON(ctx, http.MethodDelete, url, nil, credential, nil)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// Checkout places an order from the server cart rows of one restaurant.
func (c *Client) Checkout(ctx context.Context, credential string, restaurantID int64, deliveryAddressID *int64) (CheckoutResult, error) {
	payload := map[string]interface{}{
		"restaurant_id":       restaurantID,
		"delivery_address_id": deliveryAddressID,
	}

	var result CheckoutResult
	if err := c.doJSON(ctx, http.MethodPost, c.config.OrderURL+"/checkout", payload, credential, &result); err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}
	return result, nil
}

// Orders lists the account's orders, newest first.
func (c *Client) Orders(ctx context.Context, credential string) ([]Order, error) {
	var orders []Order
	if err := c.doJSON(ctx, http.MethodGet, c.config.OrderURL+"/orders", nil, credential, &orders); err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status (customer side this is
// only used for cancellation).
func (c *Client) UpdateOrderStatus(ctx context.Context, credential string, orderID int64, status string) error {
	payload := map[string]string{"status": status}
	url := fmt.Sprintf("%s/orders/%d/status", c.config.OrderURL, orderID)
	if err := c.doJSON(ctx, http.MethodPost, url, payload, credential, nil); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
