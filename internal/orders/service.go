// Package orders covers the post-cart lifecycle: checkout, order history
// with an active/archived split, cancellation, and export.
package orders

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/foodexpress/foodexpress-client/internal/cart"
	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
)

var (
	// ErrNotLoggedIn is returned for order operations without a credential.
	ErrNotLoggedIn = errors.New("orders: not logged in")
	// ErrEmptyCart is returned when checking out an empty cart.
	ErrEmptyCart = errors.New("orders: cart is empty")
)

// StatusCancelled is the status a cancelled order is moved to.
const StatusCancelled = "cancelled"

// archivedStatuses are terminal; everything else counts as active.
var archivedStatuses = map[string]bool{
	"completed": true,
	"cancelled": true,
	"delivered": true,
}

// Gateway is the slice of the order service the package needs.
type Gateway interface {
	Orders(ctx context.Context, credential string) ([]gateway.Order, error)
	UpdateOrderStatus(ctx context.Context, credential string, orderID int64, status string) error
	Checkout(ctx context.Context, credential string, restaurantID int64, deliveryAddressID *int64) (gateway.CheckoutResult, error)
}

// CredentialSource yields the current access token, "" for a guest.
type CredentialSource interface {
	Credential() string
}

// History is the order list split by lifecycle.
type History struct {
	Active   []gateway.Order
	Archived []gateway.Order
}

// Service wraps the order gateway with the client-side order workflows.
type Service struct {
	gw    Gateway
	creds CredentialSource
	cart  *cart.Synchronizer
}

// NewService creates an order service.
func NewService(gw Gateway, creds CredentialSource, cartSync *cart.Synchronizer) *Service {
	return &Service{
		gw:    gw,
		creds: creds,
		cart:  cartSync,
	}
}

// History fetches the account's orders, newest first, split into active and
// archived.
func (s *Service) History(ctx context.Context) (History, error) {
	credential := s.creds.Credential()
	if credential == "" {
		return History{}, ErrNotLoggedIn
	}

	all, err := s.gw.Orders(ctx, credential)
	if err != nil {
		logger.Error("Failed to fetch orders", err, nil)
		return History{}, err
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	var history History
	for _, order := range all {
		if archivedStatuses[order.Status] {
			history.Archived = append(history.Archived, order)
		} else {
			history.Active = append(history.Active, order)
		}
	}
	return history, nil
}

// Cancel moves an active order to cancelled.
func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	credential := s.creds.Credential()
	if credential == "" {
		return ErrNotLoggedIn
	}

	if err := s.gw.UpdateOrderStatus(ctx, credential, orderID, StatusCancelled); err != nil {
		logger.Error("Failed to cancel order", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": orderID,
	})
	return nil
}

// Checkout places an order from the current cart. The server clears its
// cart rows as part of checkout, so on success the local cart is cleared
// without another round of deletes.
func (s *Service) Checkout(ctx context.Context, deliveryAddressID *int64) (gateway.CheckoutResult, error) {
	credential := s.creds.Credential()
	if credential == "" {
		return gateway.CheckoutResult{}, ErrNotLoggedIn
	}

	snapshot := s.cart.Snapshot()
	if len(snapshot.Items) == 0 {
		return gateway.CheckoutResult{}, ErrEmptyCart
	}

	restaurantID, err := strconv.ParseInt(snapshot.Items[0].RestaurantID, 10, 64)
	if err != nil {
		return gateway.CheckoutResult{}, errors.New("orders: cart restaurant is unknown")
	}

	result, err := s.gw.Checkout(ctx, credential, restaurantID, deliveryAddressID)
	if err != nil {
		logger.Error("Checkout failed", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return gateway.CheckoutResult{}, err
	}

	s.cart.Clear(false)

	logger.Info("Order placed", map[string]interface{}{
		"order_id": result.ID,
		"total":    result.TotalAmount.String(),
	})
	return result, nil
}
