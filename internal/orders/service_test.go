package orders

import (
	"context"
	"testing"
	"time"

	"github.com/foodexpress/foodexpress-client/internal/cart"
	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderGateway struct {
	orders       []gateway.Order
	ordersErr    error
	statusOrder  int64
	statusValue  string
	checkoutRest int64
	checkoutAddr *int64
	checkoutRes  gateway.CheckoutResult
	checkoutErr  error
}

func (f *fakeOrderGateway) Orders(ctx context.Context, credential string) ([]gateway.Order, error) {
	return f.orders, f.ordersErr
}

func (f *fakeOrderGateway) UpdateOrderStatus(ctx context.Context, credential string, orderID int64, status string) error {
	f.statusOrder = orderID
	f.statusValue = status
	return nil
}

func (f *fakeOrderGateway) Checkout(ctx context.Context, credential string, restaurantID int64, deliveryAddressID *int64) (gateway.CheckoutResult, error) {
	f.checkoutRest = restaurantID
	f.checkoutAddr = deliveryAddressID
	return f.checkoutRes, f.checkoutErr
}

type staticCreds string

func (c staticCreds) Credential() string { return string(c) }

type idleCartGateway struct{}

func (idleCartGateway) ListCart(ctx context.Context, credential string) ([]cart.ServerLine, error) {
	return nil, nil
}

func (idleCartGateway) AddCartItem(ctx context.Context, credential string, dishID int64, quantity int) (cart.ServerLine, error) {
	return cart.ServerLine{}, nil
}

func (idleCartGateway) UpdateCartItem(ctx context.Context, credential string, cartItemID int64, quantity int) (cart.ServerLine, error) {
	return cart.ServerLine{}, nil
}

func (idleCartGateway) RemoveCartItem(ctx context.Context, credential string, cartItemID int64) error {
	return nil
}

func margherita() cart.ItemAttrs {
	return cart.ItemAttrs{
		DishID:         "7",
		Name:           "Маргарита",
		Price:          decimal.NewFromInt(250),
		RestaurantID:   "1",
		RestaurantName: "Pizza House",
	}
}

func newGuestCart() *cart.Synchronizer {
	return cart.NewSynchronizer(cart.Config{
		Gateway: idleCartGateway{},
	})
}

func order(id int64, status string, createdAt time.Time) gateway.Order {
	return gateway.Order{
		ID:          id,
		Status:      status,
		Subtotal:    decimal.NewFromInt(500),
		DeliveryFee: decimal.NewFromInt(150),
		TotalAmount: decimal.NewFromInt(650),
		CreatedAt:   createdAt,
		Items: []gateway.OrderLine{
			{DishID: 7, Quantity: 2, Price: decimal.NewFromInt(250)},
		},
	}
}

func TestService_HistorySplitsActiveAndArchived(t *testing.T) {
	now := time.Now()
	gw := &fakeOrderGateway{orders: []gateway.Order{
		order(1, "pending", now.Add(-4*time.Hour)),
		order(2, "completed", now.Add(-3*time.Hour)),
		order(3, "preparing", now.Add(-1*time.Hour)),
		order(4, "cancelled", now.Add(-2*time.Hour)),
		order(5, "delivered", now.Add(-5*time.Hour)),
	}}
	svc := NewService(gw, staticCreds("token"), newGuestCart())

	history, err := svc.History(context.Background())
	require.NoError(t, err)

	require.Len(t, history.Active, 2)
	assert.Equal(t, int64(3), history.Active[0].ID)
	assert.Equal(t, int64(1), history.Active[1].ID)

	require.Len(t, history.Archived, 3)
	assert.Equal(t, int64(4), history.Archived[0].ID)
	assert.Equal(t, int64(2), history.Archived[1].ID)
	assert.Equal(t, int64(5), history.Archived[2].ID)
}

func TestService_HistoryRequiresLogin(t *testing.T) {
	svc := NewService(&fakeOrderGateway{}, staticCreds(""), newGuestCart())

	_, err := svc.History(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestService_Cancel(t *testing.T) {
	gw := &fakeOrderGateway{}
	svc := NewService(gw, staticCreds("token"), newGuestCart())

	require.NoError(t, svc.Cancel(context.Background(), 42))
	assert.Equal(t, int64(42), gw.statusOrder)
	assert.Equal(t, StatusCancelled, gw.statusValue)
}

func TestService_Checkout(t *testing.T) {
	gw := &fakeOrderGateway{
		checkoutRes: gateway.CheckoutResult{
			ID:          9,
			Status:      "pending",
			TotalAmount: decimal.NewFromInt(650),
		},
	}
	cartSync := newGuestCart()
	require.NoError(t, cartSync.AddOne(margherita()))
	require.NoError(t, cartSync.AddOne(margherita()))
	cartSync.Wait()

	addressID := int64(3)
	svc := NewService(gw, staticCreds("token"), cartSync)

	result, err := svc.Checkout(context.Background(), &addressID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), result.ID)
	assert.Equal(t, int64(1), gw.checkoutRest)
	require.NotNil(t, gw.checkoutAddr)
	assert.Equal(t, int64(3), *gw.checkoutAddr)

	cartSync.Wait()
	assert.Empty(t, cartSync.Snapshot().Items)
}

func TestService_CheckoutEmptyCart(t *testing.T) {
	svc := NewService(&fakeOrderGateway{}, staticCreds("token"), newGuestCart())

	_, err := svc.Checkout(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}
