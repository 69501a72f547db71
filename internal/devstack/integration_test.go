package devstack

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodexpress/foodexpress-client/config"
	"github.com/foodexpress/foodexpress-client/internal/cart"
	"github.com/foodexpress/foodexpress-client/internal/catalog"
	"github.com/foodexpress/foodexpress-client/internal/orders"
	"github.com/foodexpress/foodexpress-client/internal/session"
	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient is the full client wired against an in-process stack.
type testClient struct {
	gateway *gateway.Client
	index   *catalog.Index
	loader  *catalog.Loader
	session *session.Session
}

func setupStack(t *testing.T) *testClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.DevstackConfig{
		GinMode:            gin.TestMode,
		SQLitePath:         filepath.Join(t.TempDir(), "devstack.db"),
		JWTSecret:          "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}

	db, err := OpenDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, Seed(db))

	stack, err := NewStack(cfg, db)
	require.NoError(t, err)

	authServer := httptest.NewServer(stack.AuthEngine())
	userServer := httptest.NewServer(stack.UserEngine())
	orderServer := httptest.NewServer(stack.OrderEngine())
	restaurantServer := httptest.NewServer(stack.RestaurantEngine())
	notificationServer := httptest.NewServer(stack.NotificationEngine())
	t.Cleanup(func() {
		authServer.Close()
		userServer.Close()
		orderServer.Close()
		restaurantServer.Close()
		notificationServer.Close()
	})

	client, err := gateway.NewClient(gateway.Config{
		AuthURL:         authServer.URL,
		UserURL:         userServer.URL,
		OrderURL:        orderServer.URL,
		RestaurantURL:   restaurantServer.URL,
		NotificationURL: notificationServer.URL,
	})
	require.NoError(t, err)

	index := catalog.NewIndex()
	loader := catalog.NewLoader(client, index)
	require.NoError(t, loader.Load(context.Background()))

	sess, err := session.NewSession(session.Config{
		Gateway:   client,
		Catalog:   index,
		StatePath: filepath.Join(t.TempDir(), "auth.json"),
	})
	require.NoError(t, err)

	return &testClient{
		gateway: client,
		index:   index,
		loader:  loader,
		session: sess,
	}
}

func (tc *testClient) login(t *testing.T) {
	t.Helper()
	_, err := tc.session.Login(context.Background(), "demo@example.com", "password")
	require.NoError(t, err)
	tc.session.Cart().Wait()
}

// dishID looks up a seeded dish by name.
func (tc *testClient) dishID(t *testing.T, name string) string {
	t.Helper()
	for _, dish := range tc.index.Dishes() {
		if dish.Name == name {
			return dish.ID
		}
	}
	t.Fatalf("seeded dish %q not found in catalog", name)
	return ""
}

func TestStack_CatalogLoads(t *testing.T) {
	tc := setupStack(t)

	restaurants := tc.index.Restaurants()
	require.Len(t, restaurants, 3)
	assert.Equal(t, "Pizza House", restaurants[0].Name)
	assert.Equal(t, "30-45 мин", restaurants[0].DeliveryTime)

	margherita := tc.dishID(t, "Маргарита")
	attrs := tc.index.Attrs(margherita)
	assert.Equal(t, "Маргарита", attrs.Name)
	assert.True(t, attrs.Price.Equal(decimal.RequireFromString("250")))
	assert.Equal(t, "Pizza House", attrs.RestaurantName)
}

func TestStack_LoginSyncsCartMutations(t *testing.T) {
	tc := setupStack(t)
	tc.login(t)

	margherita := tc.dishID(t, "Маргарита")
	cartSync := tc.session.Cart()
	require.NoError(t, tc.session.AddDish(margherita))
	require.NoError(t, tc.session.AddDish(margherita))
	cartSync.Wait()

	lines, err := tc.gateway.ListCart(context.Background(), tc.session.Credential())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	tc.session.SetDishQuantity(margherita, 3)
	cartSync.Wait()

	lines, err = tc.gateway.ListCart(context.Background(), tc.session.Credential())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	tc.session.RemoveDish(margherita)
	cartSync.Wait()

	lines, err = tc.gateway.ListCart(context.Background(), tc.session.Credential())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStack_GuestCartReconciledOnLogin(t *testing.T) {
	tc := setupStack(t)

	margherita := tc.dishID(t, "Маргарита")
	pepperoni := tc.dishID(t, "Пепперони")

	cartSync := tc.session.Cart()
	require.NoError(t, tc.session.AddDish(margherita))
	require.NoError(t, tc.session.AddDish(margherita))
	require.NoError(t, tc.session.AddDish(pepperoni))
	assert.Equal(t, cart.StateGuest, cartSync.Snapshot().State)

	tc.login(t)

	snapshot := cartSync.Snapshot()
	assert.Equal(t, cart.StateSynced, snapshot.State)
	require.Len(t, snapshot.Items, 2)

	lines, err := tc.gateway.ListCart(context.Background(), tc.session.Credential())
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	for _, item := range snapshot.Items {
		require.NotNil(t, item.ServerItemID)
	}
}

func TestStack_CheckoutCreatesOrder(t *testing.T) {
	tc := setupStack(t)
	tc.login(t)

	margherita := tc.dishID(t, "Маргарита")
	caesar := tc.dishID(t, "Цезарь")

	cartSync := tc.session.Cart()
	require.NoError(t, tc.session.AddDish(margherita))
	tc.session.SetDishQuantity(margherita, 3)
	require.NoError(t, tc.session.AddDish(caesar))
	cartSync.Wait()

	svc := orders.NewService(tc.gateway, tc.session, cartSync)
	result, err := svc.Checkout(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)

	// 250*3 + 199.50 + 150 delivery
	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("1099.50")),
		"total was %s", result.TotalAmount)

	cartSync.Wait()
	assert.Empty(t, cartSync.Snapshot().Items)

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history.Active, 1)
	assert.Empty(t, history.Archived)
	require.Len(t, history.Active[0].Items, 2)

	require.NoError(t, svc.Cancel(context.Background(), history.Active[0].ID))

	history, err = svc.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history.Active)
	require.Len(t, history.Archived, 1)
	assert.Equal(t, "cancelled", history.Archived[0].Status)
}

func TestStack_OrderEventsReachSubscriber(t *testing.T) {
	tc := setupStack(t)
	tc.login(t)

	margherita := tc.dishID(t, "Маргарита")
	cartSync := tc.session.Cart()
	require.NoError(t, tc.session.AddDish(margherita))
	cartSync.Wait()

	stream, err := tc.gateway.SubscribeEvents(context.Background(), tc.session.Credential())
	require.NoError(t, err)
	defer stream.Close()

	svc := orders.NewService(tc.gateway, tc.session, cartSync)
	result, err := svc.Checkout(context.Background(), nil)
	require.NoError(t, err)

	select {
	case event := <-stream.Events():
		assert.Equal(t, "order_status", event.Type)
		assert.Equal(t, result.ID, event.OrderID)
		assert.Equal(t, "pending", event.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for order event")
	}
}

func TestStack_LogoutKeepsServerCart(t *testing.T) {
	tc := setupStack(t)
	tc.login(t)

	margherita := tc.dishID(t, "Маргарита")
	cartSync := tc.session.Cart()
	require.NoError(t, tc.session.AddDish(margherita))
	cartSync.Wait()

	credential := tc.session.Credential()
	tc.session.Logout(context.Background())
	cartSync.Wait()

	assert.Empty(t, cartSync.Snapshot().Items)
	assert.Equal(t, cart.StateGuest, cartSync.Snapshot().State)

	// The server cart survives the local clear.
	lines, err := tc.gateway.ListCart(context.Background(), credential)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
