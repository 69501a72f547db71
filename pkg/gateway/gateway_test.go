package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		AuthURL:       serverURL,
		UserURL:       serverURL,
		OrderURL:      serverURL,
		RestaurantURL: serverURL,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresServiceURLs(t *testing.T) {
	_, err := NewClient(Config{AuthURL: "http://localhost:8001"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "401 is unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "403 is unauthorized", status: http.StatusForbidden, wantErr: ErrUnauthorized},
		{name: "404 is not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "422 is invalid request", status: http.StatusUnprocessableEntity, wantErr: ErrInvalidRequest},
		{name: "500 is unavailable", status: http.StatusInternalServerError, wantErr: ErrUnavailable},
		{name: "503 is unavailable", status: http.StatusServiceUnavailable, wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL)
			_, err := client.ListCart(context.Background(), "token")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNetworkFailureIsUnavailable(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.ListCart(context.Background(), "token")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.ListCart(context.Background(), "my-token")
	require.NoError(t, err)

	assert.Equal(t, "Bearer my-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestLogin_SendsFormWithUsernameField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "anna@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"bearer"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	tokens, err := client.Login(context.Background(), "anna@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "at", tokens.AccessToken)
	assert.Equal(t, "rt", tokens.RefreshToken)
}

func TestRemoveCartItem_NotFoundIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.NoError(t, client.RemoveCartItem(context.Background(), "token", 42))
}

func TestLogout_EmptyRefreshTokenIsNoOp(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.Logout(context.Background(), ""))
	assert.False(t, called)
}

func TestAddCartItem_DecodesLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/add", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":11,"dish_id":7,"quantity":2}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	line, err := client.AddCartItem(context.Background(), "token", 7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(11), line.ID)
	assert.Equal(t, int64(7), line.DishID)
	assert.Equal(t, 2, line.Quantity)
}
