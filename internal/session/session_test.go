package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodexpress/foodexpress-client/internal/cart"
	"github.com/foodexpress/foodexpress-client/internal/catalog"
	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// newPlatformServer stubs the auth, user, and order endpoints the session
// touches during login, registration, and reconciliation.
func newPlatformServer(t *testing.T, accessToken string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "anna@example.com", r.PostForm.Get("username"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"` + accessToken + `","refresh_token":"refresh-1","token_type":"bearer"}`))
	})
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"email":"anna@example.com","role":"user","is_active":true}`))
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"email":"anna@example.com","role":"user","is_active":true}`))
	})
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	return httptest.NewServer(mux)
}

func newTestSession(t *testing.T, serverURL, statePath string) *Session {
	t.Helper()
	client, err := gateway.NewClient(gateway.Config{
		AuthURL:       serverURL,
		UserURL:       serverURL,
		OrderURL:      serverURL,
		RestaurantURL: serverURL,
	})
	require.NoError(t, err)

	s, err := NewSession(Config{
		Gateway:   client,
		Catalog:   catalog.NewIndex(),
		StatePath: statePath,
	})
	require.NoError(t, err)
	return s
}

func TestSession_LoginPersistsState(t *testing.T) {
	token := testToken(t, time.Now().Add(time.Hour))
	server := newPlatformServer(t, token)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "auth.json")
	s := newTestSession(t, server.URL, statePath)

	user, err := s.Login(context.Background(), "anna@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, token, s.Credential())
	assert.True(t, s.LoggedIn())

	s.Cart().Wait()
	assert.Equal(t, cart.StateSynced, s.Cart().Snapshot().State)

	st, err := loadState(statePath)
	require.NoError(t, err)
	assert.Equal(t, token, st.AccessToken)
	assert.Equal(t, "refresh-1", st.RefreshToken)
	assert.Equal(t, "anna@example.com", st.Email)
	assert.Equal(t, "user", st.Role)
}

func TestSession_RestoreResumesLogin(t *testing.T) {
	token := testToken(t, time.Now().Add(time.Hour))
	server := newPlatformServer(t, token)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, saveState(statePath, authState{
		AccessToken: token,
		Email:       "anna@example.com",
		Role:        "user",
	}))

	s := newTestSession(t, server.URL, statePath)
	assert.True(t, s.Restore())
	assert.Equal(t, token, s.Credential())
	assert.Equal(t, "anna@example.com", s.Email())

	s.Cart().Wait()
	assert.Equal(t, cart.StateSynced, s.Cart().Snapshot().State)
}

func TestSession_RestoreDiscardsExpiredToken(t *testing.T) {
	token := testToken(t, time.Now().Add(-time.Hour))
	server := newPlatformServer(t, token)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, saveState(statePath, authState{
		AccessToken: token,
		Email:       "anna@example.com",
	}))

	s := newTestSession(t, server.URL, statePath)
	assert.False(t, s.Restore())
	assert.False(t, s.LoggedIn())
	assert.Equal(t, cart.StateGuest, s.Cart().Snapshot().State)

	_, err := os.Stat(statePath)
	assert.True(t, os.IsNotExist(err))
}

func TestSession_LogoutClearsState(t *testing.T) {
	token := testToken(t, time.Now().Add(time.Hour))
	server := newPlatformServer(t, token)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "auth.json")
	s := newTestSession(t, server.URL, statePath)

	_, err := s.Login(context.Background(), "anna@example.com", "secret")
	require.NoError(t, err)
	s.Cart().Wait()

	s.Logout(context.Background())
	s.Cart().Wait()

	assert.False(t, s.LoggedIn())
	assert.Equal(t, "", s.Email())
	assert.Equal(t, cart.StateGuest, s.Cart().Snapshot().State)

	_, err = os.Stat(statePath)
	assert.True(t, os.IsNotExist(err))
}

func TestSession_RegisterThenLogin(t *testing.T) {
	token := testToken(t, time.Now().Add(time.Hour))
	server := newPlatformServer(t, token)
	defer server.Close()

	statePath := filepath.Join(t.TempDir(), "auth.json")
	s := newTestSession(t, server.URL, statePath)

	user, err := s.Register(context.Background(), gateway.RegisterInput{
		Email:     "anna@example.com",
		Password:  "secret",
		FirstName: "Анна",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.True(t, s.LoggedIn())
	s.Cart().Wait()
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired("not-a-jwt"))
	assert.True(t, tokenExpired(testToken(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(testToken(t, time.Now().Add(time.Minute))))

	// Tokens with no exp claim are kept.
	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
	signed, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	assert.False(t, tokenExpired(signed))
}
