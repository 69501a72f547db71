// Package session owns the credential lifecycle. It logs users in and out
// against the platform services, persists tokens between runs, and feeds
// every credential change into the cart synchronizer.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/foodexpress/foodexpress-client/internal/cart"
	"github.com/foodexpress/foodexpress-client/internal/catalog"
	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
)

// Config holds the session dependencies.
type Config struct {
	Gateway *gateway.Client
	Catalog *catalog.Index
	// StatePath overrides the default auth state file location.
	StatePath string
}

// Session tracks the signed-in account and its cart.
type Session struct {
	gw        *gateway.Client
	catalog   *catalog.Index
	cart      *cart.Synchronizer
	statePath string

	mu    sync.Mutex
	state authState
}

// NewSession creates a session in the guest state. Call Restore to pick up
// a previously persisted login.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Gateway == nil {
		return nil, errors.New("session: gateway is required")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}

	path := cfg.StatePath
	if path == "" {
		var err error
		path, err = defaultStatePath()
		if err != nil {
			return nil, err
		}
	}

	s := &Session{
		gw:        cfg.Gateway,
		catalog:   cfg.Catalog,
		statePath: path,
	}
	s.cart = cart.NewSynchronizer(cart.Config{
		Gateway: cartGateway{client: cfg.Gateway},
		Lookup:  cfg.Catalog.Attrs,
	})
	return s, nil
}

// Cart exposes the observable cart. All cart mutations go through it.
func (s *Session) Cart() *cart.Synchronizer {
	return s.cart
}

// AddDish puts one unit of the dish in the cart, resolving its display
// attributes from the catalog.
func (s *Session) AddDish(dishID string) error {
	return s.cart.AddOne(s.catalog.Attrs(dishID))
}

// RemoveDish drops the dish from the cart.
func (s *Session) RemoveDish(dishID string) {
	s.cart.Remove(dishID)
}

// SetDishQuantity sets the dish's cart quantity; zero or below removes it.
func (s *Session) SetDishQuantity(dishID string, quantity int) {
	s.cart.SetQuantity(dishID, quantity)
}

// Restore loads persisted tokens from disk and, if the access token has not
// expired, resumes the signed-in state. An expired token is discarded.
func (s *Session) Restore() bool {
	st, err := loadState(s.statePath)
	if err != nil {
		logger.Debug("No persisted auth state to restore", map[string]interface{}{
			"path": s.statePath,
		})
		return false
	}

	if tokenExpired(st.AccessToken) {
		logger.Info("Discarding expired persisted session", map[string]interface{}{
			"email": st.Email,
		})
		_ = removeState(s.statePath)
		return false
	}

	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.cart.SetCredential(st.AccessToken)

	logger.Info("Session restored", map[string]interface{}{
		"email": st.Email,
		"role":  st.Role,
	})
	return true
}

// Login authenticates against the auth service and switches the cart into
// the signed-in state, which triggers reconciliation of any guest cart.
func (s *Session) Login(ctx context.Context, email, password string) (gateway.AuthUser, error) {
	tokens, err := s.gw.Login(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return gateway.AuthUser{}, err
	}

	user, err := s.gw.Me(ctx, tokens.AccessToken)
	if err != nil {
		logger.Error("Failed to fetch authenticated user", err, map[string]interface{}{
			"email": email,
		})
		return gateway.AuthUser{}, err
	}

	st := authState{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Email:        user.Email,
		Role:         user.Role,
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	if err := saveState(s.statePath, st); err != nil {
		logger.Warn("Failed to persist auth state", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.cart.SetCredential(tokens.AccessToken)

	logger.Info("User logged in", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})
	return user, nil
}

// Register creates the account on the user service and then logs in.
func (s *Session) Register(ctx context.Context, input gateway.RegisterInput) (gateway.AuthUser, error) {
	if _, err := s.gw.Register(ctx, input); err != nil {
		logger.Warn("Registration failed", map[string]interface{}{
			"email": input.Email,
			"error": err.Error(),
		})
		return gateway.AuthUser{}, err
	}
	return s.Login(ctx, input.Email, input.Password)
}

// Logout drops the credential. The server-side revocation is best effort;
// the local session ends regardless of its outcome. The server cart is
// left as is so it survives for the next login.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	refresh := s.state.RefreshToken
	email := s.state.Email
	s.state = authState{}
	s.mu.Unlock()

	if err := s.gw.Logout(ctx, refresh); err != nil {
		logger.Warn("Server-side logout failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := removeState(s.statePath); err != nil {
		logger.Warn("Failed to remove persisted auth state", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.cart.SetCredential("")

	logger.Info("User logged out", map[string]interface{}{
		"email": email,
	})
}

// Credential returns the current access token, or "" for a guest.
func (s *Session) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

// Email returns the signed-in account email, or "" for a guest.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Email
}

// Role returns the signed-in account role, or "" for a guest.
func (s *Session) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Role
}

// LoggedIn reports whether a credential is present.
func (s *Session) LoggedIn() bool {
	return s.Credential() != ""
}
