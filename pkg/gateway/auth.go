package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// TokenPair is the auth service's response to login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// AuthUser is the authenticated identity returned by the auth service.
type AuthUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Login exchanges email/password for a token pair. The auth service takes
// form encoding with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (TokenPair, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tokens TokenPair
	if err := c.doForm(ctx, c.config.AuthURL+"/login", form, &tokens); err != nil {
		return TokenPair{}, fmt.Errorf("login: %w", err)
	}
	return tokens, nil
}

// Me returns the identity behind the credential.
func (c *Client) Me(ctx context.Context, credential string) (AuthUser, error) {
	var user AuthUser
	if err := c.doJSON(ctx, http.MethodGet, c.config.AuthURL+"/me", nil, credential, &user); err != nil {
		return AuthUser{}, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

// Refresh rotates the refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	payload := map[string]string{"refresh_token": refreshToken}

	var tokens TokenPair
	if err := c.doJSON(ctx, http.MethodPost, c.config.AuthURL+"/refresh", payload, "", &tokens); err != nil {
		return TokenPair{}, fmt.Errorf("refresh: %w", err)
	}
	return tokens, nil
}

// Logout revokes the refresh token. A missing token is a no-op.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	payload := map[string]string{"refresh_token": refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, c.config.AuthURL+"/logout", payload, "", nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
