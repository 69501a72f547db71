package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// RegisterInput is the payload for creating a new user account.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// UserProfile is the user service's account representation.
type UserProfile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

// AddressInput is the payload for creating a delivery address.
type AddressInput struct {
	Title         string `json:"title,omitempty"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code,omitempty"`
	IsDefault     bool   `json:"is_default,omitempty"`
}

// Address is a stored delivery address.
type Address struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	Title         string `json:"title,omitempty"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code,omitempty"`
	IsDefault     bool   `json:"is_default"`
}

// Register creates a new account on the user service.
func (c *Client) Register(ctx context.Context, input RegisterInput) (UserProfile, error) {
	var profile UserProfile
	if err := c.doJSON(ctx, http.MethodPost, c.config.UserURL+"/users", input, "", &profile); err != nil {
		return UserProfile{}, fmt.Errorf("register: %w", err)
	}
	return profile, nil
}

// Profile returns the account profile behind the credential.
func (c *Client) Profile(ctx context.Context, credential string) (UserProfile, error) {
	var profile UserProfile
	if err := c.doJSON(ctx, http.MethodGet, c.config.UserURL+"/users/me", nil, credential, &profile); err != nil {
		return UserProfile{}, fmt.Errorf("profile: %w", err)
	}
	return profile, nil
}

// CreateAddress stores a delivery address for the account.
func (c *Client) CreateAddress(ctx context.Context, credential string, input AddressInput) (Address, error) {
	var address Address
	if err := c.doJSON(ctx, http.MethodPost, c.config.UserURL+"/users/me/addresses", input, credential, &address); err != nil {
		return Address{}, fmt.Errorf("create address: %w", err)
	}
	return address, nil
}

// Addresses lists the account's delivery addresses.
func (c *Client) Addresses(ctx context.Context, credential string) ([]Address, error) {
	var addresses []Address
	if err := c.doJSON(ctx, http.MethodGet, c.config.UserURL+"/users/me/addresses", nil, credential, &addresses); err != nil {
		return nil, fmt.Errorf("addresses: %w", err)
	}
	return addresses, nil
}
