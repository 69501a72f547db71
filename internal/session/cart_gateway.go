package session

import (
	"context"

	"github.com/foodexpress/foodexpress-client/internal/cart"
	"github.com/foodexpress/foodexpress-client/pkg/gateway"
)

// cartGateway adapts the order-service client to the cart synchronizer's
// gateway interface.
type cartGateway struct {
	client *gateway.Client
}

func (g cartGateway) ListCart(ctx context.Context, credential string) ([]cart.ServerLine, error) {
	lines, err := g.client.ListCart(ctx, credential)
	if err != nil {
		return nil, err
	}
	out := make([]cart.ServerLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, serverLine(line))
	}
	return out, nil
}

func (g cartGateway) AddCartItem(ctx context.Context, credential string, dishID int64, quantity int) (cart.ServerLine, error) {
	line, err := g.client.AddCartItem(ctx, credential, dishID, quantity)
	if err != nil {
		return cart.ServerLine{}, err
	}
	return serverLine(line), nil
}

func (g cartGateway) UpdateCartItem(ctx context.Context, credential string, cartItemID int64, quantity int) (cart.ServerLine, error) {
	line, err := g.client.UpdateCartItem(ctx, credential, cartItemID, quantity)
	if err != nil {
		return cart.ServerLine{}, err
	}
	return serverLine(line), nil
}

func (g cartGateway) RemoveCartItem(ctx context.Context, credential string, cartItemID int64) error {
	return g.client.RemoveCartItem(ctx, credential, cartItemID)
}

func serverLine(line gateway.CartLine) cart.ServerLine {
	return cart.ServerLine{
		ItemID:   line.ID,
		DishID:   line.DishID,
		Quantity: line.Quantity,
	}
}
