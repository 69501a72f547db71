package handler

import (
	"errors"
	"net/http"

	"github.com/foodexpress/foodexpress-client/internal/devstack/model"
	"github.com/foodexpress/foodexpress-client/internal/devstack/repository"
	"github.com/foodexpress/foodexpress-client/internal/devstack/ws"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderHandler struct {
	cart   repository.CartRepository
	menu   repository.MenuRepository
	orders repository.OrderRepository
	hub    *ws.Hub
}

func NewOrderHandler(cart repository.CartRepository, menu repository.MenuRepository, orders repository.OrderRepository, hub *ws.Hub) *OrderHandler {
	return &OrderHandler{
		cart:   cart,
		menu:   menu,
		orders: orders,
		hub:    hub,
	}
}

// GetCart returns the user's cart rows.
// GET /cart
func (h *OrderHandler) GetCart(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	cartItems, err := h.cart.FindByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, cartItems)
}

type addToCartRequest struct {
	DishID   uint `json:"dish_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// AddToCart adds a dish to the cart. A row for the same dish is merged by
// summing quantities, and the merged row is returned.
// POST /cart/add
func (h *OrderHandler) AddToCart(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.menu.FindDishByID(req.DishID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	existing, err := h.cart.FindByUserAndDish(userID, req.DishID)
	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		if err := h.cart.Update(existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, existing)

	case errors.Is(err, gorm.ErrRecordNotFound):
		cartItem := &model.CartItem{
			UserID:   userID,
			DishID:   req.DishID,
			Quantity: req.Quantity,
		}
		if err := h.cart.Create(cartItem); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, cartItem)

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
	}
}

type updateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// UpdateCartItem sets the quantity of a cart row.
// PATCH /cart/item/:id
func (h *OrderHandler) UpdateCartItem(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartItem, err := h.cart.FindByID(id)
	if err != nil || cartItem.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	cartItem.Quantity = req.Quantity
	if err := h.cart.Update(cartItem); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	c.JSON(http.StatusOK, cartItem)
}

// RemoveCartItem deletes a cart row.
// DELETE /cart/item/:id
func (h *OrderHandler) RemoveCartItem(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cartItem, err := h.cart.FindByID(id)
	if err != nil || cartItem.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	if err := h.cart.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.Status(http.StatusNoContent)
}

type checkoutRequest struct {
	RestaurantID      uint  `json:"restaurant_id" binding:"required"`
	DeliveryAddressID *uint `json:"delivery_address_id"`
}

// Checkout places an order from the user's cart rows and clears them. The
// client enforces the single-restaurant cart, so all rows belong to the
// restaurant named in the request.
// POST /checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	restaurant, err := h.menu.FindRestaurantByID(req.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}

	cartItems, err := h.cart.FindByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}
	if len(cartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	subtotal := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		dish, err := h.menu.FindDishByID(item.DishID)
		if err != nil {
			logger.Warn("Cart references missing dish, skipping", map[string]interface{}{
				"dish_id": item.DishID,
			})
			continue
		}
		subtotal = subtotal.Add(dish.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, model.OrderItem{
			DishID:   item.DishID,
			Quantity: item.Quantity,
			Price:    dish.Price,
		})
	}
	if len(orderItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	order := &model.Order{
		UserID:            userID,
		RestaurantID:      req.RestaurantID,
		DeliveryAddressID: req.DeliveryAddressID,
		Status:            model.OrderStatusPending,
		Subtotal:          subtotal,
		DeliveryFee:       restaurant.DeliveryFee,
		TotalAmount:       subtotal.Add(restaurant.DeliveryFee),
		OrderItems:        orderItems,
	}
	if err := h.orders.Create(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		return
	}

	if err := h.cart.DeleteByUserID(userID); err != nil {
		logger.Warn("Failed to clear cart after checkout", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	h.hub.SendToUser(userID, ws.Event{
		Type:    "order_status",
		OrderID: order.ID,
		Status:  string(order.Status),
	})

	logger.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount.String(),
	})

	c.JSON(http.StatusCreated, order)
}

// Orders lists the user's orders, newest first.
// GET /orders
func (h *OrderHandler) Orders(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	orders, err := h.orders.FindByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order to a new status and notifies the owner
// over the websocket hub.
// POST /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	userID, exists := GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	order, err := h.orders.FindByID(id)
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := h.orders.UpdateStatus(id, model.OrderStatus(req.Status)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	h.hub.SendToUser(order.UserID, ws.Event{
		Type:    "order_status",
		OrderID: order.ID,
		Status:  req.Status,
	})

	c.Status(http.StatusNoContent)
}
