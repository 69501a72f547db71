// Package devstack is a single-process stand-in for the five platform
// services the client talks to. It exists for local development and
// integration tests; it is not the production platform.
package devstack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/foodexpress/foodexpress-client/config"
	"github.com/foodexpress/foodexpress-client/internal/devstack/handler"
	"github.com/foodexpress/foodexpress-client/internal/devstack/repository"
	"github.com/foodexpress/foodexpress-client/internal/devstack/tokenstore"
	"github.com/foodexpress/foodexpress-client/internal/devstack/ws"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Stack wires the repositories, handlers, and per-service gin engines.
type Stack struct {
	cfg    config.DevstackConfig
	db     *gorm.DB
	tokens tokenstore.Store
	hub    *ws.Hub

	auth         *gin.Engine
	user         *gin.Engine
	order        *gin.Engine
	restaurant   *gin.Engine
	notification *gin.Engine

	servers []*http.Server
}

// NewStack builds the stack on an open database connection.
func NewStack(cfg config.DevstackConfig, db *gorm.DB) (*Stack, error) {
	gin.SetMode(cfg.GinMode)

	var tokens tokenstore.Store
	if cfg.RedisAddr != "" {
		var err error
		tokens, err = tokenstore.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
	} else {
		tokens = tokenstore.NewMemoryStore()
	}

	s := &Stack{
		cfg:    cfg,
		db:     db,
		tokens: tokens,
		hub:    ws.NewHub(),
	}

	users := repository.NewUserRepository(db)
	menu := repository.NewMenuRepository(db)
	cart := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)

	authHandler := handler.NewAuthHandler(users, tokens, cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	userHandler := handler.NewUserHandler(users)
	restaurantHandler := handler.NewRestaurantHandler(menu)
	orderHandler := handler.NewOrderHandler(cart, menu, orders, s.hub)
	notificationHandler := handler.NewNotificationHandler(s.hub)
	authMiddleware := handler.NewAuthMiddleware(cfg.JWTSecret)

	s.auth = newEngine("auth")
	s.auth.POST("/login", authHandler.Login)
	s.auth.GET("/me", authMiddleware.Authenticate(), authHandler.Me)
	s.auth.POST("/refresh", authHandler.Refresh)
	s.auth.POST("/logout", authHandler.Logout)

	s.user = newEngine("user")
	s.user.POST("/users", userHandler.Register)
	s.user.GET("/users/me", authMiddleware.Authenticate(), userHandler.Profile)
	s.user.POST("/users/me/addresses", authMiddleware.Authenticate(), userHandler.CreateAddress)
	s.user.GET("/users/me/addresses", authMiddleware.Authenticate(), userHandler.Addresses)

	s.order = newEngine("order")
	authenticated := s.order.Group("", authMiddleware.Authenticate())
	{
		authenticated.GET("/cart", orderHandler.GetCart)
		authenticated.POST("/cart/add", orderHandler.AddToCart)
		authenticated.PATCH("/cart/item/:id", orderHandler.UpdateCartItem)
		authenticated.DELETE("/cart/item/:id", orderHandler.RemoveCartItem)
		authenticated.POST("/checkout", orderHandler.Checkout)
		authenticated.GET("/orders", orderHandler.Orders)
		authenticated.POST("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}

	s.restaurant = newEngine("restaurant")
	s.restaurant.GET("/restaurants", restaurantHandler.Restaurants)
	s.restaurant.GET("/restaurants/:id/categories", restaurantHandler.Categories)
	s.restaurant.GET("/restaurants/:id/dishes", restaurantHandler.Dishes)
	admin := s.restaurant.Group("", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"))
	{
		admin.POST("/categories", restaurantHandler.CreateCategory)
		admin.PUT("/categories/:id", restaurantHandler.UpdateCategory)
		admin.DELETE("/categories/:id", restaurantHandler.DeleteCategory)
		admin.POST("/dishes", restaurantHandler.CreateDish)
		admin.PUT("/dishes/:id", restaurantHandler.UpdateDish)
		admin.DELETE("/dishes/:id", restaurantHandler.DeleteDish)
	}

	s.notification = newEngine("notification")
	s.notification.GET("/ws", authMiddleware.Authenticate(), notificationHandler.Subscribe)

	return s, nil
}

func newEngine(service string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(handler.LoggingMiddleware(service))
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": service})
	})
	return engine
}

// AuthEngine exposes the auth service router, mainly for tests.
func (s *Stack) AuthEngine() *gin.Engine { return s.auth }

// UserEngine exposes the user service router.
func (s *Stack) UserEngine() *gin.Engine { return s.user }

// OrderEngine exposes the order service router.
func (s *Stack) OrderEngine() *gin.Engine { return s.order }

// RestaurantEngine exposes the restaurant service router.
func (s *Stack) RestaurantEngine() *gin.Engine { return s.restaurant }

// NotificationEngine exposes the notification service router.
func (s *Stack) NotificationEngine() *gin.Engine { return s.notification }

// Hub exposes the websocket hub so order flows can push events.
func (s *Stack) Hub() *ws.Hub { return s.hub }

// Start launches one HTTP listener per service. Listener failures other
// than a clean shutdown are fatal; the stub is not useful half-up.
func (s *Stack) Start() {
	listeners := []struct {
		name   string
		port   string
		engine *gin.Engine
	}{
		{"auth", s.cfg.AuthPort, s.auth},
		{"user", s.cfg.UserPort, s.user},
		{"order", s.cfg.OrderPort, s.order},
		{"restaurant", s.cfg.RestaurantPort, s.restaurant},
		{"notification", s.cfg.NotificationPort, s.notification},
	}

	for _, l := range listeners {
		server := &http.Server{
			Addr:    fmt.Sprintf(":%s", l.port),
			Handler: l.engine,
		}
		s.servers = append(s.servers, server)

		go func(name string, srv *http.Server) {
			logger.Info("Service listening", map[string]interface{}{
				"service": name,
				"addr":    srv.Addr,
			})
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("Service failed", err, map[string]interface{}{
					"service": name,
				})
			}
		}(l.name, server)
	}
}

// Shutdown stops all listeners and closes the token store.
func (s *Stack) Shutdown(ctx context.Context) error {
	var firstErr error
	for _, server := range s.servers {
		if err := server.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.tokens.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
