package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foodexpress/foodexpress-client/internal/devstack/model"
	"github.com/foodexpress/foodexpress-client/internal/devstack/repository"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RestaurantHandler struct {
	menu repository.MenuRepository
}

func NewRestaurantHandler(menu repository.MenuRepository) *RestaurantHandler {
	return &RestaurantHandler{menu: menu}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// Restaurants lists all restaurants.
// GET /restaurants
func (h *RestaurantHandler) Restaurants(c *gin.Context) {
	restaurants, err := h.menu.FindRestaurants()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch restaurants"})
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// Categories lists a restaurant's menu categories.
// GET /restaurants/:id/categories
func (h *RestaurantHandler) Categories(c *gin.Context) {
	restaurantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	categories, err := h.menu.FindCategoriesByRestaurantID(restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Dishes lists a restaurant's dishes.
// GET /restaurants/:id/dishes
func (h *RestaurantHandler) Dishes(c *gin.Context) {
	restaurantID, ok := parseID(c, "id")
	if !ok {
		return
	}

	dishes, err := h.menu.FindDishesByRestaurantID(restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dishes"})
		return
	}
	c.JSON(http.StatusOK, dishes)
}

type categoryRequest struct {
	RestaurantID uint   `json:"restaurant_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// CreateCategory adds a menu category.
// POST /categories
func (h *RestaurantHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RestaurantID == 0 || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	category := &model.Category{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.menu.CreateCategory(category); err != nil {
		logger.Error("Failed to create category", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates a menu category.
// PUT /categories/:id
func (h *RestaurantHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := h.menu.FindCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if req.Name != "" {
		category.Name = req.Name
	}
	if req.DisplayOrder != 0 {
		category.DisplayOrder = req.DisplayOrder
	}

	if err := h.menu.UpdateCategory(category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a menu category.
// DELETE /categories/:id
func (h *RestaurantHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.menu.DeleteCategory(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.Status(http.StatusNoContent)
}

type dishRequest struct {
	RestaurantID  uint             `json:"restaurant_id"`
	CategoryID    *uint            `json:"category_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	ImageURL      string           `json:"image_url"`
	IsAvailable   *bool            `json:"is_available"`
	IsRecommended *bool            `json:"is_recommended"`
}

// CreateDish adds a dish.
// POST /dishes
func (h *RestaurantHandler) CreateDish(c *gin.Context) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RestaurantID == 0 || req.Name == "" || req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	dish := &model.Dish{
		RestaurantID:  req.RestaurantID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		ImageURL:      req.ImageURL,
		IsAvailable:   true,
		IsRecommended: false,
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}
	if req.IsRecommended != nil {
		dish.IsRecommended = *req.IsRecommended
	}

	if err := h.menu.CreateDish(dish); err != nil {
		logger.Error("Failed to create dish", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dish"})
		return
	}

	c.JSON(http.StatusCreated, dish)
}

// UpdateDish updates a dish.
// PUT /dishes/:id
func (h *RestaurantHandler) UpdateDish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	dish, err := h.menu.FindDishByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dish not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dish"})
		return
	}

	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}
	if req.Name != "" {
		dish.Name = req.Name
	}
	if req.Description != "" {
		dish.Description = req.Description
	}
	if req.Price != nil {
		dish.Price = *req.Price
	}
	if req.ImageURL != "" {
		dish.ImageURL = req.ImageURL
	}
	if req.CategoryID != nil {
		dish.CategoryID = req.CategoryID
	}
	if req.IsAvailable != nil {
		dish.IsAvailable = *req.IsAvailable
	}
	if req.IsRecommended != nil {
		dish.IsRecommended = *req.IsRecommended
	}

	if err := h.menu.UpdateDish(dish); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dish"})
		return
	}

	c.JSON(http.StatusOK, dish)
}

// DeleteDish removes a dish.
// DELETE /dishes/:id
func (h *RestaurantHandler) DeleteDish(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.menu.DeleteDish(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dish"})
		return
	}

	c.Status(http.StatusNoContent)
}
