package repository

import (
	"github.com/foodexpress/foodexpress-client/internal/devstack/model"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"gorm.io/gorm"
)

type MenuRepository interface {
	FindRestaurants() ([]model.Restaurant, error)
	FindRestaurantByID(id uint) (*model.Restaurant, error)
	FindCategoriesByRestaurantID(restaurantID uint) ([]model.Category, error)
	FindDishesByRestaurantID(restaurantID uint) ([]model.Dish, error)
	FindDishByID(id uint) (*model.Dish, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error
	FindCategoryByID(id uint) (*model.Category, error)
	CreateDish(dish *model.Dish) error
	UpdateDish(dish *model.Dish) error
	DeleteDish(id uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) FindRestaurants() ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.db.Order("id ASC").Find(&restaurants).Error; err != nil {
		logger.Error("Failed to find restaurants in database", err, nil)
		return nil, err
	}
	return restaurants, nil
}

func (r *menuRepository) FindRestaurantByID(id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *menuRepository) FindCategoriesByRestaurantID(restaurantID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("restaurant_id = ?", restaurantID).
		Order("display_order ASC, id ASC").
		Find(&categories).Error
	if err != nil {
		logger.Error("Failed to find categories in database", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) FindDishesByRestaurantID(restaurantID uint) ([]model.Dish, error) {
	var dishes []model.Dish
	err := r.db.Where("restaurant_id = ?", restaurantID).
		Order("id ASC").
		Find(&dishes).Error
	if err != nil {
		logger.Error("Failed to find dishes in database", err, map[string]interface{}{
			"restaurant_id": restaurantID,
		})
		return nil, err
	}
	return dishes, nil
}

func (r *menuRepository) FindDishByID(id uint) (*model.Dish, error) {
	var dish model.Dish
	if err := r.db.First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *menuRepository) CreateCategory(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *menuRepository) UpdateCategory(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *menuRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&model.Category{}, id).Error
}

func (r *menuRepository) FindCategoryByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) CreateDish(dish *model.Dish) error {
	return r.db.Create(dish).Error
}

func (r *menuRepository) UpdateDish(dish *model.Dish) error {
	return r.db.Save(dish).Error
}

func (r *menuRepository) DeleteDish(id uint) error {
	return r.db.Delete(&model.Dish{}, id).Error
}
