package devstack

import (
	"fmt"

	"github.com/foodexpress/foodexpress-client/internal/devstack/model"
	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/foodexpress/foodexpress-client/pkg/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func price(p string) decimal.Decimal {
	return decimal.RequireFromString(p)
}

// Seed fills the database with demo restaurants, menus, and a demo account
// (demo@example.com / password). Existing data is left alone.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Restaurant{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count restaurants: %w", err)
	}
	if count > 0 {
		logger.Info("Database already seeded, skipping", map[string]interface{}{
			"restaurants": count,
		})
		return nil
	}

	restaurants := []struct {
		restaurant model.Restaurant
		categories []string
		dishes     []model.Dish
	}{
		{
			restaurant: model.Restaurant{
				Name:            "Pizza House",
				Description:     "Лучшая пицца в городе! Итальянская кухня с доставкой",
				MinOrderAmount:  price("500"),
				DeliveryFee:     price("150"),
				DeliveryTimeMin: 30,
				DeliveryTimeMax: 45,
				IsActive:        true,
			},
			categories: []string{"Пицца", "Салаты"},
			dishes: []model.Dish{
				{Name: "Маргарита", Description: "Томаты, моцарелла, базилик", Price: price("250"), IsAvailable: true, IsRecommended: true},
				{Name: "Пепперони", Description: "Пепперони, моцарелла", Price: price("320"), IsAvailable: true},
				{Name: "Цезарь", Description: "Курица, пармезан, сухарики", Price: price("199.50"), IsAvailable: true},
			},
		},
		{
			restaurant: model.Restaurant{
				Name:            "Sushi Master",
				Description:     "Свежие суши и роллы. Японская кухня премиум класса",
				MinOrderAmount:  price("800"),
				DeliveryFee:     price("200"),
				DeliveryTimeMin: 25,
				DeliveryTimeMax: 40,
				IsActive:        true,
			},
			categories: []string{"Роллы", "Супы"},
			dishes: []model.Dish{
				{Name: "Филадельфия", Description: "Лосось, сливочный сыр, огурец", Price: price("450"), IsAvailable: true, IsRecommended: true},
				{Name: "Калифорния", Description: "Краб, авокадо, икра тобико", Price: price("390"), IsAvailable: true},
				{Name: "Мисо суп", Description: "Тофу, вакаме, зелёный лук", Price: price("180"), IsAvailable: true},
			},
		},
		{
			restaurant: model.Restaurant{
				Name:            "Грузинская кухня",
				Description:     "Традиционные грузинские блюда. Хачапури, шашлык, хинкали",
				MinOrderAmount:  price("700"),
				DeliveryFee:     price("180"),
				DeliveryTimeMin: 40,
				DeliveryTimeMax: 60,
				IsActive:        true,
			},
			categories: []string{"Горячее"},
			dishes: []model.Dish{
				{Name: "Хачапури по-аджарски", Description: "Тесто, сыр, яйцо", Price: price("350"), IsAvailable: true, IsRecommended: true},
				{Name: "Хинкали", Description: "Говядина, свинина, бульон, 5 шт", Price: price("420"), IsAvailable: true},
			},
		},
	}

	for _, entry := range restaurants {
		restaurant := entry.restaurant
		if err := db.Create(&restaurant).Error; err != nil {
			return fmt.Errorf("failed to seed restaurant %q: %w", restaurant.Name, err)
		}

		categoryIDs := make(map[string]uint, len(entry.categories))
		for i, name := range entry.categories {
			category := model.Category{
				RestaurantID: restaurant.ID,
				Name:         name,
				DisplayOrder: i + 1,
			}
			if err := db.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", name, err)
			}
			categoryIDs[name] = category.ID
		}

		// First category takes the dishes; a finer mapping is not worth
		// encoding in demo data.
		var firstCategory *uint
		if len(entry.categories) > 0 {
			id := categoryIDs[entry.categories[0]]
			firstCategory = &id
		}
		for _, dish := range entry.dishes {
			dish.RestaurantID = restaurant.ID
			dish.CategoryID = firstCategory
			if err := db.Create(&dish).Error; err != nil {
				return fmt.Errorf("failed to seed dish %q: %w", dish.Name, err)
			}
		}

		logger.Info("Seeded restaurant", map[string]interface{}{
			"restaurant": restaurant.Name,
			"dishes":     len(entry.dishes),
		})
	}

	hash, err := util.HashPassword("password")
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	demo := model.User{
		Email:        "demo@example.com",
		PasswordHash: hash,
		FirstName:    "Анна",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	if err := db.Create(&demo).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	logger.Info("Seed complete", map[string]interface{}{
		"restaurants": len(restaurants),
		"demo_user":   demo.Email,
	})
	return nil
}
