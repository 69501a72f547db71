package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description,omitempty"`
	MinOrderAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"min_order_amount"`
	DeliveryFee     decimal.Decimal `gorm:"type:decimal(10,2)" json:"delivery_fee"`
	DeliveryTimeMin int             `json:"delivery_time_min"`
	DeliveryTimeMax int             `json:"delivery_time_max"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

type Category struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"not null" json:"name"`
	DisplayOrder int            `json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

type Dish struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	RestaurantID  uint            `gorm:"not null;index" json:"restaurant_id"`
	CategoryID    *uint           `gorm:"index" json:"category_id,omitempty"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	IsAvailable   bool            `gorm:"not null;default:true" json:"is_available"`
	IsRecommended bool            `gorm:"not null;default:false" json:"is_recommended"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Dish) TableName() string {
	return "dishes"
}
