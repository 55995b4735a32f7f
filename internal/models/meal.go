package models

import (
	"time"

	"gorm.io/datatypes"
)

type Meal struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`

	TotalCalories      float64 `gorm:"not null;default:0" json:"total_calories"`
	TotalProteins      float64 `gorm:"not null;default:0" json:"total_proteins"`
	TotalCarbohydrates float64 `gorm:"not null;default:0" json:"total_carbohydrates"`
	TotalSugars        float64 `gorm:"not null;default:0" json:"total_sugars"`
	TotalLipids        float64 `gorm:"not null;default:0" json:"total_lipids"`
	TotalSaturatedFats float64 `gorm:"not null;default:0" json:"total_saturated_fats"`
	TotalFiber         float64 `gorm:"not null;default:0" json:"total_fiber"`
	TotalSalt          float64 `gorm:"not null;default:0" json:"total_salt"`

	Aliments datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"aliments"`

	MealType   *string   `gorm:"size:50" json:"meal_type"`
	Hourtime   time.Time `gorm:"not null;index" json:"hourtime"`
	IsConsumed bool      `gorm:"not null;default:false" json:"is_consumed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
