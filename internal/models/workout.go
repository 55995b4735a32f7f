package models

import (
	"time"

	"gorm.io/datatypes"
)

type Workout struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Description   *string   `gorm:"type:text" json:"description"`
	Difficulty    string    `gorm:"size:20;not null" json:"difficulty"`
	ScheduledDate time.Time `gorm:"not null;index" json:"scheduled_date"`
	IsCompleted   bool      `gorm:"not null;default:false" json:"is_completed"`

	Exercises []WorkoutExercise `gorm:"constraint:OnDelete:CASCADE;" json:"exercises"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WorkoutExercise struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	WorkoutID uint   `gorm:"not null;index" json:"workout_id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	Muscle    string `gorm:"size:50;not null" json:"muscle"`
	NumSets   int    `gorm:"not null" json:"num_sets"`
	RestTime  int    `gorm:"not null;default:60" json:"rest_time"`

	// [{set_number, reps, weight, duration}]
	SetsDetails datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"sets_details"`
}
