package models

import "time"

type Invitation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CoachID uint `gorm:"not null;index" json:"coach_id"`
	Coach   User `gorm:"foreignKey:CoachID" json:"-"`

	ClientID uint `gorm:"not null;index" json:"client_id"`
	Client   User `gorm:"foreignKey:ClientID" json:"-"`

	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	RespondedAt *time.Time `json:"responded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
