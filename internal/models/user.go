package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
	RoleCoach  = "coach"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;size:255;not null" json:"-"`

	Firstname   string  `gorm:"size:50;not null" json:"firstname"`
	Lastname    string  `gorm:"size:50;not null" json:"lastname"`
	Gender      string  `gorm:"size:10;not null" json:"gender"`
	Age         int     `gorm:"not null" json:"age"`
	Role        string  `gorm:"size:10;not null" json:"role"`
	Nationality *string `gorm:"size:15" json:"nationality"`
	Language    *string `gorm:"size:15" json:"language"`
	Description *string `gorm:"type:text" json:"description"`

	// onboarding code, "#NNNNNN"
	UniqueCode *string `gorm:"size:10;uniqueIndex" json:"unique_code"`

	CoachID *uint `gorm:"index" json:"coach_id"`
	Coach   *User `gorm:"foreignKey:CoachID" json:"-"`

	DailyCaloricNeeds *float64 `json:"daily_caloric_needs"`
	GoalProteins      *float64 `json:"goal_proteins"`
	GoalCarbs         *float64 `json:"goal_carbs"`
	GoalFats          *float64 `json:"goal_fats"`

	City      *string  `gorm:"size:100" json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Weight    *float64 `json:"weight"`
	Height    *float64 `json:"height"`
	Goal      *string  `gorm:"size:20" json:"goal"`

	AvatarURL *string    `gorm:"column:avatar_url;size:255" json:"avatar_url"`
	VIPUntil  *time.Time `gorm:"column:vip_until" json:"vip_until"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.Firstname + " " + u.Lastname
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}
