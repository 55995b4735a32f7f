package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

type DirectoryHandler struct {
	db *gorm.DB
}

func NewDirectoryHandler(db *gorm.DB) *DirectoryHandler {
	return &DirectoryHandler{db: db}
}

type coachCard struct {
	ID          uint    `json:"id"`
	Firstname   string  `json:"firstname"`
	Lastname    string  `json:"lastname"`
	Email       string  `json:"email"`
	Gender      string  `json:"gender"`
	Age         int     `json:"age"`
	City        *string `json:"city"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

func toCoachCards(users []models.User) []coachCard {
	out := make([]coachCard, 0, len(users))
	for _, u := range users {
		out = append(out, coachCard{
			ID:          u.ID,
			Firstname:   u.Firstname,
			Lastname:    u.Lastname,
			Email:       u.Email,
			Gender:      u.Gender,
			Age:         u.Age,
			City:        u.City,
			Description: u.Description,
			AvatarURL:   u.AvatarURL,
		})
	}
	return out
}

// ======================================================
// LIST / SEARCH COACHES
// ======================================================

func (h *DirectoryHandler) ListCoaches(c *gin.Context) {
	var coaches []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("role = ?", models.RoleCoach).
		Order("id ASC").
		Find(&coaches).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toCoachCards(coaches))
}

func (h *DirectoryHandler) SearchCoaches(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))

	q := h.db.WithContext(c.Request.Context()).
		Where("role = ?", models.RoleCoach)

	if city != "" {
		q = q.Where("city ILIKE ?", "%"+city+"%")
	}

	var coaches []models.User
	if err := q.Order("id ASC").Find(&coaches).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, toCoachCards(coaches))
}

// ======================================================
// PUBLIC PROFILE
// ======================================================

func (h *DirectoryHandler) PublicProfile(c *gin.Context) {
	coachID, ok := uintParam(c, "coach_id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var coach models.User
	if err := db.
		Where("id = ? AND role = ?", coachID, models.RoleCoach).
		First(&coach).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, coaching.ErrCoachNotFound)
			return
		}
		httperr.Respond(c, err)
		return
	}

	var activeClients int64
	if err := db.Model(&models.User{}).
		Where("coach_id = ?", coachID).
		Count(&activeClients).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          coach.ID,
		"firstname":   coach.Firstname,
		"lastname":    coach.Lastname,
		"description": coach.Description,
		"city":        coach.City,
		"avatar_url":  coach.AvatarURL,
		"stats": gin.H{
			"active_clients": activeClients,
		},
	})
}
