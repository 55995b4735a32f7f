package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/models"
	ucAccount "github.com/BruksfildServices01/coachtrack/internal/usecase/account"
)

// ======================================================
// HANDLER
// ======================================================

type MeHandler struct {
	db     *gorm.DB
	avatar *ucAccount.UpdateAvatar
}

// NewMeHandler takes a nil avatar use case when object storage is not configured.
func NewMeHandler(db *gorm.DB, avatar *ucAccount.UpdateAvatar) *MeHandler {
	return &MeHandler{db: db, avatar: avatar}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateDescriptionRequest struct {
	Description *string `json:"description"`
}

type UpdateMyGoalRequest struct {
	DailyCaloricNeeds *float64 `json:"daily_caloric_needs" binding:"required,gte=0"`
}

type UpdateGoalsRequest struct {
	DailyCaloricNeeds *float64 `json:"daily_caloric_needs" binding:"omitempty,gte=0"`
	GoalProteins      *float64 `json:"goal_proteins" binding:"omitempty,gte=0"`
	GoalCarbs         *float64 `json:"goal_carbs" binding:"omitempty,gte=0"`
	GoalFats          *float64 `json:"goal_fats" binding:"omitempty,gte=0"`
}

// ======================================================
// PROFILE
// ======================================================

func profileBody(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"firstname":   u.Firstname,
		"lastname":    u.Lastname,
		"gender":      u.Gender,
		"age":         u.Age,
		"role":        u.Role,
		"nationality": u.Nationality,
		"language":    u.Language,
		"coach_id":    u.CoachID,
		"unique_code": u.UniqueCode,
		"description": u.Description,
		"city":        u.City,
		"avatar_url":  u.AvatarURL,
		"vip_until":   u.VIPUntil,
		"created_at":  u.CreatedAt,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, ok := findUser(c, h.db, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profileBody(user))
}

func (h *MeHandler) GetUser(c *gin.Context) {
	id, ok := uintParam(c, "user_id")
	if !ok {
		return
	}

	user, ok := findUser(c, h.db, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, profileBody(user))
}

func (h *MeHandler) UpdateDescription(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, ok := findUser(c, h.db, userID)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(user).
		Update("description", req.Description).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Description updated successfully",
		"description": req.Description,
	})
}

// ======================================================
// GOALS
// ======================================================

func (h *MeHandler) UpdateMyGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateMyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, ok := findUser(c, h.db, userID)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(user).
		Update("daily_caloric_needs", *req.DailyCaloricNeeds).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Goal updated",
		"new_goal": *req.DailyCaloricNeeds,
	})
}

// UpdateUserGoals lets a user, their coach or an admin set macro goals.
func (h *MeHandler) UpdateUserGoals(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "user_id")
	if !ok {
		return
	}

	var req UpdateGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	user, ok := findUser(c, h.db, id)
	if !ok {
		return
	}

	coachesUser := user.CoachID != nil && *user.CoachID == actor.ID
	if !actor.ActsFor(user.ID) && !coachesUser {
		httperr.Respond(c, coaching.ErrForbidden)
		return
	}

	updates := map[string]any{}
	if req.DailyCaloricNeeds != nil {
		updates["daily_caloric_needs"] = *req.DailyCaloricNeeds
	}
	if req.GoalProteins != nil {
		updates["goal_proteins"] = *req.GoalProteins
	}
	if req.GoalCarbs != nil {
		updates["goal_carbs"] = *req.GoalCarbs
	}
	if req.GoalFats != nil {
		updates["goal_fats"] = *req.GoalFats
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).
			Model(user).
			Updates(updates).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goals updated successfully"})
}

// ======================================================
// AVATAR
// ======================================================

func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.avatar == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_unavailable", "Avatar storage is not configured.")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A 'file' field is required.")
		return
	}

	f, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read the uploaded file.")
		return
	}
	defer f.Close()

	url, err := h.avatar.Execute(c.Request.Context(), userID, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
