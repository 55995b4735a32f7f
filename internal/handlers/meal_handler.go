package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

var errMealNotFound = httperr.ErrNotFound("meal_not_found", "Meal not found.")

// ======================================================
// HANDLER
// ======================================================

type MealHandler struct {
	db    *gorm.DB
	clock clock
}

func NewMealHandler(db *gorm.DB, loc *time.Location) *MealHandler {
	return &MealHandler{db: db, clock: newClock(loc)}
}

// ======================================================
// REQUESTS
// ======================================================

type MealRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`

	TotalCalories      float64 `json:"total_calories" binding:"gte=0"`
	TotalProteins      float64 `json:"total_proteins" binding:"gte=0"`
	TotalCarbohydrates float64 `json:"total_carbohydrates" binding:"gte=0"`
	TotalSugars        float64 `json:"total_sugars" binding:"gte=0"`
	TotalLipids        float64 `json:"total_lipids" binding:"gte=0"`
	TotalSaturatedFats float64 `json:"total_saturated_fats" binding:"gte=0"`
	TotalFiber         float64 `json:"total_fiber" binding:"gte=0"`
	TotalSalt          float64 `json:"total_salt" binding:"gte=0"`

	Aliments   json.RawMessage `json:"aliments"`
	MealType   *string         `json:"meal_type" binding:"omitempty,max=50"`
	Hourtime   *time.Time      `json:"hourtime"`
	IsConsumed *bool           `json:"is_consumed"`
}

// apply copies the request onto m. A missing hourtime keeps m's value, or
// now for a new meal.
func (r *MealRequest) apply(m *models.Meal, now time.Time) {
	m.Name = r.Name
	m.Description = r.Description
	m.TotalCalories = r.TotalCalories
	m.TotalProteins = r.TotalProteins
	m.TotalCarbohydrates = r.TotalCarbohydrates
	m.TotalSugars = r.TotalSugars
	m.TotalLipids = r.TotalLipids
	m.TotalSaturatedFats = r.TotalSaturatedFats
	m.TotalFiber = r.TotalFiber
	m.TotalSalt = r.TotalSalt
	m.MealType = r.MealType

	if len(r.Aliments) > 0 && string(r.Aliments) != "null" {
		m.Aliments = datatypes.JSON(r.Aliments)
	} else if len(m.Aliments) == 0 {
		m.Aliments = datatypes.JSON("[]")
	}

	switch {
	case r.Hourtime != nil:
		m.Hourtime = *r.Hourtime
	case m.Hourtime.IsZero():
		m.Hourtime = now
	}

	if r.IsConsumed != nil {
		m.IsConsumed = *r.IsConsumed
	}
}

func (h *MealHandler) findMeal(c *gin.Context, q *gorm.DB, mealID uint) (*models.Meal, bool) {
	var meal models.Meal
	if err := q.Where("id = ?", mealID).First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, errMealNotFound)
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &meal, true
}

// ======================================================
// OWN MEALS
// ======================================================

func (h *MealHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	meal := models.Meal{UserID: userID}
	req.apply(&meal, h.clock.now())

	if err := h.db.WithContext(c.Request.Context()).Create(&meal).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) Daily(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	start, end, ok := h.clock.dayFromQuery(c)
	if !ok {
		return
	}

	var meals []models.Meal
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND hourtime >= ? AND hourtime < ?", userID, start, end).
		Order("hourtime ASC").
		Find(&meals).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, ok := uintParam(c, "meal_id")
	if !ok {
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	meal, ok := h.findMeal(c, db.Where("user_id = ?", userID), mealID)
	if !ok {
		return
	}

	req.apply(meal, h.clock.now())
	if err := db.Save(meal).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, ok := uintParam(c, "meal_id")
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, errMealNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal successfully deleted"})
}

func (h *MealHandler) ToggleConsume(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, ok := uintParam(c, "meal_id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	meal, ok := h.findMeal(c, db.Where("user_id = ?", userID), mealID)
	if !ok {
		return
	}

	meal.IsConsumed = !meal.IsConsumed
	if err := db.Model(meal).Update("is_consumed", meal.IsConsumed).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, meal)
}

// ======================================================
// COACH-MANAGED MEALS
// ======================================================

func (h *MealHandler) CoachCreate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	clientID, ok := uintParam(c, "client_id")
	if !ok {
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	client, ok := coachedClient(c, h.db, actor, clientID)
	if !ok {
		return
	}

	meal := models.Meal{UserID: client.ID}
	req.apply(&meal, h.clock.now())
	meal.IsConsumed = false

	if err := h.db.WithContext(c.Request.Context()).Create(&meal).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Meal successfully scheduled for client.",
		"meal_id": meal.ID,
	})
}

func (h *MealHandler) CoachUpdate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	mealID, ok := uintParam(c, "meal_id")
	if !ok {
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	meal, ok := h.findMeal(c, ownedByCoachedClient(db, db, actor), mealID)
	if !ok {
		return
	}

	consumed := meal.IsConsumed
	req.apply(meal, h.clock.now())
	meal.IsConsumed = consumed

	if err := db.Save(meal).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal successfully updated"})
}

func (h *MealHandler) CoachDelete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	mealID, ok := uintParam(c, "meal_id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	res := ownedByCoachedClient(db.Where("id = ?", mealID), db, actor).
		Delete(&models.Meal{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, errMealNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal successfully deleted"})
}
