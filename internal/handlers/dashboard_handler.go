package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coachtrack/internal/domain/nutrition"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/models"
	"github.com/BruksfildServices01/coachtrack/internal/timezone"
)

type DashboardHandler struct {
	db    *gorm.DB
	clock clock
}

func NewDashboardHandler(db *gorm.DB, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{db: db, clock: newClock(loc)}
}

// consumedTotals sums the consumed meals of userID in [start, end).
func (h *DashboardHandler) consumedTotals(
	db *gorm.DB,
	userID uint,
	start, end time.Time,
) (nutrition.Totals, error) {

	var t nutrition.Totals
	err := db.Model(&models.Meal{}).
		Select(`COALESCE(SUM(total_calories), 0) AS calories,
			COALESCE(SUM(total_proteins), 0) AS proteins,
			COALESCE(SUM(total_carbohydrates), 0) AS carbs,
			COALESCE(SUM(total_lipids), 0) AS fats`).
		Where("user_id = ? AND is_consumed = ? AND hourtime >= ? AND hourtime < ?",
			userID, true, start, end).
		Scan(&t).Error
	return t, err
}

func (h *DashboardHandler) statsFor(c *gin.Context, user *models.User) {
	start, end := h.clock.today()

	totals, err := h.consumedTotals(h.db.WithContext(c.Request.Context()), user.ID, start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, nutrition.Stats(nutrition.GoalsOf(user), totals))
}

// ======================================================
// DASHBOARD STATS
// ======================================================

func (h *DashboardHandler) MyStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, ok := findUser(c, h.db, userID)
	if !ok {
		return
	}

	h.statsFor(c, user)
}

func (h *DashboardHandler) ClientStats(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	clientID, ok := uintParam(c, "client_id")
	if !ok {
		return
	}

	client, ok := coachedClient(c, h.db, actor, clientID)
	if !ok {
		return
	}

	h.statsFor(c, client)
}

// ======================================================
// CLIENT DETAILS
// ======================================================

type detailMeal struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Calories   float64         `json:"calories"`
	Hourtime   time.Time       `json:"hourtime"`
	IsConsumed bool            `json:"is_consumed"`
	Aliments   json.RawMessage `json:"aliments"`
}

// ClientDetails returns a client's profile, goals and the meals and
// workouts of ?date= (default today).
func (h *DashboardHandler) ClientDetails(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	clientID, ok := uintParam(c, "client_id")
	if !ok {
		return
	}

	start, end, ok := h.clock.dayFromQuery(c)
	if !ok {
		return
	}

	client, ok := coachedClient(c, h.db, actor, clientID)
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var meals []models.Meal
	if err := db.
		Where("user_id = ? AND hourtime >= ? AND hourtime < ?", client.ID, start, end).
		Order("hourtime ASC").
		Find(&meals).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var workouts []models.Workout
	if err := db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date < ?", client.ID, start, end).
		Order("scheduled_date ASC").
		Find(&workouts).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var totals nutrition.Totals
	mealsOut := make([]detailMeal, 0, len(meals))
	for _, m := range meals {
		if m.IsConsumed {
			totals.Calories += m.TotalCalories
			totals.Proteins += m.TotalProteins
			totals.Carbs += m.TotalCarbohydrates
			totals.Fats += m.TotalLipids
		}

		aliments := json.RawMessage(m.Aliments)
		if len(aliments) == 0 {
			aliments = json.RawMessage("[]")
		}
		mealsOut = append(mealsOut, detailMeal{
			ID:         m.ID,
			Name:       m.Name,
			Calories:   m.TotalCalories,
			Hourtime:   m.Hourtime,
			IsConsumed: m.IsConsumed,
			Aliments:   aliments,
		})
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}

	goals := nutrition.GoalsOf(client)

	c.JSON(http.StatusOK, gin.H{
		"id":            client.ID,
		"firstname":     client.Firstname,
		"lastname":      client.Lastname,
		"age":           client.Age,
		"gender":        client.Gender,
		"date":          start.Format(timezone.DateLayout),
		"goal_calories": goals.Calories,
		"goals_macros": gin.H{
			"proteins": goals.Proteins,
			"carbs":    goals.Carbs,
			"fats":     goals.Fats,
		},
		"today_stats":    totals,
		"meals_today":    mealsOut,
		"workouts_today": workouts,
	})
}
