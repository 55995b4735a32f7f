package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

const defaultRestTime = 60

var errWorkoutNotFound = httperr.ErrNotFound("workout_not_found", "Workout not found.")

// ======================================================
// HANDLER
// ======================================================

type WorkoutHandler struct {
	db *gorm.DB
}

func NewWorkoutHandler(db *gorm.DB) *WorkoutHandler {
	return &WorkoutHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type ExerciseRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Muscle      string          `json:"muscle" binding:"required,max=50"`
	NumSets     int             `json:"num_sets" binding:"gte=1"`
	RestTime    *int            `json:"rest_time" binding:"omitempty,gte=0"`
	SetsDetails json.RawMessage `json:"sets_details"`
}

type WorkoutRequest struct {
	Name          string            `json:"name" binding:"required,max=100"`
	Description   *string           `json:"description"`
	Difficulty    string            `json:"difficulty" binding:"required,max=20"`
	ScheduledDate time.Time         `json:"scheduled_date" binding:"required"`
	Exercises     []ExerciseRequest `json:"exercises" binding:"dive"`
}

func (r *WorkoutRequest) exercises() []models.WorkoutExercise {
	out := make([]models.WorkoutExercise, 0, len(r.Exercises))
	for _, e := range r.Exercises {
		rest := defaultRestTime
		if e.RestTime != nil {
			rest = *e.RestTime
		}
		sets := datatypes.JSON("[]")
		if len(e.SetsDetails) > 0 && string(e.SetsDetails) != "null" {
			sets = datatypes.JSON(e.SetsDetails)
		}
		out = append(out, models.WorkoutExercise{
			Name:        e.Name,
			Muscle:      e.Muscle,
			NumSets:     e.NumSets,
			RestTime:    rest,
			SetsDetails: sets,
		})
	}
	return out
}

func (r *WorkoutRequest) workout(userID uint) models.Workout {
	return models.Workout{
		UserID:        userID,
		Name:          r.Name,
		Description:   r.Description,
		Difficulty:    r.Difficulty,
		ScheduledDate: r.ScheduledDate,
		Exercises:     r.exercises(),
	}
}

func (h *WorkoutHandler) create(c *gin.Context, userID uint, req *WorkoutRequest) {
	w := req.workout(userID)
	if err := h.db.WithContext(c.Request.Context()).Create(&w).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Workout scheduled successfully",
		"workout_id": w.ID,
	})
}

func (h *WorkoutHandler) deleteWhere(c *gin.Context, q *gorm.DB) {
	res := q.Delete(&models.Workout{})
	if res.Error != nil {
		httperr.Respond(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Respond(c, errWorkoutNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted"})
}

// ======================================================
// OWN WORKOUTS
// ======================================================

func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	h.create(c, userID, &req)
}

func (h *WorkoutHandler) MyWorkouts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var workouts []models.Workout
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		Order("scheduled_date ASC").
		Find(&workouts).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "workout_id")
	if !ok {
		return
	}

	h.deleteWhere(c, h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID))
}

func (h *WorkoutHandler) ToggleComplete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "workout_id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var w models.Workout
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, errWorkoutNotFound)
			return
		}
		httperr.Respond(c, err)
		return
	}

	w.IsCompleted = !w.IsCompleted
	if err := db.Model(&w).Update("is_completed", w.IsCompleted).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// ======================================================
// COACH-MANAGED WORKOUTS
// ======================================================

func (h *WorkoutHandler) CoachCreate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	clientID, ok := uintParam(c, "client_id")
	if !ok {
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	client, ok := coachedClient(c, h.db, actor, clientID)
	if !ok {
		return
	}

	h.create(c, client.ID, &req)
}

// CoachUpdate rewrites the workout and replaces its exercises in one transaction.
func (h *WorkoutHandler) CoachUpdate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "workout_id")
	if !ok {
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	var updated models.Workout

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var w models.Workout
		if err := ownedByCoachedClient(tx, tx, actor).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&w).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errWorkoutNotFound
			}
			return err
		}

		if err := tx.Model(&w).Updates(map[string]any{
			"name":           req.Name,
			"description":    req.Description,
			"difficulty":     req.Difficulty,
			"scheduled_date": req.ScheduledDate,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("workout_id = ?", w.ID).
			Delete(&models.WorkoutExercise{}).Error; err != nil {
			return err
		}

		exercises := req.exercises()
		for i := range exercises {
			exercises[i].WorkoutID = w.ID
		}
		if len(exercises) > 0 {
			if err := tx.Create(&exercises).Error; err != nil {
				return err
			}
		}

		w.Exercises = exercises
		updated = w
		return nil
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *WorkoutHandler) CoachDelete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "workout_id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())
	h.deleteWhere(c, ownedByCoachedClient(db.Where("id = ?", id), db, actor))
}
