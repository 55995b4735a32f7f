package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coachtrack/internal/models"
)

func mealRouter(h *MealHandler, userID uint, role string) *gin.Engine {
	r := gin.New()
	r.Use(as(userID, role))
	r.GET("/meals/daily", h.Daily)
	r.DELETE("/meals/:meal_id", h.Delete)
	r.POST("/coaches/clients/:client_id/meals", h.CoachCreate)
	return r
}

func TestDaily_ReturnsMealsOfDay(t *testing.T) {
	db, mock := newMockDB(t)
	r := mealRouter(NewMealHandler(db, time.UTC), 5, models.RoleClient)

	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "meals"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "total_calories", "aliments", "hourtime", "is_consumed"}).
			AddRow(3, 5, "Lunch", 650.0, []byte(`[]`), at, true))

	w := do(r, http.MethodGet, "/meals/daily?date=2026-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	meals := decode(t, w)["meals"].([]any)
	require.Len(t, meals, 1)
	assert.Equal(t, "Lunch", meals[0].(map[string]any)["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDaily_InvalidDate(t *testing.T) {
	db, _ := newMockDB(t)
	r := mealRouter(NewMealHandler(db, time.UTC), 5, models.RoleClient)

	w := do(r, http.MethodGet, "/meals/daily?date=01/03/2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", decode(t, w)["error_code"])
}

func TestDeleteMeal_NotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	r := mealRouter(NewMealHandler(db, time.UTC), 5, models.RoleClient)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "meals"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := do(r, http.MethodDelete, "/meals/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "meal_not_found", decode(t, w)["error_code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachCreateMeal_ClientOutsideRoster(t *testing.T) {
	db, mock := newMockDB(t)
	r := mealRouter(NewMealHandler(db, time.UTC), 1, models.RoleCoach)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := do(r, http.MethodPost, "/coaches/clients/10/meals", gin.H{"name": "Lunch", "total_calories": 500})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "client_not_found", decode(t, w)["error_code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachCreateMeal_RejectsNegativeTotals(t *testing.T) {
	db, mock := newMockDB(t)
	r := mealRouter(NewMealHandler(db, time.UTC), 1, models.RoleCoach)

	w := do(r, http.MethodPost, "/coaches/clients/10/meals", gin.H{"name": "Lunch", "total_calories": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decode(t, w)["error_code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
