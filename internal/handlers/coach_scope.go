package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coachtrack/internal/domain/account"
	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

// findUser loads a user by id, writing user_not_found when missing.
func findUser(c *gin.Context, db *gorm.DB, id uint) (*models.User, bool) {
	var user models.User
	if err := db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, account.ErrUserNotFound)
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &user, true
}

// coachedClient loads clientID when the actor coaches that client. Admins
// see every client. Anything else reports client_not_found.
func coachedClient(c *gin.Context, db *gorm.DB, actor coaching.Actor, clientID uint) (*models.User, bool) {
	q := db.WithContext(c.Request.Context()).Where("id = ?", clientID)
	if !actor.IsAdmin() {
		q = q.Where("coach_id = ?", actor.ID)
	}

	var client models.User
	if err := q.First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, coaching.ErrClientNotFound)
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &client, true
}

// ownedByCoachedClient narrows q (over a table with user_id) to rows of the
// actor's clients.
func ownedByCoachedClient(q *gorm.DB, db *gorm.DB, actor coaching.Actor) *gorm.DB {
	if actor.IsAdmin() {
		return q
	}
	return q.Where("user_id IN (?)",
		db.Model(&models.User{}).Select("id").Where("coach_id = ?", actor.ID),
	)
}
