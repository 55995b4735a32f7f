package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/middleware"
)

// currentUserID reads the authenticated user id, writing a 401 when absent.
func currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return 0, false
	}
	return id, true
}

func currentActor(c *gin.Context) (coaching.Actor, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return coaching.Actor{}, false
	}
	return coaching.Actor{ID: id, Role: middleware.UserRole(c)}, true
}

// uintParam parses a positive path parameter, writing a 400 otherwise.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid "+name+".")
		return 0, false
	}
	return uint(v), true
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
