package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	ucCoaching "github.com/BruksfildServices01/coachtrack/internal/usecase/coaching"
)

// ======================================================
// HANDLER
// ======================================================

type CoachHandler struct {
	assign      *ucCoaching.AssignCoach
	assignCode  *ucCoaching.AssignClientByCode
	unassign    *ucCoaching.UnassignClient
	leave       *ucCoaching.LeaveCoach
	listClients *ucCoaching.ListClients
	homeSummary *ucCoaching.HomeSummary
}

func NewCoachHandler(
	assign *ucCoaching.AssignCoach,
	assignCode *ucCoaching.AssignClientByCode,
	unassign *ucCoaching.UnassignClient,
	leave *ucCoaching.LeaveCoach,
	listClients *ucCoaching.ListClients,
	homeSummary *ucCoaching.HomeSummary,
) *CoachHandler {
	return &CoachHandler{
		assign:      assign,
		assignCode:  assignCode,
		unassign:    unassign,
		leave:       leave,
		listClients: listClients,
		homeSummary: homeSummary,
	}
}

type AddClientRequest struct {
	Code string `json:"code" binding:"required"`
}

// ======================================================
// ASSIGNMENT
// ======================================================

func (h *CoachHandler) AddClient(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	coachID, ok := uintParam(c, "coach_id")
	if !ok {
		return
	}

	var req AddClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	client, err := h.assignCode.Execute(c.Request.Context(), actor, coachID, req.Code)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client added successfully",
		"client": gin.H{
			"id":        client.ID,
			"firstname": client.Firstname,
			"lastname":  client.Lastname,
		},
	})
}

func (h *CoachHandler) AssignCoach(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	// /users/:user_id/assign-coach/:coach_id
	clientID, ok := uintParam(c, "user_id")
	if !ok {
		return
	}
	coachID, ok := uintParam(c, "coach_id")
	if !ok {
		return
	}

	coach, err := h.assign.Execute(c.Request.Context(), actor, clientID, coachID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Coach assigned successfully",
		"coach":   coach.FullName(),
	})
}

func (h *CoachHandler) RemoveClient(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	coachID, ok := uintParam(c, "coach_id")
	if !ok {
		return
	}
	clientID, ok := uintParam(c, "client_id")
	if !ok {
		return
	}

	if err := h.unassign.Execute(c.Request.Context(), actor, coachID, clientID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client unassigned successfully"})
}

func (h *CoachHandler) LeaveCoach(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	formerCoach, err := h.leave.Execute(c.Request.Context(), clientID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "You have left your coach",
		"coach_id": formerCoach,
	})
}

// ======================================================
// ROSTER
// ======================================================

func (h *CoachHandler) ListClients(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	coachID, ok := uintParam(c, "coach_id")
	if !ok {
		return
	}

	out, err := h.listClients.Execute(c.Request.Context(), actor, coachID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *CoachHandler) HomeSummary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	coachID, ok := uintParam(c, "coach_id")
	if !ok {
		return
	}

	out, err := h.homeSummary.Execute(c.Request.Context(), actor, coachID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
