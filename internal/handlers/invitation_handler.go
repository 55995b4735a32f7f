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

type InvitationHandler struct {
	invite       *ucCoaching.InviteClient
	respond      *ucCoaching.RespondInvitation
	remove       *ucCoaching.DeleteInvitation
	listReceived *ucCoaching.ListReceivedInvitations
	listSent     *ucCoaching.ListSentInvitations
}

func NewInvitationHandler(
	invite *ucCoaching.InviteClient,
	respond *ucCoaching.RespondInvitation,
	remove *ucCoaching.DeleteInvitation,
	listReceived *ucCoaching.ListReceivedInvitations,
	listSent *ucCoaching.ListSentInvitations,
) *InvitationHandler {
	return &InvitationHandler{
		invite:       invite,
		respond:      respond,
		remove:       remove,
		listReceived: listReceived,
		listSent:     listSent,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type InviteClientRequest struct {
	UniqueCode string `json:"unique_code" binding:"required"`
}

type RespondInvitationRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// COACH SIDE
// ======================================================

func (h *InvitationHandler) Invite(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req InviteClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	inv, err := h.invite.Execute(c.Request.Context(), coachID, req.UniqueCode)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Invitation sent to the client successfully!",
		"invitation": inv,
	})
}

func (h *InvitationHandler) Delete(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "invitation_id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, coachID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation successfully deleted."})
}

func (h *InvitationHandler) ListSent(c *gin.Context) {
	coachID, ok := currentUserID(c)
	if !ok {
		return
	}

	out, err := h.listSent.Execute(c.Request.Context(), coachID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CLIENT SIDE
// ======================================================

func (h *InvitationHandler) ListMine(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	out, err := h.listReceived.Execute(c.Request.Context(), clientID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": out})
}

func (h *InvitationHandler) Respond(c *gin.Context) {
	clientID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := uintParam(c, "invitation_id")
	if !ok {
		return
	}

	var req RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	inv, err := h.respond.Execute(c.Request.Context(), id, clientID, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Invitation successfully " + inv.Status + ".",
		"invitation": inv,
	})
}
