package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coachtrack/internal/billing"
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

const notificationTypePayment = "payment"

type SubscriptionHandler struct {
	subs *billing.Subscriptions
	log  *zap.Logger
}

func NewSubscriptionHandler(subs *billing.Subscriptions, log *zap.Logger) *SubscriptionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubscriptionHandler{subs: subs, log: log}
}

// ======================================================
// CLIENT
// ======================================================

func (h *SubscriptionHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if !h.subs.Enabled() {
		httperr.Write(c, http.StatusServiceUnavailable, "billing_unavailable", "Payments are not configured.")
		return
	}

	out, err := h.subs.Checkout(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	out, err := h.subs.Status(c.Request.Context(), userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// WEBHOOK
// ======================================================

type notification struct {
	Type string `json:"type"`
	Data struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// parseNotification reads the topic and payment id from the query string,
// falling back to the JSON body.
func parseNotification(c *gin.Context) (string, string) {
	kind := c.Query("type")
	if kind == "" {
		kind = c.Query("topic")
	}
	id := c.Query("data.id")
	if id == "" {
		id = c.Query("id")
	}
	if kind != "" && id != "" {
		return kind, id
	}

	var body notification
	if err := c.ShouldBindJSON(&body); err != nil {
		return kind, id
	}
	if kind == "" {
		kind = body.Type
	}
	if id == "" {
		id = strings.Trim(string(body.Data.ID), `"`)
	}
	return kind, id
}

// Webhook acknowledges every notification; only approved payments change state.
func (h *SubscriptionHandler) Webhook(c *gin.Context) {
	if !h.subs.Enabled() {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	kind, rawID := parseNotification(c)
	if kind != notificationTypePayment {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	paymentID, err := strconv.Atoi(rawID)
	if err != nil || paymentID <= 0 {
		h.log.Warn("payment notification without id", zap.String("id", rawID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	extended, err := h.subs.HandlePayment(c.Request.Context(), paymentID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true, "extended": extended})
}
