package dto

import (
	"time"

	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
)

type ReceivedInvitationDTO struct {
	ID             uint      `json:"id"`
	CoachID        uint      `json:"coach_id"`
	CoachFirstname string    `json:"coach_firstname"`
	CoachLastname  string    `json:"coach_lastname"`
	CoachAvatar    string    `json:"coach_avatar"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type SentInvitationDTO struct {
	ID          uint      `json:"id"`
	ClientID    uint      `json:"client_id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ClientSummaryDTO struct {
	ID        uint    `json:"id"`
	Firstname string  `json:"firstname"`
	Lastname  string  `json:"lastname"`
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	Email     string  `json:"email"`
	Goal      float64 `json:"goal"`
}

type HomeKPI struct {
	TotalClients int64 `json:"total_clients"`
	ActiveToday  int64 `json:"active_today"`
}

type HomeSummaryDTO struct {
	KPI           HomeKPI                 `json:"kpi"`
	Alerts        []coaching.Alert        `json:"alerts"`
	TopPerformers []coaching.TopPerformer `json:"top_performers"`
}
