package coaching

import (
	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

// ===============================
// Invitation Status
// ===============================

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func InitialStatus() Status {
	return StatusPending
}

// ParseDecision validates a client's answer to an invitation.
func ParseDecision(v string) (Status, error) {
	switch Status(v) {
	case StatusAccepted, StatusRejected:
		return Status(v), nil
	}
	return "", httperr.ErrInvalidArgument(
		"invalid_status",
		"Status must be 'accepted' or 'rejected'.",
	)
}

// CanRespond reports whether an invitation in state current may still be
// answered or withdrawn. Only pending invitations move.
func CanRespond(current Status) bool {
	return current == StatusPending
}
