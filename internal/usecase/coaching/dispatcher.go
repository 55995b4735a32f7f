package coaching

import "github.com/BruksfildServices01/coachtrack/internal/audit"

// EventDispatcher is satisfied by *audit.Dispatcher.
type EventDispatcher interface {
	Dispatch(ev audit.Event)
}

// Assignment paths reported in coach_assigned / coach_unassigned metadata.
const (
	PathInvitation = "invitation"
	PathDirect     = "direct"
	PathCode       = "code"
	PathCoach      = "coach"
	PathClient     = "client"
)

func ptr(v uint) *uint {
	return &v
}
