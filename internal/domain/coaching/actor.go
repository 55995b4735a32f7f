package coaching

import "github.com/BruksfildServices01/coachtrack/internal/models"

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// ActsFor reports whether the actor may operate on behalf of any of ids.
func (a Actor) ActsFor(ids ...uint) bool {
	if a.IsAdmin() {
		return true
	}
	for _, id := range ids {
		if a.ID == id {
			return true
		}
	}
	return false
}
