package coaching

import (
	"sync"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching/coachingtest"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// seed creates coach 1 (#000001), coach 2 (#000002), client 10 (#000010)
// and client 11 (#000011).
func seed() *coachingtest.MemoryRepo {
	repo := coachingtest.NewMemoryRepo()
	repo.AddUser(models.User{ID: 1, Firstname: "Ana", Lastname: "Coach", Email: "ana@example.com", Role: models.RoleCoach, UniqueCode: strPtr("#000001")})
	repo.AddUser(models.User{ID: 2, Firstname: "bruno", Lastname: "Coach", Email: "bruno@example.com", Role: models.RoleCoach, UniqueCode: strPtr("#000002")})
	repo.AddUser(models.User{ID: 10, Firstname: "Carla", Lastname: "Client", Email: "carla@example.com", Role: models.RoleClient, UniqueCode: strPtr("#000010")})
	repo.AddUser(models.User{ID: 11, Firstname: "Dan", Lastname: "Client", Email: "dan@example.com", Role: models.RoleClient, UniqueCode: strPtr("#000011")})
	return repo
}
