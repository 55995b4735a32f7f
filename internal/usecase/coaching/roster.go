package coaching

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/dto"
	"github.com/BruksfildServices01/coachtrack/internal/timezone"
)

// ======================================================
// LIST CLIENTS
// ======================================================

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

func (uc *ListClients) Execute(
	ctx context.Context,
	actor domain.Actor,
	coachID uint,
) ([]dto.ClientSummaryDTO, error) {

	if !actor.ActsFor(coachID) {
		return nil, domain.ErrForbidden
	}

	clients, err := uc.repo.ListClients(ctx, coachID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ClientSummaryDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ClientSummaryDTO{
			ID:        c.ID,
			Firstname: c.Firstname,
			Lastname:  c.Lastname,
			Age:       c.Age,
			Gender:    c.Gender,
			Email:     c.Email,
			Goal:      domain.EffectiveGoal(c.DailyCaloricNeeds),
		})
	}
	return out, nil
}

// ======================================================
// HOME SUMMARY
// ======================================================

type HomeSummary struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

// NewHomeSummary builds the use case; "today" and "yesterday" are calendar
// days in loc.
func NewHomeSummary(
	repo domain.Repository,
	loc *time.Location,
	now func() time.Time,
) *HomeSummary {
	if loc == nil {
		loc = timezone.Location("")
	}
	if now == nil {
		now = time.Now
	}
	return &HomeSummary{
		repo: repo,
		loc:  loc,
		now:  now,
	}
}

func (uc *HomeSummary) Execute(
	ctx context.Context,
	actor domain.Actor,
	coachID uint,
) (*dto.HomeSummaryDTO, error) {

	if !actor.ActsFor(coachID) {
		return nil, domain.ErrForbidden
	}

	todayStart, todayEnd := timezone.DayBounds(uc.now().In(uc.loc))
	yesterdayStart, _ := timezone.DayBounds(todayStart.Add(-time.Hour))

	clients, err := uc.repo.ListClients(ctx, coachID)
	if err != nil {
		return nil, err
	}

	active, err := uc.repo.CountActiveClients(ctx, coachID, todayStart, todayEnd)
	if err != nil {
		return nil, err
	}

	totals, err := uc.repo.SumCaloriesByClient(ctx, coachID, yesterdayStart, todayStart)
	if err != nil {
		return nil, err
	}

	days := make([]domain.ClientDay, 0, len(clients))
	for _, c := range clients {
		days = append(days, domain.ClientDay{
			ClientID: c.ID,
			Name:     c.FullName(),
			Calories: totals[c.ID],
			Goal:     c.DailyCaloricNeeds,
		})
	}

	alerts, top := domain.Review(days)

	return &dto.HomeSummaryDTO{
		KPI: dto.HomeKPI{
			TotalClients: int64(len(clients)),
			ActiveToday:  active,
		},
		Alerts:        alerts,
		TopPerformers: top,
	}, nil
}
