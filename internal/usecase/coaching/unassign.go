package coaching

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
)

// ======================================================
// COACH REMOVES A CLIENT
// ======================================================

type UnassignClient struct {
	repo  domain.Repository
	audit EventDispatcher
}

func NewUnassignClient(
	repo domain.Repository,
	audit EventDispatcher,
) *UnassignClient {
	return &UnassignClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UnassignClient) Execute(
	ctx context.Context,
	actor domain.Actor,
	coachID uint,
	clientID uint,
) error {

	if !actor.ActsFor(coachID) {
		return domain.ErrForbidden
	}

	cleared, err := uc.repo.ClearCoachIfMatches(ctx, clientID, coachID)
	if err != nil {
		return err
	}
	if !cleared {
		return domain.ErrClientNotAssigned
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(actor.ID),
		Action:   audit.ActionCoachUnassigned,
		Entity:   audit.EntityUser,
		EntityID: ptr(clientID),
		Metadata: map[string]any{"coach_id": coachID, "path": PathCoach},
	})

	return nil
}

// ======================================================
// CLIENT LEAVES THEIR COACH
// ======================================================

type LeaveCoach struct {
	repo  domain.Repository
	audit EventDispatcher
}

func NewLeaveCoach(
	repo domain.Repository,
	audit EventDispatcher,
) *LeaveCoach {
	return &LeaveCoach{
		repo:  repo,
		audit: audit,
	}
}

// Execute clears the client's coach and returns the former coach id.
func (uc *LeaveCoach) Execute(
	ctx context.Context,
	clientID uint,
) (uint, error) {

	client, err := uc.repo.GetUser(ctx, clientID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return 0, domain.ErrClientNotFound
	}
	if err != nil {
		return 0, err
	}

	if client.CoachID == nil {
		return 0, domain.ErrNoCoachAssigned
	}
	coachID := *client.CoachID

	cleared, err := uc.repo.ClearCoachIfMatches(ctx, clientID, coachID)
	if err != nil {
		return 0, err
	}
	if !cleared {
		// changed by a concurrent request between read and write
		return 0, domain.ErrNoCoachAssigned
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(clientID),
		Action:   audit.ActionCoachUnassigned,
		Entity:   audit.EntityUser,
		EntityID: ptr(clientID),
		Metadata: map[string]any{"coach_id": coachID, "path": PathClient},
	})

	return coachID, nil
}
