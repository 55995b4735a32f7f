package coaching

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/models"
	"github.com/BruksfildServices01/coachtrack/internal/validators"
)

// Direct assignment paths write coach_id without touching the invitation
// ledger.

// ======================================================
// ASSIGN BY ID
// ======================================================

type AssignCoach struct {
	repo  domain.Repository
	audit EventDispatcher
}

func NewAssignCoach(
	repo domain.Repository,
	audit EventDispatcher,
) *AssignCoach {
	return &AssignCoach{
		repo:  repo,
		audit: audit,
	}
}

// Execute points clientID at coachID and returns the coach. The actor must
// be the client, the coach, or an admin.
func (uc *AssignCoach) Execute(
	ctx context.Context,
	actor domain.Actor,
	clientID uint,
	coachID uint,
) (*models.User, error) {

	if !actor.ActsFor(clientID, coachID) {
		return nil, domain.ErrForbidden
	}

	client, err := uc.repo.GetUser(ctx, clientID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}

	coach, err := uc.repo.GetUser(ctx, coachID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrCoachNotFound
	}
	if err != nil {
		return nil, err
	}

	if !coach.IsCoach() {
		return nil, domain.ErrInvalidCoach
	}

	if client.ID == coach.ID {
		return nil, domain.ErrCannotAssignSelf
	}

	// Roles are fixed at registration, so the checks above stay valid once
	// SetCoach takes the client row lock.
	if err := uc.repo.SetCoach(ctx, client.ID, ptr(coach.ID)); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(actor.ID),
		Action:   audit.ActionCoachAssigned,
		Entity:   audit.EntityUser,
		EntityID: ptr(client.ID),
		Metadata: map[string]any{"coach_id": coach.ID, "path": PathDirect},
	})

	return coach, nil
}

// ======================================================
// ASSIGN BY CODE
// ======================================================

type AssignClientByCode struct {
	repo  domain.Repository
	audit EventDispatcher
}

func NewAssignClientByCode(
	repo domain.Repository,
	audit EventDispatcher,
) *AssignClientByCode {
	return &AssignClientByCode{
		repo:  repo,
		audit: audit,
	}
}

// Execute attaches the user owning code to coachID and returns that client.
func (uc *AssignClientByCode) Execute(
	ctx context.Context,
	actor domain.Actor,
	coachID uint,
	code string,
) (*models.User, error) {

	if !actor.ActsFor(coachID) {
		return nil, domain.ErrForbidden
	}

	code = validators.NormalizeOnboardingCode(code)
	if !domain.IsValidCode(code) {
		return nil, domain.ErrInvalidCode
	}

	client, err := uc.repo.GetUserByCode(ctx, code)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}

	if client.ID == coachID {
		return nil, domain.ErrCannotAddSelf
	}

	coach, err := uc.repo.GetUser(ctx, coachID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrInvalidCoach
	}
	if err != nil {
		return nil, err
	}
	if !coach.IsCoach() {
		return nil, domain.ErrInvalidCoach
	}

	if err := uc.repo.SetCoach(ctx, client.ID, ptr(coach.ID)); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, err
	}
	client.CoachID = ptr(coach.ID)

	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(actor.ID),
		Action:   audit.ActionCoachAssigned,
		Entity:   audit.EntityUser,
		EntityID: ptr(client.ID),
		Metadata: map[string]any{"coach_id": coach.ID, "path": PathCode},
	})

	return client, nil
}
