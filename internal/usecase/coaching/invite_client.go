package coaching

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/models"
	"github.com/BruksfildServices01/coachtrack/internal/validators"
)

type InviteClient struct {
	repo  domain.Repository
	audit EventDispatcher
}

func NewInviteClient(
	repo domain.Repository,
	audit EventDispatcher,
) *InviteClient {
	return &InviteClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *InviteClient) Execute(
	ctx context.Context,
	coachID uint,
	clientCode string,
) (*models.Invitation, error) {

	// --------------------------------------------------
	// 1. caller must be a coach
	// --------------------------------------------------
	coach, err := uc.repo.GetUser(ctx, coachID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrOnlyCoachesCanInvite
	}
	if err != nil {
		return nil, err
	}
	if !coach.IsCoach() {
		return nil, domain.ErrOnlyCoachesCanInvite
	}

	// --------------------------------------------------
	// 2. resolve the client by onboarding code
	// --------------------------------------------------
	code := validators.NormalizeOnboardingCode(clientCode)
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

	if client.ID == coach.ID {
		return nil, domain.ErrCannotInviteSelf
	}

	if client.CoachID != nil && *client.CoachID == coach.ID {
		return nil, domain.ErrAlreadyInTeam
	}

	// --------------------------------------------------
	// 3. one pending invitation per pair
	// --------------------------------------------------
	pending, err := uc.repo.HasPendingInvitation(ctx, coach.ID, client.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.ErrInvitationPending
	}

	inv := &models.Invitation{
		CoachID:  coach.ID,
		ClientID: client.ID,
		Status:   string(domain.InitialStatus()),
	}

	// the partial unique index catches a concurrent duplicate
	if err := uc.repo.CreateInvitation(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrDuplicatePending) {
			return nil, domain.ErrInvitationPending
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(coach.ID),
		Action:   audit.ActionInvitationCreated,
		Entity:   audit.EntityInvitation,
		EntityID: ptr(inv.ID),
		Metadata: map[string]any{"client_id": client.ID},
	})

	return inv, nil
}
