package coaching

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

type RespondInvitation struct {
	repo  domain.Repository
	audit EventDispatcher
	now   func() time.Time
}

func NewRespondInvitation(
	repo domain.Repository,
	audit EventDispatcher,
) *RespondInvitation {
	return &RespondInvitation{
		repo:  repo,
		audit: audit,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Execute applies the client's decision. Accepting assigns the coach and
// rejects every other pending invitation of the client in the same
// transaction. Invitations that are missing, addressed to someone else or
// already answered all report invitation_not_found.
func (uc *RespondInvitation) Execute(
	ctx context.Context,
	invitationID uint,
	clientID uint,
	decision string,
) (*models.Invitation, error) {

	status, err := domain.ParseDecision(decision)
	if err != nil {
		return nil, err
	}

	at := uc.now()

	if status == domain.StatusRejected {
		inv, err := uc.repo.RejectInvitation(ctx, invitationID, clientID, at)
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		if err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			ActorID:  ptr(clientID),
			Action:   audit.ActionInvitationRejected,
			Entity:   audit.EntityInvitation,
			EntityID: ptr(inv.ID),
			Metadata: map[string]any{"coach_id": inv.CoachID},
		})
		return inv, nil
	}

	inv, autoRejected, err := uc.repo.AcceptInvitation(ctx, invitationID, clientID, at)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(clientID),
		Action:   audit.ActionInvitationAccepted,
		Entity:   audit.EntityInvitation,
		EntityID: ptr(inv.ID),
		Metadata: map[string]any{"coach_id": inv.CoachID, "auto_rejected": autoRejected},
	})
	for _, id := range autoRejected {
		uc.audit.Dispatch(audit.Event{
			ActorID:  ptr(clientID),
			Action:   audit.ActionInvitationAutoRejected,
			Entity:   audit.EntityInvitation,
			EntityID: ptr(id),
			Metadata: map[string]any{"accepted_invitation_id": inv.ID},
		})
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(clientID),
		Action:   audit.ActionCoachAssigned,
		Entity:   audit.EntityUser,
		EntityID: ptr(clientID),
		Metadata: map[string]any{"coach_id": inv.CoachID, "path": PathInvitation},
	})

	return inv, nil
}
