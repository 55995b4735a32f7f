package coaching

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
)

type DeleteInvitation struct {
	repo  domain.Repository
	audit EventDispatcher
}

func NewDeleteInvitation(
	repo domain.Repository,
	audit EventDispatcher,
) *DeleteInvitation {
	return &DeleteInvitation{
		repo:  repo,
		audit: audit,
	}
}

// Execute withdraws a pending invitation sent by coachID. Answered
// invitations stay in the ledger.
func (uc *DeleteInvitation) Execute(
	ctx context.Context,
	invitationID uint,
	coachID uint,
) error {

	err := uc.repo.DeletePendingInvitation(ctx, invitationID, coachID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.ErrInvitationNotFound
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ptr(coachID),
		Action:   audit.ActionInvitationDeleted,
		Entity:   audit.EntityInvitation,
		EntityID: ptr(invitationID),
	})

	return nil
}
