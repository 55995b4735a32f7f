package coaching

import (
	"context"
	"time"

	"github.com/BruksfildServices01/coachtrack/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetUserByCode(
		ctx context.Context,
		code string,
	) (*models.User, error)

	// -------- Invitations (create / lookup) --------
	HasPendingInvitation(
		ctx context.Context,
		coachID uint,
		clientID uint,
	) (bool, error)

	CreateInvitation(
		ctx context.Context,
		inv *models.Invitation,
	) error

	ListPendingInvitationsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Invitation, error)

	ListSentInvitations(
		ctx context.Context,
		coachID uint,
	) ([]models.Invitation, error)

	// -------- Invitations (state change) --------

	// AcceptInvitation atomically marks the pending invitation accepted,
	// points the client at the inviting coach and rejects every other
	// pending invitation of that client. It returns the accepted invitation
	// and the ids of the invitations rejected on the way.
	AcceptInvitation(
		ctx context.Context,
		invitationID uint,
		clientID uint,
		at time.Time,
	) (*models.Invitation, []uint, error)

	RejectInvitation(
		ctx context.Context,
		invitationID uint,
		clientID uint,
		at time.Time,
	) (*models.Invitation, error)

	DeletePendingInvitation(
		ctx context.Context,
		invitationID uint,
		coachID uint,
	) error

	// -------- Assignment --------

	// SetCoach writes client.coach_id under a row lock. A nil coachID clears it.
	SetCoach(
		ctx context.Context,
		clientID uint,
		coachID *uint,
	) error

	// ClearCoachIfMatches clears client.coach_id only when it equals coachID
	// and reports whether a row changed.
	ClearCoachIfMatches(
		ctx context.Context,
		clientID uint,
		coachID uint,
	) (bool, error)

	// -------- Roster --------
	ListClients(
		ctx context.Context,
		coachID uint,
	) ([]models.User, error)

	CountActiveClients(
		ctx context.Context,
		coachID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	SumCaloriesByClient(
		ctx context.Context,
		coachID uint,
		start time.Time,
		end time.Time,
	) (map[uint]float64, error)
}
