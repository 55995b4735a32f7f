package coaching

import (
	"context"
	"strings"
	"unicode/utf8"

	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/dto"
)

// ======================================================
// RECEIVED (client side)
// ======================================================

type ListReceivedInvitations struct {
	repo domain.Repository
}

func NewListReceivedInvitations(repo domain.Repository) *ListReceivedInvitations {
	return &ListReceivedInvitations{repo: repo}
}

func (uc *ListReceivedInvitations) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.ReceivedInvitationDTO, error) {

	invs, err := uc.repo.ListPendingInvitationsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReceivedInvitationDTO, 0, len(invs))
	for _, inv := range invs {
		out = append(out, dto.ReceivedInvitationDTO{
			ID:             inv.ID,
			CoachID:        inv.CoachID,
			CoachFirstname: inv.Coach.Firstname,
			CoachLastname:  inv.Coach.Lastname,
			CoachAvatar:    initial(inv.Coach.Firstname),
			Status:         inv.Status,
			CreatedAt:      inv.CreatedAt,
		})
	}
	return out, nil
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// ======================================================
// SENT (coach side)
// ======================================================

type ListSentInvitations struct {
	repo domain.Repository
}

func NewListSentInvitations(repo domain.Repository) *ListSentInvitations {
	return &ListSentInvitations{repo: repo}
}

// Execute lists the coach's invitations that did not end in acceptance.
func (uc *ListSentInvitations) Execute(
	ctx context.Context,
	coachID uint,
) ([]dto.SentInvitationDTO, error) {

	invs, err := uc.repo.ListSentInvitations(ctx, coachID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SentInvitationDTO, 0, len(invs))
	for _, inv := range invs {
		out = append(out, dto.SentInvitationDTO{
			ID:          inv.ID,
			ClientID:    inv.ClientID,
			ClientName:  inv.Client.FullName(),
			ClientEmail: inv.Client.Email,
			Status:      inv.Status,
			CreatedAt:   inv.CreatedAt,
		})
	}
	return out, nil
}
