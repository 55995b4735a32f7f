package account

import (
	"context"
	"errors"
	"io"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	domain "github.com/BruksfildServices01/coachtrack/internal/domain/account"
)

// AvatarUploader is satisfied by *storage.AvatarStore.
type AvatarUploader interface {
	Upload(ctx context.Context, userID uint, r io.Reader) (string, error)
}

// EventDispatcher is satisfied by *audit.Dispatcher.
type EventDispatcher interface {
	Dispatch(ev audit.Event)
}

type UpdateAvatar struct {
	repo  domain.Repository
	store AvatarUploader
	audit EventDispatcher
}

func NewUpdateAvatar(
	repo domain.Repository,
	store AvatarUploader,
	audit EventDispatcher,
) *UpdateAvatar {
	return &UpdateAvatar{
		repo:  repo,
		store: store,
		audit: audit,
	}
}

// Execute stores the image and points the user's avatar_url at it.
func (uc *UpdateAvatar) Execute(
	ctx context.Context,
	userID uint,
	image io.Reader,
) (string, error) {

	url, err := uc.store.Upload(ctx, userID, image)
	if err != nil {
		return "", err
	}

	if err := uc.repo.SetAvatar(ctx, userID, url); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	id := userID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &id,
		Action:   audit.ActionAvatarUpdated,
		Entity:   audit.EntityUser,
		EntityID: &id,
		Metadata: map[string]any{"url": url},
	})

	return url, nil
}
