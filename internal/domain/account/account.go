package account

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

var (
	// ErrEmailTaken and ErrCodeTaken are returned by CreateUser when the
	// matching unique constraint rejects the insert.
	ErrEmailTaken = errors.New("email already registered")
	ErrCodeTaken  = errors.New("onboarding code already in use")

	ErrRecordNotFound = errors.New("record not found")
)

var (
	ErrEmailAlreadyRegistered = httperr.ErrConflict(
		"email_taken", "Email already registered. Please use a different email address.")

	ErrInvalidRole = httperr.ErrInvalidArgument(
		"invalid_role", "Role must be 'client' or 'coach'.")

	ErrInvalidEmailDomain = httperr.ErrInvalidArgument(
		"invalid_email_domain", "The email domain does not look valid.")

	ErrUserNotFound = httperr.ErrNotFound(
		"user_not_found", "User not found.")

	ErrInvalidPassword = httperr.ErrUnauthenticated(
		"invalid_password", "Invalid password.")
)

type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	SetAvatar(ctx context.Context, userID uint, url string) error

	// ExtendVIP pushes vip_until forward by d, starting from the later of
	// now and the current expiry, and returns the new expiry.
	ExtendVIP(ctx context.Context, userID uint, d time.Duration, now time.Time) (time.Time, error)
}

// SelfRegisterable reports whether a role may be chosen at sign-up.
func SelfRegisterable(role string) bool {
	return role == models.RoleClient || role == models.RoleCoach
}
