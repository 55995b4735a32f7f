package account

import (
	"context"
	"errors"
	"strings"

	domain "github.com/BruksfildServices01/coachtrack/internal/domain/account"
)

// PasswordChecker is satisfied by auth.CheckPassword.
type PasswordChecker func(hash, plain string) bool

type Login struct {
	repo   domain.Repository
	tokens TokenIssuer
	check  PasswordChecker
}

func NewLogin(
	repo domain.Repository,
	tokens TokenIssuer,
	check PasswordChecker,
) *Login {
	return &Login{
		repo:   repo,
		tokens: tokens,
		check:  check,
	}
}

func (uc *Login) Execute(
	ctx context.Context,
	email string,
	password string,
) (*Session, error) {

	user, err := uc.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if !uc.check(user.PasswordHash, password) {
		return nil, domain.ErrInvalidPassword
	}

	token, err := uc.tokens.CreateAccessToken(user.ID, user.Role, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}
