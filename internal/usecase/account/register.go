package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/coachtrack/internal/domain/account"
	"github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/models"
	"github.com/BruksfildServices01/coachtrack/internal/validators"
)

// TokenIssuer is satisfied by *auth.Issuer.
type TokenIssuer interface {
	CreateAccessToken(userID uint, role, email string) (string, error)
}

// PasswordHasher is satisfied by auth.HashPassword.
type PasswordHasher func(plain string) (string, error)

type RegisterInput struct {
	Firstname   string
	Lastname    string
	Email       string
	Password    string
	Gender      string
	Age         int
	Role        string
	Nationality *string
	Language    *string
	City        *string
	Latitude    *float64
	Longitude   *float64
	Weight      *float64
	Height      *float64
	Goal        *string
}

type Session struct {
	User  *models.User
	Token string
}

// ErrCodeSpaceExhausted is returned when every attempt at a fresh onboarding
// code collided with an existing one.
var ErrCodeSpaceExhausted = errors.New("could not allocate a unique onboarding code")

type Register struct {
	repo        domain.Repository
	tokens      TokenIssuer
	hash        PasswordHasher
	codes       coaching.CodeGenerator
	emailDomain validators.EmailDomainCheck
}

func NewRegister(
	repo domain.Repository,
	tokens TokenIssuer,
	hash PasswordHasher,
	codes coaching.CodeGenerator,
	emailDomain validators.EmailDomainCheck,
) *Register {
	if codes == nil {
		codes = coaching.GenerateOnboardingCode
	}
	if emailDomain == nil {
		emailDomain = validators.IsEmailDomainValid
	}
	return &Register{
		repo:        repo,
		tokens:      tokens,
		hash:        hash,
		codes:       codes,
		emailDomain: emailDomain,
	}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*Session, error) {

	// --------------------------------------------------
	// 1. validate
	// --------------------------------------------------
	if !domain.SelfRegisterable(in.Role) {
		return nil, domain.ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !uc.emailDomain(email) {
		return nil, domain.ErrInvalidEmailDomain
	}

	if _, err := uc.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := uc.hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashed,
		Firstname:    strings.TrimSpace(in.Firstname),
		Lastname:     strings.TrimSpace(in.Lastname),
		Gender:       in.Gender,
		Age:          in.Age,
		Role:         in.Role,
		Nationality:  in.Nationality,
		Language:     in.Language,
		City:         in.City,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Weight:       in.Weight,
		Height:       in.Height,
		Goal:         in.Goal,
	}

	// --------------------------------------------------
	// 2. insert, regenerating the code on collision
	// --------------------------------------------------
	inserted := false
	for attempt := 0; attempt < coaching.MaxCodeAttempts; attempt++ {
		code, err := uc.codes()
		if err != nil {
			return nil, err
		}
		user.UniqueCode = &code

		err = uc.repo.CreateUser(ctx, user)
		if errors.Is(err, domain.ErrCodeTaken) {
			continue
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailAlreadyRegistered
		}
		if err != nil {
			return nil, err
		}
		inserted = true
		break
	}
	if !inserted {
		return nil, ErrCodeSpaceExhausted
	}

	// --------------------------------------------------
	// 3. session
	// --------------------------------------------------
	token, err := uc.tokens.CreateAccessToken(user.ID, user.Role, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}
