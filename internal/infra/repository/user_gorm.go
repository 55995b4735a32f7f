package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/coachtrack/internal/domain/account"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(
	ctx context.Context,
	user *models.User,
) error {

	err := r.db.WithContext(ctx).Create(user).Error
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, constraintUserEmail):
		return account.ErrEmailTaken
	case isUniqueViolation(err, constraintUserCode):
		return account.ErrCodeTaken
	default:
		return fmt.Errorf("create user: %w", err)
	}
}

func (r *UserGormRepository) GetUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, account.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, account.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) SetAvatar(
	ctx context.Context,
	userID uint,
	url string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", url)
	if res.Error != nil {
		return fmt.Errorf("set avatar: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrRecordNotFound
	}
	return nil
}

func (r *UserGormRepository) ExtendVIP(
	ctx context.Context,
	userID uint,
	d time.Duration,
	now time.Time,
) (time.Time, error) {

	var until time.Time

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return account.ErrRecordNotFound
			}
			return err
		}

		from := now
		if user.VIPUntil != nil && user.VIPUntil.After(now) {
			from = *user.VIPUntil
		}
		until = from.Add(d)

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("vip_until", until).Error
	})
	if err != nil {
		return time.Time{}, err
	}

	return until, nil
}

var _ account.Repository = (*UserGormRepository)(nil)
