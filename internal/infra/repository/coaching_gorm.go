package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

type CoachingGormRepository struct {
	db *gorm.DB
}

func NewCoachingGormRepository(db *gorm.DB) *CoachingGormRepository {
	return &CoachingGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}
	return err
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *CoachingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *CoachingGormRepository) GetUserByCode(
	ctx context.Context,
	code string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("unique_code = ?", code).
		First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// --------------------------------------------------
// Invitations (create / lookup)
// --------------------------------------------------

func (r *CoachingGormRepository) HasPendingInvitation(
	ctx context.Context,
	coachID uint,
	clientID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Invitation{}).
		Where(
			"coach_id = ? AND client_id = ? AND status = ?",
			coachID, clientID, string(domain.StatusPending),
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CoachingGormRepository) CreateInvitation(
	ctx context.Context,
	inv *models.Invitation,
) error {

	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		if isUniqueViolation(err, constraintPendingPair) {
			return domain.ErrDuplicatePending
		}
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

func (r *CoachingGormRepository) ListPendingInvitationsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Invitation, error) {

	var invs []models.Invitation
	if err := r.db.WithContext(ctx).
		Preload("Coach").
		Where("client_id = ? AND status = ?", clientID, string(domain.StatusPending)).
		Order("created_at DESC").
		Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *CoachingGormRepository) ListSentInvitations(
	ctx context.Context,
	coachID uint,
) ([]models.Invitation, error) {

	var invs []models.Invitation
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("coach_id = ? AND status <> ?", coachID, string(domain.StatusAccepted)).
		Order("created_at DESC").
		Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// --------------------------------------------------
// Invitations (state change)
// --------------------------------------------------

// Every transaction that changes a client's coach or answers one of their
// invitations locks the client row first, then the invitation rows.

func lockClient(tx *gorm.DB, clientID uint) error {
	var client models.User
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&client, clientID).Error; err != nil {
		return notFound(err)
	}
	return nil
}

// lockPendingForClient loads the invitation with a row lock. It reports
// ErrRecordNotFound unless the invitation is addressed to clientID and can
// still be answered.
func lockPendingForClient(tx *gorm.DB, invitationID, clientID uint) (*models.Invitation, error) {
	var inv models.Invitation
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND client_id = ?", invitationID, clientID).
		First(&inv).Error; err != nil {
		return nil, notFound(err)
	}
	if !domain.CanRespond(domain.Status(inv.Status)) {
		return nil, domain.ErrRecordNotFound
	}
	return &inv, nil
}

func (r *CoachingGormRepository) AcceptInvitation(
	ctx context.Context,
	invitationID uint,
	clientID uint,
	at time.Time,
) (*models.Invitation, []uint, error) {

	var (
		accepted *models.Invitation
		rejected []uint
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockClient(tx, clientID); err != nil {
			return err
		}

		inv, err := lockPendingForClient(tx, invitationID, clientID)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Invitation{}).
			Where("id = ?", inv.ID).
			Updates(map[string]any{
				"status":       string(domain.StatusAccepted),
				"responded_at": at,
				"updated_at":   at,
			}).Error; err != nil {
			return fmt.Errorf("accept invitation: %w", err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", clientID).
			Update("coach_id", inv.CoachID).Error; err != nil {
			return fmt.Errorf("assign coach: %w", err)
		}

		if err := tx.Model(&models.Invitation{}).
			Where("client_id = ? AND status = ? AND id <> ?", clientID, string(domain.StatusPending), inv.ID).
			Pluck("id", &rejected).Error; err != nil {
			return fmt.Errorf("list sibling invitations: %w", err)
		}

		if len(rejected) > 0 {
			if err := tx.Model(&models.Invitation{}).
				Where("id IN ?", rejected).
				Updates(map[string]any{
					"status":       string(domain.StatusRejected),
					"responded_at": at,
					"updated_at":   at,
				}).Error; err != nil {
				return fmt.Errorf("reject sibling invitations: %w", err)
			}
		}

		inv.Status = string(domain.StatusAccepted)
		inv.RespondedAt = &at
		inv.UpdatedAt = at
		accepted = inv
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return accepted, rejected, nil
}

func (r *CoachingGormRepository) RejectInvitation(
	ctx context.Context,
	invitationID uint,
	clientID uint,
	at time.Time,
) (*models.Invitation, error) {

	var rejected *models.Invitation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockClient(tx, clientID); err != nil {
			return err
		}

		inv, err := lockPendingForClient(tx, invitationID, clientID)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.Invitation{}).
			Where("id = ?", inv.ID).
			Updates(map[string]any{
				"status":       string(domain.StatusRejected),
				"responded_at": at,
				"updated_at":   at,
			}).Error; err != nil {
			return fmt.Errorf("reject invitation: %w", err)
		}

		inv.Status = string(domain.StatusRejected)
		inv.RespondedAt = &at
		inv.UpdatedAt = at
		rejected = inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rejected, nil
}

func (r *CoachingGormRepository) DeletePendingInvitation(
	ctx context.Context,
	invitationID uint,
	coachID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ? AND status = ?", invitationID, coachID, string(domain.StatusPending)).
		Delete(&models.Invitation{})
	if res.Error != nil {
		return fmt.Errorf("delete invitation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Assignment
// --------------------------------------------------

func (r *CoachingGormRepository) SetCoach(
	ctx context.Context,
	clientID uint,
	coachID *uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockClient(tx, clientID); err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", clientID).
			Update("coach_id", coachID).Error; err != nil {
			return fmt.Errorf("set coach: %w", err)
		}
		return nil
	})
}

// ClearCoachIfMatches nulls coach_id only while it still equals coachID. The
// conditional UPDATE takes the client row lock itself.
func (r *CoachingGormRepository) ClearCoachIfMatches(
	ctx context.Context,
	clientID uint,
	coachID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND coach_id = ?", clientID, coachID).
		Update("coach_id", nil)
	if res.Error != nil {
		return false, fmt.Errorf("clear coach: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Roster
// --------------------------------------------------

func (r *CoachingGormRepository) ListClients(
	ctx context.Context,
	coachID uint,
) ([]models.User, error) {

	var clients []models.User
	if err := r.db.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Order("id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *CoachingGormRepository) CountActiveClients(
	ctx context.Context,
	coachID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN meals ON meals.user_id = users.id").
		Where(
			"users.coach_id = ? AND meals.hourtime >= ? AND meals.hourtime < ?",
			coachID, start, end,
		).
		Distinct("users.id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type calorieRow struct {
	UserID uint
	Total  float64
}

func (r *CoachingGormRepository) SumCaloriesByClient(
	ctx context.Context,
	coachID uint,
	start time.Time,
	end time.Time,
) (map[uint]float64, error) {

	var rows []calorieRow
	if err := r.db.WithContext(ctx).
		Model(&models.Meal{}).
		Select("meals.user_id AS user_id, COALESCE(SUM(meals.total_calories), 0) AS total").
		Joins("JOIN users ON users.id = meals.user_id").
		Where(
			"users.coach_id = ? AND meals.hourtime >= ? AND meals.hourtime < ?",
			coachID, start, end,
		).
		Group("meals.user_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]float64, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.Total
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*CoachingGormRepository)(nil)
