package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/coachtrack/internal/domain/account"
	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

// =====================================================
// HELPERS
// =====================================================

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraint}
}

// =====================================================
// USERS
// =====================================================

func TestCreateUser_MapsUniqueViolations(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		want       error
	}{
		{"email", constraintUserEmail, account.ErrEmailTaken},
		{"code", constraintUserCode, account.ErrCodeTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserGormRepository(db)

			mock.ExpectBegin()
			mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(uniqueViolation(tc.constraint))
			mock.ExpectRollback()

			err := repo.CreateUser(context.Background(), &models.User{
				Email: "ana@example.com",
				Role:  models.RoleClient,
			})

			assert.ErrorIs(t, err, tc.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateUser_AssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	u := &models.User{Email: "ana@example.com", Role: models.RoleClient}
	require.NoError(t, repo.CreateUser(context.Background(), u))

	assert.Equal(t, uint(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetUser(context.Background(), 42)

	assert.ErrorIs(t, err, account.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAvatar_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SetAvatar(context.Background(), 42, "https://cdn.example.com/a.webp")

	assert.ErrorIs(t, err, account.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtendVIP_StacksOnActivePeriod(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	current := now.AddDate(0, 0, 10)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vip_until"}).AddRow(1, current))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	until, err := repo.ExtendVIP(context.Background(), 1, 30*24*time.Hour, now)
	require.NoError(t, err)

	assert.Equal(t, current.Add(30*24*time.Hour), until)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExtendVIP_ExpiredStartsFromNow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserGormRepository(db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vip_until"}).AddRow(1, now.AddDate(0, -1, 0)))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	until, err := repo.ExtendVIP(context.Background(), 1, 24*time.Hour, now)
	require.NoError(t, err)

	assert.Equal(t, now.Add(24*time.Hour), until)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// =====================================================
// COACHING
// =====================================================

func TestCreateInvitation_DuplicatePending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "invitations"`).WillReturnError(uniqueViolation(constraintPendingPair))
	mock.ExpectRollback()

	err := repo.CreateInvitation(context.Background(), &models.Invitation{
		CoachID:  1,
		ClientID: 2,
		Status:   string(domain.StatusPending),
	})

	assert.ErrorIs(t, err, domain.ErrDuplicatePending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInvitation_OtherViolationIsWrapped(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "invitations"`).WillReturnError(uniqueViolation("some_other_index"))
	mock.ExpectRollback()

	err := repo.CreateInvitation(context.Background(), &models.Invitation{
		CoachID:  1,
		ClientID: 2,
		Status:   string(domain.StatusPending),
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicatePending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func invitationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "coach_id", "client_id", "status"})
}

func TestAcceptInvitation_LocksClientFirstAndRejectsSiblings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow(10, models.RoleClient))
	mock.ExpectQuery(`SELECT \* FROM "invitations" .*FOR UPDATE`).
		WillReturnRows(invitationRows().AddRow(4, 1, 10, string(domain.StatusPending)))
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "id" FROM "invitations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5).AddRow(6))
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	inv, rejected, err := repo.AcceptInvitation(context.Background(), 4, 10, at)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusAccepted), inv.Status)
	assert.Equal(t, uint(1), inv.CoachID)
	require.NotNil(t, inv.RespondedAt)
	assert.Equal(t, at, *inv.RespondedAt)
	assert.Equal(t, []uint{5, 6}, rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptInvitation_NoSiblings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`SELECT \* FROM "invitations" .*FOR UPDATE`).
		WillReturnRows(invitationRows().AddRow(4, 1, 10, string(domain.StatusPending)))
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "id" FROM "invitations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	_, rejected, err := repo.AcceptInvitation(context.Background(), 4, 10, time.Now())
	require.NoError(t, err)

	assert.Empty(t, rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptInvitation_SiblingFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`SELECT \* FROM "invitations" .*FOR UPDATE`).
		WillReturnRows(invitationRows().AddRow(4, 1, 10, string(domain.StatusPending)))
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "id" FROM "invitations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnError(boom)
	mock.ExpectRollback()

	inv, rejected, err := repo.AcceptInvitation(context.Background(), 4, 10, time.Now())

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, inv)
	assert.Nil(t, rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToUnavailableInvitation(t *testing.T) {
	cases := []struct {
		name string
		rows *sqlmock.Rows
	}{
		{"already accepted", invitationRows().AddRow(4, 1, 10, string(domain.StatusAccepted))},
		{"already rejected", invitationRows().AddRow(4, 1, 10, string(domain.StatusRejected))},
		{"addressed to someone else", invitationRows()},
	}

	for _, tc := range cases {
		t.Run("accept "+tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewCoachingGormRepository(db)

			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
			mock.ExpectQuery(`SELECT \* FROM "invitations" .*FOR UPDATE`).WillReturnRows(tc.rows)
			mock.ExpectRollback()

			_, _, err := repo.AcceptInvitation(context.Background(), 4, 10, time.Now())

			assert.ErrorIs(t, err, domain.ErrRecordNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	for _, tc := range []struct {
		name   string
		status domain.Status
		found  bool
	}{
		{"already accepted", domain.StatusAccepted, true},
		{"already rejected", domain.StatusRejected, true},
		{"addressed to someone else", "", false},
	} {
		t.Run("reject "+tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewCoachingGormRepository(db)

			rows := invitationRows()
			if tc.found {
				rows.AddRow(4, 1, 10, string(tc.status))
			}

			mock.ExpectBegin()
			mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
			mock.ExpectQuery(`SELECT \* FROM "invitations" .*FOR UPDATE`).WillReturnRows(rows)
			mock.ExpectRollback()

			_, err := repo.RejectInvitation(context.Background(), 4, 10, time.Now())

			assert.ErrorIs(t, err, domain.ErrRecordNotFound)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRejectInvitation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`SELECT \* FROM "invitations" .*FOR UPDATE`).
		WillReturnRows(invitationRows().AddRow(4, 1, 10, string(domain.StatusPending)))
	mock.ExpectExec(`UPDATE "invitations" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inv, err := repo.RejectInvitation(context.Background(), 4, 10, at)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), inv.Status)
	assert.Equal(t, at, inv.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondInvitation_UnknownClientRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users" .*FOR UPDATE`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, _, err := repo.AcceptInvitation(context.Background(), 4, 10, time.Now())

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePendingInvitation_NothingDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "invitations"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.DeletePendingInvitation(context.Background(), 9, 1)

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCoach_UnknownClientRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	coachID := uint(1)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.SetCoach(context.Background(), 5, &coachID)

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCoachIfMatches(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"assigned", 1, true},
		{"not assigned", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewCoachingGormRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE "users" SET`).WillReturnResult(sqlmock.NewResult(0, tc.affected))
			mock.ExpectCommit()

			cleared, err := repo.ClearCoachIfMatches(context.Background(), 5, 1)
			require.NoError(t, err)

			assert.Equal(t, tc.want, cleared)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSumCaloriesByClient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoachingGormRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT meals.user_id AS user_id, COALESCE\(SUM\(meals.total_calories\), 0\) AS total FROM "meals"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total"}).
			AddRow(2, 1800.5).
			AddRow(3, 950.0))

	out, err := repo.SumCaloriesByClient(context.Background(), 1, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, map[uint]float64{2: 1800.5, 3: 950.0}, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
