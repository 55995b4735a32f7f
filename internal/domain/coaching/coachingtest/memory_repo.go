// Package coachingtest provides an in-memory coaching.Repository for tests.
package coachingtest

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/coachtrack/internal/domain/coaching"
	"github.com/BruksfildServices01/coachtrack/internal/models"
)

// MealEntry is a logged meal as seen by the roster queries.
type MealEntry struct {
	UserID   uint
	Calories float64
	At       time.Time
}

type MemoryRepo struct {
	mu sync.Mutex

	users       map[uint]*models.User
	invitations map[uint]*models.Invitation
	meals       []MealEntry
	nextInvID   uint

	// Err, when set, is returned by every call.
	Err error
}

var _ domain.Repository = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:       make(map[uint]*models.User),
		invitations: make(map[uint]*models.Invitation),
		nextInvID:   1,
	}
}

// ======================================================
// SEEDING / INSPECTION
// ======================================================

func (r *MemoryRepo) AddUser(u models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := u
	r.users[u.ID] = &cp
	return &cp
}

func (r *MemoryRepo) AddInvitation(inv models.Invitation) uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.ID == 0 {
		inv.ID = r.nextInvID
	}
	if inv.ID >= r.nextInvID {
		r.nextInvID = inv.ID + 1
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	cp := inv
	r.invitations[inv.ID] = &cp
	return inv.ID
}

func (r *MemoryRepo) AddMeal(m MealEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meals = append(r.meals, m)
}

// User returns a copy of the stored user or nil.
func (r *MemoryRepo) User(id uint) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

// Invitation returns a copy of the stored invitation or nil.
func (r *MemoryRepo) Invitation(id uint) *models.Invitation {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invitations[id]
	if !ok {
		return nil
	}
	cp := *inv
	return &cp
}

// CountPending counts pending rows for the pair.
func (r *MemoryRepo) CountPending(coachID, clientID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, inv := range r.invitations {
		if inv.CoachID == coachID && inv.ClientID == clientID && inv.Status == string(domain.StatusPending) {
			n++
		}
	}
	return n
}

// ======================================================
// domain.Repository
// ======================================================

func (r *MemoryRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryRepo) GetUserByCode(ctx context.Context, code string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.UniqueCode != nil && *u.UniqueCode == code {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *MemoryRepo) HasPendingInvitation(ctx context.Context, coachID, clientID uint) (bool, error) {
	if r.Err != nil {
		return false, r.Err
	}
	return r.CountPending(coachID, clientID) > 0, nil
}

func (r *MemoryRepo) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, existing := range r.invitations {
		if existing.CoachID == inv.CoachID && existing.ClientID == inv.ClientID &&
			existing.Status == string(domain.StatusPending) && inv.Status == string(domain.StatusPending) {
			return domain.ErrDuplicatePending
		}
	}
	now := time.Now().UTC()
	inv.ID = r.nextInvID
	r.nextInvID++
	inv.CreatedAt = now
	inv.UpdatedAt = now
	cp := *inv
	r.invitations[inv.ID] = &cp
	return nil
}

func (r *MemoryRepo) ListPendingInvitationsForClient(ctx context.Context, clientID uint) ([]models.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Invitation, 0)
	for _, inv := range r.invitations {
		if inv.ClientID == clientID && inv.Status == string(domain.StatusPending) {
			cp := *inv
			if c, ok := r.users[inv.CoachID]; ok {
				cp.Coach = *c
			}
			out = append(out, cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepo) ListSentInvitations(ctx context.Context, coachID uint) ([]models.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Invitation, 0)
	for _, inv := range r.invitations {
		if inv.CoachID == coachID && inv.Status != string(domain.StatusAccepted) {
			cp := *inv
			if c, ok := r.users[inv.ClientID]; ok {
				cp.Client = *c
			}
			out = append(out, cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(invs []models.Invitation) {
	sort.Slice(invs, func(i, j int) bool {
		if invs[i].CreatedAt.Equal(invs[j].CreatedAt) {
			return invs[i].ID > invs[j].ID
		}
		return invs[i].CreatedAt.After(invs[j].CreatedAt)
	})
}

func (r *MemoryRepo) AcceptInvitation(ctx context.Context, invitationID, clientID uint, at time.Time) (*models.Invitation, []uint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, nil, r.Err
	}

	inv, ok := r.invitations[invitationID]
	if !ok || inv.ClientID != clientID || !domain.CanRespond(domain.Status(inv.Status)) {
		return nil, nil, domain.ErrRecordNotFound
	}
	client, ok := r.users[clientID]
	if !ok {
		return nil, nil, domain.ErrRecordNotFound
	}

	inv.Status = string(domain.StatusAccepted)
	inv.RespondedAt = &at
	inv.UpdatedAt = at

	coachID := inv.CoachID
	client.CoachID = &coachID

	rejected := make([]uint, 0)
	for _, other := range r.invitations {
		if other.ID != inv.ID && other.ClientID == clientID && other.Status == string(domain.StatusPending) {
			other.Status = string(domain.StatusRejected)
			other.RespondedAt = &at
			other.UpdatedAt = at
			rejected = append(rejected, other.ID)
		}
	}
	sort.Slice(rejected, func(i, j int) bool { return rejected[i] < rejected[j] })

	cp := *inv
	return &cp, rejected, nil
}

func (r *MemoryRepo) RejectInvitation(ctx context.Context, invitationID, clientID uint, at time.Time) (*models.Invitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	inv, ok := r.invitations[invitationID]
	if !ok || inv.ClientID != clientID || !domain.CanRespond(domain.Status(inv.Status)) {
		return nil, domain.ErrRecordNotFound
	}
	inv.Status = string(domain.StatusRejected)
	inv.RespondedAt = &at
	inv.UpdatedAt = at

	cp := *inv
	return &cp, nil
}

func (r *MemoryRepo) DeletePendingInvitation(ctx context.Context, invitationID, coachID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	inv, ok := r.invitations[invitationID]
	if !ok || inv.CoachID != coachID || !domain.CanRespond(domain.Status(inv.Status)) {
		return domain.ErrRecordNotFound
	}
	delete(r.invitations, invitationID)
	return nil
}

func (r *MemoryRepo) SetCoach(ctx context.Context, clientID uint, coachID *uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	u, ok := r.users[clientID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if coachID == nil {
		u.CoachID = nil
		return nil
	}
	id := *coachID
	u.CoachID = &id
	return nil
}

func (r *MemoryRepo) ClearCoachIfMatches(ctx context.Context, clientID, coachID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}

	u, ok := r.users[clientID]
	if !ok || u.CoachID == nil || *u.CoachID != coachID {
		return false, nil
	}
	u.CoachID = nil
	return true, nil
}

func (r *MemoryRepo) ListClients(ctx context.Context, coachID uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]models.User, 0)
	for _, u := range r.users {
		if u.CoachID != nil && *u.CoachID == coachID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) CountActiveClients(ctx context.Context, coachID uint, start, end time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}

	seen := make(map[uint]struct{})
	for _, m := range r.meals {
		if !r.belongsTo(m.UserID, coachID) || m.At.Before(start) || !m.At.Before(end) {
			continue
		}
		seen[m.UserID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (r *MemoryRepo) SumCaloriesByClient(ctx context.Context, coachID uint, start, end time.Time) (map[uint]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := make(map[uint]float64)
	for _, m := range r.meals {
		if !r.belongsTo(m.UserID, coachID) || m.At.Before(start) || !m.At.Before(end) {
			continue
		}
		out[m.UserID] += m.Calories
	}
	return out, nil
}

func (r *MemoryRepo) belongsTo(userID, coachID uint) bool {
	u, ok := r.users[userID]
	return ok && u.CoachID != nil && *u.CoachID == coachID
}
