// Package billing sells the VIP subscription through MercadoPago checkout.
package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	"github.com/BruksfildServices01/coachtrack/internal/domain/account"
)

const (
	// Period is how long one approved payment extends VIP access.
	Period = 30 * 24 * time.Hour

	StatusApproved = "approved"

	itemID    = "vip-monthly"
	itemTitle = "VIP coaching subscription (30 days)"
)

// PreferenceCreator is satisfied by preference.Client.
type PreferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// PaymentFetcher is satisfied by payment.Client.
type PaymentFetcher interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// EventDispatcher is satisfied by *audit.Dispatcher.
type EventDispatcher interface {
	Dispatch(ev audit.Event)
}

type Checkout struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

type Status struct {
	Active   bool       `json:"active"`
	VIPUntil *time.Time `json:"vip_until"`
}

type Options struct {
	Price           float64
	Currency        string
	NotificationURL string
}

type Subscriptions struct {
	prefs    PreferenceCreator
	payments PaymentFetcher
	users    account.Repository
	audit    EventDispatcher
	log      *zap.Logger
	opts     Options
	now      func() time.Time
}

// NewMercadoPagoClients builds the SDK clients for accessToken.
func NewMercadoPagoClients(accessToken string) (PreferenceCreator, PaymentFetcher, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return preference.NewClient(cfg), payment.NewClient(cfg), nil
}

func NewSubscriptions(
	prefs PreferenceCreator,
	payments PaymentFetcher,
	users account.Repository,
	audit EventDispatcher,
	log *zap.Logger,
	opts Options,
) *Subscriptions {
	if log == nil {
		log = zap.NewNop()
	}
	return &Subscriptions{
		prefs:    prefs,
		payments: payments,
		users:    users,
		audit:    audit,
		log:      log,
		opts:     opts,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Enabled reports whether MercadoPago clients are configured.
func (s *Subscriptions) Enabled() bool {
	return s.prefs != nil && s.payments != nil
}

// ======================================================
// CHECKOUT
// ======================================================

func (s *Subscriptions) Checkout(ctx context.Context, userID uint) (*Checkout, error) {
	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, account.ErrRecordNotFound) {
		return nil, account.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	req := preference.Request{
		Items: []preference.ItemRequest{{
			ID:         itemID,
			Title:      itemTitle,
			Quantity:   1,
			UnitPrice:  s.opts.Price,
			CurrencyID: s.opts.Currency,
		}},
		ExternalReference: strconv.FormatUint(uint64(user.ID), 10),
		NotificationURL:   s.opts.NotificationURL,
	}

	res, err := s.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &Checkout{PreferenceID: res.ID, InitPoint: res.InitPoint}, nil
}

// ======================================================
// WEBHOOK
// ======================================================

// HandlePayment fetches the payment and, when approved, extends the payer's
// VIP access. It reports whether access was extended.
func (s *Subscriptions) HandlePayment(ctx context.Context, paymentID int) (bool, error) {
	p, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return false, fmt.Errorf("get payment %d: %w", paymentID, err)
	}

	if p.Status != StatusApproved {
		s.log.Info("payment not approved",
			zap.Int("payment_id", paymentID),
			zap.String("status", p.Status),
		)
		return false, nil
	}

	id, err := strconv.ParseUint(p.ExternalReference, 10, 64)
	if err != nil || id == 0 {
		s.log.Warn("payment without user reference",
			zap.Int("payment_id", paymentID),
			zap.String("external_reference", p.ExternalReference),
		)
		return false, nil
	}
	userID := uint(id)

	until, err := s.users.ExtendVIP(ctx, userID, Period, s.now())
	if errors.Is(err, account.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  &userID,
		Action:   audit.ActionSubscriptionExtended,
		Entity:   audit.EntityUser,
		EntityID: &userID,
		Metadata: map[string]any{"payment_id": paymentID, "vip_until": until},
	})

	return true, nil
}

// ======================================================
// STATUS
// ======================================================

func (s *Subscriptions) Status(ctx context.Context, userID uint) (*Status, error) {
	user, err := s.users.GetUser(ctx, userID)
	if errors.Is(err, account.ErrRecordNotFound) {
		return nil, account.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &Status{
		Active:   user.VIPUntil != nil && user.VIPUntil.After(s.now()),
		VIPUntil: user.VIPUntil,
	}, nil
}
