// Package catalog proxies the third-party food and exercise catalogues.
// Provider failures degrade to empty results; only a missing barcode or
// muscle is reported to the caller.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	ProviderEdamam        = "edamam"
	ProviderOpenFoodFacts = "openfoodfacts"
	ProviderExercises     = "exercises"
)

// ErrorRecorder is satisfied by *metrics.Collector.
type ErrorRecorder interface {
	RecordProviderError(provider string)
}

type Service struct {
	edamam    *EdamamClient
	off       *OpenFoodFactsClient
	exercises *ExercisesClient

	cache Cache
	ttl   time.Duration
	log   *zap.Logger
	errs  ErrorRecorder
}

type Options struct {
	Cache    Cache
	CacheTTL time.Duration
	Logger   *zap.Logger
	Errors   ErrorRecorder
}

func NewService(
	edamam *EdamamClient,
	off *OpenFoodFactsClient,
	exercises *ExercisesClient,
	opts Options,
) *Service {
	s := &Service{
		edamam:    edamam,
		off:       off,
		exercises: exercises,
		cache:     opts.Cache,
		ttl:       opts.CacheTTL,
		log:       opts.Logger,
		errs:      opts.Errors,
	}
	if s.cache == nil {
		s.cache = NopCache{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// ======================================================
// FOODS
// ======================================================

func (s *Service) SearchFoods(ctx context.Context, query string) []Food {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Food{}
	}

	key := "search:" + strings.ToLower(query)
	out, err := cached(ctx, s, key, func() ([]Food, error) {
		return s.edamam.Search(ctx, query)
	})
	if err != nil {
		s.fail(ProviderEdamam, err)
		return []Food{}
	}
	return out
}

// FoodNutrients returns nil when the provider cannot answer.
func (s *Service) FoodNutrients(ctx context.Context, code string, grams float64) *Nutrients {
	key := fmt.Sprintf("nutrients:%s:%g", code, grams)
	out, err := cached(ctx, s, key, func() (*Nutrients, error) {
		return s.edamam.Nutrients(ctx, code, grams)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.fail(ProviderEdamam, err)
		}
		return nil
	}
	return out
}

// ScanProduct returns ErrNotFound for unknown barcodes and nil, nil when the
// provider is unavailable.
func (s *Service) ScanProduct(ctx context.Context, barcode string) (*Nutrients, error) {
	out, err := cached(ctx, s, "barcode:"+barcode, func() (*Nutrients, error) {
		return s.off.Product(ctx, barcode)
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.fail(ProviderOpenFoodFacts, err)
		return nil, nil
	}
	return out, nil
}

// ======================================================
// EXERCISES
// ======================================================

var emptyList = json.RawMessage("[]")

func (s *Service) Muscles(ctx context.Context) json.RawMessage {
	out, err := cached(ctx, s, "muscles", func() (json.RawMessage, error) {
		return s.exercises.Muscles(ctx)
	})
	if err != nil {
		s.fail(ProviderExercises, err)
		return emptyList
	}
	return out
}

// MuscleExercises returns ErrNotFound for an unknown muscle.
func (s *Service) MuscleExercises(ctx context.Context, muscle string) (json.RawMessage, error) {
	out, err := cached(ctx, s, "exercises:"+strings.ToLower(muscle), func() (json.RawMessage, error) {
		return s.exercises.Exercises(ctx, muscle)
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.fail(ProviderExercises, err)
		return emptyList, nil
	}
	return out, nil
}

// ======================================================
// HELPERS
// ======================================================

func (s *Service) fail(provider string, err error) {
	s.log.Warn("catalog provider failed", zap.String("provider", provider), zap.Error(err))
	if s.errs != nil {
		s.errs.RecordProviderError(provider)
	}
}

// cached serves key from the cache or calls fetch and stores its result.
// Cache errors are logged and never fail the lookup.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	if b, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if b, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
			s.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}
