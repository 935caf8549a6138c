package ccss

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/ccss"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/company"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const RatesKeyPrefix = "ccss:rates:"

// lookupTimeout bounds a shared lookup, which no longer ends with the caller that started it.
const lookupTimeout = 5 * time.Second

func GetRatesKey(companyKey string) string {
	return RatesKeyPrefix + companyKey
}

type ResolverImpl struct {
	rateRepo    ccss.RateRepository
	companyRepo company.Repository
	rdb         *redis.Client
	ttl         time.Duration
	sf          *singleflight.Group
	onChange    []func(ctx context.Context, companyKey string)
}

type Option func(*ResolverImpl)

// WithOnChange registers fn to run after a company's rates were replaced.
func WithOnChange(fn func(ctx context.Context, companyKey string)) Option {
	return func(s *ResolverImpl) {
		s.onChange = append(s.onChange, fn)
	}
}

// NewResolver builds the rate resolver. rdb may be nil, which disables caching.
func NewResolver(rateRepo ccss.RateRepository, companyRepo company.Repository, rdb *redis.Client, ttl time.Duration, opts ...Option) ccss.Resolver {
	s := &ResolverImpl{
		rateRepo:    rateRepo,
		companyRepo: companyRepo,
		rdb:         rdb,
		ttl:         ttl,
		sf:          &singleflight.Group{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cachedResolution is the JSON form kept in Redis.
type cachedResolution struct {
	Rates       ccss.Rates `json:"rates"`
	UsedDefault bool       `json:"used_default"`
	CompanyName string     `json:"company_name"`
}

func encodeResolution(r ccss.Resolution) ([]byte, error) {
	return json.Marshal(cachedResolution{Rates: r.Rates, UsedDefault: r.UsedDefault, CompanyName: r.CompanyName})
}

// Resolve implements ccss.Resolver.
func (s *ResolverImpl) Resolve(ctx context.Context, companyKey string) ccss.Resolution {
	cacheKey := GetRatesKey(companyKey)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var c cachedResolution
			if err := json.Unmarshal([]byte(cached), &c); err == nil {
				return ccss.Resolution{Rates: c.Rates, UsedDefault: c.UsedDefault, CompanyName: c.CompanyName}
			}
		} else if !errors.Is(err, redis.Nil) {
			slog.Debug("CCSS rate cache read failed", "key", cacheKey, "error", err)
		}
	}

	v, _, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		// Callers merged into this flight get its result, so it must outlive the first one.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()

		res, cacheable := s.lookup(lctx, companyKey)

		if s.rdb != nil && cacheable {
			if payload, err := encodeResolution(res); err == nil {
				if err := s.rdb.Set(lctx, cacheKey, string(payload), s.ttl).Err(); err != nil {
					slog.Debug("CCSS rate cache write failed", "key", cacheKey, "error", err)
				}
			}
		}
		return res, nil
	})

	return v.(ccss.Resolution)
}

// lookup joins on the company display name. cacheable is false when the result is a
// fallback caused by a store failure rather than a missing row.
func (s *ResolverImpl) lookup(ctx context.Context, companyKey string) (ccss.Resolution, bool) {
	name := companyKey
	if s.companyRepo != nil {
		c, err := s.companyRepo.GetByKey(ctx, companyKey)
		switch {
		case err == nil:
			name = c.DisplayName
		case errors.Is(err, company.ErrCompanyNotFound):
		default:
			slog.Warn("CCSS rates fell back to defaults",
				"company_key", companyKey, "reason", "company lookup failed", "error", err)
			return defaultResolution(name), false
		}
	}

	rates, err := s.rateRepo.GetRates(ctx, name)
	if err != nil {
		if errors.Is(err, ccss.ErrRatesNotFound) {
			slog.Warn("CCSS rates fell back to defaults",
				"company_key", companyKey, "company_name", name, "reason", "no rate row")
			return defaultResolution(name), true
		}
		slog.Warn("CCSS rates fell back to defaults",
			"company_key", companyKey, "company_name", name, "reason", "rate lookup failed", "error", err)
		return defaultResolution(name), false
	}

	return ccss.Resolution{Rates: rates, CompanyName: name}, true
}

func defaultResolution(name string) ccss.Resolution {
	return ccss.Resolution{Rates: ccss.DefaultRates(), UsedDefault: true, CompanyName: name}
}

// SetRates implements ccss.Resolver.
func (s *ResolverImpl) SetRates(ctx context.Context, companyKey string, req ccss.SetRatesRequest) (ccss.RatesResponse, error) {
	if err := req.Validate(); err != nil {
		return ccss.RatesResponse{}, err
	}

	c, err := s.companyRepo.GetByKey(ctx, companyKey)
	if err != nil {
		return ccss.RatesResponse{}, err
	}

	rates := req.Rates()
	if err := s.rateRepo.Upsert(ctx, c.DisplayName, rates); err != nil {
		return ccss.RatesResponse{}, fmt.Errorf("failed to store ccss rates: %w", err)
	}
	s.Invalidate(ctx, companyKey)
	for _, fn := range s.onChange {
		fn(ctx, companyKey)
	}

	return ccss.NewRatesResponse(companyKey, ccss.Resolution{Rates: rates, CompanyName: c.DisplayName}), nil
}

// Invalidate implements ccss.Resolver.
func (s *ResolverImpl) Invalidate(ctx context.Context, companyKey string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetRatesKey(companyKey)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		slog.Error("failed to invalidate ccss rate cache", "key", cacheKey, "error", err)
	}
}
