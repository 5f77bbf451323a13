package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/model"
	"github.com/username/networth/src/store"
)

const (
	ckNetWorth    = "summary_net_worth_%s"
	ckAssets      = "summary_assets_%s"
	ckLiabilities = "summary_liabilities_%s"

	DefaultCacheExpiration = 5 * time.Minute
	CacheCleanupInterval   = 10 * time.Minute
)

// SummaryService serves the read-side views of a user's portfolio. A nil
// result with a nil error means the user has no portfolio yet.
type SummaryService interface {
	NetWorth(email string) (*model.Amount, error)
	Assets(email string) (*model.AssetBreakdown, error)
	Liabilities(email string) (*model.LiabilityBreakdown, error)
	UpdatePortfolio(email string, p model.Portfolio) error
	Clear()
	InvalidateUserCache(email string)
}

type summaryServiceImpl struct {
	store       *store.Store
	reportCache *cache.Cache
	ttl         time.Duration

	// Held shared while a miss is computed and cached, exclusively while the
	// registry changes, so a stale summary is never cached after an update.
	mu sync.RWMutex
}

func NewSummaryService(s *store.Store, reportCache *cache.Cache, ttl time.Duration) SummaryService {
	if ttl <= 0 {
		ttl = DefaultCacheExpiration
	}
	return &summaryServiceImpl{
		store:       s,
		reportCache: reportCache,
		ttl:         ttl,
	}
}

func (s *summaryServiceImpl) NetWorth(email string) (*model.Amount, error) {
	v, err := s.cached(fmt.Sprintf(ckNetWorth, email), email, func(p *model.Portfolio) any {
		worth := p.NetWorth()
		return &worth
	})
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*model.Amount), nil
}

func (s *summaryServiceImpl) Assets(email string) (*model.AssetBreakdown, error) {
	v, err := s.cached(fmt.Sprintf(ckAssets, email), email, func(p *model.Portfolio) any {
		assets := p.Assets()
		return &assets
	})
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*model.AssetBreakdown), nil
}

func (s *summaryServiceImpl) Liabilities(email string) (*model.LiabilityBreakdown, error) {
	v, err := s.cached(fmt.Sprintf(ckLiabilities, email), email, func(p *model.Portfolio) any {
		liabilities := p.Liabilities()
		return &liabilities
	})
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*model.LiabilityBreakdown), nil
}

// cached returns the value stored under key, computing it from the user's
// portfolio on a miss. Users without a portfolio are not cached.
func (s *summaryServiceImpl) cached(key, email string, compute func(*model.Portfolio) any) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if data, found := s.reportCache.Get(key); found {
		logger.L.Debug("Cache hit for summary", "key", key)
		return data, nil
	}

	user, err := s.store.GetUser(email)
	if err != nil {
		return nil, err
	}
	if user.Portfolio == nil {
		return nil, nil
	}

	logger.L.Debug("Cache miss for summary, computing", "key", key)
	v := compute(user.Portfolio)
	s.reportCache.Set(key, v, s.ttl)
	return v, nil
}

func (s *summaryServiceImpl) UpdatePortfolio(email string, p model.Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.UpdatePortfolio(email, p); err != nil {
		return err
	}
	s.invalidateLocked(email)
	return nil
}

func (s *summaryServiceImpl) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Clear()
	s.reportCache.Flush()
	logger.L.Info("Flushed summary cache")
}

// InvalidateUserCache drops every cached summary of one user.
func (s *summaryServiceImpl) InvalidateUserCache(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked(email)
}

func (s *summaryServiceImpl) invalidateLocked(email string) {
	for _, pattern := range []string{ckNetWorth, ckAssets, ckLiabilities} {
		s.reportCache.Delete(fmt.Sprintf(pattern, email))
	}
	logger.L.Debug("Invalidated summary caches for user", "email", email)
}
