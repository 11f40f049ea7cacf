// Package ratelimit throttles calls to the upstream search API per stage,
// so a burst of inbound lookups cannot starve outbound searches.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

const (
	StageOutbound = "outbound"
	StageInbound  = "inbound"
)

type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 5,
		BurstSize:         10,
	}
}

type StageLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults Config
}

func NewStageLimiter(config Config) *StageLimiter {
	return &StageLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewStageLimiterWithDefaults() *StageLimiter {
	return NewStageLimiter(DefaultConfig())
}

func (s *StageLimiter) GetLimiter(stage string) *rate.Limiter {
	s.mu.RLock()
	limiter, exists := s.limiters[stage]
	s.mu.RUnlock()

	if exists {
		return limiter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, exists = s.limiters[stage]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(s.defaults.RequestsPerSecond), s.defaults.BurstSize)
	s.limiters[stage] = limiter
	return limiter
}

func (s *StageLimiter) SetStageLimit(stage string, rps float64, burst int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.limiters[stage] = rate.NewLimiter(rate.Limit(rps), burst)
}

func (s *StageLimiter) Wait(ctx context.Context, stage string) error {
	return s.GetLimiter(stage).Wait(ctx)
}
