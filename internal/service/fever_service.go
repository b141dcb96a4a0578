package service

import (
	"candypang_backend/internal/config"
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const feverKey = "candypang:fever:multiplier"

// FeverService holds the time-bounded global XP multiplier in redis. The
// key's TTL is the fever window, so the period survives process restarts
// and expires on its own.
type FeverService struct {
	Redis  *redis.Client
	Config config.FeverConfig
}

func NewFeverService(rdb *redis.Client, cfg config.FeverConfig) *FeverService {
	return &FeverService{Redis: rdb, Config: cfg}
}

type FeverStatus struct {
	Active     bool          `json:"active"`
	Multiplier int           `json:"multiplier"`
	Remaining  time.Duration `json:"remainingSeconds"`
}

func (s *FeverService) Start(multiplier int, duration time.Duration) error {
	if multiplier < 1 {
		multiplier = s.Config.DefaultMultiplier
	}
	if duration <= 0 {
		duration = s.Config.DefaultDuration
	}

	ctx := context.Background()
	return s.Redis.Set(ctx, feverKey, multiplier, duration).Err()
}

func (s *FeverService) Stop() error {
	ctx := context.Background()
	return s.Redis.Del(ctx, feverKey).Err()
}

func (s *FeverService) Status() (*FeverStatus, error) {
	ctx := context.Background()

	val, err := s.Redis.Get(ctx, feverKey).Result()
	if err == redis.Nil {
		return &FeverStatus{Active: false, Multiplier: 1}, nil
	}
	if err != nil {
		return nil, err
	}

	multiplier, err := strconv.Atoi(val)
	if err != nil {
		multiplier = s.Config.DefaultMultiplier
	}

	ttl, err := s.Redis.TTL(ctx, feverKey).Result()
	if err != nil {
		return nil, err
	}

	return &FeverStatus{Active: true, Multiplier: multiplier, Remaining: ttl / time.Second}, nil
}

// Multiplier returns the current XP multiplier, 1 outside fever time. Redis
// errors degrade to 1 rather than blocking a grant.
func (s *FeverService) Multiplier() int {
	status, err := s.Status()
	if err != nil || !status.Active {
		return 1
	}
	return status.Multiplier
}
