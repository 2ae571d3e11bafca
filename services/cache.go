package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rushali2005/studentpp/config"
	"github.com/rushali2005/studentpp/models"
)

const historyChannelPrefix = "studentpp:history:"

// ErrCacheUnavailable is returned by operations that need redis when the
// service runs without it.
var ErrCacheUnavailable = errors.New("redis unavailable")

const (
	EventPredictionCreated = "prediction_created"
	EventPredictionDeleted = "prediction_deleted"
)

// HistoryEvent announces a change to an owner's history.
type HistoryEvent struct {
	Type   string                   `json:"type"`
	ID     string                   `json:"id"`
	Record *models.PredictionRecord `json:"record,omitempty"`
	At     time.Time                `json:"at"`
}

// CacheService wraps redis. A CacheService without a client is valid; reads
// miss, writes are dropped and pub/sub is disabled.
type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheService(cfg config.RedisConfig, logger *zap.Logger) (*CacheService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("cache")
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Retry up to 10 times (covers sidecar startup delay)
	var lastErr error
	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client, logger: logger}, nil
		}
		logger.Warn("redis ping failed", zap.Int("attempt", i+1), zap.Int("max_attempts", 10), zap.Error(lastErr))
		time.Sleep(2 * time.Second)
	}

	client.Close()
	return &CacheService{logger: logger}, fmt.Errorf("redis ping failed after 10 attempts: %w", lastErr)
}

// NewCacheServiceWithClient wraps an existing client. A nil client yields a
// disabled cache.
func NewCacheServiceWithClient(client *redis.Client, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{client: client, logger: logger.Named("cache")}
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get decodes key into dest and reports whether it was present.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Available() {
		return false, nil
	}
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if !s.Available() {
		return nil
	}
	return s.client.Del(ctx, key).Err()
}

func (s *CacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	if !s.Available() {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, channel, data).Err()
}

func (s *CacheService) Subscribe(ctx context.Context, channel string) (*redis.PubSub, error) {
	if !s.Available() {
		return nil, ErrCacheUnavailable
	}
	return s.client.Subscribe(ctx, channel), nil
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}

func HistoryChannel(ownerID string) string { return historyChannelPrefix + ownerID }

// HistoryChanged announces ev to live history subscribers. Publish failures
// are logged and dropped.
func (s *CacheService) HistoryChanged(ctx context.Context, ownerID string, ev HistoryEvent) {
	if err := s.Publish(ctx, HistoryChannel(ownerID), ev); err != nil {
		s.logger.Warn("history event publish failed", zap.String("owner_id", ownerID), zap.String("type", ev.Type), zap.Error(err))
	}
}
