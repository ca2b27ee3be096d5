package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"ogef/internal/repositories"
)

// BaseService — общий кэш для сервисов. cache может быть nil: тогда кэш
// просто пропускается.
type BaseService struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewBaseService(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *BaseService {
	return &BaseService{cache: cache, ttl: ttl, logger: logger}
}

// CacheGet получает данные из кэша
func (s *BaseService) CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrCacheMiss) {
			s.logger.Warn("Кэш недоступен", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		s.logger.Warn("Повреждённое значение в кэше", zap.String("key", key), zap.Error(err))
		return false
	}
	s.logger.Debug("Данные получены из кэша", zap.String("key", key))
	return true
}

// CacheSet сохраняет данные в кэш
func (s *BaseService) CacheSet(ctx context.Context, key string, data interface{}) {
	if s == nil || s.cache == nil {
		return
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, serialized, s.ttl); err != nil {
		s.logger.Warn("Не удалось записать в кэш", zap.String("key", key), zap.Error(err))
	}
}

func (s *BaseService) CacheDel(ctx context.Context, keys ...string) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Warn("Не удалось очистить кэш", zap.Strings("keys", keys), zap.Error(err))
	}
}

// cached возвращает значение из кэша или загружает его через load и кладёт в кэш.
// При ошибке load возвращается нулевое значение: частичный результат не отдаётся.
func cached[T any](ctx context.Context, base *BaseService, key string, load func(context.Context) (T, error)) (T, error) {
	var value T
	if base.CacheGet(ctx, key, &value) {
		return value, nil
	}
	loaded, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	value = loaded
	base.CacheSet(ctx, key, value)
	return value, nil
}
