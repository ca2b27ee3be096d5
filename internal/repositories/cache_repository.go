package repositories

import (
	"context"
	"errors"
	"time"
)

// Ключи кэша справочников и сводки.
const (
	CacheKeyPrefix         = "ogef:"
	CacheKeyRegions        = CacheKeyPrefix + "wilayas"
	CacheKeyEquipmentTypes = CacheKeyPrefix + "type_equipement"
	CacheKeyApprovalTypes  = CacheKeyPrefix + "agrements"
	CacheKeyOfficeSummary  = CacheKeyPrefix + "gefs"
)

var ErrCacheMiss = errors.New("ключ отсутствует в кэше")

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Get возвращает ErrCacheMiss, если ключа нет.
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
	// DelByPrefix удаляет все ключи с префиксом, возвращает их число.
	DelByPrefix(ctx context.Context, prefix string) (int64, error)
}
