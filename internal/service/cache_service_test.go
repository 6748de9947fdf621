package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("redis down")
}

func (failingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("redis down")
}

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(&memoryCache{entries: map[string][]byte{}}, nil, 0, nil, false)

	assert.False(t, svc.Enabled())
	assert.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	var out string
	assert.False(t, svc.Get(context.Background(), "k", &out))
}

func TestCacheServiceRoundTrip(t *testing.T) {
	entries := map[string][]byte{}
	svc := NewCacheService(&memoryCache{entries: entries}, NewMetricsService(), time.Minute, zap.NewNop(), true)

	var out string
	assert.False(t, svc.Get(context.Background(), "k", &out))
	assert.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	assert.True(t, svc.Get(context.Background(), "k", &out))
	assert.Equal(t, "v", out)
}

func TestCacheServiceBackendFailureIsMiss(t *testing.T) {
	svc := NewCacheService(failingCache{}, nil, time.Minute, zap.NewNop(), true)

	var out string
	assert.False(t, svc.Get(context.Background(), "k", &out))
	assert.Error(t, svc.Set(context.Background(), "k", "v", 0))
}
