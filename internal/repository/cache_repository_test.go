package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest map[string]string
	err := repo.Get(ctx, "k", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))

	require.NoError(t, repo.Set(ctx, "k", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}
