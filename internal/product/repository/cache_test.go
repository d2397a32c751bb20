package repository

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/cache"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/model"
	"github.com/fekuna/omnipos-inventory-dashboard/internal/product/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

// requireRedis skips the test when no Redis is listening locally.
func requireRedis(t *testing.T) *cache.RedisClient {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis test in short mode")
	}
	conn, err := net.DialTimeout("tcp", testRedisAddr, time.Second)
	if err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	conn.Close()

	client, err := cache.NewRedisClient(&cache.Config{Addr: testRedisAddr, DB: 15})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() {
		_, _ = client.DeletePattern(context.Background(), listKeyPrefix+"*")
		client.Close()
	})
	return client
}

// countingRepo counts List calls that reach the wrapped repository.
type countingRepo struct {
	*MemoryRepository
	lists int
}

func (r *countingRepo) List(ctx context.Context, params *dto.ListParams) (*model.Page, error) {
	r.lists++
	return r.MemoryRepository.List(ctx, params)
}

func TestCachedRepository_ReadThroughAndInvalidate(t *testing.T) {
	client := requireRedis(t)
	ctx := context.Background()
	_, _ = client.DeletePattern(ctx, listKeyPrefix+"*")

	inner := &countingRepo{MemoryRepository: NewMemoryRepository(
		model.Product{ID: 1, Name: "Apple", Category: model.CategoryFood, Price: 2, Stock: 3, Expiration: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
	)}
	repo := NewCachedRepository(inner, client, time.Minute, logger.NewNop())
	params := &dto.ListParams{Page: 0, Size: 10}

	first, err := repo.List(ctx, params)
	require.NoError(t, err)
	second, err := repo.List(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.lists)
	require.Len(t, second.Items, 1)
	assert.Equal(t, first.Items[0].Name, second.Items[0].Name)
	assert.True(t, first.Items[0].Expiration.Equal(second.Items[0].Expiration))

	require.NoError(t, repo.MarkOutOfStock(ctx, 1))
	third, err := repo.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.lists)
	assert.Equal(t, 0, third.Items[0].Stock)
}

func TestListKeyDependsOnParams(t *testing.T) {
	a, err := listKey(&dto.ListParams{Page: 0, Size: 10})
	require.NoError(t, err)
	b, err := listKey(&dto.ListParams{Page: 1, Size: 10})
	require.NoError(t, err)
	c, err := listKey(&dto.ListParams{Page: 0, Size: 10})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
	assert.Contains(t, a, listKeyPrefix)
}
