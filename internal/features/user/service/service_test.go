package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slapflip-backend/internal/common/cache"
	apperrors "slapflip-backend/internal/common/errors"
	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/user/models"
	"slapflip-backend/internal/features/user/repository/memory"
)

const (
	mixedCase = "0xABCDEF0123456789abcdef0123456789ABCDEF01"
	lowerCase = "0xabcdef0123456789abcdef0123456789abcdef01"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService(t *testing.T) (*userService, *memory.Repository) {
	t.Helper()
	repo := memory.NewRepository()
	svc := NewUserService(repo, cache.Nop{}, time.Minute).(*userService)
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc.now = clock.now
	return svc, repo
}

func TestTouchUserIsIdempotentForCreatedAt(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	first, created, err := svc.TouchUser(ctx, mixedCase)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, lowerCase, first.Address)

	second, created, err := svc.TouchUser(ctx, lowerCase)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.LastSeen.After(first.LastSeen))
	assert.Equal(t, 1, repo.Count())
}

func TestTouchUserRejectsBadAddress(t *testing.T) {
	svc, repo := newTestService(t)

	_, _, err := svc.TouchUser(context.Background(), "  ")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, 0, repo.Count())
}

func TestGetUserIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.TouchUser(ctx, lowerCase)
	require.NoError(t, err)

	upper := svc.GetUser(ctx, mixedCase)
	lower := svc.GetUser(ctx, lowerCase)
	require.NotNil(t, upper)
	assert.Equal(t, upper, lower)
}

func TestGetUserAbsent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.Nil(t, svc.GetUser(ctx, lowerCase))
	assert.Nil(t, svc.GetUser(ctx, ""))
	assert.Nil(t, svc.GetUser(ctx, "not-an-address"))
}

type failingRepo struct {
	memory.Repository
}

func (*failingRepo) GetByAddress(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection reset")
}

func TestGetUserSwallowsStoreErrors(t *testing.T) {
	svc := NewUserService(&failingRepo{}, nil, time.Minute)
	assert.Nil(t, svc.GetUser(context.Background(), lowerCase))
}

func TestLinkTwitter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.LinkTwitter(ctx, mixedCase, twitter.Profile{ID: "42", Username: "alice", Name: "Alice"}))

	u := svc.GetUser(ctx, lowerCase)
	require.NotNil(t, u)
	assert.True(t, u.TwitterConnected)
	assert.Equal(t, "alice", u.TwitterUsername)
	assert.NotNil(t, u.UpdatedAt)
}

func TestConcurrentTouchCreatesOneUser(t *testing.T) {
	svc, repo := newTestService(t)
	svc.now = time.Now

	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := svc.TouchUser(context.Background(), lowerCase)
			assert.NoError(t, err)
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)
	assert.Equal(t, 1, repo.Count())
}

// interleavingRepo runs afterRead once, between a GetByAddress read and the
// caller's use of its result.
type interleavingRepo struct {
	*memory.Repository
	afterRead func()
}

func (r *interleavingRepo) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	u, err := r.Repository.GetByAddress(ctx, address)
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return u, err
}

func TestStaleReadDoesNotOverwriteFreshCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &interleavingRepo{Repository: memory.NewRepository()}
	svc := NewUserService(repo, cache.NewCacheService(client), time.Minute).(*userService)
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc.now = clock.now
	ctx := context.Background()

	_, _, err := svc.TouchUser(ctx, lowerCase)
	require.NoError(t, err)
	mr.FlushAll()

	var fresh *models.User
	repo.afterRead = func() {
		fresh, _, err = svc.TouchUser(ctx, lowerCase)
		require.NoError(t, err)
	}
	stale := svc.GetUser(ctx, lowerCase)
	require.NotNil(t, stale)
	require.NotNil(t, fresh)
	require.True(t, fresh.LastSeen.After(stale.LastSeen))

	cached := svc.GetUser(ctx, lowerCase)
	require.NotNil(t, cached)
	assert.True(t, cached.LastSeen.Equal(fresh.LastSeen), "cache must hold the value written by TouchUser")
}

func TestTouchUserWritesThroughCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewUserService(memory.NewRepository(), cache.NewCacheService(client), time.Minute)
	ctx := context.Background()

	_, _, err := svc.TouchUser(ctx, lowerCase)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.UserKey(lowerCase)))

	require.NoError(t, svc.LinkTwitter(ctx, lowerCase, twitter.Profile{ID: "1", Username: "bob"}))
	u := svc.GetUser(ctx, lowerCase)
	require.NotNil(t, u)
	assert.Equal(t, "bob", u.TwitterUsername)
}
