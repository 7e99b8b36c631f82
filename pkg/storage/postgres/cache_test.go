package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/storage"
)

func newTestCache(t *testing.T) (*Cache, *storage.Memory, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	mem := storage.NewMemory()
	cfg := storage.DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.L1CacheSize = 16

	c, err := NewCache(mem, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mem, mr
}

func testScholarship(title string) *api.Scholarship {
	return &api.Scholarship{
		Title:       title,
		Overview:    "overview",
		Description: "description",
		Country:     "Germany",
	}
}

func TestCacheReadThrough(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	var hits, misses []string
	c.OnHit = func(layer string) { hits = append(hits, layer) }
	c.OnMiss = func(layer string) { misses = append(misses, layer) }

	created, err := c.CreateScholarship(ctx, testScholarship("DAAD EPOS"))
	require.NoError(t, err)

	got, err := c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{"l1", "redis"}, misses, "first read goes to the store")
	assert.Empty(t, hits)

	got, err = c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{"l1"}, hits, "second read is served by the in-process layer")
}

func TestCacheRedisLayerSurvivesL1Purge(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	created, err := c.CreateScholarship(ctx, testScholarship("Fulbright"))
	require.NoError(t, err)
	_, err = c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)

	c.l1.Purge()
	var hits []string
	c.OnHit = func(layer string) { hits = append(hits, layer) }

	_, err = c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, []string{"redis"}, hits)
}

func TestCacheWriteInvalidatesList(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.CreateScholarship(ctx, testScholarship("First"))
	require.NoError(t, err)

	all, err := c.ListScholarships(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = c.CreateScholarship(ctx, testScholarship("Second"))
	require.NoError(t, err)

	all, err = c.ListScholarships(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "create must purge the cached list")
}

func TestCacheUpdateDropsStaleSlugEntry(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	created, err := c.CreateScholarship(ctx, testScholarship("Original"))
	require.NoError(t, err)
	_, err = c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)

	created.Title = "Renamed"
	created.Slug = ""
	_, err = c.UpdateScholarship(ctx, created)
	require.NoError(t, err)

	got, err := c.GetScholarshipBySlug(ctx, "original")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title, "update must evict the cached entity")
}

func TestCacheNotFoundNeverCached(t *testing.T) {
	c, _, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.GetScholarshipBySlug(ctx, "soon")
	require.ErrorIs(t, err, api.ErrNotFound)

	_, err = c.CreateScholarship(ctx, &api.Scholarship{
		Title: "Soon", Slug: "soon", Overview: "o", Description: "d", Country: "UK",
	})
	require.NoError(t, err)

	got, err := c.GetScholarshipBySlug(ctx, "soon")
	require.NoError(t, err)
	assert.Equal(t, "Soon", got.Title, "a prior miss must not shadow the new entity")
}

func TestCacheRedisDownIsAMissNotAFailure(t *testing.T) {
	c, _, mr := newTestCache(t)
	ctx := context.Background()

	created, err := c.CreateScholarship(ctx, testScholarship("Resilient"))
	require.NoError(t, err)

	mr.Close()
	c.l1.Purge()

	got, err := c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestCacheCorruptRedisEntryDiscarded(t *testing.T) {
	c, _, mr := newTestCache(t)
	ctx := context.Background()

	created, err := c.CreateScholarship(ctx, testScholarship("Garbled"))
	require.NoError(t, err)
	require.NoError(t, mr.Set("entity:scholarship:"+created.Slug, "not json"))

	got, err := c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Garbled", got.Title)
}

func TestCacheRedisEntriesExpire(t *testing.T) {
	c, _, mr := newTestCache(t)
	ctx := context.Background()

	created, err := c.CreateScholarship(ctx, testScholarship("Expiring"))
	require.NoError(t, err)
	_, err = c.GetScholarshipBySlug(ctx, created.Slug)
	require.NoError(t, err)

	ttl := mr.TTL("entity:scholarship:" + created.Slug)
	assert.Equal(t, 15*time.Minute, ttl)
}

func TestCacheIdentityOpsPassThrough(t *testing.T) {
	c, mem, _ := newTestCache(t)
	ctx := context.Background()

	u, err := c.CreateActiveUser(ctx, &api.ActiveUser{
		FullName: "Jane", Email: "jane@example.com", PasswordHash: "x",
	})
	require.NoError(t, err)

	got, err := mem.GetActiveUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestNewCacheRejectsBadURL(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.RedisURL = "not a url"
	_, err := NewCache(storage.NewMemory(), cfg, nil)
	assert.Error(t, err)
}
