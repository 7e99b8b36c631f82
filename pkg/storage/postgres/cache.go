package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/observability"
	"github.com/studyatlas/studyatlas/pkg/storage"
)

// Cache is a read-through caching layer over the durable store: an
// in-process LRU in front of Redis in front of Postgres. Cache failures
// are treated as misses, never as operation failures, so a down Redis
// costs latency, not availability. Identity operations pass through
// uncached.
type Cache struct {
	api.Store // durable store; uncached methods pass through

	redis  *redis.Client
	l1     *lru.Cache[string, []byte]
	ttl    map[string]time.Duration
	logger *observability.Logger

	// OnHit and OnMiss feed the cache metrics when set. The layer label
	// is "l1" or "redis".
	OnHit  func(layer string)
	OnMiss func(layer string)
}

// NewCache wraps store with the caching layer.
func NewCache(store api.Store, cfg storage.Config, logger *observability.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	opts.DB = cfg.RedisDB
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	size := cfg.L1CacheSize
	if size <= 0 {
		size = 1024
	}
	l1, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &Cache{Store: store, redis: client, l1: l1, ttl: cfg.CacheTTL, logger: logger}, nil
}

// Close closes the Redis connection. The wrapped store is closed by its
// owner.
func (c *Cache) Close() error {
	return c.redis.Close()
}

// Reset clears the wrapped store's content along with every cache
// layer, so a reseed is never shadowed by stale entries.
func (c *Cache) Reset(ctx context.Context) error {
	r, ok := c.Store.(interface {
		Reset(ctx context.Context) error
	})
	if !ok {
		return nil
	}
	if err := r.Reset(ctx); err != nil {
		return err
	}
	c.l1.Purge()
	if err := c.redis.FlushDB(ctx).Err(); err != nil {
		c.logger.WithError(err).Debug("redis flush failed")
	}
	return nil
}

func (c *Cache) ttlFor(class string) time.Duration {
	if d, ok := c.ttl[class]; ok {
		return d
	}
	return 5 * time.Minute
}

func (c *Cache) hit(layer string) {
	if c.OnHit != nil {
		c.OnHit(layer)
	}
}

func (c *Cache) miss(layer string) {
	if c.OnMiss != nil {
		c.OnMiss(layer)
	}
}

// cached runs the read-through: L1, then Redis, then the durable store.
// Not-found results are not cached; a lookup miss is cheap to repeat
// and caching it would delay slug availability after a create.
func cached[T any](c *Cache, ctx context.Context, key, class string, load func(context.Context) (T, error)) (T, error) {
	var zero T
	if data, ok := c.l1.Get(key); ok {
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			c.hit("l1")
			return out, nil
		}
		c.l1.Remove(key)
	}
	c.miss("l1")

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var out T
		if err := json.Unmarshal(data, &out); err == nil {
			c.hit("redis")
			c.l1.Add(key, data)
			return out, nil
		}
		c.redis.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WithError(err).Debug("redis read failed, treating as miss")
	}
	c.miss("redis")

	out, err := load(ctx)
	if err != nil {
		return zero, err
	}
	if data, err := json.Marshal(out); err == nil {
		c.l1.Add(key, data)
		if err := c.redis.Set(ctx, key, data, c.ttlFor(class)).Err(); err != nil {
			c.logger.WithError(err).Debug("redis write failed")
		}
	}
	return out, nil
}

// invalidate drops the per-kind list key and, when known, the entity's
// slug key. The L1 is purged wholesale: it is small and repopulates in
// one round trip.
func (c *Cache) invalidate(ctx context.Context, kind string, slugs ...string) {
	c.l1.Purge()
	keys := []string{"list:" + kind}
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, "entity:"+kind+":"+slug)
		}
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.WithError(err).Debug("redis invalidation failed")
	}
}

// --- Cached content reads ---

func (c *Cache) ListScholarships(ctx context.Context) ([]*api.Scholarship, error) {
	return cached(c, ctx, "list:scholarship", "list", c.Store.ListScholarships)
}

func (c *Cache) GetScholarshipBySlug(ctx context.Context, slug string) (*api.Scholarship, error) {
	return cached(c, ctx, "entity:scholarship:"+slug, "entity", func(ctx context.Context) (*api.Scholarship, error) {
		return c.Store.GetScholarshipBySlug(ctx, slug)
	})
}

func (c *Cache) ListArticles(ctx context.Context) ([]*api.Article, error) {
	return cached(c, ctx, "list:article", "list", c.Store.ListArticles)
}

func (c *Cache) GetArticleBySlug(ctx context.Context, slug string) (*api.Article, error) {
	return cached(c, ctx, "entity:article:"+slug, "entity", func(ctx context.Context) (*api.Article, error) {
		return c.Store.GetArticleBySlug(ctx, slug)
	})
}

func (c *Cache) ListCountries(ctx context.Context) ([]*api.Country, error) {
	return cached(c, ctx, "list:country", "list", c.Store.ListCountries)
}

func (c *Cache) GetCountryBySlug(ctx context.Context, slug string) (*api.Country, error) {
	return cached(c, ctx, "entity:country:"+slug, "entity", func(ctx context.Context) (*api.Country, error) {
		return c.Store.GetCountryBySlug(ctx, slug)
	})
}

func (c *Cache) ListUniversities(ctx context.Context) ([]*api.University, error) {
	return cached(c, ctx, "list:university", "list", c.Store.ListUniversities)
}

func (c *Cache) GetUniversityBySlug(ctx context.Context, slug string) (*api.University, error) {
	return cached(c, ctx, "entity:university:"+slug, "entity", func(ctx context.Context) (*api.University, error) {
		return c.Store.GetUniversityBySlug(ctx, slug)
	})
}

func (c *Cache) ListNews(ctx context.Context) ([]*api.News, error) {
	return cached(c, ctx, "list:news", "list", c.Store.ListNews)
}

func (c *Cache) GetNewsBySlug(ctx context.Context, slug string) (*api.News, error) {
	return cached(c, ctx, "entity:news:"+slug, "entity", func(ctx context.Context) (*api.News, error) {
		return c.Store.GetNewsBySlug(ctx, slug)
	})
}

func (c *Cache) ListMenuItems(ctx context.Context) ([]*api.MenuItem, error) {
	return cached(c, ctx, "list:menu", "menu", c.Store.ListMenuItems)
}

// --- Invalidating content writes ---

func (c *Cache) CreateScholarship(ctx context.Context, in *api.Scholarship) (*api.Scholarship, error) {
	out, err := c.Store.CreateScholarship(ctx, in)
	if err == nil {
		c.invalidate(ctx, "scholarship", out.Slug)
	}
	return out, err
}

func (c *Cache) UpdateScholarship(ctx context.Context, in *api.Scholarship) (*api.Scholarship, error) {
	out, err := c.Store.UpdateScholarship(ctx, in)
	if err == nil {
		c.invalidate(ctx, "scholarship", out.Slug, in.Slug)
	}
	return out, err
}

func (c *Cache) DeleteScholarship(ctx context.Context, id int64) error {
	err := c.Store.DeleteScholarship(ctx, id)
	if err == nil {
		c.invalidate(ctx, "scholarship")
	}
	return err
}

func (c *Cache) CreateArticle(ctx context.Context, in *api.Article) (*api.Article, error) {
	out, err := c.Store.CreateArticle(ctx, in)
	if err == nil {
		c.invalidate(ctx, "article", out.Slug)
	}
	return out, err
}

func (c *Cache) UpdateArticle(ctx context.Context, in *api.Article) (*api.Article, error) {
	out, err := c.Store.UpdateArticle(ctx, in)
	if err == nil {
		c.invalidate(ctx, "article", out.Slug, in.Slug)
	}
	return out, err
}

func (c *Cache) DeleteArticle(ctx context.Context, id int64) error {
	err := c.Store.DeleteArticle(ctx, id)
	if err == nil {
		c.invalidate(ctx, "article")
	}
	return err
}

func (c *Cache) LikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	count, err := c.Store.LikeArticle(ctx, articleID, userID)
	if err == nil {
		c.invalidate(ctx, "article")
	}
	return count, err
}

func (c *Cache) UnlikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	count, err := c.Store.UnlikeArticle(ctx, articleID, userID)
	if err == nil {
		c.invalidate(ctx, "article")
	}
	return count, err
}

func (c *Cache) CreateCountry(ctx context.Context, in *api.Country) (*api.Country, error) {
	out, err := c.Store.CreateCountry(ctx, in)
	if err == nil {
		c.invalidate(ctx, "country", out.Slug)
	}
	return out, err
}

func (c *Cache) UpdateCountry(ctx context.Context, in *api.Country) (*api.Country, error) {
	out, err := c.Store.UpdateCountry(ctx, in)
	if err == nil {
		c.invalidate(ctx, "country", out.Slug, in.Slug)
	}
	return out, err
}

func (c *Cache) DeleteCountry(ctx context.Context, id int64) error {
	err := c.Store.DeleteCountry(ctx, id)
	if err == nil {
		c.invalidate(ctx, "country")
	}
	return err
}

func (c *Cache) CreateUniversity(ctx context.Context, in *api.University) (*api.University, error) {
	out, err := c.Store.CreateUniversity(ctx, in)
	if err == nil {
		c.invalidate(ctx, "university", out.Slug)
	}
	return out, err
}

func (c *Cache) UpdateUniversity(ctx context.Context, in *api.University) (*api.University, error) {
	out, err := c.Store.UpdateUniversity(ctx, in)
	if err == nil {
		c.invalidate(ctx, "university", out.Slug, in.Slug)
	}
	return out, err
}

func (c *Cache) DeleteUniversity(ctx context.Context, id int64) error {
	err := c.Store.DeleteUniversity(ctx, id)
	if err == nil {
		c.invalidate(ctx, "university")
	}
	return err
}

func (c *Cache) CreateNews(ctx context.Context, in *api.News) (*api.News, error) {
	out, err := c.Store.CreateNews(ctx, in)
	if err == nil {
		c.invalidate(ctx, "news", out.Slug)
	}
	return out, err
}

func (c *Cache) UpdateNews(ctx context.Context, in *api.News) (*api.News, error) {
	out, err := c.Store.UpdateNews(ctx, in)
	if err == nil {
		c.invalidate(ctx, "news", out.Slug, in.Slug)
	}
	return out, err
}

func (c *Cache) DeleteNews(ctx context.Context, id int64) error {
	err := c.Store.DeleteNews(ctx, id)
	if err == nil {
		c.invalidate(ctx, "news")
	}
	return err
}

func (c *Cache) CreateMenuItem(ctx context.Context, in *api.MenuItem) (*api.MenuItem, error) {
	out, err := c.Store.CreateMenuItem(ctx, in)
	if err == nil {
		c.invalidate(ctx, "menu")
	}
	return out, err
}

var _ api.Store = (*Cache)(nil)
