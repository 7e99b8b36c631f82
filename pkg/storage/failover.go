package storage

import (
	"context"
	"errors"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/observability"
	"github.com/studyatlas/studyatlas/pkg/validation"
)

// Failover is the availability router: every operation is attempted
// against the durable primary and, when the primary is unavailable,
// retried transparently against the ephemeral fallback. The rerouting
// policy lives here and only here; handlers never branch on backend
// availability.
//
// Input validation also happens here, once, before any backend I/O, so
// a validation failure propagates to the caller and never triggers
// fallback.
type Failover struct {
	primary  api.Store
	fallback api.Store
	logger   *observability.Logger

	// OnFallback, when set, is invoked for every rerouted operation.
	// The metrics layer hangs its counter off this.
	OnFallback func(kind, op, reason string)
}

// NewFailover creates a failover store routing between primary and
// fallback.
func NewFailover(primary, fallback api.Store, logger *observability.Logger) *Failover {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &Failover{primary: primary, fallback: fallback, logger: logger}
}

// shouldFallback classifies an error. Data-shaped outcomes (not found,
// invalid input, conflicts) and caller cancellation propagate;
// everything else is treated as backend unavailability.
func shouldFallback(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, api.ErrNotFound),
		errors.Is(err, api.ErrInvalid),
		errors.Is(err, api.ErrConflict),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}

func (f *Failover) noteFallback(kind, op string, err error) {
	f.logger.WithFields(map[string]interface{}{
		"kind":   kind,
		"op":     op,
		"reason": err.Error(),
	}).Warn("durable store unavailable, serving from ephemeral store")
	if f.OnFallback != nil {
		f.OnFallback(kind, op, err.Error())
	}
}

// reroute runs op against the primary and retries against the fallback
// when the primary is unavailable.
func reroute[T any](f *Failover, ctx context.Context, kind, op string, fn func(context.Context, api.Store) (T, error)) (T, error) {
	out, err := fn(ctx, f.primary)
	if !shouldFallback(err) {
		return out, err
	}
	f.noteFallback(kind, op, err)
	return fn(ctx, f.fallback)
}

func rerouteErr(f *Failover, ctx context.Context, kind, op string, fn func(context.Context, api.Store) error) error {
	err := fn(ctx, f.primary)
	if !shouldFallback(err) {
		return err
	}
	f.noteFallback(kind, op, err)
	return fn(ctx, f.fallback)
}

type resetter interface {
	Reset(ctx context.Context) error
}

// Reset clears all content, following the same rerouting policy as the
// data operations so seeding works in degraded mode.
func (f *Failover) Reset(ctx context.Context) error {
	if r, ok := f.primary.(resetter); ok {
		err := r.Reset(ctx)
		if !shouldFallback(err) {
			return err
		}
		f.noteFallback("all", "reset", err)
	}
	if r, ok := f.fallback.(resetter); ok {
		return r.Reset(ctx)
	}
	return nil
}

// --- Scholarships ---

func (f *Failover) ListScholarships(ctx context.Context) ([]*api.Scholarship, error) {
	return reroute(f, ctx, "scholarship", "list", func(ctx context.Context, s api.Store) ([]*api.Scholarship, error) {
		return s.ListScholarships(ctx)
	})
}

func (f *Failover) GetScholarshipBySlug(ctx context.Context, slug string) (*api.Scholarship, error) {
	return reroute(f, ctx, "scholarship", "getBySlug", func(ctx context.Context, s api.Store) (*api.Scholarship, error) {
		return s.GetScholarshipBySlug(ctx, slug)
	})
}

func (f *Failover) GetScholarshipByID(ctx context.Context, id int64) (*api.Scholarship, error) {
	return reroute(f, ctx, "scholarship", "getByID", func(ctx context.Context, s api.Store) (*api.Scholarship, error) {
		return s.GetScholarshipByID(ctx, id)
	})
}

func (f *Failover) CreateScholarship(ctx context.Context, in *api.Scholarship) (*api.Scholarship, error) {
	if err := validation.Scholarship(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "scholarship", "create", func(ctx context.Context, s api.Store) (*api.Scholarship, error) {
		return s.CreateScholarship(ctx, in)
	})
}

func (f *Failover) UpdateScholarship(ctx context.Context, in *api.Scholarship) (*api.Scholarship, error) {
	if err := validation.Scholarship(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "scholarship", "update", func(ctx context.Context, s api.Store) (*api.Scholarship, error) {
		return s.UpdateScholarship(ctx, in)
	})
}

func (f *Failover) DeleteScholarship(ctx context.Context, id int64) error {
	return rerouteErr(f, ctx, "scholarship", "delete", func(ctx context.Context, s api.Store) error {
		return s.DeleteScholarship(ctx, id)
	})
}

func (f *Failover) SearchScholarships(ctx context.Context, query string, limit int) ([]*api.Scholarship, error) {
	return reroute(f, ctx, "scholarship", "search", func(ctx context.Context, s api.Store) ([]*api.Scholarship, error) {
		return s.SearchScholarships(ctx, query, limit)
	})
}

// --- Articles ---

func (f *Failover) ListArticles(ctx context.Context) ([]*api.Article, error) {
	return reroute(f, ctx, "article", "list", func(ctx context.Context, s api.Store) ([]*api.Article, error) {
		return s.ListArticles(ctx)
	})
}

func (f *Failover) GetArticleBySlug(ctx context.Context, slug string) (*api.Article, error) {
	return reroute(f, ctx, "article", "getBySlug", func(ctx context.Context, s api.Store) (*api.Article, error) {
		return s.GetArticleBySlug(ctx, slug)
	})
}

func (f *Failover) GetArticleByID(ctx context.Context, id int64) (*api.Article, error) {
	return reroute(f, ctx, "article", "getByID", func(ctx context.Context, s api.Store) (*api.Article, error) {
		return s.GetArticleByID(ctx, id)
	})
}

func (f *Failover) CreateArticle(ctx context.Context, in *api.Article) (*api.Article, error) {
	if err := validation.Article(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "article", "create", func(ctx context.Context, s api.Store) (*api.Article, error) {
		return s.CreateArticle(ctx, in)
	})
}

func (f *Failover) UpdateArticle(ctx context.Context, in *api.Article) (*api.Article, error) {
	if err := validation.Article(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "article", "update", func(ctx context.Context, s api.Store) (*api.Article, error) {
		return s.UpdateArticle(ctx, in)
	})
}

func (f *Failover) DeleteArticle(ctx context.Context, id int64) error {
	return rerouteErr(f, ctx, "article", "delete", func(ctx context.Context, s api.Store) error {
		return s.DeleteArticle(ctx, id)
	})
}

func (f *Failover) SearchArticles(ctx context.Context, query string, limit int) ([]*api.Article, error) {
	return reroute(f, ctx, "article", "search", func(ctx context.Context, s api.Store) ([]*api.Article, error) {
		return s.SearchArticles(ctx, query, limit)
	})
}

func (f *Failover) LikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	return reroute(f, ctx, "article", "like", func(ctx context.Context, s api.Store) (int, error) {
		return s.LikeArticle(ctx, articleID, userID)
	})
}

func (f *Failover) UnlikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	return reroute(f, ctx, "article", "unlike", func(ctx context.Context, s api.Store) (int, error) {
		return s.UnlikeArticle(ctx, articleID, userID)
	})
}

// --- Countries ---

func (f *Failover) ListCountries(ctx context.Context) ([]*api.Country, error) {
	return reroute(f, ctx, "country", "list", func(ctx context.Context, s api.Store) ([]*api.Country, error) {
		return s.ListCountries(ctx)
	})
}

func (f *Failover) GetCountryBySlug(ctx context.Context, slug string) (*api.Country, error) {
	return reroute(f, ctx, "country", "getBySlug", func(ctx context.Context, s api.Store) (*api.Country, error) {
		return s.GetCountryBySlug(ctx, slug)
	})
}

func (f *Failover) GetCountryByID(ctx context.Context, id int64) (*api.Country, error) {
	return reroute(f, ctx, "country", "getByID", func(ctx context.Context, s api.Store) (*api.Country, error) {
		return s.GetCountryByID(ctx, id)
	})
}

func (f *Failover) CreateCountry(ctx context.Context, in *api.Country) (*api.Country, error) {
	if err := validation.Country(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "country", "create", func(ctx context.Context, s api.Store) (*api.Country, error) {
		return s.CreateCountry(ctx, in)
	})
}

func (f *Failover) UpdateCountry(ctx context.Context, in *api.Country) (*api.Country, error) {
	if err := validation.Country(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "country", "update", func(ctx context.Context, s api.Store) (*api.Country, error) {
		return s.UpdateCountry(ctx, in)
	})
}

func (f *Failover) DeleteCountry(ctx context.Context, id int64) error {
	return rerouteErr(f, ctx, "country", "delete", func(ctx context.Context, s api.Store) error {
		return s.DeleteCountry(ctx, id)
	})
}

func (f *Failover) SearchCountries(ctx context.Context, query string, limit int) ([]*api.Country, error) {
	return reroute(f, ctx, "country", "search", func(ctx context.Context, s api.Store) ([]*api.Country, error) {
		return s.SearchCountries(ctx, query, limit)
	})
}

// --- Universities ---

func (f *Failover) ListUniversities(ctx context.Context) ([]*api.University, error) {
	return reroute(f, ctx, "university", "list", func(ctx context.Context, s api.Store) ([]*api.University, error) {
		return s.ListUniversities(ctx)
	})
}

func (f *Failover) GetUniversityBySlug(ctx context.Context, slug string) (*api.University, error) {
	return reroute(f, ctx, "university", "getBySlug", func(ctx context.Context, s api.Store) (*api.University, error) {
		return s.GetUniversityBySlug(ctx, slug)
	})
}

func (f *Failover) GetUniversityByID(ctx context.Context, id int64) (*api.University, error) {
	return reroute(f, ctx, "university", "getByID", func(ctx context.Context, s api.Store) (*api.University, error) {
		return s.GetUniversityByID(ctx, id)
	})
}

func (f *Failover) CreateUniversity(ctx context.Context, in *api.University) (*api.University, error) {
	if err := validation.University(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "university", "create", func(ctx context.Context, s api.Store) (*api.University, error) {
		return s.CreateUniversity(ctx, in)
	})
}

func (f *Failover) UpdateUniversity(ctx context.Context, in *api.University) (*api.University, error) {
	if err := validation.University(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "university", "update", func(ctx context.Context, s api.Store) (*api.University, error) {
		return s.UpdateUniversity(ctx, in)
	})
}

func (f *Failover) DeleteUniversity(ctx context.Context, id int64) error {
	return rerouteErr(f, ctx, "university", "delete", func(ctx context.Context, s api.Store) error {
		return s.DeleteUniversity(ctx, id)
	})
}

func (f *Failover) SearchUniversities(ctx context.Context, query string, limit int) ([]*api.University, error) {
	return reroute(f, ctx, "university", "search", func(ctx context.Context, s api.Store) ([]*api.University, error) {
		return s.SearchUniversities(ctx, query, limit)
	})
}

// --- News ---

func (f *Failover) ListNews(ctx context.Context) ([]*api.News, error) {
	return reroute(f, ctx, "news", "list", func(ctx context.Context, s api.Store) ([]*api.News, error) {
		return s.ListNews(ctx)
	})
}

func (f *Failover) GetNewsBySlug(ctx context.Context, slug string) (*api.News, error) {
	return reroute(f, ctx, "news", "getBySlug", func(ctx context.Context, s api.Store) (*api.News, error) {
		return s.GetNewsBySlug(ctx, slug)
	})
}

func (f *Failover) GetNewsByID(ctx context.Context, id int64) (*api.News, error) {
	return reroute(f, ctx, "news", "getByID", func(ctx context.Context, s api.Store) (*api.News, error) {
		return s.GetNewsByID(ctx, id)
	})
}

func (f *Failover) CreateNews(ctx context.Context, in *api.News) (*api.News, error) {
	if err := validation.News(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "news", "create", func(ctx context.Context, s api.Store) (*api.News, error) {
		return s.CreateNews(ctx, in)
	})
}

func (f *Failover) UpdateNews(ctx context.Context, in *api.News) (*api.News, error) {
	if err := validation.News(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "news", "update", func(ctx context.Context, s api.Store) (*api.News, error) {
		return s.UpdateNews(ctx, in)
	})
}

func (f *Failover) DeleteNews(ctx context.Context, id int64) error {
	return rerouteErr(f, ctx, "news", "delete", func(ctx context.Context, s api.Store) error {
		return s.DeleteNews(ctx, id)
	})
}

func (f *Failover) SearchNews(ctx context.Context, query string, limit int) ([]*api.News, error) {
	return reroute(f, ctx, "news", "search", func(ctx context.Context, s api.Store) ([]*api.News, error) {
		return s.SearchNews(ctx, query, limit)
	})
}

// --- Menu ---

func (f *Failover) ListMenuItems(ctx context.Context) ([]*api.MenuItem, error) {
	return reroute(f, ctx, "menu", "list", func(ctx context.Context, s api.Store) ([]*api.MenuItem, error) {
		return s.ListMenuItems(ctx)
	})
}

func (f *Failover) CreateMenuItem(ctx context.Context, in *api.MenuItem) (*api.MenuItem, error) {
	if err := validation.MenuItem(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "menu", "create", func(ctx context.Context, s api.Store) (*api.MenuItem, error) {
		return s.CreateMenuItem(ctx, in)
	})
}

// --- Users ---

func (f *Failover) CreateUser(ctx context.Context, in *api.User) (*api.User, error) {
	if err := validation.User(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "user", "create", func(ctx context.Context, s api.Store) (*api.User, error) {
		return s.CreateUser(ctx, in)
	})
}

func (f *Failover) GetUserByUsername(ctx context.Context, username string) (*api.User, error) {
	return reroute(f, ctx, "user", "getByUsername", func(ctx context.Context, s api.Store) (*api.User, error) {
		return s.GetUserByUsername(ctx, username)
	})
}

// --- Active users ---

func (f *Failover) CreateActiveUser(ctx context.Context, in *api.ActiveUser) (*api.ActiveUser, error) {
	if err := validation.ActiveUser(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "activeUser", "create", func(ctx context.Context, s api.Store) (*api.ActiveUser, error) {
		return s.CreateActiveUser(ctx, in)
	})
}

func (f *Failover) GetActiveUserByEmail(ctx context.Context, email string) (*api.ActiveUser, error) {
	return reroute(f, ctx, "activeUser", "getByEmail", func(ctx context.Context, s api.Store) (*api.ActiveUser, error) {
		return s.GetActiveUserByEmail(ctx, email)
	})
}

func (f *Failover) GetActiveUserByID(ctx context.Context, id int64) (*api.ActiveUser, error) {
	return reroute(f, ctx, "activeUser", "getByID", func(ctx context.Context, s api.Store) (*api.ActiveUser, error) {
		return s.GetActiveUserByID(ctx, id)
	})
}

func (f *Failover) SaveArticle(ctx context.Context, userID, articleID int64) (*api.ActiveUser, error) {
	return reroute(f, ctx, "activeUser", "saveArticle", func(ctx context.Context, s api.Store) (*api.ActiveUser, error) {
		return s.SaveArticle(ctx, userID, articleID)
	})
}

func (f *Failover) UnsaveArticle(ctx context.Context, userID, articleID int64) (*api.ActiveUser, error) {
	return reroute(f, ctx, "activeUser", "unsaveArticle", func(ctx context.Context, s api.Store) (*api.ActiveUser, error) {
		return s.UnsaveArticle(ctx, userID, articleID)
	})
}

func (f *Failover) SaveScholarship(ctx context.Context, userID, scholarshipID int64) (*api.ActiveUser, error) {
	return reroute(f, ctx, "activeUser", "saveScholarship", func(ctx context.Context, s api.Store) (*api.ActiveUser, error) {
		return s.SaveScholarship(ctx, userID, scholarshipID)
	})
}

func (f *Failover) UnsaveScholarship(ctx context.Context, userID, scholarshipID int64) (*api.ActiveUser, error) {
	return reroute(f, ctx, "activeUser", "unsaveScholarship", func(ctx context.Context, s api.Store) (*api.ActiveUser, error) {
		return s.UnsaveScholarship(ctx, userID, scholarshipID)
	})
}

// --- Comments ---

func (f *Failover) AddComment(ctx context.Context, in *api.Comment) (*api.Comment, error) {
	if err := validation.Comment(in); err != nil {
		return nil, err
	}
	return reroute(f, ctx, "comment", "add", func(ctx context.Context, s api.Store) (*api.Comment, error) {
		return s.AddComment(ctx, in)
	})
}

func (f *Failover) ListCommentsByUser(ctx context.Context, userID int64) ([]*api.Comment, error) {
	return reroute(f, ctx, "comment", "listByUser", func(ctx context.Context, s api.Store) ([]*api.Comment, error) {
		return s.ListCommentsByUser(ctx, userID)
	})
}

func (f *Failover) ListCommentsByArticle(ctx context.Context, articleID int64) ([]*api.Comment, error) {
	return reroute(f, ctx, "comment", "listByArticle", func(ctx context.Context, s api.Store) ([]*api.Comment, error) {
		return s.ListCommentsByArticle(ctx, articleID)
	})
}

var _ api.Store = (*Failover)(nil)
