package seed

import (
	"context"
	"fmt"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/observability"
)

// Resetter is implemented by backends that can drop all content. The
// populate step resets before inserting so seeding is repeatable.
type Resetter interface {
	Reset(ctx context.Context) error
}

// Populate resets the target when it supports it, then bulk-inserts the
// dataset. Slugs and IDs are assigned by the store. The first failed
// insert aborts the run; a partially seeded store is repaired by
// seeding again.
func Populate(ctx context.Context, store api.ContentStore, ds *Dataset, logger *observability.Logger) error {
	if logger == nil {
		logger = observability.FromContext(ctx)
	}
	if r, ok := store.(Resetter); ok {
		if err := r.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset store: %w", err)
		}
	}

	for _, s := range ds.Scholarships {
		if _, err := store.CreateScholarship(ctx, s); err != nil {
			return fmt.Errorf("scholarship %q: %w", s.Title, err)
		}
	}
	for _, a := range ds.Articles {
		if _, err := store.CreateArticle(ctx, a); err != nil {
			return fmt.Errorf("article %q: %w", a.Title, err)
		}
	}
	for _, c := range ds.Countries {
		if _, err := store.CreateCountry(ctx, c); err != nil {
			return fmt.Errorf("country %q: %w", c.Name, err)
		}
	}
	for _, u := range ds.Universities {
		if _, err := store.CreateUniversity(ctx, u); err != nil {
			return fmt.Errorf("university %q: %w", u.Name, err)
		}
	}
	for _, n := range ds.News {
		if _, err := store.CreateNews(ctx, n); err != nil {
			return fmt.Errorf("news %q: %w", n.Title, err)
		}
	}
	for _, m := range ds.Menu {
		if _, err := store.CreateMenuItem(ctx, m); err != nil {
			return fmt.Errorf("menu item %q: %w", m.Title, err)
		}
	}

	logger.WithField("entities", ds.Count()).Info("store seeded")
	return nil
}
