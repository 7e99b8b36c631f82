package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/observability"
	"github.com/studyatlas/studyatlas/pkg/validation"
)

// Report summarizes a migration run per entity kind and in total.
type Report struct {
	Attempted int `json:"attempted"`
	Migrated  int `json:"migrated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

func (r *Report) add(other Report) {
	r.Attempted += other.Attempted
	r.Migrated += other.Migrated
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// Migrator copies content from a source backend into a destination.
// Entities are matched by natural key (slug, or title for menu items),
// so re-running a migration never duplicates rows.
type Migrator struct {
	source api.ContentStore
	dest   api.ContentStore
	logger *observability.Logger

	// OnRow is invoked per entity with the kind and outcome
	// ("migrated", "skipped", or "failed") when set.
	OnRow func(kind, outcome string)
}

// NewMigrator creates a migrator from source into dest.
func NewMigrator(source, dest api.ContentStore, logger *observability.Logger) *Migrator {
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &Migrator{source: source, dest: dest, logger: logger}
}

func (m *Migrator) record(kind, outcome string) {
	if m.OnRow != nil {
		m.OnRow(kind, outcome)
	}
}

// migrateKind copies every source entity that is absent from the
// destination. A failed row is counted and logged but does not stop the
// rest of the run.
func migrateKind[T any](ctx context.Context, m *Migrator, kind string,
	list func(context.Context) ([]T, error),
	exists func(context.Context, T) (bool, error),
	create func(context.Context, T) error,
	describe func(T) string,
) (Report, error) {
	var report Report
	items, err := list(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list %s from source: %w", kind, err)
	}
	for _, item := range items {
		report.Attempted++
		found, err := exists(ctx, item)
		if err != nil {
			report.Failed++
			m.record(kind, "failed")
			m.logger.WithError(err).WithField(kind, describe(item)).Warn("existence check failed")
			continue
		}
		if found {
			report.Skipped++
			m.record(kind, "skipped")
			continue
		}
		if err := create(ctx, item); err != nil {
			report.Failed++
			m.record(kind, "failed")
			m.logger.WithError(err).WithField(kind, describe(item)).Warn("migration insert failed")
			continue
		}
		report.Migrated++
		m.record(kind, "migrated")
	}
	return report, nil
}

func notFoundToBool(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, api.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Run migrates every content kind. It returns an error only when a
// source listing fails outright; per-row failures are reported in the
// Report and the run continues.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	total := &Report{}

	r, err := migrateKind(ctx, m, "scholarship",
		m.source.ListScholarships,
		func(ctx context.Context, s *api.Scholarship) (bool, error) {
			_, err := m.dest.GetScholarshipBySlug(ctx, slugOf(s.Slug, s.Title))
			return notFoundToBool(err)
		},
		func(ctx context.Context, s *api.Scholarship) error {
			_, err := m.dest.CreateScholarship(ctx, s)
			return err
		},
		func(s *api.Scholarship) string { return s.Title },
	)
	if err != nil {
		return total, err
	}
	total.add(r)

	r, err = migrateKind(ctx, m, "article",
		m.source.ListArticles,
		func(ctx context.Context, a *api.Article) (bool, error) {
			_, err := m.dest.GetArticleBySlug(ctx, slugOf(a.Slug, a.Title))
			return notFoundToBool(err)
		},
		func(ctx context.Context, a *api.Article) error {
			_, err := m.dest.CreateArticle(ctx, a)
			return err
		},
		func(a *api.Article) string { return a.Title },
	)
	if err != nil {
		return total, err
	}
	total.add(r)

	r, err = migrateKind(ctx, m, "country",
		m.source.ListCountries,
		func(ctx context.Context, c *api.Country) (bool, error) {
			_, err := m.dest.GetCountryBySlug(ctx, slugOf(c.Slug, c.Name))
			return notFoundToBool(err)
		},
		func(ctx context.Context, c *api.Country) error {
			_, err := m.dest.CreateCountry(ctx, c)
			return err
		},
		func(c *api.Country) string { return c.Name },
	)
	if err != nil {
		return total, err
	}
	total.add(r)

	r, err = migrateKind(ctx, m, "university",
		m.source.ListUniversities,
		func(ctx context.Context, u *api.University) (bool, error) {
			_, err := m.dest.GetUniversityBySlug(ctx, slugOf(u.Slug, u.Name))
			return notFoundToBool(err)
		},
		func(ctx context.Context, u *api.University) error {
			_, err := m.dest.CreateUniversity(ctx, u)
			return err
		},
		func(u *api.University) string { return u.Name },
	)
	if err != nil {
		return total, err
	}
	total.add(r)

	r, err = migrateKind(ctx, m, "news",
		m.source.ListNews,
		func(ctx context.Context, n *api.News) (bool, error) {
			_, err := m.dest.GetNewsBySlug(ctx, slugOf(n.Slug, n.Title))
			return notFoundToBool(err)
		},
		func(ctx context.Context, n *api.News) error {
			_, err := m.dest.CreateNews(ctx, n)
			return err
		},
		func(n *api.News) string { return n.Title },
	)
	if err != nil {
		return total, err
	}
	total.add(r)

	r, err = m.migrateMenu(ctx)
	if err != nil {
		return total, err
	}
	total.add(r)

	m.logger.WithFields(map[string]interface{}{
		"attempted": total.Attempted,
		"migrated":  total.Migrated,
		"skipped":   total.Skipped,
		"failed":    total.Failed,
	}).Info("migration finished")
	return total, nil
}

// migrateMenu matches menu items by title since they carry no slug.
func (m *Migrator) migrateMenu(ctx context.Context) (Report, error) {
	existing, err := m.dest.ListMenuItems(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list destination menu: %w", err)
	}
	titles := make(map[string]bool, len(existing))
	for _, item := range existing {
		titles[item.Title] = true
	}
	return migrateKind(ctx, m, "menu",
		m.source.ListMenuItems,
		func(ctx context.Context, item *api.MenuItem) (bool, error) {
			return titles[item.Title], nil
		},
		func(ctx context.Context, item *api.MenuItem) error {
			_, err := m.dest.CreateMenuItem(ctx, item)
			return err
		},
		func(item *api.MenuItem) string { return item.Title },
	)
}

func slugOf(slug, fallback string) string {
	if slug != "" {
		return slug
	}
	return validation.Slugify(fallback)
}
