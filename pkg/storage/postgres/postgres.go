// Package postgres implements the durable storage backend. Connections
// are established lazily and memoized; every failure is classified so
// the failover router can reroute to the ephemeral store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/storage"
	"github.com/studyatlas/studyatlas/pkg/validation"
)

// slugAttempts caps the disambiguation loop on slug collisions.
const slugAttempts = 50

// Store is the durable adapter backed by PostgreSQL.
type Store struct {
	conn *lazyConn
}

// New creates a durable store. No connection is attempted until the
// first operation, so a down database at boot does not fail startup.
func New(cfg storage.Config) *Store {
	return &Store{
		conn: newLazyConn(cfg.PostgresURL, cfg.PostgresMaxConns, cfg.PostgresMinConns, cfg.PostgresTimeout),
	}
}

// Ping reports database reachability for health probes.
func (s *Store) Ping(ctx context.Context) error {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		s.conn.invalidate()
		return unavailable(err)
	}
	return nil
}

// Close releases the cached connection handle.
func (s *Store) Close() error {
	return s.conn.close()
}

// Reset truncates every content collection. Used by the seed utility
// only; identities are untouched.
func (s *Store) Reset(ctx context.Context) error {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`TRUNCATE scholarships, articles, countries, universities, news, menu_items RESTART IDENTITY`)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// wrap classifies a query error: no rows is a not-found outcome, unique
// violations are conflicts, everything else is unavailability.
func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return api.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("duplicate key: %w", api.ErrConflict)
	}
	return unavailable(err)
}

// --- Scholarships ---

// scholarshipCols excludes created_at: internal bookkeeping never
// reaches callers.
const scholarshipCols = `id, title, slug, overview, description, highlights, amount, deadline,
	duration, level, fields_covered, eligibility, is_renewable, benefits,
	application_procedure, country, tags, link`

func scanScholarship(r rowScanner) (*api.Scholarship, error) {
	var s api.Scholarship
	err := r.Scan(&s.ID, &s.Title, &s.Slug, &s.Overview, &s.Description,
		pq.Array(&s.Highlights), &s.Amount, &s.Deadline, &s.Duration, &s.Level,
		pq.Array(&s.FieldsCovered), &s.Eligibility, &s.IsRenewable, pq.Array(&s.Benefits),
		&s.ApplicationProcedure, &s.Country, pq.Array(&s.Tags), &s.Link)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) queryScholarships(ctx context.Context, query string, args ...interface{}) ([]*api.Scholarship, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []*api.Scholarship
	for rows.Next() {
		sc, err := scanScholarship(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *Store) ListScholarships(ctx context.Context) ([]*api.Scholarship, error) {
	return s.queryScholarships(ctx,
		`SELECT `+scholarshipCols+` FROM scholarships ORDER BY id DESC`)
}

func (s *Store) GetScholarshipBySlug(ctx context.Context, slug string) (*api.Scholarship, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := scanScholarship(db.QueryRowContext(ctx,
		`SELECT `+scholarshipCols+` FROM scholarships WHERE slug = $1`, slug))
	if err != nil {
		return nil, wrap(err)
	}
	return sc, nil
}

func (s *Store) GetScholarshipByID(ctx context.Context, id int64) (*api.Scholarship, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := scanScholarship(db.QueryRowContext(ctx,
		`SELECT `+scholarshipCols+` FROM scholarships WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return sc, nil
}

func (s *Store) CreateScholarship(ctx context.Context, in *api.Scholarship) (*api.Scholarship, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	base := in.Slug
	if base == "" {
		base = validation.Slugify(in.Title)
	}
	slug := base
	for attempt := 2; attempt <= slugAttempts+1; attempt++ {
		sc, err := scanScholarship(db.QueryRowContext(ctx,
			`INSERT INTO scholarships (title, slug, overview, description, highlights, amount,
				deadline, duration, level, fields_covered, eligibility, is_renewable, benefits,
				application_procedure, country, tags, link)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
			RETURNING `+scholarshipCols,
			in.Title, slug, in.Overview, in.Description, pq.Array(in.Highlights), in.Amount,
			in.Deadline, in.Duration, in.Level, pq.Array(in.FieldsCovered), in.Eligibility,
			in.IsRenewable, pq.Array(in.Benefits), in.ApplicationProcedure, in.Country,
			pq.Array(in.Tags), in.Link))
		if err == nil {
			return sc, nil
		}
		if isUniqueViolation(err) {
			slug = fmt.Sprintf("%s-%d", base, attempt)
			continue
		}
		return nil, wrap(err)
	}
	return nil, fmt.Errorf("slug %q: %w", base, api.ErrConflict)
}

func (s *Store) UpdateScholarship(ctx context.Context, in *api.Scholarship) (*api.Scholarship, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	sc, err := scanScholarship(db.QueryRowContext(ctx,
		`UPDATE scholarships SET title=$2, slug = CASE WHEN $3 = '' THEN slug ELSE $3 END,
			overview=$4, description=$5, highlights=$6, amount=$7, deadline=$8, duration=$9,
			level=$10, fields_covered=$11, eligibility=$12, is_renewable=$13, benefits=$14,
			application_procedure=$15, country=$16, tags=$17, link=$18
		WHERE id = $1
		RETURNING `+scholarshipCols,
		in.ID, in.Title, in.Slug, in.Overview, in.Description, pq.Array(in.Highlights),
		in.Amount, in.Deadline, in.Duration, in.Level, pq.Array(in.FieldsCovered),
		in.Eligibility, in.IsRenewable, pq.Array(in.Benefits), in.ApplicationProcedure,
		in.Country, pq.Array(in.Tags), in.Link))
	if err != nil {
		return nil, wrap(err)
	}
	return sc, nil
}

func (s *Store) DeleteScholarship(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "scholarships", id)
}

// deleteByID is shared by all content kinds; table names are fixed
// strings, never caller input.
func (s *Store) deleteByID(ctx context.Context, table string, id int64) error {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if n == 0 {
		return api.ErrNotFound
	}
	return nil
}

// --- Articles ---

const articleCols = `id, title, content, summary, slug, publish_date, author, author_title,
	author_image, image, category, likes`

func scanArticle(r rowScanner) (*api.Article, error) {
	var a api.Article
	err := r.Scan(&a.ID, &a.Title, &a.Content, &a.Summary, &a.Slug, &a.PublishDate,
		&a.Author, &a.AuthorTitle, &a.AuthorImage, &a.Image, &a.Category, pq.Array(&a.Likes))
	if err != nil {
		return nil, err
	}
	if a.Likes == nil {
		a.Likes = []int64{}
	}
	return &a, nil
}

func (s *Store) queryArticles(ctx context.Context, query string, args ...interface{}) ([]*api.Article, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []*api.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *Store) ListArticles(ctx context.Context) ([]*api.Article, error) {
	return s.queryArticles(ctx,
		`SELECT `+articleCols+` FROM articles ORDER BY publish_date DESC`)
}

func (s *Store) GetArticleBySlug(ctx context.Context, slug string) (*api.Article, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	a, err := scanArticle(db.QueryRowContext(ctx,
		`SELECT `+articleCols+` FROM articles WHERE slug = $1`, slug))
	if err != nil {
		return nil, wrap(err)
	}
	return a, nil
}

func (s *Store) GetArticleByID(ctx context.Context, id int64) (*api.Article, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	a, err := scanArticle(db.QueryRowContext(ctx,
		`SELECT `+articleCols+` FROM articles WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return a, nil
}

func (s *Store) CreateArticle(ctx context.Context, in *api.Article) (*api.Article, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	base := in.Slug
	if base == "" {
		base = validation.Slugify(in.Title)
	}
	slug := base
	for attempt := 2; attempt <= slugAttempts+1; attempt++ {
		a, err := scanArticle(db.QueryRowContext(ctx,
			`INSERT INTO articles (title, content, summary, slug, publish_date, author,
				author_title, author_image, image, category)
			VALUES ($1,$2,$3,$4,CASE WHEN $5 < TIMESTAMPTZ '1970-01-01' THEN NOW() ELSE $5 END,$6,$7,$8,$9,$10)
			RETURNING `+articleCols,
			in.Title, in.Content, in.Summary, slug, in.PublishDate, in.Author,
			in.AuthorTitle, in.AuthorImage, in.Image, in.Category))
		if err == nil {
			return a, nil
		}
		if isUniqueViolation(err) {
			slug = fmt.Sprintf("%s-%d", base, attempt)
			continue
		}
		return nil, wrap(err)
	}
	return nil, fmt.Errorf("slug %q: %w", base, api.ErrConflict)
}

func (s *Store) UpdateArticle(ctx context.Context, in *api.Article) (*api.Article, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return nil, err
	}
	// likes are owned by the like/unlike operations
	a, err := scanArticle(db.QueryRowContext(ctx,
		`UPDATE articles SET title=$2, content=$3, summary=$4,
			slug = CASE WHEN $5 = '' THEN slug ELSE $5 END,
			author=$6, author_title=$7, author_image=$8, image=$9, category=$10
		WHERE id = $1
		RETURNING `+articleCols,
		in.ID, in.Title, in.Content, in.Summary, in.Slug, in.Author,
		in.AuthorTitle, in.AuthorImage, in.Image, in.Category))
	if err != nil {
		return nil, wrap(err)
	}
	return a, nil
}

func (s *Store) DeleteArticle(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "articles", id)
}

// LikeArticle records userID in the like set if absent. Repeating the
// call is a no-op returning the current count.
func (s *Store) LikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return 0, err
	}
	var count int
	err = db.QueryRowContext(ctx,
		`UPDATE articles
		SET likes = CASE WHEN $2 = ANY(likes) THEN likes ELSE array_append(likes, $2) END
		WHERE id = $1
		RETURNING COALESCE(array_length(likes, 1), 0)`,
		articleID, userID).Scan(&count)
	if err != nil {
		return 0, wrap(err)
	}
	return count, nil
}

func (s *Store) UnlikeArticle(ctx context.Context, articleID, userID int64) (int, error) {
	db, err := s.conn.acquire(ctx)
	if err != nil {
		return 0, err
	}
	var count int
	err = db.QueryRowContext(ctx,
		`UPDATE articles SET likes = array_remove(likes, $2)
		WHERE id = $1
		RETURNING COALESCE(array_length(likes, 1), 0)`,
		articleID, userID).Scan(&count)
	if err != nil {
		return 0, wrap(err)
	}
	return count, nil
}

var _ api.Store = (*Store)(nil)
