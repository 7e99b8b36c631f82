package postgres

import (
	"context"

	"github.com/studyatlas/studyatlas/pkg/api"
)

// Per-kind search: the indexed full-text path is attempted first; any
// query failure (missing index, unsupported text search configuration)
// falls back to a case-insensitive substring match over the same field
// set the ephemeral store scans. Both paths share one limit so the
// fallback is not observably different in volume.

func (s *Store) SearchScholarships(ctx context.Context, query string, limit int) ([]*api.Scholarship, error) {
	out, err := s.queryScholarships(ctx,
		`SELECT `+scholarshipCols+` FROM scholarships
		WHERE to_tsvector('english', title || ' ' || description || ' ' || overview || ' ' || country)
			@@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', title || ' ' || description || ' ' || overview || ' ' || country),
			plainto_tsquery('english', $1)) DESC
		LIMIT $2`, query, limit)
	if err == nil {
		return out, nil
	}
	return s.queryScholarships(ctx,
		`SELECT `+scholarshipCols+` FROM scholarships
		WHERE title ILIKE $1 OR description ILIKE $1 OR overview ILIKE $1 OR country ILIKE $1
		ORDER BY id DESC LIMIT $2`, "%"+query+"%", limit)
}

func (s *Store) SearchArticles(ctx context.Context, query string, limit int) ([]*api.Article, error) {
	out, err := s.queryArticles(ctx,
		`SELECT `+articleCols+` FROM articles
		WHERE to_tsvector('english', title || ' ' || content || ' ' || summary)
			@@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', title || ' ' || content || ' ' || summary),
			plainto_tsquery('english', $1)) DESC
		LIMIT $2`, query, limit)
	if err == nil {
		return out, nil
	}
	return s.queryArticles(ctx,
		`SELECT `+articleCols+` FROM articles
		WHERE title ILIKE $1 OR content ILIKE $1 OR summary ILIKE $1
		ORDER BY publish_date DESC LIMIT $2`, "%"+query+"%", limit)
}

func (s *Store) SearchCountries(ctx context.Context, query string, limit int) ([]*api.Country, error) {
	out, err := s.queryCountries(ctx,
		`SELECT `+countryCols+` FROM countries
		WHERE to_tsvector('english', name || ' ' || description || ' ' || overview)
			@@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', name || ' ' || description || ' ' || overview),
			plainto_tsquery('english', $1)) DESC
		LIMIT $2`, query, limit)
	if err == nil {
		return out, nil
	}
	return s.queryCountries(ctx,
		`SELECT `+countryCols+` FROM countries
		WHERE name ILIKE $1 OR description ILIKE $1 OR overview ILIKE $1
		ORDER BY name ASC LIMIT $2`, "%"+query+"%", limit)
}

func (s *Store) SearchUniversities(ctx context.Context, query string, limit int) ([]*api.University, error) {
	out, err := s.queryUniversities(ctx,
		`SELECT `+universityCols+` FROM universities
		WHERE to_tsvector('english', name || ' ' || description || ' ' || overview || ' ' || country)
			@@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', name || ' ' || description || ' ' || overview || ' ' || country),
			plainto_tsquery('english', $1)) DESC
		LIMIT $2`, query, limit)
	if err == nil {
		return out, nil
	}
	return s.queryUniversities(ctx,
		`SELECT `+universityCols+` FROM universities
		WHERE name ILIKE $1 OR description ILIKE $1 OR overview ILIKE $1 OR country ILIKE $1
		ORDER BY name ASC LIMIT $2`, "%"+query+"%", limit)
}

func (s *Store) SearchNews(ctx context.Context, query string, limit int) ([]*api.News, error) {
	out, err := s.queryNews(ctx,
		`SELECT `+newsCols+` FROM news
		WHERE to_tsvector('english', title || ' ' || content || ' ' || summary)
			@@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', title || ' ' || content || ' ' || summary),
			plainto_tsquery('english', $1)) DESC
		LIMIT $2`, query, limit)
	if err == nil {
		return out, nil
	}
	return s.queryNews(ctx,
		`SELECT `+newsCols+` FROM news
		WHERE title ILIKE $1 OR content ILIKE $1 OR summary ILIKE $1
		ORDER BY publish_date DESC LIMIT $2`, "%"+query+"%", limit)
}
