// Package search aggregates full-text search across every content kind.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/studyatlas/studyatlas/pkg/api"
)

var searchTracer = otel.Tracer("studyatlas/search")

// Service fans a query out to every content kind concurrently and
// assembles one response. It searches through the failover router, so
// each kind independently degrades to the ephemeral store when the
// durable backend is down.
type Service struct {
	store api.Store

	// OnQuery is invoked once per aggregate query when set.
	OnQuery func()
}

// NewService creates a search service over the given store.
func NewService(store api.Store) *Service {
	return &Service{store: store}
}

// Search runs the query across all kinds. An empty or blank query is
// rejected rather than returning the whole catalog.
func (s *Service) Search(ctx context.Context, query string) (*api.SearchResults, error) {
	ctx, span := searchTracer.Start(ctx, "Search",
		trace.WithAttributes(attribute.String("query", query)),
	)
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		err := fmt.Errorf("%w: search query must not be empty", api.ErrInvalid)
		span.SetStatus(codes.Error, "empty query")
		return nil, err
	}

	if s.OnQuery != nil {
		s.OnQuery()
	}

	results := &api.SearchResults{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := s.store.SearchScholarships(ctx, query, api.SearchLimit)
		if err != nil {
			return fmt.Errorf("scholarships: %w", err)
		}
		results.Scholarships = out
		return nil
	})
	g.Go(func() error {
		out, err := s.store.SearchArticles(ctx, query, api.SearchLimit)
		if err != nil {
			return fmt.Errorf("articles: %w", err)
		}
		results.Articles = out
		return nil
	})
	g.Go(func() error {
		out, err := s.store.SearchCountries(ctx, query, api.SearchLimit)
		if err != nil {
			return fmt.Errorf("countries: %w", err)
		}
		results.Countries = out
		return nil
	})
	g.Go(func() error {
		out, err := s.store.SearchUniversities(ctx, query, api.SearchLimit)
		if err != nil {
			return fmt.Errorf("universities: %w", err)
		}
		results.Universities = out
		return nil
	})
	g.Go(func() error {
		out, err := s.store.SearchNews(ctx, query, api.SearchLimit)
		if err != nil {
			return fmt.Errorf("news: %w", err)
		}
		results.News = out
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("scholarships", len(results.Scholarships)),
		attribute.Int("articles", len(results.Articles)),
		attribute.Int("countries", len(results.Countries)),
		attribute.Int("universities", len(results.Universities)),
		attribute.Int("news", len(results.News)),
	)
	return results, nil
}
