package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/api"
)

func newScholarship(title string) *api.Scholarship {
	return &api.Scholarship{
		Title:       title,
		Overview:    "overview",
		Description: "description",
		Country:     "United Kingdom",
	}
}

func newArticle(title string, published time.Time) *api.Article {
	return &api.Article{
		Title:       title,
		Content:     "content",
		Summary:     "summary",
		Author:      "Jane Doe",
		Category:    "Guides",
		PublishDate: published,
	}
}

func TestMemoryScholarshipLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.CreateScholarship(ctx, newScholarship("Chevening Scholarship"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "chevening-scholarship", created.Slug)

	got, err := m.GetScholarshipBySlug(ctx, "chevening-scholarship")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	got.Title = "Renamed"
	updated, err := m.UpdateScholarship(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "chevening-scholarship", updated.Slug, "empty slug on update keeps the existing one")

	require.NoError(t, m.DeleteScholarship(ctx, created.ID))
	_, err = m.GetScholarshipByID(ctx, created.ID)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.ErrorIs(t, m.DeleteScholarship(ctx, created.ID), api.ErrNotFound)
}

func TestMemorySlugCollisionGetsSuffix(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first, err := m.CreateScholarship(ctx, newScholarship("DAAD EPOS"))
	require.NoError(t, err)
	second, err := m.CreateScholarship(ctx, newScholarship("DAAD EPOS"))
	require.NoError(t, err)
	third, err := m.CreateScholarship(ctx, newScholarship("DAAD EPOS"))
	require.NoError(t, err)

	assert.Equal(t, "daad-epos", first.Slug)
	assert.Equal(t, "daad-epos-2", second.Slug)
	assert.Equal(t, "daad-epos-3", third.Slug)
}

func TestMemoryIDsNeverReused(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first, err := m.CreateScholarship(ctx, newScholarship("First"))
	require.NoError(t, err)
	require.NoError(t, m.DeleteScholarship(ctx, first.ID))

	second, err := m.CreateScholarship(ctx, newScholarship("Second"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	require.NoError(t, m.Reset(ctx))
	third, err := m.CreateScholarship(ctx, newScholarship("Third"))
	require.NoError(t, err)
	assert.Greater(t, third.ID, second.ID, "reset clears data but keeps counters moving")
}

func TestMemoryListScholarshipsNewestFirst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, title := range []string{"Oldest", "Middle", "Newest"} {
		_, err := m.CreateScholarship(ctx, newScholarship(title))
		require.NoError(t, err)
	}

	all, err := m.ListScholarships(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Newest", all[0].Title)
	assert.Equal(t, "Oldest", all[2].Title)
}

func TestMemoryListArticlesByPublishDate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Now()

	_, err := m.CreateArticle(ctx, newArticle("Old", now.Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = m.CreateArticle(ctx, newArticle("New", now))
	require.NoError(t, err)
	_, err = m.CreateArticle(ctx, newArticle("Middle", now.Add(-24*time.Hour)))
	require.NoError(t, err)

	all, err := m.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"New", "Middle", "Old"}, []string{all[0].Title, all[1].Title, all[2].Title})
}

func TestMemoryListUniversitiesUnrankedLast(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	create := func(name string, ranking int) {
		_, err := m.CreateUniversity(ctx, &api.University{
			Name:        name,
			Description: "description",
			Country:     "Germany",
			Location:    "Munich",
			Ranking:     ranking,
		})
		require.NoError(t, err)
	}
	create("Unranked", 0)
	create("Second", 50)
	create("First", 2)

	all, err := m.ListUniversities(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "First", all[0].Name)
	assert.Equal(t, "Second", all[1].Name)
	assert.Equal(t, "Unranked", all[2].Name)
}

func TestMemoryLikeArticleIdempotent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, err := m.CreateArticle(ctx, newArticle("Liked", time.Now()))
	require.NoError(t, err)

	likes, err := m.LikeArticle(ctx, a.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = m.LikeArticle(ctx, a.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, likes, "second like from the same user is a no-op")

	likes, err = m.LikeArticle(ctx, a.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	likes, err = m.UnlikeArticle(ctx, a.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = m.UnlikeArticle(ctx, a.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, likes, "unliking twice is a no-op")

	_, err = m.LikeArticle(ctx, 999, 7)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestMemoryUpdateArticlePreservesLikes(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, err := m.CreateArticle(ctx, newArticle("Original", time.Now()))
	require.NoError(t, err)
	_, err = m.LikeArticle(ctx, a.ID, 1)
	require.NoError(t, err)

	in := newArticle("Edited", time.Now())
	in.ID = a.ID
	in.Likes = []int64{10, 11, 12}
	updated, err := m.UpdateArticle(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, updated.Likes, "likes are owned by like operations, not updates")
}

func TestMemoryActiveUserEmailConflict(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateActiveUser(ctx, &api.ActiveUser{FullName: "A", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = m.CreateActiveUser(ctx, &api.ActiveUser{FullName: "B", Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, api.ErrConflict)
}

func TestMemorySaveScholarshipSetSemantics(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	u, err := m.CreateActiveUser(ctx, &api.ActiveUser{FullName: "A", Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	got, err := m.SaveScholarship(ctx, u.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, got.SavedScholarships)

	got, err = m.SaveScholarship(ctx, u.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, got.SavedScholarships, "saving twice does not duplicate")

	got, err = m.UnsaveScholarship(ctx, u.ID, 4)
	require.NoError(t, err)
	assert.Empty(t, got.SavedScholarships)

	_, err = m.SaveScholarship(ctx, 999, 4)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestMemoryCommentsListedBothWays(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := m.AddComment(ctx, &api.Comment{UserID: 1, ArticleID: int64(i%2 + 1), Content: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
	}

	byArticle, err := m.ListCommentsByArticle(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byArticle, 2)

	byUser, err := m.ListCommentsByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byUser, 3)

	none, err := m.ListCommentsByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryAddCommentStampsCreatedAt(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	before := time.Now().UTC()
	got, err := m.AddComment(ctx, &api.Comment{UserID: 1, ArticleID: 2, Content: "nice"})
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero(), "comments carry a creation time on every backend")
	assert.False(t, got.CreatedAt.Before(before))

	stored, err := m.ListCommentsByArticle(ctx, 2)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, got.CreatedAt, stored[0].CreatedAt)
}

func TestMemoryAddCommentKeepsCallerTimestamp(t *testing.T) {
	m := NewMemory()
	stamped := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := m.AddComment(context.Background(), &api.Comment{
		UserID: 1, ArticleID: 2, Content: "migrated", CreatedAt: stamped,
	})
	require.NoError(t, err)
	assert.Equal(t, stamped, got.CreatedAt)
}

func TestMemorySearchCaseInsensitive(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.CreateScholarship(ctx, newScholarship("Fulbright Program"))
	require.NoError(t, err)
	_, err = m.CreateScholarship(ctx, newScholarship("Erasmus Mundus"))
	require.NoError(t, err)

	hits, err := m.SearchScholarships(ctx, "FULBRIGHT", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Fulbright Program", hits[0].Title)
}

func TestMemorySearchRespectsLimit(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := m.CreateScholarship(ctx, newScholarship(fmt.Sprintf("Common Grant %d", i)))
		require.NoError(t, err)
	}

	hits, err := m.SearchScholarships(ctx, "common", api.SearchLimit)
	require.NoError(t, err)
	assert.Len(t, hits, api.SearchLimit)
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.CreateScholarship(ctx, newScholarship("Immutable"))
	require.NoError(t, err)
	created.Title = "Mutated"

	got, err := m.GetScholarshipByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Immutable", got.Title, "mutating a returned value must not leak into the store")
}
