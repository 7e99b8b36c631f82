package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/storage"
)

func seededStore(t *testing.T) *storage.Memory {
	t.Helper()
	mem := storage.NewMemory()
	ctx := context.Background()

	_, err := mem.CreateScholarship(ctx, &api.Scholarship{
		Title: "Chevening Scholarship", Description: "UK government award",
		Overview: "Fully funded masters", Country: "United Kingdom",
	})
	require.NoError(t, err)

	_, err = mem.CreateArticle(ctx, &api.Article{
		Title: "How to write a scholarship essay", Content: "Start early", Summary: "Essay advice",
	})
	require.NoError(t, err)

	_, err = mem.CreateCountry(ctx, &api.Country{
		Name: "United Kingdom", Description: "Study in the UK", Overview: "Universities and fees",
	})
	require.NoError(t, err)

	_, err = mem.CreateUniversity(ctx, &api.University{
		Name: "University of Oxford", Description: "Collegiate research university",
		Overview: "Oldest in the anglophone world", Country: "United Kingdom", Ranking: 1,
	})
	require.NoError(t, err)

	_, err = mem.CreateNews(ctx, &api.News{
		Title: "Scholarship deadlines extended", Content: "Several programs moved dates", Summary: "Deadline news",
	})
	require.NoError(t, err)

	return mem
}

func TestSearchFansOutAcrossKinds(t *testing.T) {
	svc := NewService(seededStore(t))

	results, err := svc.Search(context.Background(), "scholarship")
	require.NoError(t, err)

	assert.Len(t, results.Scholarships, 1)
	assert.Len(t, results.Articles, 1)
	assert.Len(t, results.News, 1)
	assert.Empty(t, results.Countries)
	assert.Empty(t, results.Universities)
}

func TestSearchMatchesEveryKind(t *testing.T) {
	svc := NewService(seededStore(t))

	results, err := svc.Search(context.Background(), "united kingdom")
	require.NoError(t, err)

	assert.Len(t, results.Scholarships, 1)
	assert.Len(t, results.Countries, 1)
	assert.Len(t, results.Universities, 1)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := NewService(seededStore(t))

	for _, query := range []string{"", "   ", "\t"} {
		_, err := svc.Search(context.Background(), query)
		assert.ErrorIs(t, err, api.ErrInvalid)
	}
}

func TestSearchCapsResultsPerKind(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	for i := 0; i < api.SearchLimit+5; i++ {
		_, err := mem.CreateScholarship(ctx, &api.Scholarship{
			Title:       fmt.Sprintf("Erasmus Grant %d", i),
			Description: "European exchange funding",
		})
		require.NoError(t, err)
	}
	svc := NewService(mem)

	results, err := svc.Search(ctx, "erasmus")
	require.NoError(t, err)

	assert.Len(t, results.Scholarships, api.SearchLimit)
}

func TestSearchCountsQueries(t *testing.T) {
	svc := NewService(seededStore(t))
	var queries int
	svc.OnQuery = func() { queries++ }

	_, err := svc.Search(context.Background(), "oxford")
	require.NoError(t, err)

	// Rejected queries are not counted.
	_, err = svc.Search(context.Background(), "")
	require.Error(t, err)

	assert.Equal(t, 1, queries)
}

func TestSearchHandler(t *testing.T) {
	svc := NewService(seededStore(t))
	router := mux.NewRouter()
	svc.RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search?query=oxford", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var results api.SearchResults
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results.Universities, 1)
}

func TestSearchHandlerEmptyQuery(t *testing.T) {
	svc := NewService(seededStore(t))
	router := mux.NewRouter()
	svc.RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
