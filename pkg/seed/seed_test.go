package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/storage"
)

func TestDefaultDataset(t *testing.T) {
	ds := DefaultDataset()

	assert.NotEmpty(t, ds.Scholarships)
	assert.NotEmpty(t, ds.Articles)
	assert.NotEmpty(t, ds.Countries)
	assert.NotEmpty(t, ds.Universities)
	assert.NotEmpty(t, ds.News)
	assert.NotEmpty(t, ds.Menu)
	assert.Equal(t,
		len(ds.Scholarships)+len(ds.Articles)+len(ds.Countries)+
			len(ds.Universities)+len(ds.News)+len(ds.Menu),
		ds.Count())
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	content := `
scholarships:
  - title: Test Award
    description: A test scholarship
    country: Testland
    amount: "1000 USD"
articles:
  - title: Test Article
    content: Body text
    summary: Short form
    publishDate: 2024-06-01T00:00:00Z
    author: Jane Writer
menu:
  - title: Scholarships
    url: /scholarships
    children:
      - title: Fully Funded
        url: /scholarships?tag=fully-funded
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)

	require.Len(t, ds.Scholarships, 1)
	assert.Equal(t, "Test Award", ds.Scholarships[0].Title)
	assert.Equal(t, "Testland", ds.Scholarships[0].Country)

	require.Len(t, ds.Articles, 1)
	assert.Equal(t, "Jane Writer", ds.Articles[0].Author)
	assert.Equal(t, 2024, ds.Articles[0].PublishDate.Year())

	require.Len(t, ds.Menu, 1)
	require.Len(t, ds.Menu[0].Children, 1)
	assert.Equal(t, "Fully Funded", ds.Menu[0].Children[0].Title)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadDatasetBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scholarships: [unclosed"), 0o644))

	_, err := LoadDataset(path)
	assert.Error(t, err)
}

func TestPopulateResetsAndInserts(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	// Pre-existing content is cleared by the reset.
	_, err := mem.CreateScholarship(ctx, &api.Scholarship{Title: "Stale Entry"})
	require.NoError(t, err)

	ds := DefaultDataset()
	require.NoError(t, Populate(ctx, mem, ds, nil))

	scholarships, err := mem.ListScholarships(ctx)
	require.NoError(t, err)
	assert.Len(t, scholarships, len(ds.Scholarships))
	for _, s := range scholarships {
		assert.NotEqual(t, "Stale Entry", s.Title)
		assert.NotEmpty(t, s.Slug)
	}

	menu, err := mem.ListMenuItems(ctx)
	require.NoError(t, err)
	assert.Len(t, menu, len(ds.Menu))
}

func TestPopulateIsRepeatable(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	ds := DefaultDataset()

	require.NoError(t, Populate(ctx, mem, ds, nil))
	require.NoError(t, Populate(ctx, mem, ds, nil))

	scholarships, err := mem.ListScholarships(ctx)
	require.NoError(t, err)
	assert.Len(t, scholarships, len(ds.Scholarships))
}

func TestMigrateCopiesEverything(t *testing.T) {
	ctx := context.Background()
	source := storage.NewMemory()
	dest := storage.NewMemory()
	ds := DefaultDataset()
	require.NoError(t, Populate(ctx, source, ds, nil))

	report, err := NewMigrator(source, dest, nil).Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, ds.Count(), report.Attempted)
	assert.Equal(t, ds.Count(), report.Migrated)
	assert.Zero(t, report.Skipped)
	assert.Zero(t, report.Failed)

	scholarships, err := dest.ListScholarships(ctx)
	require.NoError(t, err)
	assert.Len(t, scholarships, len(ds.Scholarships))
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	source := storage.NewMemory()
	dest := storage.NewMemory()
	require.NoError(t, Populate(ctx, source, DefaultDataset(), nil))

	migrator := NewMigrator(source, dest, nil)
	_, err := migrator.Run(ctx)
	require.NoError(t, err)

	report, err := migrator.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, report.Attempted, report.Skipped)
	assert.Zero(t, report.Migrated)

	articles, err := dest.ListArticles(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, len(DefaultDataset().Articles))
}

func TestMigrateRecordsOutcomes(t *testing.T) {
	ctx := context.Background()
	source := storage.NewMemory()
	dest := storage.NewMemory()
	require.NoError(t, Populate(ctx, source, DefaultDataset(), nil))

	migrator := NewMigrator(source, dest, nil)
	outcomes := map[string]int{}
	migrator.OnRow = func(kind, outcome string) { outcomes[outcome]++ }

	report, err := migrator.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, report.Migrated, outcomes["migrated"])
	assert.Zero(t, outcomes["failed"])
}

func passThrough(next http.Handler) http.Handler { return next }

func TestSeedEndpointRefusedInProduction(t *testing.T) {
	mem := storage.NewMemory()
	h := NewHandlers(mem, mem, mem, nil, true, nil)
	router := mux.NewRouter()
	h.RegisterRoutes(router, passThrough)

	for _, path := range []string{"/admin/seed", "/admin/migrate"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestSeedEndpoint(t *testing.T) {
	mem := storage.NewMemory()
	h := NewHandlers(mem, mem, mem, nil, false, nil)
	router := mux.NewRouter()
	h.RegisterRoutes(router, passThrough)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/seed", nil))

	require.Equal(t, http.StatusOK, w.Code)

	scholarships, err := mem.ListScholarships(context.Background())
	require.NoError(t, err)
	assert.Len(t, scholarships, len(DefaultDataset().Scholarships))
}

func TestMigrateEndpoint(t *testing.T) {
	source := storage.NewMemory()
	dest := storage.NewMemory()
	require.NoError(t, Populate(context.Background(), source, DefaultDataset(), nil))

	h := NewHandlers(dest, source, dest, nil, false, nil)
	router := mux.NewRouter()
	h.RegisterRoutes(router, passThrough)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/migrate", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"migrated"`)
}
