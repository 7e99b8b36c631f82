package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"test"}`))

	var dest struct {
		Name string `json:"name"`
	}
	err := ParseJSON(r, &dest)

	require.NoError(t, err)
	assert.Equal(t, "test", dest.Name)
}

func TestParseJSONInvalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))

	var dest map[string]string
	err := ParseJSON(r, &dest)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParsePathInt64(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/articles/42", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "42"})

	val, err := ParsePathInt64(r, "id")

	require.NoError(t, err)
	assert.Equal(t, int64(42), val)
}

func TestParsePathInt64Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/articles", nil)

	_, err := ParsePathInt64(r, "id")

	assert.Error(t, err)
}

func TestParsePathInt64OrErrorWritesBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles/abc", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "abc"})

	_, ok := ParsePathInt64OrError(w, r, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParsePathString(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/articles/my-article", nil)
	r = mux.SetURLVars(r, map[string]string{"slug": "my-article"})

	val, err := ParsePathString(r, "slug")

	require.NoError(t, err)
	assert.Equal(t, "my-article", val)
}

func TestParseQueryString(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/search?query=engineering", nil)

	assert.Equal(t, "engineering", ParseQueryString(r, "query", ""))
	assert.Equal(t, "fallback", ParseQueryString(r, "missing", "fallback"))
}
