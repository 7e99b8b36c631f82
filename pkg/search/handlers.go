package search

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studyatlas/studyatlas/pkg/httputil"
)

// RegisterRoutes mounts the search endpoint on the router.
func (s *Service) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := httputil.ParseQueryString(r, "query", "")
	results, err := s.Search(r.Context(), query)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, results)
}
