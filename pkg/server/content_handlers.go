package server

import (
	"net/http"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/httputil"
)

// --- Scholarships ---

func (s *Server) listScholarships(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListScholarships(r.Context())
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) getScholarship(w http.ResponseWriter, r *http.Request) {
	slug, ok := httputil.ParsePathStringOrError(w, r, "slug")
	if !ok {
		return
	}
	out, err := s.store.GetScholarshipBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) createScholarship(w http.ResponseWriter, r *http.Request) {
	var in api.Scholarship
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	out, err := s.store.CreateScholarship(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteCreated(w, out)
}

func (s *Server) updateScholarship(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	var in api.Scholarship
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	in.ID = id
	out, err := s.store.UpdateScholarship(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) deleteScholarship(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteScholarship(r.Context(), id); err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

// --- Articles ---

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListArticles(r.Context())
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	slug, ok := httputil.ParsePathStringOrError(w, r, "slug")
	if !ok {
		return
	}
	out, err := s.store.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	var in api.Article
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	out, err := s.store.CreateArticle(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteCreated(w, out)
}

func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	var in api.Article
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	in.ID = id
	out, err := s.store.UpdateArticle(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteArticle(r.Context(), id); err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

// --- Countries ---

func (s *Server) listCountries(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListCountries(r.Context())
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) getCountry(w http.ResponseWriter, r *http.Request) {
	slug, ok := httputil.ParsePathStringOrError(w, r, "slug")
	if !ok {
		return
	}
	out, err := s.store.GetCountryBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) createCountry(w http.ResponseWriter, r *http.Request) {
	var in api.Country
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	out, err := s.store.CreateCountry(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteCreated(w, out)
}

func (s *Server) updateCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	var in api.Country
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	in.ID = id
	out, err := s.store.UpdateCountry(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) deleteCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteCountry(r.Context(), id); err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

// --- Universities ---

func (s *Server) listUniversities(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListUniversities(r.Context())
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) getUniversity(w http.ResponseWriter, r *http.Request) {
	slug, ok := httputil.ParsePathStringOrError(w, r, "slug")
	if !ok {
		return
	}
	out, err := s.store.GetUniversityBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) createUniversity(w http.ResponseWriter, r *http.Request) {
	var in api.University
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	out, err := s.store.CreateUniversity(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteCreated(w, out)
}

func (s *Server) updateUniversity(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	var in api.University
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	in.ID = id
	out, err := s.store.UpdateUniversity(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) deleteUniversity(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteUniversity(r.Context(), id); err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

// --- News ---

func (s *Server) listNews(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListNews(r.Context())
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) getNews(w http.ResponseWriter, r *http.Request) {
	slug, ok := httputil.ParsePathStringOrError(w, r, "slug")
	if !ok {
		return
	}
	out, err := s.store.GetNewsBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) createNews(w http.ResponseWriter, r *http.Request) {
	var in api.News
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	out, err := s.store.CreateNews(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteCreated(w, out)
}

func (s *Server) updateNews(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	var in api.News
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	in.ID = id
	out, err := s.store.UpdateNews(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) deleteNews(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteNews(r.Context(), id); err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

// --- Menu ---

func (s *Server) listMenu(w http.ResponseWriter, r *http.Request) {
	out, err := s.store.ListMenuItems(r.Context())
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, out)
}

func (s *Server) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var in api.MenuItem
	if !httputil.ParseJSONOrError(w, r, &in) {
		return
	}
	out, err := s.store.CreateMenuItem(r.Context(), &in)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteCreated(w, out)
}
