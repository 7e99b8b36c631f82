package server

import (
	"context"
	"net/http"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/httputil"
	"github.com/studyatlas/studyatlas/pkg/middleware"
)

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		httputil.WriteUnauthorized(w, "not authenticated")
		return
	}
	user, err := s.store.GetActiveUserByID(r.Context(), userID)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, user)
}

// likeOp runs LikeArticle or UnlikeArticle and responds with the
// resulting like count.
func (s *Server) likeOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, articleID, userID int64) (int, error)) {
	userID, ok := middleware.UserID(r)
	if !ok {
		httputil.WriteUnauthorized(w, "not authenticated")
		return
	}
	articleID, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	likes, err := op(r.Context(), articleID, userID)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, map[string]int{"likes": likes})
}

func (s *Server) likeArticle(w http.ResponseWriter, r *http.Request) {
	s.likeOp(w, r, s.store.LikeArticle)
}

func (s *Server) unlikeArticle(w http.ResponseWriter, r *http.Request) {
	s.likeOp(w, r, s.store.UnlikeArticle)
}

// saveOp runs one of the save/unsave operations and responds with the
// updated profile so clients refresh their saved lists in one trip.
func (s *Server) saveOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, refID int64) (*api.ActiveUser, error)) {
	userID, ok := middleware.UserID(r)
	if !ok {
		httputil.WriteUnauthorized(w, "not authenticated")
		return
	}
	refID, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	user, err := op(r.Context(), userID, refID)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteSuccess(w, user)
}

func (s *Server) saveArticle(w http.ResponseWriter, r *http.Request) {
	s.saveOp(w, r, s.store.SaveArticle)
}

func (s *Server) unsaveArticle(w http.ResponseWriter, r *http.Request) {
	s.saveOp(w, r, s.store.UnsaveArticle)
}

func (s *Server) saveScholarship(w http.ResponseWriter, r *http.Request) {
	s.saveOp(w, r, s.store.SaveScholarship)
}

func (s *Server) unsaveScholarship(w http.ResponseWriter, r *http.Request) {
	s.saveOp(w, r, s.store.UnsaveScholarship)
}

type addCommentRequest struct {
	Content string `json:"content"`
}

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		httputil.WriteUnauthorized(w, "not authenticated")
		return
	}
	articleID, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	var req addCommentRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	comment, err := s.store.AddComment(r.Context(), &api.Comment{
		UserID:    userID,
		ArticleID: articleID,
		Content:   req.Content,
	})
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	httputil.WriteCreated(w, comment)
}

func (s *Server) listArticleComments(w http.ResponseWriter, r *http.Request) {
	articleID, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}
	comments, err := s.store.ListCommentsByArticle(r.Context(), articleID)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	if comments == nil {
		comments = []*api.Comment{}
	}
	httputil.WriteSuccess(w, comments)
}

func (s *Server) listOwnComments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		httputil.WriteUnauthorized(w, "not authenticated")
		return
	}
	comments, err := s.store.ListCommentsByUser(r.Context(), userID)
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	if comments == nil {
		comments = []*api.Comment{}
	}
	httputil.WriteSuccess(w, comments)
}
