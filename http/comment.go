package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gantavyamalviya/pingpong/errs"
)

// registerCommentRoutes is a helper for registering all Comment routes.
func (s *Server) registerCommentRoutes(r *mux.Router) {
	r.HandleFunc("/blogs/{blog_id:[0-9]+}/comments", s.handleListComments).Methods("GET")
	r.HandleFunc("/blogs/{blog_id:[0-9]+}/comments", s.requireAuth(s.handleAddComment)).Methods("POST")
	r.HandleFunc("/blogs/{blog_id:[0-9]+}/comments/{comment_id:[0-9]+}", s.requireAuth(s.handleDeleteComment)).Methods("DELETE")
	r.HandleFunc("/me/comments", s.requireAuth(s.handleMyComments)).Methods("GET")
}

// commentRequest is the json body of an add-comment request.
type commentRequest struct {
	Content string `json:"content"`
}

// handleAddComment handles the route "POST /api/blogs/:blog_id/comments".
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.Atoi(mux.Vars(r)["blog_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	actor := s.getUserFromContext(r)
	comment, err := s.cs.Add(r.Context(), blogID, actor, req.Content)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(comment); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleDeleteComment handles the route "DELETE /api/blogs/:blog_id/comments/:comment_id".
// Only the comment's author may delete it.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := strconv.Atoi(mux.Vars(r)["comment_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	actor := s.getUserFromContext(r)
	if err := s.cs.Delete(r.Context(), commentID, actor); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListComments handles the route "GET /api/blogs/:blog_id/comments".
// It returns the blog's comments in creation order.
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.Atoi(mux.Vars(r)["blog_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	comments, err := s.cs.ByBlog(r.Context(), blogID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(comments); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleMyComments handles the route "GET /api/me/comments".
func (s *Server) handleMyComments(w http.ResponseWriter, r *http.Request) {
	actor := s.getUserFromContext(r)

	comments, err := s.cs.ByAuthor(r.Context(), actor)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(comments); err != nil {
		errs.LogError(r, err)
		return
	}
}
