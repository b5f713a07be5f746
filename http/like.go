package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gantavyamalviya/pingpong/errs"
)

// registerLikeRoutes is a helper for registering all Like routes.
func (s *Server) registerLikeRoutes(r *mux.Router) {
	r.HandleFunc("/blogs/{id:[0-9]+}/like", s.requireAuth(s.handleLikeBlog)).Methods("POST")
	r.HandleFunc("/blogs/{id:[0-9]+}/like", s.requireAuth(s.handleUnlikeBlog)).Methods("DELETE")
	r.HandleFunc("/blogs/{id:[0-9]+}/likes", s.handleGetLikes).Methods("GET")
	r.HandleFunc("/me/likes", s.requireAuth(s.handleMyLikedBlogs)).Methods("GET")
}

// likesResponse reports the like state of a blog for the requesting user.
type likesResponse struct {
	Count     int64 `json:"count"`
	LikedByMe bool  `json:"liked_by_me"`
}

// handleLikeBlog handles the route "POST /api/blogs/:id/like".
// Liking a blog twice is a no-op; liking your own blog is forbidden.
func (s *Server) handleLikeBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	actor := s.getUserFromContext(r)
	if err := s.ls.Like(r.Context(), blogID, actor); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUnlikeBlog handles the route "DELETE /api/blogs/:id/like".
// Unliking a blog that was never liked is a no-op.
func (s *Server) handleUnlikeBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	actor := s.getUserFromContext(r)
	if err := s.ls.Unlike(r.Context(), blogID, actor); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetLikes handles the route "GET /api/blogs/:id/likes".
// Anonymous requests get liked_by_me=false.
func (s *Server) handleGetLikes(w http.ResponseWriter, r *http.Request) {
	blogID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	count, err := s.ls.Count(r.Context(), blogID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	likedByMe, err := s.ls.IsLikedBy(r.Context(), blogID, s.getUserFromContext(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&likesResponse{Count: count, LikedByMe: likedByMe}); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleMyLikedBlogs handles the route "GET /api/me/likes".
// It returns the blogs the authed user has liked.
func (s *Server) handleMyLikedBlogs(w http.ResponseWriter, r *http.Request) {
	actor := s.getUserFromContext(r)

	blogs, err := s.ls.LikedBlogs(r.Context(), actor)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(blogs); err != nil {
		errs.LogError(r, err)
		return
	}
}
