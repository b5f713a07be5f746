package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gantavyamalviya/pingpong/errs"
)

// registerFollowRoutes is a helper for registering all Follow routes.
func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/users/{username}/follow", s.requireAuth(s.handleFollowUser)).Methods("POST")
	r.HandleFunc("/users/{username}/follow", s.requireAuth(s.handleUnfollowUser)).Methods("DELETE")
	r.HandleFunc("/users/{username}/followers", s.handleGetFollowers).Methods("GET")
	r.HandleFunc("/users/{username}/following", s.handleGetFollowing).Methods("GET")
	r.HandleFunc("/users/{username}/is-following", s.handleIsFollowing).Methods("GET")
}

// handleFollowUser handles the route "POST /api/users/:username/follow".
// Following yourself or someone you already follow is a silent no-op.
func (s *Server) handleFollowUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	actor := s.getUserFromContext(r)
	if err := s.fs.Follow(r.Context(), actor, username); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUnfollowUser handles the route "DELETE /api/users/:username/follow".
func (s *Server) handleUnfollowUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	actor := s.getUserFromContext(r)
	if err := s.fs.Unfollow(r.Context(), actor, username); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetFollowers handles the route "GET /api/users/:username/followers".
func (s *Server) handleGetFollowers(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	followers, err := s.fs.Followers(r.Context(), username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(followers); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleGetFollowing handles the route "GET /api/users/:username/following".
func (s *Server) handleGetFollowing(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	following, err := s.fs.Following(r.Context(), username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(following); err != nil {
		errs.LogError(r, err)
		return
	}
}

// isFollowingResponse reports whether the requesting user follows the
// named user.
type isFollowingResponse struct {
	IsFollowing bool `json:"is_following"`
}

// handleIsFollowing handles the route "GET /api/users/:username/is-following".
// Anonymous requests always get false.
func (s *Server) handleIsFollowing(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	isFollowing, err := s.fs.IsFollowing(r.Context(), s.getUserFromContext(r), username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&isFollowingResponse{IsFollowing: isFollowing}); err != nil {
		errs.LogError(r, err)
		return
	}
}
