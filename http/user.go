package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
)

// registerUserRoutes is a helper for registering all User routes.
func (s *Server) registerUserRoutes(r *mux.Router) {
	r.HandleFunc("/users/{username}/profile", s.handleGetProfile).Methods("GET")
	r.HandleFunc("/profile", s.requireAuth(s.handleUpdateProfile)).Methods("PUT")
}

// profileResponse is a public profile plus its follow counters.
type profileResponse struct {
	domain.PublicProfile
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// handleGetProfile handles the route "GET /api/users/:username/profile".
// It returns the user's public profile and follow counts.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := s.us.ByUsername(r.Context(), username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	followerCount, err := s.fs.FollowerCount(r.Context(), username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	followingCount, err := s.fs.FollowingCount(r.Context(), username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	resp := profileResponse{
		PublicProfile:  user.PublicProfile(),
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}
	if err := json.NewEncoder(w).Encode(&resp); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleUpdateProfile handles the route "PUT /api/profile".
// It updates the authed user's own profile fields.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	actor := s.getUserFromContext(r)
	user, err := s.us.UpdateProfile(r.Context(), actor, upd)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
		return
	}
}
