package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
)

// registerAuthRoutes is a helper for registering all auth routes.
func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/signup", s.handleSignup).Methods("POST")
	r.HandleFunc("/auth/login", s.handleLogin).Methods("POST")
}

// signupRequest is the json body of a signup request.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// loginRequest is the json body of a login request.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries the issued bearer token.
type tokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// handleSignup handles the route "POST /api/auth/signup".
// It creates a new user account and returns a bearer token for it.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user := domain.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}
	if err := s.us.Register(r.Context(), &user, req.Password); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	token, err := s.jwt.Generate(user.ID, user.Username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&tokenResponse{Token: token, Username: user.Username}); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleLogin handles the route "POST /api/auth/login".
// It verifies the submitted credentials and returns a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user, err := s.us.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	token, err := s.jwt.Generate(user.ID, user.Username)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(&tokenResponse{Token: token, Username: user.Username}); err != nil {
		errs.LogError(r, err)
		return
	}
}
