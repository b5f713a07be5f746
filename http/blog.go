package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
)

// registerBlogRoutes is a helper for registering all Blog routes.
func (s *Server) registerBlogRoutes(r *mux.Router) {
	r.HandleFunc("/blogs", s.handleListBlogs).Methods("GET")
	r.HandleFunc("/blogs", s.requireAuth(s.handlePublishBlog)).Methods("POST")
	r.HandleFunc("/blogs/user/{username}", s.handleBlogsByAuthor).Methods("GET")
	r.HandleFunc("/blogs/{id:[0-9]+}", s.handleGetBlog).Methods("GET")
	r.HandleFunc("/blogs/{id:[0-9]+}", s.requireAuth(s.handleUpdateBlog)).Methods("PUT")
	r.HandleFunc("/blogs/{id:[0-9]+}", s.requireAuth(s.handleDeleteBlog)).Methods("DELETE")
}

// handlePublishBlog handles the route "POST /api/blogs".
// It creates a new blog owned by the authed user.
func (s *Server) handlePublishBlog(w http.ResponseWriter, r *http.Request) {
	var fields domain.BlogFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	actor := s.getUserFromContext(r)
	blog, err := s.bs.Publish(r.Context(), actor, fields)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(blog); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleUpdateBlog handles the route "PUT /api/blogs/:id".
// Only the blog's author may update it.
func (s *Server) handleUpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	var fields domain.BlogFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	actor := s.getUserFromContext(r)
	blog, err := s.bs.Update(r.Context(), id, actor, fields)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(blog); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleDeleteBlog handles the route "DELETE /api/blogs/:id".
// Only the blog's author may delete it; comments and likes go with it.
func (s *Server) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	actor := s.getUserFromContext(r)
	if err := s.bs.Delete(r.Context(), id, actor); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetBlog handles the route "GET /api/blogs/:id".
func (s *Server) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	blog, err := s.bs.ByID(r.Context(), id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(blog); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleListBlogs handles the route "GET /api/blogs?page=0&size=10".
// It returns one page of all blogs with pagination metadata.
func (s *Server) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil {
		size = 10
	}

	result, err := s.bs.All(r.Context(), page, size)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleBlogsByAuthor handles the route "GET /api/blogs/user/:username".
func (s *Server) handleBlogsByAuthor(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	blogs, err := s.bs.ByAuthor(r.Context(), username)
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
