package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/gantavyamalviya/pingpong/auth"
	"github.com/gantavyamalviya/pingpong/crud"
	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
)

// Server provides the http functionality of the app: routing, request
// handling, and middleware. It resolves the bearer token into an actor and
// hands everything else over to the crud services.
type Server struct {
	router *mux.Router
	us     domain.UserService
	bs     domain.BlogService
	cs     domain.CommentService
	ls     domain.LikeService
	fs     domain.FollowService
	jwt    *auth.JWTManager
}

// NewServer returns a new instance of the server, registers all routes and
// gives their handlers access to the services passed in.
func NewServer(services *crud.Services, jwt *auth.JWTManager) *Server {
	s := &Server{
		router: mux.NewRouter(),
		us:     services.User,
		bs:     services.Blog,
		cs:     services.Comment,
		ls:     services.Like,
		fs:     services.Follow,
		jwt:    jwt,
	}

	api := s.router.PathPrefix("/api").Subrouter()
	s.registerAuthRoutes(api)
	s.registerBlogRoutes(api)
	s.registerCommentRoutes(api)
	s.registerLikeRoutes(api)
	s.registerFollowRoutes(api)
	s.registerUserRoutes(api)

	s.router.Use(requestLogger, setContentTypeJSON, s.checkUser)
	return s
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	return http.ListenAndServe(":"+strconv.Itoa(port), s.router)
}

// requestLogger tags every request with an id and logs it on completion.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// checkUser resolves the Authorization header into a user and stores it in
// the request context. A missing or invalid token leaves the request
// anonymous; whether that is acceptable is decided per route by requireAuth.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := s.jwt.Validate(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByUsername(r.Context(), claims.Username)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth guards a handler against anonymous requests.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHENTICATED, "You must be logged in."))
			return
		}
		next(w, r)
	}
}

// getUserFromContext returns the authed user of the request, or nil.
func (s *Server) getUserFromContext(r *http.Request) *domain.User {
	return auth.GetUser(r.Context())
}
