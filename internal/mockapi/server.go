// Package mockapi is an in-memory stand-in for the MyMentor backend. It
// implements just enough of the REST contract for the client and its tests:
// login/refresh with HS256 tokens, user and professional CRUD, and canned
// advice generation. Restarting it resets all state.
package mockapi

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	advicemodel "github.com/mymentor/mymentor-go/internal/model/advice"
	"github.com/mymentor/mymentor-go/internal/model/user"
	"github.com/mymentor/mymentor-go/pkg/utils"
)

type emailKey struct{}

// Server holds the mock backend state.
type Server struct {
	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	areas    []user.Area
	pros     []user.Professional
	advices  map[int]*storedAdvice
	nextID   int
}

type account struct {
	user.User
	password string
}

type storedAdvice struct {
	advicemodel.Advice
	asesorID int
}

// Option configures the mock server.
type Option func(*Server)

// WithTokenTTL overrides the issued token lifetime, mostly for expiry tests.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = d
	}
}

// NewServer builds a seeded mock backend with a random signing secret.
func NewServer(opts ...Option) *Server {
	s := &Server{
		secret:   []byte(uuid.NewString()),
		tokenTTL: defaultTokenTTL,
		accounts: make(map[string]*account),
		advices:  make(map[int]*storedAdvice),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

// Handler builds the chi router with the full REST surface. Request logging
// is left to the binary so tests stay quiet.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/login", s.handleLogin)

	r.Group(func(auth chi.Router) {
		auth.Use(s.requireAuth)

		auth.Post("/logout", s.handleLogout)
		auth.Post("/refresh-token", s.handleRefresh)

		auth.Get("/users/email/{email}", s.handleGetUserByEmail)
		auth.Get("/users", s.handleListUsers)
		auth.Post("/users", s.handleCreateUser)
		auth.Put("/users/{uuid}", s.handleUpdateUser)
		auth.Delete("/users/{uuid}", s.handleDeleteUser)

		auth.Get("/professionals/page/{page}", s.handleProfessionalsPage)
		auth.Get("/areas", s.handleAreas)
		auth.Post("/professional", s.handleCreateProfessional)
		auth.Put("/professional/{id}", s.handleUpdateProfessional)
		auth.Delete("/professional/{id}", s.handleDeleteProfessional)

		auth.Get("/gpt/professional/{asesorID}", s.handleListAdvisorys)
		auth.Post("/gpt/professional/advice", s.handleCreateAdvice)
		auth.Put("/gpt/professional/advice/{id}", s.handleUpdateAdvice)
		auth.Get("/gpt/professional/advice/{id}", s.handleGetAdvice)
		auth.Delete("/gpt/professional/advice/{id}", s.handleDeleteAdvice)
	})

	return r
}

// requireAuth validates the bearer token and stashes the caller's email in
// the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		c, err := parseToken(s.secret, tokenStr)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), emailKey{}, c.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func callerEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey{}).(string)
	return email
}

// allocID hands out the next entity id. Callers must hold s.mu.
func (s *Server) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}
