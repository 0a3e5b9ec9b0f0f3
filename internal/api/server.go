package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JustinTDCT/SkipVault/internal/auth"
	"github.com/JustinTDCT/SkipVault/internal/cache"
	"github.com/JustinTDCT/SkipVault/internal/config"
	"github.com/JustinTDCT/SkipVault/internal/db"
	"github.com/JustinTDCT/SkipVault/internal/engine"
	"github.com/JustinTDCT/SkipVault/internal/jobs"
	"github.com/JustinTDCT/SkipVault/internal/models"
	"github.com/JustinTDCT/SkipVault/internal/oracle/groq"
	"github.com/JustinTDCT/SkipVault/internal/repository"
)

type Server struct {
	config     *config.Config
	db         *db.DB
	auth       *auth.Auth
	userRepo   *repository.UserRepository
	prefRepo   *repository.PreferenceRepository
	resultRepo *repository.ResultRepository
	cache      *cache.Cache
	engine     *engine.Engine
	jobQueue   *jobs.Queue
	wsHub      *WSHub
	router     *http.ServeMux
}

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func NewServer(cfg *config.Config, database *db.DB, eng *engine.Engine, c *cache.Cache, jobQueue *jobs.Queue) *Server {
	s := &Server{
		config:     cfg,
		db:         database,
		auth:       auth.New(cfg.JWTSecret, time.Duration(cfg.TokenExpiryHours)*time.Hour),
		userRepo:   repository.NewUserRepository(database.DB),
		prefRepo:   repository.NewPreferenceRepository(database.DB),
		resultRepo: repository.NewResultRepository(database.DB),
		cache:      c,
		engine:     eng,
		jobQueue:   jobQueue,
		wsHub:      NewWSHub(),
		router:     http.NewServeMux(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) WSHub() *WSHub {
	return s.wsHub
}

func (s *Server) setupRoutes() {
	// Public
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Synchronous processing, same semantics via GET or POST
	s.router.HandleFunc("GET /api/v1/process", s.handleProcessQuery)
	s.router.HandleFunc("GET /api/v1/process/{videoId}", s.handleProcessGet)
	s.router.HandleFunc("POST /api/v1/process", s.handleProcessPost)

	// Async processing and stored results
	s.router.HandleFunc("POST /api/v1/videos/{videoId}/process", s.authMiddleware(s.handleProcessAsync, models.RoleUser))
	s.router.HandleFunc("GET /api/v1/videos/{videoId}/segments", s.authMiddleware(s.handleGetSegments, models.RoleUser))

	// Preferences
	s.router.HandleFunc("GET /api/v1/preferences/categories", s.handleListCategories)
	s.router.HandleFunc("GET /api/v1/preferences/categories/{name}", s.handleGetCategory)
	s.router.HandleFunc("GET /api/v1/preferences", s.authMiddleware(s.handleGetPreferences, models.RoleUser))
	s.router.HandleFunc("PUT /api/v1/preferences", s.authMiddleware(s.handleUpdatePreferences, models.RoleUser))

	// Cache and stats (admin)
	s.router.HandleFunc("DELETE /api/v1/cache/{videoId}", s.authMiddleware(s.handleClearCache, models.RoleAdmin))
	s.router.HandleFunc("GET /api/v1/stats", s.authMiddleware(s.handleStats, models.RoleAdmin))

	// WebSocket
	s.router.HandleFunc("GET /api/v1/ws", s.handleWebSocket)
}

// ──────────────────── Middleware ────────────────────

func (s *Server) authMiddleware(next http.HandlerFunc, requiredRole models.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if t := r.URL.Query().Get("token"); t != "" {
			tokenString = t
		} else {
			s.respondError(w, http.StatusUnauthorized, "missing authorization")
			return
		}

		claims, err := s.auth.ValidateToken(tokenString)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		if !s.auth.CheckPermission(claims.Role, requiredRole) {
			s.respondError(w, http.StatusForbidden, "insufficient permissions")
			return
		}

		r.Header.Set("X-User-ID", claims.UserID.String())
		r.Header.Set("X-User-Role", string(claims.Role))

		next(w, r)
	}
}

// securityHeadersMiddleware adds standard security headers to all responses.
func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware handles CORS preflight and response headers globally.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ServeHTTP applies the global middleware chain and dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.securityHeadersMiddleware(s.corsMiddleware(s.router)).ServeHTTP(w, r)
}

// ──────────────────── Helpers ────────────────────

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, Response{Success: false, Error: message})
}

func (s *Server) getUserID(r *http.Request) uuid.UUID {
	id, _ := uuid.Parse(r.Header.Get("X-User-ID"))
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"status":         "ok",
		"oracle_enabled": s.config.OracleEnabled(),
	}
	if s.config.OracleEnabled() {
		model := s.config.GroqModel
		if model == "" {
			model = groq.DefaultModel
		}
		data["model"] = model
	}
	if s.cache != nil {
		if n, err := s.cache.Count(r.Context()); err == nil {
			data["cached_entries"] = n
		}
	}
	s.respondJSON(w, http.StatusOK, data)
}
