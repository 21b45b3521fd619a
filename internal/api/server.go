// Package api implements the self-hostable sync backend for Arise.
// It exposes anonymous auth, one keyed JSON record per entity, and an
// append-only weight log, backed by SQLite.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the sync backend HTTP server.
type Server struct {
	db       *sql.DB
	migrated atomic.Bool
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// New creates a server over db. Migrate must be called before the server
// will accept data requests; until then every data route answers with a
// SCHEMA_MISSING envelope, which clients treat as a signal to fall back to
// local storage.
func New(db *sql.DB) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		db:       db,
		registry: reg,
		requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "arise_api_requests_total",
			Help: "Total API requests by route and status.",
		}, []string{"route", "status"}),
	}
}

// Migrate creates the backend schema.
func (s *Server) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player_records (
			player_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player_id, key)
		);`,
		`CREATE TABLE IF NOT EXISTS weight_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL,
			weight REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_weight_logs_player ON weight_logs(player_id, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	s.migrated.Store(true)
	return nil
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Post("/auth/anonymous", s.handleAuth)
	r.Route("/players/{playerID}", func(r chi.Router) {
		r.Get("/records/{key}", s.handleReadRecord)
		r.Put("/records/{key}", s.handleWriteRecord)
		r.Delete("/records/{key}", s.handleDeleteRecord)
		r.Delete("/records", s.handleClearRecords)
		r.Post("/weight-logs", s.handleAppendWeight)
		r.Get("/weight-logs", s.handleListWeights)
	})

	return r
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, "auth") {
		return
	}
	id := uuid.NewString()
	s.count("auth", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{"player_id": id})
}

func (s *Server) handleReadRecord(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, "record_read") {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	key := chi.URLParam(r, "key")

	row := s.db.QueryRowContext(r.Context(),
		`SELECT value FROM player_records WHERE player_id = ? AND key = ?`, playerID, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			s.count("record_read", http.StatusNotFound)
			writeError(w, http.StatusNotFound, "NOT_FOUND", "no such record")
			return
		}
		s.count("record_read", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	s.count("record_read", http.StatusOK)
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, raw)
}

func (s *Server) handleWriteRecord(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, "record_write") {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	key := chi.URLParam(r, "key")

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.count("record_write", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "read body")
		return
	}
	if !json.Valid(raw) {
		s.count("record_write", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "body must be JSON")
		return
	}
	_, err = s.db.ExecContext(r.Context(), `
		INSERT INTO player_records (player_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT(player_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, playerID, key, string(raw))
	if err != nil {
		s.count("record_write", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	s.count("record_write", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, "record_delete") {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	key := chi.URLParam(r, "key")
	if _, err := s.db.ExecContext(r.Context(),
		`DELETE FROM player_records WHERE player_id = ? AND key = ?`, playerID, key); err != nil {
		s.count("record_delete", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	s.count("record_delete", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleClearRecords(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, "record_clear") {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	if _, err := s.db.ExecContext(r.Context(), `DELETE FROM player_records WHERE player_id = ?`, playerID); err != nil {
		s.count("record_clear", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	if _, err := s.db.ExecContext(r.Context(), `DELETE FROM weight_logs WHERE player_id = ?`, playerID); err != nil {
		s.count("record_clear", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	s.count("record_clear", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAppendWeight(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, "weight_append") {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	var in struct {
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.count("weight_append", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "body must be JSON")
		return
	}
	if in.Weight <= 0 {
		s.count("weight_append", http.StatusBadRequest)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "weight must be positive")
		return
	}
	if _, err := s.db.ExecContext(r.Context(),
		`INSERT INTO weight_logs (player_id, weight) VALUES (?, ?)`, playerID, in.Weight); err != nil {
		s.count("weight_append", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	s.count("weight_append", http.StatusOK)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListWeights(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w, "weight_list") {
		return
	}
	playerID := chi.URLParam(r, "playerID")
	rows, err := s.db.QueryContext(r.Context(),
		`SELECT weight, created_at FROM weight_logs WHERE player_id = ? ORDER BY created_at ASC, id ASC`, playerID)
	if err != nil {
		s.count("weight_list", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	defer rows.Close()

	type entry struct {
		Date   string  `json:"date"`
		Weight float64 `json:"weight"`
	}
	entries := []entry{}
	for rows.Next() {
		var e entry
		var createdAt time.Time
		if err := rows.Scan(&e.Weight, &createdAt); err != nil {
			s.count("weight_list", http.StatusInternalServerError)
			writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
			return
		}
		e.Date = createdAt.Format("2006-01-02")
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		s.count("weight_list", http.StatusInternalServerError)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
		return
	}
	s.count("weight_list", http.StatusOK)
	writeJSON(w, http.StatusOK, entries)
}

// ready answers the SCHEMA_MISSING envelope when Migrate has not run.
func (s *Server) ready(w http.ResponseWriter, route string) bool {
	if s.migrated.Load() {
		return true
	}
	s.count(route, http.StatusInternalServerError)
	writeError(w, http.StatusInternalServerError, "SCHEMA_MISSING", "backend tables missing; run migrations")
	return false
}

func (s *Server) count(route string, status int) {
	s.requests.WithLabelValues(route, fmt.Sprintf("%d", status)).Inc()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"code": code, "error": msg})
}
