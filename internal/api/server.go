package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/parcelpoint/concierge/internal/advisor"
)

// TurnRunner executes one full advisory turn.
type TurnRunner interface {
	Run(ctx context.Context, userID, threadID, text string) (*advisor.Response, error)
}

type Server struct {
	router *chi.Mux
	port   int
	turns  TurnRunner
}

func NewServer(port int, turns TurnRunner) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		turns:  turns,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/concierge/status", s.status)
	router.Post("/api/v1/concierge/chat", s.chat)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"agent":  "concierge",
		"status": "ok",
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
