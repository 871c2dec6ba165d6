package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/specialistvlad/cargogo/internal/scoreboard"
	"github.com/specialistvlad/cargogo/internal/session"
)

// Status is the body of GET /status.
type Status struct {
	Level   string            `json:"level"`
	Source  string            `json:"source"`
	Session session.Snapshot  `json:"session"`
	Score   scoreboard.Totals `json:"score"`
	Error   string            `json:"error,omitempty"`
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) statusHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Status endpoint hit.", "remote_addr", r.RemoteAddr)
	if a.session == nil {
		http.Error(w, "session not started", http.StatusServiceUnavailable)
		return
	}

	st := Status{
		Level:   a.level.Name,
		Source:  a.level.Source,
		Session: a.session.Snapshot(),
	}
	if a.board != nil {
		st.Score = a.board.Totals()
		if err := a.board.Err(); err != nil {
			st.Error = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		a.logger.Warn("Failed to write status.", "error", err)
	}
}

func (a *App) statusMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/status", a.statusHandler)
	return mux
}

// startStatusServer runs the health and status endpoints in the background.
func (a *App) startStatusServer(port int) {
	a.logger.Debug("Configuring status server.")
	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.statusMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.Info("🩺 Status server starting", "address", fmt.Sprintf("http://localhost%s/status", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Status server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeStatusServer() error {
	if a.httpServer == nil {
		a.logger.Debug("Status server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	a.logger.Info("🩺 Shutting down status server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Status server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Status server shut down gracefully.")
	return nil
}
