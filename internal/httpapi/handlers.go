package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/DoyleJ11/monopoly-lobby/internal/board"
	"github.com/DoyleJ11/monopoly-lobby/internal/hub"
	"github.com/DoyleJ11/monopoly-lobby/internal/lobby"
)

const (
	defaultResultLimit = 20
	maxResultLimit     = 100
)

// ResultReader lists archived games, newest first.
type ResultReader interface {
	RecentResults(ctx context.Context, limit int) ([]lobby.Result, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func Themes(c *board.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, struct {
			Themes []board.ThemeSummary `json:"themes"`
		}{Themes: c.Themes()})
	}
}

func Lobbies(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		open := h.Open()
		if open == nil {
			open = []lobby.Summary{}
		}
		writeJSON(w, http.StatusOK, struct {
			Lobbies []lobby.Summary `json:"lobbies"`
		}{Lobbies: open})
	}
}

func Results(rr ResultReader, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rr == nil {
			http.Error(w, "results archive is disabled", http.StatusNotFound)
			return
		}
		limit := defaultResultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = min(n, maxResultLimit)
		}

		results, err := rr.RecentResults(r.Context(), limit)
		if err != nil {
			log.Error("list results", zap.Error(err))
			http.Error(w, "failed to load results", http.StatusInternalServerError)
			return
		}
		if results == nil {
			results = []lobby.Result{}
		}
		writeJSON(w, http.StatusOK, struct {
			Results []lobby.Result `json:"results"`
		}{Results: results})
	}
}
