package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/swelljoe/zipcast/internal/render"
	"github.com/swelljoe/zipcast/internal/weather"
)

// Resolver is the part of weather.Service the handlers need
type Resolver interface {
	Resolve(ctx context.Context, postalCode string) (*weather.Result, error)
}

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	resolver  Resolver
	wrapWidth int
}

// New creates a new Handlers instance
func New(resolver Resolver, wrapWidth int) *Handlers {
	return &Handlers{
		resolver:  resolver,
		wrapWidth: wrapWidth,
	}
}

// Register adds the handler routes to mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/forecast", h.HandleForecast)
	mux.HandleFunc("/health", h.HandleHealth)
}

// HandleHealth handles health check endpoint
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if h.resolver == nil {
		status = "no_resolver"
	}

	w.Write([]byte(`{"status":"` + status + `"}`))
}

// HandleForecast renders the forecast for ?zip= as plain text
func (h *Handlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.resolver == nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	zip := strings.TrimSpace(r.URL.Query().Get("zip"))
	if zip == "" {
		http.Error(w, "Please provide a zip code", http.StatusBadRequest)
		return
	}

	res, err := h.resolver.Resolve(r.Context(), zip)
	if err != nil {
		if errors.Is(err, weather.ErrLocationNotFound) {
			http.Error(w, "Location not found: "+zip, http.StatusNotFound)
			return
		}
		log.Printf("Resolve error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if res.Err != nil {
		w.WriteHeader(http.StatusBadGateway)
	}

	lines := render.Render(res.Location, res.Forecast, h.wrapWidth)
	if res.Err != nil {
		lines = append(lines, "Forecast unavailable.")
	}
	if _, err := w.Write([]byte(strings.Join(lines, "\n") + "\n")); err != nil {
		log.Printf("Response write error: %v", err)
	}
}
