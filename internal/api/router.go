package api

import (
	"distance-compare-service/internal/api/handlers"
	"distance-compare-service/internal/ports"
	"distance-compare-service/internal/services"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(aggregator *services.Aggregator, repo ports.ComparisonRepository, logger *slog.Logger) http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowed = http.HandlerFunc(handlers.MethodNotAllowed)

	cmpHandler := &handlers.ComparisonHandler{
		Aggregator: aggregator,
		Repo:       repo,
	}

	router.HandlerFunc(http.MethodGet, "/health", handlers.Health)
	router.HandlerFunc(http.MethodPost, "/comparisons", cmpHandler.Create)
	router.HandlerFunc(http.MethodGet, "/comparisons", cmpHandler.List)
	router.HandlerFunc(http.MethodGet, "/comparisons/:id", cmpHandler.Get)

	return wrap(router,
		requestID,
		withLogger(logger),
		accessLog,
		recoverPanics,
	)
}
