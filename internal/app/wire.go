// Package app assembles the concrete adapters behind the service ports.
// Both the HTTP server and the CLI build their pipeline here.
package app

import (
	"context"
	"database/sql"
	"distance-compare-service/internal/adapters/estimate"
	"distance-compare-service/internal/adapters/ncp"
	"distance-compare-service/internal/adapters/repositories"
	"distance-compare-service/internal/config"
	"distance-compare-service/internal/platform/db"
	"distance-compare-service/internal/ports"
	"distance-compare-service/internal/services"
	"fmt"
)

// NewAggregator wires the NCP geocoder, the configured route evaluator, and a
// process-wide memoizing resolver.
func NewAggregator(cfg config.Config) (*services.Aggregator, error) {
	client, err := ncp.NewClient(ncp.Options{
		APIKeyID:     cfg.APIKeyID,
		APIKey:       cfg.APIKey,
		GeocodeURL:   cfg.GeocodeURL,
		DirectionURL: cfg.DirectionURL,
		Interval:     cfg.RequestInterval,
		Timeout:      cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("new aggregator: %w", err)
	}

	evaluator, err := newEvaluator(cfg, client)
	if err != nil {
		return nil, fmt.Errorf("new aggregator: %w", err)
	}

	return services.NewAggregator(services.NewResolver(client), evaluator), nil
}

func newEvaluator(cfg config.Config, client *ncp.Client) (ports.RouteEvaluator, error) {
	switch cfg.RouteEvaluator {
	case config.EvaluatorNCP:
		return client, nil
	case config.EvaluatorHaversine:
		return estimate.NewHaversineEvaluator(0), nil
	default:
		return nil, fmt.Errorf("unknown route evaluator %q", cfg.RouteEvaluator)
	}
}

// OpenRepository opens the configured database, ensures the schema exists,
// and returns the comparison history repository. Callers close the *sql.DB.
func OpenRepository(ctx context.Context, driver, dsn string) (*sql.DB, *repositories.SQLComparisonRepository, error) {
	dialect, err := repositories.ParseDialect(driver)
	if err != nil {
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}

	return conn, repositories.NewSQLComparisonRepository(conn, dialect), nil
}
