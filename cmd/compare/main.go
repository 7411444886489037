package main

import (
	"context"
	"distance-compare-service/internal/api/dto"
	"distance-compare-service/internal/app"
	"distance-compare-service/internal/config"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/obs"
	"distance-compare-service/internal/ports"
	"distance-compare-service/internal/services"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/joho/godotenv"
)

// compare runs one destination comparison from a JSON file shaped like the
// POST /comparisons body and prints the result tables.
func main() {
	input := flag.String("input", "", "path to a JSON file with origins and destinations")
	save := flag.Bool("save", false, "store the comparison in the configured database")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := obs.NewLogger(os.Stderr, cfg.LogLevel)
	ctx, cancel := signal.NotifyContext(obs.WithLogger(context.Background(), logger), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, *input, *save, os.Stdout); err != nil {
		logger.Error("compare failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, path string, save bool, out io.Writer) error {
	req, err := readRequest(path)
	if err != nil {
		return err
	}

	aggregator, err := app.NewAggregator(cfg)
	if err != nil {
		return err
	}

	var repo ports.ComparisonRepository
	if save {
		conn, r, err := app.OpenRepository(ctx, cfg.DBDriver, cfg.DSN())
		if err != nil {
			return err
		}
		defer conn.Close()
		repo = r
	}

	c, err := services.CompareDestinations(ctx, req, aggregator, repo)
	if err != nil {
		return err
	}

	return printComparison(out, c)
}

func readRequest(path string) (services.CompareRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return services.CompareRequest{}, fmt.Errorf("read input %q: %w", path, err)
	}

	var in dto.CompareRequest
	if err := json.Unmarshal(b, &in); err != nil {
		return services.CompareRequest{}, fmt.Errorf("parse input %q: %w", path, err)
	}

	req := services.CompareRequest{}
	for _, l := range in.Origins {
		req.Origins = append(req.Origins, domain.NamedLocation{Name: l.Name, Address: l.Address})
	}
	for _, l := range in.Destinations {
		req.Destinations = append(req.Destinations, domain.NamedLocation{Name: l.Name, Address: l.Address})
	}
	return req, nil
}

func printComparison(w io.Writer, c *domain.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ORIGIN\tDESTINATION\tDISTANCE (km)\tDURATION (min)")
	for _, d := range c.Details {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\n", d.Origin, d.Destination, d.DistanceKm, d.DurationMin)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "DESTINATION\tTOTAL DISTANCE (km)\tTOTAL DURATION (min)")
	for _, s := range c.Summaries {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\n", s.Destination, s.TotalDistanceKm, s.TotalDurationMin)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("print comparison: %w", err)
	}

	for _, e := range c.Errors {
		fmt.Fprintf(w, "error: %s\n", e.Message)
	}

	if c.Best != "" {
		fmt.Fprintf(w, "\nbest destination: %s\n", c.Best)
	} else {
		fmt.Fprintln(w, "\nno destination could be compared")
	}
	if c.ID != 0 {
		fmt.Fprintf(w, "saved as comparison %d\n", c.ID)
	}
	return nil
}
