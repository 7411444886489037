package main

import (
	"context"
	"distance-compare-service/internal/app"
	"distance-compare-service/internal/config"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	list := flag.Int("list", 0, "print the N most recent comparisons after initializing the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := config.Get("DB_DRIVER", "sqlite")
	dsn := config.Get("DB_PATH", "data/app.db")
	if driver == "postgres" {
		dsn = config.Get("DATABASE_URL", "")
		if dsn == "" {
			log.Fatal("DATABASE_URL is required")
		}
	}

	ctx := context.Background()

	log.Println("Initializing database schema...")
	conn, repo, err := app.OpenRepository(ctx, driver, dsn)
	if err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	defer conn.Close()
	log.Println("Schema ready.")

	if *list <= 0 {
		return
	}

	cs, err := repo.ListComparisons(ctx, *list)
	if err != nil {
		log.Fatalf("list comparisons failed: %v", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tBEST")
	for _, c := range cs {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.CreatedAt.Format(time.RFC3339), c.Best)
	}
	tw.Flush()
}
