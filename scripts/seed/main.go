package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/seed"
)

// Loads the demo catalogue into the database named by DB_URI and DB_NAME. Collections
// that already hold documents are left alone.
// Usage: go run ./scripts/seed
func main() {
	conf := config.New()
	if conf.URL == "" {
		fmt.Println("DB_URI is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := databases.NewClient(conf)
	if err != nil {
		zap.S().Fatalw("failed to create client", "error", err)
	}
	if err := client.Connect(ctx); err != nil {
		zap.S().Fatalw("failed to connect to database", "error", err)
	}
	defer client.Disconnect(context.Background())

	report, err := seed.Run(ctx, databases.NewDatabase(conf, client))
	if err != nil {
		zap.S().Fatalw("seed failed", "error", err)
	}

	fmt.Printf("Seeded %d documents into %s\n", report.Total(), conf.DatabaseName)
	fmt.Printf("  destinations:     %d\n", report.Destinations)
	fmt.Printf("  experience types: %d\n", report.ExperienceTypes)
	fmt.Printf("  experiences:      %d\n", report.Experiences)
	fmt.Printf("  hotels:           %d\n", report.Hotels)
	fmt.Printf("  tours:            %d\n", report.Tours)
	fmt.Printf("  tour requests:    %d\n", report.TourRequests)
}
