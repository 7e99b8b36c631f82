// atlasctl seeds or migrates the durable content store from the command
// line, for operators who would rather not expose the admin HTTP
// endpoints.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/studyatlas/studyatlas/pkg/config"
	"github.com/studyatlas/studyatlas/pkg/observability"
	"github.com/studyatlas/studyatlas/pkg/seed"
	"github.com/studyatlas/studyatlas/pkg/storage"
	"github.com/studyatlas/studyatlas/pkg/storage/postgres"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: atlasctl <command> [flags]

Commands:
  seed      Reset the durable store and insert the dataset
  migrate   Copy dataset entities absent from the durable store

Flags:
  -data string   Path to a YAML dataset file (default: built-in dataset)

Configuration is read from ATLAS_* environment variables; at minimum
ATLAS_POSTGRES_URL must be set.
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to a YAML dataset file")
	fs.Parse(os.Args[2:])

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Storage.PostgresURL == "" {
		log.Fatal("ATLAS_POSTGRES_URL must be set")
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stderr)
	ctx := context.Background()

	dataset := seed.DefaultDataset()
	if *dataPath != "" {
		dataset, err = seed.LoadDataset(*dataPath)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
	}

	durable := postgres.New(cfg.Storage)
	defer durable.Close()
	if err := durable.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to set up schema: %v", err)
	}

	switch command {
	case "seed":
		if err := seed.Populate(ctx, durable, dataset, logger); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("seeded %d entities\n", dataset.Count())

	case "migrate":
		source := storage.NewMemory()
		if err := seed.Populate(ctx, source, dataset, logger); err != nil {
			log.Fatalf("Failed to stage dataset: %v", err)
		}
		report, err := seed.NewMigrator(source, durable, logger).Run(ctx)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))

	default:
		usage()
	}
}
