package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"job-authenticity/internal/app"
	"job-authenticity/internal/config"
	"job-authenticity/internal/domain/authenticity"
	"job-authenticity/internal/repository"
)

// Loads a JSON file of job records into the jobs table so a later batch
// run can score them. The file holds either a single record or an array.
func main() {
	file := flag.String("file", "", "path to a JSON file of job records")
	flag.Parse()

	if *file == "" {
		log.Fatalf("provide -file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	container, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		_ = container.Close()
	}()

	records, err := readRecords(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}
	if len(records) == 0 {
		log.Fatalf("no job records in %s", *file)
	}

	repo := repository.NewPostgresJobRepository(container.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stored := 0
	for _, rec := range records {
		if rec.JobID == "" {
			log.Printf("skipping record without job_id (title=%q)", rec.Title)
			continue
		}
		if err := repo.Upsert(ctx, rec); err != nil {
			log.Printf("upsert failed job_id=%s err=%v", rec.JobID, err)
			continue
		}
		stored++
	}

	log.Printf("ingest done | stored=%d skipped=%d", stored, len(records)-stored)
}

func readRecords(path string) ([]authenticity.JobRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var many []authenticity.JobRecord
	if err := json.Unmarshal(b, &many); err == nil {
		return many, nil
	}

	var one authenticity.JobRecord
	if err := json.Unmarshal(b, &one); err != nil {
		return nil, err
	}
	return []authenticity.JobRecord{one}, nil
}
