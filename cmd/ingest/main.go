package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/IH-honnette/urban-mobility-summatives/internal/config"
	"github.com/IH-honnette/urban-mobility-summatives/internal/database"
	"github.com/IH-honnette/urban-mobility-summatives/internal/pipeline"
)

func main() {
	cfg := config.Load()

	file := flag.String("file", cfg.IngestFile, "raw trip CSV to ingest")
	maxRecords := flag.Int("max", cfg.MaxRecords, "max records to ingest (0 = all)")
	flag.Parse()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open input file:", err)
	}
	defer f.Close()

	records, err := pipeline.ReadRawRecords(f, *maxRecords)
	if err != nil {
		log.Fatal("Failed to read raw records:", err)
	}
	log.Printf("Loaded %d raw records from %s", len(records), *file)

	db, err := database.Init(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	orchestrator := pipeline.NewOrchestrator(db, cfg, nil)
	summary, err := orchestrator.Run(context.Background(), records)
	if err != nil {
		log.Fatal("Ingestion failed:", err)
	}

	fmt.Printf("Run %s completed in %.2fs\n", summary.RunID, summary.DurationSeconds)
	fmt.Printf("  records:  %d\n", summary.TotalRecords)
	fmt.Printf("  accepted: %d\n", summary.Accepted)
	fmt.Printf("  rejected: %d\n", summary.Rejected)

	reasons := make([]string, 0, len(summary.RejectedByReason))
	for reason := range summary.RejectedByReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("    %-20s %d\n", reason, summary.RejectedByReason[reason])
	}

	fmt.Printf("  vendors created: %d\n", summary.VendorsCreated)
	fmt.Printf("  zones created:   %d\n", summary.ZonesCreated)
}
