package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load a synthetic dataset",
	RunE:  runSeed,
}

func init() {
	addRunFlags(seedCmd)
	f := seedCmd.Flags()
	f.IntVar(&flagCfg.RecordWorkers, "record-workers", flagCfg.RecordWorkers, "Patients whose records load concurrently")
	f.BoolVar(&flagCfg.AtomicBatches, "atomic-batches", false, "Commit each patient's records in one transaction instead of one per chunk")
	f.Int32Var(&flagCfg.MaxConns, "max-conns", 0, "Maximum pool connections (0 = pgx default)")
	f.IntVar(&flagCfg.ProgressEvery, "progress-every", flagCfg.ProgressEvery, "Log record progress every N patients (0 = off)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ctx := cmd.Context()

	if err := cfg.ValidateWithDSN(); err != nil {
		return err
	}

	pool, err := db.NewPool(ctx, cfg.DSN, cfg.MaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	summary, err := seed.Run(ctx, pool, log, &cfg)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}

func printSummary(w io.Writer, s *model.SeedSummary) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Seed complete (run %s)\n", s.RunID)
	fmt.Fprintf(w, "  facilities:           %d\n", s.Facilities)
	fmt.Fprintf(w, "  departments:          %d\n", s.Departments)
	fmt.Fprintf(w, "  healthcare_providers: %d\n", s.Providers)
	fmt.Fprintf(w, "  patients:             %d\n", s.Patients)
	fmt.Fprintf(w, "  medical_records:      %s\n", color.GreenString("%d", s.MedicalRecords))
	fmt.Fprintf(w, "  insert chunks:        %d\n", s.Chunks)
	fmt.Fprintf(w, "  time: schema %.1fs, parents %.1fs, records %.1fs, total %.1fs\n",
		s.DurationSchema.Seconds(), s.DurationParents.Seconds(),
		s.DurationRecords.Seconds(), s.DurationTotal.Seconds())
}
