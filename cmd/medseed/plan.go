package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/model"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry run: show row counts and insert chunking (no database access)",
	RunE:  runPlan,
}

func init() {
	addRunFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	printPlan(cmd.OutOrStdout())
	return nil
}

func printPlan(w io.Writer) {
	counts := []struct {
		table  model.Table
		rows   int64
		chunks int64
	}{
		{model.FacilitiesTable, int64(cfg.Facilities), int64(db.ChunkCount(cfg.Facilities, cfg.MaxRowsPerChunk))},
		{model.DepartmentsTable, int64(cfg.Departments), int64(db.ChunkCount(cfg.Departments, cfg.MaxRowsPerChunk))},
		{model.ProvidersTable, int64(cfg.Providers), int64(db.ChunkCount(cfg.Providers, cfg.MaxRowsPerChunk))},
		{model.PatientsTable, int64(cfg.Patients), int64(db.ChunkCount(cfg.Patients, cfg.MaxRowsPerChunk))},
		// Records are chunked per patient.
		{model.MedicalRecordsTable, cfg.TotalRecords(),
			int64(cfg.Patients) * int64(db.ChunkCount(cfg.RecordsPerPatient, cfg.MaxRowsPerChunk))},
	}

	fmt.Fprintln(w, "=== medseed plan ===")
	fmt.Fprintf(w, "Max rows per chunk: %d\n", cfg.MaxRowsPerChunk)
	fmt.Fprintf(w, "Records per patient: %d\n", cfg.RecordsPerPatient)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-22s %10s %8s %14s %10s\n", "table", "rows", "chunks", "params/chunk", "max rows")

	var totalRows, totalChunks, widest int64
	var widestTable string
	for _, c := range counts {
		chunkRows := min(int64(cfg.MaxRowsPerChunk), c.rows)
		if c.table.Name == model.MedicalRecordsTable.Name {
			chunkRows = min(int64(cfg.MaxRowsPerChunk), int64(cfg.RecordsPerPatient))
		}
		params := chunkRows * int64(len(c.table.Columns))
		fmt.Fprintf(w, "  %-22s %10d %8d %8d/%-5d %10d\n",
			c.table.Name, c.rows, c.chunks, params, db.MaxBindParams, db.MaxRowsFor(c.table))
		totalRows += c.rows
		totalChunks += c.chunks
		if params > widest {
			widest, widestTable = params, c.table.Name
		}
	}

	// Each parent stage is one transaction; records commit per chunk, or
	// per patient with atomic batches.
	txs := int64(len(counts)-1) + counts[len(counts)-1].chunks
	if cfg.AtomicBatches {
		txs = int64(len(counts)-1) + int64(cfg.Patients)
	}
	fmt.Fprintf(w, "\nTotal: %d rows in %d statements, %d transactions\n", totalRows, totalChunks, txs)
	fmt.Fprintf(w, "Parameter headroom: %s uses %d of %d per statement (%s)\n",
		widestTable, widest, db.MaxBindParams,
		color.GreenString("%.1f%%", 100*float64(widest)/float64(db.MaxBindParams)))
}
