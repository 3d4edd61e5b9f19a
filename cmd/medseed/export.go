package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/parquetout"
	"github.com/gyeh/medseed/internal/seed"
	"github.com/gyeh/medseed/internal/seederr"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write generated medical records to a Parquet file instead of the database",
	RunE:  runExport,
}

func init() {
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVar(&flagCfg.ExportPath, "out", "", "Output Parquet file (or set MEDSEED_EXPORT_PATH)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ctx := cmd.Context()

	if cfg.ExportPath == "" {
		return seederr.Configf("--out is required")
	}

	w, err := parquetout.Create(cfg.ExportPath)
	if err != nil {
		return err
	}
	written, err := seed.Export(ctx, log, &cfg, w)
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err == nil && w.Rows() != written {
		err = fmt.Errorf("export: writer holds %d rows, generated %d", w.Rows(), written)
	}
	if err != nil {
		if rmErr := os.Remove(cfg.ExportPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			log.Warn().Err(rmErr).Str("path", cfg.ExportPath).Msg("remove incomplete export")
		}
		return err
	}

	st, err := parquetout.Verify(cfg.ExportPath)
	if err != nil {
		return fmt.Errorf("export verification: %w", err)
	}
	if st.Rows != written {
		return fmt.Errorf("export verification: file has %d rows, wrote %d", st.Rows, written)
	}

	sha, err := parquetout.FileSHA256(cfg.ExportPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Export complete: %d medical records written to %s\n", written, cfg.ExportPath)
	for _, rt := range model.AllRecordTypes {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-13s %d\n", rt, st.ByType[rt])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "SHA-256: %s\n", sha)
	return nil
}
