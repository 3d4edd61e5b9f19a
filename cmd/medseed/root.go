package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/medseed/internal/config"
	"github.com/gyeh/medseed/internal/logging"
	"github.com/gyeh/medseed/internal/seederr"
)

var (
	// cfg is the resolved configuration the subcommands run with.
	cfg = config.Default()
	// flagCfg receives raw flag values; only flags set on the command line
	// are copied into cfg.
	flagCfg = config.Default()

	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "medseed",
	Short: "Synthetic healthcare dataset seeder for Postgres",
	Long: "Generates facilities, departments, providers, patients and medical records with " +
		"valid foreign keys and loads them into Postgres with chunked multi-row inserts.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: resolveConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file")
	pf.StringVar(&flagCfg.DSN, "dsn", "", "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&flagCfg.LogFormat, "log-format", flagCfg.LogFormat, "Log format: text or json")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return seederr.Wrap(seederr.ErrConfiguration, err)
	})
}

// addRunFlags registers the generation flags shared by seed, plan and export.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&flagCfg.Facilities, "facilities", flagCfg.Facilities, "Number of facilities")
	f.IntVar(&flagCfg.Departments, "departments", flagCfg.Departments, "Number of departments (at most one per catalog name)")
	f.IntVar(&flagCfg.Providers, "providers", flagCfg.Providers, "Number of healthcare providers")
	f.IntVar(&flagCfg.Patients, "patients", flagCfg.Patients, "Number of patients")
	f.IntVar(&flagCfg.RecordsPerPatient, "records-per-patient", flagCfg.RecordsPerPatient, "Medical records per patient")
	f.IntVar(&flagCfg.MaxRowsPerChunk, "max-rows-per-chunk", flagCfg.MaxRowsPerChunk, "Rows per INSERT statement")
	f.Uint64Var(&flagCfg.Seed, "seed", flagCfg.Seed, "Random seed (0 = time based)")
}

// resolveConfig layers defaults, the YAML file, the environment and finally
// explicitly set flags into cfg.
func resolveConfig(cmd *cobra.Command, _ []string) error {
	c := config.Default()
	if cfgFile != "" {
		if err := c.LoadFromFile(cfgFile); err != nil {
			return err
		}
	}
	if err := c.LoadFromEnv(); err != nil {
		return err
	}

	fs := cmd.Flags()
	for name, apply := range map[string]func(){
		"dsn":                 func() { c.DSN = flagCfg.DSN },
		"log-format":          func() { c.LogFormat = flagCfg.LogFormat },
		"facilities":          func() { c.Facilities = flagCfg.Facilities },
		"departments":         func() { c.Departments = flagCfg.Departments },
		"providers":           func() { c.Providers = flagCfg.Providers },
		"patients":            func() { c.Patients = flagCfg.Patients },
		"records-per-patient": func() { c.RecordsPerPatient = flagCfg.RecordsPerPatient },
		"max-rows-per-chunk":  func() { c.MaxRowsPerChunk = flagCfg.MaxRowsPerChunk },
		"seed":                func() { c.Seed = flagCfg.Seed },
		"record-workers":      func() { c.RecordWorkers = flagCfg.RecordWorkers },
		"atomic-batches":      func() { c.AtomicBatches = flagCfg.AtomicBatches },
		"max-conns":           func() { c.MaxConns = flagCfg.MaxConns },
		"progress-every":      func() { c.ProgressEvery = flagCfg.ProgressEvery },
		"out":                 func() { c.ExportPath = flagCfg.ExportPath },
	} {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			apply()
		}
	}

	cfg = c
	return nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return logging.New(rootCmd.ErrOrStderr(), cfg.LogFormat, level)
}
