package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sampleset/config"
	"sampleset/preset"
)

var (
	// Global flags
	verbose     bool
	resourceDir string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sampleset",
	Short: "Manage 8-slot sample set presets",
	Long: `sampleset builds named sets of 8 samples from the sample library under
<res>/samples and keeps them as presets in <res>/presets.json.

The resource directory defaults to ./res and can be set with --res or
SAMPLESET_RESOURCE_DIR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(resourceDir)
		if err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = zapcore.InfoLevel
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Modify, list, and view presets",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&resourceDir, "res", "", "Resource directory (default: ./res)")

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetInfoCmd)
	presetCmd.AddCommand(presetCreateCmd)
	presetCmd.AddCommand(presetDeleteCmd)

	createCmd.Flags().StringVar(&pushDir, "to", "", "Directory to push the samples into (e.g. a mounted SD card)")
	createCmd.Flags().BoolVar(&pushS3, "s3", false, "Push to the configured S3 bucket")
	createCmd.Flags().StringVar(&pushPrefix, "prefix", "", "Key prefix inside the S3 bucket")
	createCmd.Flags().StringVar(&setName, "name", "unsaved", "Name for an interactively built set")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func presetManager() *preset.Manager {
	return preset.NewManager(cfg.PresetFile, logger)
}
