package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sampleset/preset"
	"sampleset/sample"
	"sampleset/selection"
)

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetList,
}

var presetInfoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Display info about a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetInfo,
}

var presetCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new preset",
	Long: `Lists the sample library with an index per sample, then asks for one
index per slot. Input that is not a valid index leaves the slot empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetCreate,
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a preset",
	Long:  `Deletes every preset with the given name.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetDelete,
}

func runPresetList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, s := range presetManager().List() {
		fmt.Fprintf(out, "%s: %q\n", s.Name, s.Samples)
	}
	return nil
}

func runPresetInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, err := presetManager().Info(args[0])
	if errors.Is(err, preset.ErrNotFound) {
		fmt.Fprintf(out, "preset %q not found\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", s.Name)
	for i, name := range s.Samples {
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(out, "  %d: %s\n", i+1, name)
	}
	return nil
}

func runPresetCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	ids := sample.Scan(cfg.SamplesDir, logger).Names()
	logger.Debug("discovered samples", zap.String("root", cfg.SamplesDir), zap.Int("count", len(ids)))

	s := selection.Build(name, ids, selection.NewLineReader(cmd.InOrStdin()), cmd.OutOrStdout())
	if err := presetManager().Add(s); err != nil {
		return fmt.Errorf("save preset %q: %w", name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved preset %s: %q\n", s.Name, s.Samples)
	return nil
}

func runPresetDelete(cmd *cobra.Command, args []string) error {
	if err := presetManager().Remove(args[0]); err != nil {
		return fmt.Errorf("delete preset %q: %w", args[0], err)
	}
	return nil
}
