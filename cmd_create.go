package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sampleset/device"
	"sampleset/preset"
	"sampleset/sample"
	"sampleset/selection"
)

var (
	pushDir    string
	pushS3     bool
	pushPrefix string
	setName    string
)

var createCmd = &cobra.Command{
	Use:   "create [preset]",
	Short: "Creates a sample set and pushes it to the SD card",
	Long: `Pushes the 8 samples of a set to external storage, one file per slot
named NN_<sample>.

With a preset name the stored preset is pushed. Without one the set is built
interactively and pushed without being saved.

Examples:
  sampleset create drums --to /media/sdcard
  sampleset create --s3 --prefix live/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	target, err := pushTarget()
	if err != nil {
		return err
	}

	lib := sample.Scan(cfg.SamplesDir, logger)

	var set preset.SampleSet
	if len(args) == 1 {
		set, err = presetManager().Info(args[0])
		if err != nil {
			return err
		}
	} else {
		set = selection.Build(setName, lib.Names(), selection.NewLineReader(cmd.InOrStdin()), cmd.OutOrStdout())
	}

	ctx, cancel := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rep, err := device.Push(ctx, target, set, lib, logger)
	if err != nil {
		return err
	}
	logger.Info("set pushed", zap.String("name", set.Name), zap.Int("pushed", len(rep.Pushed)))

	out := cmd.OutOrStdout()
	for _, key := range rep.Pushed {
		fmt.Fprintf(out, "pushed %s\n", key)
	}
	for _, name := range rep.Missing {
		fmt.Fprintf(out, "missing %s\n", name)
	}
	return nil
}

func pushTarget() (device.Target, error) {
	switch {
	case pushDir != "" && pushS3:
		return nil, errors.New("use either --to or --s3, not both")
	case pushDir != "":
		return device.DirTarget{Dir: pushDir}, nil
	case pushS3:
		if !cfg.S3.Enabled() {
			return nil, errors.New("s3 is not configured: set SAMPLESET_S3_ENDPOINT and SAMPLESET_S3_BUCKET")
		}
		t, err := device.NewS3Target(device.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Prefix:    pushPrefix,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, errors.New("no push target: use --to <dir> or --s3")
	}
}

// contextOrBackground guards direct calls to run functions in tests, where
// cobra has not set a context.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
