package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vetter/internal/config"
	"vetter/internal/logging"
)

// errRejected marks a check that ran but answered false.
var errRejected = errors.New("rejected")

var (
	cfg    config.Config
	logger = zap.NewNop()
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vetter",
		Short:         "Classify strings, user agents and scroll positions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return err
			}
			logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.AddCommand(
		newServeCmd(),
		newCheckCmd(),
		newKindsCmd(),
		newDeviceCmd(),
		newStyleCmd(),
		newProbeCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "vetter:", err)
		}
		os.Exit(1)
	}
}
