// Package cli implements the lvfit command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfit/internal/logger"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	var (
		debug     bool
		logFormat string
	)

	cmd := &cobra.Command{
		Use:           "lvfit",
		Short:         "Constrained multi-model least-squares fitting",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Setup(logger.Config{Debug: debug, Format: logFormat})
		},
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log encoding: text|json")

	cmd.AddCommand(fitCmd(), checkCmd(), modelsCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lvfit version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "lvfit %s\n", Version)
			return err
		},
	}
}
