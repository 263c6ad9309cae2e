package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/model"
)

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List model kinds and fit methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "models:  %s, sum\n", strings.Join(model.Kinds(), ", "))
			fmt.Fprintf(w, "methods: %s\n", strings.Join(fit.Methods(), ", "))
			return nil
		},
	}
}
