package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfit/expression"
	"github.com/katalvlaran/lvfit/internal/logger"
	"github.com/katalvlaran/lvfit/problem"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <problem.yaml>",
		Short: "Validate a problem file and its constraints without fitting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}

			root := p.Assembly.ParameterSet()
			root.SetPrefix("")
			if err := expression.Check(root.Flatten(), root.GatherContext()); err != nil {
				return err
			}
			logger.L().Debug("check: constraints compiled", "problem", p.Name)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d part(s)\n", displayName(p), p.Assembly.Len())
			for _, par := range root.Flatten() {
				fmt.Fprintf(w, "  %-8s %s\n", par.Status(), par)
			}
			return nil
		},
	}
}

func displayName(p *problem.Problem) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Path
}
