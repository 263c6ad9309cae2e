package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfit/assembly"
	"github.com/katalvlaran/lvfit/fit"
	"github.com/katalvlaran/lvfit/internal/logger"
	"github.com/katalvlaran/lvfit/internal/plotting"
	"github.com/katalvlaran/lvfit/problem"
)

type fitFlags struct {
	method   string
	maxEvals int
	starts   int
	seed     uint64
	timeout  time.Duration
	plot     string
	format   string
}

func fitCmd() *cobra.Command {
	var f fitFlags

	c := &cobra.Command{
		Use:   "fit <problem.yaml>",
		Short: "Fit a problem file and print the parameters with uncertainties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if f.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, f.timeout)
				defer cancel()
			}

			p, err := problem.Load(args[0], assembly.WithLogger(logger.L()))
			if err != nil {
				return err
			}

			// flags override the problem file
			opts := p.Fit.Options()
			if cmd.Flags().Changed("method") {
				opts = append(opts, fit.WithMethod(f.method))
			}
			if cmd.Flags().Changed("max-evals") {
				opts = append(opts, fit.WithMaxEvaluations(f.maxEvals))
			}
			if cmd.Flags().Changed("starts") {
				opts = append(opts, fit.WithStarts(f.starts))
			}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, fit.WithSeed(f.seed))
			}
			opts = append(opts, fit.WithLogger(logger.L()))

			res, err := fit.Run(ctx, p.Assembly, opts...)
			if err != nil && !errors.Is(err, fit.ErrNotConverged) {
				return err
			}
			runErr := err

			if f.plot != "" {
				series := make([]plotting.Series, len(p.Data))
				for i, d := range p.Data {
					fn, _ := p.Assembly.Fitness(i)
					series[i] = plotting.FromData(fn.Name(), d)
				}
				if err := plotting.Save(f.plot, displayName(p), series, plotting.DefaultWidth, plotting.DefaultHeight); err != nil {
					return err
				}
				logger.L().Info("plot written", "path", f.plot)
			}

			if err := printResult(cmd.OutOrStdout(), displayName(p), res, f.format); err != nil {
				return err
			}
			return runErr
		},
	}

	c.Flags().StringVarP(&f.method, "method", "m", fit.DefaultMethod, "minimizer (see 'lvfit models')")
	c.Flags().IntVar(&f.maxEvals, "max-evals", fit.DefaultMaxEvaluations, "cost evaluations per start")
	c.Flags().IntVar(&f.starts, "starts", 1, "number of start points")
	c.Flags().Uint64Var(&f.seed, "seed", 1, "seed for random start points")
	c.Flags().DurationVar(&f.timeout, "timeout", 0, "abort the fit after this long (0 = no limit)")
	c.Flags().StringVar(&f.plot, "plot", "", "write data and theory to this image (.png, .svg, .pdf)")
	c.Flags().StringVar(&f.format, "format", "pretty", "output format: pretty|json")
	return c
}

func printResult(w io.Writer, name string, res *fit.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newJSONResult(res))
	case "pretty", "":
		printPrettyResult(w, name, res)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyResult(w io.Writer, name string, res *fit.Result) {
	fmt.Fprintf(w, "Problem:   %s\n", name)
	fmt.Fprintf(w, "Run ID:    %s\n", res.ID)
	fmt.Fprintf(w, "Method:    %s (%d start(s), %s)\n", res.Method, res.Starts, res.Status)
	fmt.Fprintf(w, "Chisq:     %.6g (reduced %.6g, dof %d)\n", res.Chisq, res.ReducedChisq, res.DegreesOfFreedom)
	if res.Cost != res.Chisq {
		fmt.Fprintf(w, "Cost:      %.6g\n", res.Cost)
	}
	fmt.Fprintf(w, "Evals:     %d in %s\n", res.Evaluations, res.Runtime.Round(time.Millisecond))
	fmt.Fprintln(w)

	for i, p := range res.Parameters {
		fmt.Fprintf(w, "  %-20s %-18s in %s\n", p.Name, fit.FormatUncertainty(p.Value, res.Stderr[i]), p.Range)
	}
	for _, p := range res.Computed {
		fmt.Fprintf(w, "  %-20s %-18.6g computed\n", p.Name, p.Value)
	}
}

type jsonParameter struct {
	Name   string   `json:"name"`
	Value  float64  `json:"value"`
	Stderr *float64 `json:"stderr,omitempty"`
	Text   string   `json:"text"`
}

type jsonResult struct {
	ID               string          `json:"id"`
	Method           string          `json:"method"`
	Status           string          `json:"status"`
	Converged        bool            `json:"converged"`
	Chisq            float64         `json:"chisq"`
	Cost             float64         `json:"cost"`
	ReducedChisq     float64         `json:"reduced_chisq"`
	DegreesOfFreedom int             `json:"dof"`
	Evaluations      int64           `json:"evaluations"`
	RuntimeMS        int64           `json:"runtime_ms"`
	Parameters       []jsonParameter `json:"parameters"`
	Computed         []jsonParameter `json:"computed"`
}

// newJSONResult drops non-finite uncertainties, which JSON cannot carry.
func newJSONResult(res *fit.Result) jsonResult {
	out := jsonResult{
		ID:               res.ID.String(),
		Method:           res.Method,
		Status:           res.Status,
		Converged:        res.Converged,
		Chisq:            res.Chisq,
		Cost:             res.Cost,
		ReducedChisq:     res.ReducedChisq,
		DegreesOfFreedom: res.DegreesOfFreedom,
		Evaluations:      res.Evaluations,
		RuntimeMS:        res.Runtime.Milliseconds(),
		Parameters:       make([]jsonParameter, len(res.Parameters)),
		Computed:         make([]jsonParameter, len(res.Computed)),
	}
	for i, p := range res.Parameters {
		jp := jsonParameter{Name: p.Name, Value: p.Value, Text: fit.FormatUncertainty(p.Value, res.Stderr[i])}
		if s := res.Stderr[i]; !math.IsNaN(s) && !math.IsInf(s, 0) {
			jp.Stderr = &s
		}
		out.Parameters[i] = jp
	}
	for i, p := range res.Computed {
		out.Computed[i] = jsonParameter{Name: p.Name, Value: p.Value, Text: fmt.Sprintf("%.6g", p.Value)}
	}

	return out
}
