package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/causalia/internal/logging"
	"github.com/ppiankov/causalia/internal/pipeline"
)

var (
	tablePath      string
	backgroundPath string
	concepts       []string
	outJSON        string
	timeout        time.Duration
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble <statements>",
	Short: "Fit a conditional distribution for every edge of a statement corpus",
	Long: `Assemble filters a statement corpus to well-grounded, simulable
statements, aggregates them into concept-pair edges and fits a circular
density over the joint direction of change for each edge.

Adjectives are mapped to response samples through --table (CSV or TSV with
adjective and respdev columns). Statements without a known adjective draw
from the background sample, read from --background or derived from the table.

Example:
  causalia assemble statements.json --table adjectives.csv
  causalia assemble statements.yaml --table adjectives.tsv --json report.json
  causalia assemble statements.json --background bg.txt --concepts rainfall,flooding`,
	Args: cobra.ExactArgs(1),
	RunE: runAssemble,
}

func init() {
	rootCmd.AddCommand(assembleCmd)

	flags := assembleCmd.Flags()

	// Input flags
	flags.StringVar(&tablePath, "table", "", "adjective response table (CSV or TSV)")
	flags.StringVar(&backgroundPath, "background", "", "background response sample, one value per line (default: derived from --table)")
	flags.StringSliceVar(&concepts, "concepts", nil, "only keep statements mentioning one of these concepts")

	// Output flags
	flags.StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	flags.Int("samples", 0, "angles sampled from each fitted edge into the report")

	// Fit flags
	flags.String("bandwidth", "scott", "bandwidth rule (scott, silverman)")
	flags.Int("workers", 0, "parallel edge fits (0 = one per CPU)")
	flags.Bool("fail-on-degenerate", false, "abort when an edge cannot be fitted instead of skipping it")
	flags.DurationVar(&timeout, "timeout", 5*time.Minute, "overall assembly timeout")

	_ = viper.BindPFlag("output.samples", flags.Lookup("samples"))
	_ = viper.BindPFlag("density.bandwidth", flags.Lookup("bandwidth"))
	_ = viper.BindPFlag("concurrency.workers", flags.Lookup("workers"))
	_ = viper.BindPFlag("fit.fail_on_degenerate", flags.Lookup("fail-on-degenerate"))
}

func runAssemble(cmd *cobra.Command, args []string) error {
	if tablePath == "" && backgroundPath == "" {
		return fmt.Errorf("at least one of --table or --background is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Statements: %s\n", args[0])
		fmt.Fprintf(os.Stderr, "Ontology: %s (cutoff %.2f)\n", cfg.Grounding.Ontology, cfg.Grounding.Cutoff)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintln(os.Stderr)
	}

	in, err := pipeline.LoadInputs(ctx, pipeline.InputPaths{
		Statements: args[0],
		Table:      tablePath,
		Background: backgroundPath,
	})
	if err != nil {
		return err
	}
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d statements, %d adjectives\n", len(in.Statements), len(in.Table))
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	report, err := p.Assemble(ctx, in, concepts)
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	if outJSON != "" {
		if err := pipeline.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if outJSON == "-" {
			return nil
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	pipeline.RenderSummary(cmd.OutOrStdout(), report)
	return nil
}
