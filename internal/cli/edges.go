package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/causalia/internal/pipeline"
)

// edgesCmd represents the edges command
var edgesCmd = &cobra.Command{
	Use:   "edges <statements>",
	Short: "List the edges a corpus aggregates into, without fitting",
	Long: `Edges runs grounding, filtering and aggregation only and prints every
non-empty concept-pair edge with its statement count.

Example:
  causalia edges statements.json --cutoff 0.6
  causalia edges statements.json --concepts rainfall`,
	Args: cobra.ExactArgs(1),
	RunE: runEdges,
}

var edgeConcepts []string

func init() {
	rootCmd.AddCommand(edgesCmd)
	edgesCmd.Flags().StringSliceVar(&edgeConcepts, "concepts", nil, "only keep statements mentioning one of these concepts")
}

func runEdges(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sts, err := pipeline.LoadStatements(args[0])
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, nil)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	pipeline.RenderEdges(cmd.OutOrStdout(), p.Select(sts, edgeConcepts))
	return nil
}
