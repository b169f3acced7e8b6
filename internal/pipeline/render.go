package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/ppiankov/causalia/internal/model"
)

// WriteJSON encodes the report as indented JSON
func WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderJSON writes the report to path, or to stdout when path is "-"
func RenderJSON(report *model.Report, path string) (err error) {
	if path == "-" {
		return WriteJSON(os.Stdout, report)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close report: %w", closeErr)
		}
	}()

	return WriteJSON(f, report)
}

// RenderSummary prints a human-readable overview of the report
func RenderSummary(w io.Writer, report *model.Report) {
	c := report.Corpus
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "  Causal assembly (%s, cutoff %.2f, %s bandwidth)\n", report.Ontology, report.Cutoff, report.Bandwidth)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "Statements: %d read, %d modelable, %d well-grounded\n", c.Total, c.Modelable, c.Filtered)
	fmt.Fprintf(w, "Edges:      %d fitted, %d skipped\n\n", c.Fitted, c.Skipped)

	if len(report.Edges) == 0 {
		fmt.Fprintln(w, "No edges.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTARGET\tSTATEMENTS\tANGLES\tBANDWIDTH\tSTATUS")
	for _, e := range report.Edges {
		status := "ok"
		if e.Mirrored {
			status = "ok (mirrored)"
		}
		if e.Error != "" {
			status = "skipped: " + e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.4f\t%s\n",
			e.SourceLabel, e.TargetLabel, len(e.StatementIDs), e.Angles, e.Bandwidth, status)
	}
	_ = tw.Flush()
}

// RenderEdges prints the edges of a selection without fitting them
func RenderEdges(w io.Writer, sel *Selection) {
	c := sel.Stats
	fmt.Fprintf(w, "Statements: %d read, %d modelable, %d well-grounded\n", c.Total, c.Modelable, c.Filtered)
	fmt.Fprintf(w, "Concepts:   %d\n", len(sel.Concepts))
	fmt.Fprintf(w, "Edges:      %d\n\n", len(sel.Edges))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tTARGET\tSTATEMENTS")
	for _, e := range sel.Edges {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Source, e.Target, len(e.Statements))
	}
	_ = tw.Flush()
}
