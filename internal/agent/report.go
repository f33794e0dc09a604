// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// WriteReport encodes run as YAML to w.
func WriteReport(w io.Writer, run *types.PipelineRun) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(run); err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}
	return enc.Close()
}

// SaveReport writes the YAML run report to path.
func SaveReport(path string, run *types.PipelineRun) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := WriteReport(f, run); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Summary prints one line per task with its state and duration.
func Summary(w io.Writer, run *types.PipelineRun) {
	fmt.Fprintf(w, "Run %s\n", run.ID)
	for _, t := range run.Tasks {
		line := fmt.Sprintf("  %-12s %-9s %6.1fs  sources=%d", t.Role, t.State, t.Duration.Seconds(), t.Sources)
		if t.Error != "" {
			line += "  error: " + t.Error
		}
		fmt.Fprintln(w, line)
	}
}
