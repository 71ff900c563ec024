package ui

import (
	"io"

	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/pterm/pterm"
)

// PlanRow is one line of the plan table
type PlanRow struct {
	Spec types.StageSpec

	// Status is "registered" or "missing" before a run, or the run outcome
	Status string
}

// RenderPlan writes the plan as a table
func RenderPlan(w io.Writer, rows []PlanRow, format Format) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "No stages.\n")
		return err
	}

	// pterm styles the header and separators on its own
	if format == FormatTerminal {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}

	data := pterm.TableData{{"#", "Stage", "Options", "Status"}}
	for i, row := range rows {
		status := row.Status
		if format == FormatTerminal {
			status = OutcomeStyle(row.Status).Sprint(row.Status)
		}
		data = append(data, []string{
			pterm.Sprint(i + 1),
			row.Spec.ID,
			formatOptions(row.Spec.Options),
			status,
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		WithWriter(w).
		Render()
}

func formatOptions(options types.Metadata) string {
	if len(options) == 0 {
		return "-"
	}
	out := ""
	for i, key := range options.Keys() {
		if i > 0 {
			out += ", "
		}
		out += key + "=" + pterm.Sprint(options[key])
	}
	return out
}
