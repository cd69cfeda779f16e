package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/algotrace/internal/replay"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// writeText renders the narrated run: a heading per operation with its
// numbered steps, the final projection as a table, and a summary line.
// Honors the color.NoColor global the CLI toggles.
func writeText(w io.Writer, rec *replay.Recording) error {
	heading := color.New(color.FgCyan, color.Bold)
	summary := color.New(color.FgGreen)

	fmt.Fprintf(w, "%s (capacity %d)\n", rec.Structure, rec.Capacity)

	for idx, op := range rec.Operations {
		heading.Fprintf(w, "\n#%d %s\n", idx+1, op)

		for stepIdx, st := range rec.Traces[idx] {
			fmt.Fprintf(w, "  %2d. %s\n", stepIdx+1, st.Description)
		}
	}

	if len(rec.FinalProjection.Elements) == 0 {
		fmt.Fprintf(w, "\nProjection: (empty)\n")
	} else {
		fmt.Fprintf(w, "\nProjection:\n%s\n", projectionTable(rec.FinalProjection))
	}

	summary.Fprintf(w, "\n%s operations, %s steps%s\n",
		humanize.Comma(int64(len(rec.Operations))),
		humanize.Comma(int64(rec.Stats.TotalSteps)),
		finalSize(rec.Stats))

	return nil
}

// projectionTable lays the final projection out with go-pretty, one row per
// drawable slot.
func projectionTable(projection viz.RenderState) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"#", "VALUE", "LABEL", "SUBLABEL", "STATE"})

	for idx, element := range projection.Elements {
		tbl.AppendRow(table.Row{idx, element.Value, element.Label, element.Sublabel, element.State.String()})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d elements, %d edges",
		len(projection.Elements), len(projection.Connections))})

	return tbl.Render()
}

func finalSize(stats replay.Stats) string {
	if len(stats.SizeAfter) == 0 {
		return ""
	}

	return fmt.Sprintf(", final size %d", stats.SizeAfter[len(stats.SizeAfter)-1])
}
