package reporting

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/helioswap/qa-acceptor/types"
)

// PrintSummaryTable renders the run report as a table, colored by the run
// classification, with a footer carrying the aggregate counts.
func PrintSummaryTable(out io.Writer, summary *types.RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("QA Suite Results — %s (%s)", summary.Environment, formatDuration(summary.Duration)))

	t.AppendHeader(table.Row{"Category", "Critical", "Duration", "Status", "Error"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Category", WidthMax: 30},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Error", WidthMax: 60},
	})

	for _, r := range summary.Results {
		t.AppendRow(table.Row{
			r.Name,
			boolMark(r.Critical),
			formatDuration(r.Duration),
			statusString(r.Success),
			r.Error,
		})
	}

	switch summary.Classification {
	case types.ClassAllPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.ClassNonCriticalFailure:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL %d", summary.Stats.Total),
		fmt.Sprintf("crit fail %d", summary.Stats.CriticalFailed),
		formatDuration(summary.Duration),
		fmt.Sprintf("%d passed / %d failed", summary.Stats.Passed, summary.Stats.Failed),
		string(summary.Classification),
	})

	t.Render()
}

// PrintCategoryResult renders the outcome of a single --suite invocation.
func PrintCategoryResult(out io.Writer, result types.CategoryResult) {
	fmt.Fprintf(out, "category %s: %s (%s)\n", result.Name, statusString(result.Success), formatDuration(result.Duration))
	if result.Error != "" {
		fmt.Fprintf(out, "  error: %s\n", result.Error)
	}
	if !result.Success && result.Output != "" {
		fmt.Fprintf(out, "  output:\n%s\n", result.Output)
	}
}

func statusString(success bool) string {
	if success {
		return "✓ pass"
	}
	return "✗ fail"
}

func boolMark(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
