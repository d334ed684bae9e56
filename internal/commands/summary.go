package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// printSummary renders one row per built version:
// VERSION | STATUS | CLASSES | WARNINGS | ERROR
func printSummary(out io.Writer, results []buildResult) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"VERSION", "STATUS", "CLASSES", "WARNINGS", "ERROR"})
	table.SetAutoWrapText(false)

	failed := 0

	for _, r := range results {
		status := "ok"
		errText := ""

		switch {
		case r.err != nil:
			status = "failed"
			errText = firstLine(r.err.Error())
			failed++
		case r.skipped:
			status = "cached"
		}

		table.Append([]string{
			r.label,
			status,
			fmt.Sprint(r.classes),
			fmt.Sprint(r.warnings),
			errText,
		})
	}

	table.Render()

	fmt.Fprintf(out, "%d of %d versions built\n", len(results)-failed, len(results))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
