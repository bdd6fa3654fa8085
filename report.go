package berth

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	reportHeader  = color.New(color.FgRed, color.Bold)
	reportKind    = color.New(color.FgYellow)
	reportService = color.New(color.FgCyan)
)

// WriteReport writes findings as a human-readable startup report. Colors are
// applied when the output is a terminal (see color.NoColor).
//
//	2 dependency findings
//	  missing_dependency   *app.Handler: depends on unregistered *app.Cache
//	  cyclic_dependency    *app.A: *app.A -> *app.B -> *app.A
func WriteReport(w io.Writer, findings []ValidationError) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "no dependency findings")

		return err
	}

	noun := "findings"
	if len(findings) == 1 {
		noun = "finding"
	}

	if _, err := reportHeader.Fprintf(w, "%d dependency %s\n", len(findings), noun); err != nil {
		return err
	}

	for _, f := range findings {
		detail := "depends on unregistered " + f.Dependency.String()
		if f.Kind == KindCyclicDependency {
			detail = formatPath(f.Path)
		}

		_, err := fmt.Fprintf(w, "  %s %s: %s\n",
			reportKind.Sprintf("%-20s", f.Kind),
			reportService.Sprint(f.Service.String()),
			detail,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
