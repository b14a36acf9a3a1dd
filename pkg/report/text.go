package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/yayaa/chronolint/pkg/rule"
)

var (
	posColor  = color.New(color.FgHiBlack)
	ruleColor = color.New(color.FgCyan)
	fixColor  = color.New(color.FgGreen)
	errColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	infoColor = color.New(color.FgCyan)
)

type TextReporter struct {
	Color bool
}

func (r *TextReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	for _, d := range diagnostics {
		if r.Color {
			_, _ = fmt.Fprintf(w, "%s: %s [%s] %s\n",
				posColor.Sprint(d.Pos),
				severityColor(d.Severity).Sprint(d.Severity),
				ruleColor.Sprint(d.Rule),
				d.Message,
			)
		} else {
			_, _ = fmt.Fprintf(w, "%s: %s [%s] %s\n",
				d.Pos, d.Severity, d.Rule, d.Message,
			)
		}
		if hint := fixHint(d); hint != "" {
			if r.Color {
				_, _ = fmt.Fprintln(w, fixColor.Sprint(hint))
			} else {
				_, _ = fmt.Fprintln(w, hint)
			}
		}
	}

	if len(diagnostics) > 0 {
		_, _ = fmt.Fprintf(w, "\n%d issue(s) found.\n", len(diagnostics))
	}

	return nil
}

func fixHint(d rule.Diagnostic) string {
	if d.Fix == nil || len(d.Fix.Edits) != 1 {
		return ""
	}
	return fmt.Sprintf("  fix: replace with %q", d.Fix.Edits[0].NewText)
}

func severityColor(s rule.Severity) *color.Color {
	switch s {
	case rule.SeverityError:
		return errColor
	case rule.SeverityWarning:
		return warnColor
	default:
		return infoColor
	}
}
