package report

import (
	"encoding/json"
	"io"

	"github.com/yayaa/chronolint/pkg/rule"
)

type JSONReporter struct{}

type jsonDiagnostic struct {
	Rule     string   `json:"rule"`
	Category string   `json:"category"`
	Severity string   `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Fix      *jsonFix `json:"fix,omitempty"`
}

type jsonFix struct {
	Message     string `json:"message"`
	Replacement string `json:"replacement"`
}

func (r *JSONReporter) Report(w io.Writer, diagnostics []rule.Diagnostic) error {
	out := make([]jsonDiagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		jd := jsonDiagnostic{
			Rule:     d.Rule,
			Category: d.Category.String(),
			Severity: d.Severity.String(),
			File:     d.Pos.Filename,
			Line:     d.Pos.Line,
			Column:   d.Pos.Column,
			Message:  d.Message,
		}
		if d.Fix != nil && len(d.Fix.Edits) == 1 {
			jd.Fix = &jsonFix{
				Message:     d.Fix.Message,
				Replacement: d.Fix.Edits[0].NewText,
			}
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
