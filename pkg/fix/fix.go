// Package fix applies suggested fixes to the files they name.
package fix

import (
	"fmt"
	"os"
	"sort"

	"github.com/yayaa/chronolint/pkg/rule"
)

// Apply rewrites files in place with every suggested fix attached to the
// diagnostics and returns the number of edits applied. Edits within a
// file must not overlap; an overlap aborts before the file is touched.
func Apply(diags []rule.Diagnostic) (int, error) {
	byFile := make(map[string][]rule.TextEdit)
	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		for _, e := range d.Fix.Edits {
			if e.Pos.Filename == "" || e.Pos.Filename != e.End.Filename {
				return 0, fmt.Errorf("fix from rule %s names no single file", d.Rule)
			}
			byFile[e.Pos.Filename] = append(byFile[e.Pos.Filename], e)
		}
	}

	paths := make([]string, 0, len(byFile))
	for path := range byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	applied := 0
	for _, path := range paths {
		edits := byFile[path]
		sort.Slice(edits, func(i, j int) bool {
			return edits[i].Pos.Offset < edits[j].Pos.Offset
		})
		for i := 1; i < len(edits); i++ {
			if edits[i].Pos.Offset < edits[i-1].End.Offset {
				return applied, fmt.Errorf("%s: overlapping fixes at offsets %d and %d",
					path, edits[i-1].Pos.Offset, edits[i].Pos.Offset)
			}
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return applied, fmt.Errorf("reading %s: %w", path, err)
		}

		// Splice from the end so earlier offsets stay valid.
		for i := len(edits) - 1; i >= 0; i-- {
			e := edits[i]
			if e.Pos.Offset < 0 || e.End.Offset > len(src) || e.Pos.Offset > e.End.Offset {
				return applied, fmt.Errorf("%s: fix span [%d:%d) out of range", path, e.Pos.Offset, e.End.Offset)
			}
			var buf []byte
			buf = append(buf, src[:e.Pos.Offset]...)
			buf = append(buf, e.NewText...)
			buf = append(buf, src[e.End.Offset:]...)
			src = buf
			applied++
		}

		if err := os.WriteFile(path, src, 0o644); err != nil {
			return applied, fmt.Errorf("writing %s: %w", path, err)
		}
	}

	return applied, nil
}
