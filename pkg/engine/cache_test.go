package engine

import (
	"go/token"
	"reflect"
	"testing"

	"github.com/yayaa/chronolint/pkg/rule"
)

func sampleDiags() []rule.Diagnostic {
	return []rule.Diagnostic{{
		Rule:     "from-temporal",
		Category: rule.CategoryTime,
		Severity: rule.SeverityError,
		Pos:      token.Position{Filename: "a.go", Offset: 10, Line: 2, Column: 3},
		End:      token.Position{Filename: "a.go", Offset: 30, Line: 2, Column: 23},
		Message:  "redundant conversion",
		Fix: &rule.SuggestedFix{
			Message: "use the argument directly",
			Edits: []rule.TextEdit{{
				Pos:     token.Position{Filename: "a.go", Offset: 10, Line: 2, Column: 3},
				End:     token.Position{Filename: "a.go", Offset: 30, Line: 2, Column: 23},
				NewText: "v",
			}},
		},
	}}
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	diags := sampleDiags()
	c.Store("a.go", "hash1", "rules1", diags)

	got, ok := c.Lookup("a.go", "hash1", "rules1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(got, diags) {
		t.Fatalf("cached diagnostics differ:\ngot  %+v\nwant %+v", got, diags)
	}
}

func TestCacheMissOnHashChange(t *testing.T) {
	c, err := NewCache(t.TempDir(), true)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c.Store("a.go", "hash1", "rules1", sampleDiags())

	if _, ok := c.Lookup("a.go", "hash2", "rules1"); ok {
		t.Fatal("stale file hash must miss")
	}
	if _, ok := c.Lookup("a.go", "hash1", "rules2"); ok {
		t.Fatal("different rule set must miss")
	}
}

func TestCacheDisabled(t *testing.T) {
	c, err := NewCache("", false)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c.Store("a.go", "hash1", "rules1", sampleDiags())
	if _, ok := c.Lookup("a.go", "hash1", "rules1"); ok {
		t.Fatal("disabled cache must never hit")
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(dir, true)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c.Store("a.go", "hash1", "rules1", sampleDiags())

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := c.Lookup("a.go", "hash1", "rules1"); ok {
		t.Fatal("cleared cache must miss")
	}
}

func TestSortDiagnostics(t *testing.T) {
	diags := []rule.Diagnostic{
		{Pos: token.Position{Filename: "b.go", Line: 1, Column: 1}},
		{Pos: token.Position{Filename: "a.go", Line: 9, Column: 1}},
		{Pos: token.Position{Filename: "a.go", Line: 2, Column: 7}},
		{Pos: token.Position{Filename: "a.go", Line: 2, Column: 3}},
	}
	sortDiagnostics(diags)

	want := []token.Position{
		{Filename: "a.go", Line: 2, Column: 3},
		{Filename: "a.go", Line: 2, Column: 7},
		{Filename: "a.go", Line: 9, Column: 1},
		{Filename: "b.go", Line: 1, Column: 1},
	}
	for i, d := range diags {
		if d.Pos != want[i] {
			t.Fatalf("position %d = %v, want %v", i, d.Pos, want[i])
		}
	}
}
