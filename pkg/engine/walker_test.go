package engine

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/yayaa/chronolint/pkg/rule"
)

type callCounter struct {
	checked int
}

func (*callCounter) Name() string            { return "call-counter" }
func (*callCounter) Category() rule.Category { return rule.CategoryBugs }
func (*callCounter) Severity() rule.Severity { return rule.SeverityInfo }
func (*callCounter) Description() string     { return "counts call expressions" }
func (*callCounter) NeedsTypeInfo() bool     { return false }
func (*callCounter) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.CallExpr)(nil)}
}

func (c *callCounter) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	c.checked++
	return []rule.Diagnostic{{
		Rule: "call-counter",
		Pos:  ctx.FileSet.Position(node.Pos()),
	}}
}

type wholeFile struct{}

func (*wholeFile) Name() string            { return "whole-file" }
func (*wholeFile) Category() rule.Category { return rule.CategoryBugs }
func (*wholeFile) Severity() rule.Severity { return rule.SeverityInfo }
func (*wholeFile) Description() string     { return "emits one diagnostic per file" }
func (*wholeFile) NeedsTypeInfo() bool     { return false }
func (*wholeFile) NodeTypes() []ast.Node   { return nil }
func (*wholeFile) Check(*rule.Context, ast.Node) []rule.Diagnostic {
	return nil
}
func (*wholeFile) CheckFile(ctx *rule.Context) []rule.Diagnostic {
	return []rule.Diagnostic{{Rule: "whole-file"}}
}

const walkerSrc = `package sample

func a() { b(); c() }
func b() {}
func c() {}
func d() int { return 1 + 2 }
`

func parseContext(t *testing.T) *rule.Context {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sample.go", walkerSrc, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return &rule.Context{File: file, FileSet: fset, FilePath: "sample.go"}
}

func TestWalkerDispatchesOnlyRequestedNodes(t *testing.T) {
	counter := &callCounter{}
	w := NewWalker([]rule.Rule{counter})

	diags := w.Walk(parseContext(t))

	if counter.checked != 2 {
		t.Fatalf("rule saw %d call expressions, want 2", counter.checked)
	}
	if len(diags) != 2 {
		t.Fatalf("walker returned %d diagnostics, want 2", len(diags))
	}
}

func TestWalkerRunsFileRules(t *testing.T) {
	w := NewWalker([]rule.Rule{&wholeFile{}})

	diags := w.Walk(parseContext(t))
	if len(diags) != 1 || diags[0].Rule != "whole-file" {
		t.Fatalf("file rule diagnostics = %+v, want one whole-file entry", diags)
	}
}
