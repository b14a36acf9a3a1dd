package rule

import (
	"go/ast"
	"go/token"
	"go/types"
)

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

type Category int

const (
	CategoryBugs Category = iota
	CategoryTime
)

func (c Category) String() string {
	switch c {
	case CategoryBugs:
		return "bugs"
	case CategoryTime:
		return "time"
	default:
		return "unknown"
	}
}

// TextEdit replaces the source between Pos and End with NewText. Both
// positions must name the same file and carry valid byte offsets.
type TextEdit struct {
	Pos     token.Position
	End     token.Position
	NewText string
}

// SuggestedFix is an optional, semantics-preserving rewrite attached to
// a diagnostic. Applying it is the caller's choice (run --fix).
type SuggestedFix struct {
	Message string
	Edits   []TextEdit
}

type Diagnostic struct {
	Rule     string
	Category Category
	Severity Severity
	Pos      token.Position
	End      token.Position
	Message  string
	Fix      *SuggestedFix
}

type Context struct {
	File     *ast.File
	FileSet  *token.FileSet
	TypeInfo *types.Info
	Pkg      *types.Package
	// Src holds the file's raw bytes so rules can quote source spans,
	// e.g. when building a replacement edit.
	Src      []byte
	FileHash string
	FilePath string
}

// Rule is the interface that all lint rules must implement.
type Rule interface {
	Name() string
	Category() Category
	Severity() Severity
	Description() string
	NeedsTypeInfo() bool
	// NodeTypes returns zero-value instances of the AST node types
	// this rule is interested in. The walker uses reflect.TypeOf on
	// each to build a dispatch table.
	NodeTypes() []ast.Node
	Check(ctx *Context, node ast.Node) []Diagnostic
}

// FileRule is an optional interface for rules that want to inspect
// the entire file at once rather than individual nodes.
type FileRule interface {
	Rule
	CheckFile(ctx *Context) []Diagnostic
}

// Configurable is an optional interface for rules that accept options
// from their config block. Configure runs once, before analysis starts;
// rules must be read-only afterwards so files can be checked in
// parallel.
type Configurable interface {
	Rule
	Configure(options map[string]any) error
}
