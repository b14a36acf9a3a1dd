// Package time contains rules for the chrono calendar library.
package time

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/yayaa/chronolint/pkg/rule"
	"github.com/yayaa/chronolint/pkg/temporal"
)

// defaultPackages are the import path prefixes under which the chrono
// calendar types and their extension types live. Overridable through
// the rule's "packages" option so forks of the library can be linted.
var defaultPackages = []string{
	"github.com/yayaa/chrono",
	"github.com/yayaa/chrono/extra",
}

// temporalInterface is the capability interface every chrono value type
// implements; each type's From factory accepts it.
const temporalInterface = "Temporal"

// FromTemporal flags From(Temporal) factory calls that static types
// prove pointless: either the argument can never carry the fields the
// target type needs (the call always fails at runtime), or the argument
// already has the target type (the call returns it unchanged). Month
// is derivable from a LocalDate, so month.From(d) is left alone; the
// reverse, localdate.From(m), can never succeed and is reported.
type FromTemporal struct {
	packages []string
}

func New() *FromTemporal {
	return &FromTemporal{packages: defaultPackages}
}

func (*FromTemporal) Name() string            { return "from-temporal" }
func (*FromTemporal) Category() rule.Category { return rule.CategoryTime }
func (*FromTemporal) Severity() rule.Severity { return rule.SeverityError }
func (*FromTemporal) Description() string {
	return "Detects From(Temporal) conversions that always fail at runtime or return their argument unchanged"
}
func (*FromTemporal) NeedsTypeInfo() bool { return true }
func (*FromTemporal) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.CallExpr)(nil)}
}

func (r *FromTemporal) Configure(options map[string]any) error {
	raw, ok := options["packages"]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("from-temporal: packages option must be a list of import path prefixes")
	}
	var pkgs []string
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("from-temporal: packages entry %v is not a string", v)
		}
		pkgs = append(pkgs, s)
	}
	if len(pkgs) > 0 {
		r.packages = pkgs
	}
	return nil
}

type verdictKind int

const (
	noFinding verdictKind = iota
	alwaysRedundant
	alwaysInvalid
)

type verdict struct {
	kind        verdictKind
	target      temporal.Tag
	source      temporal.Tag
	replacement string
}

func (r *FromTemporal) Check(ctx *rule.Context, node ast.Node) []rule.Diagnostic {
	call, ok := node.(*ast.CallExpr)
	if !ok || ctx.TypeInfo == nil {
		return nil
	}

	v := r.evaluate(ctx, call)
	if v.kind == noFinding {
		return nil
	}

	d := rule.Diagnostic{
		Rule:     "from-temporal",
		Category: rule.CategoryTime,
		Severity: rule.SeverityError,
		Pos:      ctx.FileSet.Position(call.Pos()),
		End:      ctx.FileSet.Position(call.End()),
	}

	switch v.kind {
	case alwaysInvalid:
		d.Message = fmt.Sprintf("%s.From always fails at runtime: a %s cannot supply the fields a %s requires",
			v.target, v.source, v.target)
	case alwaysRedundant:
		d.Message = fmt.Sprintf("%s.From returns its argument unchanged when the value is already a %s",
			v.target, v.target)
		if v.replacement != "" {
			d.Fix = &rule.SuggestedFix{
				Message: "use the argument directly",
				Edits: []rule.TextEdit{{
					Pos:     d.Pos,
					End:     d.End,
					NewText: v.replacement,
				}},
			}
		}
	}

	return []rule.Diagnostic{d}
}

// evaluate applies a chain of cheap rejections before touching the
// incompatibility table; nearly every call expression in an arbitrary
// codebase drops out at the first step. Any type the checker could not
// resolve degrades to no finding rather than a guess.
func (r *FromTemporal) evaluate(ctx *rule.Context, call *ast.CallExpr) verdict {
	if len(call.Args) != 1 || call.Ellipsis.IsValid() {
		return verdict{}
	}

	fn := calleeFunc(ctx.TypeInfo, call)
	if fn == nil || fn.Name() != "From" {
		return verdict{}
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() != nil || sig.Params().Len() != 1 || sig.Results().Len() != 1 {
		return verdict{}
	}
	if !r.isTemporalInterface(sig.Params().At(0).Type()) {
		return verdict{}
	}

	// The library converts between its own types through documented
	// internal contracts; leave its packages alone.
	if ctx.Pkg != nil && r.inTemporalPackages(ctx.Pkg.Path()) {
		return verdict{}
	}

	resultType := sig.Results().At(0).Type()
	target, ok := r.tagOf(resultType)
	if !ok {
		return verdict{}
	}

	argType := ctx.TypeInfo.TypeOf(call.Args[0])
	if argType == nil || r.isTemporalInterface(argType) {
		// The argument is not statically narrowed to a concrete chrono
		// type, so neither outcome can be proven.
		return verdict{}
	}

	if types.Identical(resultType, argType) {
		return verdict{
			kind:        alwaysRedundant,
			target:      target,
			source:      target,
			replacement: argSource(ctx, call.Args[0]),
		}
	}

	source, ok := r.tagOf(argType)
	if !ok {
		return verdict{}
	}
	if temporal.IsKnownIncompatible(target, source) {
		return verdict{kind: alwaysInvalid, target: target, source: source}
	}
	return verdict{}
}

// calleeFunc resolves the called function object, or nil when the
// callee is not a plain package-level function reference.
func calleeFunc(info *types.Info, call *ast.CallExpr) *types.Func {
	var id *ast.Ident
	switch fun := astutil.Unparen(call.Fun).(type) {
	case *ast.Ident:
		id = fun
	case *ast.SelectorExpr:
		id = fun.Sel
	default:
		return nil
	}
	fn, _ := info.Uses[id].(*types.Func)
	return fn
}

func (r *FromTemporal) isTemporalInterface(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	if obj.Name() != temporalInterface || obj.Pkg() == nil {
		return false
	}
	if _, ok := named.Underlying().(*types.Interface); !ok {
		return false
	}
	return r.inTemporalPackages(obj.Pkg().Path())
}

// tagOf maps a static type to its temporal tag. Only exact named types
// declared in the chrono packages qualify; pointers, aliases of other
// shapes, and look-alike types elsewhere never match.
func (r *FromTemporal) tagOf(t types.Type) (temporal.Tag, bool) {
	named, ok := t.(*types.Named)
	if !ok {
		return 0, false
	}
	obj := named.Obj()
	if obj.Pkg() == nil || !r.inTemporalPackages(obj.Pkg().Path()) {
		return 0, false
	}
	return temporal.TagByName(obj.Name())
}

func (r *FromTemporal) inTemporalPackages(path string) bool {
	for _, prefix := range r.packages {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// argSource returns the argument's literal source text, or "" when the
// file bytes are unavailable; the diagnostic is still emitted, just
// without a fix.
func argSource(ctx *rule.Context, expr ast.Expr) string {
	if len(ctx.Src) == 0 {
		return ""
	}
	start := ctx.FileSet.Position(expr.Pos()).Offset
	end := ctx.FileSet.Position(expr.End()).Offset
	if start < 0 || end > len(ctx.Src) || start >= end {
		return ""
	}
	return string(ctx.Src[start:end])
}

func init() {
	rule.Register(New())
}
