package loader

import (
	"errors"
	"fmt"

	"golang.org/x/tools/go/packages"
)

type LoadMode int

const (
	// LoadSyntax loads parsed AST but no type information.
	LoadSyntax LoadMode = iota
	// LoadTypes loads full type information in addition to AST.
	LoadTypes
)

type Config struct {
	Patterns   []string
	Mode       LoadMode
	BuildFlags []string
	// Tests includes _test.go files and test binaries in the load.
	Tests bool
}

// Load loads the Go packages named by cfg.Patterns. Skipping type
// resolution is significantly faster when only AST-level rules are
// active.
func Load(cfg Config) ([]*packages.Package, error) {
	pcfg := &packages.Config{
		BuildFlags: cfg.BuildFlags,
		Tests:      cfg.Tests,
	}

	switch cfg.Mode {
	case LoadSyntax:
		pcfg.Mode = packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedImports |
			packages.NeedCompiledGoFiles
	case LoadTypes:
		pcfg.Mode = packages.NeedName |
			packages.NeedFiles |
			packages.NeedSyntax |
			packages.NeedImports |
			packages.NeedCompiledGoFiles |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedTypesSizes |
			packages.NeedDeps
	default:
		return nil, fmt.Errorf("unknown load mode: %d", cfg.Mode)
	}

	pkgs, err := packages.Load(pcfg, cfg.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return pkgs, nil
}
