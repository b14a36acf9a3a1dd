package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/yayaa/chronolint/pkg/config"
	"github.com/yayaa/chronolint/pkg/loader"
	"github.com/yayaa/chronolint/pkg/rule"
)

type Engine struct {
	cfg    *config.Config
	rules  []rule.Rule
	cache  *Cache
	runner *Runner
}

func New(cfg *config.Config, registry *rule.Registry) (*Engine, error) {
	var activeRules []rule.Rule

	allRules := registry.All()
	sort.Slice(allRules, func(i, j int) bool {
		return allRules[i].Name() < allRules[j].Name()
	})

	for _, r := range allRules {
		rc, exists := cfg.Rules[r.Name()]
		if exists && !rc.Enabled {
			continue
		}
		if !exists && !cfg.EnableAll {
			continue
		}
		if exists && rc.Options != nil {
			if c, ok := r.(rule.Configurable); ok {
				if err := c.Configure(rc.Options); err != nil {
					return nil, fmt.Errorf("configuring rule %s: %w", r.Name(), err)
				}
			}
		}
		activeRules = append(activeRules, r)
	}

	if len(activeRules) == 0 {
		return nil, fmt.Errorf("no rules enabled; enable rules in .chronolint.yml or use --enable-all")
	}

	cache, err := NewCache(cfg.Cache.Dir, cfg.Cache.Enabled)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}

	walker := NewWalker(activeRules)
	runner := NewRunner(walker, cache, cfg.Concurrency, computeRuleSetKey(activeRules, cfg))

	return &Engine{
		cfg:    cfg,
		rules:  activeRules,
		cache:  cache,
		runner: runner,
	}, nil
}

func (e *Engine) Run(ctx context.Context, patterns []string) ([]rule.Diagnostic, error) {
	needsTypes := false
	for _, r := range e.rules {
		if r.NeedsTypeInfo() {
			needsTypes = true
			break
		}
	}

	mode := loader.LoadSyntax
	if needsTypes {
		mode = loader.LoadTypes
	}

	pkgs, err := loader.Load(loader.Config{Patterns: patterns, Mode: mode})
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	return e.runner.Run(ctx, pkgs)
}

func (e *Engine) ActiveRules() []rule.Rule {
	return e.rules
}

// computeRuleSetKey fingerprints the active rules and their options so
// cached results are invalidated when either changes.
func computeRuleSetKey(rules []rule.Rule, cfg *config.Config) string {
	var parts []string
	for _, r := range rules {
		part := r.Name()
		if rc, ok := cfg.Rules[r.Name()]; ok && rc.Options != nil {
			part += fmt.Sprintf("%v", rc.Options)
		}
		parts = append(parts, part)
	}
	sort.Strings(parts)
	h := sha256.Sum256([]byte(strings.Join(parts, ",")))
	return hex.EncodeToString(h[:8])
}
