package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yayaa/chronolint/pkg/config"
	"github.com/yayaa/chronolint/pkg/engine"
	"github.com/yayaa/chronolint/pkg/fix"
	"github.com/yayaa/chronolint/pkg/report"
	"github.com/yayaa/chronolint/pkg/rule"

	// Register all rules via init()
	_ "github.com/yayaa/chronolint/pkg/rules/time"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:     "chronolint",
		Short:   "A static checker for chrono temporal conversions",
		Version: version,
	}

	root.AddCommand(runCmd())
	root.AddCommand(listRulesCmd())
	root.AddCommand(initConfigCmd())
	root.AddCommand(cleanCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		configPath  string
		format      string
		applyFixes  bool
		enableAll   bool
		noCache     bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "run [packages...]",
		Short: "Run the linter on Go packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			var cfg *config.Config
			var err error
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				wd, _ := os.Getwd()
				cfg, err = config.Load(wd)
			}
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if format != "" {
				cfg.Output.Format = format
			}
			if enableAll {
				cfg.EnableAll = true
			}
			if noCache {
				cfg.Cache.Enabled = false
			}
			if concurrency > 0 {
				cfg.Concurrency = concurrency
			}

			eng, err := engine.New(cfg, rule.GlobalRegistry())
			if err != nil {
				return err
			}

			diags, err := eng.Run(context.Background(), args)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			reporter := report.New(cfg.Output.Format, cfg.Output.Color)
			if err := reporter.Report(os.Stdout, diags); err != nil {
				return fmt.Errorf("reporting: %w", err)
			}

			remaining := len(diags)
			if applyFixes && len(diags) > 0 {
				n, err := fix.Apply(diags)
				if err != nil {
					return fmt.Errorf("applying fixes: %w", err)
				}
				fmt.Fprintf(os.Stderr, "chronolint: applied %d fix(es)\n", n)
				remaining = 0
				for _, d := range diags {
					if d.Fix == nil {
						remaining++
					}
				}
			}

			elapsed := time.Since(start)
			fmt.Fprintf(os.Stderr, "chronolint: analyzed %d package(s) with %d rule(s) in %s\n",
				len(args), len(eng.ActiveRules()), elapsed.Round(time.Millisecond))

			if remaining > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json, sarif")
	cmd.Flags().BoolVar(&applyFixes, "fix", false, "apply suggested fixes in place")
	cmd.Flags().BoolVar(&enableAll, "enable-all", false, "enable all rules regardless of config")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "number of concurrent workers (0 = NumCPU)")

	return cmd
}

func listRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List all available lint rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := rule.GlobalRegistry().All()
			sort.Slice(rules, func(i, j int) bool {
				if rules[i].Category() != rules[j].Category() {
					return rules[i].Category() < rules[j].Category()
				}
				return rules[i].Name() < rules[j].Name()
			})

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "RULE\tCATEGORY\tSEVERITY\tTYPES\tDESCRIPTION\n")
			for _, r := range rules {
				needsTypes := "no"
				if r.NeedsTypeInfo() {
					needsTypes = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.Name(), r.Category(), r.Severity(), needsTypes, r.Description())
			}
			return tw.Flush()
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default .chronolint.yml config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ".chronolint.yml"
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists; remove it first", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Printf("Created %s with default configuration.\n", path)
			return nil
		},
	}
}

func cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clear the analysis result cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, _ := os.Getwd()
			cfg, err := config.Load(wd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cache, err := engine.NewCache(cfg.Cache.Dir, false)
			if err != nil {
				return err
			}
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Printf("Cleared cache in %s.\n", cfg.Cache.Dir)
			return nil
		},
	}
}
