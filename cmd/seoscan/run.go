package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jgx02c/web-anlysis-scraper/internal/batch"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/config"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/logger"
	"github.com/jgx02c/web-anlysis-scraper/internal/seo"
)

var (
	runInput   string
	runOutput  string
	runDomain  string
	runRules   string
	runWorkers int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Audit every HTML file in a folder and write JSON reports",
	RunE:  runBatch,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "folder containing .html files (required)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "folder for .json reports (required)")
	runCmd.Flags().StringVar(&runDomain, "domain", "", "site domain for link classification and URL reconstruction")
	runCmd.Flags().StringVar(&runRules, "rules", "", "path to a YAML rules file (default: built-in rules)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "worker pool size (default: BATCH_CONCURRENCY)")
	_ = runCmd.MarkFlagRequired("input")
	_ = runCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if runDomain != "" {
		cfg.SiteDomain = runDomain
	}
	if runWorkers > 0 {
		cfg.BatchConcurrency = runWorkers
	}

	// Structured logs go to stderr; stdout carries the summary.
	log := logger.NewWithWriter(cfg.LogLevel, os.Stderr)

	rules, err := loadRules(runRules, cfg)
	if err != nil {
		return err
	}

	auditor := seo.NewAuditor(seo.NewExtractor(cfg.SiteDomain), rules)
	runner := batch.NewRunner(auditor, log, cfg.BatchConcurrency)

	summary, err := runner.Run(cmd.Context(), runInput, runOutput)
	if err != nil {
		return err
	}

	printSummary(summary)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Failed+summary.Processed)
	}
	return nil
}

func printSummary(summary *batch.Summary) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Printf("%s %s: %v\n", red("FAIL"), res.Name, res.Err)
			continue
		}
		fmt.Printf("%s -> %s | %s %s %s\n",
			res.Name, res.Output,
			red(fmt.Sprintf("immediate=%d", res.Immediate)),
			yellow(fmt.Sprintf("attention=%d", res.Attention)),
			green(fmt.Sprintf("good=%d", res.Good)),
		)
	}

	fmt.Printf("Processed %d files (%d failed).\n", summary.Processed, summary.Failed)
}
