// Package main provides the seoscan CLI: batch SEO audits over saved HTML
// pages and an HTTP analysis endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jgx02c/web-anlysis-scraper/internal/platform/config"
	"github.com/jgx02c/web-anlysis-scraper/internal/seo"
)

var rootCmd = &cobra.Command{
	Use:   "seoscan",
	Short: "SEO feature extraction and rule-based audit for saved HTML pages",
	Long: "seoscan parses saved HTML documents into structured SEO feature records and " +
		"evaluates them against a configurable rule set, producing severity-bucketed reports.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRules resolves the rule set: an explicit path wins, then the
// configured path, then the built-in defaults.
func loadRules(flagPath string, cfg config.Config) (*seo.Rules, error) {
	path := flagPath
	if path == "" {
		path = cfg.RulesPath
	}
	if path == "" {
		return seo.DefaultRules(), nil
	}
	return seo.LoadRules(path)
}
