package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jgx02c/web-anlysis-scraper/internal/analyzer"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/config"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/logger"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/middleware"
	"github.com/jgx02c/web-anlysis-scraper/internal/seo"
)

var (
	serveDomain string
	serveRules  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the audit engine over HTTP (POST /analyze)",
	RunE:  serveHTTP,
}

func init() {
	serveCmd.Flags().StringVar(&serveDomain, "domain", "", "site domain for link classification and URL reconstruction")
	serveCmd.Flags().StringVar(&serveRules, "rules", "", "path to a YAML rules file (default: built-in rules)")
	rootCmd.AddCommand(serveCmd)
}

func serveHTTP(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveDomain != "" {
		cfg.SiteDomain = serveDomain
	}

	log := logger.New(cfg.LogLevel)

	rules, err := loadRules(serveRules, cfg)
	if err != nil {
		return err
	}

	auditor := seo.NewAuditor(seo.NewExtractor(cfg.SiteDomain), rules)
	svc := analyzer.NewService(auditor, log)
	transport := analyzer.NewTransport(svc, log)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	handler := middleware.RequestID(middleware.Logging(log)(mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("listening", "port", cfg.Port, "domain", cfg.SiteDomain)
	return srv.ListenAndServe()
}
