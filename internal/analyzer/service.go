package analyzer

import (
	"context"
	"log/slog"

	"github.com/jgx02c/web-anlysis-scraper/internal/model"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/requestid"
)

// Service orchestrates a PageAuditProvider and logs results.
type Service struct {
	provider PageAuditProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider PageAuditProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Audit delegates to the provider and logs the outcome.
func (s *Service) Audit(ctx context.Context, htmlText, source string) (*model.PageFeatures, error) {
	logger := s.logger.With("source", source, "request_id", requestid.FromContext(ctx))

	result, err := s.provider.Audit(htmlText, source)
	if err != nil {
		logger.Error("audit failed", "error", err)
		return nil, err
	}

	logger.Info("audit complete",
		"url", result.WebsiteURL,
		"title", result.Title,
		"word_count", result.WordCount,
		"immediate", len(result.Insights.ImmediateActionRequired),
		"attention", len(result.Insights.NeedsAttention),
		"good", len(result.Insights.GoodPractice),
	)
	return result, nil
}
