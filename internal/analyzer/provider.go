package analyzer

import (
	"github.com/jgx02c/web-anlysis-scraper/internal/model"
)

// PageAuditProvider defines the contract for any audit engine.
type PageAuditProvider interface {
	Audit(htmlText, source string) (*model.PageFeatures, error)
}
