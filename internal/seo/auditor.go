package seo

import (
	"github.com/jgx02c/web-anlysis-scraper/internal/model"
)

// Auditor combines extraction and rule evaluation for a single document.
// The rule set is shared read-only, so one Auditor is safe for concurrent
// use across documents.
type Auditor struct {
	extractor *Extractor
	rules     *Rules
}

// NewAuditor returns an Auditor backed by the given extractor and rules.
func NewAuditor(extractor *Extractor, rules *Rules) *Auditor {
	return &Auditor{
		extractor: extractor,
		rules:     rules,
	}
}

// Audit extracts features from an HTML document and attaches the evaluated
// insight report.
func (a *Auditor) Audit(htmlText, source string) (*model.PageFeatures, error) {
	page, err := a.extractor.Extract(htmlText, source)
	if err != nil {
		return nil, err
	}

	page.Insights = Evaluate(page, a.rules)
	return page, nil
}
