package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Sentinel values written by the extractor when a field is absent.
// Downstream checks compare against these exact strings.
const (
	NoTitle        = "No Title"
	MissingAltText = "MISSING ALT TEXT"
)

// PageFeatures holds everything extracted from a single HTML document.
// Insights is nil until the page has been evaluated.
type PageFeatures struct {
	WebsiteURL     string                               `json:"website_url"`
	Title          string                               `json:"title"`
	Meta           MetaTags                             `json:"meta"`
	Links          LinkGroups                           `json:"links"`
	Headings       map[string][]string                  `json:"headings"`
	Images         *orderedmap.OrderedMap[string, Image] `json:"images"`
	StructuredData []any                                `json:"structured_data"`
	Content        string                               `json:"content"`
	WordCount      int                                  `json:"word_count"`
	Frames         int                                  `json:"frames"`
	RequiresLogin  bool                                 `json:"requires_login"`
	JSDependent    int                                  `json:"js_dependent_content"`
	HTMLLang       string                               `json:"html_lang"`
	Insights       *InsightReport                       `json:"insights,omitempty"`
}

// NewPageFeatures returns a PageFeatures with every collection initialized,
// so serialization always produces the full key set with empty containers
// rather than nulls.
func NewPageFeatures() *PageFeatures {
	return &PageFeatures{
		Meta: MetaTags{
			SEO:         map[string]string{},
			Technical:   map[string]string{},
			SocialMedia: map[string]string{},
		},
		Links: LinkGroups{
			Internal: []Link{},
			External: []Link{},
		},
		Headings: map[string][]string{
			"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
		},
		Images:         orderedmap.New[string, Image](),
		StructuredData: []any{},
	}
}

// MetaTags groups meta tag values by audit category. The JSON keys mirror
// the report format consumed downstream.
type MetaTags struct {
	SEO         map[string]string `json:"SEO"`
	Technical   map[string]string `json:"Technical"`
	SocialMedia map[string]string `json:"Social Media"`
}

// Link is a single anchor found on the page.
type Link struct {
	Href     string `json:"href"`
	Text     string `json:"text"`
	Nofollow bool   `json:"nofollow"`
}

// LinkGroups splits page links by internal/external classification.
type LinkGroups struct {
	Internal []Link `json:"internal"`
	External []Link `json:"external"`
}

// Image holds the attributes recorded per image src. Width and Height are
// the raw attribute strings, empty when absent.
type Image struct {
	Alt         string `json:"alt"`
	Width       string `json:"width"`
	Height      string `json:"height"`
	LazyLoading bool   `json:"lazy_loading"`
}

// Severity ranks a finding for a human reviewer.
type Severity int

const (
	// SeverityImmediate flags problems that actively harm indexing.
	SeverityImmediate Severity = iota
	// SeverityAttention flags problems worth fixing soon.
	SeverityAttention
	// SeverityGood confirms a practice the page already follows.
	SeverityGood
)

// InsightReport buckets finding messages by severity. Order within a bucket
// is evaluation order.
type InsightReport struct {
	ImmediateActionRequired []string `json:"Immediate Action Required"`
	NeedsAttention          []string `json:"Needs Attention"`
	GoodPractice            []string `json:"Good Practice"`
}

// NewInsightReport returns a report with all three buckets initialized.
func NewInsightReport() *InsightReport {
	return &InsightReport{
		ImmediateActionRequired: []string{},
		NeedsAttention:          []string{},
		GoodPractice:            []string{},
	}
}

// Add appends msg to the bucket for the given severity.
func (r *InsightReport) Add(severity Severity, msg string) {
	switch severity {
	case SeverityImmediate:
		r.ImmediateActionRequired = append(r.ImmediateActionRequired, msg)
	case SeverityAttention:
		r.NeedsAttention = append(r.NeedsAttention, msg)
	case SeverityGood:
		r.GoodPractice = append(r.GoodPractice, msg)
	}
}

// Total returns the number of messages across all buckets.
func (r *InsightReport) Total() int {
	return len(r.ImmediateActionRequired) + len(r.NeedsAttention) + len(r.GoodPractice)
}

// ErrorResponse is the JSON shape returned on HTTP failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
