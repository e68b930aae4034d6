package seo

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jgx02c/web-anlysis-scraper/internal/model"
)

// Fixed messages for checks that are not configurable through the rule file.
const (
	msgNoCanonical    = "No canonical tag found. Consider adding one to prevent duplicate content issues."
	msgRobotsBlocking = "Robots meta tag is preventing indexing or following links."
	msgNoViewport     = "Missing viewport meta tag. Required for mobile-first indexing."
	msgNoCharset      = "Missing character encoding declaration. Add meta charset tag."
	msgFrames         = "Found {count} frames/iframes. Ensure important content isn't hidden in frames."
	msgRequiresLogin  = "Page may require login to access. This could prevent Google from crawling content."
	msgJSDependent    = "Found {count} elements that require JavaScript. Ensure critical content is available without JavaScript."
	msgNoLang         = "Missing language declaration in <html> tag. Add lang attribute."

	msgImageEmptySrc  = "Found image with empty src attribute."
	msgImageBase64    = "Found base64 encoded image. Use proper image files for better performance."
	msgImageNoAlt     = "Image missing alt text: {src}"
	msgImageNoDims    = "Image missing width/height attributes: {src}"

	msgNoStructured      = "No structured data (JSON-LD) found. Consider adding schema markup."
	msgInvalidJSONLD     = "Invalid JSON-LD structured data found."
	msgStructuredNoProps = "Structured data missing required @context or @type properties."

	msgNoInternalLinks = "No internal links found. Consider adding some for better site structure."
	msgInternalLinks   = "Found {count} internal links."
)

// Evaluate runs every check against a feature record and returns the
// severity-bucketed report. It is a pure function: the record and rules are
// read-only and identical inputs always produce identical output. Checks run
// in a fixed order so message order within a bucket is deterministic.
func Evaluate(page *model.PageFeatures, rules *Rules) *model.InsightReport {
	report := model.NewInsightReport()
	if rules == nil {
		rules = &Rules{}
	}

	checkTitle(page, rules.Title, report)
	checkMetaDescription(page, rules.MetaDescription, report)

	if page.Meta.SEO["canonical"] == "" {
		report.Add(model.SeverityAttention, msgNoCanonical)
	}

	robots := page.Meta.SEO["robots"]
	if strings.Contains(robots, "noindex") || strings.Contains(robots, "nofollow") {
		report.Add(model.SeverityImmediate, msgRobotsBlocking)
	}

	if page.Meta.Technical["viewport"] == "" {
		report.Add(model.SeverityAttention, msgNoViewport)
	}
	if page.Meta.Technical["charset"] == "" {
		report.Add(model.SeverityAttention, msgNoCharset)
	}

	if rules.Content != nil && page.WordCount < rules.Content.MinWords {
		report.Add(model.SeverityAttention, interpolate(rules.Content.Messages.TooShort, map[string]any{
			"word_count": page.WordCount,
		}))
	}

	if page.Frames > 0 {
		report.Add(model.SeverityAttention, interpolate(msgFrames, map[string]any{"count": page.Frames}))
	}

	if page.RequiresLogin {
		report.Add(model.SeverityAttention, msgRequiresLogin)
	}

	if page.JSDependent > 0 {
		report.Add(model.SeverityAttention, interpolate(msgJSDependent, map[string]any{"count": page.JSDependent}))
	}

	if page.HTMLLang == "" {
		report.Add(model.SeverityAttention, msgNoLang)
	}

	if rules.Headings != nil {
		checkH1(page, rules.Headings.H1, report)
	}
	checkImages(page, report)
	checkStructuredData(page, report)

	if len(page.Links.Internal) == 0 {
		report.Add(model.SeverityAttention, msgNoInternalLinks)
	} else {
		report.Add(model.SeverityGood, interpolate(msgInternalLinks, map[string]any{
			"count": len(page.Links.Internal),
		}))
	}

	checkURL(page, rules.URL, report)

	return report
}

func checkTitle(page *model.PageFeatures, rule *TitleRule, report *model.InsightReport) {
	if rule == nil {
		return
	}
	// Lengths are counted in characters, not bytes.
	length := utf8.RuneCountInString(page.Title)
	switch {
	case page.Title == "" || page.Title == model.NoTitle:
		report.Add(severity(rule.Severity), rule.Messages.Missing)
	case length > rule.MaxLength:
		report.Add(model.SeverityAttention, interpolate(rule.Messages.TooLong, map[string]any{
			"length": length,
		}))
	default:
		report.Add(model.SeverityGood, rule.Messages.Good)
	}
}

func checkMetaDescription(page *model.PageFeatures, rule *MetaDescriptionRule, report *model.InsightReport) {
	if rule == nil {
		return
	}
	desc := page.Meta.SEO["description"]
	switch {
	case desc == "":
		report.Add(model.SeverityImmediate, rule.Messages.Missing)
	case utf8.RuneCountInString(desc) > rule.MaxLength:
		report.Add(model.SeverityAttention, rule.Messages.TooLong)
	default:
		report.Add(model.SeverityGood, rule.Messages.Good)
	}
}

func checkH1(page *model.PageFeatures, rule *H1Rule, report *model.InsightReport) {
	if rule == nil {
		return
	}
	count := len(page.Headings["h1"])
	switch {
	case count == 0:
		report.Add(model.SeverityImmediate, rule.Messages.Missing)
	case count > rule.MaxCount:
		report.Add(model.SeverityAttention, interpolate(rule.Messages.TooMany, map[string]any{
			"count": count,
		}))
	default:
		report.Add(model.SeverityGood, rule.Messages.Good)
	}
}

// checkImages walks the image map in document order. Each image is checked
// independently; a src retained through the last-wins overwrite produces at
// most one message per check.
func checkImages(page *model.PageFeatures, report *model.InsightReport) {
	for pair := page.Images.Oldest(); pair != nil; pair = pair.Next() {
		src, img := pair.Key, pair.Value

		if strings.TrimSpace(src) == "" {
			report.Add(model.SeverityImmediate, msgImageEmptySrc)
		}
		if strings.HasPrefix(src, "data:") {
			report.Add(model.SeverityAttention, msgImageBase64)
		}
		if img.Alt == model.MissingAltText {
			report.Add(model.SeverityAttention, interpolate(msgImageNoAlt, map[string]any{"src": src}))
		}
		if img.Width == "" || img.Height == "" {
			report.Add(model.SeverityAttention, interpolate(msgImageNoDims, map[string]any{"src": src}))
		}
	}
}

func checkStructuredData(page *model.PageFeatures, report *model.InsightReport) {
	if len(page.StructuredData) == 0 {
		report.Add(model.SeverityAttention, msgNoStructured)
		return
	}

	for _, entry := range page.StructuredData {
		obj, ok := entry.(map[string]any)
		if ok && truthy(obj["error"]) {
			report.Add(model.SeverityImmediate, msgInvalidJSONLD)
			continue
		}
		// Non-object entries (arrays, bare strings) cannot carry
		// @context or @type and are reported the same way.
		if !ok || !truthy(obj["@context"]) || !truthy(obj["@type"]) {
			report.Add(model.SeverityAttention, msgStructuredNoProps)
		}
	}
}

// checkURL applies the pattern rules to the reconstructed URL. Documents
// whose URL could not be reconstructed are skipped entirely.
func checkURL(page *model.PageFeatures, rules *URLRules, report *model.InsightReport) {
	if rules == nil || page.WebsiteURL == "" {
		return
	}

	target := page.WebsiteURL
	if rules.PathOnly {
		if u, err := url.Parse(page.WebsiteURL); err == nil {
			target = strings.TrimPrefix(u.Path, "/")
		}
	}

	for _, rule := range rules.Rules {
		if rule.re == nil {
			continue
		}
		if rule.re.MatchString(target) {
			report.Add(severity(rule.Severity), rule.Message)
		}
	}
}

// truthy reports whether a decoded JSON value is non-empty, mirroring the
// presence semantics of the structured data checks.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	default:
		return true
	}
}
