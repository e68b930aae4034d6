// Package seo extracts SEO-relevant features from raw HTML documents and
// evaluates them against a declarative rule set.
package seo

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jgx02c/web-anlysis-scraper/internal/model"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/errs"
)

// seoMetaNames are the meta tag names classified under the SEO category.
var seoMetaNames = map[string]bool{
	"description": true,
	"keywords":    true,
	"robots":      true,
	"canonical":   true,
}

// Extractor parses HTML documents into feature records. The configured site
// domain drives link classification and URL reconstruction.
type Extractor struct {
	domain string
}

// NewExtractor returns an Extractor for the given site domain.
func NewExtractor(domain string) *Extractor {
	return &Extractor{domain: domain}
}

// Extract parses one HTML document into a PageFeatures record. Malformed
// HTML never fails; missing tags degrade to sentinel values. The source
// argument identifies the document (a file name or path) and is used only
// for URL reconstruction.
func (e *Extractor) Extract(htmlText, source string) (*model.PageFeatures, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ParsingFailed,
			Message: "Failed to parse the HTML content.",
			Cause:   err,
		}
	}

	page := model.NewPageFeatures()
	page.WebsiteURL = e.ReconstructURL(source)

	// JSON-LD blocks live in script tags, so collect them before the
	// script/style removal below drops them from the tree.
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		body := strings.TrimSpace(s.Text())
		if body == "" {
			return
		}
		var parsed any
		if err := json.Unmarshal([]byte(body), &parsed); err != nil {
			page.StructuredData = append(page.StructuredData, map[string]any{"error": "Invalid JSON-LD"})
			return
		}
		page.StructuredData = append(page.StructuredData, parsed)
	})

	// Scripts and styles must not contribute to content or any
	// text-derived field.
	doc.Find("script, style").Remove()

	page.Title = extractTitle(doc)
	extractMeta(doc, &page.Meta)
	e.extractLinks(doc, &page.Links)
	extractHeadings(doc, page.Headings)
	extractImages(doc, page)

	page.Content, page.WordCount = visibleText(doc)
	page.Frames = doc.Find("frame, iframe").Length()
	page.RequiresLogin = doc.Find(`form[type="login"]`).Length() > 0 ||
		doc.Find(`input[type="password"]`).Length() > 0
	page.JSDependent = doc.Find("[onclick], [onload], [onscroll], [data-js-content]").Length()
	page.HTMLLang = doc.Find("html").AttrOr("lang", "")

	return page, nil
}

func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return model.NoTitle
	}
	return title
}

func extractMeta(doc *goquery.Document, meta *model.MetaTags) {
	// The canonical link is recorded under the SEO category alongside the
	// meta tags; a later meta tag named "canonical" overwrites it.
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		meta.SEO["canonical"] = href
	}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if name == "" {
			name, _ = s.Attr("property")
		}
		content, _ := s.Attr("content")

		if name != "" && content != "" {
			switch {
			case seoMetaNames[name] || strings.HasPrefix(name, "og:"):
				meta.SEO[name] = content
			case strings.HasPrefix(name, "twitter:"):
				meta.SocialMedia[name] = content
			default:
				meta.Technical[name] = content
			}
		}

		if charset, _ := s.Attr("charset"); charset != "" {
			meta.Technical["charset"] = charset
		}
	})
}

func (e *Extractor) extractLinks(doc *goquery.Document, groups *model.LinkGroups) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}

		link := model.Link{
			Href:     href,
			Text:     strings.TrimSpace(s.Text()),
			Nofollow: relContains(s.AttrOr("rel", ""), "nofollow"),
		}

		if e.isInternal(href) {
			groups.Internal = append(groups.Internal, link)
		} else {
			groups.External = append(groups.External, link)
		}
	})
}

// isInternal classifies a link as internal when its href is root-relative or
// contains the configured site domain. The comparison is case-insensitive so
// protocol-relative and differently-cased variants classify the same way.
func (e *Extractor) isInternal(href string) bool {
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return true
	}
	if e.domain == "" {
		return false
	}
	return strings.Contains(strings.ToLower(href), strings.ToLower(e.domain))
}

func relContains(rel, token string) bool {
	for _, t := range strings.Fields(rel) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

func extractHeadings(doc *goquery.Document, headings map[string][]string) {
	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		doc.Find(level).Each(func(_ int, s *goquery.Selection) {
			headings[level] = append(headings[level], strings.TrimSpace(s.Text()))
		})
	}
}

// extractImages records one entry per src. A repeated src keeps its original
// position but takes the attributes of the last occurrence; this last-wins
// behavior is relied on downstream and must not be changed to a merge.
func extractImages(doc *goquery.Document, page *model.PageFeatures) {
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt := s.AttrOr("alt", "")
		if alt == "" {
			alt = model.MissingAltText
		}

		page.Images.Set(s.AttrOr("src", ""), model.Image{
			Alt:         alt,
			Width:       s.AttrOr("width", ""),
			Height:      s.AttrOr("height", ""),
			LazyLoading: s.AttrOr("loading", "") == "lazy",
		})
	})
}

// visibleText collects the text of every remaining text node in document
// order, collapses whitespace runs to single spaces, and returns the result
// with its whitespace-delimited token count.
func visibleText(doc *goquery.Document) (string, int) {
	var b strings.Builder
	for _, root := range doc.Nodes {
		collectText(root, &b)
	}
	words := strings.Fields(b.String())
	return strings.Join(words, " "), len(words)
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// ReconstructURL derives the canonical page URL from a source file name:
// underscores become path separators, a trailing .html extension is dropped,
// and the result is re-rooted at the first occurrence of the configured
// domain. Returns an empty string when the domain does not appear in the
// source, in which case URL-based checks are skipped for the document.
func (e *Extractor) ReconstructURL(source string) string {
	if e.domain == "" {
		return ""
	}

	path := strings.ReplaceAll(source, "_", "/")
	path = strings.TrimSuffix(path, ".html")

	idx := strings.Index(strings.ToLower(path), strings.ToLower(e.domain))
	if idx < 0 {
		return ""
	}

	return "https://" + path[idx:]
}
