package seo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgx02c/web-anlysis-scraper/internal/model"
	"github.com/jgx02c/web-anlysis-scraper/internal/seo"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

const testDomain = "example.com"

func extract(t *testing.T, html, source string) *model.PageFeatures {
	t.Helper()
	page, err := seo.NewExtractor(testDomain).Extract(html, source)
	require.NoError(t, err)
	return page
}

func TestExtract_Title(t *testing.T) {
	t.Parallel()

	t.Run("present title is trimmed", func(t *testing.T) {
		t.Parallel()
		page := extract(t, `<html><head><title>  My Page  </title></head><body></body></html>`, "page.html")
		assert.Equal(t, "My Page", page.Title)
	})

	t.Run("missing title yields sentinel", func(t *testing.T) {
		t.Parallel()
		page := extract(t, `<html><head></head><body><p>hi</p></body></html>`, "page.html")
		assert.Equal(t, model.NoTitle, page.Title)
	})

	t.Run("empty title yields sentinel", func(t *testing.T) {
		t.Parallel()
		page := extract(t, `<html><head><title>   </title></head><body></body></html>`, "page.html")
		assert.Equal(t, model.NoTitle, page.Title)
	})
}

func TestExtract_MetaClassification(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<meta charset="utf-8">
		<meta name="description" content="A description.">
		<meta name="keywords" content="a,b">
		<meta name="robots" content="noindex">
		<meta property="og:title" content="OG Title">
		<meta name="twitter:card" content="summary">
		<meta name="viewport" content="width=device-width">
		<meta name="generator" content="builder">
		<meta name="empty" content="">
		<link rel="canonical" href="https://example.com/page">
	</head><body></body></html>`

	page := extract(t, html, "page.html")

	assert.Equal(t, "A description.", page.Meta.SEO["description"])
	assert.Equal(t, "a,b", page.Meta.SEO["keywords"])
	assert.Equal(t, "noindex", page.Meta.SEO["robots"])
	assert.Equal(t, "OG Title", page.Meta.SEO["og:title"])
	assert.Equal(t, "https://example.com/page", page.Meta.SEO["canonical"])
	assert.Equal(t, "summary", page.Meta.SocialMedia["twitter:card"])
	assert.Equal(t, "width=device-width", page.Meta.Technical["viewport"])
	assert.Equal(t, "builder", page.Meta.Technical["generator"])
	assert.Equal(t, "utf-8", page.Meta.Technical["charset"])

	// Tags without content are ignored entirely.
	assert.NotContains(t, page.Meta.Technical, "empty")
}

func TestExtract_MetaLastWins(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<meta name="description" content="first">
		<meta name="description" content="second">
	</head><body></body></html>`

	page := extract(t, html, "page.html")
	assert.Equal(t, "second", page.Meta.SEO["description"])
}

func TestExtract_MissingHead(t *testing.T) {
	t.Parallel()

	page := extract(t, `<body><p>just a body</p></body>`, "page.html")

	assert.Equal(t, model.NoTitle, page.Title)
	assert.Empty(t, page.Meta.SEO)
	assert.Empty(t, page.Meta.Technical)
	assert.Empty(t, page.Meta.SocialMedia)
	assert.Equal(t, "", page.HTMLLang)
}

func TestExtract_Links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about">About</a>
		<a href="https://example.com/contact" rel="nofollow">Contact</a>
		<a href="https://EXAMPLE.com/caps">Caps</a>
		<a href="//example.com/protocol-relative">PR</a>
		<a href="https://other.org/out">Out</a>
		<a href="">skipped</a>
		<a>no href</a>
	</body></html>`

	page := extract(t, html, "page.html")

	require.Len(t, page.Links.Internal, 4)
	require.Len(t, page.Links.External, 1)

	assert.Equal(t, "/about", page.Links.Internal[0].Href)
	assert.Equal(t, "About", page.Links.Internal[0].Text)
	assert.False(t, page.Links.Internal[0].Nofollow)
	assert.True(t, page.Links.Internal[1].Nofollow)
	assert.Equal(t, "https://other.org/out", page.Links.External[0].Href)
}

func TestExtract_Headings(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h1>First</h1>
		<h2>Sub A</h2>
		<h1>Second</h1>
		<h3> Deep </h3>
	</body></html>`

	page := extract(t, html, "page.html")

	assert.Equal(t, []string{"First", "Second"}, page.Headings["h1"])
	assert.Equal(t, []string{"Sub A"}, page.Headings["h2"])
	assert.Equal(t, []string{"Deep"}, page.Headings["h3"])

	// All six levels exist even when empty.
	for _, level := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		assert.Contains(t, page.Headings, level)
	}
	assert.Empty(t, page.Headings["h6"])
}

func TestExtract_ImagesLastWins(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img src="/a.png" alt="first" width="10" height="20">
		<img src="/b.png" alt="b">
		<img src="/a.png">
	</body></html>`

	page := extract(t, html, "page.html")
	require.Equal(t, 2, page.Images.Len())

	// The repeated src keeps its original position but takes the last
	// occurrence's attributes, so the alt falls back to the sentinel.
	first := page.Images.Oldest()
	assert.Equal(t, "/a.png", first.Key)
	assert.Equal(t, model.MissingAltText, first.Value.Alt)
	assert.Equal(t, "", first.Value.Width)

	b, ok := page.Images.Get("/b.png")
	require.True(t, ok)
	assert.Equal(t, "b", b.Alt)
}

func TestExtract_ImageAttributes(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img src="/lazy.png" alt="lazy" loading="lazy" width="5" height="5">
		<img src="/eager.png" alt="">
	</body></html>`

	page := extract(t, html, "page.html")

	lazy, ok := page.Images.Get("/lazy.png")
	require.True(t, ok)
	assert.True(t, lazy.LazyLoading)
	assert.Equal(t, "5", lazy.Width)

	eager, ok := page.Images.Get("/eager.png")
	require.True(t, ok)
	assert.False(t, eager.LazyLoading)
	assert.Equal(t, model.MissingAltText, eager.Alt)
}

func TestExtract_StructuredData(t *testing.T) {
	t.Parallel()

	t.Run("valid json-ld is parsed", func(t *testing.T) {
		t.Parallel()
		html := `<html><head>
			<script type="application/ld+json">{"@context": "https://schema.org", "@type": "Article"}</script>
		</head><body></body></html>`

		page := extract(t, html, "page.html")
		require.Len(t, page.StructuredData, 1)

		obj, ok := page.StructuredData[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Article", obj["@type"])
	})

	t.Run("invalid json-ld becomes error marker", func(t *testing.T) {
		t.Parallel()
		html := `<html><head>
			<script type="application/ld+json">{not json</script>
		</head><body></body></html>`

		page := extract(t, html, "page.html")
		require.Len(t, page.StructuredData, 1)
		assert.Equal(t, map[string]any{"error": "Invalid JSON-LD"}, page.StructuredData[0])
	})

	t.Run("empty blocks are skipped", func(t *testing.T) {
		t.Parallel()
		html := `<html><head>
			<script type="application/ld+json">   </script>
		</head><body></body></html>`

		page := extract(t, html, "page.html")
		assert.Empty(t, page.StructuredData)
	})
}

func TestExtract_ContentStripsScriptsAndStyles(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<style>body { color: red }</style>
		<script>var hidden = "secret words here";</script>
	</head><body>
		<p>visible   words
		only</p>
	</body></html>`

	page := extract(t, html, "page.html")

	assert.Equal(t, "visible words only", page.Content)
	assert.Equal(t, 3, page.WordCount)
	assert.NotContains(t, page.Content, "secret")
	assert.NotContains(t, page.Content, "color")
}

func TestExtract_FramesLoginAndJS(t *testing.T) {
	t.Parallel()

	html := `<html lang="en"><body>
		<iframe src="/embedded"></iframe>
		<iframe src="/ads"></iframe>
		<input type="password" name="pw">
		<div onclick="go()">click</div>
		<img src="/x.png" onload="track()">
		<div data-js-content="true">dynamic</div>
	</body></html>`

	page := extract(t, html, "page.html")

	assert.Equal(t, 2, page.Frames)
	assert.True(t, page.RequiresLogin)
	assert.Equal(t, 3, page.JSDependent)
	assert.Equal(t, "en", page.HTMLLang)
}

func TestExtract_LoginFormAttribute(t *testing.T) {
	t.Parallel()

	page := extract(t, `<html><body><form type="login"></form></body></html>`, "page.html")
	assert.True(t, page.RequiresLogin)

	page = extract(t, `<html><body><form action="/search"></form></body></html>`, "page.html")
	assert.False(t, page.RequiresLogin)
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	html := `<html lang="en"><head><title>Stable</title></head><body>
		<h1>Stable</h1><img src="/a.png"><a href="/x">x</a>
	</body></html>`

	first := extract(t, html, "example.com_x.html")
	second := extract(t, html, "example.com_x.html")

	assert.Equal(t, mustJSON(t, first), mustJSON(t, second))
}

func TestReconstructURL(t *testing.T) {
	t.Parallel()

	extractor := seo.NewExtractor(testDomain)

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "separators and extension",
			source: "example.com_about_us.html",
			want:   "https://example.com/about/us",
		},
		{
			name:   "leading directory prefix is dropped",
			source: "saved_pages_example.com_pricing.html",
			want:   "https://example.com/pricing",
		},
		{
			name:   "root page",
			source: "example.com_.html",
			want:   "https://example.com/",
		},
		{
			name:   "domain not present",
			source: "somethingelse.org_page.html",
			want:   "",
		},
		{
			name:   "case-insensitive domain match",
			source: "Example.COM_caps.html",
			want:   "https://Example.COM/caps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractor.ReconstructURL(tt.source))
		})
	}
}

func TestReconstructURL_NoDomainConfigured(t *testing.T) {
	t.Parallel()

	extractor := seo.NewExtractor("")
	assert.Equal(t, "", extractor.ReconstructURL("example.com_page.html"))
}
