package seo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgx02c/web-anlysis-scraper/internal/platform/errs"
	"github.com/jgx02c/web-anlysis-scraper/internal/seo"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRules_Valid(t *testing.T) {
	t.Parallel()

	path := writeRules(t, `
title:
  severity: immediate
  max_length: 55
  messages:
    missing: "Missing title."
    too_long: "Title is {length} characters."
    good: "Title ok."
content:
  min_words: 250
  messages:
    too_short: "Only {word_count} words."
url:
  path_only: true
  rules:
    - pattern: "[A-Z]"
      severity: attention
      message: "Uppercase in path."
`)

	rules, err := seo.LoadRules(path)
	require.NoError(t, err)

	require.NotNil(t, rules.Title)
	assert.Equal(t, 55, rules.Title.MaxLength)
	assert.Equal(t, "immediate", rules.Title.Severity)

	require.NotNil(t, rules.Content)
	assert.Equal(t, 250, rules.Content.MinWords)

	require.NotNil(t, rules.URL)
	assert.True(t, rules.URL.PathOnly)
	require.Len(t, rules.URL.Rules, 1)

	// Sections absent from the file stay disabled.
	assert.Nil(t, rules.MetaDescription)
	assert.Nil(t, rules.Headings)
}

func TestLoadRules_InvalidSectionIsDropped(t *testing.T) {
	t.Parallel()

	// max_length of zero fails validation; the section is skipped while
	// the rest of the file loads.
	path := writeRules(t, `
title:
  max_length: 0
  messages:
    missing: "m"
    too_long: "t"
    good: "g"
content:
  min_words: 100
  messages:
    too_short: "Only {word_count} words."
`)

	rules, err := seo.LoadRules(path)
	require.NoError(t, err)

	assert.Nil(t, rules.Title)
	require.NotNil(t, rules.Content)
	assert.Equal(t, 100, rules.Content.MinWords)
}

func TestLoadRules_BadURLPatternIsDropped(t *testing.T) {
	t.Parallel()

	path := writeRules(t, `
url:
  path_only: true
  rules:
    - pattern: "[unclosed"
      severity: immediate
      message: "never triggers"
    - pattern: "\\s"
      severity: immediate
      message: "spaces"
    - pattern: "ok"
      severity: attention
      message: ""
`)

	rules, err := seo.LoadRules(path)
	require.NoError(t, err)

	// The invalid regex and the message-less rule are both dropped.
	require.NotNil(t, rules.URL)
	require.Len(t, rules.URL.Rules, 1)
	assert.Equal(t, "spaces", rules.URL.Rules[0].Message)
}

func TestLoadRules_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := seo.LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var appErr *errs.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.RulesInvalid, appErr.Kind)
}

func TestLoadRules_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeRules(t, "title: [unterminated")
	_, err := seo.LoadRules(path)
	require.Error(t, err)

	var appErr *errs.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.RulesInvalid, appErr.Kind)
}

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := seo.DefaultRules()

	require.NotNil(t, rules.Title)
	assert.Equal(t, 60, rules.Title.MaxLength)
	require.NotNil(t, rules.MetaDescription)
	assert.Equal(t, 160, rules.MetaDescription.MaxLength)
	require.NotNil(t, rules.Content)
	assert.Equal(t, 300, rules.Content.MinWords)
	require.NotNil(t, rules.Headings)
	require.NotNil(t, rules.Headings.H1)
	assert.Equal(t, 1, rules.Headings.H1.MaxCount)
	require.NotNil(t, rules.URL)
	assert.Len(t, rules.URL.Rules, 3)
}
