package seo

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jgx02c/web-anlysis-scraper/internal/model"
	"github.com/jgx02c/web-anlysis-scraper/internal/platform/errs"
)

// Rules is the declarative rule set applied by Evaluate. It is loaded once
// at startup and never mutated; callers share a single read-only instance.
// A nil section disables its check.
type Rules struct {
	Title           *TitleRule           `yaml:"title"`
	MetaDescription *MetaDescriptionRule `yaml:"meta_description"`
	Content         *ContentRule         `yaml:"content"`
	Headings        *HeadingRules        `yaml:"headings"`
	URL             *URLRules            `yaml:"url"`
}

// TitleRule configures the title length check.
type TitleRule struct {
	Severity  string `yaml:"severity" validate:"omitempty,oneof=immediate attention"`
	MaxLength int    `yaml:"max_length" validate:"gt=0"`
	Messages  struct {
		Missing string `yaml:"missing" validate:"required"`
		TooLong string `yaml:"too_long" validate:"required"`
		Good    string `yaml:"good" validate:"required"`
	} `yaml:"messages"`
}

// MetaDescriptionRule configures the meta description length check.
type MetaDescriptionRule struct {
	MaxLength int `yaml:"max_length" validate:"gt=0"`
	Messages  struct {
		Missing string `yaml:"missing" validate:"required"`
		TooLong string `yaml:"too_long" validate:"required"`
		Good    string `yaml:"good" validate:"required"`
	} `yaml:"messages"`
}

// ContentRule configures the minimum word count check.
type ContentRule struct {
	MinWords int `yaml:"min_words" validate:"gt=0"`
	Messages struct {
		TooShort string `yaml:"too_short" validate:"required"`
	} `yaml:"messages"`
}

// HeadingRules configures heading structure checks.
type HeadingRules struct {
	H1 *H1Rule `yaml:"h1"`
}

// H1Rule configures the h1 count check.
type H1Rule struct {
	MaxCount int `yaml:"max_count" validate:"gt=0"`
	Messages struct {
		Missing string `yaml:"missing" validate:"required"`
		TooMany string `yaml:"too_many" validate:"required"`
		Good    string `yaml:"good" validate:"required"`
	} `yaml:"messages"`
}

// URLRules configures pattern matching against the reconstructed page URL.
type URLRules struct {
	PathOnly bool             `yaml:"path_only"`
	Rules    []URLPatternRule `yaml:"rules"`
}

// URLPatternRule triggers a message when its pattern matches the URL path.
type URLPatternRule struct {
	Pattern  string `yaml:"pattern"`
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`

	re *regexp.Regexp
}

// LoadRules reads a YAML rule file. Sections that fail validation are
// dropped rather than failing the load, so one bad rule never disables the
// rest. An unreadable or unparsable file is an error: a configured rule
// path that cannot be used at all should be loud, not silently ignored.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.RulesInvalid,
			Message: fmt.Sprintf("Cannot read rules file %q.", path),
			Cause:   err,
		}
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, &errs.AppError{
			Kind:    errs.RulesInvalid,
			Message: fmt.Sprintf("Rules file %q is not valid YAML.", path),
			Cause:   err,
		}
	}

	rules.prune(validator.New(validator.WithRequiredStructEnabled()))
	rules.compile()
	return &rules, nil
}

// prune drops sections that fail struct validation.
func (r *Rules) prune(v *validator.Validate) {
	if r.Title != nil && v.Struct(r.Title) != nil {
		r.Title = nil
	}
	if r.MetaDescription != nil && v.Struct(r.MetaDescription) != nil {
		r.MetaDescription = nil
	}
	if r.Content != nil && v.Struct(r.Content) != nil {
		r.Content = nil
	}
	if r.Headings != nil && r.Headings.H1 != nil && v.Struct(r.Headings.H1) != nil {
		r.Headings.H1 = nil
	}
}

// compile builds the regexps for URL pattern rules, dropping entries with a
// missing message or an invalid pattern.
func (r *Rules) compile() {
	if r.URL == nil {
		return
	}

	kept := r.URL.Rules[:0]
	for _, rule := range r.URL.Rules {
		if rule.Message == "" {
			continue
		}
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			continue
		}
		rule.re = re
		kept = append(kept, rule)
	}
	r.URL.Rules = kept
}

// severity maps a rule severity string to a report bucket. Anything other
// than "immediate" lands in Needs Attention.
func severity(s string) model.Severity {
	if s == "immediate" {
		return model.SeverityImmediate
	}
	return model.SeverityAttention
}

// interpolate substitutes {name} placeholders in a message template.
func interpolate(tpl string, vars map[string]any) string {
	for k, v := range vars {
		tpl = strings.ReplaceAll(tpl, "{"+k+"}", fmt.Sprint(v))
	}
	return tpl
}

// DefaultRules returns the built-in rule set used when no rules file is
// configured.
func DefaultRules() *Rules {
	rules := &Rules{
		Title:           &TitleRule{Severity: "immediate", MaxLength: 60},
		MetaDescription: &MetaDescriptionRule{MaxLength: 160},
		Content:         &ContentRule{MinWords: 300},
		Headings:        &HeadingRules{H1: &H1Rule{MaxCount: 1}},
		URL: &URLRules{
			PathOnly: true,
			Rules: []URLPatternRule{
				{
					Pattern:  `[A-Z]`,
					Severity: "attention",
					Message:  "URL path contains uppercase letters. URLs should be lowercase.",
				},
				{
					Pattern:  `\s`,
					Severity: "immediate",
					Message:  "URL path contains spaces. Use hyphens instead.",
				},
				{
					Pattern:  `[^a-zA-Z0-9\-/_.]`,
					Severity: "immediate",
					Message:  "URL contains special characters. Use only letters, numbers, and hyphens.",
				},
			},
		},
	}

	rules.Title.Messages.Missing = "Missing or empty <title> tag. Every page must have a unique title."
	rules.Title.Messages.TooLong = "Title length is {length} characters. Consider keeping it under 60 characters."
	rules.Title.Messages.Good = "Title tag is present and within recommended length."

	rules.MetaDescription.Messages.Missing = "No meta description found. This is crucial for SEO."
	rules.MetaDescription.Messages.TooLong = "Meta description exceeds 160 characters. Consider shortening it."
	rules.MetaDescription.Messages.Good = "Meta description is present and within recommended length."

	rules.Content.Messages.TooShort = "Page contains only {word_count} words. Consider adding more quality content."

	rules.Headings.H1.Messages.Missing = "No H1 tag found. Each page should have exactly one H1."
	rules.Headings.H1.Messages.TooMany = "Multiple H1 tags found ({count}). Use only one H1 per page."
	rules.Headings.H1.Messages.Good = "Page has exactly one H1 tag."

	rules.compile()
	return rules
}
