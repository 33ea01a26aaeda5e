// Package redact applies defense-in-depth redaction of sensitive
// personal attributes (age, marital status, disability, other
// protected-category self-disclosures) to resume text before it is
// sent to any LLM. The system prompt already instructs the model to
// ignore such attributes; this package removes them from the input
// outright so a prompt-injection attempt embedded in a resume cannot
// resurrect them.
package redact

import (
	"regexp"

	"github.com/ryo-aien/recruiting-screening-assistant/internal/config"
)

// CompiledPattern holds a pre-compiled regex and its replacement text.
type CompiledPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
}

// Redactor applies a fixed set of compiled patterns to text.
type Redactor struct {
	patterns []*CompiledPattern
}

// New compiles the patterns enabled by cfg.
func New(cfg config.RedactConfig) *Redactor {
	r := &Redactor{}
	if cfg.Age {
		r.patterns = append(r.patterns, agePatterns()...)
	}
	if cfg.MaritalStatus {
		r.patterns = append(r.patterns, maritalStatusPatterns()...)
	}
	if cfg.Disability {
		r.patterns = append(r.patterns, disabilityPatterns()...)
	}
	if cfg.ProtectedCategory {
		r.patterns = append(r.patterns, protectedCategoryPatterns()...)
	}
	return r
}

// Redact runs every enabled pattern over text in order and returns the
// result. It never errors: an unmatched pattern simply leaves the text
// unchanged.
func (r *Redactor) Redact(text string) string {
	for _, p := range r.patterns {
		text = p.Regex.ReplaceAllString(text, p.Replacement)
	}
	return text
}

func compile(name, pattern, replacement string) *CompiledPattern {
	return &CompiledPattern{
		Name:        name,
		Regex:       regexp.MustCompile(pattern),
		Replacement: replacement,
	}
}
