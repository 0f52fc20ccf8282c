// Package i18n holds the translation tables and the active language.
//
// A Localizer is created once and handed to everything that renders text.
// All readers see the same active language; SetLanguage replaces it atomically.
package i18n

import (
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when a requested language is not supported.
const DefaultLanguage = "en"

// Localizer translates keys for one active language at a time.
type Localizer struct {
	tables   map[string]map[string]string
	codes    []string
	matcher  language.Matcher
	fallback string
	active   atomic.Pointer[string]
}

// New returns a Localizer over the built-in tables with defaultLang active.
// An unsupported defaultLang is replaced by DefaultLanguage.
func New(defaultLang string) *Localizer {
	return NewWithTables(defaultLang, builtinTables)
}

// NewWithTables builds a Localizer over custom tables keyed by language code.
// DefaultLanguage must be one of them for the fallback to be meaningful.
func NewWithTables(defaultLang string, tables map[string]map[string]string) *Localizer {
	l := &Localizer{tables: tables}

	// The matcher prefers the first tag on ties, so the fallback goes first.
	l.codes = append(l.codes, DefaultLanguage)
	for code := range tables {
		if code != DefaultLanguage {
			l.codes = append(l.codes, code)
		}
	}
	sort.Strings(l.codes[1:])
	tags := make([]language.Tag, 0, len(l.codes))
	for _, code := range l.codes {
		tags = append(tags, language.Make(code))
	}
	l.matcher = language.NewMatcher(tags)

	l.fallback = DefaultLanguage
	l.fallback = l.match(defaultLang)
	l.active.Store(&l.fallback)
	return l
}

// Translate returns the text for key in the active language, or key itself
// when the active table has no non-empty entry for it.
func (l *Localizer) Translate(key string) string {
	if v := l.tables[l.Language()][key]; v != "" {
		return v
	}
	return key
}

// SetLanguage activates the supported language closest to code and returns it.
// Unknown or malformed codes activate the default language.
func (l *Localizer) SetLanguage(code string) string {
	chosen := l.match(code)
	l.active.Store(&chosen)
	return chosen
}

// Language returns the active language code.
func (l *Localizer) Language() string {
	return *l.active.Load()
}

// Supported lists the language codes with a table, default first.
func (l *Localizer) Supported() []string {
	return append([]string(nil), l.codes...)
}

func (l *Localizer) match(code string) string {
	code = strings.TrimSpace(code)
	if _, ok := l.tables[strings.ToLower(code)]; ok {
		return strings.ToLower(code)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return l.fallback
	}
	_, idx, conf := l.matcher.Match(tag)
	if conf == language.No {
		return l.fallback
	}
	// Only regional variants of a supported language count as a match.
	want, _ := tag.Base()
	got, _ := language.Make(l.codes[idx]).Base()
	if want != got {
		return l.fallback
	}
	return l.codes[idx]
}
