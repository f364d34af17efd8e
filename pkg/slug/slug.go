// Package slug turns project titles into URL-safe slugs. Titles here are
// mostly Turkish, so lowercasing goes through the Turkish collation rules
// (İ→i, I→ı) before transliteration; plain strings.ToLower corrupts both.
package slug

import (
	"crypto/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var turkishLower = cases.Lower(language.Turkish)

// asciiMap transliterates Turkish and common Latin diacritics to ASCII.
var asciiMap = map[rune]rune{
	'ç': 'c', 'ğ': 'g', 'ı': 'i', 'ö': 'o', 'ş': 's', 'ü': 'u',
	'â': 'a', 'î': 'i', 'û': 'u',
	'à': 'a', 'á': 'a', 'ä': 'a', 'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'ï': 'i', 'ò': 'o', 'ó': 'o', 'ô': 'o',
	'ù': 'u', 'ú': 'u', 'ñ': 'n', 'ß': 's',
}

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength    int
	suffixLength int
}

// MaxLength truncates the slug to at most n runes (before any suffix).
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// WithSuffix appends a random alphanumeric suffix of the given length,
// separated by a dash. Used on retry after a slug collision.
func WithSuffix(length int) Option {
	return func(c *config) { c.suffixLength = length }
}

// Make creates a URL-safe slug from the input string.
func Make(s string, opts ...Option) string {
	cfg := &config{maxLength: 60}
	for _, opt := range opts {
		opt(cfg)
	}

	s = turkishLower.String(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastWasDash := true // suppress leading dash
	count := 0

	for _, r := range s {
		if cfg.maxLength > 0 && count >= cfg.maxLength {
			break
		}

		if mapped, ok := asciiMap[r]; ok {
			r = mapped
		}

		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastWasDash = false
			count++
		case !lastWasDash:
			b.WriteByte('-')
			lastWasDash = true
			count++
		}
	}

	result := strings.Trim(b.String(), "-")

	if cfg.suffixLength > 0 {
		suffix := randomSuffix(cfg.suffixLength)
		if result == "" {
			return suffix
		}
		result = result + "-" + suffix
	}

	return result
}

const suffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		// Deterministic fallback; collisions resolved by the unique index anyway.
		for i := range b {
			b[i] = suffixCharset[i%len(suffixCharset)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = suffixCharset[b[i]%byte(len(suffixCharset))]
	}
	return string(b)
}
