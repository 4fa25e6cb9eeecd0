// Package i18n provides the user-facing message catalog. Messages are
// grouped per locale in embedded JSON files; lookups resolve the
// requested language tag against the available locales and fall back
// to the base locale for missing keys.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// BaseLocale is the canonical source locale. Every key must be defined
// here; other locales may translate a subset.
const BaseLocale = "es"

//go:embed locales/*.json
var embeddedLocales embed.FS

// Bundle holds all loaded locale catalogs and resolves language tags
// against them.
type Bundle struct {
	locales map[string]map[string]string
	matcher language.Matcher
	tags    []language.Tag
}

// LoadEmbedded loads the locale catalogs embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads locale catalogs from a filesystem laid out as
// locales/<locale>.json, each file a flat string-to-string object.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.json")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: make(map[string]map[string]string)}

	for _, path := range paths {
		locale := strings.TrimSuffix(strings.TrimPrefix(path, "locales/"), ".json")
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		messages := make(map[string]string)
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("catalog %s: no messages", path)
		}

		b.locales[locale] = messages
		b.tags = append(b.tags, tag)
	}

	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %q is not defined", BaseLocale)
	}

	// Translated locales may lag the base but never invent keys.
	for locale, messages := range b.locales {
		for key := range messages {
			if _, exists := base[key]; !exists {
				return nil, fmt.Errorf("catalog %s: key %q missing from base locale", locale, key)
			}
		}
	}

	// The matcher prefers the base locale when nothing else fits.
	sort.Slice(b.tags, func(i, j int) bool {
		if b.tags[i].String() == BaseLocale {
			return true
		}
		if b.tags[j].String() == BaseLocale {
			return false
		}
		return b.tags[i].String() < b.tags[j].String()
	})
	b.matcher = language.NewMatcher(b.tags)

	return b, nil
}

// Resolve maps an arbitrary language tag ("en-GB", "pt_BR") to one of
// the available locales. Unknown tags resolve to the base locale.
func (b *Bundle) Resolve(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	tag, err := language.Parse(normalized)
	if err != nil {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(tag)
	if confidence == language.No {
		return BaseLocale
	}
	return b.tags[index].String()
}

// Locales returns the available locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// T returns the message for the key in the given language, formatted
// with args when present. Missing keys fall back to the base locale,
// and a key absent everywhere is returned verbatim so the UI never
// shows an empty string.
func (b *Bundle) T(lang, key string, args ...any) string {
	locale := b.Resolve(lang)

	msg, ok := b.locales[locale][key]
	if !ok {
		msg, ok = b.locales[BaseLocale][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
