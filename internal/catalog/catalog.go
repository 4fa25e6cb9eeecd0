// Package catalog loads and indexes the country data for one language.
// A Catalog is immutable once loaded: lookups never mutate it and it is
// safe for concurrent reads.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"geoquiz/internal/domain"
	"geoquiz/internal/domain/match"
)

// DefaultLanguage is used when no language is configured or the
// requested one is unknown.
const DefaultLanguage = "es"

// languageFiles maps a supported language to its data file.
var languageFiles = map[string]string{
	"es": "countries_es.csv",
	"en": "countries_en.csv",
	"de": "countries_de.csv",
	"it": "countries_it.csv",
	"pt": "countries_pt.csv",
}

//go:embed data/countries_es.csv data/countries_en.csv
var embeddedData embed.FS

// Catalog holds every Country of one language, with derived indexes for
// capital and continent lookups.
type Catalog struct {
	language    string
	countries   map[string]*domain.Country // keyed by code
	byCapital   map[string]string          // normalized capital -> code
	byContinent map[string][]string        // continent -> codes
	continents  []string
	codes       []string
	logger      *slog.Logger
}

// Languages returns the supported language tags, sorted.
func Languages() []string {
	langs := make([]string, 0, len(languageFiles))
	for lang := range languageFiles {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Supported reports whether lang is a known catalog language.
func Supported(lang string) bool {
	_, ok := languageFiles[lang]
	return ok
}

// Load reads the country data for the given language. When fsys is nil
// the embedded data files are used; a non-nil fsys (e.g. a data
// directory) takes precedence, falling back to the embedded files for
// languages it does not carry. An unsupported language falls back to
// DefaultLanguage with a logged warning, as does a supported language
// whose data file cannot be found.
func Load(fsys fs.FS, lang string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "catalog"))

	if !Supported(lang) {
		logger.Warn("unsupported catalog language, falling back",
			slog.String("language", lang),
			slog.String("fallback", DefaultLanguage))
		lang = DefaultLanguage
	}

	rows, err := readRows(fsys, languageFiles[lang], logger)
	if errors.Is(err, domain.ErrNotFound) && lang != DefaultLanguage {
		// Supported but not embedded (de/it/pt ship via a data dir).
		logger.Warn("no data file for language, falling back",
			slog.String("language", lang),
			slog.String("fallback", DefaultLanguage))
		lang = DefaultLanguage
		rows, err = readRows(fsys, languageFiles[lang], logger)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog for language %q: %w", lang, err)
	}

	c := &Catalog{
		language:    lang,
		countries:   make(map[string]*domain.Country, len(rows)),
		byCapital:   make(map[string]string, len(rows)),
		byContinent: make(map[string][]string),
		logger:      logger,
	}

	for _, row := range rows {
		country, err := domain.NewCountry(row.code, row.name, row.capital, row.continent)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog row for %q: %w", row.code, err)
		}
		country.Aliases = nameAliases(lang, country.Code)
		country.CapitalAliases = capitalAliases(lang, country.Code)

		if _, dup := c.countries[country.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate country code %q", domain.ErrValidation, country.Code)
		}
		c.countries[country.Code] = country
		c.byCapital[match.Normalize(country.Capital)] = country.Code
		c.byContinent[country.Continent] = append(c.byContinent[country.Continent], country.Code)
		c.codes = append(c.codes, country.Code)
	}

	sort.Strings(c.codes)
	for continent := range c.byContinent {
		c.continents = append(c.continents, continent)
	}
	sort.Strings(c.continents)

	logger.Debug("catalog loaded",
		slog.String("language", lang),
		slog.Int("countries", len(c.countries)),
		slog.Int("continents", len(c.continents)))

	return c, nil
}

// Language returns the language this catalog was loaded for.
func (c *Catalog) Language() string {
	return c.language
}

// Len returns the number of countries in the catalog.
func (c *Catalog) Len() int {
	return len(c.countries)
}

// ByCode returns the country with the given code.
// Returns domain.ErrNotFound if the code is not in the catalog.
func (c *Catalog) ByCode(code string) (*domain.Country, error) {
	country, ok := c.countries[code]
	if !ok {
		return nil, fmt.Errorf("%w: country %q", domain.ErrNotFound, code)
	}
	return country, nil
}

// ByCapital returns the country whose capital matches the given name
// after normalization, considering capital aliases.
// Returns domain.ErrNotFound when no capital matches.
func (c *Catalog) ByCapital(capital string) (*domain.Country, error) {
	normalized := match.Normalize(capital)
	if code, ok := c.byCapital[normalized]; ok {
		return c.countries[code], nil
	}
	// Capital aliases are few per country, so a linear scan is fine.
	for _, country := range c.countries {
		for _, alias := range country.CapitalAliases {
			if match.Normalize(alias) == normalized {
				return country, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: capital %q", domain.ErrNotFound, capital)
}

// Continents returns all continent tags present in the catalog, sorted.
func (c *Catalog) Continents() []string {
	out := make([]string, len(c.continents))
	copy(out, c.continents)
	return out
}

// Codes returns the codes of every country matching the region filter.
// Region domain.RegionAll (or "") selects the whole catalog. The result
// is a fresh slice in stable order; an unknown continent yields an
// empty slice, not an error, matching the menu behavior of showing an
// empty pool.
func (c *Catalog) Codes(region string) []string {
	if region == "" || region == domain.RegionAll {
		out := make([]string, len(c.codes))
		copy(out, c.codes)
		return out
	}
	codes := c.byContinent[region]
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// HasAll reports whether every given code exists in the catalog. It is
// used by the progress store to detect stale saves.
func (c *Catalog) HasAll(codes ...string) bool {
	for _, code := range codes {
		if code == "" {
			continue
		}
		if _, ok := c.countries[code]; !ok {
			return false
		}
	}
	return true
}
