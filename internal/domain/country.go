package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Country-specific validation errors
var (
	// ErrCountryCodeEmpty is returned when a country code is empty.
	ErrCountryCodeEmpty = errors.New("country code cannot be empty")

	// ErrCountryNameEmpty is returned when a country name is empty.
	ErrCountryNameEmpty = errors.New("country name cannot be empty")

	// ErrCountryCapitalEmpty is returned when a country capital is empty.
	ErrCountryCapitalEmpty = errors.New("country capital cannot be empty")

	// ErrCountryContinentEmpty is returned when a continent tag is empty.
	ErrCountryContinentEmpty = errors.New("country continent cannot be empty")
)

// RegionAll is the region filter meaning "no continent restriction".
const RegionAll = "all"

// Country is one quizzable country in the active language. A Country is
// immutable once loaded from the catalog; alias slices are fixed
// configuration, never mutated per game.
type Country struct {
	// Code is an ISO 3166-1 alpha-2 style identifier and the unique key
	// for the country across languages (e.g. "FR", "JP").
	Code string `json:"code"`

	// Name is the canonical localized country name.
	Name string `json:"name"`

	// Aliases are alternate accepted spellings and abbreviations for the
	// country name in the active language (e.g. "uk" for the United
	// Kingdom).
	Aliases []string `json:"aliases,omitempty"`

	// Capital is the localized capital name.
	Capital string `json:"capital"`

	// CapitalAliases are alternate accepted spellings for the capital
	// (e.g. "washington dc").
	CapitalAliases []string `json:"capital_aliases,omitempty"`

	// Continent is the localized continent tag used for region filtering.
	Continent string `json:"continent"`
}

// NewCountry creates a Country with an uppercased code and validates it.
func NewCountry(code, name, capital, continent string) (*Country, error) {
	c := &Country{
		Code:      strings.ToUpper(strings.TrimSpace(code)),
		Name:      strings.TrimSpace(name),
		Capital:   strings.TrimSpace(capital),
		Continent: strings.TrimSpace(continent),
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Country has valid data.
// Returns an error if any field fails validation.
func (c *Country) Validate() error {
	if c.Code == "" {
		return ErrCountryCodeEmpty
	}

	if len(c.Code) < 2 || len(c.Code) > 3 {
		return fmt.Errorf("%w: country code %q must be 2 or 3 letters", ErrValidation, c.Code)
	}

	if c.Name == "" {
		return ErrCountryNameEmpty
	}

	if c.Capital == "" {
		return ErrCountryCapitalEmpty
	}

	if c.Continent == "" {
		return ErrCountryContinentEmpty
	}

	return nil
}

// AcceptedNames returns the canonical value plus every registered alias
// for the field the given mode asks about. The returned slice is a fresh
// copy; mutating it does not affect the Country.
func (c *Country) AcceptedNames(mode Mode) []string {
	switch mode {
	case ModeNameToCapital:
		names := make([]string, 0, 1+len(c.CapitalAliases))
		names = append(names, c.Capital)
		names = append(names, c.CapitalAliases...)
		return names
	default:
		// Flag and capital prompts both expect the country name.
		names := make([]string, 0, 1+len(c.Aliases))
		names = append(names, c.Name)
		names = append(names, c.Aliases...)
		return names
	}
}
