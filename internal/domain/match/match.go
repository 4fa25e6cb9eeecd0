package match

import (
	"geoquiz/internal/domain"
)

// Result is the outcome of evaluating one submitted answer.
type Result struct {
	// Correct reports whether the submission matched an accepted name.
	Correct bool

	// MatchedAlias is the accepted name (canonical or alias, in its
	// original spelling) the submission matched, or "" when incorrect.
	MatchedAlias string
}

// Evaluate compares a submitted answer against the accepted-name set of
// the country's target field for the given mode. Comparison is exact
// equality after normalization; the space-free forms are also compared
// so compound names may be typed without spaces. An empty submission is
// always incorrect.
func Evaluate(submitted string, c *domain.Country, mode domain.Mode) Result {
	normalized := Normalize(submitted)
	if normalized == "" {
		return Result{}
	}
	folded := Fold(submitted)

	for _, accepted := range c.AcceptedNames(mode) {
		if Normalize(accepted) == normalized || Fold(accepted) == folded {
			return Result{Correct: true, MatchedAlias: accepted}
		}
	}

	return Result{}
}
