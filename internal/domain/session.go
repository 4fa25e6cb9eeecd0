package domain

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Mode identifies what the player is asked to produce for each country.
type Mode string

// Possible quiz modes
const (
	// ModeFlagToName shows a flag and expects the country name.
	ModeFlagToName Mode = "flag_to_name"

	// ModeNameToCapital shows a country name and expects its capital.
	ModeNameToCapital Mode = "name_to_capital"

	// ModeCapitalToName shows a capital and expects the country name.
	ModeCapitalToName Mode = "capital_to_name"
)

// Valid reports whether the mode is one of the known quiz modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeFlagToName, ModeNameToCapital, ModeCapitalToName:
		return true
	}
	return false
}

// Phase is the lifecycle state of a quiz session.
type Phase string

// Session lifecycle phases. A round is active while its pool is non-empty.
const (
	PhaseRound1Active Phase = "round1_active"
	PhaseRound1Done   Phase = "round1_done"
	PhaseRound2Active Phase = "round2_active"
	PhaseComplete     Phase = "complete"
)

// Session validation errors
var (
	ErrSessionIDEmpty      = errors.New("session ID cannot be empty")
	ErrSessionModeInvalid  = errors.New("session mode is not a known quiz mode")
	ErrSessionRegionEmpty  = errors.New("session region cannot be empty")
	ErrSessionLangEmpty    = errors.New("session language cannot be empty")
	ErrSessionRoundInvalid = errors.New("session round must be 1 or 2")
)

// Session is the complete, serializable state of one quiz run: the pool
// of countries still to be asked, the retry queue of round-1 failures,
// score, and timing. It is single-owner state, mutated synchronously by
// the quiz state machine and snapshotted into the progress store.
//
// Pool, Retry and Current reference countries by code so that a snapshot
// can be cross-checked against the catalog on load.
type Session struct {
	ID       uuid.UUID `json:"id"`
	Mode     Mode      `json:"mode"`
	Region   string    `json:"region"`
	Language string    `json:"language"`

	// Pool holds the codes remaining to be asked in the current round.
	// Order is irrelevant; removal is by swap-remove.
	Pool []string `json:"pool"`

	// Retry holds codes answered incorrectly during round 1. It is
	// consumed entirely by round 2 and never repopulated afterwards.
	Retry []string `json:"retry"`

	// Current is the code drawn and awaiting an answer, or "" when no
	// item is pending.
	Current string `json:"current,omitempty"`

	Score   int           `json:"score"`
	Total   int           `json:"total"`
	Round   int           `json:"round"`
	Elapsed time.Duration `json:"elapsed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a Session in round 1 over the given pool of codes.
// The pool is copied; the caller keeps ownership of its slice.
func NewSession(mode Mode, region, language string, pool []string) (*Session, error) {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New(),
		Mode:      mode,
		Region:    region,
		Language:  language,
		Pool:      slices.Clone(pool),
		Retry:     nil,
		Score:     0,
		Total:     len(pool),
		Round:     1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks if the Session has valid data.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if !s.Mode.Valid() {
		return ErrSessionModeInvalid
	}

	if s.Region == "" {
		return ErrSessionRegionEmpty
	}

	if s.Language == "" {
		return ErrSessionLangEmpty
	}

	if s.Round != 1 && s.Round != 2 {
		return ErrSessionRoundInvalid
	}

	return nil
}

// Phase derives the lifecycle phase from pool, retry queue and round.
func (s *Session) Phase() Phase {
	if s.Round == 1 {
		if len(s.Pool) > 0 || s.Current != "" {
			return PhaseRound1Active
		}
		if len(s.Retry) > 0 {
			return PhaseRound1Done
		}
		return PhaseComplete
	}
	if len(s.Pool) > 0 || s.Current != "" {
		return PhaseRound2Active
	}
	return PhaseComplete
}

// Remaining is the number of countries not yet answered in the current
// round, including the currently drawn one.
func (s *Session) Remaining() int {
	n := len(s.Pool)
	if s.Current != "" {
		n++
	}
	return n
}

// Clone returns a deep copy of the session. The quiz service hands
// clones to the presentation layer so callers cannot mutate live state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Pool = slices.Clone(s.Pool)
	out.Retry = slices.Clone(s.Retry)
	return &out
}
