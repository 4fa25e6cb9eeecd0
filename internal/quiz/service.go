// Package quiz implements the session state machine that drives a game:
// drawing countries, judging answers, the retry round, scoring and
// timing. It is the single owner of its Session; all mutation happens
// synchronously through the Service methods.
package quiz

import (
	"context"
	"errors"
	"fmt"

	"geoquiz/internal/domain"
)

// Prompt is the next item for the presentation layer to ask about.
type Prompt struct {
	// Country is the drawn country. Which field to show (flag, name or
	// capital) depends on the session mode.
	Country *domain.Country

	// Round is the round the prompt belongs to (1 or 2).
	Round int

	// Remaining counts unanswered countries in the round, including
	// this one.
	Remaining int
}

// Answer is the outcome of judging one submission.
type Answer struct {
	// Correct reports whether the submission matched an accepted name.
	Correct bool

	// MatchedAlias is the accepted name the submission matched, in its
	// original spelling, or "" when incorrect.
	MatchedAlias string

	// Country is the country that was asked, so the UI can reveal the
	// expected answer after a miss.
	Country *domain.Country

	// Score is the session score after this answer.
	Score int

	// Total is the number of distinct countries in the session.
	Total int

	// Phase is the session phase after this answer, including any
	// round transition it triggered.
	Phase domain.Phase
}

// Service drives one quiz session. It exposes exactly the operations
// the presentation layer needs: draw the next item, submit an answer,
// and observe state.
type Service interface {
	// DrawNext removes one random country from the active pool
	// (swap-remove, order not preserved) and returns it as the next
	// prompt.
	//
	// Returns:
	//   - (prompt, nil) while the session has countries left
	//   - (nil, ErrQuizComplete) when both rounds are exhausted; this
	//     is the distinct "complete" condition, not a failure
	//   - (nil, ErrDrawPending) if the previous prompt was never
	//     answered; a programming error, surfaced not swallowed
	DrawNext(ctx context.Context) (*Prompt, error)

	// SubmitAnswer judges the submission against the current prompt.
	// A correct answer increments the score; an incorrect answer in
	// round 1 enqueues the country for the retry round. Round 2
	// failures are not re-queued. The updated session is persisted
	// after every answer; persistence failures are logged and do not
	// fail the answer.
	//
	// Returns ErrNoCurrentItem if no prompt is pending.
	SubmitAnswer(ctx context.Context, submitted string) (*Answer, error)

	// Skip gives up on the current prompt. It counts as an incorrect
	// answer (retry-queued in round 1) and reveals the country.
	//
	// Returns ErrNoCurrentItem if no prompt is pending.
	Skip(ctx context.Context) (*Answer, error)

	// State returns a read-only snapshot of the session. The returned
	// value is a clone; mutating it does not affect the live session.
	State() *domain.Session
}

// Quiz service errors
var (
	// ErrQuizComplete signals that the pool and retry queue are both
	// exhausted after round 2. It marks normal completion.
	ErrQuizComplete = errors.New("quiz complete")

	// ErrNoCurrentItem is returned when SubmitAnswer or Skip is called
	// with no drawn prompt.
	ErrNoCurrentItem = fmt.Errorf("%w: no current item to answer", domain.ErrContractViolation)

	// ErrDrawPending is returned when DrawNext is called while a drawn
	// prompt is still awaiting an answer.
	ErrDrawPending = fmt.Errorf("%w: drawn item still awaiting an answer", domain.ErrContractViolation)

	// ErrEmptyPool is returned when a new game is started over a
	// region with no countries.
	ErrEmptyPool = errors.New("no countries match the selected region")
)
