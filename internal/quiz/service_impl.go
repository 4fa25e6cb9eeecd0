package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"geoquiz/internal/catalog"
	"geoquiz/internal/domain"
	"geoquiz/internal/domain/match"
	"geoquiz/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*quizService)(nil)

// quizService implements the Service interface.
type quizService struct {
	catalog  *catalog.Catalog
	session  *domain.Session
	progress store.ProgressStore // nil disables persistence
	logger   *slog.Logger

	// intn picks a random index for swap-remove; injectable for
	// deterministic tests.
	intn func(n int) int

	// now drives the elapsed-time counter; injectable for tests.
	now      func() time.Time
	lastTick time.Time
}

// NewGame starts a fresh session over every catalog country matching
// the region filter. Returns ErrEmptyPool when the filter matches
// nothing. A nil progress store disables persistence.
func NewGame(
	cat *catalog.Catalog,
	mode domain.Mode,
	region string,
	progress store.ProgressStore,
	logger *slog.Logger,
) (Service, error) {
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if region == "" {
		region = domain.RegionAll
	}

	pool := cat.Codes(region)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: region %q", ErrEmptyPool, region)
	}

	session, err := domain.NewSession(mode, region, cat.Language(), pool)
	if err != nil {
		return nil, err
	}

	return newService(cat, session, progress, logger), nil
}

// Resume rebuilds a service around a saved session. The snapshot is
// cross-checked against the catalog first; a stale save is rejected so
// the caller can fall back to a fresh game.
func Resume(
	cat *catalog.Catalog,
	session *domain.Session,
	progress store.ProgressStore,
	logger *slog.Logger,
) (Service, error) {
	if cat == nil {
		panic("catalog cannot be nil")
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if err := store.ValidateAgainstCatalog(session, cat); err != nil {
		return nil, err
	}

	return newService(cat, session, progress, logger), nil
}

func newService(
	cat *catalog.Catalog,
	session *domain.Session,
	progress store.ProgressStore,
	logger *slog.Logger,
) *quizService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &quizService{
		catalog:  cat,
		session:  session,
		progress: progress,
		logger: logger.With(
			slog.String("component", "quiz_service"),
			slog.String("session_id", session.ID.String())),
		intn: rand.IntN,
		now:  time.Now,
	}
	s.lastTick = s.now()
	return s
}

// DrawNext implements Service.DrawNext.
func (s *quizService) DrawNext(ctx context.Context) (*Prompt, error) {
	s.tick()

	if s.session.Current != "" {
		return nil, ErrDrawPending
	}
	// A resumed snapshot may still hold an unpromoted retry queue, so
	// the pool must never be assumed non-empty here.
	s.promoteRetry()
	if s.session.Phase() == domain.PhaseComplete {
		return nil, ErrQuizComplete
	}

	// Swap-remove: pick a random index, move the last element into its
	// slot, shrink. O(1), order not preserved.
	pool := s.session.Pool
	idx := s.intn(len(pool))
	code := pool[idx]
	pool[idx] = pool[len(pool)-1]
	s.session.Pool = pool[:len(pool)-1]
	s.session.Current = code

	country, err := s.catalog.ByCode(code)
	if err != nil {
		// Pool codes originate from this catalog, so a miss here means
		// the session and catalog diverged.
		return nil, fmt.Errorf("%w: pool references %q", domain.ErrStaleState, code)
	}

	s.logger.Debug("drew next country",
		slog.String("code", code),
		slog.Int("round", s.session.Round),
		slog.Int("remaining", s.session.Remaining()))

	return &Prompt{
		Country:   country,
		Round:     s.session.Round,
		Remaining: s.session.Remaining(),
	}, nil
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *quizService) SubmitAnswer(ctx context.Context, submitted string) (*Answer, error) {
	return s.judge(ctx, submitted, false)
}

// Skip implements Service.Skip.
func (s *quizService) Skip(ctx context.Context) (*Answer, error) {
	return s.judge(ctx, "", true)
}

func (s *quizService) judge(ctx context.Context, submitted string, skipped bool) (*Answer, error) {
	s.tick()

	if s.session.Current == "" {
		return nil, ErrNoCurrentItem
	}

	country, err := s.catalog.ByCode(s.session.Current)
	if err != nil {
		return nil, fmt.Errorf("%w: current references %q", domain.ErrStaleState, s.session.Current)
	}

	var result match.Result
	if !skipped {
		result = match.Evaluate(submitted, country, s.session.Mode)
	}

	if result.Correct {
		s.session.Score++
	} else if s.session.Round == 1 {
		// Failed round-1 items get exactly one more chance in round 2.
		// Round-2 failures are final.
		s.session.Retry = append(s.session.Retry, s.session.Current)
	}
	s.session.Current = ""
	s.session.UpdatedAt = s.now().UTC()

	s.promoteRetry()

	phase := s.session.Phase()
	s.persist(ctx, phase)

	s.logger.Debug("answer judged",
		slog.String("code", country.Code),
		slog.Bool("correct", result.Correct),
		slog.Bool("skipped", skipped),
		slog.Int("score", s.session.Score),
		slog.String("phase", string(phase)))

	return &Answer{
		Correct:      result.Correct,
		MatchedAlias: result.MatchedAlias,
		Country:      country,
		Score:        s.session.Score,
		Total:        s.session.Total,
		Phase:        phase,
	}, nil
}

// promoteRetry moves the retry queue into the round-2 pool once round 1
// has drained. The round-1-done state is momentary, but it can also
// arrive at rest in a restored snapshot.
func (s *quizService) promoteRetry() {
	if len(s.session.Pool) > 0 || s.session.Current != "" || s.session.Round != 1 || len(s.session.Retry) == 0 {
		return
	}
	s.session.Pool = s.session.Retry
	s.session.Retry = nil
	s.session.Round = 2
	s.logger.Info("starting retry round", slog.Int("countries", len(s.session.Pool)))
}

// persist saves the snapshot after an answer, or clears it once the
// session completes. Storage failures degrade to a warning; losing a
// checkpoint must not break the game in progress.
func (s *quizService) persist(ctx context.Context, phase domain.Phase) {
	if s.progress == nil {
		return
	}

	if phase == domain.PhaseComplete {
		if err := s.progress.Delete(ctx, store.KeyFor(s.session)); err != nil {
			s.logger.Warn("failed to clear completed save", slog.String("error", err.Error()))
		}
		return
	}

	if err := s.progress.Save(ctx, s.session); err != nil {
		s.logger.Warn("failed to save progress", slog.String("error", err.Error()))
	}
}

// State implements Service.State.
func (s *quizService) State() *domain.Session {
	return s.session.Clone()
}

// tick folds wall-clock time since the previous operation into the
// session's elapsed counter.
func (s *quizService) tick() {
	now := s.now()
	s.session.Elapsed += now.Sub(s.lastTick)
	s.lastTick = now
}
