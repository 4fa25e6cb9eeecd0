package commands

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoquiz/internal/assets"
	"geoquiz/internal/catalog"
	"geoquiz/internal/domain"
	"geoquiz/internal/i18n"
	"geoquiz/internal/platform/sqlite"
)

// newTestGame wires a game around a one-country catalog, a throwaway
// database and scripted stdin, so interactive runs are deterministic.
func newTestGame(t *testing.T, input string) (*game, *strings.Builder) {
	t.Helper()

	fsys := fstest.MapFS{
		"countries_en.csv": &fstest.MapFile{Data: []byte(
			"France,Paris,Europe,FR\n",
		)},
	}
	cat, err := catalog.Load(fsys, "en", nil)
	require.NoError(t, err)

	progress, err := sqlite.Open(filepath.Join(t.TempDir(), "saves.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = progress.Close() })

	bundle, err := i18n.LoadEmbedded()
	require.NoError(t, err)

	var out strings.Builder
	return &game{
		catalog:  cat,
		progress: progress,
		cache:    assets.NewCache(assets.NewDirStore(t.TempDir()), nil),
		messages: bundle,
		lang:     "en",
		logger:   slog.Default(),
		in:       strings.NewReader(input),
		out:      &out,
	}, &out
}

func TestRunCompletesOnCorrectAnswer(t *testing.T) {
	t.Parallel()

	g, out := newTestGame(t, "paris\n")

	err := g.run(context.Background(), domain.ModeNameToCapital, domain.RegionAll, true)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "What is the capital of France?")
	assert.Contains(t, out.String(), "Correct!")
	assert.Contains(t, out.String(), "Game complete!")
	assert.Contains(t, out.String(), "Final result: 1 of 1")
}

func TestRunRetriesMissedCountry(t *testing.T) {
	t.Parallel()

	g, out := newTestGame(t, "rome\nparis\n")

	err := g.run(context.Background(), domain.ModeNameToCapital, domain.RegionAll, true)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Incorrect. The answer was: Paris")
	assert.Contains(t, out.String(), "Second round")
	assert.Contains(t, out.String(), "Final result: 1 of 1")
}

func TestRunSkipRevealsAnswer(t *testing.T) {
	t.Parallel()

	g, out := newTestGame(t, "/skip\nparis\n")

	err := g.run(context.Background(), domain.ModeNameToCapital, domain.RegionAll, true)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Skipped. The answer was: Paris")
	assert.Contains(t, out.String(), "Final result: 1 of 1")
}

func TestRunQuitSavesForResume(t *testing.T) {
	t.Parallel()

	g, out := newTestGame(t, "rome\n/quit\n")

	err := g.run(context.Background(), domain.ModeNameToCapital, domain.RegionAll, true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "See you soon!")

	// The miss was checkpointed; a new run resumes the retry round.
	var out2 strings.Builder
	g.in = strings.NewReader("paris\n")
	g.out = &out2

	err = g.run(context.Background(), domain.ModeNameToCapital, domain.RegionAll, false)
	require.NoError(t, err)
	assert.Contains(t, out2.String(), "Previous game restored.")
	assert.Contains(t, out2.String(), "Final result: 1 of 1")
}

func TestRunFlagModeShowsPlaceholderForMissingAsset(t *testing.T) {
	t.Parallel()

	g, out := newTestGame(t, "france\n")

	err := g.run(context.Background(), domain.ModeFlagToName, domain.RegionAll, true)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Which country does this flag belong to?")
	assert.Contains(t, out.String(), "▀", "flag area renders as half-block cells")
	assert.Contains(t, out.String(), "Final result: 1 of 1")
}

func TestRenderANSIDimensions(t *testing.T) {
	t.Parallel()

	cache := assets.NewCache(assets.NewDirStore(t.TempDir()), nil)
	img := cache.Placeholder(assets.Size{Width: flagCols, Height: flagRows * 2})

	rendered := renderANSI(img)
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	assert.Len(t, lines, flagRows)
	assert.True(t, strings.HasSuffix(lines[0], "\x1b[0m"), "each row resets attributes")
}
