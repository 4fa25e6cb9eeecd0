package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"geoquiz/internal/assets"
	"geoquiz/internal/audio"
	"geoquiz/internal/catalog"
	"geoquiz/internal/domain"
	"geoquiz/internal/i18n"
	"geoquiz/internal/platform/sqlite"
	"geoquiz/internal/quiz"
	"geoquiz/internal/store"
)

var (
	modeFlag   string
	regionFlag string
	dataDir    string
	flagsDir   string
	fresh      bool
	noAudio    bool
)

// play: run an interactive quiz session in the terminal.
func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start or resume a quiz session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if modeFlag == "" {
				modeFlag = cfg.Game.Mode
			}
			if regionFlag == "" {
				regionFlag = cfg.Game.Region
			}
			if dataDir == "" {
				dataDir = cfg.Storage.DataDir
			}
			if flagsDir == "" {
				flagsDir = cfg.Storage.FlagsDir
			}

			mode := domain.Mode(modeFlag)
			if !mode.Valid() {
				return fmt.Errorf("unknown mode %q", modeFlag)
			}

			var override fs.FS
			if dataDir != "" {
				override = os.DirFS(dataDir)
			}
			cat, err := catalog.Load(override, cfg.Game.Language, log)
			if err != nil {
				return fmt.Errorf("load country catalog: %w", err)
			}

			progress, err := sqlite.Open(cfg.Storage.DBPath, log)
			if err != nil {
				return fmt.Errorf("open saved games: %w", err)
			}
			defer progress.Close()

			cache := assets.NewCache(assets.NewDirStore(flagsDir), log)

			var sound *audio.Manager
			if cfg.Audio.Enabled && !noAudio {
				sound = audio.NewManager(audio.NopPlayer{}, log)
				if err := sound.SetVolume(cfg.Audio.Volume); err != nil {
					log.Warn("set volume failed", slog.Any("error", err))
				}
				defer sound.Close()
			}

			g := &game{
				catalog:  cat,
				progress: progress,
				cache:    cache,
				sound:    sound,
				messages: messages,
				lang:     cfg.Game.Language,
				logger:   log,
				in:       cmd.InOrStdin(),
				out:      cmd.OutOrStdout(),
			}
			return g.run(cmd.Context(), mode, regionFlag, fresh)
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "quiz mode (flag_to_name, name_to_capital, capital_to_name)")
	cmd.Flags().StringVarP(&regionFlag, "region", "r", "", "continent filter, or 'all'")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory overriding the embedded country data")
	cmd.Flags().StringVar(&flagsDir, "flags-dir", "", "directory holding flag images")
	cmd.Flags().BoolVar(&fresh, "fresh", false, "discard any saved game and start over")
	cmd.Flags().BoolVar(&noAudio, "no-audio", false, "disable background music")
	return cmd
}

// game bundles everything one interactive session needs.
type game struct {
	catalog  *catalog.Catalog
	progress store.ProgressStore
	cache    *assets.Cache
	sound    *audio.Manager
	messages *i18n.Bundle
	lang     string
	logger   *slog.Logger
	in       io.Reader
	out      io.Writer
}

func (g *game) run(ctx context.Context, mode domain.Mode, region string, fresh bool) error {
	svc, resumed, err := g.startOrResume(ctx, mode, region, fresh)
	if err != nil {
		return err
	}
	if resumed {
		g.say("game.resumed")
	}
	if err := g.sound.Switch(audio.TrackGame); err != nil {
		g.logger.Warn("audio switch failed", slog.Any("error", err))
	}

	scanner := bufio.NewScanner(g.in)
	lastRound := 1

	for {
		prompt, err := svc.DrawNext(ctx)
		if errors.Is(err, quiz.ErrQuizComplete) {
			break
		}
		if err != nil {
			return err
		}

		if prompt.Round != lastRound {
			lastRound = prompt.Round
			fmt.Fprintln(g.out)
			g.say("game.retry_round")
		}

		fmt.Fprintln(g.out)
		g.say("game.remaining", prompt.Remaining)
		g.ask(ctx, mode, prompt.Country)

		fmt.Fprint(g.out, "> ")
		if !scanner.Scan() {
			// EOF mid-round: the last answered state is already saved.
			g.say("game.goodbye")
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		var answer *quiz.Answer
		skipped := false
		switch line {
		case "/quit", "/q":
			g.say("game.goodbye")
			return nil
		case "/skip", "/s":
			answer, err = svc.Skip(ctx)
			skipped = true
		default:
			answer, err = svc.SubmitAnswer(ctx, line)
		}
		if err != nil {
			return err
		}
		g.report(mode, answer, skipped)
	}

	if err := g.sound.Switch(audio.TrackMenu); err != nil {
		g.logger.Warn("audio switch failed", slog.Any("error", err))
	}
	state := svc.State()
	fmt.Fprintln(g.out)
	g.say("game.complete")
	g.say("game.final_score", state.Score, state.Total, state.Elapsed.Round(time.Second))
	return nil
}

// startOrResume loads the save matching the requested mode, region and
// language. A missing or stale save starts a fresh game.
func (g *game) startOrResume(
	ctx context.Context,
	mode domain.Mode,
	region string,
	fresh bool,
) (quiz.Service, bool, error) {
	key := store.Key{Mode: mode, Region: region, Language: g.catalog.Language()}

	if !fresh {
		saved, err := g.progress.Load(ctx, key)
		switch {
		case err == nil:
			svc, rerr := quiz.Resume(g.catalog, saved, g.progress, g.logger)
			if rerr == nil {
				return svc, true, nil
			}
			if !domain.IsRecoverable(rerr) {
				return nil, false, rerr
			}
			g.say("game.save_stale")
			if derr := g.progress.Delete(ctx, key); derr != nil {
				g.logger.Warn("delete stale save failed", slog.Any("error", derr))
			}
		case store.IsNotFoundError(err):
			// No save; fall through to a fresh game.
		default:
			return nil, false, err
		}
	}

	svc, err := quiz.NewGame(g.catalog, mode, region, g.progress, g.logger)
	if errors.Is(err, quiz.ErrEmptyPool) {
		return nil, false, fmt.Errorf("%s", g.messages.T(g.lang, "error.unknown_region", region))
	}
	if err != nil {
		return nil, false, err
	}
	return svc, false, nil
}

// ask prints the question for the drawn country according to the mode.
func (g *game) ask(ctx context.Context, mode domain.Mode, c *domain.Country) {
	switch mode {
	case domain.ModeNameToCapital:
		g.say("game.prompt_capital", c.Name)
	case domain.ModeCapitalToName:
		g.say("game.prompt_country", c.Capital)
	default:
		g.showFlag(ctx, c.Code)
		g.say("game.prompt_flag")
	}
}

// showFlag renders the country's flag as colored terminal cells, or a
// placeholder when the asset is missing.
func (g *game) showFlag(ctx context.Context, code string) {
	size := assets.Size{Width: flagCols, Height: flagRows * 2}
	img, err := g.cache.Get(ctx, code, size)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			img = g.cache.Placeholder(size)
		} else {
			g.logger.Warn("load flag failed", slog.String("code", code), slog.Any("error", err))
			img = g.cache.Placeholder(size)
		}
	}
	fmt.Fprint(g.out, renderANSI(img))
}

// report prints the verdict for one answer.
func (g *game) report(mode domain.Mode, a *quiz.Answer, skipped bool) {
	expected := a.Country.Name
	if mode == domain.ModeNameToCapital {
		expected = a.Country.Capital
	}
	switch {
	case a.Correct:
		g.say("game.correct")
	case skipped:
		g.say("game.skipped", expected)
	default:
		g.say("game.incorrect", expected)
	}
	g.say("game.score", a.Score, a.Total)
}

func (g *game) say(key string, args ...any) {
	fmt.Fprintln(g.out, g.messages.T(g.lang, key, args...))
}
