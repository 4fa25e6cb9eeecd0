package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"geoquiz/internal/domain"
	"geoquiz/internal/platform/sqlite"
	"geoquiz/internal/store"
)

// saves: inspect and clear stored game snapshots.
func savesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage saved games",
	}
	cmd.AddCommand(savesListCmd(), savesClearCmd())
	return cmd
}

func savesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved games",
		RunE: func(cmd *cobra.Command, args []string) error {
			progress, err := sqlite.Open(cfg.Storage.DBPath, log)
			if err != nil {
				return fmt.Errorf("open saved games: %w", err)
			}
			defer progress.Close()

			sessions, err := progress.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved games")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODE\tREGION\tLANG\tROUND\tSCORE\tELAPSED\tUPDATED")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d/%d\t%s\t%s\n",
					s.Mode, s.Region, s.Language, s.Round,
					s.Score, s.Total,
					s.Elapsed.Round(time.Second),
					s.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func savesClearCmd() *cobra.Command {
	var (
		clearMode   string
		clearRegion string
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved game for a mode and region",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := domain.Mode(clearMode)
			if !mode.Valid() {
				return fmt.Errorf("unknown mode %q", clearMode)
			}

			progress, err := sqlite.Open(cfg.Storage.DBPath, log)
			if err != nil {
				return fmt.Errorf("open saved games: %w", err)
			}
			defer progress.Close()

			key := store.Key{Mode: mode, Region: clearRegion, Language: cfg.Game.Language}
			if err := progress.Delete(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cleared", key.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&clearMode, "mode", "m", "flag_to_name", "quiz mode of the save")
	cmd.Flags().StringVarP(&clearRegion, "region", "r", "all", "region of the save")
	return cmd
}
