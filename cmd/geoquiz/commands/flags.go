package commands

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"geoquiz/internal/assets"
	"geoquiz/internal/catalog"
	"geoquiz/internal/domain"
)

// flags verify: report catalog countries with no flag image on disk.
func flagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags",
		Short: "Manage flag image assets",
	}

	var verifyDir string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check that every country has a flag image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verifyDir == "" {
				verifyDir = cfg.Storage.FlagsDir
			}

			var override fs.FS
			if cfg.Storage.DataDir != "" {
				override = os.DirFS(cfg.Storage.DataDir)
			}
			cat, err := catalog.Load(override, cfg.Game.Language, log)
			if err != nil {
				return fmt.Errorf("load country catalog: %w", err)
			}

			dir := assets.NewDirStore(verifyDir)
			missing := dir.Missing(cat.Codes(domain.RegionAll))
			if len(missing) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "all %d flags present\n", cat.Len())
				return nil
			}
			for _, code := range missing {
				c, _ := cat.ByCode(code)
				name := code
				if c != nil {
					name = c.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "missing: %s (%s)\n", code, name)
			}
			return fmt.Errorf("%d flag images missing", len(missing))
		},
	}
	verify.Flags().StringVar(&verifyDir, "dir", "", "directory holding flag images")

	cmd.AddCommand(verify)
	return cmd
}
