package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/cli/config"
	"github.com/m-mizutani/gramfetch/pkg/domain/model"
	"github.com/m-mizutani/gramfetch/pkg/infra/instaloader"
	"github.com/m-mizutani/gramfetch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// cmdFetch downloads a single post without the web UI. It runs the same
// use case as the form handler.
func cmdFetch() *cli.Command {
	var (
		loaderCfg config.Loader
		folder    string
		cfgPath   string
	)

	flags := append(loaderCfg.Flags(),
		&cli.StringFlag{
			Name:        "folder",
			Usage:       "Destination folder name",
			Destination: &folder,
			Sources:     cli.EnvVars("GRAMFETCH_FOLDER"),
		},
		config.FileFlag(&cfgPath),
	)

	return &cli.Command{
		Name:      "fetch",
		Aliases:   []string{"f"},
		Usage:     "Download a single post from the command line",
		ArgsUsage: "<post URL>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one post URL is required")
			}

			if cfgPath != "" {
				fc, err := config.LoadFile(cfgPath)
				if err != nil {
					return err
				}
				if err := fc.Apply(c, nil, &loaderCfg); err != nil {
					return err
				}
			}

			runner := instaloader.New(
				instaloader.WithBinary(loaderCfg.Binary),
				instaloader.WithTimeout(loaderCfg.Timeout),
				instaloader.WithHeartbeat(loaderCfg.ProgressInterval),
				instaloader.WithArgs(loaderCfg.ExtraArgs),
			)

			fetchUC := usecase.NewFetch(runner,
				usecase.WithBaseDir(loaderCfg.BaseDir),
				usecase.WithDefaultFolder(loaderCfg.DefaultFolder),
			)

			result, err := fetchUC.Fetch(ctx, &model.FetchRequest{
				URL:    c.Args().First(),
				Folder: folder,
			})
			if err != nil {
				return err
			}

			for _, w := range result.Warnings {
				ctxlog.From(ctx).Warn(w)
			}

			fmt.Fprintf(os.Stdout, "Saved %d file(s) to %s\n", len(result.Files), result.Folder)
			for _, f := range result.Files {
				fmt.Fprintf(os.Stdout, "  %s\n", filepath.Join(result.Folder, f.Name))
			}

			return nil
		},
	}
}
