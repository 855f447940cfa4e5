package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Loader holds configuration for the external instaloader tool.
type Loader struct {
	Binary           string
	BaseDir          string
	DefaultFolder    string
	Timeout          time.Duration
	ProgressInterval time.Duration
	ExtraArgs        []string
}

// Flags returns CLI flags for loader configuration
func (c *Loader) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "loader-binary",
			Usage:       "instaloader binary name or path",
			Value:       "instaloader",
			Destination: &c.Binary,
			Sources:     cli.EnvVars("GRAMFETCH_LOADER_BINARY"),
		},
		&cli.StringFlag{
			Name:        "base-dir",
			Usage:       "Working directory shared with instaloader; destination folders are created here",
			Value:       ".",
			Destination: &c.BaseDir,
			Sources:     cli.EnvVars("GRAMFETCH_BASE_DIR"),
		},
		&cli.StringFlag{
			Name:        "default-folder",
			Usage:       "Destination folder used when the form leaves it empty",
			Value:       "insta_downloads",
			Destination: &c.DefaultFolder,
			Sources:     cli.EnvVars("GRAMFETCH_DEFAULT_FOLDER"),
		},
		&cli.DurationFlag{
			Name:        "fetch-timeout",
			Usage:       "Per-fetch timeout for the instaloader process",
			Value:       5 * time.Minute,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("GRAMFETCH_FETCH_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:        "progress-interval",
			Usage:       "Cadence of the simulated progress updates",
			Value:       100 * time.Millisecond,
			Destination: &c.ProgressInterval,
			Sources:     cli.EnvVars("GRAMFETCH_PROGRESS_INTERVAL"),
		},
		&cli.StringSliceFlag{
			Name:        "loader-arg",
			Usage:       "Extra argument passed to every instaloader invocation (repeatable)",
			Destination: &c.ExtraArgs,
			Sources:     cli.EnvVars("GRAMFETCH_LOADER_ARGS"),
		},
	}
}
