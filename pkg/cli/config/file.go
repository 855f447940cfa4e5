package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// FileConfig mirrors flag-configurable settings in a TOML file. File
// values apply only where the corresponding flag was left at its
// default; explicit flags and environment variables win.
type FileConfig struct {
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`
	Loader struct {
		Binary           string   `toml:"binary"`
		BaseDir          string   `toml:"base_dir"`
		DefaultFolder    string   `toml:"default_folder"`
		Timeout          string   `toml:"timeout"`
		ProgressInterval string   `toml:"progress_interval"`
		Args             []string `toml:"args"`
	} `toml:"loader"`
}

// FileFlag returns the flag selecting an optional TOML config file.
func FileFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "Path to a TOML config file",
		Destination: dest,
		Sources:     cli.EnvVars("GRAMFETCH_CONFIG"),
	}
}

// LoadFile reads and parses a TOML config file.
func LoadFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var fc FileConfig
	if err := toml.Unmarshal(b, &fc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &fc, nil
}

// Apply copies file values into the given configs for every flag the
// command line did not set explicitly.
func (fc *FileConfig) Apply(cmd *cli.Command, serverCfg *Server, loaderCfg *Loader) error {
	if serverCfg != nil && fc.Server.Addr != "" && !cmd.IsSet("addr") {
		serverCfg.Addr = fc.Server.Addr
	}

	if loaderCfg == nil {
		return nil
	}

	if fc.Loader.Binary != "" && !cmd.IsSet("loader-binary") {
		loaderCfg.Binary = fc.Loader.Binary
	}
	if fc.Loader.BaseDir != "" && !cmd.IsSet("base-dir") {
		loaderCfg.BaseDir = fc.Loader.BaseDir
	}
	if fc.Loader.DefaultFolder != "" && !cmd.IsSet("default-folder") {
		loaderCfg.DefaultFolder = fc.Loader.DefaultFolder
	}
	if len(fc.Loader.Args) > 0 && !cmd.IsSet("loader-arg") {
		loaderCfg.ExtraArgs = fc.Loader.Args
	}

	if fc.Loader.Timeout != "" && !cmd.IsSet("fetch-timeout") {
		d, err := time.ParseDuration(fc.Loader.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid loader.timeout in config file", goerr.V("value", fc.Loader.Timeout))
		}
		loaderCfg.Timeout = d
	}
	if fc.Loader.ProgressInterval != "" && !cmd.IsSet("progress-interval") {
		d, err := time.ParseDuration(fc.Loader.ProgressInterval)
		if err != nil {
			return goerr.Wrap(err, "invalid loader.progress_interval in config file", goerr.V("value", fc.Loader.ProgressInterval))
		}
		loaderCfg.ProgressInterval = d
	}

	return nil
}
