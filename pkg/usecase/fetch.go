package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/flytam/filenamify"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/gramfetch/pkg/domain/model"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
)

const defaultFolderName = "insta_downloads"

type fetchUseCase struct {
	runner        interfaces.Runner
	baseDir       string
	defaultFolder string
}

// FetchOption is a functional option for the fetch use case
type FetchOption func(*fetchUseCase)

// WithBaseDir sets the working directory shared with instaloader. The
// destination folder is created beneath it.
func WithBaseDir(dir string) FetchOption {
	return func(uc *fetchUseCase) {
		if dir != "" {
			uc.baseDir = dir
		}
	}
}

// WithDefaultFolder sets the destination folder used when the request
// leaves it empty.
func WithDefaultFolder(name string) FetchOption {
	return func(uc *fetchUseCase) {
		if name != "" {
			uc.defaultFolder = name
		}
	}
}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(runner interfaces.Runner, opts ...FetchOption) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		runner:        runner,
		baseDir:       ".",
		defaultFolder: defaultFolderName,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Fetch runs the full single-post flow: extract the shortcode, run
// instaloader, then relocate its output into the destination folder.
func (uc *fetchUseCase) Fetch(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error) {
	logger := ctxlog.From(ctx)
	start := time.Now()

	shortcode, err := model.ExtractShortcode(req.URL)
	if err != nil {
		return nil, err
	}

	folder, err := uc.folderName(req.Folder)
	if err != nil {
		return nil, err
	}

	result := &model.FetchResult{
		ID:        uuid.New(),
		Shortcode: shortcode,
		Folder:    folder,
	}

	logger.Info("starting fetch",
		"id", result.ID,
		"shortcode", shortcode,
		"folder", folder,
	)

	if err := uc.runner.CheckInstalled(ctx); err != nil {
		return nil, err
	}

	progress := func(percent int) {
		logger.Debug("download progress",
			"id", result.ID,
			"shortcode", shortcode,
			"percent", percent,
		)
	}

	if err := uc.runner.Fetch(ctx, shortcode, uc.baseDir, progress); err != nil {
		return nil, err
	}

	moved, warnings, err := uc.relocate(ctx, folder)
	if err != nil {
		return nil, err
	}

	for _, name := range moved {
		result.Files = append(result.Files, model.MediaFile{
			Name: name,
			Kind: model.MediaKindOf(name),
		})
	}
	result.Warnings = warnings
	result.Duration = time.Since(start)

	logger.Info("fetch completed",
		"id", result.ID,
		"shortcode", shortcode,
		"folder", folder,
		"files", len(result.Files),
		"warnings", len(result.Warnings),
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// LoaderAvailable reports whether the external downloader is usable.
func (uc *fetchUseCase) LoaderAvailable(ctx context.Context) bool {
	return uc.runner.CheckInstalled(ctx) == nil
}

// folderName sanitizes the user-supplied destination folder name. An
// empty input falls back to the configured default.
func (uc *fetchUseCase) folderName(requested string) (string, error) {
	name := strings.TrimSpace(requested)
	if name == "" {
		return uc.defaultFolder, nil
	}

	sanitized, err := filenamify.Filenamify(name, filenamify.Options{Replacement: "_"})
	if err != nil {
		return "", goerr.Wrap(err, "invalid destination folder name",
			goerr.V("folder", requested),
			goerr.T(types.TagBadRequest),
		)
	}
	if sanitized == "" {
		return uc.defaultFolder, nil
	}

	return sanitized, nil
}
