package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/utils/fileutil"
)

// relocate moves files out of the per-profile directories instaloader
// created in the working directory into the destination folder, then
// removes the emptied directories. A failure in one source directory is
// a non-fatal warning; the rest are still processed.
func (uc *fetchUseCase) relocate(ctx context.Context, folder string) ([]string, []string, error) {
	logger := ctxlog.From(ctx)

	destDir := filepath.Join(uc.baseDir, folder)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create destination folder", goerr.V("dir", destDir))
	}

	entries, err := os.ReadDir(uc.baseDir)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to read working directory", goerr.V("dir", uc.baseDir))
	}

	var moved []string
	var warnings []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == folder || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		srcDir := filepath.Join(uc.baseDir, e.Name())
		names, err := fileutil.MoveContents(srcDir, destDir)
		moved = append(moved, names...)
		if err != nil {
			logger.Warn("could not process directory",
				"dir", srcDir,
				"error", err,
			)
			warnings = append(warnings, fmt.Sprintf("could not process directory %s: %v", e.Name(), err))
			continue
		}

		if err := os.RemoveAll(srcDir); err != nil {
			logger.Warn("could not remove directory", "dir", srcDir, "error", err)
			warnings = append(warnings, fmt.Sprintf("could not remove directory %s: %v", e.Name(), err))
		}
	}

	logger.Debug("relocation finished",
		"dest", destDir,
		"moved", len(moved),
		"warnings", len(warnings),
	)

	return moved, warnings, nil
}
