package interfaces

import (
	"context"

	"github.com/m-mizutani/gramfetch/pkg/domain/model"
)

// ProgressFunc receives simulated progress percentages while the
// downloader runs. The value advances on a fixed cadence unrelated to
// actual transfer progress; it is cosmetic only.
type ProgressFunc func(percent int)

// Runner supervises the external downloader process.
type Runner interface {
	// CheckInstalled verifies the downloader binary responds to a
	// version query.
	CheckInstalled(ctx context.Context) error

	// Fetch downloads a single post into workDir. The downloader creates
	// a per-profile directory there; relocation is the caller's job.
	// progress may be nil.
	Fetch(ctx context.Context, shortcode model.Shortcode, workDir string, progress ProgressFunc) error
}
