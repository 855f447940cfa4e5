package interfaces

import (
	"context"

	"github.com/m-mizutani/gramfetch/pkg/domain/model"
)

// FetchUseCase defines the single-post download flow.
type FetchUseCase interface {
	// Fetch runs the full flow: extract the shortcode, invoke the
	// downloader, and relocate its output into the destination folder.
	Fetch(ctx context.Context, req *model.FetchRequest) (*model.FetchResult, error)

	// LoaderAvailable reports whether the external downloader is usable.
	LoaderAvailable(ctx context.Context) bool
}
