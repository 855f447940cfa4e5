package instaloader

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
)

// classifyFailure buckets a nonzero exit by substring-matching the
// process's stderr. Anything unrecognized becomes a generic failure that
// embeds the raw error text.
func classifyFailure(waitErr error, stderr string) error {
	msg := strings.TrimSpace(stderr)

	switch {
	case strings.Contains(msg, "Private"):
		return goerr.Wrap(waitErr, "this post is private or requires a login",
			goerr.V("stderr", msg),
			goerr.T(types.TagPrivate),
		)

	case strings.Contains(msg, "404"):
		return goerr.Wrap(waitErr, "this post could not be found",
			goerr.V("stderr", msg),
			goerr.T(types.TagNotFound),
		)

	case strings.Contains(msg, "429"), strings.Contains(strings.ToLower(msg), "rate limit"):
		return goerr.Wrap(waitErr, "rate limited by the remote side, try again later",
			goerr.V("stderr", msg),
			goerr.T(types.TagRateLimited),
		)

	default:
		return goerr.Wrap(waitErr, fmt.Sprintf("download failed: %s", msg),
			goerr.V("stderr", msg),
		)
	}
}
