package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across layer boundaries. The HTTP
// controller maps them to status codes; the messages themselves travel
// with the error.
var (
	// TagBadRequest marks malformed user input, e.g. a URL with no
	// recognizable shortcode.
	TagBadRequest = goerr.NewTag("bad_request")

	// TagPrivate marks a post that is private or requires a login.
	TagPrivate = goerr.NewTag("private")

	// TagNotFound marks a post that the downloader reported as missing.
	TagNotFound = goerr.NewTag("not_found")

	// TagRateLimited marks a rate-limit response from the remote side.
	TagRateLimited = goerr.NewTag("rate_limited")

	// TagUnavailable marks a missing or broken instaloader installation.
	TagUnavailable = goerr.NewTag("unavailable")
)
