package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
)

// errorStatus maps a classified fetch error to an HTTP status code.
func errorStatus(err error) int {
	switch {
	case goerr.HasTag(err, types.TagBadRequest):
		return http.StatusBadRequest
	case goerr.HasTag(err, types.TagNotFound):
		return http.StatusNotFound
	case goerr.HasTag(err, types.TagPrivate):
		return http.StatusForbidden
	case goerr.HasTag(err, types.TagRateLimited):
		return http.StatusTooManyRequests
	case goerr.HasTag(err, types.TagUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
