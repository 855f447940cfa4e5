package model

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
	"mvdan.cc/xurls/v2"
)

// Shortcode is the short alphanumeric identifier embedded in a post URL
// that uniquely names a single post to instaloader.
type Shortcode string

func (s Shortcode) String() string {
	return string(s)
}

// shortcodePatterns are tried in order; the first match wins. The bare
// path forms allow inputs that omit the instagram.com host.
var shortcodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`instagram\.com/p/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`instagram\.com/reel/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`/p/([A-Za-z0-9_-]+)`),
	regexp.MustCompile(`/reel/([A-Za-z0-9_-]+)`),
}

var urlRx = xurls.Strict()

// ExtractShortcode extracts the shortcode from a post URL. The input may
// be a pasted share blob; if it contains a URL, the first URL is matched
// instead of the raw text. It returns an error tagged with TagBadRequest
// if no pattern matches.
func ExtractShortcode(input string) (Shortcode, error) {
	target := input
	if u := urlRx.FindString(input); u != "" {
		target = u
	}

	for _, p := range shortcodePatterns {
		if m := p.FindStringSubmatch(target); m != nil {
			return Shortcode(m[1]), nil
		}
	}

	return "", goerr.New("unrecognized post URL format",
		goerr.V("input", input),
		goerr.T(types.TagBadRequest),
	)
}
