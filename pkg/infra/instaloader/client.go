package instaloader

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/gramfetch/pkg/domain/model"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBinary    = "instaloader"
	defaultTimeout   = 5 * time.Minute
	defaultHeartbeat = 100 * time.Millisecond

	// heartbeatCeiling is where the simulated progress parks until the
	// process actually exits.
	heartbeatCeiling = 95
)

// Client runs the instaloader command-line tool as a subprocess.
type Client struct {
	binary    string
	timeout   time.Duration
	heartbeat time.Duration
	extraArgs []string
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithBinary sets the instaloader binary path or name.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHeartbeat sets the cadence of the simulated progress updates.
func WithHeartbeat(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.heartbeat = d
		}
	}
}

// WithArgs appends extra arguments passed to every invocation.
func WithArgs(args []string) Option {
	return func(c *Client) {
		c.extraArgs = args
	}
}

// New creates a new instaloader client.
func New(opts ...Option) *Client {
	c := &Client{
		binary:    defaultBinary,
		timeout:   defaultTimeout,
		heartbeat: defaultHeartbeat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ interfaces.Runner = (*Client)(nil)

// CheckInstalled verifies the binary exists in PATH and answers a
// version query.
func (c *Client) CheckInstalled(ctx context.Context) error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return goerr.Wrap(err, "instaloader is not installed or not in PATH",
			goerr.V("binary", c.binary),
			goerr.T(types.TagUnavailable),
		)
	}

	out, err := exec.CommandContext(ctx, c.binary, "--version").CombinedOutput()
	if err != nil {
		return goerr.Wrap(err, "instaloader version query failed",
			goerr.V("binary", c.binary),
			goerr.V("output", strings.TrimSpace(string(out))),
			goerr.T(types.TagUnavailable),
		)
	}

	ctxlog.From(ctx).Debug("instaloader available",
		"binary", c.binary,
		"version", strings.TrimSpace(string(out)),
	)
	return nil
}

// Fetch downloads the post named by shortcode into workDir and blocks
// until the process exits. Metadata JSON, captions and profile pictures
// are suppressed; sponsored posts are filtered out.
func (c *Client) Fetch(ctx context.Context, shortcode model.Shortcode, workDir string, progress interfaces.ProgressFunc) error {
	logger := ctxlog.From(ctx)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{
		"--dirname-pattern={target}",
		"--filename-pattern={profile}_{date_utc:%Y-%m-%d}_{shortcode}",
		"--no-metadata-json",
		"--no-captions",
		"--no-profile-pic",
		"--no-compress-json",
		"--post-filter=not is_sponsored",
	}
	args = append(args, c.extraArgs...)
	args = append(args, "--", "-"+shortcode.String())

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = workDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return goerr.Wrap(err, "failed to open stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return goerr.Wrap(err, "failed to open stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return goerr.Wrap(err, "failed to start instaloader",
			goerr.V("binary", c.binary),
			goerr.T(types.TagUnavailable),
		)
	}

	logger.Debug("instaloader started",
		"shortcode", shortcode,
		"workdir", workDir,
		"args", args,
	)

	// done stops the heartbeat once the process exits.
	done := make(chan struct{})

	var stderrBuf bytes.Buffer
	g := &errgroup.Group{}
	g.Go(func() error {
		drainLines(stdout, func(line string) {
			logger.Debug("instaloader stdout", "line", line)
		})
		return nil
	})
	g.Go(func() error {
		drainLines(io.TeeReader(stderr, &stderrBuf), func(line string) {
			logger.Debug("instaloader stderr", "line", line)
		})
		return nil
	})
	g.Go(func() error {
		c.beat(done, progress)
		return nil
	})

	waitErr := cmd.Wait()
	close(done)
	_ = g.Wait()

	if progress != nil {
		progress(100)
	}

	if waitErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return goerr.Wrap(ctxErr, "instaloader aborted", goerr.V("shortcode", shortcode))
		}
		return classifyFailure(waitErr, stderrBuf.String())
	}

	return nil
}

// beat advances the simulated progress on a fixed cadence until done is
// closed. It never exceeds heartbeatCeiling; Fetch reports 100 itself
// after the process exits.
func (c *Client) beat(done <-chan struct{}, progress interfaces.ProgressFunc) {
	if progress == nil {
		return
	}

	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	percent := 0
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if percent < heartbeatCeiling {
				percent++
				progress(percent)
			}
		}
	}
}

func drainLines(r io.Reader, fn func(line string)) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			fn(line)
		}
	}
}
