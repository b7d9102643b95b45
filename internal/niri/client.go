package niri

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

const (
	defaultTimeout = 5 * time.Second
	// Preview commands reconfigure real hardware; each one can make a
	// monitor blank for a moment.
	previewsPerSec = 4
	previewBurst   = 6
)

// Runner executes the niri binary with args and returns its stdout.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

// Client queries and reconfigures outputs through `niri msg`.
type Client struct {
	run     Runner
	limiter *rate.Limiter
	timeout time.Duration
}

// NewClient creates a client that runs the niri binary found on PATH.
func NewClient() *Client {
	return NewClientWithRunner(execRunner("niri"))
}

// NewClientWithRunner creates a client that runs commands through run.
func NewClientWithRunner(run Runner) *Client {
	return &Client{
		run:     run,
		limiter: rate.NewLimiter(rate.Limit(previewsPerSec), previewBurst),
		timeout: defaultTimeout,
	}
}

func execRunner(binary string) Runner {
	return func(ctx context.Context, args ...string) ([]byte, error) {
		cmd := exec.CommandContext(ctx, binary, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return nil, fmt.Errorf("%s %s: %w", binary, strings.Join(args, " "), err)
			}
			return nil, fmt.Errorf("%s %s: %s: %w", binary, strings.Join(args, " "), msg, err)
		}
		return out, nil
	}
}

// DetectOutputs returns the outputs currently known to niri.
func (c *Client) DetectOutputs(ctx context.Context) ([]models.LiveOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.run(ctx, "msg", "--json", "outputs")
	if err != nil {
		return nil, fmt.Errorf("running niri msg outputs: %w", err)
	}
	outputs, err := ParseOutputsJSON(data)
	if err != nil {
		return nil, err
	}
	slog.Debug("niri: detected outputs", "count", len(outputs))
	return outputs, nil
}
