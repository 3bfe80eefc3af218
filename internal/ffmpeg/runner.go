// Package ffmpeg runs the ffmpeg and ffprobe command-line tools.
// Packages that need the media engine depend on the Runner interface so
// tests can replace process execution with canned output.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Static errors for engine availability.
var (
	// ErrCapabilityUnavailable is returned when ffmpeg or ffprobe cannot be invoked.
	ErrCapabilityUnavailable = errors.New("media engine unavailable")
)

// Default binary names, resolved via PATH.
const (
	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"
)

// Output holds the captured streams of a finished process.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes an external command and captures its output.
type Runner interface {
	// Run executes name with args. The returned Output is populated even
	// when err is non-nil so callers can inspect stderr.
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// Verify interface implementation at compile time.
var _ Runner = ExecRunner{}

// Run implements Runner.Run.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	// #nosec G204 - binary paths come from configuration, not user input
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		if ctx.Err() != nil {
			return out, fmt.Errorf("%s cancelled: %w", name, ctx.Err())
		}
		return out, &Error{
			Name:   name,
			Args:   args,
			Stderr: string(out.Stderr),
			Err:    err,
		}
	}

	return out, nil
}

// Error represents a failed ffmpeg/ffprobe invocation, including stderr.
type Error struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v\nargs: %v\nstderr: %s", e.Name, e.Err, e.Args, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CheckAvailable verifies that every named binary can be executed by
// running it with -version. It returns ErrCapabilityUnavailable wrapped with
// the first binary that fails.
func CheckAvailable(ctx context.Context, r Runner, binaries ...string) error {
	for _, bin := range binaries {
		if _, err := r.Run(ctx, bin, "-version"); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: %s: %w", ErrCapabilityUnavailable, bin, err)
		}
	}
	return nil
}

// InstallHint describes how to install ffmpeg on common platforms.
const InstallHint = `Please install FFmpeg:
  Windows: Download from https://ffmpeg.org/download.html
  macOS: brew install ffmpeg
  Linux: sudo apt-get install ffmpeg`
