package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner fails for the binaries listed in failing.
type fakeRunner struct {
	failing map[string]bool
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Output, error) {
	f.calls = append(f.calls, name)
	if f.failing[name] {
		return Output{}, &Error{Name: name, Args: args, Err: exec.ErrNotFound}
	}
	return Output{Stdout: []byte(name + " version n6.1")}, nil
}

func TestCheckAvailable(t *testing.T) {
	t.Run("all binaries present", func(t *testing.T) {
		r := &fakeRunner{}
		err := CheckAvailable(context.Background(), r, DefaultFFmpegPath, DefaultFFprobePath)
		require.NoError(t, err)
		assert.Equal(t, []string{"ffmpeg", "ffprobe"}, r.calls)
	})

	t.Run("missing ffprobe", func(t *testing.T) {
		r := &fakeRunner{failing: map[string]bool{"ffprobe": true}}
		err := CheckAvailable(context.Background(), r, DefaultFFmpegPath, DefaultFFprobePath)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCapabilityUnavailable)
		assert.ErrorIs(t, err, exec.ErrNotFound)
		assert.Contains(t, err.Error(), "ffprobe")
	})

	t.Run("stops at first failure", func(t *testing.T) {
		r := &fakeRunner{failing: map[string]bool{"ffmpeg": true}}
		err := CheckAvailable(context.Background(), r, DefaultFFmpegPath, DefaultFFprobePath)
		require.Error(t, err)
		assert.Equal(t, []string{"ffmpeg"}, r.calls)
	})
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), "/nonexistent/bin/ffmpeg", "-version")
	require.Error(t, err)

	var runErr *Error
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, "/nonexistent/bin/ffmpeg", runErr.Name)
	assert.Equal(t, []string{"-version"}, runErr.Args)
}

func TestExecRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecRunner{}.Run(ctx, "/nonexistent/bin/ffmpeg")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &Error{Name: "ffmpeg", Args: []string{"-i", "in.mp3"}, Stderr: "boom", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "ffmpeg error: exit status 1")
	assert.Contains(t, err.Error(), "stderr: boom")
}
