package extract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/silencesplit/internal/audio"
	"github.com/maauso/silencesplit/internal/ffmpeg"
)

// checkFFmpeg skips test if ffmpeg is not available.
func checkFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found in PATH, skipping test")
	}
}

type recordingRunner struct {
	name string
	args []string
	err  error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) (ffmpeg.Output, error) {
	r.name = name
	r.args = args
	return ffmpeg.Output{}, r.err
}

func TestNewFFmpegRangeExtractor_DefaultPath(t *testing.T) {
	x := NewFFmpegRangeExtractor("", nil)
	assert.Equal(t, "ffmpeg", x.ffmpegPath)
}

func TestFFmpegRangeExtractor_Args(t *testing.T) {
	r := &recordingRunner{}
	x := NewFFmpegRangeExtractor("/opt/ffmpeg", r)

	err := x.ExtractRange(context.Background(), "in.mp3", 15.25, 4.5, "out/ost_track_02.mp3")
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg", r.name)
	assert.Equal(t, []string{
		"-hide_banner",
		"-i", "in.mp3",
		"-ss", "15.250",
		"-t", "4.500",
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-y",
		"out/ost_track_02.mp3",
	}, r.args)
}

func TestFFmpegRangeExtractor_Failure(t *testing.T) {
	r := &recordingRunner{err: &ffmpeg.Error{Name: "ffmpeg", Err: errors.New("exit status 1"), Stderr: "Invalid data"}}

	err := NewFFmpegRangeExtractor("", r).ExtractRange(context.Background(), "in.mp3", 0, 5, "out.mp3")
	require.Error(t, err)

	var runErr *ffmpeg.Error
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, "Invalid data", runErr.Stderr)
}

func TestFFmpegRangeExtractor_RealAudio(t *testing.T) {
	checkFFmpeg(t)

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "source.mp3")
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", "sine=frequency=440:duration=20",
		"-ar", "44100", "-ac", "1", "-c:a", "libmp3lame",
		input,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot encode mp3 test input (libmp3lame missing?): %v\n%s", err, output)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	outDir := filepath.Join(tmpDir, "splits")
	e := NewExtractor(NewFFmpegRangeExtractor("", nil), discardLogger(), WithVerifier(MP3Verifier{}))
	results, err := e.Extract(ctx, input, []audio.Segment{{Start: 0, End: 6}, {Start: 8, End: 20}}, outDir, "source")
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		require.True(t, res.Success, "track %d: %v", res.Index, res.Err)
		info, err := os.Stat(res.OutputPath)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		assert.InDelta(t, res.Duration, res.VerifiedDuration, 0.5)
	}
	assert.Equal(t, filepath.Join(outDir, "source_track_01.mp3"), results[0].OutputPath)
}
