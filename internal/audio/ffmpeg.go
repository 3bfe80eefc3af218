package audio

import (
	"context"
	"fmt"
	"strconv"

	"github.com/maauso/silencesplit/internal/ffmpeg"
)

// FFmpegSilenceDetector implements SilenceDetector using ffmpeg's
// silencedetect filter.
type FFmpegSilenceDetector struct {
	ffmpegPath string
	runner     ffmpeg.Runner
}

// NewFFmpegSilenceDetector creates a new FFmpegSilenceDetector.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found in PATH).
// If runner is nil, processes are started with ffmpeg.ExecRunner.
func NewFFmpegSilenceDetector(ffmpegPath string, runner ffmpeg.Runner) *FFmpegSilenceDetector {
	if ffmpegPath == "" {
		ffmpegPath = ffmpeg.DefaultFFmpegPath
	}
	if runner == nil {
		runner = ffmpeg.ExecRunner{}
	}
	return &FFmpegSilenceDetector{ffmpegPath: ffmpegPath, runner: runner}
}

// Verify interface implementation at compile time.
var _ SilenceDetector = (*FFmpegSilenceDetector)(nil)

// DetectSilence implements SilenceDetector.DetectSilence. The audio is decoded
// into the null muxer; silencedetect writes its boundaries to stderr.
func (d *FFmpegSilenceDetector) DetectSilence(ctx context.Context, path string, opts DetectOpts) (string, error) {
	out, err := d.runner.Run(ctx, d.ffmpegPath,
		"-hide_banner",
		"-nostats",
		"-i", path,
		"-af", silenceFilter(opts),
		"-f", "null",
		"-",
	)
	if err != nil {
		return string(out.Stderr), fmt.Errorf("silencedetect: %w", err)
	}

	return string(out.Stderr), nil
}

// silenceFilter builds the silencedetect filter expression,
// e.g. "silencedetect=noise=-48dB:d=1.5".
func silenceFilter(opts DetectOpts) string {
	return fmt.Sprintf("silencedetect=noise=%sdB:d=%s",
		strconv.FormatFloat(opts.ThresholdDB, 'f', -1, 64),
		strconv.FormatFloat(opts.MinSilenceSec, 'f', -1, 64),
	)
}
