package extract

import (
	"context"
	"fmt"

	"github.com/maauso/silencesplit/internal/ffmpeg"
)

// FFmpegRangeExtractor implements RangeExtractor with an ffmpeg stream copy.
type FFmpegRangeExtractor struct {
	ffmpegPath string
	runner     ffmpeg.Runner
}

// NewFFmpegRangeExtractor creates a new FFmpegRangeExtractor.
// If ffmpegPath is empty, it defaults to "ffmpeg" (found in PATH).
// If runner is nil, processes are started with ffmpeg.ExecRunner.
func NewFFmpegRangeExtractor(ffmpegPath string, runner ffmpeg.Runner) *FFmpegRangeExtractor {
	if ffmpegPath == "" {
		ffmpegPath = ffmpeg.DefaultFFmpegPath
	}
	if runner == nil {
		runner = ffmpeg.ExecRunner{}
	}
	return &FFmpegRangeExtractor{ffmpegPath: ffmpegPath, runner: runner}
}

// Verify interface implementation at compile time.
var _ RangeExtractor = (*FFmpegRangeExtractor)(nil)

// ExtractRange implements RangeExtractor.ExtractRange.
func (x *FFmpegRangeExtractor) ExtractRange(ctx context.Context, inputPath string, start, duration float64, outputPath string) error {
	if _, err := x.runner.Run(ctx, x.ffmpegPath, rangeArgs(inputPath, start, duration, outputPath)...); err != nil {
		return fmt.Errorf("extract range: %w", err)
	}
	return nil
}

// rangeArgs builds the ffmpeg arguments for a lossless range copy. Seeking
// after -i trades speed for cut accuracy.
func rangeArgs(inputPath string, start, duration float64, outputPath string) []string {
	return []string{
		"-hide_banner",
		"-i", inputPath,
		"-ss", fmt.Sprintf("%.3f", start),
		"-t", fmt.Sprintf("%.3f", duration),
		"-c", "copy", // Copy without re-encoding
		"-avoid_negative_ts", "make_zero",
		"-y", // Overwrite output
		outputPath,
	}
}
