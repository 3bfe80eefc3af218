// Package extract writes each detected segment to its own file.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/maauso/silencesplit/internal/audio"
)

// RangeExtractor defines the interface for lossless extraction of a time
// range into a new file. Existing output files are overwritten.
type RangeExtractor interface {
	ExtractRange(ctx context.Context, inputPath string, start, duration float64, outputPath string) error
}

// DurationVerifier measures the playable duration of an extracted file.
type DurationVerifier interface {
	Verify(path string) (float64, error)
}

// Result is the outcome of extracting a single segment.
type Result struct {
	// Index is the 1-based track number.
	Index      int
	OutputPath string
	Start      float64
	End        float64
	Duration   float64
	Success    bool
	// Err is set when Success is false.
	Err error
	// VerifiedDuration is the measured length of the written file, zero
	// when verification was skipped or failed.
	VerifiedDuration float64
}

// verifyTolerance is how far a measured track may drift from the requested
// duration before a warning is logged. Stream copy cuts on frame boundaries.
const verifyTolerance = 1.0

// Extractor extracts segments one by one, in index order.
type Extractor struct {
	ranges   RangeExtractor
	verifier DurationVerifier
	logger   *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithVerifier enables post-extraction duration checks.
func WithVerifier(v DurationVerifier) ExtractorOption {
	return func(e *Extractor) {
		e.verifier = v
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(ranges RangeExtractor, logger *slog.Logger, opts ...ExtractorOption) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{ranges: ranges, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract writes each segment of inputPath into outputDir as
// "<baseName>_track_NN.mp3". A failing segment is recorded in its Result
// and does not stop the remaining ones. The returned error is non-nil only
// when the output directory cannot be created or ctx is cancelled.
func (e *Extractor) Extract(ctx context.Context, inputPath string, segments []audio.Segment, outputDir, baseName string) ([]Result, error) {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	name := SanitizeBaseName(baseName)
	results := make([]Result, 0, len(segments))

	e.logger.Info("splitting audio",
		slog.Int("segments", len(segments)),
		slog.String("output_dir", outputDir),
	)

	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("extraction cancelled: %w", err)
		}

		res := e.extractOne(ctx, inputPath, seg, i+1, filepath.Join(outputDir, TrackFileName(name, i+1)))
		results = append(results, res)
	}

	succeeded := Succeeded(results)
	e.logger.Info("extraction finished",
		slog.Int("succeeded", succeeded),
		slog.Int("failed", len(results)-succeeded),
	)

	return results, nil
}

// extractOne extracts a single segment. It holds no state shared between
// segments.
func (e *Extractor) extractOne(ctx context.Context, inputPath string, seg audio.Segment, index int, outputPath string) Result {
	res := Result{
		Index:      index,
		OutputPath: outputPath,
		Start:      seg.Start,
		End:        seg.End,
		Duration:   seg.Duration(),
	}

	e.logger.Info("extracting track",
		slog.Int("track", index),
		slog.String("file", filepath.Base(outputPath)),
		slog.Float64("duration_sec", res.Duration),
	)

	if err := e.ranges.ExtractRange(ctx, inputPath, seg.Start, res.Duration, outputPath); err != nil {
		e.logger.Error("failed to extract track",
			slog.Int("track", index),
			slog.String("error", err.Error()),
		)
		res.Err = fmt.Errorf("extract track %d: %w", index, err)
		return res
	}
	res.Success = true

	e.logger.Info("track saved",
		slog.Int("track", index),
		slog.String("range", seg.String()),
	)

	if e.verifier != nil {
		e.verify(&res)
	}

	return res
}

// verify measures the written file. Failures only produce log output.
func (e *Extractor) verify(res *Result) {
	got, err := e.verifier.Verify(res.OutputPath)
	if err != nil {
		e.logger.Debug("track verification skipped",
			slog.Int("track", res.Index),
			slog.String("error", err.Error()),
		)
		return
	}

	res.VerifiedDuration = got
	if math.Abs(got-res.Duration) > verifyTolerance {
		e.logger.Warn("track duration differs from segment",
			slog.Int("track", res.Index),
			slog.Float64("expected_sec", res.Duration),
			slog.Float64("actual_sec", got),
		)
	}
}

// unsafeNameChars are replaced in base names so track files can be created
// on any common filesystem.
var unsafeNameChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeBaseName replaces each of < > : " / \ | ? * with an underscore.
func SanitizeBaseName(name string) string {
	return unsafeNameChars.Replace(name)
}

// TrackFileName returns "<baseName>_track_NN.mp3" with a two-digit,
// zero-padded index.
func TrackFileName(baseName string, index int) string {
	return fmt.Sprintf("%s_track_%02d.mp3", baseName, index)
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Succeeded counts successful results.
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
