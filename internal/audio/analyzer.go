// Package audio finds the non-silent segments of a recording.
package audio

import (
	"context"
	"fmt"
	"log/slog"
)

// DetectOpts configures silence detection.
type DetectOpts struct {
	// ThresholdDB is the volume in dB below which audio counts as silence.
	// More negative is stricter.
	// Default: -48 dB.
	ThresholdDB float64

	// MinSilenceSec is the shortest quiet interval reported as silence.
	// Default: 1.5 seconds.
	MinSilenceSec float64
}

// SilenceDetector defines the interface for running silence detection over a
// file. The returned report must contain silence_start/silence_end lines
// readable by ParseSilenceEvents.
type SilenceDetector interface {
	DetectSilence(ctx context.Context, path string, opts DetectOpts) (report string, err error)
}

// Analyzer turns a silence detection report into ordered, filtered segments.
type Analyzer struct {
	detector SilenceDetector
	logger   *slog.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(detector SilenceDetector, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		detector: detector,
		logger:   logger,
	}
}

// Analyze detects silence in path and returns the non-silent segments,
// ordered and non-overlapping, each at least the minimum segment length.
//
// A failed detection is logged and treated as a report without silences,
// which yields a single full-length segment. The only error returned is a
// cancelled context.
func (a *Analyzer) Analyze(ctx context.Context, path string, totalDuration float64, opts DetectOpts) ([]Segment, error) {
	a.logger.Info("detecting silence",
		slog.String("input", path),
		slog.Float64("threshold_db", opts.ThresholdDB),
		slog.Float64("min_silence_sec", opts.MinSilenceSec),
	)

	report, err := a.detector.DetectSilence(ctx, path, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("detect silence: %w", ctx.Err())
		}
		a.logger.Warn("silence detection failed, treating file as continuous audio",
			slog.String("input", path),
			slog.String("error", err.Error()),
		)
		report = ""
	}

	silences, unmatched := PairSilences(ParseSilenceEvents(report))
	a.logger.Info("silence periods found",
		slog.Int("count", len(silences)+unmatched),
	)
	if unmatched > 0 {
		a.logger.Warn("dropping silence without end",
			slog.Int("unmatched_starts", unmatched),
		)
	}

	return a.segments(silences, totalDuration), nil
}

// segments builds and filters the segment list for already paired silences.
func (a *Analyzer) segments(silences []Silence, totalDuration float64) []Segment {
	all := BuildSegments(silences, totalDuration)
	kept := FilterSegments(all, MinSegmentSec)

	if dropped := len(all) - len(kept); dropped > 0 {
		a.logger.Debug("dropped short segments",
			slog.Int("dropped", dropped),
			slog.Float64("min_segment_sec", MinSegmentSec),
		)
	}

	return kept
}
