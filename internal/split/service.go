// Package split provides the Service use case that turns one long recording
// into individual track files: probe, detect silence, extract, publish.
package split

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/silencesplit/internal/audio"
	"github.com/maauso/silencesplit/internal/extract"
	"github.com/maauso/silencesplit/internal/media"
	"github.com/maauso/silencesplit/internal/runid"
	"github.com/maauso/silencesplit/internal/storage"
)

// Static errors for a split run.
var (
	// ErrInputNotFound is returned when the source file does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrNoSegments is returned when no segment survives filtering.
	ErrNoSegments = errors.New("no segments detected")
	// ErrInvalidRequest is returned when a Request fails validation.
	ErrInvalidRequest = errors.New("invalid split request")
)

// Request contains the input parameters for one run.
type Request struct {
	// InputPath is the recording to split.
	InputPath string `validate:"required"`
	// OutputDir receives the track files. Created if missing.
	OutputDir string `validate:"required"`
	// ThresholdDB is the silence threshold in dB.
	ThresholdDB float64 `validate:"lte=0"`
	// MinSilenceSec is the shortest gap treated as silence.
	MinSilenceSec float64 `validate:"gt=0"`
}

// Service orchestrates a split run.
//
// Dependencies:
//   - media.Prober: duration and stream metadata
//   - audio.SilenceDetector: silence report
//   - extract.RangeExtractor: lossless range copy
//   - extract.DurationVerifier: optional track check
//   - storage.Storage: optional publishing target
type Service struct {
	prober    media.Prober
	detector  audio.SilenceDetector
	ranges    extract.RangeExtractor
	verifier  extract.DurationVerifier
	store     storage.Storage
	keyPrefix string
	check     func(ctx context.Context) error
	logger    *slog.Logger
	validate  *validator.Validate
}

// Option configures a Service.
type Option func(*Service)

// WithVerifier enables track duration verification after extraction.
func WithVerifier(v extract.DurationVerifier) Option {
	return func(s *Service) {
		s.verifier = v
	}
}

// WithStorage publishes every extracted track to store under
// "<prefix>/<base name>/<file>".
func WithStorage(store storage.Storage, prefix string) Option {
	return func(s *Service) {
		s.store = store
		s.keyPrefix = prefix
	}
}

// WithCapabilityCheck sets a check that runs before probing, typically
// ffmpeg.CheckAvailable. Its error aborts the run unchanged.
func WithCapabilityCheck(check func(ctx context.Context) error) Option {
	return func(s *Service) {
		s.check = check
	}
}

// NewService creates a new Service.
func NewService(prober media.Prober, detector audio.SilenceDetector, ranges extract.RangeExtractor, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		prober:   prober,
		detector: detector,
		ranges:   ranges,
		logger:   logger,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a complete split. Fatal conditions (missing input,
// unavailable engine, probe failure, no segments) are returned as errors.
// Per-track extraction and publishing failures are recorded in the report
// and do not fail the run. The report is non-nil whenever probing succeeded.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if _, err := os.Stat(req.InputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, req.InputPath)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if s.check != nil {
		if err := s.check(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	report := &Report{
		RunID:     runid.New(start),
		StartedAt: start,
		InputPath: req.InputPath,
		OutputDir: req.OutputDir,
		BaseName:  extract.SanitizeBaseName(extract.BaseName(req.InputPath)),
	}
	logger := s.logger.With(slog.String("run_id", report.RunID))

	logger.Info("processing input", slog.String("input", req.InputPath))

	info, err := s.prober.Probe(ctx, req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", req.InputPath, err)
	}
	report.Info = info

	logger.Info("media probed",
		slog.Float64("duration_sec", info.Duration),
		slog.Int64("size_bytes", info.Size),
		slog.Int("sample_rate", info.SampleRate),
		slog.Int("channels", info.Channels),
		slog.String("codec", info.Codec),
	)

	analyzer := audio.NewAnalyzer(s.detector, logger)
	segments, err := analyzer.Analyze(ctx, req.InputPath, info.Duration, audio.DetectOpts{
		ThresholdDB:   req.ThresholdDB,
		MinSilenceSec: req.MinSilenceSec,
	})
	if err != nil {
		return report, err
	}
	report.Segments = segments

	if len(segments) == 0 {
		return report, ErrNoSegments
	}

	var extractOpts []extract.ExtractorOption
	if s.verifier != nil {
		extractOpts = append(extractOpts, extract.WithVerifier(s.verifier))
	}
	extractor := extract.NewExtractor(s.ranges, logger, extractOpts...)

	results, err := extractor.Extract(ctx, req.InputPath, segments, req.OutputDir, report.BaseName)
	report.Tracks = make([]Track, 0, len(results))
	for _, r := range results {
		report.Tracks = append(report.Tracks, Track{Result: r})
	}
	if err != nil {
		return report, err
	}

	if s.store != nil {
		s.publish(ctx, logger, report)
	}

	logger.Info("splitting complete",
		slog.Float64("original_duration_sec", info.Duration),
		slog.Float64("segments_duration_sec", report.SegmentsDuration()),
		slog.Int("created", report.Created()),
		slog.Int("failed", report.Failed()),
		slog.String("output_dir", req.OutputDir),
		slog.Duration("elapsed", time.Since(start)),
	)

	return report, nil
}

// publish sends every successful track to the configured storage. Failures
// are recorded per track.
func (s *Service) publish(ctx context.Context, logger *slog.Logger, report *Report) {
	for i := range report.Tracks {
		t := &report.Tracks[i]
		if !t.Success {
			continue
		}

		key := storage.TrackKey(s.keyPrefix, report.BaseName, filepath.Base(t.OutputPath))
		location, err := s.store.Publish(ctx, key, t.OutputPath)
		if err != nil {
			logger.Error("failed to publish track",
				slog.Int("track", t.Index),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			t.PublishErr = err
			continue
		}

		t.Location = location
		logger.Info("track published",
			slog.Int("track", t.Index),
			slog.String("location", location),
		)
	}
}
