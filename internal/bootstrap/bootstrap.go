// Package bootstrap provides dependency initialization for silencesplit.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maauso/silencesplit/internal/audio"
	"github.com/maauso/silencesplit/internal/config"
	"github.com/maauso/silencesplit/internal/extract"
	"github.com/maauso/silencesplit/internal/ffmpeg"
	"github.com/maauso/silencesplit/internal/media"
	"github.com/maauso/silencesplit/internal/split"
	"github.com/maauso/silencesplit/internal/storage"
)

// Dependencies holds all initialized dependencies for a split run.
type Dependencies struct {
	SplitService *split.Service
}

// Option configures dependency construction.
type Option func(*options)

type options struct {
	runner ffmpeg.Runner
}

// WithRunner replaces the process runner used for ffmpeg and ffprobe.
func WithRunner(r ffmpeg.Runner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Dependencies, error) {
	o := options{runner: ffmpeg.ExecRunner{}}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	prober := media.NewFFprobeProber(cfg.FFprobePath, media.WithRunner(o.runner))
	detector := audio.NewFFmpegSilenceDetector(cfg.FFmpegPath, o.runner)
	ranges := extract.NewFFmpegRangeExtractor(cfg.FFmpegPath, o.runner)

	svcOpts := []split.Option{
		split.WithCapabilityCheck(func(ctx context.Context) error {
			return ffmpeg.CheckAvailable(ctx, o.runner, cfg.FFmpegPath, cfg.FFprobePath)
		}),
	}
	if cfg.VerifyTracks {
		svcOpts = append(svcOpts, split.WithVerifier(extract.MP3Verifier{}))
	}
	if store != nil {
		svcOpts = append(svcOpts, split.WithStorage(store, cfg.S3Prefix))
	}

	svc := split.NewService(prober, detector, ranges, logger, svcOpts...)

	return &Dependencies{
		SplitService: svc,
	}, nil
}

// initStorage creates the publishing backend based on configuration.
// S3 takes precedence over a local publish directory; nil means tracks
// stay in the output directory only.
func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(ctx, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 publishing configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
			slog.String("prefix", cfg.S3Prefix),
		)
		return s3Store, nil
	}

	if cfg.PublishEnabled() {
		localStore, err := storage.NewLocalStorage(cfg.PublishDir)
		if err != nil {
			return nil, fmt.Errorf("create local storage: %w", err)
		}
		logger.Info("local publishing configured",
			slog.String("publish_dir", cfg.PublishDir),
		)
		return localStore, nil
	}

	return nil, nil
}
