package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/silencesplit/internal/config"
	"github.com/maauso/silencesplit/internal/ffmpeg"
	"github.com/maauso/silencesplit/internal/split"
)

func testConfig() *config.Config {
	return &config.Config{
		OutputDir:     "splits",
		ThresholdDB:   -48,
		MinSilenceSec: 1.5,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

func parse(t *testing.T, argv ...string) *CLI {
	t.Helper()
	args := &CLI{}
	parser, err := newParser(args, testConfig())
	require.NoError(t, err)
	_, err = parser.Parse(argv)
	require.NoError(t, err)
	return args
}

func TestParse_Defaults(t *testing.T) {
	args := parse(t, "ost.mp3")
	assert.Equal(t, "ost.mp3", args.Input)
	assert.Equal(t, "splits", args.Output)
	assert.Equal(t, -48.0, args.Threshold)
	assert.Equal(t, 1.5, args.Duration)
	assert.Equal(t, "info", args.LogLevel)
	assert.Equal(t, "text", args.LogFormat)
}

func TestParse_NegativeThreshold(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"short flag", []string{"-t", "-50", "ost.mp3"}},
		{"long flag", []string{"--threshold", "-50", "ost.mp3"}},
		{"long flag with equals", []string{"--threshold=-50", "ost.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := parse(t, tt.argv...)
			assert.Equal(t, -50.0, args.Threshold)
			assert.Equal(t, "ost.mp3", args.Input)
		})
	}
}

func TestParse_Flags(t *testing.T) {
	args := parse(t, "-o", "tracks", "-d", "0.75", "--log-format", "json", "ost.mp3")
	assert.Equal(t, "tracks", args.Output)
	assert.Equal(t, 0.75, args.Duration)
	assert.Equal(t, "json", args.LogFormat)
}

func TestParse_Version(t *testing.T) {
	args := parse(t, "-v")
	assert.True(t, args.Version)
	assert.Empty(t, args.Input)
}

func TestHintFor(t *testing.T) {
	assert.Equal(t, ffmpeg.InstallHint, hintFor(fmt.Errorf("%w: ffprobe: not found", ffmpeg.ErrCapabilityUnavailable)))
	assert.Equal(t, noSegmentsHint, hintFor(split.ErrNoSegments))
	assert.Empty(t, hintFor(split.ErrInputNotFound))
	assert.Empty(t, hintFor(errors.New("boom")))
}
