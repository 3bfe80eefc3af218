package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/maauso/silencesplit/internal/ffmpeg"
)

// ffprobeStream is a single entry of ffprobe's "streams" table.
type ffprobeStream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// ffprobeFormat is ffprobe's "format" table.
type ffprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	Tags       map[string]string `json:"tags"`
}

// ffprobeOutput represents the raw JSON output from ffprobe.
type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

// FFprobeProber implements Prober using the ffprobe CLI.
type FFprobeProber struct {
	ffprobePath string
	runner      ffmpeg.Runner
	readTags    func(path string) (Tags, error)
}

// ProberOption configures an FFprobeProber.
type ProberOption func(*FFprobeProber)

// WithRunner sets the command runner. Defaults to ffmpeg.ExecRunner.
func WithRunner(r ffmpeg.Runner) ProberOption {
	return func(p *FFprobeProber) {
		p.runner = r
	}
}

// WithTagReader replaces the embedded tag reader.
func WithTagReader(fn func(path string) (Tags, error)) ProberOption {
	return func(p *FFprobeProber) {
		p.readTags = fn
	}
}

// NewFFprobeProber creates a new FFprobeProber.
// If ffprobePath is empty, it defaults to "ffprobe" (found via PATH).
func NewFFprobeProber(ffprobePath string, opts ...ProberOption) *FFprobeProber {
	if ffprobePath == "" {
		ffprobePath = ffmpeg.DefaultFFprobePath
	}
	p := &FFprobeProber{
		ffprobePath: ffprobePath,
		runner:      ffmpeg.ExecRunner{},
		readTags:    ReadTags,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Verify interface implementation at compile time.
var _ Prober = (*FFprobeProber)(nil)

// Probe implements Prober.Probe.
func (p *FFprobeProber) Probe(ctx context.Context, path string) (MediaInfo, error) {
	out, err := p.runner.Run(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		if ctx.Err() != nil {
			return MediaInfo{}, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		return MediaInfo{}, fmt.Errorf("%w: %w", ErrFFprobeExecution, err)
	}

	info, formatTags, err := parseProbeOutput(out.Stdout)
	if err != nil {
		return MediaInfo{}, err
	}

	// Embedded tags win; ffprobe's format tags cover containers the tag
	// reader does not understand.
	tags, err := p.readTags(path)
	if err != nil || tags.IsZero() {
		tags = tagsFromFormat(formatTags)
	}
	info.Tags = tags

	return info, nil
}

// parseProbeOutput converts ffprobe JSON into MediaInfo, selecting the
// first audio stream.
func parseProbeOutput(data []byte) (MediaInfo, map[string]string, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return MediaInfo{}, nil, fmt.Errorf("%w: parse ffprobe JSON: %w", ErrMalformedMetadata, err)
	}

	var audio *ffprobeStream
	for i := range raw.Streams {
		if raw.Streams[i].CodecType == "audio" {
			audio = &raw.Streams[i]
			break
		}
	}
	if audio == nil {
		return MediaInfo{}, nil, ErrNoAudioStream
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(raw.Format.Duration), 64)
	if err != nil || duration <= 0 {
		return MediaInfo{}, nil, fmt.Errorf("%w: duration %q", ErrMalformedMetadata, raw.Format.Duration)
	}

	size, err := strconv.ParseInt(strings.TrimSpace(raw.Format.Size), 10, 64)
	if err != nil || size < 0 {
		return MediaInfo{}, nil, fmt.Errorf("%w: size %q", ErrMalformedMetadata, raw.Format.Size)
	}

	sampleRate, err := strconv.Atoi(strings.TrimSpace(audio.SampleRate))
	if err != nil || sampleRate <= 0 {
		return MediaInfo{}, nil, fmt.Errorf("%w: sample rate %q", ErrMalformedMetadata, audio.SampleRate)
	}

	if audio.Channels <= 0 {
		return MediaInfo{}, nil, fmt.Errorf("%w: channels %d", ErrMalformedMetadata, audio.Channels)
	}

	return MediaInfo{
		Duration:   duration,
		Size:       size,
		SampleRate: sampleRate,
		Channels:   audio.Channels,
		Codec:      audio.CodecName,
	}, raw.Format.Tags, nil
}

// tagsFromFormat reads title/artist/album from ffprobe format tags.
// Tag keys differ in case between containers.
func tagsFromFormat(raw map[string]string) Tags {
	var t Tags
	for k, v := range raw {
		switch strings.ToLower(k) {
		case "title":
			t.Title = strings.TrimSpace(v)
		case "artist":
			t.Artist = strings.TrimSpace(v)
		case "album":
			t.Album = strings.TrimSpace(v)
		}
	}
	return t
}
