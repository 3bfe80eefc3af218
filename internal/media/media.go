// Package media provides metadata probing for audio files.
package media

import (
	"context"
	"errors"
)

// Static errors for media probing.
var (
	// ErrNoAudioStream is returned when a file contains no audio stream.
	ErrNoAudioStream = errors.New("no audio stream found")
	// ErrMalformedMetadata is returned when duration, size or stream fields
	// are missing or not numeric.
	ErrMalformedMetadata = errors.New("malformed media metadata")
	// ErrFFprobeExecution is returned when the ffprobe command fails.
	ErrFFprobeExecution = errors.New("ffprobe execution failed")
)

// Tags holds descriptive metadata embedded in the source file.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// IsZero reports whether no tag was found.
func (t Tags) IsZero() bool {
	return t.Title == "" && t.Artist == "" && t.Album == ""
}

// MediaInfo is an immutable snapshot of a media file's container and
// first audio stream.
type MediaInfo struct {
	// Duration is the container duration in seconds.
	Duration float64
	// Size is the container size in bytes.
	Size int64
	// SampleRate of the selected audio stream in Hz.
	SampleRate int
	// Channels of the selected audio stream.
	Channels int
	// Codec is the audio stream codec name, e.g. "mp3".
	Codec string
	// Tags are best-effort and may be empty.
	Tags Tags
}

// SizeGB returns the container size in gigabytes (1024^3 bytes).
func (m MediaInfo) SizeGB() float64 {
	return float64(m.Size) / (1024 * 1024 * 1024)
}

// Prober defines the interface for reading media metadata.
type Prober interface {
	// Probe reads container and stream metadata from the file at path.
	// It returns ErrNoAudioStream when the file has no audio stream and
	// ErrMalformedMetadata when required fields cannot be parsed.
	Probe(ctx context.Context, path string) (MediaInfo, error)
}
