package split

import (
	"time"

	"github.com/maauso/silencesplit/internal/audio"
	"github.com/maauso/silencesplit/internal/extract"
	"github.com/maauso/silencesplit/internal/media"
)

// Track is an extraction result plus its publishing outcome.
type Track struct {
	extract.Result
	// Location is where the track was published, empty if not published.
	Location string
	// PublishErr is set when publishing a successfully extracted track failed.
	PublishErr error
}

// Report describes a finished (or aborted) run.
type Report struct {
	RunID     string
	StartedAt time.Time
	InputPath string
	OutputDir string
	// BaseName is the sanitized file name prefix of every track.
	BaseName string
	Info     media.MediaInfo
	Segments []audio.Segment
	Tracks   []Track
}

// SegmentsDuration sums the length of all detected segments.
func (r *Report) SegmentsDuration() float64 {
	return audio.TotalDuration(r.Segments)
}

// Created counts the track files written successfully.
func (r *Report) Created() int {
	n := 0
	for _, t := range r.Tracks {
		if t.Success {
			n++
		}
	}
	return n
}

// Failed counts the tracks that could not be extracted.
func (r *Report) Failed() int {
	return len(r.Tracks) - r.Created()
}

// Published counts the tracks that reached the publishing target.
func (r *Report) Published() int {
	n := 0
	for _, t := range r.Tracks {
		if t.Location != "" {
			n++
		}
	}
	return n
}
