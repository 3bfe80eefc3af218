package audio

import "fmt"

// MinSegmentSec is the shortest non-silent run kept as a track. Anything
// shorter is detector noise or a blip between silences.
const MinSegmentSec = 5.0

// Segment is a non-silent time range in seconds, Start < End.
type Segment struct {
	Start float64
	End   float64
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("%.2fs-%.2fs", s.Start, s.End)
}

// BuildSegments converts ordered silences into the non-silent runs between
// them. A cursor starts at zero; each silence that begins after the cursor
// closes a segment, and the cursor always advances to the silence end. Audio
// left after the last silence becomes a trailing segment ending at
// totalDuration.
func BuildSegments(silences []Silence, totalDuration float64) []Segment {
	var segments []Segment
	cur := 0.0

	for _, s := range silences {
		if s.Start > cur {
			segments = append(segments, Segment{Start: cur, End: s.Start})
		}
		cur = s.End
	}

	if cur < totalDuration {
		segments = append(segments, Segment{Start: cur, End: totalDuration})
	}

	return segments
}

// FilterSegments returns the segments lasting at least minSec, preserving order.
func FilterSegments(segments []Segment, minSec float64) []Segment {
	kept := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.Duration() >= minSec {
			kept = append(kept, s)
		}
	}
	return kept
}

// TotalDuration sums the durations of segments.
func TotalDuration(segments []Segment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Duration()
	}
	return total
}
