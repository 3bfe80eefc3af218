package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSegments(t *testing.T) {
	tests := []struct {
		name     string
		silences []Silence
		total    float64
		want     []Segment
	}{
		{
			name:     "runs between and after silences",
			silences: []Silence{{Start: 2, End: 5}, {Start: 10, End: 15}},
			total:    20,
			want:     []Segment{{0, 2}, {5, 10}, {15, 20}},
		},
		{
			name:     "silence at start yields no leading segment",
			silences: []Silence{{Start: 0, End: 3}},
			total:    30,
			want:     []Segment{{3, 30}},
		},
		{
			name:     "silence at end yields no trailing segment",
			silences: []Silence{{Start: 25, End: 30}},
			total:    30,
			want:     []Segment{{0, 25}},
		},
		{
			name:     "no silence yields full duration",
			silences: nil,
			total:    42.5,
			want:     []Segment{{0, 42.5}},
		},
		{
			name:     "no silence and no duration yields nothing",
			silences: nil,
			total:    0,
			want:     nil,
		},
		{
			name:     "back to back silences",
			silences: []Silence{{Start: 10, End: 12}, {Start: 12, End: 14}},
			total:    20,
			want:     []Segment{{0, 10}, {14, 20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSegments(tt.silences, tt.total))
		})
	}
}

func TestFilterSegments(t *testing.T) {
	segments := []Segment{{0, 2}, {5, 10}, {15, 20}, {20, 24.999}}

	got := FilterSegments(segments, MinSegmentSec)

	assert.Equal(t, []Segment{{5, 10}, {15, 20}}, got)
	for _, s := range got {
		assert.GreaterOrEqual(t, s.Duration(), MinSegmentSec)
	}
}

func TestSegments_PairingByPosition(t *testing.T) {
	events := ParseSilenceEvents(`silence_start: 2.0
silence_end: 5.0 | silence_duration: 3.0
silence_start: 10.0
silence_end: 15.0 | silence_duration: 5.0`)

	silences, unmatched := PairSilences(events)
	require.Zero(t, unmatched)

	got := FilterSegments(BuildSegments(silences, 20.0), MinSegmentSec)
	assert.Equal(t, []Segment{{5, 10}, {15, 20}}, got)
}

func TestSegments_OrderedAndNonOverlapping(t *testing.T) {
	silences := []Silence{
		{Start: 0, End: 1.7},
		{Start: 61.2, End: 63.9},
		{Start: 130.04, End: 133.5},
		{Start: 133.9, End: 136.0},
		{Start: 240.25, End: 242.0},
	}

	got := FilterSegments(BuildSegments(silences, 300), MinSegmentSec)
	require.NotEmpty(t, got)

	for i, s := range got {
		assert.Less(t, s.Start, s.End, "segment %d", i)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].End, s.Start, "segment %d overlaps previous", i)
			assert.Less(t, got[i-1].Start, s.Start, "segment %d not increasing", i)
		}
	}
}

func TestSegments_Idempotent(t *testing.T) {
	report := "silence_start: 12.5\nsilence_end: 14.25\nsilence_start: 70\nsilence_end: 71.75\n"

	run := func() []Segment {
		silences, _ := PairSilences(ParseSilenceEvents(report))
		return FilterSegments(BuildSegments(silences, 120), MinSegmentSec)
	}

	assert.Equal(t, run(), run())
}

func TestSegment_Helpers(t *testing.T) {
	s := Segment{Start: 5, End: 12.5}
	assert.InDelta(t, 7.5, s.Duration(), 1e-9)
	assert.Equal(t, "5.00s-12.50s", s.String())

	assert.InDelta(t, 12.5, TotalDuration([]Segment{{0, 5}, {10, 17.5}}), 1e-9)
	assert.Zero(t, TotalDuration(nil))
}
