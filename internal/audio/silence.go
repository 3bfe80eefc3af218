package audio

import (
	"regexp"
	"strconv"
	"strings"
)

// EventKind tags a silence boundary.
type EventKind int

const (
	// SilenceStart marks the moment audio drops below the threshold.
	SilenceStart EventKind = iota + 1
	// SilenceEnd marks the moment audio rises above the threshold again.
	SilenceEnd
)

func (k EventKind) String() string {
	switch k {
	case SilenceStart:
		return "silence_start"
	case SilenceEnd:
		return "silence_end"
	default:
		return "unknown"
	}
}

// SilenceEvent is a single boundary reported by the detector.
type SilenceEvent struct {
	Kind EventKind
	// At is the boundary timestamp in seconds.
	At float64
}

// Silence is a detected silent interval in seconds.
type Silence struct {
	Start float64
	End   float64
}

// Boundary patterns emitted by ffmpeg's silencedetect filter:
//
//	[silencedetect @ 0x...] silence_start: 42.123
//	[silencedetect @ 0x...] silence_end: 43.456 | silence_duration: 1.333
//
// Older ffmpeg releases format timestamps with %g, so exponents such as
// 5e-05 or 1.23457e+06 must be accepted too.
var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?\d+(?:\.\d*)?(?:[eE][-+]?\d+)?)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?\d+(?:\.\d*)?(?:[eE][-+]?\d+)?)`)
)

// ParseSilenceEvents extracts silence boundaries from a detector report in
// the order they appear. Lines without a boundary tag are ignored. A line is
// read as a start if it carries one, otherwise as an end. Negative
// timestamps, which ffmpeg reports for silence at the very beginning of some
// streams, are clamped to zero.
func ParseSilenceEvents(report string) []SilenceEvent {
	var events []SilenceEvent

	lines := strings.FieldsFunc(report, func(r rune) bool { return r == '\n' || r == '\r' })
	for _, line := range lines {
		if ev, ok := matchEvent(silenceStartRe, SilenceStart, line); ok {
			events = append(events, ev)
		} else if ev, ok := matchEvent(silenceEndRe, SilenceEnd, line); ok {
			events = append(events, ev)
		}
	}

	return events
}

func matchEvent(re *regexp.Regexp, kind EventKind, line string) (SilenceEvent, bool) {
	m := re.FindStringSubmatch(line)
	if len(m) < 2 {
		return SilenceEvent{}, false
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return SilenceEvent{}, false
	}
	if val < 0 {
		val = 0
	}
	return SilenceEvent{Kind: kind, At: val}, true
}

// PairSilences matches starts and ends by position: the i-th start pairs
// with the i-th end. Starts without a matching end (a silence still open when
// the stream ended) are dropped, as are surplus ends. The number of dropped
// starts is returned alongside the pairs.
func PairSilences(events []SilenceEvent) (silences []Silence, unmatched int) {
	var starts, ends []float64
	for _, ev := range events {
		switch ev.Kind {
		case SilenceStart:
			starts = append(starts, ev.At)
		case SilenceEnd:
			ends = append(ends, ev.At)
		}
	}

	n := min(len(starts), len(ends))
	silences = make([]Silence, 0, n)
	for i := 0; i < n; i++ {
		silences = append(silences, Silence{Start: starts[i], End: ends[i]})
	}

	return silences, len(starts) - n
}
