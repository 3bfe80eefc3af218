package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tcolgate/mp3"
)

// Static errors for track verification.
var (
	// ErrNotMP3 is returned when the file does not have an .mp3 extension.
	ErrNotMP3 = errors.New("not an mp3 file")
	// ErrNoFrames is returned when no MPEG audio frame could be decoded.
	ErrNoFrames = errors.New("no mp3 frames found")
)

// MP3Verifier measures track length by walking MPEG frame headers.
type MP3Verifier struct{}

// Verify implements DurationVerifier.Verify.
func (MP3Verifier) Verify(path string) (float64, error) {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return 0, ErrNotMP3
	}

	f, err := os.Open(path) // #nosec G304 - path is a track written by this process
	if err != nil {
		return 0, fmt.Errorf("open track: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total float64
	frames := 0

	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return 0, fmt.Errorf("decode frame %d: %w", frames, err)
		}
		total += frame.Duration().Seconds()
		frames++
	}

	if frames == 0 {
		return 0, ErrNoFrames
	}

	return total, nil
}
