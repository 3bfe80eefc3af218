package media

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// ReadTags reads ID3/MP4/FLAC/Ogg tags from the file at path.
func ReadTags(path string) (Tags, error) {
	f, err := os.Open(path) // #nosec G304 - path is the user-selected input file
	if err != nil {
		return Tags{}, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}, fmt.Errorf("read tags: %w", err)
	}

	return Tags{
		Title:  strings.TrimSpace(meta.Title()),
		Artist: strings.TrimSpace(meta.Artist()),
		Album:  strings.TrimSpace(meta.Album()),
	}, nil
}
