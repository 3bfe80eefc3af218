// Package storage publishes extracted tracks to a destination beyond the
// local output directory. It defines the Storage interface (port) and
// implementations for a local directory and S3.
package storage

import (
	"context"
	"errors"
	"path"
)

// ErrEmptyKey is returned when a track is published without a key.
var ErrEmptyKey = errors.New("storage key is empty")

// Storage defines the interface for publishing finished tracks.
type Storage interface {
	// Publish copies the file at localPath to the backend under key and
	// returns the location it can be retrieved from (URL or path).
	Publish(ctx context.Context, key, localPath string) (location string, err error)
}

// TrackKey builds the object key for a track: "<prefix>/<album>/<file>".
// Empty parts are skipped.
func TrackKey(prefix, album, file string) string {
	return path.Join(prefix, album, file)
}
