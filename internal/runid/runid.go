// Package runid generates identifiers that correlate the log lines of one run.
package runid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	prefix      = "split"
	stampLayout = "20060102T150405Z"
)

// New returns the ID of a run started at start, e.g.
// split-20261017T103000Z-a1b2c3d4. The timestamp is always UTC.
func New(start time.Time) string {
	stamp := start.UTC().Format(stampLayout)

	var suffix [4]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return fmt.Sprintf("%s-%s-%08x", prefix, stamp, uint32(start.UnixNano()))
	}
	return prefix + "-" + stamp + "-" + hex.EncodeToString(suffix[:])
}
