package runid

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	start := time.Date(2026, 10, 17, 10, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	id := New(start)
	assert.Regexp(t, regexp.MustCompile(`^split-20261017T083000Z-[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, New(start))
}

func TestNew_Uniqueness(t *testing.T) {
	start := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(start)
		require.False(t, seen[id], "duplicate ID generated: %s", id)
		seen[id] = true
	}
}
