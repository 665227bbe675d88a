package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSortable(t *testing.T) {
	ids := make([]string, 200)
	for i := range ids {
		ids[i] = New()
	}

	assert.True(t, sort.StringsAreSorted(ids))
	seen := map[string]bool{}
	for _, s := range ids {
		assert.Len(t, s, 26)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 13, 17, 45, 30, 123_000_000, time.UTC)
	s := NewAt(at)

	got, err := Time(s)
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "got %s", got)

	_, err = Time("not-a-ulid")
	assert.Error(t, err)
}
