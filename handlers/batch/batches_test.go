package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-04-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2026-04-01T09:30:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 4, 0, 0, 0, time.UTC), d.UTC())

	for _, raw := range []string{"", "01/04/2026", "2026-13-01"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}
