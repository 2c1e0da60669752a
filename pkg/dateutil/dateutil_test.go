package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateOnly(t *testing.T) {
	got, err := Parse("2025-02-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateTime(t *testing.T) {
	got, err := Parse("2025-02-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC), got)
}

func TestParseRejectsOtherFormats(t *testing.T) {
	for _, s := range []string{"01/02/2025", "2025-2-1", "yesterday", ""} {
		_, err := Parse(s)
		assert.Errorf(t, err, "input %q", s)
	}
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptional("2025-12-31")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 31, got.Day())

	_, err = ParseOptional("31-12-2025")
	assert.Error(t, err)
}
