package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutoffRejects(t *testing.T) {
	t.Parallel()

	c := Cutoff(DefaultMacroCutoff)

	tests := []struct {
		date string
		want bool
	}{
		{"2023-12-31", true},
		{"2023-01-01", true},
		{"2024-01-01", false},
		{"2024-01-01T08:30:00Z", false},
		{"2025-06-30", false},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Rejects(tt.date))
		})
	}
}

func TestZeroCutoffAcceptsEverything(t *testing.T) {
	t.Parallel()

	var c Cutoff
	assert.False(t, c.Enabled())
	assert.False(t, c.Rejects("1999-01-01"))
	assert.False(t, c.Rejects(""))
}

func TestParseCutoff(t *testing.T) {
	t.Parallel()

	c, err := ParseCutoff("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, Cutoff("2024-01-01"), c)

	c, err = ParseCutoff("")
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	for _, bad := range []string{"2024-1-1", "01/01/2024", "2024-13-01", "yesterday"} {
		_, err := ParseCutoff(bad)
		assert.Error(t, err, bad)
	}
}
