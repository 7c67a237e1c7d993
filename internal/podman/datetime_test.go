package podman

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuntimeTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "podman inspect with duplicated offset",
			input: "2024-10-03 12:28:30.701255218 +0100 +0100",
			want:  time.Date(2024, 10, 3, 12, 28, 30, 701255218, time.FixedZone("", 3600)),
		},
		{
			name:  "stat output",
			input: "2024-10-03 12:28:30.701255218 +0100",
			want:  time.Date(2024, 10, 3, 12, 28, 30, 701255218, time.FixedZone("", 3600)),
		},
		{
			name:  "negative offset",
			input: "2024-10-03 07:28:30 -0500 EST",
			want:  time.Date(2024, 10, 3, 7, 28, 30, 0, time.FixedZone("", -5*3600)),
		},
		{
			name:  "rfc3339 with T and Z",
			input: "2024-10-03T12:28:30.701255218Z",
			want:  time.Date(2024, 10, 3, 12, 28, 30, 701255218, time.UTC),
		},
		{
			name:  "colon separated offset",
			input: "2024-10-03T12:28:30+01:00",
			want:  time.Date(2024, 10, 3, 12, 28, 30, 0, time.FixedZone("", 3600)),
		},
		{
			name:  "no offset defaults to UTC",
			input: "2024-10-03 12:28:30",
			want:  time.Date(2024, 10, 3, 12, 28, 30, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRuntimeTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseRuntimeTimeErrors(t *testing.T) {
	for _, input := range []string{"", "not a date", "Error: image not known"} {
		_, err := ParseRuntimeTime(input)
		assert.Error(t, err, "input %q", input)
	}
}
