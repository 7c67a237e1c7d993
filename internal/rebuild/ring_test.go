package rebuild

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputRingBound(t *testing.T) {
	tests := []struct {
		appends int
		limit   int
		want    int
	}{
		{appends: 0, limit: 5, want: 0},
		{appends: 3, limit: 5, want: 3},
		{appends: 5, limit: 5, want: 5},
		{appends: 12, limit: 5, want: 5},
		{appends: 100, limit: 1, want: 1},
	}

	for _, tt := range tests {
		r := NewOutputRing(tt.limit)
		for i := 0; i < tt.appends; i++ {
			r.Append(StreamStdout, fmt.Sprintf("line %d", i))
		}
		assert.Equal(t, tt.want, r.Len(), "appends=%d limit=%d", tt.appends, tt.limit)
	}
}

func TestOutputRingDropsOldestKeepsOrder(t *testing.T) {
	r := NewOutputRing(3)
	for i := 0; i < 7; i++ {
		r.Append(StreamStdout, fmt.Sprintf("line %d", i))
	}

	got := r.Snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "line 4", got[0].Text)
	assert.Equal(t, "line 5", got[1].Text)
	assert.Equal(t, "line 6", got[2].Text)
}

func TestOutputRingStreamTags(t *testing.T) {
	r := NewOutputRing(10)
	r.Append(StreamStdout, "out")
	r.Append(StreamStderr, "err")

	got := r.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, StreamStdout, got[0].Stream)
	assert.Equal(t, StreamStderr, got[1].Stream)
}

func TestOutputRingSnapshotIsCopy(t *testing.T) {
	r := NewOutputRing(4)
	r.Append(StreamStdout, "a")
	snap := r.Snapshot()
	snap[0].Text = "mutated"
	assert.Equal(t, "a", r.Snapshot()[0].Text)
}

func TestNewOutputRingClampsLimit(t *testing.T) {
	r := NewOutputRing(0)
	r.Append(StreamStdout, "a")
	r.Append(StreamStdout, "b")
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, r.Limit())
}
