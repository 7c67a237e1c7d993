package podman

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podtui/internal/logs"
)

func TestNewCLIDefaultsBinary(t *testing.T) {
	c := NewCLI("", "", 0, logs.New(0))
	assert.Equal(t, "podman", c.bin)
}

func TestQueryContextAppliesTimeout(t *testing.T) {
	c := NewCLI("podman", "", 5*time.Second, logs.New(0))

	ctx, cancel := c.queryContext(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestQueryContextZeroTimeoutHasNoDeadline(t *testing.T) {
	c := NewCLI("podman", "", 0, logs.New(0))

	ctx, cancel := c.queryContext(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
