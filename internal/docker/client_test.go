package docker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryContextAppliesTimeout(t *testing.T) {
	c := &Client{timeout: 5 * time.Second}

	ctx, cancel := c.queryContext(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)

	c = &Client{}
	ctx, cancel = c.queryContext(context.Background())
	defer cancel()
	_, ok = ctx.Deadline()
	assert.False(t, ok)
}

func TestSplitRepoTag(t *testing.T) {
	repo, tag := splitRepoTag("localhost/djf/web:latest")
	assert.Equal(t, "localhost/djf/web", repo)
	assert.Equal(t, "latest", tag)

	repo, tag = splitRepoTag("localhost/djf/web")
	assert.Equal(t, "localhost/djf/web", repo)
	assert.Equal(t, "latest", tag)

	// 端口号里的冒号不是标签分隔符
	repo, tag = splitRepoTag("registry.local:5000/app")
	assert.Equal(t, "registry.local:5000/app", repo)
	assert.Equal(t, "latest", tag)
}
