package podman

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureJSON = `[
	{"name":"pihole/pihole:latest","created":"2024-10-03T12:28:30Z","modified":"2024-10-04 09:00:00 +0000"},
	{"name":"localhost/ddns:latest","created":"2024-09-01T00:00:00Z"}
]`

func TestFixtureReplay(t *testing.T) {
	f, err := ParseFixture([]byte(fixtureJSON))
	require.NoError(t, err)
	ctx := context.Background()

	created, err := f.ImageCreated(ctx, "pihole/pihole:latest")
	require.NoError(t, err)
	assert.True(t, created.Equal(time.Date(2024, 10, 3, 12, 28, 30, 0, time.UTC)))

	modified, err := f.ImageModified(ctx, "pihole/pihole:latest")
	require.NoError(t, err)
	assert.True(t, modified.Equal(time.Date(2024, 10, 4, 9, 0, 0, 0, time.UTC)))

	// 夹具里没有的镜像给零值时间，不是错误
	missing, err := f.ImageCreated(ctx, "nope")
	require.NoError(t, err)
	assert.True(t, missing.IsZero())

	local, err := f.ListLocalImages(ctx)
	require.NoError(t, err)
	require.Len(t, local, 1)
	assert.Equal(t, "localhost/ddns", local[0].Repository)

	assert.True(t, f.FileExistsAndReadable("/anything"))
}

func TestParseFixtureBadDate(t *testing.T) {
	_, err := ParseFixture([]byte(`[{"name":"x","created":"bogus"}]`))
	assert.Error(t, err)
}
