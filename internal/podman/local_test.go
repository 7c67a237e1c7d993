package podman

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podtui/internal/domain"
)

func TestParseImageListArray(t *testing.T) {
	data := []byte(`[
		{"Names":["localhost/ddns:latest"],"Created":1700000000},
		{"Names":["docker.io/library/alpine:3.20"],"Created":1690000000},
		{"RepoTags":["localhost/rclone:dev"],"CreatedAt":"2024-10-03 12:28:30 +0000"}
	]`)

	images, err := ParseImageList(data)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "localhost/ddns", images[0].Repository)
	assert.Equal(t, "latest", images[0].Tag)
	assert.True(t, images[0].Created.Equal(time.Unix(1700000000, 0)))
	assert.Equal(t, "localhost/rclone", images[2].Repository)
	assert.Equal(t, "dev", images[2].Tag)
}

func TestParseImageListNDJSON(t *testing.T) {
	data := []byte(`{"Names":["localhost/ddns:latest"],"Created":1700000000}
{"Names":["localhost/squid:latest"],"Created":1700000100}
`)
	images, err := ParseImageList(data)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "localhost/squid", images[1].Repository)
}

func TestParseImageListEmpty(t *testing.T) {
	images, err := ParseImageList([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestFilterLocalhost(t *testing.T) {
	images := []domain.LocalImageSummary{
		{Repository: "localhost/ddns"},
		{Repository: "docker.io/library/alpine"},
		{Repository: "localhost/rclone"},
	}
	local := FilterLocalhost(images)
	require.Len(t, local, 2)
	assert.Equal(t, "localhost/ddns", local[0].Repository)
	assert.Equal(t, "localhost/rclone", local[1].Repository)
}

func TestMatchByStemNewestWins(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	images := []domain.LocalImageSummary{
		{Repository: "localhost/ddns", Tag: "v1", Created: older},
		{Repository: "localhost/ddns", Tag: "v2", Created: newer},
		{Repository: "localhost/other", Created: newer},
	}

	hit, ok := MatchByStem(images, "ddns")
	require.True(t, ok)
	assert.Equal(t, "v2", hit.Tag)

	_, ok = MatchByStem(images, "missing")
	assert.False(t, ok)

	_, ok = MatchByStem(images, "")
	assert.False(t, ok)
}

func TestSplitRepoTag(t *testing.T) {
	repo, tag := splitRepoTag("localhost/ddns:latest")
	assert.Equal(t, "localhost/ddns", repo)
	assert.Equal(t, "latest", tag)

	repo, tag = splitRepoTag("registry.example.com:5000/app")
	assert.Equal(t, "registry.example.com:5000/app", repo)
	assert.Equal(t, "latest", tag)
}
