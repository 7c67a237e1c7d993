package rebuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDockerfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Dockerfile")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBaseImageSimple(t *testing.T) {
	base, err := BaseImage("testdata/ddns/Dockerfile")
	require.NoError(t, err)
	assert.Equal(t, "docker.io/library/alpine:3.20", base)
}

func TestBaseImageSkipsPlatformFlag(t *testing.T) {
	path := writeDockerfile(t, "FROM --platform=linux/amd64 fedora:42\nRUN true\n")
	base, err := BaseImage(path)
	require.NoError(t, err)
	assert.Equal(t, "fedora:42", base)
}

func TestBaseImageSkipsScratchAndStageRefs(t *testing.T) {
	path := writeDockerfile(t, `FROM scratch
FROM golang:1.24 AS build
FROM build
`)
	base, err := BaseImage(path)
	require.NoError(t, err)
	assert.Equal(t, "golang:1.24", base)
}

func TestBaseImageMissingFile(t *testing.T) {
	_, err := BaseImage("testdata/missing/Dockerfile")
	assert.Error(t, err)
}

func TestBaseImageNoFrom(t *testing.T) {
	path := writeDockerfile(t, "# 只有注释\n")
	base, err := BaseImage(path)
	require.NoError(t, err)
	assert.Empty(t, base)
}
