package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podtui/internal/rebuild"
)

func TestDefaultExportFilename(t *testing.T) {
	at := time.Date(2026, 8, 23, 14, 30, 5, 0, time.UTC)

	assert.Equal(t, "djf-web-latest-20260823-143005.log",
		DefaultExportFilename("djf/web", at))
	assert.Equal(t, "pihole-pihole-2024.07.0-20260823-143005.log",
		DefaultExportFilename("pihole/pihole:2024.07.0", at))
	// 端口里的冒号不是标签分隔符
	assert.Equal(t, "registry.local-5000-app-latest-20260823-143005.log",
		DefaultExportFilename("registry.local:5000/app", at))
}

func TestSanitizeExportPath(t *testing.T) {
	path, err := SanitizeExportPath("  logs/build.log ")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("logs", "build.log"), path)

	_, err = SanitizeExportPath("")
	assert.Error(t, err)
	_, err = SanitizeExportPath("/etc/passwd")
	assert.Error(t, err)
	_, err = SanitizeExportPath("../escape.log")
	assert.Error(t, err)
	_, err = SanitizeExportPath("logs/../../escape.log")
	assert.Error(t, err)
}

func TestWriteJobLogTagsStderr(t *testing.T) {
	job := rebuild.NewJob(rebuild.Spec{Image: "djf/web"}, 10)
	job.Output.Append(rebuild.StreamStdout, "STEP 1/2: FROM alpine")
	job.Output.Append(rebuild.StreamStderr, "warning: cache disabled")

	path := filepath.Join(t.TempDir(), "out.log")
	require.NoError(t, WriteJobLog(job, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "STEP 1/2: FROM alpine\n[stderr] warning: cache disabled\n", string(data))
}
