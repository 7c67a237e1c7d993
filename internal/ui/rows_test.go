package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podtui/internal/discovery"
	"podtui/internal/domain"
	"podtui/internal/logs"
)

func fixtureResult() *domain.DiscoveryResult {
	result := &domain.DiscoveryResult{
		Images: []domain.DiscoveredImage{
			{Image: "djf/web", Container: "web", SourceDir: "fleet/app", EntryPath: "fleet/app/docker-compose.yml"},
			{Image: "djf/web", Container: "web2", SourceDir: "fleet/app2", EntryPath: "fleet/app2/docker-compose.yml"},
			{Image: "pihole/pihole:latest", Container: "pihole", SourceDir: "fleet/dns", EntryPath: "fleet/dns/golf.container"},
		},
		Dirs: map[string]*domain.DirInfo{
			"fleet/app": {
				Dir:          "fleet/app",
				ComposeFiles: []string{"docker-compose.yml"},
				FirstImage:   "djf/web",
			},
			"fleet/tools": {
				Dir:         "fleet/tools",
				Dockerfiles: []string{"Dockerfile"},
			},
		},
	}
	result.SortImages()
	return result
}

func TestBuildRowsByContainerSortsByContainerName(t *testing.T) {
	rows := BuildRows(fixtureResult(), nil, nil, ViewByContainer)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"pihole", "web", "web2"}, []string{rows[0].Title, rows[1].Title, rows[2].Title})
	assert.True(t, rows[0].Rebuildable)
	assert.True(t, rows[0].Expandable)
}

func TestBuildRowsByImageDedupsAndCounts(t *testing.T) {
	rows := BuildRows(fixtureResult(), nil, nil, ViewByImage)
	require.Len(t, rows, 2)
	assert.Equal(t, "djf/web", rows[0].Title)
	assert.Contains(t, rows[0].Subtitle, "2 declarations")
	assert.Empty(t, rows[0].Container)
}

func TestBuildRowsByFolder(t *testing.T) {
	rows := BuildRows(fixtureResult(), nil, nil, ViewByFolder)
	require.Len(t, rows, 2)

	assert.Equal(t, "fleet/app", rows[0].Title)
	assert.True(t, rows[0].Rebuildable)
	assert.Equal(t, "fleet/app/docker-compose.yml", rows[0].EntryPath)

	// 没有镜像声明的目录不可重建
	assert.Equal(t, "fleet/tools", rows[1].Title)
	assert.False(t, rows[1].Rebuildable)
}

func TestFolderRowEntryPathsExistOnDisk(t *testing.T) {
	// 目录视图的入口文件路径来自真实扫描，必须指向磁盘上存在的文件
	root := filepath.Join("..", "discovery", "testdata", "fleet")
	result, err := discovery.NewEngine(logs.New(0)).Scan(context.Background(), domain.ScanOptions{Root: root})
	require.NoError(t, err)

	rows := BuildRows(result, nil, nil, ViewByFolder)
	require.NotEmpty(t, rows)

	checked := 0
	for _, row := range rows {
		if row.EntryPath == "" {
			continue
		}
		_, err := os.Stat(row.EntryPath)
		assert.NoError(t, err, "entry path for %s", row.Title)
		checked++
	}
	assert.Greater(t, checked, 0)
}

func TestBuildRowsByDockerfile(t *testing.T) {
	dockerfiles := []domain.DockerfileInfo{
		{Path: "fleet/app/Dockerfile", SourceDir: "fleet/app", Basename: "Dockerfile",
			InferredImage: "djf/web", Source: domain.InferenceCompose, Created: time.Now()},
		{Path: "fleet/tools/Dockerfile", SourceDir: "fleet/tools", Basename: "Dockerfile"},
	}
	rows := BuildRows(fixtureResult(), dockerfiles, nil, ViewByDockerfile)
	require.Len(t, rows, 2)

	assert.Contains(t, rows[0].Subtitle, "djf/web (compose)")
	assert.True(t, rows[0].Rebuildable)
	assert.Equal(t, "image unknown", rows[1].Subtitle)
	assert.False(t, rows[1].Rebuildable)
}

func TestBuildRowsByMakefile(t *testing.T) {
	makefiles := []domain.MakefileInfo{
		{Path: "fleet/app/Makefile", SourceDir: "fleet/app", Image: "djf/web"},
	}
	rows := BuildRows(fixtureResult(), nil, makefiles, ViewByMakefile)
	require.Len(t, rows, 1)
	assert.Equal(t, "fleet/app/Makefile", rows[0].EntryPath)
	assert.True(t, rows[0].Rebuildable)
}

func TestBuildRowsNilResult(t *testing.T) {
	assert.Nil(t, BuildRows(nil, nil, nil, ViewByContainer))
}
