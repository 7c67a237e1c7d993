package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podtui/internal/domain"
	"podtui/internal/logs"
)

// fakeRuntime 计数的测试运行时。
type fakeRuntime struct {
	created   map[string]time.Time
	modified  map[string]time.Time
	local     []domain.LocalImageSummary
	createdQs int
	listQs    int
}

func (f *fakeRuntime) ImageCreated(_ context.Context, image string) (time.Time, error) {
	f.createdQs++
	return f.created[image], nil
}

func (f *fakeRuntime) ImageModified(_ context.Context, image string) (time.Time, error) {
	return f.modified[image], nil
}

func (f *fakeRuntime) ListLocalImages(context.Context) ([]domain.LocalImageSummary, error) {
	f.listQs++
	return f.local, nil
}

func (f *fakeRuntime) FileExistsAndReadable(string) bool { return true }

// fakeEngine 返回固定结果的扫描器。
type fakeEngine struct {
	result *domain.DiscoveryResult
}

func (f *fakeEngine) Scan(context.Context, domain.ScanOptions) (*domain.DiscoveryResult, error) {
	return f.result, nil
}

func newCore(t *testing.T, rt *fakeRuntime) *Core {
	t.Helper()
	core, err := New(&fakeEngine{result: &domain.DiscoveryResult{}}, rt, logs.New(0))
	require.NoError(t, err)
	return core
}

func TestImageDetailsCached(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	Now = func() time.Time { return now }
	defer func() { Now = time.Now }()

	rt := &fakeRuntime{
		created:  map[string]time.Time{"djf/squid": now.Add(-48 * time.Hour)},
		modified: map[string]time.Time{"djf/squid": now.Add(-2 * time.Hour)},
	}
	core := newCore(t, rt)

	img := domain.DiscoveredImage{Image: "djf/squid", Container: "squid", SourceDir: "/srv/squid", EntryPath: "/srv/squid/squid.container"}
	dirs := map[string]*domain.DirInfo{
		"/srv/squid": {Dir: "/srv/squid", Dockerfiles: []string{"Dockerfile", "Dockerfile.squid"}, HasMakefile: true},
	}

	d := core.ImageDetails(context.Background(), img, dirs)
	assert.Equal(t, "2 days ago", d.CreatedAgo)
	assert.Equal(t, "2 hours ago", d.PulledAgo)
	assert.Equal(t, "Dockerfile.squid", d.DockerfileName)
	assert.True(t, d.HasMakefile)

	// 第二次走缓存，不再查运行时
	queries := rt.createdQs
	_ = core.ImageDetails(context.Background(), img, dirs)
	assert.Equal(t, queries, rt.createdQs)
}

func TestImageDetailsNeverSeen(t *testing.T) {
	core := newCore(t, &fakeRuntime{})
	img := domain.DiscoveredImage{Image: "ghost", SourceDir: "/srv/x", EntryPath: "/srv/x/docker-compose.yml"}
	d := core.ImageDetails(context.Background(), img, nil)
	assert.Equal(t, "never", d.CreatedAgo)
	assert.Equal(t, "never", d.PulledAgo)
	assert.Empty(t, d.DockerfileName)
}

func TestLocalImagesQueriedOnce(t *testing.T) {
	rt := &fakeRuntime{local: []domain.LocalImageSummary{{Repository: "localhost/ddns"}}}
	core := newCore(t, rt)

	ctx := context.Background()
	core.LocalImages(ctx)
	core.LocalImages(ctx)
	assert.Equal(t, 1, rt.listQs)

	// 扫描后缓存失效
	_, err := core.Scan(ctx, domain.ScanOptions{Root: "."})
	require.NoError(t, err)
	core.LocalImages(ctx)
	assert.Equal(t, 2, rt.listQs)
}

func TestDockerfileRowsInference(t *testing.T) {
	rt := &fakeRuntime{
		local: []domain.LocalImageSummary{
			{Repository: "localhost/orphan", Tag: "latest", Created: time.Unix(1700000000, 0)},
		},
	}
	core := newCore(t, rt)

	result := &domain.DiscoveryResult{
		Images: []domain.DiscoveredImage{
			{Image: "djf/web", Container: "web", SourceDir: "/srv/quad", EntryPath: "/srv/quad/web.container"},
		},
		Dirs: map[string]*domain.DirInfo{
			"/srv/quad":    {Dir: "/srv/quad", Dockerfiles: []string{"Dockerfile.web"}, QuadletFiles: []string{"web.container"}},
			"/srv/compose": {Dir: "/srv/compose", Dockerfiles: []string{"Dockerfile"}, FirstImage: "djf/squid"},
			"/srv/orphan":  {Dir: "/srv/orphan", Dockerfiles: []string{"Dockerfile"}},
			"/srv/nohit":   {Dir: "/srv/nohit", Dockerfiles: []string{"Dockerfile.zzz"}},
		},
	}

	rows := core.DockerfileRows(context.Background(), result)
	require.Len(t, rows, 4)

	byPath := map[string]domain.DockerfileInfo{}
	for _, r := range rows {
		byPath[r.Path] = r
	}

	quad := byPath["/srv/quad/Dockerfile.web"]
	assert.Equal(t, domain.InferenceQuadlet, quad.Source)
	assert.Equal(t, "djf/web", quad.InferredImage)

	comp := byPath["/srv/compose/Dockerfile"]
	assert.Equal(t, domain.InferenceCompose, comp.Source)
	assert.Equal(t, "djf/squid", comp.InferredImage)

	orphan := byPath["/srv/orphan/Dockerfile"]
	assert.Equal(t, domain.InferenceLocalhostRegistry, orphan.Source)
	assert.Equal(t, "localhost/orphan:latest", orphan.InferredImage)

	nohit := byPath["/srv/nohit/Dockerfile.zzz"]
	assert.Equal(t, domain.InferenceUnknown, nohit.Source)
	assert.Empty(t, nohit.InferredImage)
}

func TestMakefileRows(t *testing.T) {
	core := newCore(t, &fakeRuntime{})
	result := &domain.DiscoveryResult{
		Images: []domain.DiscoveredImage{
			{Image: "djf/quad", SourceDir: "/srv/b", EntryPath: "/srv/b/x.container"},
		},
		Dirs: map[string]*domain.DirInfo{
			"/srv/a": {Dir: "/srv/a", HasMakefile: true, FirstImage: "djf/squid"},
			"/srv/b": {Dir: "/srv/b", HasMakefile: true},
			"/srv/c": {Dir: "/srv/c"},
		},
	}

	rows := core.MakefileRows(result)
	require.Len(t, rows, 2)
	assert.Equal(t, "/srv/a/Makefile", rows[0].Path)
	assert.Equal(t, "djf/squid", rows[0].Image)
	assert.Equal(t, "djf/quad", rows[1].Image)
}
