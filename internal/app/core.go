// Package app 是界面与发现/运行时端口之间的应用服务层。
// 扫描的编排、镜像详情的组装、Dockerfile 视图的镜像名推断都在这里，
// 界面层只消费现成的数据。
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"podtui/internal/discovery"
	"podtui/internal/domain"
	"podtui/internal/logs"
	"podtui/internal/podman"
)

// detailsCacheSize 镜像详情查询缓存的条目数。
// 详情要两次运行时查询，展开/折叠行时不该反复付这个代价。
const detailsCacheSize = 256

// Core 应用服务层。
type Core struct {
	engine  discovery.Engine
	runtime podman.Runtime
	logger  *logs.Logger

	details *lru.Cache[string, domain.ImageDetails]

	localMu     sync.Mutex
	local       []domain.LocalImageSummary
	localLoaded bool
}

// New 创建应用核心。
func New(engine discovery.Engine, runtime podman.Runtime, logger *logs.Logger) (*Core, error) {
	cache, err := lru.New[string, domain.ImageDetails](detailsCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create details cache: %w", err)
	}
	return &Core{engine: engine, runtime: runtime, logger: logger, details: cache}, nil
}

// Runtime 暴露运行时端口，一次性模式的 display 分支直接查时间用。
func (c *Core) Runtime() podman.Runtime {
	return c.runtime
}

// Scan 执行一次目录扫描。每次扫描的结果整体替换旧缓存。
func (c *Core) Scan(ctx context.Context, opts domain.ScanOptions) (*domain.DiscoveryResult, error) {
	result, err := c.engine.Scan(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.details.Purge()
	c.localMu.Lock()
	c.localLoaded = false
	c.local = nil
	c.localMu.Unlock()
	return result, nil
}

// LocalImages 返回 localhost/ 仓库的本地镜像，一次扫描周期内只查一回。
func (c *Core) LocalImages(ctx context.Context) []domain.LocalImageSummary {
	c.localMu.Lock()
	defer c.localMu.Unlock()
	if !c.localLoaded {
		images, err := c.runtime.ListLocalImages(ctx)
		if err != nil {
			c.logger.Info("list local images: %v", err)
		}
		c.local = images
		c.localLoaded = true
	}
	return c.local
}

// ImageDetails 组装一条镜像的展开详情。查询失败不阻塞渲染，时间列显示 never。
func (c *Core) ImageDetails(ctx context.Context, img domain.DiscoveredImage, dirs map[string]*domain.DirInfo) domain.ImageDetails {
	key := img.Image + "\x00" + img.Container + "\x00" + img.SourceDir
	if cached, ok := c.details.Get(key); ok {
		return cached
	}

	created, err := c.runtime.ImageCreated(ctx, img.Image)
	if err != nil {
		c.logger.Info("image created query for %s: %v", img.Image, err)
	}
	modified, err := c.runtime.ImageModified(ctx, img.Image)
	if err != nil {
		c.logger.Info("image modified query for %s: %v", img.Image, err)
	}

	d := domain.ImageDetails{
		CreatedAgo: FormatAgo(created, Now()),
		PulledAgo:  FormatAgo(modified, Now()),
	}
	if info := dirs[img.SourceDir]; info != nil {
		d.DockerfileName = c.pickDockerfile(img, info)
		d.HasMakefile = info.HasMakefile
	}

	c.details.Add(key, d)
	return d
}

// pickDockerfile 挑展开详情里展示的构建文件：Quadlet 条目优先同名 Dockerfile。
func (c *Core) pickDockerfile(img domain.DiscoveredImage, info *domain.DirInfo) string {
	var preferred []string
	if strings.HasSuffix(img.EntryPath, ".container") {
		stem := strings.TrimSuffix(filepath.Base(img.EntryPath), ".container")
		preferred = append(preferred, "Dockerfile."+stem)
	}
	preferred = append(preferred, "Dockerfile")

	for _, name := range preferred {
		for _, have := range info.Dockerfiles {
			if have == name && c.runtime.FileExistsAndReadable(filepath.Join(info.Dir, name)) {
				return name
			}
		}
	}
	if len(info.Dockerfiles) > 0 {
		return info.Dockerfiles[0]
	}
	return ""
}

// DockerfileRows 组 Dockerfile 视图的行：每个 Dockerfile 一行，带推断的镜像名。
// 推断顺序：同目录 Quadlet 声明、同目录 compose 首镜像、localhost 仓库后缀匹配。
func (c *Core) DockerfileRows(ctx context.Context, result *domain.DiscoveryResult) []domain.DockerfileInfo {
	if result == nil {
		return nil
	}

	dirs := make([]string, 0, len(result.Dirs))
	for dir := range result.Dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	var rows []domain.DockerfileInfo
	for _, dir := range dirs {
		info := result.Dirs[dir]
		names := append([]string(nil), info.Dockerfiles...)
		sort.Strings(names)
		for _, name := range names {
			row := domain.DockerfileInfo{
				Path:      filepath.Join(dir, name),
				SourceDir: dir,
				Basename:  name,
			}
			c.inferImage(ctx, &row, info, result)
			if row.InferredImage != "" {
				created, err := c.runtime.ImageCreated(ctx, row.InferredImage)
				if err != nil {
					c.logger.Info("image created query for %s: %v", row.InferredImage, err)
				}
				row.Created = created
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func (c *Core) inferImage(ctx context.Context, row *domain.DockerfileInfo, info *domain.DirInfo, result *domain.DiscoveryResult) {
	stem := dockerfileStem(row.Basename, row.SourceDir)

	// 同目录的 Quadlet 声明：Dockerfile.web 对 web.container
	for _, img := range result.Images {
		if img.SourceDir != row.SourceDir || !strings.HasSuffix(img.EntryPath, ".container") {
			continue
		}
		unitStem := strings.TrimSuffix(filepath.Base(img.EntryPath), ".container")
		if row.Basename == "Dockerfile."+unitStem || (row.Basename == "Dockerfile" && len(info.QuadletFiles) == 1) {
			row.InferredImage = img.Image
			row.Source = domain.InferenceQuadlet
			return
		}
	}

	if info.FirstImage != "" {
		row.InferredImage = info.FirstImage
		row.Source = domain.InferenceCompose
		return
	}

	if hit, ok := podman.MatchByStem(c.LocalImages(ctx), stem); ok {
		row.InferredImage = hit.Repository + ":" + hit.Tag
		row.Source = domain.InferenceLocalhostRegistry
		row.Note = "matched by name suffix"
		return
	}

	row.Source = domain.InferenceUnknown
}

// dockerfileStem Dockerfile.foo 的主干是 foo，裸 Dockerfile 用目录名。
func dockerfileStem(basename, dir string) string {
	if rest, ok := strings.CutPrefix(basename, "Dockerfile."); ok {
		return rest
	}
	return filepath.Base(dir)
}

// MakefileRows 组 Makefile 视图的行。
func (c *Core) MakefileRows(result *domain.DiscoveryResult) []domain.MakefileInfo {
	if result == nil {
		return nil
	}

	dirs := make([]string, 0, len(result.Dirs))
	for dir, info := range result.Dirs {
		if info.HasMakefile {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)

	rows := make([]domain.MakefileInfo, 0, len(dirs))
	for _, dir := range dirs {
		row := domain.MakefileInfo{Path: filepath.Join(dir, "Makefile"), SourceDir: dir}
		if info := result.Dirs[dir]; info.FirstImage != "" {
			row.Image = info.FirstImage
		} else {
			for _, img := range result.Images {
				if img.SourceDir == dir {
					row.Image = img.Image
					break
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}
