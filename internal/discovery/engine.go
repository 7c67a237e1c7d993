// Package discovery 实现目录树扫描：从 compose、Quadlet、Dockerfile、Makefile
// 声明中提取统一的镜像/容器索引。
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"podtui/internal/domain"
	"podtui/internal/logs"
	"podtui/internal/quadlet"
)

// Engine 扫描器接口。production 与测试实现共用同一抽象。
type Engine interface {
	// Scan 走一遍目录树并返回完整索引。正则编译失败时整个调用失败；
	// 单个文件解析失败只跳过该文件。
	Scan(ctx context.Context, opts domain.ScanOptions) (*domain.DiscoveryResult, error)
}

// engine 基于本地文件系统的实现。
type engine struct {
	logger *logs.Logger
}

// NewEngine 创建文件系统扫描器。
func NewEngine(logger *logs.Logger) Engine {
	return &engine{logger: logger}
}

// composeFilePatterns compose 文件名模式。
var composeFilePatterns = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

func isComposeFile(name string) bool {
	for _, p := range composeFilePatterns {
		if name == p {
			return true
		}
	}
	return false
}

func isQuadletFile(name string) bool {
	return strings.HasSuffix(name, ".container")
}

func isDockerfile(name string) bool {
	return strings.HasPrefix(name, "Dockerfile")
}

// pathFilter 预编译的 include/exclude 正则。
type pathFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

func compileFilter(opts domain.ScanOptions) (*pathFilter, error) {
	f := &pathFilter{}
	for _, p := range opts.ExcludePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", p, err)
		}
		f.exclude = append(f.exclude, re)
	}
	for _, p := range opts.IncludePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile include pattern %q: %w", p, err)
		}
		f.include = append(f.include, re)
	}
	return f, nil
}

// keep 判断路径是否进入后续解析。exclude 优先；include 非空时至少要命中一条。
func (f *pathFilter) keep(path string) bool {
	for _, re := range f.exclude {
		if re.MatchString(path) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, re := range f.include {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Scan 实现 Engine。
func (e *engine) Scan(ctx context.Context, opts domain.ScanOptions) (*domain.DiscoveryResult, error) {
	filter, err := compileFilter(opts)
	if err != nil {
		return nil, err
	}

	result := &domain.DiscoveryResult{Dirs: make(map[string]*domain.DirInfo)}
	seen := make(map[domain.DedupKey]struct{})

	walkErr := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 单个目录不可读不终止扫描
			e.logger.Debug("skipping unreadable entry %s: %v", path, err)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !filter.keep(path) {
			e.logger.Debug("path filtered out: %s", path)
			return nil
		}

		name := d.Name()
		switch {
		case isComposeFile(name):
			e.collectFromCompose(path, result, seen)
		case isQuadletFile(name):
			e.collectFromQuadlet(path, result, seen)
		case name == "Makefile":
			dirInfoFor(result, filepath.Dir(path)).HasMakefile = true
		case isDockerfile(name):
			info := dirInfoFor(result, filepath.Dir(path))
			info.Dockerfiles = append(info.Dockerfiles, name)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	result.SortImages()
	return result, nil
}

func dirInfoFor(result *domain.DiscoveryResult, dir string) *domain.DirInfo {
	if info, ok := result.Dirs[dir]; ok {
		return info
	}
	info := &domain.DirInfo{Dir: dir}
	result.Dirs[dir] = info
	return info
}

func addImage(result *domain.DiscoveryResult, seen map[domain.DedupKey]struct{}, img domain.DiscoveredImage) {
	if _, dup := seen[img.Key()]; dup {
		return
	}
	seen[img.Key()] = struct{}{}
	result.Images = append(result.Images, img)
}

// collectFromCompose 提取 services 中同时带 image 与 container_name 的条目，
// 并把 compose 文件与首个镜像记到所在目录。
func (e *engine) collectFromCompose(path string, result *domain.DiscoveryResult, seen map[domain.DedupKey]struct{}) {
	data, err := os.ReadFile(path)
	if err != nil {
		e.logger.Info("unable to read %s: %v", path, err)
		return
	}

	services, err := parseComposeServices(data)
	if err != nil {
		e.logger.Info("unable to parse %s: %v", path, err)
		return
	}

	dir := filepath.Dir(path)
	info := dirInfoFor(result, dir)
	info.ComposeFiles = append(info.ComposeFiles, filepath.Base(path))

	for _, svc := range services {
		if svc.Image != "" && info.FirstImage == "" {
			info.FirstImage = svc.Image
		}
		if svc.Image == "" || svc.ContainerName == "" {
			continue
		}
		addImage(result, seen, domain.DiscoveredImage{
			Image:     svc.Image,
			Container: svc.ContainerName,
			SourceDir: dir,
			EntryPath: path,
		})
	}
}

// collectFromQuadlet 解析 .container 单元。结构化错误跳过并记诊断。
func (e *engine) collectFromQuadlet(path string, result *domain.DiscoveryResult, seen map[domain.DedupKey]struct{}) {
	unit, err := quadlet.Parse(path)
	if err != nil {
		e.logger.Info("skipping quadlet file: %v", err)
		return
	}

	dir := filepath.Dir(path)
	info := dirInfoFor(result, dir)
	info.QuadletFiles = append(info.QuadletFiles, filepath.Base(path))

	addImage(result, seen, domain.DiscoveredImage{
		Image:     unit.Image,
		Container: unit.ResolveName(),
		SourceDir: dir,
		EntryPath: path,
	})
}
