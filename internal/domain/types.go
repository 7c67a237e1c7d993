// Package domain 定义扫描与重建流程共享的纯业务类型。
// 这些类型不依赖任何框架，供 discovery、app、ui 各层复用。
package domain

import (
	"sort"
	"time"
)

// DiscoveredImage 表示在目录树中发现的一条镜像声明。
// 同一次扫描内按 (Image, Container, SourceDir) 三元组去重。
type DiscoveredImage struct {
	Image     string // 镜像名，必填
	Container string // 容器名，可为空（按镜像聚合的视图不携带）
	SourceDir string // 声明所在目录
	EntryPath string // 声明文件本身的路径
}

// Key 返回去重用的三元组指纹。
func (d DiscoveredImage) Key() DedupKey {
	return DedupKey{Image: d.Image, Container: d.Container, SourceDir: d.SourceDir}
}

// DedupKey 是一次扫描内判定重复声明的键。
type DedupKey struct {
	Image     string
	Container string
	SourceDir string
}

// DirInfo 按父目录聚合的构建元信息。
type DirInfo struct {
	Dir          string
	ComposeFiles []string // 目录下的 compose 文件名，不带目录前缀
	QuadletFiles []string // 目录下的 *.container 文件名，不带目录前缀
	Dockerfiles  []string // 目录下以 Dockerfile 开头的文件名
	HasMakefile  bool
	FirstImage   string // 该目录第一条 compose 镜像，用于构建目标消歧
}

// DiscoveryResult 一次扫描的完整产物，整体替换上一次的缓存，不做增量合并。
type DiscoveryResult struct {
	Images []DiscoveredImage
	Dirs   map[string]*DirInfo
}

// SortImages 按 (Image, Container) 字典序排序，保证渲染与测试的确定性。
func (r *DiscoveryResult) SortImages() {
	sort.Slice(r.Images, func(i, j int) bool {
		if r.Images[i].Image != r.Images[j].Image {
			return r.Images[i].Image < r.Images[j].Image
		}
		return r.Images[i].Container < r.Images[j].Container
	})
}

// ScanOptions 扫描入参：根目录加 include/exclude 正则。
type ScanOptions struct {
	Root            string
	IncludePatterns []string
	ExcludePatterns []string
}

// InferenceSource 标记 Dockerfile 视图中镜像名的推断来源。
type InferenceSource int

const (
	InferenceUnknown InferenceSource = iota
	InferenceQuadlet
	InferenceCompose
	InferenceLocalhostRegistry
)

func (s InferenceSource) String() string {
	switch s {
	case InferenceQuadlet:
		return "quadlet"
	case InferenceCompose:
		return "compose"
	case InferenceLocalhostRegistry:
		return "localhost registry"
	default:
		return "unknown"
	}
}

// DockerfileInfo Dockerfile 视图中的一行。
type DockerfileInfo struct {
	Path          string
	SourceDir     string
	Basename      string
	InferredImage string // 为空表示推断失败
	Source        InferenceSource
	Created       time.Time // 零值表示本地没有对应镜像
	Note          string
}

// MakefileInfo Makefile 视图中的一行。
type MakefileInfo struct {
	Path      string
	SourceDir string
	Image     string // 同目录声明推断出的镜像，可为空
}

// LocalImageSummary podman image ls 输出中 localhost/ 仓库的一条摘要。
type LocalImageSummary struct {
	Repository string
	Tag        string
	Created    time.Time
}

// ImageDetails 展开行展示的镜像详情。时间字段已格式化为 "N days ago" 形式。
type ImageDetails struct {
	CreatedAgo     string
	PulledAgo      string
	DockerfileName string // 为空表示没有找到 Dockerfile
	HasMakefile    bool
}
