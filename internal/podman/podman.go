// Package podman 定义容器运行时能力端口及其 podman CLI 实现。
// 发现与应用层只通过 Runtime 接口访问运行时，生产实现与测试/仿真实现可互换。
package podman

import (
	"context"
	"fmt"
	"os"
	"time"

	"podtui/internal/domain"
)

// Runtime 容器运行时能力端口。
// 两个时间查询加一个可读性检查，外加本地镜像列表（Dockerfile 视图的推断来源之一）。
type Runtime interface {
	// ImageCreated 返回镜像在上游的创建时间。
	// 镜像不存在不算错误，返回零值时间（尚未见过该镜像）。
	ImageCreated(ctx context.Context, image string) (time.Time, error)

	// ImageModified 返回镜像本地 manifest 的修改时间，语义同上。
	ImageModified(ctx context.Context, image string) (time.Time, error)

	// ListLocalImages 列出本地 localhost/ 仓库下的镜像摘要。
	ListLocalImages(ctx context.Context) ([]domain.LocalImageSummary, error)

	// FileExistsAndReadable 判断 path 是普通文件且元数据可读，跟随符号链接。
	FileExistsAndReadable(path string) bool
}

// QueryError 运行时查询失败（镜像不存在除外，那是正常状态）。
type QueryError struct {
	Op     string // 操作名，如 "image inspect"
	Image  string
	Detail string
}

func (e *QueryError) Error() string {
	if e.Image != "" {
		return fmt.Sprintf("podman %s %s: %s", e.Op, e.Image, e.Detail)
	}
	return fmt.Sprintf("podman %s: %s", e.Op, e.Detail)
}

// FileExistsAndReadable os.Stat 跟随符号链接；能取到元数据且是普通文件即认为可读。
func FileExistsAndReadable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
