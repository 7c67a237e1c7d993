// Package docker 提供 podman.Runtime 的 Docker Engine API 变体。
// 机器上跑的是 Docker 守护进程而不是 podman 时，时间戳查询走 SDK：
// 创建时间取镜像的 Created，拉取/构建时间取 Metadata.LastTagTime。
package docker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/api/types/image"
	sdk "github.com/docker/docker/client"

	"podtui/internal/domain"
	"podtui/internal/logs"
	"podtui/internal/podman"
)

// localhostPrefix 本地构建镜像的仓库前缀。
const localhostPrefix = "localhost/"

// Client 实现 podman.Runtime。
type Client struct {
	cli     *sdk.Client
	timeout time.Duration
	logger  *logs.Logger
}

// New 创建 Docker 客户端。host 为空时沿用环境变量（DOCKER_HOST 等），
// timeout 为 0 时单次请求不设上限。
func New(host string, timeout time.Duration, logger *logs.Logger) (*Client, error) {
	opts := []sdk.Opt{sdk.FromEnv, sdk.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, sdk.WithHost(host))
	}
	cli, err := sdk.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return &Client{cli: cli, timeout: timeout, logger: logger}, nil
}

// queryContext 给单次守护进程请求套上超时。
func (c *Client) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Close 释放守护进程连接。
func (c *Client) Close() error {
	return c.cli.Close()
}

// ImageCreated 镜像的创建时间。本地没有该镜像时返回零值。
func (c *Client) ImageCreated(ctx context.Context, img string) (time.Time, error) {
	ctx, cancel := c.queryContext(ctx)
	defer cancel()

	inspect, _, err := c.cli.ImageInspectWithRaw(ctx, img)
	if err != nil {
		if sdk.IsErrNotFound(err) {
			return time.Time{}, nil
		}
		return time.Time{}, &podman.QueryError{Op: "inspect", Image: img, Detail: err.Error()}
	}
	created, err := time.Parse(time.RFC3339Nano, inspect.Created)
	if err != nil {
		return time.Time{}, &podman.QueryError{Op: "inspect", Image: img, Detail: fmt.Sprintf("parse created %q: %v", inspect.Created, err)}
	}
	return created, nil
}

// ImageModified 镜像最后打标签的时间，近似等价于本地拉取/构建时间。
func (c *Client) ImageModified(ctx context.Context, img string) (time.Time, error) {
	ctx, cancel := c.queryContext(ctx)
	defer cancel()

	inspect, _, err := c.cli.ImageInspectWithRaw(ctx, img)
	if err != nil {
		if sdk.IsErrNotFound(err) {
			return time.Time{}, nil
		}
		return time.Time{}, &podman.QueryError{Op: "inspect", Image: img, Detail: err.Error()}
	}
	return inspect.Metadata.LastTagTime, nil
}

// ListLocalImages 列出 localhost/ 仓库的镜像摘要。
func (c *Client) ListLocalImages(ctx context.Context) ([]domain.LocalImageSummary, error) {
	ctx, cancel := c.queryContext(ctx)
	defer cancel()

	images, err := c.cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, &podman.QueryError{Op: "image ls", Detail: err.Error()}
	}

	var out []domain.LocalImageSummary
	for _, summary := range images {
		for _, repoTag := range summary.RepoTags {
			if !strings.HasPrefix(repoTag, localhostPrefix) {
				continue
			}
			repo, tag := splitRepoTag(repoTag)
			out = append(out, domain.LocalImageSummary{
				Repository: repo,
				Tag:        tag,
				Created:    time.Unix(summary.Created, 0),
			})
		}
	}
	return out, nil
}

// splitRepoTag 拆仓库与标签，端口号里的冒号不算分隔符。
func splitRepoTag(repoTag string) (string, string) {
	if i := strings.LastIndex(repoTag, ":"); i > strings.LastIndex(repoTag, "/") {
		return repoTag[:i], repoTag[i+1:]
	}
	return repoTag, "latest"
}

// FileExistsAndReadable 构建文件可读性检查与 podman 变体一致。
func (c *Client) FileExistsAndReadable(path string) bool {
	return podman.FileExistsAndReadable(path)
}
