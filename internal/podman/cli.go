package podman

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"podtui/internal/domain"
	"podtui/internal/logs"
)

// notKnownMarker podman 对不存在镜像的报错片段。
const notKnownMarker = "image not known"

// CLI 调用 podman 可执行文件的 Runtime 实现。
type CLI struct {
	bin         string
	storageRoot string // 本地镜像存储根目录，manifest 修改时间从这里 stat
	timeout     time.Duration
	logger      *logs.Logger
}

// NewCLI 创建 podman CLI 运行时端口。timeout 为 0 时查询不设上限。
func NewCLI(bin, storageRoot string, timeout time.Duration, logger *logs.Logger) *CLI {
	if bin == "" {
		bin = "podman"
	}
	return &CLI{bin: bin, storageRoot: storageRoot, timeout: timeout, logger: logger}
}

var _ Runtime = (*CLI)(nil)

// queryContext 给单次查询套上超时，防止卡死的 podman 拖住界面刷新。
func (c *CLI) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// run 执行一条 podman 子命令，返回 stdout 与 stderr。
func (c *CLI) run(ctx context.Context, args ...string) (string, string, error) {
	ctx, cancel := c.queryContext(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// ImageCreated podman image inspect --format {{.Created}}。
// "image not known" 归一成零值时间：镜像还只存在于声明里是正常状态。
func (c *CLI) ImageCreated(ctx context.Context, image string) (time.Time, error) {
	out, errOut, err := c.run(ctx, "image", "inspect", "--format", "{{.Created}}", image)
	if err != nil {
		if strings.Contains(errOut, notKnownMarker) {
			return time.Time{}, nil
		}
		return time.Time{}, &QueryError{Op: "image inspect", Image: image, Detail: strings.TrimSpace(errOut)}
	}
	return ParseRuntimeTime(out)
}

// ImageModified 先解析镜像 id，再 stat 本地存储里该 id 的 manifest 文件。
func (c *CLI) ImageModified(ctx context.Context, image string) (time.Time, error) {
	out, errOut, err := c.run(ctx, "image", "inspect", "--format", "{{.Id}}", image)
	if err != nil {
		if strings.Contains(errOut, notKnownMarker) {
			return time.Time{}, nil
		}
		return time.Time{}, &QueryError{Op: "image inspect", Image: image, Detail: strings.TrimSpace(errOut)}
	}

	id := strings.TrimSpace(out)
	manifest := filepath.Join(c.storageRoot, "overlay-images", id, "manifest")
	fi, err := os.Stat(manifest)
	if err != nil {
		return time.Time{}, &QueryError{Op: "stat manifest", Image: image, Detail: err.Error()}
	}
	return fi.ModTime(), nil
}

// ListLocalImages podman image ls --format json，过滤出 localhost/ 仓库。
func (c *CLI) ListLocalImages(ctx context.Context) ([]domain.LocalImageSummary, error) {
	out, errOut, err := c.run(ctx, "image", "ls", "--format", "json")
	if err != nil {
		return nil, &QueryError{Op: "image ls", Detail: strings.TrimSpace(errOut)}
	}
	all, err := ParseImageList([]byte(out))
	if err != nil {
		return nil, &QueryError{Op: "image ls", Detail: err.Error()}
	}
	return FilterLocalhost(all), nil
}

// FileExistsAndReadable 实现 Runtime。
func (c *CLI) FileExistsAndReadable(path string) bool {
	return FileExistsAndReadable(path)
}
