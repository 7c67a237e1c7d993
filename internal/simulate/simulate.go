// Package simulate 确定性回放模式：不进交互界面，把选定视图的行
// 以 [dry-run] 前缀打到标准输出。运行时响应来自 JSON 夹具，
// 同样的 (目录树, 夹具, 视图) 永远产出同样的字节，黄金输出测试依赖这一点。
package simulate

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"podtui/internal/app"
	"podtui/internal/domain"
)

// ViewMode 可回放的视图。
type ViewMode string

const (
	ViewContainer  ViewMode = "container"
	ViewImage      ViewMode = "image"
	ViewFolder     ViewMode = "folder"
	ViewDockerfile ViewMode = "dockerfile"
)

// ParseViewMode 解析 --simulate 的取值，接受全名或首字母。
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "container", "c":
		return ViewContainer, nil
	case "image", "i":
		return ViewImage, nil
	case "folder", "f":
		return ViewFolder, nil
	case "dockerfile", "d":
		return ViewDockerfile, nil
	default:
		return "", fmt.Errorf("unknown simulate view %q (want container|image|folder|dockerfile)", s)
	}
}

// Run 扫描并把 mode 视图的行写到 w。
func Run(ctx context.Context, w io.Writer, core *app.Core, opts domain.ScanOptions, mode ViewMode) error {
	result, err := core.Scan(ctx, opts)
	if err != nil {
		return err
	}

	switch mode {
	case ViewContainer:
		renderContainers(ctx, w, core, result)
	case ViewImage:
		renderImages(ctx, w, core, result)
	case ViewFolder:
		renderFolders(w, result)
	case ViewDockerfile:
		renderDockerfiles(ctx, w, core, result)
	default:
		return fmt.Errorf("unknown simulate view %q", mode)
	}
	return nil
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}

func renderContainers(ctx context.Context, w io.Writer, core *app.Core, result *domain.DiscoveryResult) {
	for _, img := range result.Images {
		if img.Container == "" {
			continue
		}
		created, _ := core.Runtime().ImageCreated(ctx, img.Image)
		fmt.Fprintf(w, "[dry-run] container=%s image=%s dir=%s created=%s\n",
			img.Container, img.Image, img.SourceDir, stamp(created))
	}
}

func renderImages(ctx context.Context, w io.Writer, core *app.Core, result *domain.DiscoveryResult) {
	counts := make(map[string]int)
	var order []string
	for _, img := range result.Images {
		if counts[img.Image] == 0 {
			order = append(order, img.Image)
		}
		counts[img.Image]++
	}
	sort.Strings(order)
	for _, name := range order {
		created, _ := core.Runtime().ImageCreated(ctx, name)
		modified, _ := core.Runtime().ImageModified(ctx, name)
		fmt.Fprintf(w, "[dry-run] image=%s declarations=%d created=%s pulled=%s\n",
			name, counts[name], stamp(created), stamp(modified))
	}
}

func renderFolders(w io.Writer, result *domain.DiscoveryResult) {
	byDir := make(map[string][]string)
	for _, img := range result.Images {
		byDir[img.SourceDir] = append(byDir[img.SourceDir], img.Image)
	}
	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		images := byDir[dir]
		sort.Strings(images)
		fmt.Fprintf(w, "[dry-run] dir=%s images=%s\n", dir, strings.Join(images, ","))
	}
}

func renderDockerfiles(ctx context.Context, w io.Writer, core *app.Core, result *domain.DiscoveryResult) {
	for _, row := range core.DockerfileRows(ctx, result) {
		image := row.InferredImage
		if image == "" {
			image = "unknown"
		}
		fmt.Fprintf(w, "[dry-run] dockerfile=%s image=%s source=%s created=%s\n",
			row.Path, image, row.Source, stamp(row.Created))
	}
}
