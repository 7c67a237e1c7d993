package ui

import (
	"fmt"
	"path/filepath"
	"sort"

	"podtui/internal/app"
	"podtui/internal/domain"
	"podtui/internal/i18n"
)

// ViewMode 列表的聚合视图。
type ViewMode int

const (
	ViewByContainer ViewMode = iota
	ViewByImage
	ViewByFolder
	ViewByDockerfile
	ViewByMakefile
)

// viewModes 视图选择弹窗里的展示顺序。
var viewModes = []ViewMode{ViewByContainer, ViewByImage, ViewByFolder, ViewByDockerfile, ViewByMakefile}

func (m ViewMode) Label() string {
	t := i18n.T()
	switch m {
	case ViewByImage:
		return t.ViewImages
	case ViewByFolder:
		return t.ViewFolders
	case ViewByDockerfile:
		return t.ViewDockerfiles
	case ViewByMakefile:
		return t.ViewMakefiles
	default:
		return t.ViewContainers
	}
}

// ItemRow 列表中的一行，已经拍平成渲染与重建入队需要的全部字段。
type ItemRow struct {
	Title    string
	Subtitle string

	Image     string
	Container string
	SourceDir string
	EntryPath string

	// Rebuildable 为假的行（推断不出镜像名的 Dockerfile 等）不进重建队列
	Rebuildable bool
	// Expandable 为真的行可以展开镜像详情
	Expandable bool
}

// BuildRows 把一次扫描的产物按视图模式拍平成行。纯函数，无 IO。
func BuildRows(result *domain.DiscoveryResult, dockerfiles []domain.DockerfileInfo, makefiles []domain.MakefileInfo, mode ViewMode) []ItemRow {
	if result == nil {
		return nil
	}
	switch mode {
	case ViewByImage:
		return imageRows(result)
	case ViewByFolder:
		return folderRows(result)
	case ViewByDockerfile:
		return dockerfileRows(dockerfiles)
	case ViewByMakefile:
		return makefileRows(makefiles)
	default:
		return containerRows(result)
	}
}

// containerRows 每条声明一行，按 (容器名, 镜像名) 排序。
func containerRows(result *domain.DiscoveryResult) []ItemRow {
	rows := make([]ItemRow, 0, len(result.Images))
	for _, img := range result.Images {
		rows = append(rows, ItemRow{
			Title:       img.Container,
			Subtitle:    img.Image,
			Image:       img.Image,
			Container:   img.Container,
			SourceDir:   img.SourceDir,
			EntryPath:   img.EntryPath,
			Rebuildable: true,
			Expandable:  true,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Title != rows[j].Title {
			return rows[i].Title < rows[j].Title
		}
		return rows[i].Image < rows[j].Image
	})
	return rows
}

// imageRows 按镜像名聚合，每个镜像一行，不携带容器名。
func imageRows(result *domain.DiscoveryResult) []ItemRow {
	count := make(map[string]int)
	for _, img := range result.Images {
		count[img.Image]++
	}

	seen := make(map[string]bool)
	var rows []ItemRow
	for _, img := range result.Images {
		if seen[img.Image] {
			continue
		}
		seen[img.Image] = true
		row := ItemRow{
			Title:       img.Image,
			Subtitle:    img.SourceDir,
			Image:       img.Image,
			SourceDir:   img.SourceDir,
			EntryPath:   img.EntryPath,
			Rebuildable: true,
			Expandable:  true,
		}
		if n := count[img.Image]; n > 1 {
			row.Subtitle = fmt.Sprintf("%s (%d declarations)", img.SourceDir, n)
		}
		rows = append(rows, row)
	}
	// result.Images 已按镜像名排序，聚合后顺序天然稳定
	return rows
}

// folderRows 每个有声明或构建文件的目录一行。
func folderRows(result *domain.DiscoveryResult) []ItemRow {
	dirs := make([]string, 0, len(result.Dirs))
	for dir := range result.Dirs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	rows := make([]ItemRow, 0, len(dirs))
	for _, dir := range dirs {
		info := result.Dirs[dir]
		row := ItemRow{
			Title:     dir,
			SourceDir: dir,
			Image:     info.FirstImage,
		}
		if info.FirstImage != "" {
			row.Subtitle = info.FirstImage
			row.Rebuildable = true
			if len(info.ComposeFiles) > 0 {
				row.EntryPath = filepath.Join(dir, info.ComposeFiles[0])
			}
		} else {
			row.Subtitle = fmt.Sprintf("%d compose, %d quadlet, %d dockerfile",
				len(info.ComposeFiles), len(info.QuadletFiles), len(info.Dockerfiles))
		}
		rows = append(rows, row)
	}
	return rows
}

// dockerfileRows 每个 Dockerfile 一行，标题是路径，副标题是推断出的镜像与来源。
func dockerfileRows(dockerfiles []domain.DockerfileInfo) []ItemRow {
	rows := make([]ItemRow, 0, len(dockerfiles))
	for _, df := range dockerfiles {
		row := ItemRow{
			Title:     df.Path,
			Image:     df.InferredImage,
			SourceDir: df.SourceDir,
			EntryPath: df.Path,
		}
		if df.InferredImage != "" {
			row.Subtitle = fmt.Sprintf("%s (%s)", df.InferredImage, df.Source)
			if df.Note != "" {
				row.Subtitle += " " + df.Note
			}
			row.Subtitle += "  " + app.FormatAgo(df.Created, app.Now())
			row.Rebuildable = true
		} else {
			row.Subtitle = "image unknown"
		}
		rows = append(rows, row)
	}
	return rows
}

// makefileRows 每个 Makefile 一行。
func makefileRows(makefiles []domain.MakefileInfo) []ItemRow {
	rows := make([]ItemRow, 0, len(makefiles))
	for _, mf := range makefiles {
		row := ItemRow{
			Title:       mf.Path,
			Subtitle:    mf.Image,
			Image:       mf.Image,
			SourceDir:   mf.SourceDir,
			EntryPath:   mf.Path,
			Rebuildable: true,
		}
		if mf.Image == "" {
			row.Subtitle = "image unknown"
		}
		rows = append(rows, row)
	}
	return rows
}
