package rebuild

import (
	"path/filepath"
	"strings"

	"podtui/internal/podman"
)

// BuildPlan 一个任务的构建方式。
// Dockerfile 非空走 podman build；否则 Makefile 为真走 make；都没有则 pull。
type BuildPlan struct {
	Dockerfile string
	Makefile   bool
	Dir        string
}

// ResolveBuildPlan 给一个重建目标找构建文件。
// Quadlet 条目优先用同目录的 Dockerfile.{单元名}，其次条目目录的 Dockerfile，
// 再次声明目录的 Dockerfile；只剩 Makefile 时走 make 流程。
func ResolveBuildPlan(spec Spec, readable func(string) bool) BuildPlan {
	if readable == nil {
		readable = podman.FileExistsAndReadable
	}
	entryDir := filepath.Dir(spec.EntryPath)

	var candidates []string
	if strings.HasSuffix(spec.EntryPath, ".container") {
		stem := strings.TrimSuffix(filepath.Base(spec.EntryPath), ".container")
		candidates = append(candidates, filepath.Join(entryDir, "Dockerfile."+stem))
	}
	candidates = append(candidates, filepath.Join(entryDir, "Dockerfile"))
	if spec.SourceDir != "" && spec.SourceDir != entryDir {
		candidates = append(candidates, filepath.Join(spec.SourceDir, "Dockerfile"))
	}

	for _, c := range candidates {
		if readable(c) {
			return BuildPlan{Dockerfile: c, Dir: filepath.Dir(c)}
		}
	}

	makeDirs := []string{entryDir}
	if spec.SourceDir != "" && spec.SourceDir != entryDir {
		makeDirs = append(makeDirs, spec.SourceDir)
	}
	for _, dir := range makeDirs {
		if readable(filepath.Join(dir, "Makefile")) {
			return BuildPlan{Makefile: true, Dir: dir}
		}
	}

	return BuildPlan{Dir: entryDir}
}
