package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"podtui/internal/rebuild"
)

// exportedMarker 导出成功后追加到任务转写里的确认行前缀。
const exportedMarker = "Exported rebuild log to"

// DefaultExportFilename 默认导出文件名 {name}-{tag}-{timestamp}.log。
// 镜像名里的路径分隔符等字符替换成连字符。
func DefaultExportFilename(image string, now time.Time) string {
	name, tag := image, "latest"
	if i := strings.LastIndex(image, ":"); i > strings.LastIndex(image, "/") {
		name, tag = image[:i], image[i+1:]
	}
	return fmt.Sprintf("%s-%s-%s.log", sanitizeFilePart(name), sanitizeFilePart(tag), now.Format("20060102-150405"))
}

func sanitizeFilePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// SanitizeExportPath 校验操作员输入的导出路径。
// 只接受相对路径，拒绝任何带 .. 的路径段。
func SanitizeExportPath(input string) (string, error) {
	path := strings.TrimSpace(input)
	if path == "" {
		return "", errors.New("export path is empty")
	}
	if filepath.IsAbs(path) {
		return "", errors.New("absolute paths are not allowed")
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == ".." {
			return "", errors.New("path traversal is not allowed")
		}
	}
	return filepath.Clean(path), nil
}

// WriteJobLog 把任务的输出快照写成日志文件，stderr 行带流标记前缀。
func WriteJobLog(job *rebuild.Job, path string) error {
	var b strings.Builder
	for _, line := range job.Output.Snapshot() {
		if line.Stream == rebuild.StreamStderr {
			b.WriteString("[stderr] ")
		}
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
