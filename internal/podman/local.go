package podman

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"podtui/internal/domain"
)

// imageListEntry podman image ls --format json 的一条记录。
// 新版 podman 输出 JSON 数组，旧版逐行输出对象（NDJSON），两种都收。
type imageListEntry struct {
	Names     []string `json:"Names"`
	RepoTags  []string `json:"RepoTags"`
	Created   int64    `json:"Created"`   // unix 秒
	CreatedAt string   `json:"CreatedAt"` // 部分版本给字符串
}

// ParseImageList 解析 image ls 的 JSON 输出（数组或 NDJSON）。
func ParseImageList(data []byte) ([]domain.LocalImageSummary, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var entries []imageListEntry
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("parse image list: %w", err)
		}
	} else {
		sc := bufio.NewScanner(bytes.NewReader(trimmed))
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			var e imageListEntry
			if err := json.Unmarshal(line, &e); err != nil {
				return nil, fmt.Errorf("parse image list line: %w", err)
			}
			entries = append(entries, e)
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("parse image list: %w", err)
		}
	}

	var out []domain.LocalImageSummary
	for _, e := range entries {
		names := e.Names
		if len(names) == 0 {
			names = e.RepoTags
		}
		created := entryCreated(e)
		for _, name := range names {
			repo, tag := splitRepoTag(name)
			out = append(out, domain.LocalImageSummary{Repository: repo, Tag: tag, Created: created})
		}
	}
	return out, nil
}

func entryCreated(e imageListEntry) time.Time {
	if e.Created > 0 {
		return time.Unix(e.Created, 0)
	}
	if e.CreatedAt != "" {
		if t, err := ParseRuntimeTime(e.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// splitRepoTag 拆出仓库名与 tag。没有 tag 的按 latest 处理。
func splitRepoTag(ref string) (string, string) {
	idx := strings.LastIndex(ref, ":")
	// 冒号后还有 '/' 说明那是端口号而不是 tag 分隔符
	if idx < 0 || strings.Contains(ref[idx+1:], "/") {
		return ref, "latest"
	}
	return ref[:idx], ref[idx+1:]
}

// FilterLocalhost 只留 localhost/ 仓库下本地构建出来的镜像。
func FilterLocalhost(images []domain.LocalImageSummary) []domain.LocalImageSummary {
	var out []domain.LocalImageSummary
	for _, img := range images {
		if strings.HasPrefix(img.Repository, "localhost/") {
			out = append(out, img)
		}
	}
	return out
}

// MatchByStem 在 localhost 镜像里按名字后缀匹配一个 Dockerfile 主干名。
// 命中多个时取创建时间最新的那个。
func MatchByStem(images []domain.LocalImageSummary, stem string) (domain.LocalImageSummary, bool) {
	if stem == "" {
		return domain.LocalImageSummary{}, false
	}
	var hits []domain.LocalImageSummary
	for _, img := range images {
		if img.Repository == stem || strings.HasSuffix(img.Repository, "/"+stem) {
			hits = append(hits, img)
		}
	}
	if len(hits) == 0 {
		return domain.LocalImageSummary{}, false
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Created.After(hits[j].Created) })
	return hits[0], true
}
