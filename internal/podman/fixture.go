package podman

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"podtui/internal/domain"
)

// FixtureRecord 仿真夹具里的一条镜像检视记录。
type FixtureRecord struct {
	Name     string `json:"name"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

// Fixture 从 JSON 夹具回放 podman 响应的 Runtime 实现。
// 用于 --simulate 模式与黄金输出测试：同一份夹具永远给出同样的答案。
type Fixture struct {
	created  map[string]time.Time
	modified map[string]time.Time
	names    []string // 保持夹具内的出现顺序
}

var _ Runtime = (*Fixture)(nil)

// LoadFixture 读取镜像检视记录数组。
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture 从内存解析夹具。
func ParseFixture(data []byte) (*Fixture, error) {
	var records []FixtureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	f := &Fixture{
		created:  make(map[string]time.Time, len(records)),
		modified: make(map[string]time.Time, len(records)),
	}
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		f.names = append(f.names, rec.Name)
		if rec.Created != "" {
			t, err := ParseRuntimeTime(rec.Created)
			if err != nil {
				return nil, fmt.Errorf("fixture %s created: %w", rec.Name, err)
			}
			f.created[rec.Name] = t
		}
		if rec.Modified != "" {
			t, err := ParseRuntimeTime(rec.Modified)
			if err != nil {
				return nil, fmt.Errorf("fixture %s modified: %w", rec.Name, err)
			}
			f.modified[rec.Name] = t
		}
	}
	return f, nil
}

// ImageCreated 夹具里没有的镜像返回零值时间，跟真实端口的"未见过"语义一致。
func (f *Fixture) ImageCreated(_ context.Context, image string) (time.Time, error) {
	return f.created[image], nil
}

// ImageModified 同上。
func (f *Fixture) ImageModified(_ context.Context, image string) (time.Time, error) {
	return f.modified[image], nil
}

// ListLocalImages 夹具里 localhost/ 开头的记录视为本地镜像。
func (f *Fixture) ListLocalImages(_ context.Context) ([]domain.LocalImageSummary, error) {
	var out []domain.LocalImageSummary
	for _, name := range f.names {
		if !strings.HasPrefix(name, "localhost/") {
			continue
		}
		repo, tag := splitRepoTag(name)
		out = append(out, domain.LocalImageSummary{Repository: repo, Tag: tag, Created: f.created[name]})
	}
	return out, nil
}

// FileExistsAndReadable 仿真模式不看真实文件系统，一律可读，保证输出确定。
func (f *Fixture) FileExistsAndReadable(string) bool {
	return true
}
