package podman

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// podman 与 stat 返回的日期串并不统一，常见形态：
//
//	2024-10-03 12:28:30.701255218 +0100 +0100   (podman inspect {{.Created}})
//	2024-10-03 12:28:30.701255218 +0100         (stat -c %y)
//	2024-10-03T12:28:30.701255218Z              (RFC3339，仿真夹具)
//
// 统一在这里解析，各处不再各写各的。
// 偏移为必选的正则先试：datetime 字符类里含 '-'，偏移写成可选的话
// 负偏移会被日期部分贪婪吞掉。
var (
	timeWithOffsetRe = regexp.MustCompile(`(?P<datetime>[0-9][0-9:\-\.\sT]*[0-9])\s*(?P<offset>[+-]\d{2}:?\d{2})`)
	timeBareRe       = regexp.MustCompile(`(?P<datetime>[0-9][0-9:\-\.\sT]*[0-9])`)
)

var runtimeTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-0700",
	"2006-01-02 15:04:05-0700",
}

// ParseRuntimeTime 从运行时输出中提取数字形式的日期时间与时区偏移。
// T 分隔符归一成空格；没有偏移时按 UTC 处理；提取不出来则返回描述性错误。
func ParseRuntimeTime(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)

	var datetime, offset string
	if m := timeWithOffsetRe.FindStringSubmatch(trimmed); m != nil {
		datetime, offset = m[1], strings.ReplaceAll(m[2], ":", "")
	} else if m := timeBareRe.FindStringSubmatch(trimmed); m != nil {
		datetime, offset = m[1], "+0000"
	} else {
		return time.Time{}, fmt.Errorf("unable to locate a datetime in %q", s)
	}

	datetime = strings.ReplaceAll(strings.TrimSpace(datetime), "T", " ")
	candidate := datetime + offset
	for _, layout := range runtimeTimeLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q (normalized %q)", s, candidate)
}
