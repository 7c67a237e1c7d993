package prompt

import "strings"

// Render 按顺序拼接可见片段。shortened 为 true 时优先使用截断文本。
func Render(frags []Fragment, shortened bool) string {
	var b strings.Builder
	for _, f := range frags {
		if !f.Visible {
			continue
		}
		b.WriteString(f.Prefix)
		if shortened && f.Shortened != "" {
			b.WriteString(f.Shortened)
		} else {
			b.WriteString(f.Text)
		}
		b.WriteString(f.Suffix)
	}
	return b.String()
}

// Format 使提示适配 width 列宽并返回渲染结果。
// 同样的 (片段, 宽度) 永远得到同样的字节串；测试依赖这一点。
//
// 算法：固定词汇与快捷键的宽度先扣掉，剩余预算均分给可缩短片段。
// 镜像名保留开头加省略号，路径类保留结尾加省略号。
// 预算不足以再缩短时按最小可达宽度输出，绝不丢弃强制片段。
func Format(frags []Fragment, width int) string {
	if len(Render(frags, false)) > width-1 {
		fixed := fixedLength(frags)
		idxs := shortenableIndexes(frags)
		n := len(idxs)

		remaining := 0
		if width > fixed {
			// n+5 预留片段间距与输入回显的空间
			remaining = width - fixed - (n + 5)
		}
		if remaining > 3 && n > 0 {
			allowed := (remaining - 3) / n
			for _, i := range idxs {
				shortenFragment(&frags[i], allowed)
			}
		}
		for i := range frags {
			if frags[i].Visible && frags[i].Shortened == "" {
				frags[i].Shortened = frags[i].Text
			}
		}
	}
	return Render(frags, true)
}

// fixedLength 不可缩短的可见片段占用的总宽度。
func fixedLength(frags []Fragment) int {
	total := 0
	for _, f := range frags {
		if f.Visible && !f.Shortenable {
			total += len(f.Prefix) + len(f.Text) + len(f.Suffix)
		}
	}
	return total
}

// shortenableIndexes 参与缩短的可见片段下标，按声明顺序。
func shortenableIndexes(frags []Fragment) []int {
	var idxs []int
	for i, f := range frags {
		if f.Shortenable && f.Visible {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// shortenFragment 把片段压进 allowed 列。已经放得下就原样保留。
func shortenFragment(f *Fragment, allowed int) {
	if len(f.Text) <= allowed {
		f.Shortened = f.Text
		return
	}
	if allowed < 1 {
		f.Shortened = "..."
		return
	}
	if f.Kind == KindImage {
		// 镜像名留头部，结尾省略
		f.Shortened = f.Text[:allowed-1] + "..."
		return
	}
	// 路径等留尾部，开头省略
	f.Shortened = "..." + f.Text[len(f.Text)-allowed:]
}
