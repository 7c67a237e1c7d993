package ui

import (
	"fmt"
	"strings"

	"podtui/internal/i18n"
	"podtui/internal/ui/styles"
)

// viewList 就绪态的列表视图：表头、行窗口、状态条、快捷键帮助。
func (m *Model) viewList() string {
	t := i18n.T()

	header := styles.TitleStyle.Render(t.AppTitle) + "  " +
		styles.LabelStyle.Render(m.mode.Label()) + "  " +
		styles.MutedStyle.Render(fmt.Sprintf("%d items, %d %s", len(m.rows), len(m.selected), t.Selected))
	if m.scanErr != "" {
		header += "\n" + styles.ErrorStyle.Render(t.ScanFail+": "+m.scanErr)
	}

	body := m.viewListBody()

	var bottom string
	if m.status != "" {
		bottom = styles.StatusBarStyle.Render(m.status)
	} else {
		bottom = m.helpView.View(m.listKeys)
	}

	return header + "\n" + body + "\n" + bottom
}

// viewListBody 渲染行窗口。展开的行后面跟缩进的详情行，
// 滚动偏移按渲染行而不是数据行计，保证光标行总在窗口内。
func (m *Model) viewListBody() string {
	if len(m.rows) == 0 {
		return styles.MutedStyle.Render(i18n.T().NoItems)
	}

	var lines []string
	rowStart := make([]int, len(m.rows))
	for i, row := range m.rows {
		rowStart[i] = len(lines)
		lines = append(lines, m.renderRow(i, row))
		if details, ok := m.expanded[i]; ok {
			t := i18n.T()
			dockerfile := details.DockerfileName
			if dockerfile == "" {
				dockerfile = "-"
			}
			lines = append(lines,
				styles.DetailStyle.Render(fmt.Sprintf("%s %s", t.CreatedLabel, details.CreatedAgo)),
				styles.DetailStyle.Render(fmt.Sprintf("%s %s", t.PulledLabel, details.PulledAgo)),
				styles.DetailStyle.Render(fmt.Sprintf("%s %s", t.DockerfileLabel, dockerfile)),
				styles.DetailStyle.Render(fmt.Sprintf("%s %t", t.MakefileLabel, details.HasMakefile)),
			)
		}
	}

	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	// 光标行滚进窗口
	if rowStart[m.cursor] < m.offset {
		m.offset = rowStart[m.cursor]
	}
	if rowStart[m.cursor] >= m.offset+bodyHeight {
		m.offset = rowStart[m.cursor] - bodyHeight + 1
	}
	if m.offset > len(lines)-bodyHeight {
		m.offset = len(lines) - bodyHeight
	}
	if m.offset < 0 {
		m.offset = 0
	}

	end := m.offset + bodyHeight
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[m.offset:end], "\n")
}

func (m *Model) renderRow(i int, row ItemRow) string {
	marker := "  "
	if i == m.cursor {
		marker = styles.CursorStyle.Render("▶ ")
	}

	checkbox := "    "
	if row.Rebuildable {
		if m.selected[i] {
			checkbox = styles.SelectedStyle.Render("[x] ")
		} else {
			checkbox = "[ ] "
		}
	}

	title := row.Title
	switch {
	case i == m.cursor:
		title = styles.CursorStyle.Render(title)
	case m.selected[i]:
		title = styles.SelectedStyle.Render(title)
	default:
		title = styles.TextStyle.Render(title)
	}

	line := marker + checkbox + title
	if row.Subtitle != "" {
		line += "  " + styles.MutedStyle.Render(row.Subtitle)
	}
	return line
}
