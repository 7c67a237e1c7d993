package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"podtui/internal/i18n"
	"podtui/internal/rebuild"
	"podtui/internal/ui/search"
	"podtui/internal/ui/styles"
)

// sidebarWidth 重建视图左侧信息栏宽度。
const sidebarWidth = 34

// rebuildState 重建视图的全部可变状态。
// jobs 的状态只在事件消费方（Update 循环）里通过 rebuild.Apply 推进。
type rebuildState struct {
	jobs   []*rebuild.Job
	events chan rebuild.Event
	cancel context.CancelFunc

	active    int
	done      bool
	cancelled bool

	offsetY int
	offsetX int
	follow  bool // 跟随输出尾部

	searcher    *search.Searcher
	searchInput textinput.Model
	searching   bool
	searchBack  bool
}

func newRebuildState(jobs []*rebuild.Job, events chan rebuild.Event, cancel context.CancelFunc) *rebuildState {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	return &rebuildState{
		jobs:        jobs,
		events:      events,
		cancel:      cancel,
		follow:      true,
		searcher:    search.New(),
		searchInput: ti,
	}
}

// setActive 切换展示的任务并重置滚动与搜索索引。
func (rs *rebuildState) setActive(i int) {
	if i < 0 || i >= len(rs.jobs) {
		return
	}
	rs.active = i
	rs.offsetY = 0
	rs.offsetX = 0
	rs.follow = true
	if rs.searcher.Active() {
		rs.searcher.Rescan(rs.activeLines())
	}
}

func (rs *rebuildState) activeJob() *rebuild.Job {
	return rs.jobs[rs.active]
}

// activeStreams 当前任务输出的只读快照。
func (rs *rebuildState) activeStreams() []rebuild.Line {
	return rs.activeJob().Output.Snapshot()
}

// activeLines 规整后的文本行，搜索和渲染共用同一份形态。
func (rs *rebuildState) activeLines() []string {
	snap := rs.activeStreams()
	out := make([]string, len(snap))
	for i, line := range snap {
		out[i] = search.NormalizeLine(line.Text)
	}
	return out
}

// ---- 按键 ----

func (m *Model) handleRebuildKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rs := m.reb
	if rs.searching {
		return m.handleSearchKey(msg)
	}

	k := m.rebKeys
	switch {
	case key.Matches(msg, k.Quit):
		if !rs.done {
			rs.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, k.Back):
		// 返回列表；队列还在跑就连带取消
		if !rs.done {
			rs.cancel()
		}
		m.state = stateReady

	case key.Matches(msg, k.Up):
		m.scrollBy(-1)
	case key.Matches(msg, k.Down):
		m.scrollBy(1)
	case key.Matches(msg, k.PageUp):
		m.scrollBy(-pageStep)
	case key.Matches(msg, k.PageDown):
		m.scrollBy(pageStep)
	case key.Matches(msg, k.Top):
		rs.offsetY = 0
		rs.follow = false
	case key.Matches(msg, k.Bottom):
		rs.follow = true

	case key.Matches(msg, k.Left):
		rs.offsetX -= m.panStep()
		if rs.offsetX < 0 {
			rs.offsetX = 0
		}
	case key.Matches(msg, k.Right):
		rs.offsetX += m.panStep()

	case key.Matches(msg, k.Search):
		m.openSearch(false)
	case key.Matches(msg, k.SearchBack):
		m.openSearch(true)
	case key.Matches(msg, k.NextMatch):
		if match := rs.searcher.Next(); match != nil {
			m.centerOn(match.Line)
		}
	case key.Matches(msg, k.PrevMatch):
		if match := rs.searcher.Prev(); match != nil {
			m.centerOn(match.Line)
		}

	case key.Matches(msg, k.Queue):
		m.openQueueModal()
	case key.Matches(msg, k.Export):
		m.openExport()
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rs := m.reb
	switch msg.String() {
	case "enter":
		rs.searching = false
		query := rs.searchInput.Value()
		if query == "" {
			rs.searcher.Clear()
			return m, nil
		}
		if err := rs.searcher.Search(rs.activeLines(), query); err != nil {
			return m, m.setStatus(fmt.Sprintf("search: %v", err))
		}
		if rs.searcher.MatchCount() == 0 {
			return m, m.setStatus(i18n.T().NoMatches)
		}
		if match := rs.searcher.Seek(m.topLine(), rs.searchBack); match != nil {
			m.centerOn(match.Line)
		}
		return m, nil
	case "esc":
		rs.searching = false
		return m, nil
	}
	var cmd tea.Cmd
	rs.searchInput, cmd = rs.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) openSearch(backward bool) {
	rs := m.reb
	rs.searching = true
	rs.searchBack = backward
	if backward {
		rs.searchInput.Prompt = "?"
	} else {
		rs.searchInput.Prompt = "/"
	}
	rs.searchInput.SetValue(rs.searcher.Query())
	rs.searchInput.CursorEnd()
	rs.searchInput.Focus()
}

// ---- 滚动 ----

func (m *Model) paneHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) paneWidth() int {
	w := m.width - sidebarWidth
	if w < 10 {
		w = 10
	}
	return w
}

// panStep 横向平移一次走面板宽度的三分之二。
func (m *Model) panStep() int {
	return m.paneWidth() * 2 / 3
}

func (m *Model) maxScroll() int {
	n := m.reb.activeJob().Output.Len() - m.paneHeight()
	if n < 0 {
		return 0
	}
	return n
}

// topLine 当前可视区顶行。
func (m *Model) topLine() int {
	if m.reb.follow {
		return m.maxScroll()
	}
	return m.reb.offsetY
}

// scrollBy 相对滚动。滚回底部时重新进入跟随模式。
func (m *Model) scrollBy(delta int) {
	rs := m.reb
	maxOff := m.maxScroll()
	if rs.follow {
		rs.offsetY = maxOff
	}
	rs.offsetY += delta
	if rs.offsetY < 0 {
		rs.offsetY = 0
	}
	if rs.offsetY > maxOff {
		rs.offsetY = maxOff
	}
	rs.follow = rs.offsetY >= maxOff
}

// centerOn 把某行滚到面板中央并脱离跟随。
func (m *Model) centerOn(line int) {
	rs := m.reb
	rs.follow = false
	rs.offsetY = line - m.paneHeight()/2
	if rs.offsetY < 0 {
		rs.offsetY = 0
	}
	if maxOff := m.maxScroll(); rs.offsetY > maxOff {
		rs.offsetY = maxOff
	}
}

// ---- 渲染 ----

func (m *Model) viewRebuild() string {
	rs := m.reb
	t := i18n.T()

	header := styles.TitleStyle.Render(t.AppTitle) + "  " +
		styles.LabelStyle.Render(fmt.Sprintf("%s %d/%d", t.JobLabel, rs.active+1, len(rs.jobs)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), m.viewOutputPane())

	var bottom string
	if rs.searching {
		bottom = styles.SearchPromptStyle.Render(rs.searchInput.View())
	} else if m.status != "" {
		bottom = styles.StatusBarStyle.Render(m.status)
	} else {
		bottom = m.helpView.View(m.rebKeys)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, bottom)
}

func (m *Model) viewSidebar() string {
	rs := m.reb
	job := rs.activeJob()
	t := i18n.T()
	w := sidebarWidth - 4

	lines := []string{
		styles.LabelStyle.Render(t.StatusLabel) + " " + statusStyle(job.Status).Render(statusText(job.Status)),
		styles.LabelStyle.Render(t.ImageLabel) + " " + truncateHead(job.Spec.Image, w),
	}
	if job.Spec.Container != "" {
		lines = append(lines, styles.LabelStyle.Render(t.ContainerLabel)+" "+job.Spec.Container)
	}
	lines = append(lines, styles.LabelStyle.Render(t.SourceLabel)+" "+truncateTail(job.Spec.SourceDir, w))
	if job.Err != "" {
		lines = append(lines, styles.ErrorStyle.Render(truncateHead(job.Err, w)))
	}
	if rs.searcher.Active() {
		lines = append(lines, "",
			styles.MutedStyle.Render(fmt.Sprintf("match %d/%d", rs.searcher.CurrentIndex(), rs.searcher.MatchCount())))
	}

	return styles.SidebarStyle.
		Width(sidebarWidth - 2).
		Height(m.paneHeight()).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) viewOutputPane() string {
	rs := m.reb
	snap := rs.activeStreams()
	paneH := m.paneHeight()
	textW := m.paneWidth() - 5 // 行号槽占 5 列

	top := m.topLine()
	end := top + paneH
	if end > len(snap) {
		end = len(snap)
	}

	var out []string
	for i := top; i < end; i++ {
		gutter := styles.GutterStyle.Render(fmt.Sprintf("%4d ", i+1))
		text := panSlice(search.NormalizeLine(snap[i].Text), rs.offsetX, textW)

		style := styles.TextStyle
		switch {
		case rs.searcher.IsCurrentMatchLine(i):
			style = styles.CurrentMatchStyle
		case len(rs.searcher.MatchesOnLine(i)) > 0:
			style = styles.MatchStyle
		case snap[i].Stream == rebuild.StreamStderr:
			style = styles.StderrStyle
		}
		out = append(out, gutter+style.Render(text))
	}
	for len(out) < paneH {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// panSlice 按横向偏移截取一段可视文本。
func panSlice(text string, offsetX, width int) string {
	runes := []rune(text)
	if offsetX >= len(runes) {
		return ""
	}
	runes = runes[offsetX:]
	if width > 0 && len(runes) > width {
		runes = runes[:width]
	}
	return string(runes)
}

func statusText(s rebuild.Status) string {
	t := i18n.T()
	switch s {
	case rebuild.StatusRunning:
		return t.StatusRunning
	case rebuild.StatusSucceeded:
		return t.StatusDone
	case rebuild.StatusFailed:
		return t.StatusFailed
	default:
		return t.StatusPending
	}
}

func statusStyle(s rebuild.Status) lipgloss.Style {
	switch s {
	case rebuild.StatusRunning:
		return styles.StatusRunningStyle
	case rebuild.StatusSucceeded:
		return styles.StatusDoneStyle
	case rebuild.StatusFailed:
		return styles.StatusFailedStyle
	default:
		return styles.StatusPendingStyle
	}
}

// truncateHead 超宽时保留头部，尾部换成省略号。
func truncateHead(s string, n int) string {
	runes := []rune(s)
	if n <= 3 || len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// truncateTail 超宽时保留尾部，路径类文本用。
func truncateTail(s string, n int) string {
	runes := []rune(s)
	if n <= 3 || len(runes) <= n {
		return s
	}
	return "..." + string(runes[len(runes)-(n-3):])
}
