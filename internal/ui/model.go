// Package ui 实现 podtui 的终端界面：一个 bubbletea MVU 循环，
// 状态机为 扫描中 → 就绪（列表）→ 重建中（输出面板），弹窗叠加在当前视图上。
// 所有 IO 都走命令，Update 只做纯状态迁移。
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"podtui/internal/app"
	"podtui/internal/config"
	"podtui/internal/domain"
	"podtui/internal/i18n"
	"podtui/internal/logs"
	"podtui/internal/rebuild"
	"podtui/internal/ui/styles"
)

// uiState 顶层状态机。
type uiState int

const (
	stateScanning uiState = iota
	stateReady
	stateRebuilding
)

// modalKind 当前叠加的弹窗。
type modalKind int

const (
	modalNone modalKind = iota
	modalViewPicker
	modalQueue
	modalExport
)

// statusTTL 状态条消息的存活时间。
const statusTTL = 3 * time.Second

// Options 界面启动参数。
type Options struct {
	Scan        domain.ScanOptions
	OutputLimit int           // 每个任务输出缓冲的行数上限
	Tick        time.Duration // 定时刷新间隔
	RebuildAll  bool          // 启动后直接把全部目标入队重建
}

// Model 根模型。
type Model struct {
	core   *app.Core
	runner *rebuild.Runner
	logger *logs.Logger
	opts   Options

	state  uiState
	width  int
	height int

	spin     spinner.Model
	helpView help.Model
	listKeys listKeyMap
	rebKeys  rebuildKeyMap

	// 扫描产物
	result      *domain.DiscoveryResult
	dockerfiles []domain.DockerfileInfo
	makefiles   []domain.MakefileInfo
	scanErr     string

	// 列表视图
	mode     ViewMode
	rows     []ItemRow
	cursor   int
	offset   int
	selected map[int]bool
	expanded map[int]domain.ImageDetails

	// 弹窗
	modal        modalKind
	pickerCursor int
	queueCursor  int
	exportInput  textinput.Model
	exportErr    string

	status    string
	statusGen int

	reb *rebuildState

	autoTriggered bool
}

// New 创建根模型。
func New(core *app.Core, runner *rebuild.Runner, logger *logs.Logger, opts Options) *Model {
	if opts.OutputLimit <= 0 {
		opts.OutputLimit = config.DefaultOutputLimit
	}
	if opts.Tick <= 0 {
		opts.Tick = config.DefaultTickInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.TitleStyle

	return &Model{
		core:     core,
		runner:   runner,
		logger:   logger,
		opts:     opts,
		spin:     sp,
		helpView: help.New(),
		listKeys: newListKeyMap(),
		rebKeys:  newRebuildKeyMap(),
		selected: make(map[int]bool),
		expanded: make(map[int]domain.ImageDetails),
		width:    80,
		height:   24,
	}
}

// Init bubbletea 入口：起扫描、起定时器、转菊花。
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.scanCmd(), m.tick())
}

// ---- 命令 ----

func (m *Model) scanCmd() tea.Cmd {
	core, opts := m.core, m.opts.Scan
	return func() tea.Msg {
		ctx := context.Background()
		result, err := core.Scan(ctx, opts)
		if err != nil {
			return scanDoneMsg{err: err}
		}
		return scanDoneMsg{
			result:      result,
			dockerfiles: core.DockerfileRows(ctx, result),
			makefiles:   core.MakefileRows(result),
		}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) detailsCmd(row int) tea.Cmd {
	r := m.rows[row]
	img := domain.DiscoveredImage{
		Image:     r.Image,
		Container: r.Container,
		SourceDir: r.SourceDir,
		EntryPath: r.EntryPath,
	}
	core, dirs := m.core, m.result.Dirs
	return func() tea.Msg {
		return detailsMsg{row: row, details: core.ImageDetails(context.Background(), img, dirs)}
	}
}

// setStatus 设置状态条消息并返回到期清除命令。
func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusGen++
	gen := m.statusGen
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{gen: gen} })
}

// waitEvent 等队列执行器的下一条事件。通道关闭后不再续订。
func (m *Model) waitEvent() tea.Cmd {
	ch := m.reb.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return rebuildEventMsg(ev)
	}
}

// startRebuild 把给定行组装成任务队列并切到重建视图。
func (m *Model) startRebuild(rows []ItemRow) tea.Cmd {
	jobs := make([]*rebuild.Job, 0, len(rows))
	for _, r := range rows {
		if !r.Rebuildable {
			continue
		}
		jobs = append(jobs, rebuild.NewJob(rebuild.Spec{
			Image:     r.Image,
			Container: r.Container,
			EntryPath: r.EntryPath,
			SourceDir: r.SourceDir,
		}, m.opts.OutputLimit))
	}
	if len(jobs) == 0 {
		return m.setStatus(i18n.T().NothingToDo)
	}

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan rebuild.Event, 64)
	m.reb = newRebuildState(jobs, events, cancel)
	m.state = stateRebuilding

	runner := m.runner
	go func() {
		defer close(events)
		runner.Run(ctx, jobs, events)
	}()
	return m.waitEvent()
}

// ---- Update ----

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != stateScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		// 重建输出面板靠 tick 重绘，快照在 View 里取
		return m, m.tick()

	case scanDoneMsg:
		return m.applyScan(msg)

	case detailsMsg:
		if msg.row >= 0 && msg.row < len(m.rows) {
			m.expanded[msg.row] = msg.details
		}
		return m, nil

	case rebuildEventMsg:
		return m.applyRebuildEvent(rebuild.Event(msg))

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applyScan 扫描结束：装数据、切就绪，必要时自动入队。
func (m *Model) applyScan(msg scanDoneMsg) (tea.Model, tea.Cmd) {
	m.state = stateReady
	if msg.err != nil {
		m.scanErr = msg.err.Error()
		m.logger.Info("scan: %v", msg.err)
		return m, nil
	}
	m.scanErr = ""
	m.result = msg.result
	m.dockerfiles = msg.dockerfiles
	m.makefiles = msg.makefiles
	m.resetRows()

	if m.opts.RebuildAll && !m.autoTriggered {
		m.autoTriggered = true
		return m, m.startRebuild(m.rows)
	}
	return m, nil
}

// resetRows 视图模式或扫描结果变化后重建行与选择状态。
func (m *Model) resetRows() {
	m.rows = BuildRows(m.result, m.dockerfiles, m.makefiles, m.mode)
	m.cursor = 0
	m.offset = 0
	m.selected = make(map[int]bool)
	m.expanded = make(map[int]domain.ImageDetails)
}

// applyRebuildEvent 把队列事件施加到任务列表并推进界面状态。
func (m *Model) applyRebuildEvent(ev rebuild.Event) (tea.Model, tea.Cmd) {
	if m.reb == nil {
		return m, nil
	}
	rebuild.Apply(m.reb.jobs, ev)

	switch ev.Kind {
	case rebuild.EventJobStarted:
		m.reb.setActive(ev.Job)
	case rebuild.EventJobOutput:
		if ev.Job == m.reb.active && m.reb.searcher.Active() {
			m.reb.searcher.Rescan(m.reb.activeLines())
		}
	case rebuild.EventQueueDone:
		m.reb.done = true
		m.reb.cancelled = ev.Cancelled
		text := i18n.T().QueueDone
		if ev.Cancelled {
			text = i18n.T().QueueCancelled
		}
		return m, tea.Batch(m.setStatus(text), m.waitEvent())
	}
	return m, m.waitEvent()
}

// ---- 按键路由 ----

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}
	switch m.state {
	case stateScanning:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case stateRebuilding:
		return m.handleRebuildKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.listKeys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.PageUp):
		m.moveCursor(-pageStep)
	case key.Matches(msg, k.PageDown):
		m.moveCursor(pageStep)

	case key.Matches(msg, k.Toggle):
		if row, ok := m.currentRow(); ok && row.Rebuildable {
			if m.selected[m.cursor] {
				delete(m.selected, m.cursor)
			} else {
				m.selected[m.cursor] = true
			}
		}

	case key.Matches(msg, k.SelectAll):
		m.toggleSelectAll()

	case key.Matches(msg, k.Expand):
		if row, ok := m.currentRow(); ok && row.Expandable {
			if _, open := m.expanded[m.cursor]; !open {
				return m, m.detailsCmd(m.cursor)
			}
		}
	case key.Matches(msg, k.Collapse):
		delete(m.expanded, m.cursor)

	case key.Matches(msg, k.Copy):
		if row, ok := m.currentRow(); ok {
			if err := clipboard.WriteAll(row.Image); err != nil {
				return m, m.setStatus(fmt.Sprintf("clipboard: %v", err))
			}
			return m, m.setStatus(fmt.Sprintf("%s: %s", i18n.T().Copied, row.Image))
		}

	case key.Matches(msg, k.ViewPicker):
		m.modal = modalViewPicker
		m.pickerCursor = int(m.mode)

	case key.Matches(msg, k.Rebuild):
		return m, m.startRebuild(m.rebuildTargets())

	case key.Matches(msg, k.Queue):
		if m.reb != nil {
			m.openQueueModal()
		}
	}
	return m, nil
}

// rebuildTargets 有选择用选择，没选择用光标行。
func (m *Model) rebuildTargets() []ItemRow {
	var rows []ItemRow
	for i, row := range m.rows {
		if m.selected[i] {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		if row, ok := m.currentRow(); ok && row.Rebuildable {
			rows = append(rows, row)
		}
	}
	return rows
}

func (m *Model) toggleSelectAll() {
	all := true
	for i, row := range m.rows {
		if row.Rebuildable && !m.selected[i] {
			all = false
			break
		}
	}
	m.selected = make(map[int]bool)
	if !all {
		for i, row := range m.rows {
			if row.Rebuildable {
				m.selected[i] = true
			}
		}
	}
}

func (m *Model) currentRow() (ItemRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ItemRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ---- View ----

func (m *Model) View() string {
	var base string
	switch m.state {
	case stateScanning:
		base = m.viewScanning()
	case stateRebuilding:
		base = m.viewRebuild()
	default:
		base = m.viewList()
	}
	return m.overlayModal(base)
}

func (m *Model) viewScanning() string {
	return fmt.Sprintf("\n %s %s\n", m.spin.View(), styles.TextStyle.Render(i18n.T().Scanning))
}
