package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"podtui/internal/i18n"
	"podtui/internal/rebuild"
	"podtui/internal/ui/components"
	"podtui/internal/ui/styles"
)

// queueModalWidth 工作队列弹窗宽度。
const queueModalWidth = 48

// overlayModal 把当前弹窗叠加到背景视图上。
func (m *Model) overlayModal(base string) string {
	var content string
	switch m.modal {
	case modalViewPicker:
		content = m.viewPickerModal()
	case modalQueue:
		content = m.queueModal()
	case modalExport:
		content = m.exportModal()
	default:
		return base
	}
	return components.OverlayCentered(base, content, m.width, m.height)
}

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalViewPicker:
		return m.handlePickerKey(msg)
	case modalQueue:
		return m.handleQueueKey(msg)
	case modalExport:
		return m.handleExportKey(msg)
	}
	return m, nil
}

// ---- 视图选择 ----

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
	case "down", "j":
		if m.pickerCursor < len(viewModes)-1 {
			m.pickerCursor++
		}
	case "enter":
		m.mode = viewModes[m.pickerCursor]
		m.resetRows()
		m.modal = modalNone
	case "esc", "q", "v":
		m.modal = modalNone
	}
	return m, nil
}

func (m *Model) viewPickerModal() string {
	var lines []string
	for i, mode := range viewModes {
		marker := "  "
		label := mode.Label()
		if i == m.pickerCursor {
			marker = "▶ "
			label = styles.ActiveRowStyle.Render(label)
		} else if mode == m.mode {
			label = styles.SelectedStyle.Render(label)
		}
		lines = append(lines, marker+label)
	}
	return components.ModalBox(i18n.T().ViewOptionsTitle, strings.Join(lines, "\n"), 40)
}

// ---- 工作队列 ----

func (m *Model) openQueueModal() {
	m.queueCursor = m.reb.active
	m.modal = modalQueue
}

// handleQueueKey 队列弹窗里可以上下挑任务，Enter 把输出面板切到该任务。
func (m *Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.queueCursor > 0 {
			m.queueCursor--
		}
	case "down", "j":
		if m.queueCursor < len(m.reb.jobs)-1 {
			m.queueCursor++
		}
	case "enter":
		m.reb.setActive(m.queueCursor)
		m.state = stateRebuilding
		m.modal = modalNone
	case "esc", "q", "w":
		m.modal = modalNone
	}
	return m, nil
}

func (m *Model) queueModal() string {
	if m.reb == nil {
		return ""
	}
	var lines []string
	for i, job := range m.reb.jobs {
		marker := "  "
		if i == m.reb.active {
			marker = "▶ "
		}
		status := statusStyle(job.Status).Render(fmt.Sprintf("%-7s", statusText(job.Status)))
		line := marker + status + " " + truncateHead(job.Spec.Image, queueModalWidth-12)
		if i == m.queueCursor {
			line = styles.ActiveRowStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return components.ModalBox(i18n.T().WorkQueueTitle, strings.Join(lines, "\n"), queueModalWidth)
}

// ---- 导出日志 ----

func (m *Model) openExport() {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 48
	ti.SetValue(DefaultExportFilename(m.reb.activeJob().Spec.Image, time.Now()))
	ti.CursorEnd()
	ti.Focus()
	m.exportInput = ti
	m.exportErr = ""
	m.modal = modalExport
}

func (m *Model) handleExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.exportErr = ""
		return m, nil
	case "enter":
		return m.doExport()
	}
	var cmd tea.Cmd
	m.exportInput, cmd = m.exportInput.Update(msg)
	return m, cmd
}

func (m *Model) doExport() (tea.Model, tea.Cmd) {
	job := m.reb.activeJob()
	path, err := SanitizeExportPath(m.exportInput.Value())
	if err != nil {
		m.exportErr = err.Error()
		return m, nil
	}
	if err := WriteJobLog(job, path); err != nil {
		m.exportErr = err.Error()
		return m, nil
	}

	job.Output.Append(rebuild.StreamStdout, exportedMarker+" "+path)
	m.modal = modalNone
	m.exportErr = ""
	return m, m.setStatus(i18n.T().Exported + " " + path)
}

func (m *Model) exportModal() string {
	lines := []string{
		m.exportInput.View(),
		styles.HintStyle.Render(i18n.T().ExportHint),
	}
	if m.exportErr != "" {
		lines = append(lines, styles.FormErrorStyle.Render(m.exportErr))
	}
	return components.ModalBox(i18n.T().ExportTitle, strings.Join(lines, "\n"), 56)
}
