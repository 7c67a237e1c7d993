// Package logs 提供按 -v 次数分级的诊断日志。
// TUI 模式下终端被交互界面独占，日志只在指定 verbosity 下写到 stderr。
package logs

import (
	"fmt"
	"io"
	"os"
)

// Level 日志级别，对应 -v 标志出现的次数。
type Level int

const (
	LevelNormal Level = iota // 不加 -v 也输出
	LevelInfo                // -v
	LevelDebug               // -v -v
)

// Logger 按 verbosity 过滤输出。零值不可用，请通过 New 创建。
type Logger struct {
	verbosity int
	out       io.Writer
}

// New 创建写到 stderr 的 Logger。
func New(verbosity int) *Logger {
	return &Logger{verbosity: verbosity, out: os.Stderr}
}

// NewWithWriter 指定输出目标，测试用。
func NewWithWriter(verbosity int, out io.Writer) *Logger {
	return &Logger{verbosity: verbosity, out: out}
}

// Log 当 verbosity 达到 level 时输出一条消息。
func (l *Logger) Log(level Level, msg string) {
	if l == nil || l.verbosity < int(level) {
		return
	}
	switch level {
	case LevelInfo:
		fmt.Fprintf(l.out, "info: %s\n", msg)
	case LevelDebug:
		fmt.Fprintf(l.out, "dbg: %s\n", msg)
	default:
		fmt.Fprintln(l.out, msg)
	}
}

// Normal 始终输出。
func (l *Logger) Normal(format string, args ...any) {
	l.Log(LevelNormal, fmt.Sprintf(format, args...))
}

// Info 需要 -v。
func (l *Logger) Info(format string, args ...any) {
	l.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Debug 需要 -v -v。
func (l *Logger) Debug(format string, args ...any) {
	l.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Verbosity 返回当前级别。
func (l *Logger) Verbosity() int {
	if l == nil {
		return 0
	}
	return l.verbosity
}
