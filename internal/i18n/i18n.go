// Package i18n 提供界面文案的多语言支持。
// 协议性文本（提示串、转写里的叙述行）始终是英文，不走这里。
package i18n

import (
	"os"
	"strings"
)

// Language type
type Language string

const (
	EN Language = "en"
	ZH Language = "zh"
)

var current = EN

// Messages all text messages
type Messages struct {
	// Common
	AppTitle string
	Scanning string
	ScanFail string
	NoItems  string
	Quit     string
	Back     string
	Help     string
	Search   string
	Export   string

	// View modes
	ViewContainers  string
	ViewImages      string
	ViewFolders     string
	ViewDockerfiles string
	ViewMakefiles   string

	// List view
	Selected    string
	SelectAll   string
	Copied      string
	Expand      string
	Rebuild     string
	NothingToDo string

	// Job status
	StatusPending string
	StatusRunning string
	StatusDone    string
	StatusFailed  string

	// Rebuild view
	JobLabel       string
	StatusLabel    string
	ImageLabel     string
	ContainerLabel string
	SourceLabel    string
	QueueDone      string
	QueueCancelled string
	Exported       string
	NoMatches      string

	// Modals
	ViewOptionsTitle string
	WorkQueueTitle   string
	ExportTitle      string
	ExportHint       string

	// Detail labels
	CreatedLabel    string
	PulledLabel     string
	DockerfileLabel string
	MakefileLabel   string
}

var messages = map[Language]*Messages{
	EN: enMessages,
	ZH: zhMessages,
}

// SetLanguage set current language
func SetLanguage(lang Language) {
	if _, ok := messages[lang]; ok {
		current = lang
	}
}

// GetLanguage get current language
func GetLanguage() Language {
	return current
}

// ToggleLanguage toggle between EN and ZH
func ToggleLanguage() Language {
	if current == EN {
		current = ZH
	} else {
		current = EN
	}
	return current
}

// GetLanguageDisplay get display name for current language
func GetLanguageDisplay() string {
	if current == ZH {
		return "中文"
	}
	return "EN"
}

// T get translated messages for the current language
func T() *Messages {
	m := messages[current]
	if m == nil {
		m = messages[EN]
	}
	return m
}

// DetectLanguage detect language from environment variables
func DetectLanguage() Language {
	lang := os.Getenv("LANG")
	if lang == "" {
		lang = os.Getenv("LANGUAGE")
	}
	if lang == "" {
		lang = os.Getenv("LC_ALL")
	}

	lang = strings.ToLower(lang)
	if strings.HasPrefix(lang, "zh") {
		return ZH
	}
	return EN
}

// Init initialize i18n, auto-detect language
func Init() {
	SetLanguage(DetectLanguage())
}
