// Package quadlet 解析 systemd Quadlet 的 .container 单元文件。
// 只提取发现流程关心的字段：[Container] 的 Image / ContainerName 与 [Unit] 的 Description。
package quadlet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// 解析失败的两类结构化错误。扫描层捕获后跳过该文件并记一条诊断，不终止整体扫描。
var (
	ErrNoContainerSection = errors.New("no [Container] section")
	ErrNoImage            = errors.New("missing Image directive in [Container] section")
)

// Unit 一个 .container 文件里与镜像相关的字段。
type Unit struct {
	Path          string
	Image         string
	ContainerName string // [Container] ContainerName=，可为空
	Description   string // [Unit] Description=，可为空
}

// ResolveName 按 ContainerName、Description、文件名主干的顺序确定容器名。
func (u *Unit) ResolveName() string {
	if u.ContainerName != "" {
		return u.ContainerName
	}
	if u.Description != "" {
		return u.Description
	}
	stem := filepath.Base(u.Path)
	return strings.TrimSuffix(stem, filepath.Ext(stem))
}

// Parse 读取并解析一个 .container 文件。
func Parse(path string) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseBytes(path, data)
}

// ParseBytes 从内存解析，路径仅用于错误信息与名字回退。
func ParseBytes(path string, data []byte) (*Unit, error) {
	f, err := ini.LoadSources(ini.LoadOptions{AllowNonUniqueSections: true, AllowShadows: true}, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sec, err := f.GetSection("Container")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrNoContainerSection)
	}
	image := strings.TrimSpace(sec.Key("Image").String())
	if image == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrNoImage)
	}

	unit := &Unit{
		Path:          path,
		Image:         image,
		ContainerName: strings.TrimSpace(sec.Key("ContainerName").String()),
	}
	if unitSec, err := f.GetSection("Unit"); err == nil {
		unit.Description = strings.TrimSpace(unitSec.Key("Description").String())
	}
	return unit, nil
}
