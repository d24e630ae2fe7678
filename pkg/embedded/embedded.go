// Package embedded 提供嵌入资源的统一访问接口
//
// embed.FS 变量声明在 data 包（data/embed.go）中，以 data/ 目录为根。
// 本包提供包装函数，让 config 等包可以用 "data/..." 路径读取嵌入资源，
// 桌面端、移动端和终端前端共用同一份资源。
//
// 以 "data/" 开头的路径从嵌入文件系统读取，其余路径视为磁盘文件，
// 便于通过命令行参数加载自定义卡组。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init 之前访问嵌入资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

const dataPrefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入文件系统
// data 的根目录对应 "data/" 前缀，通常传入 data.FS
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

// embeddedName 把 "data/..." 路径转换为嵌入文件系统内的名字
func embeddedName(path string) string {
	return strings.TrimPrefix(normalize(path), dataPrefix)
}

// IsEmbedded 路径是否指向嵌入资源
func IsEmbedded(path string) bool {
	return strings.HasPrefix(normalize(path), dataPrefix)
}

// ReadFile 读取文件内容
// "data/" 前缀从嵌入文件系统读取，其他路径从磁盘读取
func ReadFile(path string) ([]byte, error) {
	if !IsEmbedded(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, nil
	}
	if !initialized {
		return nil, ErrNotInitialized
	}
	return fs.ReadFile(dataFS, embeddedName(path))
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	if !IsEmbedded(path) {
		_, err := os.Stat(path)
		return err == nil
	}
	if !initialized {
		return false
	}
	_, err := fs.Stat(dataFS, embeddedName(path))
	return err == nil
}

// Glob 在嵌入文件系统中匹配文件，模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	pattern = normalize(pattern)
	if !strings.HasPrefix(pattern, dataPrefix) {
		return nil, fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", pattern)
	}
	matches, err := fs.Glob(dataFS, strings.TrimPrefix(pattern, dataPrefix))
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = dataPrefix + m
	}
	return matches, nil
}
