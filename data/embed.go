// Package data 内置的卡组和刮刮卡参数
package data

import "embed"

// FS 以 data/ 目录为根的嵌入文件系统，传给 embedded.Init
//
//go:embed *.yaml
var FS embed.FS
