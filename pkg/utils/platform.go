//go:build !mobile

package utils

import "os"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false，可以通过 SCRATCH_MOBILE_EMULATE=1 模拟移动端行为（用于本地调试）
func IsMobile() bool {
	return os.Getenv("SCRATCH_MOBILE_EMULATE") == "1"
}
