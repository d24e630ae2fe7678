//go:build !mobile

package utils

import "testing"

// TestIsMobile_Desktop 桌面端默认不是移动布局，环境变量可以强制开启
func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("SCRATCH_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("SCRATCH_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honour SCRATCH_MOBILE_EMULATE=1")
	}
}
