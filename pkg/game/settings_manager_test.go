package game

import (
	"os"
	"testing"

	"github.com/gonewx/scratchcards/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.Theme != config.ThemeLight {
		t.Errorf("Theme: got %q, want light", settings.Theme)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.ShowPercent {
		t.Error("ShowPercent: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings().Theme != config.ThemeLight {
		t.Errorf("Degraded mode Theme: got %q, want light", sm.GetSettings().Theme)
	}

	sm.SetTheme(config.ThemeDark)
	// 降级模式保存不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_scratch_settings")

	sm1 := NewSettingsManager(gdataManager)
	sm1.SetTheme(config.ThemeDark)
	sm1.SetFullscreen(true)
	sm1.SetShowPercent(false)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// 创建新的设置管理器，验证加载
	sm2 := NewSettingsManager(gdataManager)
	settings := sm2.GetSettings()

	if settings.Theme != config.ThemeDark {
		t.Errorf("Loaded Theme: got %q, want dark", settings.Theme)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
	if settings.ShowPercent {
		t.Error("Loaded ShowPercent: got true, want false")
	}
}

// TestSettingsLoadInvalidTheme 存档中的未知主题回退为 light
func TestSettingsLoadInvalidTheme(t *testing.T) {
	gdataManager := openTestGdata(t, "test_scratch_settings_theme")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("theme: sepia\nfullscreen: true\n")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(gdataManager)
	if sm.GetSettings().Theme != config.ThemeLight {
		t.Errorf("Theme: got %q, want light", sm.GetSettings().Theme)
	}
	if !sm.GetSettings().Fullscreen {
		t.Error("valid fields should still be loaded")
	}
	// 旧存档缺少 showPercent 时保持默认值
	if !sm.GetSettings().ShowPercent {
		t.Error("missing field should keep its default")
	}
}

// TestSettingsLoadCorrupted 损坏的存档返回错误并回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	gdataManager := openTestGdata(t, "test_scratch_settings_corrupted")

	if err := gdataManager.SaveObjectProp(settingsObject, settingsProperty, []byte("theme: [")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(gdataManager)
	if err := sm.Load(); err == nil {
		t.Error("Load() should fail on corrupted data")
	}
	if sm.GetSettings().Theme != config.ThemeLight {
		t.Error("corrupted settings should fall back to defaults")
	}
}

func TestToggleTheme(t *testing.T) {
	sm := NewSettingsManager(nil)

	if got := sm.ToggleTheme(); got != config.ThemeDark {
		t.Errorf("first toggle: got %q, want dark", got)
	}
	if sm.Palette().Background != config.PaletteFor(config.ThemeDark).Background {
		t.Error("Palette should follow the theme")
	}
	if got := sm.ToggleTheme(); got != config.ThemeLight {
		t.Errorf("second toggle: got %q, want light", got)
	}
}
