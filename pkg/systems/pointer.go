package systems

import "github.com/gonewx/scratchcards/pkg/utils"

// PointerSource 提供本帧的指针状态
// 运行时由 utils.PointerTracker 实现，测试中使用脚本化的假实现
type PointerSource interface {
	Pointer() utils.PointerState
}
