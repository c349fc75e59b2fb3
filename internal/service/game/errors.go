package game

import (
	"errors"
	"fmt"
)

// 协议错误与回合顺序错误只会返回给调用者，不改变任何会话状态
var (
	ErrSessionNotFound = errors.New("会话不存在")
	ErrSessionFull     = errors.New("会话人数已满")
	ErrNameRequired    = errors.New("玩家昵称不能为空")
	ErrNotInSession    = errors.New("玩家不在此会话中")

	ErrNotYourTurn       = errors.New("当前不是你的回合")
	ErrTurnInProgress    = errors.New("上一回合尚未结算")
	ErrTurnNotInProgress = errors.New("回合尚未开始，请先掷骰")
	ErrPlayerDead        = errors.New("玩家已死亡，无法行动")

	ErrEventPending      = errors.New("存在未完成的事件骰子，无法结算")
	ErrNoEventPending    = errors.New("当前没有等待中的事件骰子")
	ErrNotRequiredToRoll = errors.New("此事件不需要你掷骰")
	ErrAlreadyRolled     = errors.New("你已经掷过事件骰子")
)

// 配置错误说明事件表覆盖不完整，属于需要线下修复的编排缺陷
// 它只中止当前这一次调用，不破坏会话锁和其他玩家的游戏
var (
	ErrEventNotConfigured  = errors.New("该格子没有配置事件")
	ErrRollRangeNotCovered = errors.New("骰子点数未命中任何事件区间")
)

// MustSkipTurnError 表示调用者还有未消耗的跳过回合数
// 计数只会被轮转算法递减，这里只读不改
type MustSkipTurnError struct {
	TurnsToSkip int
}

func (e *MustSkipTurnError) Error() string {
	return fmt.Sprintf("你还需要跳过 %d 个回合", e.TurnsToSkip)
}
