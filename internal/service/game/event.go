package game

// 事件的结算方式
const (
	MODE_FIXED = "Fixed"
	MODE_ROLL  = "Roll"
)

// 结果作用的目标组
const (
	TARGET_CURRENT_PLAYER = "CurrentPlayer"
	TARGET_CHOSEN_PLAYER  = "ChosenPlayer"
	TARGET_ALL_PLAYERS    = "AllPlayers"
	TARGET_WOMEN          = "Women"
	TARGET_MUSLIMS        = "Muslims"
	TARGET_NON_MUSLIMS    = "NonMuslims"
)

// 区间的胜负属性，只影响客户端文案展示
const (
	RESULT_WIN  = "Win"
	RESULT_TIE  = "Tie"
	RESULT_LOSE = "Lose"
)

// Outcome 是封闭的和类型，每种结果只携带自己需要的数据
type Outcome interface {
	isOutcome()
}

type OutcomeNone struct{}

type MoveByOffset struct {
	Offset int
}

type MoveToCell struct {
	Cell int
}

type RepeatTurn struct{}

type SkipTurns struct {
	Turns int
}

type Eliminate struct{}

func (OutcomeNone) isOutcome()  {}
func (MoveByOffset) isOutcome() {}
func (MoveToCell) isOutcome()   {}
func (RepeatTurn) isOutcome()   {}
func (SkipTurns) isOutcome()    {}
func (Eliminate) isOutcome()    {}

// FixedEntry 是 Fixed 事件的一条确定性结算规则
type FixedEntry struct {
	Outcome Outcome
	Target  string
	Text    string
}

// RollEntry 把 [From, To] 区间的骰子点数映射到一个结果
// 同一事件内所有区间必须连续且完整覆盖 1-6
type RollEntry struct {
	ResultKind string
	From       int
	To         int
	Outcome    Outcome
	Target     string
	Text       string
}

func (e RollEntry) InRange(value int) bool {
	return value >= e.From && value <= e.To
}

// CellEvent 是挂在某个棋盘格子上的事件描述，构建后不可变
type CellEvent struct {
	ID           string
	Cell         int
	Title        string
	Description  string
	DictorSpeech string

	ResolutionMode string
	FixedOutcomes  []FixedEntry
	RollOutcomes   []RollEntry
}

// matchRoll 返回点数命中的区间，未命中视为配置缺陷
func (ev *CellEvent) matchRoll(value int) (RollEntry, bool) {
	for _, entry := range ev.RollOutcomes {
		if entry.InRange(value) {
			return entry, true
		}
	}

	return RollEntry{}, false
}
