package dto

// 结果种类的线上表示，领域层的和类型在 DTO 边界被展平
const (
	OUTCOME_NONE           = "None"
	OUTCOME_MOVE_BY_OFFSET = "MoveByOffset"
	OUTCOME_MOVE_TO_CELL   = "MoveToCell"
	OUTCOME_REPEAT_TURN    = "RepeatTurn"
	OUTCOME_SKIP_TURNS     = "SkipTurns"
	OUTCOME_ELIMINATE      = "Eliminate"
)

type OutcomeInfo struct {
	Kind       string `json:"kind"`
	Target     string `json:"target"`
	Text       string `json:"text,omitempty"`
	MoveOffset int    `json:"move_offset,omitempty"`
	MoveToCell *int   `json:"move_to_cell,omitempty"`
	SkipTurns  int    `json:"skip_turns,omitempty"`
}

type RollOutcomeInfo struct {
	ResultKind string      `json:"result_kind"`
	From       int         `json:"from"`
	To         int         `json:"to"`
	Outcome    OutcomeInfo `json:"outcome"`
}

type CellEvent struct {
	ID             string            `json:"id"`
	Cell           int               `json:"cell"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	DictorSpeech   string            `json:"dictor_speech,omitempty"`
	ResolutionMode string            `json:"resolution_mode"`
	FixedOutcomes  []OutcomeInfo     `json:"fixed_outcomes,omitempty"`
	RollOutcomes   []RollOutcomeInfo `json:"roll_outcomes,omitempty"`
}

// 一次事件结算的汇总，屏障清空或 Fixed 事件结算完成时随 TurnEnded 广播
type TurnResolution struct {
	EventID string `json:"event_id"`
	Cell    int    `json:"cell"`
	// roll 为 0 表示 Fixed 结算，没有对应的骰子
	Entries    []ResolvedOutcome `json:"entries"`
	RepeatTurn bool              `json:"repeat_turn"`
}

type ResolvedOutcome struct {
	PlayerID string      `json:"player_id"`
	Roll     int         `json:"roll,omitempty"`
	Outcome  OutcomeInfo `json:"outcome"`
}
