package dto

// 谁在场、谁行动、骰子点数，广播给整组的会话快照
type GameState struct {
	SessionID          string            `json:"session_id"`
	Players            []Player          `json:"players"`
	ActiveTurnPlayerID string            `json:"active_turn_player_id,omitempty"`
	LastRollValue      int               `json:"last_roll_value"`
	IsTurnInProgress   bool              `json:"is_turn_in_progress"`
	PendingEventRoll   *PendingEventRoll `json:"pending_event_roll,omitempty"`
}

type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsMan       bool   `json:"is_man"`
	IsMuslim    bool   `json:"is_muslim"`
	Position    int    `json:"position"`
	IsConnected bool   `json:"is_connected"`
	IsDead      bool   `json:"is_dead"`
	TurnsToSkip int    `json:"turns_to_skip"`
}

// 事件骰子屏障的公开视图，仅在 Roll 事件结算期间出现在快照里
type PendingEventRoll struct {
	EventID           string   `json:"event_id"`
	RequiredPlayerIDs []string `json:"required_player_ids"`
	ResolvedPlayerIDs []string `json:"resolved_player_ids"`
	RepeatTurn        bool     `json:"repeat_turn"`
}
