package game

import "feudopoly-be/internal/service/dto"

type JoinGameRequest struct {
	SessionID   string `json:"session_id"`
	DisplayName string `json:"display_name"`
	IsMan       bool   `json:"is_man"`
	IsMuslim    bool   `json:"is_muslim"`
}

type RollMovementRequest struct {
	SessionID string `json:"session_id"`
}

type BeginTurnEventRequest struct {
	SessionID string `json:"session_id"`
}

type FinishTurnEventRequest struct {
	SessionID string `json:"session_id"`
	// 仅对包含 ChosenPlayer 目标的事件有意义
	ChosenPlayerID string `json:"chosen_player_id,omitempty"`
}

type SubmitEventRollRequest struct {
	SessionID string `json:"session_id"`
}

type SyncStateRequest struct {
	SessionID string `json:"session_id"`
}

type JoinedResponse struct {
	PlayerID string        `json:"player_id"`
	State    dto.GameState `json:"state"`
}

type PlayerJoinedResponse struct {
	State dto.GameState `json:"state"`
}

type PlayerLeftResponse struct {
	PlayerID string `json:"player_id"`
}

type DiceRolledResponse struct {
	PlayerID    string `json:"player_id"`
	RollValue   int    `json:"roll_value"`
	NewPosition int    `json:"new_position"`
}

type TurnBeganResponse struct {
	Event dto.CellEvent `json:"event"`
}

type TurnEndedResponse struct {
	Resolution dto.TurnResolution `json:"resolution"`
}

type EventDiceRolledResponse struct {
	PlayerID  string          `json:"player_id"`
	RollValue int             `json:"roll_value"`
	Outcome   dto.OutcomeInfo `json:"outcome"`
}
