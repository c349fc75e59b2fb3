package game

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 请求类型
const (
	REQ_JOIN_GAME         = "JoinGame"
	REQ_ROLL_MOVEMENT     = "RollMovement"
	REQ_BEGIN_TURN_EVENT  = "BeginTurnEvent"
	REQ_FINISH_TURN_EVENT = "FinishTurnEvent"
	REQ_SUBMIT_EVENT_ROLL = "SubmitEventRoll"
	REQ_SYNC_STATE        = "SyncState"
)

type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data"`
}

func TryUnwrapJoinGameRequest(wrapper RequestWrapper) *JoinGameRequest {
	if wrapper.ReqType != REQ_JOIN_GAME {
		return nil
	}

	var joinGameRequest JoinGameRequest

	err := json.Unmarshal(wrapper.Data, &joinGameRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap JoinGameRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &joinGameRequest
}

func TryUnwrapRollMovementRequest(wrapper RequestWrapper) *RollMovementRequest {
	if wrapper.ReqType != REQ_ROLL_MOVEMENT {
		return nil
	}

	var rollMovementRequest RollMovementRequest

	err := json.Unmarshal(wrapper.Data, &rollMovementRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap RollMovementRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &rollMovementRequest
}

func TryUnwrapBeginTurnEventRequest(wrapper RequestWrapper) *BeginTurnEventRequest {
	if wrapper.ReqType != REQ_BEGIN_TURN_EVENT {
		return nil
	}

	var beginTurnEventRequest BeginTurnEventRequest

	err := json.Unmarshal(wrapper.Data, &beginTurnEventRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap BeginTurnEventRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &beginTurnEventRequest
}

func TryUnwrapFinishTurnEventRequest(wrapper RequestWrapper) *FinishTurnEventRequest {
	if wrapper.ReqType != REQ_FINISH_TURN_EVENT {
		return nil
	}

	var finishTurnEventRequest FinishTurnEventRequest

	err := json.Unmarshal(wrapper.Data, &finishTurnEventRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap FinishTurnEventRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &finishTurnEventRequest
}

func TryUnwrapSubmitEventRollRequest(wrapper RequestWrapper) *SubmitEventRollRequest {
	if wrapper.ReqType != REQ_SUBMIT_EVENT_ROLL {
		return nil
	}

	var submitEventRollRequest SubmitEventRollRequest

	err := json.Unmarshal(wrapper.Data, &submitEventRollRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap SubmitEventRollRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &submitEventRollRequest
}

func TryUnwrapSyncStateRequest(wrapper RequestWrapper) *SyncStateRequest {
	if wrapper.ReqType != REQ_SYNC_STATE {
		return nil
	}

	var syncStateRequest SyncStateRequest

	err := json.Unmarshal(wrapper.Data, &syncStateRequest)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap SyncStateRequest",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &syncStateRequest
}

// 响应类型
const (
	RESP_ERROR = "Error"

	RESP_JOINED            = "Joined"
	RESP_PLAYER_JOINED     = "PlayerJoined"
	RESP_PLAYER_LEFT       = "PlayerLeft"
	RESP_STATE_UPDATED     = "StateUpdated"
	RESP_DICE_ROLLED       = "DiceRolled"
	RESP_TURN_BEGAN        = "TurnBegan"
	RESP_TURN_ENDED        = "TurnEnded"
	RESP_EVENT_DICE_ROLLED = "EventDiceRolled"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data"`
	ErrMsg   string `json:"error_message,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapErrResponse(errMsg string) ResponseWrapper {
	return ResponseWrapper{
		RespType: RESP_ERROR,
		ErrMsg:   errMsg,
	}
}
