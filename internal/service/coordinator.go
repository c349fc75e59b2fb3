package service

import (
	"sync"
	"time"

	"feudopoly-be/internal/service/dto"
	"feudopoly-be/internal/service/game"

	"go.uber.org/zap"
)

// 预留但一直没人加入的会话在宽限期后被清理
// 有人加入过的会话在最后一名玩家离开时立即销毁，不等清理循环
const DEFAULT_SESSION_EMPTY_GRACE = 5 * time.Minute

// SessionService 是协调器：管理会话注册表，把入站调用派发到对应的会话，
// 并在会话锁释放后把产生的通知扇出给整组连接
type SessionService struct {
	state  *sessionServiceState
	events *game.EventTable
}

type sessionServiceState struct {
	mu sync.RWMutex

	// 从会话 ID 到会话实体的映射
	sessions map[string]*game.Session

	emptyGrace  time.Duration
	cleanUpDone chan struct{}
}

func NewSessionService(emptyGrace time.Duration) *SessionService {
	if emptyGrace <= 0 {
		emptyGrace = DEFAULT_SESSION_EMPTY_GRACE
	}

	state := &sessionServiceState{
		sessions:    make(map[string]*game.Session),
		emptyGrace:  emptyGrace,
		cleanUpDone: make(chan struct{}),
	}

	// 启动一个 goroutine 定期清理从未被使用的会话
	go startCleanupLoop(state)

	return &SessionService{
		state:  state,
		events: game.NewEventTable(),
	}
}

func startCleanupLoop(state *sessionServiceState) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-state.cleanUpDone:
			return

		case <-ticker.C:
			state.mu.Lock()

			for sessionID, session := range state.sessions {
				if session.PlayerCount() == 0 && time.Since(session.CreatedAt) > state.emptyGrace {
					zap.S().Infof("会话 %s 长期无人加入，开始清理", sessionID)

					delete(state.sessions, sessionID)
				}
			}

			state.mu.Unlock()
		}
	}
}

func (ss *SessionService) Close() {
	close(ss.state.cleanUpDone)
}

// CreateSession 预留一个空会话 ID，供客户端分享给同伴
func (ss *SessionService) CreateSession() dto.CreateSessionResponse {
	sessionID := game.ShortID()

	ss.state.mu.Lock()
	ss.state.sessions[sessionID] = game.NewSession(sessionID, ss.events)
	ss.state.mu.Unlock()

	zap.S().Infof("会话 %s 已创建", sessionID)

	return dto.CreateSessionResponse{SessionID: sessionID}
}

// EventTableDto 返回完整的事件表，供客户端预加载文案
func (ss *SessionService) EventTableDto() []dto.CellEvent {
	all := ss.events.All()

	out := make([]dto.CellEvent, 0, len(all))
	for _, ev := range all {
		out = append(out, ev.ToDto())
	}

	return out
}

// JoinGame 定位（必要时创建）会话并把玩家加入
// 整个过程持有注册表锁，防止与空会话清理竞态
func (ss *SessionService) JoinGame(req *game.JoinGameRequest, connectionID string, respCh chan game.ResponseWrapper) (string, error) {
	if req.SessionID == "" {
		return "", game.ErrSessionNotFound
	}

	ss.state.mu.Lock()

	session, ok := ss.state.sessions[req.SessionID]
	if !ok {
		session = game.NewSession(req.SessionID, ss.events)
		ss.state.sessions[req.SessionID] = session
	}

	result, err := session.Join(connectionID, req.DisplayName, req.IsMan, req.IsMuslim, respCh)

	ss.state.mu.Unlock()

	if err != nil {
		zap.S().Warnf("会话 %s 拒绝 %s 加入：%v", req.SessionID, req.DisplayName, err)
		return "", err
	}

	zap.S().Infof("会话 %s 接纳玩家 %s(%s)", req.SessionID, req.DisplayName, result.PlayerID)

	for _, ch := range session.Fanout() {
		if ch == respCh {
			unicast(ch, game.WrapResponse(game.RESP_JOINED, game.JoinedResponse{
				PlayerID: result.PlayerID,
				State:    result.State,
			}))
		} else {
			unicast(ch, game.WrapResponse(game.RESP_PLAYER_JOINED, game.PlayerJoinedResponse{
				State: result.State,
			}))
		}
	}

	ss.broadcastState(session, result.State)

	return result.PlayerID, nil
}

func (ss *SessionService) RollMovement(sessionID, connectionID string) error {
	session, err := ss.lookup(sessionID)
	if err != nil {
		return err
	}

	result, err := session.RollMovement(connectionID)
	if err != nil {
		return err
	}

	zap.L().Info(
		"玩家掷出移动骰子",
		zap.String("session_id", sessionID),
		zap.String("player_id", result.PlayerID),
		zap.Int("roll_value", result.RollValue),
		zap.Int("new_position", result.NewPosition),
	)

	broadcast(session.Fanout(), game.WrapResponse(game.RESP_DICE_ROLLED, game.DiceRolledResponse{
		PlayerID:    result.PlayerID,
		RollValue:   result.RollValue,
		NewPosition: result.NewPosition,
	}))

	ss.broadcastState(session, result.State)

	return nil
}

func (ss *SessionService) BeginTurnEvent(sessionID, connectionID string, respCh chan game.ResponseWrapper) error {
	session, err := ss.lookup(sessionID)
	if err != nil {
		return err
	}

	event, state, err := session.BeginTurnEvent(connectionID)
	if err != nil {
		return err
	}

	zap.L().Info(
		"回合事件开始",
		zap.String("session_id", sessionID),
		zap.Int("cell", event.Cell),
		zap.String("event_title", event.Title),
	)

	unicast(respCh, game.WrapResponse(game.RESP_TURN_BEGAN, game.TurnBeganResponse{Event: event}))

	ss.broadcastState(session, state)

	return nil
}

func (ss *SessionService) FinishTurnEvent(sessionID, connectionID, chosenPlayerID string) error {
	session, err := ss.lookup(sessionID)
	if err != nil {
		return err
	}

	result, err := session.FinishTurnEvent(connectionID, chosenPlayerID)
	if err != nil {
		return err
	}

	if result.BarrierInstalled {
		zap.L().Info(
			"事件骰子屏障已安装",
			zap.String("session_id", sessionID),
			zap.Strings("required_player_ids", result.State.PendingEventRoll.RequiredPlayerIDs),
		)
	} else {
		broadcast(session.Fanout(), game.WrapResponse(game.RESP_TURN_ENDED, game.TurnEndedResponse{
			Resolution: *result.Resolution,
		}))
	}

	ss.broadcastState(session, result.State)

	return nil
}

func (ss *SessionService) SubmitEventRoll(sessionID, connectionID string) error {
	session, err := ss.lookup(sessionID)
	if err != nil {
		return err
	}

	result, err := session.SubmitEventRoll(connectionID)
	if err != nil {
		return err
	}

	chs := session.Fanout()

	broadcast(chs, game.WrapResponse(game.RESP_EVENT_DICE_ROLLED, game.EventDiceRolledResponse{
		PlayerID:  result.PlayerID,
		RollValue: result.RollValue,
		Outcome:   result.Outcome,
	}))

	if result.Completed {
		zap.L().Info(
			"事件骰子屏障已清空，回合结算完成",
			zap.String("session_id", sessionID),
			zap.Bool("repeat_turn", result.Resolution.RepeatTurn),
		)

		broadcast(chs, game.WrapResponse(game.RESP_TURN_ENDED, game.TurnEndedResponse{
			Resolution: *result.Resolution,
		}))
	}

	ss.broadcastState(session, result.State)

	return nil
}

func (ss *SessionService) SyncState(sessionID string, respCh chan game.ResponseWrapper) error {
	session, err := ss.lookup(sessionID)
	if err != nil {
		return err
	}

	unicast(respCh, game.WrapResponse(game.RESP_STATE_UPDATED, session.Snapshot()))

	return nil
}

// Disconnect 无条件移除对应连接的玩家，并兜底推进被卡住的回合或屏障
func (ss *SessionService) Disconnect(sessionID, connectionID string) {
	session, err := ss.lookup(sessionID)
	if err != nil {
		return
	}

	result := session.Disconnect(connectionID)
	if !result.Removed {
		return
	}

	zap.S().Infof("会话 %s 玩家 %s 已断开", sessionID, result.PlayerID)

	chs := session.Fanout()

	broadcast(chs, game.WrapResponse(game.RESP_PLAYER_LEFT, game.PlayerLeftResponse{
		PlayerID: result.PlayerID,
	}))

	if result.Resolution != nil {
		broadcast(chs, game.WrapResponse(game.RESP_TURN_ENDED, game.TurnEndedResponse{
			Resolution: *result.Resolution,
		}))
	}

	ss.broadcastState(session, result.State)

	if result.Empty {
		ss.removeSessionIfEmpty(sessionID)
	}
}

func (ss *SessionService) lookup(sessionID string) (*game.Session, error) {
	ss.state.mu.RLock()
	session, ok := ss.state.sessions[sessionID]
	ss.state.mu.RUnlock()

	if !ok {
		return nil, game.ErrSessionNotFound
	}

	return session, nil
}

// removeSessionIfEmpty 在注册表写锁内重新检查空置状态
// 防止"变空"与"新玩家加入"之间的竞态误删活跃会话
func (ss *SessionService) removeSessionIfEmpty(sessionID string) {
	ss.state.mu.Lock()
	defer ss.state.mu.Unlock()

	session, ok := ss.state.sessions[sessionID]
	if !ok {
		return
	}

	if session.PlayerCount() == 0 {
		delete(ss.state.sessions, sessionID)

		zap.S().Infof("会话 %s 已无玩家，销毁", sessionID)
	}
}

func (ss *SessionService) broadcastState(session *game.Session, state any) {
	broadcast(session.Fanout(), game.WrapResponse(game.RESP_STATE_UPDATED, state))
}

func broadcast(chs []chan game.ResponseWrapper, resp game.ResponseWrapper) {
	for _, ch := range chs {
		unicast(ch, resp)
	}
}

func unicast(ch chan game.ResponseWrapper, resp game.ResponseWrapper) {
	select {
	case ch <- resp:
	default:
		zap.L().Warn(
			"发送响应失败：玩家响应通道已满",
			zap.String("resp_type", resp.RespType),
		)
	}
}
