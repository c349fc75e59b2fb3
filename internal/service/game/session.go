package game

import (
	"strings"

	"feudopoly-be/internal/service/dto"
	"go.uber.org/zap"
)

// 每个操作都在会话自身的互斥锁下原子执行
// 锁只保护状态变更，任何出站 I/O 都发生在锁释放之后，
// 因此所有操作在返回值里带出一份持锁期间构建的一致快照

type JoinResult struct {
	PlayerID string
	State    dto.GameState
}

type MovementRoll struct {
	PlayerID    string
	RollValue   int
	NewPosition int
	State       dto.GameState
}

type TurnEventResult struct {
	// 屏障被安装时 Resolution 为 nil，结算要等所有必掷玩家交齐骰子
	Resolution       *dto.TurnResolution
	BarrierInstalled bool
	State            dto.GameState
}

type EventRoll struct {
	PlayerID  string
	RollValue int
	Outcome   dto.OutcomeInfo
	// 本次提交恰好清空屏障时为 true，此时 Resolution 非空
	Completed  bool
	Resolution *dto.TurnResolution
	State      dto.GameState
}

type DisconnectResult struct {
	Removed  bool
	PlayerID string
	// 离开的玩家恰好是屏障里最后一个欠骰子的人时，结算随之完成
	Resolution *dto.TurnResolution
	Empty      bool
	State      dto.GameState
}

func (s *Session) Join(connectionID, displayName string, isMan, isMuslim bool, respCh chan ResponseWrapper) (JoinResult, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return JoinResult{}, ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Players) >= MAX_PLAYERS {
		return JoinResult{}, ErrSessionFull
	}

	player := &Player{
		ConnectionID: connectionID,
		ID:           ShortID(),
		Name:         displayName,
		IsMan:        isMan,
		IsMuslim:     isMuslim,
		Position:     0,
		IsConnected:  true,
		RespCh:       respCh,
	}

	s.Players = append(s.Players, player)

	return JoinResult{
		PlayerID: player.ID,
		State:    s.snapshotLocked(),
	}, nil
}

func (s *Session) RollMovement(connectionID string) (MovementRoll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.findByConnection(connectionID)
	if caller == nil {
		return MovementRoll{}, ErrNotInSession
	}

	if caller.IsDead {
		return MovementRoll{}, ErrPlayerDead
	}

	// 首次掷骰时才指定行动者，与加入顺序一致
	if s.ActiveTurnPlayerID == "" {
		if alive := s.alivePlayers(); len(alive) > 0 {
			s.ActiveTurnPlayerID = alive[0].ID
		}
	}

	if caller.ID != s.ActiveTurnPlayerID {
		return MovementRoll{}, ErrNotYourTurn
	}

	if s.IsTurnInProgress {
		return MovementRoll{}, ErrTurnInProgress
	}

	// 跳过计数只由轮转算法递减，这里只检查不消耗
	if caller.TurnsToSkip > 0 {
		return MovementRoll{}, &MustSkipTurnError{TurnsToSkip: caller.TurnsToSkip}
	}

	rolled := rollDice()

	s.LastRollValue = rolled
	caller.Position = normalizePosition(caller.Position + rolled)
	s.IsTurnInProgress = true

	return MovementRoll{
		PlayerID:    caller.ID,
		RollValue:   rolled,
		NewPosition: caller.Position,
		State:       s.snapshotLocked(),
	}, nil
}

func (s *Session) BeginTurnEvent(connectionID string) (dto.CellEvent, dto.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := s.checkTurnEventPreconditions(connectionID)
	if err != nil {
		return dto.CellEvent{}, dto.GameState{}, err
	}

	ev, ok := s.events.Lookup(caller.Position)
	if !ok {
		zap.L().Error(
			"事件表缺少该格子的配置",
			zap.String("session_id", s.ID),
			zap.Int("cell", caller.Position),
		)

		return dto.CellEvent{}, dto.GameState{}, ErrEventNotConfigured
	}

	return ev.ToDto(), s.snapshotLocked(), nil
}

func (s *Session) FinishTurnEvent(connectionID, chosenPlayerID string) (TurnEventResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := s.checkTurnEventPreconditions(connectionID)
	if err != nil {
		return TurnEventResult{}, err
	}

	ev, ok := s.events.Lookup(caller.Position)
	if !ok {
		zap.L().Error(
			"事件表缺少该格子的配置",
			zap.String("session_id", s.ID),
			zap.Int("cell", caller.Position),
		)

		return TurnEventResult{}, ErrEventNotConfigured
	}

	if ev.ResolutionMode == MODE_FIXED {
		resolution := s.resolveFixedEvent(ev, caller, chosenPlayerID)

		return TurnEventResult{
			Resolution: resolution,
			State:      s.snapshotLocked(),
		}, nil
	}

	// Roll 模式：把事件表里声明过的所有目标组解析成一个去重的必掷集合
	required := make(map[string]struct{})

	for _, entry := range ev.RollOutcomes {
		for _, target := range s.resolveTargets(caller, entry.Target, chosenPlayerID) {
			required[target.ID] = struct{}{}
		}
	}

	// 没有任何存活玩家需要掷骰时立即空结算，回合照常移交
	if len(required) == 0 {
		s.finishResolution(false)

		return TurnEventResult{
			Resolution: &dto.TurnResolution{
				EventID: ev.ID,
				Cell:    ev.Cell,
				Entries: []dto.ResolvedOutcome{},
			},
			State: s.snapshotLocked(),
		}, nil
	}

	s.PendingEventRoll = &RollBarrier{
		Event:    ev,
		Required: required,
		Resolved: make([]ResolvedEntry, 0, len(required)),
	}

	return TurnEventResult{
		BarrierInstalled: true,
		State:            s.snapshotLocked(),
	}, nil
}

func (s *Session) SubmitEventRoll(connectionID string) (EventRoll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	barrier := s.PendingEventRoll
	if barrier == nil {
		return EventRoll{}, ErrNoEventPending
	}

	caller := s.findByConnection(connectionID)
	if caller == nil {
		return EventRoll{}, ErrNotInSession
	}

	if _, required := barrier.Required[caller.ID]; !required {
		for _, entry := range barrier.Resolved {
			if entry.PlayerID == caller.ID {
				return EventRoll{}, ErrAlreadyRolled
			}
		}

		return EventRoll{}, ErrNotRequiredToRoll
	}

	rolled := rollDice()

	entry, ok := barrier.Event.matchRoll(rolled)
	if !ok {
		zap.L().Error(
			"骰子点数未命中任何区间，事件区间配置不完整",
			zap.String("session_id", s.ID),
			zap.String("event_id", barrier.Event.ID),
			zap.Int("roll", rolled),
		)

		return EventRoll{}, ErrRollRangeNotCovered
	}

	// 结果只作用于掷骰者本人，重复回合标记跨所有参与者按位或累积
	applyOutcome(caller, entry.Outcome, &barrier.RepeatTurn)

	barrier.Resolved = append(barrier.Resolved, ResolvedEntry{
		PlayerID: caller.ID,
		Roll:     rolled,
		Outcome:  entry.Outcome,
		Target:   entry.Target,
		Text:     entry.Text,
	})

	delete(barrier.Required, caller.ID)

	result := EventRoll{
		PlayerID:  caller.ID,
		RollValue: rolled,
		Outcome:   outcomeInfo(entry.Outcome, entry.Target, entry.Text),
	}

	if len(barrier.Required) == 0 {
		s.PendingEventRoll = nil
		s.finishResolution(barrier.RepeatTurn)

		result.Completed = true
		result.Resolution = barrier.resolution()
	}

	result.State = s.snapshotLocked()

	return result, nil
}

func (s *Session) Disconnect(connectionID string) DisconnectResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.findByConnection(connectionID)
	if removed == nil {
		return DisconnectResult{
			Empty: len(s.Players) == 0,
			State: s.snapshotLocked(),
		}
	}

	for i, p := range s.Players {
		if p == removed {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			break
		}
	}

	result := DisconnectResult{
		Removed:  true,
		PlayerID: removed.ID,
	}

	// 离开的玩家不能把屏障永远卡住
	if barrier := s.PendingEventRoll; barrier != nil {
		if _, required := barrier.Required[removed.ID]; required {
			delete(barrier.Required, removed.ID)

			if len(barrier.Required) == 0 {
				s.PendingEventRoll = nil
				s.finishResolution(barrier.RepeatTurn)

				result.Resolution = barrier.resolution()
			}
		}
	}

	// 屏障仍在时回合归属和进行中标记都不动，等屏障清空再统一结算；
	// 没有屏障的持有者带着未结算的回合离开时，这一回合作废
	if result.Resolution == nil && s.PendingEventRoll == nil && s.ActiveTurnPlayerID == removed.ID {
		s.IsTurnInProgress = false
		s.advanceTurn()
	}

	result.Empty = len(s.Players) == 0
	result.State = s.snapshotLocked()

	return result
}

// checkTurnEventPreconditions 校验 BeginTurnEvent 与 FinishTurnEvent 共同的前置条件
// 调用方必须持有会话锁
func (s *Session) checkTurnEventPreconditions(connectionID string) (*Player, error) {
	caller := s.findByConnection(connectionID)
	if caller == nil {
		return nil, ErrNotInSession
	}

	if caller.ID != s.ActiveTurnPlayerID {
		return nil, ErrNotYourTurn
	}

	if !s.IsTurnInProgress {
		return nil, ErrTurnNotInProgress
	}

	if s.PendingEventRoll != nil {
		return nil, ErrEventPending
	}

	return caller, nil
}

// resolveFixedEvent 按声明顺序确定性地应用全部结算规则
// 调用方必须持有会话锁
func (s *Session) resolveFixedEvent(ev *CellEvent, current *Player, chosenPlayerID string) *dto.TurnResolution {
	resolution := &dto.TurnResolution{
		EventID: ev.ID,
		Cell:    ev.Cell,
		Entries: make([]dto.ResolvedOutcome, 0, len(ev.FixedOutcomes)),
	}

	repeat := false

	for _, entry := range ev.FixedOutcomes {
		for _, target := range s.resolveTargets(current, entry.Target, chosenPlayerID) {
			applyOutcome(target, entry.Outcome, &repeat)

			resolution.Entries = append(resolution.Entries, dto.ResolvedOutcome{
				PlayerID: target.ID,
				Outcome:  outcomeInfo(entry.Outcome, entry.Target, entry.Text),
			})
		}
	}

	resolution.RepeatTurn = repeat
	s.finishResolution(repeat)

	return resolution
}

func (b *RollBarrier) resolution() *dto.TurnResolution {
	entries := make([]dto.ResolvedOutcome, 0, len(b.Resolved))

	for _, entry := range b.Resolved {
		entries = append(entries, dto.ResolvedOutcome{
			PlayerID: entry.PlayerID,
			Roll:     entry.Roll,
			Outcome:  outcomeInfo(entry.Outcome, entry.Target, entry.Text),
		})
	}

	return &dto.TurnResolution{
		EventID:    b.Event.ID,
		Cell:       b.Event.Cell,
		Entries:    entries,
		RepeatTurn: b.RepeatTurn,
	}
}
