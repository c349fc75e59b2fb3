package game

import (
	"sort"

	"feudopoly-be/internal/service/dto"
)

// snapshotLocked 在持锁状态下构建一致的会话快照
func (s *Session) snapshotLocked() dto.GameState {
	players := make([]dto.Player, 0, len(s.Players))

	for _, p := range s.Players {
		players = append(players, dto.Player{
			ID:          p.ID,
			Name:        p.Name,
			IsMan:       p.IsMan,
			IsMuslim:    p.IsMuslim,
			Position:    p.Position,
			IsConnected: p.IsConnected,
			IsDead:      p.IsDead,
			TurnsToSkip: p.TurnsToSkip,
		})
	}

	state := dto.GameState{
		SessionID:          s.ID,
		Players:            players,
		ActiveTurnPlayerID: s.ActiveTurnPlayerID,
		LastRollValue:      s.LastRollValue,
		IsTurnInProgress:   s.IsTurnInProgress,
	}

	if barrier := s.PendingEventRoll; barrier != nil {
		required := make([]string, 0, len(barrier.Required))
		for id := range barrier.Required {
			required = append(required, id)
		}
		sort.Strings(required)

		resolved := make([]string, 0, len(barrier.Resolved))
		for _, entry := range barrier.Resolved {
			resolved = append(resolved, entry.PlayerID)
		}

		state.PendingEventRoll = &dto.PendingEventRoll{
			EventID:           barrier.Event.ID,
			RequiredPlayerIDs: required,
			ResolvedPlayerIDs: resolved,
			RepeatTurn:        barrier.RepeatTurn,
		}
	}

	return state
}

// Snapshot 是 Sync 操作的只读入口
func (s *Session) Snapshot() dto.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func outcomeInfo(outcome Outcome, target, text string) dto.OutcomeInfo {
	info := dto.OutcomeInfo{Target: target, Text: text}

	switch o := outcome.(type) {
	case OutcomeNone:
		info.Kind = dto.OUTCOME_NONE
	case MoveByOffset:
		info.Kind = dto.OUTCOME_MOVE_BY_OFFSET
		info.MoveOffset = o.Offset
	case MoveToCell:
		info.Kind = dto.OUTCOME_MOVE_TO_CELL
		cell := o.Cell
		info.MoveToCell = &cell
	case RepeatTurn:
		info.Kind = dto.OUTCOME_REPEAT_TURN
	case SkipTurns:
		info.Kind = dto.OUTCOME_SKIP_TURNS
		info.SkipTurns = o.Turns
	case Eliminate:
		info.Kind = dto.OUTCOME_ELIMINATE
	}

	return info
}

func (ev *CellEvent) ToDto() dto.CellEvent {
	out := dto.CellEvent{
		ID:             ev.ID,
		Cell:           ev.Cell,
		Title:          ev.Title,
		Description:    ev.Description,
		DictorSpeech:   ev.DictorSpeech,
		ResolutionMode: ev.ResolutionMode,
	}

	for _, entry := range ev.FixedOutcomes {
		out.FixedOutcomes = append(out.FixedOutcomes, outcomeInfo(entry.Outcome, entry.Target, entry.Text))
	}

	for _, entry := range ev.RollOutcomes {
		out.RollOutcomes = append(out.RollOutcomes, dto.RollOutcomeInfo{
			ResultKind: entry.ResultKind,
			From:       entry.From,
			To:         entry.To,
			Outcome:    outcomeInfo(entry.Outcome, entry.Target, entry.Text),
		})
	}

	return out
}
