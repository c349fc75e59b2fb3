package game

// normalizePosition 对正负偏移都做对称回绕，结果恒在 [0, BOARD_CELLS_COUNT) 内
func normalizePosition(p int) int {
	return ((p % BOARD_CELLS_COUNT) + BOARD_CELLS_COUNT) % BOARD_CELLS_COUNT
}

// resolveTargets 把目标组解析成具体的玩家集合，死亡玩家永远不会出现在结果中
// 调用方必须持有会话锁
func (s *Session) resolveTargets(current *Player, target string, chosenPlayerID string) []*Player {
	switch target {
	case TARGET_CURRENT_PLAYER:
		return []*Player{current}

	case TARGET_CHOSEN_PLAYER:
		if chosen := s.findByID(chosenPlayerID); chosen != nil && !chosen.IsDead {
			return []*Player{chosen}
		}

		// 未指定或指定无效时，按列表顺序取第一个其他存活玩家
		for _, p := range s.Players {
			if !p.IsDead && p.ID != current.ID {
				return []*Player{p}
			}
		}

		// 只剩自己一个存活玩家时，目标退化为自己
		return []*Player{current}

	case TARGET_ALL_PLAYERS:
		return s.alivePlayers()

	case TARGET_WOMEN:
		return s.filterAlive(func(p *Player) bool { return !p.IsMan })

	case TARGET_MUSLIMS:
		return s.filterAlive(func(p *Player) bool { return p.IsMuslim })

	case TARGET_NON_MUSLIMS:
		return s.filterAlive(func(p *Player) bool { return !p.IsMuslim })
	}

	return nil
}

func (s *Session) filterAlive(pred func(*Player) bool) []*Player {
	matched := make([]*Player, 0, len(s.Players))

	for _, p := range s.Players {
		if !p.IsDead && pred(p) {
			matched = append(matched, p)
		}
	}

	return matched
}

// applyOutcome 把单个结果作用到单个玩家上
// RepeatTurn 不改变玩家状态，只置位重复回合标记
func applyOutcome(p *Player, outcome Outcome, repeatFlag *bool) {
	if p.IsDead {
		return
	}

	switch o := outcome.(type) {
	case MoveByOffset:
		p.Position = normalizePosition(p.Position + o.Offset)

	case MoveToCell:
		p.Position = normalizePosition(o.Cell)

	case RepeatTurn:
		*repeatFlag = true

	case SkipTurns:
		if o.Turns > 0 {
			p.TurnsToSkip += o.Turns
		}

	case Eliminate:
		p.IsDead = true
	}
}
