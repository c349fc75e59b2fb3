package game

// advanceTurn 在存活玩家中选出下一个行动者
// 扫描过程中遇到跳过计数的候选人会被消耗一次计数并继续扫描
// 如果一圈内所有候选人都在跳过，则无条件指定下一位以保证推进
// （此时该玩家的计数可能刚好在本轮被减到零，这是有意保留的边界行为）
// 调用方必须持有会话锁
func (s *Session) advanceTurn() {
	alive := s.alivePlayers()
	if len(alive) == 0 {
		s.ActiveTurnPlayerID = ""
		return
	}

	holderIdx := 0

	for i, p := range alive {
		if p.ID == s.ActiveTurnPlayerID {
			holderIdx = i
			break
		}
	}

	for i := 1; i <= len(alive); i++ {
		candidate := alive[(holderIdx+i)%len(alive)]

		if candidate.TurnsToSkip > 0 {
			candidate.TurnsToSkip--
			continue
		}

		s.ActiveTurnPlayerID = candidate.ID

		return
	}

	s.ActiveTurnPlayerID = alive[(holderIdx+1)%len(alive)].ID
}

// finishResolution 在一次事件结算（Fixed 或屏障清空）收尾时统一处理回合归属
// 重复回合标记只在原行动者仍然存活时生效，死亡的持有者无法再掷骰
func (s *Session) finishResolution(repeat bool) {
	s.IsTurnInProgress = false

	if repeat {
		if holder := s.findByID(s.ActiveTurnPlayerID); holder != nil && !holder.IsDead {
			return
		}
	}

	s.advanceTurn()
}
