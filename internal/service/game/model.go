package game

import (
	"sync"
	"time"
)

const (
	// 棋盘格子总数，玩家位置始终在 [0, BOARD_CELLS_COUNT) 内循环
	BOARD_CELLS_COUNT = 30
	// 一局游戏最多支持 4 名玩家
	MAX_PLAYERS = 4
)

type Player struct {
	// 当前 WebSocket 连接的标识，断线重连后会变成新的连接
	ConnectionID string `json:"-"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsMan        bool   `json:"is_man"`
	IsMuslim     bool   `json:"is_muslim"`
	Position     int    `json:"position"`
	IsConnected  bool   `json:"is_connected"`
	// 死亡是终态，死亡的玩家不再参与轮转和事件结算
	IsDead      bool `json:"is_dead"`
	TurnsToSkip int  `json:"turns_to_skip"`

	RespCh chan ResponseWrapper `json:"-"`
}

// Session 是一场对局的全部状态
// 所有字段的读写都必须持有 mu，出站通知必须在释放锁之后发送
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	// 共享的只读事件表
	events *EventTable

	// 插入顺序即轮转顺序，移除玩家时列表原地收缩
	Players []*Player

	ActiveTurnPlayerID string
	LastRollValue      int
	IsTurnInProgress   bool

	// 仅在 Roll 类事件结算期间存在
	PendingEventRoll *RollBarrier
}

// RollBarrier 跟踪哪些玩家还欠一次事件骰子
// Required 为空的瞬间屏障即被拆除，绝不悬挂
type RollBarrier struct {
	Event      *CellEvent
	Required   map[string]struct{}
	Resolved   []ResolvedEntry
	RepeatTurn bool
}

type ResolvedEntry struct {
	PlayerID string
	Roll     int
	Outcome  Outcome
	Target   string
	Text     string
}

func NewSession(sessionID string, events *EventTable) *Session {
	return &Session{
		ID:        sessionID,
		CreatedAt: time.Now(),
		events:    events,
		Players:   make([]*Player, 0, MAX_PLAYERS),
	}
}

func (s *Session) findByConnection(connectionID string) *Player {
	for _, p := range s.Players {
		if p.ConnectionID == connectionID {
			return p
		}
	}

	return nil
}

func (s *Session) findByID(playerID string) *Player {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p
		}
	}

	return nil
}

func (s *Session) alivePlayers() []*Player {
	alive := make([]*Player, 0, len(s.Players))

	for _, p := range s.Players {
		if !p.IsDead {
			alive = append(alive, p)
		}
	}

	return alive
}

func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.Players)
}

// Fanout 复制一份当前所有玩家的响应通道
// 调用方在锁外用它进行广播，成员变动与广播之间的竞态与组播语义一致
func (s *Session) Fanout() []chan ResponseWrapper {
	s.mu.Lock()
	defer s.mu.Unlock()

	chs := make([]chan ResponseWrapper, 0, len(s.Players))

	for _, p := range s.Players {
		if p.RespCh != nil {
			chs = append(chs, p.RespCh)
		}
	}

	return chs
}
