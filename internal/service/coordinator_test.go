package service

import (
	"testing"
	"time"

	"feudopoly-be/internal/service/game"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *SessionService {
	t.Helper()

	svc := NewSessionService(time.Minute)
	t.Cleanup(svc.Close)

	return svc
}

func joinReq(sessionID, name string) *game.JoinGameRequest {
	return &game.JoinGameRequest{
		SessionID:   sessionID,
		DisplayName: name,
		IsMan:       true,
	}
}

// drainTypes 取出通道里已有的全部响应类型
func drainTypes(ch chan game.ResponseWrapper) []string {
	types := make([]string, 0, len(ch))

	for {
		select {
		case resp := <-ch:
			types = append(types, resp.RespType)
		default:
			return types
		}
	}
}

func TestCreateSession_RegistersEmptySession(t *testing.T) {
	svc := newTestService(t)

	created := svc.CreateSession()
	require.NotEmpty(t, created.SessionID)

	session, err := svc.lookup(created.SessionID)
	require.NoError(t, err)
	require.Equal(t, 0, session.PlayerCount())
}

func TestEventTableDto_ReturnsFullTable(t *testing.T) {
	svc := newTestService(t)

	events := svc.EventTableDto()
	require.Len(t, events, game.BOARD_CELLS_COUNT-1)
}

func TestJoinGame_RequiresSessionID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.JoinGame(joinReq("", "Alice"), "conn-1", nil)
	require.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestJoinGame_CreatesSessionOnDemandAndFansOut(t *testing.T) {
	svc := newTestService(t)

	aliceCh := make(chan game.ResponseWrapper, 8)
	bobCh := make(chan game.ResponseWrapper, 8)

	alice, err := svc.JoinGame(joinReq("room-1", "Alice"), "conn-alice", aliceCh)
	require.NoError(t, err)
	require.NotEmpty(t, alice)

	// 首位加入者收到 Joined 和状态快照
	require.Equal(t,
		[]string{game.RESP_JOINED, game.RESP_STATE_UPDATED},
		drainTypes(aliceCh),
	)

	_, err = svc.JoinGame(joinReq("room-1", "Bob"), "conn-bob", bobCh)
	require.NoError(t, err)

	// 在场玩家收到 PlayerJoined 通知，新玩家收到 Joined
	require.Equal(t,
		[]string{game.RESP_PLAYER_JOINED, game.RESP_STATE_UPDATED},
		drainTypes(aliceCh),
	)
	require.Equal(t,
		[]string{game.RESP_JOINED, game.RESP_STATE_UPDATED},
		drainTypes(bobCh),
	)

	session, err := svc.lookup("room-1")
	require.NoError(t, err)
	require.Equal(t, 2, session.PlayerCount())
}

func TestJoinGame_RejectsFifthPlayer(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := svc.JoinGame(joinReq("room-1", name), "conn-"+name, nil)
		require.NoError(t, err)
	}

	_, err := svc.JoinGame(joinReq("room-1", "e"), "conn-e", nil)
	require.ErrorIs(t, err, game.ErrSessionFull)
}

func TestSyncState_UnicastsSnapshot(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.JoinGame(joinReq("room-1", "Alice"), "conn-alice", nil)
	require.NoError(t, err)

	respCh := make(chan game.ResponseWrapper, 8)

	require.NoError(t, svc.SyncState("room-1", respCh))
	require.Equal(t, []string{game.RESP_STATE_UPDATED}, drainTypes(respCh))

	require.ErrorIs(t, svc.SyncState("no-such-room", respCh), game.ErrSessionNotFound)
}

func TestRollMovement_BroadcastsDiceAndState(t *testing.T) {
	svc := newTestService(t)

	aliceCh := make(chan game.ResponseWrapper, 8)

	_, err := svc.JoinGame(joinReq("room-1", "Alice"), "conn-alice", aliceCh)
	require.NoError(t, err)

	drainTypes(aliceCh)

	require.NoError(t, svc.RollMovement("room-1", "conn-alice"))
	require.Equal(t,
		[]string{game.RESP_DICE_ROLLED, game.RESP_STATE_UPDATED},
		drainTypes(aliceCh),
	)
}

func TestDisconnect_LastPlayerDestroysSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.JoinGame(joinReq("room-1", "Alice"), "conn-alice", nil)
	require.NoError(t, err)

	svc.Disconnect("room-1", "conn-alice")

	_, err = svc.lookup("room-1")
	require.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestDisconnect_SurvivorsKeepSession(t *testing.T) {
	svc := newTestService(t)

	bobCh := make(chan game.ResponseWrapper, 8)

	_, err := svc.JoinGame(joinReq("room-1", "Alice"), "conn-alice", nil)
	require.NoError(t, err)
	_, err = svc.JoinGame(joinReq("room-1", "Bob"), "conn-bob", bobCh)
	require.NoError(t, err)

	drainTypes(bobCh)

	svc.Disconnect("room-1", "conn-alice")

	require.Equal(t,
		[]string{game.RESP_PLAYER_LEFT, game.RESP_STATE_UPDATED},
		drainTypes(bobCh),
	)

	session, err := svc.lookup("room-1")
	require.NoError(t, err)
	require.Equal(t, 1, session.PlayerCount())
}

// 通道写满时广播必须丢弃而不是阻塞协调器
func TestBroadcast_FullChannelDoesNotBlock(t *testing.T) {
	svc := newTestService(t)

	fullCh := make(chan game.ResponseWrapper)

	_, err := svc.JoinGame(joinReq("room-1", "Alice"), "conn-alice", fullCh)
	require.NoError(t, err)

	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = svc.RollMovement("room-1", "conn-alice")
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("broadcast blocked on a full channel")
	}
}
