package websocket

import (
	"encoding/json"
	"errors"
	"time"

	"feudopoly-be/internal/service"
	"feudopoly-be/internal/service/game"
	"feudopoly-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

func JoinGame(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		conn.SetPongHandler(heartbeatHandler(conn))

		clientIP := ctx.RemoteAddr()

		// 每条连接一个标识，断线重连会拿到新的
		connectionID := game.ShortID()

		// 缓冲响应通道，广播端非阻塞发送
		respCh := make(chan game.ResponseWrapper, 64)

		// 读取首次请求，必须是 JoinGame
		_, msg, err := conn.ReadMessage()
		if err != nil {
			zap.L().Error(
				"读取首次请求失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			return
		}

		var wrapper game.RequestWrapper

		if err := json.Unmarshal(msg, &wrapper); err != nil {
			zap.L().Error(
				"解析首次请求失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)

			return
		}

		joinReq := game.TryUnwrapJoinGameRequest(wrapper)
		if joinReq == nil {
			zap.L().Error(
				"首次请求不是JoinGame类型",
				zap.String("client_ip", clientIP),
				zap.Any("wrapper", wrapper),
			)

			conn.WriteJSON(game.WrapErrResponse("首次请求必须是 JoinGame"))

			return
		}

		playerID, err := appState.SessionSvc.JoinGame(joinReq, connectionID, respCh)
		if err != nil {
			zap.L().Warn(
				"加入会话失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)

			conn.WriteJSON(game.WrapErrResponse(err.Error()))

			return
		}

		sessionID := joinReq.SessionID

		zap.L().Info(
			"玩家成功加入会话",
			zap.String("client_ip", clientIP),
			zap.String("session_id", sessionID),
			zap.String("player_id", playerID),
		)

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})
		defer close(writeDoneCh)

		// 写入协程
		go func() {
			ticker := time.NewTicker(HEARTBEAT_INTERVAL)
			defer ticker.Stop()

			for {
				select {
				case <-writeDoneCh:
					zap.L().Info(
						"WebSocket写入协程退出",
						zap.String("client_ip", clientIP),
					)
					return

				case <-ticker.C:
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						zap.L().Error(
							"发送心跳失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

					conn.SetWriteDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))

				case resp := <-respCh:
					if err := conn.WriteJSON(resp); err != nil {
						zap.L().Error(
							"发送消息失败",
							zap.String("client_ip", clientIP),
							zap.Error(err),
						)
						return
					}

					zap.L().Debug(
						"发送消息",
						zap.String("client_ip", clientIP),
						zap.Any("response", resp),
					)
				}
			}
		}()

		// 读取协程（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			var wrapper game.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Error(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				respCh <- game.WrapErrResponse("无效的请求格式")

				continue
			}

			if err := dispatch(appState.SessionSvc, connectionID, respCh, wrapper); err != nil {
				// 回合顺序错误是高频的预期情况，只回给调用者，不动任何状态
				zap.L().Debug(
					"请求被拒绝",
					zap.String("client_ip", clientIP),
					zap.String("request_type", wrapper.ReqType),
					zap.Error(err),
				)

				respCh <- game.WrapErrResponse(err.Error())
			}
		}

		// 读循环退出，表示客户端断开连接，由协调器兜底清理
		zap.L().Info(
			"客户端连接断开，移除玩家",
			zap.String("client_ip", clientIP),
			zap.String("session_id", sessionID),
			zap.String("player_id", playerID),
		)

		appState.SessionSvc.Disconnect(sessionID, connectionID)
	}
}

// dispatch 把入站请求派发到协调器对应的操作
func dispatch(
	svc *service.SessionService,
	connectionID string,
	respCh chan game.ResponseWrapper,
	wrapper game.RequestWrapper,
) error {
	switch wrapper.ReqType {
	case game.REQ_JOIN_GAME:
		return errors.New("当前连接已加入会话")

	case game.REQ_ROLL_MOVEMENT:
		req := game.TryUnwrapRollMovementRequest(wrapper)
		if req == nil {
			return errors.New("无效的请求格式")
		}

		return svc.RollMovement(req.SessionID, connectionID)

	case game.REQ_BEGIN_TURN_EVENT:
		req := game.TryUnwrapBeginTurnEventRequest(wrapper)
		if req == nil {
			return errors.New("无效的请求格式")
		}

		return svc.BeginTurnEvent(req.SessionID, connectionID, respCh)

	case game.REQ_FINISH_TURN_EVENT:
		req := game.TryUnwrapFinishTurnEventRequest(wrapper)
		if req == nil {
			return errors.New("无效的请求格式")
		}

		return svc.FinishTurnEvent(req.SessionID, connectionID, req.ChosenPlayerID)

	case game.REQ_SUBMIT_EVENT_ROLL:
		req := game.TryUnwrapSubmitEventRollRequest(wrapper)
		if req == nil {
			return errors.New("无效的请求格式")
		}

		return svc.SubmitEventRoll(req.SessionID, connectionID)

	case game.REQ_SYNC_STATE:
		req := game.TryUnwrapSyncStateRequest(wrapper)
		if req == nil {
			return errors.New("无效的请求格式")
		}

		return svc.SyncState(req.SessionID, respCh)
	}

	return errors.New("不支持的请求类型")
}
