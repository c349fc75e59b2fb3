package http

import (
	"feudopoly-be/internal/state"

	"github.com/kataras/iris/v12"
)

// CreateSession 预留一个新的会话 ID
// 加入本身走 WebSocket，对未预留的 ID 同样按需创建会话
func CreateSession(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		resp := appState.SessionSvc.CreateSession()

		ctx.JSON(resp)
	}
}

// ListEvents 返回完整的格子事件表，客户端在进入棋盘前预加载文案
func ListEvents(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		ctx.JSON(appState.SessionSvc.EventTableDto())
	}
}
