package main

import (
	"time"

	"feudopoly-be/internal/api/http"
	"feudopoly-be/internal/config"
	"feudopoly-be/internal/logger"
	"feudopoly-be/internal/service"
	"feudopoly-be/internal/state"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)

	// 组装应用状态
	appState := state.NewAppState(
		cfg,
		service.NewSessionService(time.Duration(cfg.SessionGraceMinutes)*time.Minute),
	)

	// 启动服务器
	http.RunServer(appState)
}
