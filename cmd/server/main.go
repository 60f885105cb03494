package main

import (
	"github.com/rs/zerolog/log"

	"github.com/thetateman/trvke-chat/internal/config"
	clog "github.com/thetateman/trvke-chat/internal/log"
	"github.com/thetateman/trvke-chat/internal/server"
	"github.com/thetateman/trvke-chat/internal/upload"
	"github.com/thetateman/trvke-chat/internal/ws"
)

func main() {
	// main 函数负责加载配置、初始化日志并启动 Gin 服务。
	cfg := config.Load()
	clog.Init(cfg.Env)
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("config validate")
	}

	up, err := upload.NewService(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("init upload dir")
	}

	hub := ws.NewHub()
	r := server.SetupRouter(cfg, hub, up)
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
