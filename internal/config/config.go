package config

import (
	"errors"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Env         string
	UploadDir   string
	MaxUploadMB int
	WebDir      string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	port := getenv("APP_PORT", "8080")
	env := getenv("APP_ENV", "dev")
	uploadDir := getenv("UPLOAD_DIR", "./uploads")
	webDir := getenv("WEB_DIR", "./web")
	maxUploadStr := getenv("MAX_UPLOAD_MB", "300")
	maxUpload, _ := strconv.Atoi(maxUploadStr)
	if maxUpload <= 0 {
		maxUpload = 300
	}
	return Config{
		Port:        port,
		Env:         env,
		UploadDir:   uploadDir,
		MaxUploadMB: maxUpload,
		WebDir:      webDir,
	}
}

// Validate 在启动前做一次基础自检,拒绝明显不可用的配置。
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return errors.New("port must not be empty")
	}
	if cfg.UploadDir == "" {
		return errors.New("upload dir must not be empty")
	}
	if cfg.MaxUploadMB <= 0 {
		return errors.New("max upload size must be positive")
	}
	return nil
}
