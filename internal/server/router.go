package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/thetateman/trvke-chat/internal/config"
	"github.com/thetateman/trvke-chat/internal/metrics"
	"github.com/thetateman/trvke-chat/internal/mw"
	"github.com/thetateman/trvke-chat/internal/upload"
	"github.com/thetateman/trvke-chat/internal/ws"
)

// SetupRouter 统一初始化 Gin 中间件、HTTP 接口与 WebSocket 端点。
func SetupRouter(cfg config.Config, hub *ws.Hub, up *upload.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(mw.CORS(cfg.Env))
	r.Use(mw.RateLimit(rate.Every(time.Second/20), 40))

	h := NewHandler(up)

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	maxBytes := int64(cfg.MaxUploadMB) << 20
	r.POST("/upload", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		h.Upload(c)
	})

	r.GET("/ws", ws.Serve(hub))
	r.Static(strings.TrimSuffix(upload.URLPrefix, "/"), up.Dir())

	// 静态 web 客户端,未匹配的 GET 走文件,目录路径回落到 index.html
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}
		rel := strings.TrimPrefix(filepath.Clean(c.Request.URL.Path), "/")
		target := filepath.Join(cfg.WebDir, rel)
		if fi, err := os.Stat(target); err == nil && !fi.IsDir() {
			c.File(target)
			return
		}
		if strings.Contains(rel, ".") {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(filepath.Join(cfg.WebDir, "index.html"))
	})

	return r
}
