package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thetateman/trvke-chat/internal/metrics"
	"github.com/thetateman/trvke-chat/internal/upload"
)

// Handler 聚合所有 HTTP handler,依赖注入 upload service。
type Handler struct {
	up *upload.Service
}

func NewHandler(up *upload.Service) *Handler {
	return &Handler{up: up}
}

// Healthz 处理健康检查请求。
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Upload 处理文件上传:存储字节,返回稳定的引用 URL。
// 聊天消息随后以该 URL 作为文件引用,核心只认路径前缀。
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", fh.Filename).Msg("open upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	defer f.Close()
	url, err := h.up.Save(fh.Filename, f)
	if err != nil {
		log.Error().Err(err).Str("filename", fh.Filename).Msg("save upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	metrics.UploadsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"url": url})
}
