package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_ws_connections",
		Help: "Current number of active websocket connections",
	})
	ChatMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Total number of chat messages accepted into group history",
	})
	ActiveGroups = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_groups_active",
		Help: "Number of groups resident in the directory",
	})
	VoiceParticipants = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chat_voice_participants",
		Help: "Current number of connections in a voice call",
	})
	SignalsRelayedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_rtc_signals_relayed_total",
		Help: "Total number of WebRTC signaling envelopes relayed, by kind",
	}, []string{"kind"})
	UploadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chat_uploads_total",
		Help: "Total number of files stored by the upload endpoint",
	})
	HttpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
	HttpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func init() {
	prometheus.MustRegister(WsConnections, ChatMessagesTotal, ActiveGroups, VoiceParticipants,
		SignalsRelayedTotal, UploadsTotal, HttpRequestsTotal, HttpRequestDuration)
}

// GinMiddleware 统计基础请求指标,供 Prometheus 拉取。
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		labels := prometheus.Labels{"method": c.Request.Method, "path": path, "status": status}
		HttpRequestsTotal.With(labels).Inc()
		HttpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}
