package ws

import "github.com/thetateman/trvke-chat/internal/metrics"

// relay 把 WebRTC 协商信封点对点转发给 toClientId 指定的连接,
// 从不广播也从不缓存。目标不在线时直接丢弃:对端靠自身的协商
// 超时重试兜底,服务端不补偿。负载原样透传,不做内容校验。
func (h *Hub) relay(from *Client, in Inbound) {
	if in.ToClientID == "" {
		return
	}
	target := h.Client(in.ToClientID)
	if target == nil {
		return
	}
	var out map[string]interface{}
	switch in.Type {
	case "rtc-offer", "rtc-answer":
		if len(in.SDP) == 0 {
			return
		}
		out = map[string]interface{}{
			"type":         in.Type,
			"fromClientId": from.id,
			"fromUsername": from.username,
			"sdp":          in.SDP,
		}
	case "rtc-ice":
		if len(in.Candidate) == 0 {
			return
		}
		out = map[string]interface{}{
			"type":         in.Type,
			"fromClientId": from.id,
			"candidate":    in.Candidate,
		}
	default:
		return
	}
	target.sendJSON(out)
	metrics.SignalsRelayedTotal.WithLabelValues(in.Type).Inc()
}
