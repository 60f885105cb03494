package ws

// maxHistory 是单个群组保留的最大消息条数,超出后最旧的先被淘汰。
const maxHistory = 50

// History 按追加顺序保存群组最近的聊天消息。
// 有界淘汰意味着 Since 只能补发仍保留的部分:离线太久的客户端
// 会静默错过已淘汰的消息,这是既定的有损语义而非缺陷。
type History struct {
	msgs []ChatMessage
}

// Append 追加一条消息,容量超限时丢弃最旧的一条。
func (h *History) Append(m ChatMessage) {
	if len(h.msgs) >= maxHistory {
		copy(h.msgs, h.msgs[1:])
		h.msgs = h.msgs[:maxHistory-1]
	}
	h.msgs = append(h.msgs, m)
}

// Since 返回 Timestamp 大于 since 的消息子序列,since 为 0 时返回全部。
// 返回值始终非 nil,序列化后保证是 JSON 数组而非 null。
func (h *History) Since(since int64) []ChatMessage {
	i := len(h.msgs)
	if since > 0 {
		for i > 0 && h.msgs[i-1].Timestamp > since {
			i--
		}
	} else {
		i = 0
	}
	out := make([]ChatMessage, len(h.msgs)-i)
	copy(out, h.msgs[i:])
	return out
}

// Len 返回当前保留的消息条数。
func (h *History) Len() int { return len(h.msgs) }

func (h *History) lastTimestamp() int64 {
	if len(h.msgs) == 0 {
		return 0
	}
	return h.msgs[len(h.msgs)-1].Timestamp
}
