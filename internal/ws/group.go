package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thetateman/trvke-chat/internal/metrics"
)

// Group 是一个以邀请码寻址的临时群组,持有成员集合、语音成员集合
// 与有界历史。同一群组上的全部变更由 mu 串行化,不同群组互不阻塞。
type Group struct {
	code string
	name string

	mu      sync.Mutex
	members map[*Client]bool
	voice   map[*Client]bool
	history History
}

func newGroup(code, name string) *Group {
	if name == "" {
		name = code
	}
	return &Group{
		code:    code,
		name:    name,
		members: make(map[*Client]bool),
		voice:   make(map[*Client]bool),
	}
}

// Code 返回群组的邀请码。
func (g *Group) Code() string { return g.code }

// Name 返回群组的显示名,未指定时与邀请码相同。
func (g *Group) Name() string { return g.name }

// Online 返回当前成员数量。
func (g *Group) Online() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// addMember 把连接加入成员集合,向其回放 since 之后仍保留的历史,
// 并向全群广播加入通知。回放与通知在同一临界区内完成,其他成员
// 不会观察到两者之间插入别的变更。
func (g *Group) addMember(c *Client, since int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members[c] = true
	c.sendJSON(groupJoined{Type: "group-joined", Code: g.code, Name: g.name, Messages: g.history.Since(since)})
	g.broadcastLocked(map[string]interface{}{"type": "system", "text": c.username + " joined"})
}

// removeMember 把连接移出成员与语音集合并广播离开通知。
// 连接不在群内时为空操作。
func (g *Group) removeMember(c *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.members[c] {
		return
	}
	delete(g.members, c)
	if g.voice[c] {
		delete(g.voice, c)
		metrics.VoiceParticipants.Dec()
		g.broadcastLocked(voiceState{Type: "voice-state", Participants: g.participantsLocked()})
	}
	g.broadcastLocked(map[string]interface{}{"type": "system", "text": c.username + " left"})
}

// appendChat 以服务端时钟落一条消息进历史并广播。时间戳相对
// 历史尾部单调不减,即便系统时钟回拨。
func (g *Group) appendChat(username, text string, files []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ts := time.Now().UnixMilli()
	if last := g.history.lastTimestamp(); ts < last {
		ts = last
	}
	msg := ChatMessage{Type: "chat", Username: username, Text: text, Files: files, Timestamp: ts}
	g.history.Append(msg)
	metrics.ChatMessagesTotal.Inc()
	g.broadcastLocked(msg)
}

// joinVoice 把成员加入语音集合,向其单发现有同伴列表(不含自己,
// 新加入方固定作为发起方逐个发 offer),再向全群广播新的语音状态。
// 返回 false 表示连接不是群成员或已在通话中。
func (g *Group) joinVoice(c *Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.members[c] || g.voice[c] {
		return false
	}
	peers := g.participantsLocked()
	g.voice[c] = true
	metrics.VoiceParticipants.Inc()
	c.sendJSON(voicePeers{Type: "voice-peers", Peers: peers})
	g.broadcastLocked(voiceState{Type: "voice-state", Participants: g.participantsLocked()})
	return true
}

// leaveVoice 把连接移出语音集合并广播新的语音状态,不在通话中时为空操作。
// 语音状态广播发给全部群成员而不只是通话成员,界面据此显示通话人数。
func (g *Group) leaveVoice(c *Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.voice[c] {
		return
	}
	delete(g.voice, c)
	metrics.VoiceParticipants.Dec()
	g.broadcastLocked(voiceState{Type: "voice-state", Participants: g.participantsLocked()})
}

func (g *Group) participantsLocked() []Participant {
	out := make([]Participant, 0, len(g.voice))
	for m := range g.voice {
		out = append(out, Participant{ClientID: m.id, Username: m.username})
	}
	return out
}

// broadcastLocked 序列化一次后投递给全部成员。单个成员的发送队列
// 已满或已关闭时跳过,清理交给连接关闭处理,不在广播路径上做。
func (g *Group) broadcastLocked(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("group", g.code).Msg("marshal broadcast")
		return
	}
	for m := range g.members {
		m.trySend(b)
	}
}
