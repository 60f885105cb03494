package ws

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/thetateman/trvke-chat/internal/metrics"
)

// Hub 持有邀请码到群组的目录和在线连接注册表,是进程内唯一的
// 共享可变状态。群组常驻进程生命周期,空群不回收。
type Hub struct {
	mu      sync.RWMutex
	groups  map[string]*Group
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{groups: make(map[string]*Group), clients: make(map[string]*Client)}
}

// CreateGroup 生成一个不与现有群组冲突的邀请码并登记新群组,永不失败。
// 名称为空时回落为邀请码本身。
func (h *Hub) CreateGroup(name string) *Group {
	h.mu.Lock()
	defer h.mu.Unlock()
	code := newGroupCode()
	for h.groups[code] != nil {
		code = newGroupCode()
	}
	g := newGroup(code, name)
	h.groups[code] = g
	metrics.ActiveGroups.Inc()
	return g
}

// FindGroup 按邀请码精确查找群组,未知邀请码返回 nil。
func (h *Hub) FindGroup(code string) *Group {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.groups[code]
}

// Client 按连接 ID 查找在线连接,供信令转发寻址,不在线返回 nil。
func (h *Hub) Client(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

// Online 返回指定群组的在线成员数,群组不存在时为 0。
func (h *Hub) Online(code string) int {
	g := h.FindGroup(code)
	if g == nil {
		return 0
	}
	return g.Online()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	metrics.WsConnections.Inc()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	metrics.WsConnections.Dec()
}

// newGroupCode 生成 8 个十六进制字符的邀请码,可直接作为分享链接的一部分。
func newGroupCode() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
