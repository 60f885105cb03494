package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/thetateman/trvke-chat/internal/upload"
)

// Client 对应一条在线的 WebSocket 连接。group 与 inCall 只由该连接的
// 读协程(含其关闭清理)触碰,属于连接本地状态,不需要加锁。
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	id       string
	username string

	group  *Group
	inCall bool
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve 返回 WebSocket 升级入口。用户名取自握手 query 参数,
// 不做鉴权,空值回落为 Anonymous。
func Serve(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.Query("username"))
		if username == "" {
			username = "Anonymous"
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := &Client{
			hub:      h,
			conn:     conn,
			send:     make(chan []byte, 256),
			done:     make(chan struct{}),
			id:       uuid.NewString(),
			username: username,
		}
		h.register(client)
		client.sendJSON(map[string]interface{}{"type": "your-client-id", "clientId": client.id})

		go client.writePump()
		client.readPump()
	}
}

func (c *Client) readPump() {
	defer c.close()
	c.conn.SetReadLimit(1 << 20) // 1MB
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			// 无法解析的信封静默丢弃,可用性优先于严格校验
			continue
		}
		c.dispatch(in)
	}
}

// dispatch 按信封类型路由到对应操作。未知类型静默丢弃,不回错误,
// 连接状态保持不变。
func (c *Client) dispatch(in Inbound) {
	switch in.Type {
	case "create-group":
		c.createGroup(in)
	case "join-group":
		c.joinGroup(in)
	case "leave-group":
		c.leaveGroup()
	case "chat":
		c.chat(in)
	case "voice-join":
		c.voiceJoin()
	case "voice-leave":
		c.voiceLeave()
	case "rtc-offer", "rtc-answer", "rtc-ice":
		c.hub.relay(c, in)
	}
}

func (c *Client) createGroup(in Inbound) {
	c.leaveGroup()
	g := c.hub.CreateGroup(strings.TrimSpace(in.Name))
	c.group = g
	g.addMember(c, 0)
	log.Info().Str("group", g.Code()).Str("username", c.username).Msg("group created")
}

func (c *Client) joinGroup(in Inbound) {
	g := c.hub.FindGroup(strings.TrimSpace(in.Code))
	if g == nil {
		// 唯一显式回给请求方的错误,不影响连接状态
		c.sendJSON(map[string]interface{}{"type": "error", "text": "Group not found"})
		return
	}
	c.leaveGroup()
	c.group = g
	g.addMember(c, in.Since)
}

// leaveGroup 退出当前群组,连带退出语音并广播离开通知。
// 不在任何群组时为空操作。
func (c *Client) leaveGroup() {
	g := c.group
	if g == nil {
		return
	}
	c.group = nil
	c.inCall = false
	g.removeMember(c)
}

func (c *Client) chat(in Inbound) {
	g := c.group
	if g == nil {
		return
	}
	text := strings.TrimSpace(in.Text)
	files := validFiles(in.Files)
	if text == "" && len(files) == 0 {
		// 既无文本也无有效文件引用,静默丢弃
		return
	}
	g.appendChat(c.username, text, files)
}

// validFiles 要求文件引用全部落在上传路径前缀下,任一不合法则整体视为缺失。
func validFiles(files []string) []string {
	if len(files) == 0 {
		return nil
	}
	for _, f := range files {
		if !strings.HasPrefix(f, upload.URLPrefix) {
			return nil
		}
	}
	return files
}

func (c *Client) voiceJoin() {
	g := c.group
	if g == nil || c.inCall {
		return
	}
	if g.joinVoice(c) {
		c.inCall = true
	}
}

func (c *Client) voiceLeave() {
	g := c.group
	if g == nil {
		return
	}
	c.inCall = false
	g.leaveVoice(c)
}

// close 是连接的唯一取消路径:同步摘除群组成员与语音成员资格并
// 广播相应通知,之后才允许传输层资源释放。
func (c *Client) close() {
	c.leaveGroup()
	c.hub.unregister(c)
	close(c.done)
	_ = c.conn.Close()
}

func (c *Client) sendJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("client", c.id).Msg("marshal envelope")
		return
	}
	c.trySend(b)
}

// trySend 尽力投递:发送队列已满时直接跳过,由传输层对慢客户端
// 的超时断开兜底,核心不实现额外的背压策略。
func (c *Client) trySend(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)
			_ = w.Close()
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
