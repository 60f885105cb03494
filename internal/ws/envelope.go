package ws

import "encoding/json"

// Inbound 是客户端入站信封,扁平结构,按 type 取用对应字段。
// sdp/candidate 作为不透明负载原样转发,服务端不做解析。
type Inbound struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Code       string          `json:"code"`
	Since      int64           `json:"since"`
	Text       string          `json:"text"`
	Files      []string        `json:"files"`
	ToClientID string          `json:"toClientId"`
	SDP        json.RawMessage `json:"sdp"`
	Candidate  json.RawMessage `json:"candidate"`
}

// ChatMessage 是写入历史并广播的聊天消息,入历史后不可变。
// Username 在发送时刻快照,之后改名不会回写历史。
type ChatMessage struct {
	Type      string   `json:"type"`
	Username  string   `json:"username"`
	Text      string   `json:"text"`
	Files     []string `json:"files,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

type groupJoined struct {
	Type     string        `json:"type"`
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Messages []ChatMessage `json:"messages"`
}

// Participant 标识一个语音通话成员。
type Participant struct {
	ClientID string `json:"clientId"`
	Username string `json:"username"`
}

type voiceState struct {
	Type         string        `json:"type"`
	Participants []Participant `json:"participants"`
}

type voicePeers struct {
	Type  string        `json:"type"`
	Peers []Participant `json:"peers"`
}
