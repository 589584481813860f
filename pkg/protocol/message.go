// Package protocol implements the channel messages exchanged with the
// browser client. The client speaks the Phoenix tuple format; JSON and
// MessagePack object framings are available to other clients.
package protocol

// Reserved event names. Anything else is a page event.
const (
	EventJoin      = "phx_join"
	EventLeave     = "phx_leave"
	EventReply     = "phx_reply"
	EventError     = "phx_error"
	EventHeartbeat = "heartbeat"
)

// Reply statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// heartbeatTopic is the topic Phoenix clients heartbeat on.
const heartbeatTopic = "phoenix"

// Message is one channel message. Empty refs travel as null.
type Message struct {
	JoinRef string         `json:"join_ref,omitempty" msgpack:"join_ref,omitempty"`
	Ref     string         `json:"ref,omitempty" msgpack:"ref,omitempty"`
	Topic   string         `json:"topic" msgpack:"topic"`
	Event   string         `json:"event" msgpack:"event"`
	Payload map[string]any `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// WithRef sets the message ref.
func (m *Message) WithRef(ref string) *Message {
	m.Ref = ref
	return m
}

// WithJoinRef sets the join ref.
func (m *Message) WithJoinRef(joinRef string) *Message {
	m.JoinRef = joinRef
	return m
}

// Status returns the status of a reply, or "" for other messages.
func (m *Message) Status() string {
	if m.Event != EventReply {
		return ""
	}
	s, _ := m.Payload["status"].(string)
	return s
}

func newMessage(topic, event string, payload map[string]any) *Message {
	if payload == nil {
		payload = map[string]any{}
	}
	return &Message{Topic: topic, Event: event, Payload: payload}
}

// JoinMessage joins topic with the given params.
func JoinMessage(topic string, params map[string]any) *Message {
	return newMessage(topic, EventJoin, params)
}

// LeaveMessage leaves topic.
func LeaveMessage(topic string) *Message {
	return newMessage(topic, EventLeave, nil)
}

// EventMessage sends a page event such as "scroll".
func EventMessage(topic, event string, payload map[string]any) *Message {
	return newMessage(topic, event, payload)
}

// HeartbeatMessage keeps the connection alive.
func HeartbeatMessage() *Message {
	return newMessage(heartbeatTopic, EventHeartbeat, nil)
}

// Reply answers the message with the given ref.
func Reply(ref, topic, status string, response map[string]any) *Message {
	if response == nil {
		response = map[string]any{}
	}
	return newMessage(topic, EventReply, map[string]any{
		"status":   status,
		"response": response,
	}).WithRef(ref)
}

// OkReply is a successful reply.
func OkReply(ref, topic string, response map[string]any) *Message {
	return Reply(ref, topic, StatusOK, response)
}

// ErrorReply is a failed reply carrying reason.
func ErrorReply(ref, topic, reason string) *Message {
	return Reply(ref, topic, StatusError, map[string]any{"reason": reason})
}
