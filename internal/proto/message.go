package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for requests coming from the client. ID correlates
// the request with its acknowledgment.
type Inbound struct {
	Type string          `json:"type"`
	ID   string          `json:"id,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	InboundTypeGetActiveRooms = "getActiveRooms"
	InboundTypeJoinRoom       = "joinRoom"
	InboundTypeSendMessage    = "sendMessage"
	InboundTypeSetTopic       = "setTopic"
	InboundTypeAgreeOnTopic   = "agreeOnTopic"
	InboundTypeLeaveRoom      = "leaveRoom"

	OutboundTypeAck   = "ack"
	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventUserJoined   = "userJoined"
	EventUserLeft     = "userLeft"
	EventMessage      = "message"
	EventTopicChanged = "topicChanged"
	EventTimerReset   = "timerReset"
	EventRoomClosed   = "roomClosed"
	EventRoomsUpdated = "roomsUpdated"
)

// JoinRoomData asks to be placed in a room. RoomID is optional.
type JoinRoomData struct {
	Name   string `json:"name" validate:"required,max=64"`
	Kind   string `json:"kind" validate:"required,oneof=assigned-topic free-topic open-topic change-my-mind"`
	RoomID string `json:"room_id,omitempty" validate:"omitempty,max=64"`
}

// SendMessageData is a chat message from the client.
type SendMessageData struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// SetTopicData sets the topic of a free or open room.
type SetTopicData struct {
	Topic string `json:"topic" validate:"required,max=200"`
}

// AgreeOnTopicData toggles agreement in an assigned-topic room.
type AgreeOnTopicData struct {
	Agreed bool `json:"agreed"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// User is the public view of a room member.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChatMessage is a message as rendered by clients.
type ChatMessage struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	Sender        string    `json:"sender"`
	Timestamp     time.Time `json:"timestamp"`
	IsSystem      bool      `json:"is_system,omitempty"`
	IsAgreement   bool      `json:"is_agreement,omitempty"`
	IsTopicChange bool      `json:"is_topic_change,omitempty"`
}

// Room is the full snapshot returned when joining.
type Room struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Users     []User          `json:"users"`
	Messages  []ChatMessage   `json:"messages"`
	Topic     string          `json:"topic,omitempty"`
	Agreed    map[string]bool `json:"user_agreed"`
	StartTime time.Time       `json:"start_time"`
	Active    bool            `json:"is_active"`
}

// RoomSummary is a room directory entry.
type RoomSummary struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Topic     string    `json:"topic,omitempty"`
	StartTime time.Time `json:"start_time"`
	Active    bool      `json:"is_active"`
	Users     []User    `json:"users"`
}

// SendMessageAck acknowledges sendMessage.
type SendMessageAck struct {
	Delivered bool `json:"delivered"`
}

// SetTopicAck acknowledges setTopic.
type SetTopicAck struct {
	Success bool `json:"success"`
}

// AgreeOnTopicAck acknowledges agreeOnTopic.
type AgreeOnTopicAck struct {
	Success   bool `json:"success"`
	AllAgreed bool `json:"all_agreed"`
}

// EventUserLeftData names the participant that left.
type EventUserLeftData struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
}

// EventTopicChangedData carries a new topic.
type EventTopicChangedData struct {
	RoomID string `json:"room_id"`
	Topic  string `json:"topic"`
}

// EventRoomData identifies the room of a timerReset or roomClosed event.
type EventRoomData struct {
	RoomID string `json:"room_id"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
