package core

import (
	"fmt"
	"strings"
)

const agreementNotice = "You both agree on this one!"

func (h *Hub) connect(c *Client) {
	if c == nil {
		return
	}
	if _, ok := h.clients[c.ID]; ok {
		return
	}
	h.clients[c.ID] = c
	h.metrics.ClientConnected()
	h.log.Debug().Str("client_id", c.ID).Msg("client connected")
}

func (h *Hub) disconnect(c *Client) {
	if c == nil {
		return
	}
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		h.metrics.ClientDisconnected()
		h.log.Debug().Str("client_id", c.ID).Msg("client disconnected")
	}
	h.leave(c)
}

// currentRoom returns the participant and the room it may act in.
func (h *Hub) currentRoom(c *Client) (*Participant, *Room, error) {
	if c == nil {
		return nil, nil, coreError(ErrNotInRoom)
	}
	p, ok := h.registry.Find(c.ID)
	if !ok || p.RoomID == "" {
		return nil, nil, coreError(ErrNotInRoom)
	}
	room, ok := h.rooms.Get(p.RoomID)
	if !ok {
		return nil, nil, coreError(ErrNotInRoom)
	}
	if !room.Active {
		return nil, nil, coreError(ErrRoomInactive)
	}
	return p, room, nil
}

func (h *Hub) sendMessage(c *Client, content string) (Message, error) {
	p, room, err := h.currentRoom(c)
	if err != nil {
		return Message{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, badRequest("message content is required")
	}

	msg := Message{
		ID:        h.newID(),
		Content:   content,
		Sender:    p.Name,
		CreatedAt: h.now(),
	}
	room.appendMessage(msg)
	h.metrics.MessagePosted()
	h.toMembers(room, &Event{Kind: EventMessage, RoomID: room.ID, Message: msg}, "")
	return msg, nil
}

func (h *Hub) setTopic(c *Client, topic string) error {
	_, room, err := h.currentRoom(c)
	if err != nil {
		return err
	}
	if !room.Kind.TopicSettable() {
		return coreError(ErrWrongRoomKind)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return badRequest("topic is required")
	}

	room.Topic = topic
	room.appendMessage(h.systemMessage(topicNotice(topic), false, true))
	h.log.Info().Str("room_id", room.ID).Str("topic", topic).Msg("topic set")

	h.toMembers(room, &Event{Kind: EventTopicChanged, RoomID: room.ID, Topic: topic}, "")
	h.publishRooms()
	return nil
}

func (h *Hub) toggleAgreement(c *Client, agreed bool) (bool, error) {
	p, room, err := h.currentRoom(c)
	if err != nil {
		return false, err
	}
	if !room.Kind.NeedsConsensus() {
		return false, coreError(ErrWrongRoomKind)
	}

	room.agreed[p.ID] = agreed
	if !room.AllAgreed() {
		return false, nil
	}
	h.rotateTopic(room)
	return true, nil
}

// rotateTopic assigns a fresh topic after consensus. Clients see the new topic
// before the timer restart.
func (h *Hub) rotateTopic(room *Room) {
	topic := h.topics.Next(room.Topic)
	room.Topic = topic
	room.resetAgreement()
	room.appendMessage(h.systemMessage(agreementNotice, true, false))
	room.appendMessage(h.systemMessage(topicNotice(topic), false, true))
	h.metrics.TopicRotated()
	h.log.Info().Str("room_id", room.ID).Str("topic", topic).Msg("consensus reached, topic rotated")

	h.toMembers(room, &Event{Kind: EventTopicChanged, RoomID: room.ID, Topic: topic}, "")
	h.toMembers(room, &Event{Kind: EventTimerReset, RoomID: room.ID}, "")
	h.publishRooms()
}

// leave removes the client's participant from its room and the registry.
// Unknown clients are ignored, so leave and disconnect may both run.
func (h *Hub) leave(c *Client) {
	if c == nil {
		return
	}
	p, ok := h.registry.Find(c.ID)
	if !ok {
		return
	}
	defer h.registry.Unregister(p.ID)

	roomID := p.RoomID
	p.RoomID = ""
	if roomID == "" {
		return
	}
	room, ok := h.rooms.Get(roomID)
	if !ok {
		return
	}
	removed, closed := h.rooms.RemoveMember(roomID, p.ID)
	if !removed {
		return
	}

	h.log.Info().
		Str("participant_id", p.ID).
		Str("room_id", roomID).
		Int("members", room.Len()).
		Stringer("state", room.State()).
		Msg("participant left room")

	h.toMembers(room, &Event{Kind: EventUserLeft, RoomID: roomID, ParticipantID: p.ID}, "")
	if closed {
		h.toParticipant(p, &Event{Kind: EventRoomClosed, RoomID: roomID})
	}
	h.publishRooms()
}

func (h *Hub) systemMessage(content string, agreement, topicChange bool) Message {
	return Message{
		ID:          h.newID(),
		Content:     content,
		Sender:      SystemSender,
		CreatedAt:   h.now(),
		System:      true,
		Agreement:   agreement,
		TopicChange: topicChange,
	}
}

func topicNotice(topic string) string {
	return fmt.Sprintf("Topic changed to: %q", topic)
}
