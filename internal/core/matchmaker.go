package core

import (
	"errors"
	"strings"
)

// joinRoom resolves a room for the client: the explicitly requested room when
// it is joinable, otherwise the oldest waiting room of the same kind, otherwise
// a new room. Repeated joins from a connection already in a room return that
// room unchanged.
func (h *Hub) joinRoom(c *Client, name string, kind RoomKind, roomID string) (RoomSnapshot, error) {
	if c == nil {
		return RoomSnapshot{}, badRequest("missing client")
	}
	if !kind.Valid() {
		return RoomSnapshot{}, badRequest("unknown room kind")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return RoomSnapshot{}, badRequest("name is required")
	}

	if p, ok := h.registry.Find(c.ID); ok && p.RoomID != "" {
		if room, ok := h.rooms.Get(p.RoomID); ok {
			h.log.Debug().
				Str("client_id", c.ID).
				Str("room_id", room.ID).
				Msg("duplicate join, returning current room")
			return room.Snapshot(), nil
		}
	}

	p, err := h.registry.Register(c, name)
	if errors.Is(err, ErrDuplicateConnection) {
		p.Name = name
	}

	room := h.resolveRoom(kind, roomID)
	if err := h.rooms.AddMember(room.ID, p.Member()); err != nil {
		h.registry.Unregister(p.ID)
		return RoomSnapshot{}, err
	}
	p.RoomID = room.ID

	h.log.Info().
		Str("participant_id", p.ID).
		Str("room_id", room.ID).
		Str("kind", string(room.Kind)).
		Int("members", room.Len()).
		Stringer("state", room.State()).
		Msg("participant joined room")

	if room.Full() {
		h.toMembers(room, &Event{Kind: EventUserJoined, RoomID: room.ID, Member: p.Member()}, p.ID)
		if room.Kind.PairingStartsTimer() {
			h.toMembers(room, &Event{Kind: EventTimerReset, RoomID: room.ID}, "")
		}
	}
	h.publishRooms()

	return room.Snapshot(), nil
}

func (h *Hub) resolveRoom(kind RoomKind, roomID string) *Room {
	if roomID != "" {
		if room, ok := h.rooms.Get(roomID); ok && room.Active && room.Kind == kind && !room.Full() {
			return room
		}
		h.log.Debug().Str("room_id", roomID).Msg("requested room not joinable, falling back")
	}
	if room, ok := h.rooms.FindJoinable(kind); ok {
		return room
	}
	room := h.rooms.Create(kind, "")
	h.metrics.RoomCreated(string(kind))
	h.log.Info().Str("room_id", room.ID).Str("kind", string(kind)).Msg("room created")
	return room
}
