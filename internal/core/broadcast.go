package core

import "github.com/samber/lo"

// deliver pushes ev to one client without blocking the hub loop.
func (h *Hub) deliver(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		h.metrics.EventDropped(ev.Kind.String())
		h.log.Warn().
			Str("client_id", c.ID).
			Str("event", ev.Kind.String()).
			Msg("client event buffer full, dropping event")
	}
}

// toMembers sends ev to every member of room except the given participant.
func (h *Hub) toMembers(room *Room, ev *Event, exceptID string) {
	for _, m := range room.members {
		if m.ID == exceptID {
			continue
		}
		p, ok := h.registry.Get(m.ID)
		if !ok {
			continue
		}
		h.deliver(p.client, ev)
	}
}

// toParticipant sends ev to a participant whose connection is still registered.
func (h *Hub) toParticipant(p *Participant, ev *Event) {
	if _, connected := h.clients[p.client.ID]; !connected {
		return
	}
	h.deliver(p.client, ev)
}

// publishRooms sends the active room directory to every connected client.
func (h *Hub) publishRooms() {
	rooms := h.activeRooms()
	h.metrics.SetActiveRooms(len(rooms))
	ev := &Event{Kind: EventRoomsUpdated, Rooms: rooms}
	for _, c := range h.clients {
		h.deliver(c, ev)
	}
}

func (h *Hub) activeRooms() []RoomSummary {
	return lo.Map(h.rooms.Active(), func(r *Room, _ int) RoomSummary { return r.Summary() })
}
