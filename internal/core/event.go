package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventUserJoined tells existing members that a partner joined.
	EventUserJoined EventKind = iota
	// EventUserLeft tells remaining members that a participant left.
	EventUserLeft
	// EventMessage delivers a chat message to every member, sender included.
	EventMessage
	// EventTopicChanged announces a new room topic.
	EventTopicChanged
	// EventTimerReset tells clients to restart their debate countdown.
	EventTimerReset
	// EventRoomClosed tells the last member that the room is closed.
	EventRoomClosed
	// EventRoomsUpdated delivers the active room directory to every connected client.
	EventRoomsUpdated
)

var eventNames = [...]string{
	EventUserJoined:   "userJoined",
	EventUserLeft:     "userLeft",
	EventMessage:      "message",
	EventTopicChanged: "topicChanged",
	EventTimerReset:   "timerReset",
	EventRoomClosed:   "roomClosed",
	EventRoomsUpdated: "roomsUpdated",
}

func (k EventKind) String() string {
	if int(k) < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is sent to clients to describe what happened in the system.
// A single Event may be shared between recipients and must not be mutated.
type Event struct {
	Kind   EventKind
	RoomID string

	Member        Member        // EventUserJoined
	ParticipantID string        // EventUserLeft
	Message       Message       // EventMessage
	Topic         string        // EventTopicChanged
	Rooms         []RoomSummary // EventRoomsUpdated
}
