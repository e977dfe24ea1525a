package core

// RoomKind selects the topic rules of a room.
type RoomKind string

const (
	// KindAssignedTopic rooms get a server-picked topic that changes only when both members agree.
	KindAssignedTopic RoomKind = "assigned-topic"
	// KindFreeTopic rooms let either member set the topic at any time.
	KindFreeTopic RoomKind = "free-topic"
	// KindOpenTopic ("change my mind") rooms are created with a topic by their owner
	// and joined only through the room directory.
	KindOpenTopic RoomKind = "open-topic"

	legacyOpenTopic = "change-my-mind"
)

// ParseRoomKind maps a wire value to a RoomKind. The legacy "change-my-mind"
// value is accepted as KindOpenTopic.
func ParseRoomKind(s string) (RoomKind, bool) {
	switch s {
	case string(KindAssignedTopic):
		return KindAssignedTopic, true
	case string(KindFreeTopic):
		return KindFreeTopic, true
	case string(KindOpenTopic), legacyOpenTopic:
		return KindOpenTopic, true
	default:
		return "", false
	}
}

// Valid reports whether k is a known kind.
func (k RoomKind) Valid() bool {
	switch k {
	case KindAssignedTopic, KindFreeTopic, KindOpenTopic:
		return true
	default:
		return false
	}
}

// AutoMatch reports whether rooms of this kind take part in automatic pairing.
func (k RoomKind) AutoMatch() bool {
	return k != KindOpenTopic
}

// TopicSettable reports whether members may set the topic directly.
func (k RoomKind) TopicSettable() bool {
	return k == KindFreeTopic || k == KindOpenTopic
}

// NeedsConsensus reports whether topic changes go through mutual agreement.
func (k RoomKind) NeedsConsensus() bool {
	return k == KindAssignedTopic
}

// PairingStartsTimer reports whether the debate timer starts when the second member joins.
func (k RoomKind) PairingStartsTimer() bool {
	return k == KindAssignedTopic || k == KindFreeTopic
}
