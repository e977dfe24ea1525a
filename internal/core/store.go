package core

import (
	"time"

	"github.com/samber/lo"

	"github.com/vovakirdan/debate-server/internal/utils"
)

// TopicProvider picks server-assigned topics.
type TopicProvider interface {
	// Random returns any topic.
	Random() string
	// Next returns a topic different from current when possible.
	Next(current string) string
}

// RoomStore keeps every room created since start, including closed ones.
// It is owned by the hub loop and is not safe for concurrent use on its own.
type RoomStore struct {
	rooms  map[string]*Room
	order  []string
	topics TopicProvider
	now    func() time.Time
	newID  func() string
}

// NewRoomStore builds an empty store.
func NewRoomStore(topics TopicProvider) *RoomStore {
	return &RoomStore{
		rooms:  make(map[string]*Room),
		topics: topics,
		now:    time.Now,
		newID:  utils.NewID,
	}
}

// Create allocates an empty active room. Assigned-topic rooms always get a
// topic from the provider; other kinds keep the given topic, which may be empty.
func (s *RoomStore) Create(kind RoomKind, topic string) *Room {
	if kind == KindAssignedTopic {
		topic = s.topics.Random()
	}
	room := newRoom(s.newID(), kind, topic, s.now())
	s.rooms[room.ID] = room
	s.order = append(s.order, room.ID)
	return room
}

// Get looks a room up by id.
func (s *RoomStore) Get(id string) (*Room, bool) {
	room, ok := s.rooms[id]
	return room, ok
}

// FindJoinable returns the oldest active room of kind with exactly one member.
// Open-topic rooms never match.
func (s *RoomStore) FindJoinable(kind RoomKind) (*Room, bool) {
	if !kind.AutoMatch() {
		return nil, false
	}
	for _, id := range s.order {
		room := s.rooms[id]
		if room.Active && room.Kind == kind && room.Len() == 1 {
			return room, true
		}
	}
	return nil, false
}

// AddMember appends a member to an active room with a free slot.
func (s *RoomStore) AddMember(roomID string, m Member) error {
	room, ok := s.rooms[roomID]
	if !ok {
		return coreError(ErrRoomNotFound)
	}
	if !room.Active {
		return coreError(ErrRoomInactive)
	}
	if room.HasMember(m.ID) {
		return nil
	}
	if room.Full() {
		return coreError(ErrRoomFull)
	}
	room.members = append(room.members, m)
	return nil
}

// RemoveMember drops a participant and its agreement. When membership becomes
// empty the room is deactivated in the same step. It reports whether the
// participant was removed and whether the room closed.
func (s *RoomStore) RemoveMember(roomID, participantID string) (removed, closed bool) {
	room, ok := s.rooms[roomID]
	if !ok || !room.Active || !room.HasMember(participantID) {
		return false, false
	}
	room.members = lo.Reject(room.members, func(m Member, _ int) bool { return m.ID == participantID })
	delete(room.agreed, participantID)
	if len(room.members) == 0 {
		room.Active = false
		return true, true
	}
	return true, false
}

// Active returns active rooms in creation order.
func (s *RoomStore) Active() []*Room {
	return lo.FilterMap(s.order, func(id string, _ int) (*Room, bool) {
		room := s.rooms[id]
		return room, room.Active
	})
}

// Len returns the number of rooms ever created.
func (s *RoomStore) Len() int {
	return len(s.rooms)
}
