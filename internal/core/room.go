package core

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// MaxMembers is the capacity of every debate room.
const MaxMembers = 2

// RoomState is the lifecycle stage of a room.
type RoomState int

const (
	// StateWaitingForPartner covers rooms with zero or one member.
	StateWaitingForPartner RoomState = iota
	// StateActive is a paired room.
	StateActive
	// StateClosed is terminal: the last member left.
	StateClosed
)

func (s RoomState) String() string {
	switch s {
	case StateWaitingForPartner:
		return "waiting_for_partner"
	case StateActive:
		return "active"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Member is the public view of a participant inside a room.
type Member struct {
	ID   string
	Name string
}

// Room groups up to two participants debating one topic.
type Room struct {
	ID        string
	Kind      RoomKind
	Topic     string
	CreatedAt time.Time
	Active    bool

	members  []Member
	messages []Message
	agreed   map[string]bool
}

func newRoom(id string, kind RoomKind, topic string, now time.Time) *Room {
	return &Room{
		ID:        id,
		Kind:      kind,
		Topic:     topic,
		CreatedAt: now,
		Active:    true,
		agreed:    make(map[string]bool),
	}
}

// Len returns the number of members.
func (r *Room) Len() int {
	return len(r.members)
}

// Full reports whether the room reached MaxMembers.
func (r *Room) Full() bool {
	return len(r.members) >= MaxMembers
}

// HasMember reports whether the participant is a member.
func (r *Room) HasMember(participantID string) bool {
	return lo.ContainsBy(r.members, func(m Member) bool { return m.ID == participantID })
}

// State derives the lifecycle stage from membership and the active flag.
func (r *Room) State() RoomState {
	switch {
	case !r.Active:
		return StateClosed
	case len(r.members) == MaxMembers:
		return StateActive
	default:
		return StateWaitingForPartner
	}
}

// AllAgreed is true iff the room is full and every member recorded agreement.
func (r *Room) AllAgreed() bool {
	if len(r.members) != MaxMembers {
		return false
	}
	return lo.EveryBy(r.members, func(m Member) bool { return r.agreed[m.ID] })
}

func (r *Room) appendMessage(msg Message) {
	r.messages = append(r.messages, msg)
}

func (r *Room) resetAgreement() {
	clear(r.agreed)
}

// RoomSnapshot is a read-only copy of room state handed to a joining client.
type RoomSnapshot struct {
	ID        string
	Kind      RoomKind
	Topic     string
	CreatedAt time.Time
	Active    bool
	Members   []Member
	Messages  []Message
	Agreed    map[string]bool
}

// RoomSummary is the room directory entry. It carries no message history.
type RoomSummary struct {
	ID        string
	Kind      RoomKind
	Topic     string
	CreatedAt time.Time
	Active    bool
	Members   []Member
}

// Snapshot copies the full room state.
func (r *Room) Snapshot() RoomSnapshot {
	return RoomSnapshot{
		ID:        r.ID,
		Kind:      r.Kind,
		Topic:     r.Topic,
		CreatedAt: r.CreatedAt,
		Active:    r.Active,
		Members:   slices.Clone(r.members),
		Messages:  slices.Clone(r.messages),
		Agreed:    lo.Assign(r.agreed),
	}
}

// Summary copies the directory view of the room.
func (r *Room) Summary() RoomSummary {
	return RoomSummary{
		ID:        r.ID,
		Kind:      r.Kind,
		Topic:     r.Topic,
		CreatedAt: r.CreatedAt,
		Active:    r.Active,
		Members:   slices.Clone(r.members),
	}
}
