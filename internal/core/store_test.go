package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomStoreCreateAssignsTopicForAssignedKind(t *testing.T) {
	s := NewRoomStore(&fixedTopics{list: []string{"AI"}})

	assigned := s.Create(KindAssignedTopic, "ignored")
	assert.Equal(t, "AI", assigned.Topic)
	assert.True(t, assigned.Active)
	assert.Zero(t, assigned.Len())

	free := s.Create(KindFreeTopic, "")
	assert.Empty(t, free.Topic)

	open := s.Create(KindOpenTopic, "Pineapple on pizza")
	assert.Equal(t, "Pineapple on pizza", open.Topic)
}

func TestRoomStoreFindJoinable(t *testing.T) {
	s := NewRoomStore(&fixedTopics{list: []string{"AI"}})

	_, ok := s.FindJoinable(KindFreeTopic)
	assert.False(t, ok, "empty store")

	s.Create(KindFreeTopic, "")
	_, ok = s.FindJoinable(KindFreeTopic)
	assert.False(t, ok, "rooms without members are not joinable")

	first := s.Create(KindFreeTopic, "")
	second := s.Create(KindFreeTopic, "")
	require.NoError(t, s.AddMember(first.ID, Member{ID: "a", Name: "A"}))
	require.NoError(t, s.AddMember(second.ID, Member{ID: "b", Name: "B"}))

	got, ok := s.FindJoinable(KindFreeTopic)
	require.True(t, ok)
	assert.Equal(t, first.ID, got.ID, "first match in creation order wins")

	_, ok = s.FindJoinable(KindAssignedTopic)
	assert.False(t, ok, "kind must match")

	open := s.Create(KindOpenTopic, "x")
	require.NoError(t, s.AddMember(open.ID, Member{ID: "c", Name: "C"}))
	_, ok = s.FindJoinable(KindOpenTopic)
	assert.False(t, ok, "open rooms never auto-match")

}

func TestRoomStoreAddMemberLimits(t *testing.T) {
	s := NewRoomStore(&fixedTopics{list: []string{"AI"}})
	room := s.Create(KindAssignedTopic, "")

	require.NoError(t, s.AddMember(room.ID, Member{ID: "a"}))
	require.NoError(t, s.AddMember(room.ID, Member{ID: "a"}), "re-adding a member is a no-op")
	assert.Equal(t, 1, room.Len())

	require.NoError(t, s.AddMember(room.ID, Member{ID: "b"}))
	assert.Equal(t, StateActive, room.State())

	err := s.AddMember(room.ID, Member{ID: "c"})
	require.ErrorIs(t, err, ErrRoomFull)
	assert.Equal(t, ErrCodeRoomFull, AsCoreError(err).Code)

	err = s.AddMember("missing", Member{ID: "c"})
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomStoreRemoveMemberClosesAtomically(t *testing.T) {
	s := NewRoomStore(&fixedTopics{list: []string{"AI"}})
	room := s.Create(KindAssignedTopic, "")
	require.NoError(t, s.AddMember(room.ID, Member{ID: "a"}))
	require.NoError(t, s.AddMember(room.ID, Member{ID: "b"}))
	room.agreed["a"] = true

	removed, closed := s.RemoveMember(room.ID, "a")
	assert.True(t, removed)
	assert.False(t, closed)
	assert.True(t, room.Active)
	assert.NotContains(t, room.agreed, "a", "agreement is dropped with the member")
	assert.Equal(t, StateWaitingForPartner, room.State())

	removed, closed = s.RemoveMember(room.ID, "a")
	assert.False(t, removed)
	assert.False(t, closed)

	removed, closed = s.RemoveMember(room.ID, "b")
	assert.True(t, removed)
	assert.True(t, closed)
	assert.False(t, room.Active)
	assert.Equal(t, StateClosed, room.State())

	err := s.AddMember(room.ID, Member{ID: "c"})
	require.ErrorIs(t, err, ErrRoomInactive)
	assert.Zero(t, room.Len(), "closed rooms never change membership")

	assert.Empty(t, s.Active())
	assert.Equal(t, 1, s.Len(), "closed rooms are retained")
}

func TestRoomSnapshotIsACopy(t *testing.T) {
	s := NewRoomStore(&fixedTopics{list: []string{"AI"}})
	room := s.Create(KindAssignedTopic, "")
	require.NoError(t, s.AddMember(room.ID, Member{ID: "a", Name: "A"}))
	room.agreed["a"] = true
	room.appendMessage(Message{ID: "m1", Content: "hi"})

	snap := room.Snapshot()
	snap.Members[0].Name = "changed"
	snap.Agreed["a"] = false
	snap.Messages[0].Content = "changed"

	assert.Equal(t, "A", room.members[0].Name)
	assert.True(t, room.agreed["a"])
	assert.Equal(t, "hi", room.messages[0].Content)
}

func TestParseRoomKind(t *testing.T) {
	cases := map[string]RoomKind{
		"assigned-topic": KindAssignedTopic,
		"free-topic":     KindFreeTopic,
		"open-topic":     KindOpenTopic,
		"change-my-mind": KindOpenTopic,
	}
	for in, want := range cases {
		got, ok := ParseRoomKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseRoomKind("lobby")
	assert.False(t, ok)
	assert.False(t, RoomKind("change-my-mind").Valid())
}
