package proto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJoinRoom(t *testing.T) {
	var d JoinRoomData
	err := Decode(json.RawMessage(`{"name":"  alice ","kind":"change-my-mind","room_id":" r1 "}`), &d)
	require.NoError(t, err)
	assert.Equal(t, JoinRoomData{Name: "alice", Kind: "change-my-mind", RoomID: "r1"}, d)
}

func TestDecodeRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		into any
		want string
	}{
		{"missing name", `{"kind":"free-topic"}`, &JoinRoomData{}, "name is required"},
		{"blank name", `{"name":"   ","kind":"free-topic"}`, &JoinRoomData{}, "name is required"},
		{"unknown kind", `{"name":"a","kind":"lobby"}`, &JoinRoomData{}, "kind must be one of"},
		{"empty content", `{"content":" "}`, &SendMessageData{}, "content is required"},
		{"long topic", `{"topic":"` + strings.Repeat("x", 201) + `"}`, &SetTopicData{}, "topic is too long"},
		{"not json", `{`, &SetTopicData{}, "decode payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Decode(json.RawMessage(tc.raw), tc.into)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestDecodeEmptyAgreePayload(t *testing.T) {
	var d AgreeOnTopicData
	require.NoError(t, Decode(nil, &d))
	assert.False(t, d.Agreed)
}
