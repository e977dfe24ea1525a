package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandConnect adds a client to the set that receives room directory updates.
	CommandConnect CommandKind = iota
	// CommandDisconnect removes a client and leaves its room.
	CommandDisconnect
	// CommandJoinRoom finds or creates a room for the client.
	CommandJoinRoom
	// CommandSendMessage posts a chat message to the client's room.
	CommandSendMessage
	// CommandSetTopic overwrites the topic of a free or open room.
	CommandSetTopic
	// CommandAgreeOnTopic records the client's agreement to rotate the topic.
	CommandAgreeOnTopic
	// CommandLeaveRoom leaves the current room without disconnecting.
	CommandLeaveRoom
	// CommandListRooms returns the active room directory.
	CommandListRooms
	// CommandGetRoom returns one room summary, active or not.
	CommandGetRoom
)

// Command represents an action requested by a client. Commands are applied by
// Hub.Run one at a time in submission order.
type Command struct {
	Kind     CommandKind
	Client   *Client
	Name     string
	RoomKind RoomKind
	RoomID   string
	Text     string
	Agreed   bool

	reply chan Reply
}

// Reply carries the synchronous result of a command.
type Reply struct {
	Room      RoomSnapshot
	Rooms     []RoomSummary
	Summary   RoomSummary
	Message   Message
	AllAgreed bool
	Err       error
}
