package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/debate-server/internal/utils"
)

// DefaultCommandBuffer is the size of the hub command queue.
const DefaultCommandBuffer = 256

// Recorder receives engine measurements.
type Recorder interface {
	ClientConnected()
	ClientDisconnected()
	RoomCreated(kind string)
	SetActiveRooms(n int)
	MessagePosted()
	TopicRotated()
	EventDropped(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ClientConnected()    {}
func (nopRecorder) ClientDisconnected() {}
func (nopRecorder) RoomCreated(string)  {}
func (nopRecorder) SetActiveRooms(int)  {}
func (nopRecorder) MessagePosted()      {}
func (nopRecorder) TopicRotated()       {}
func (nopRecorder) EventDropped(string) {}

// Hub owns all rooms and participants. Every state change goes through Run,
// which applies commands one at a time and fans out the resulting events.
type Hub struct {
	commands chan *Command
	stopped  chan struct{}

	clients  map[string]*Client
	registry *Registry
	rooms    *RoomStore
	topics   TopicProvider

	metrics Recorder
	log     *zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// Option customises a Hub.
type Option func(*Hub)

// WithLogger sets the hub logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.log = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(h *Hub) {
		if r != nil {
			h.metrics = r
		}
	}
}

// WithCommandBuffer sets the command queue size.
func WithCommandBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.commands = make(chan *Command, n)
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Hub) {
		h.now = now
		h.rooms.now = now
	}
}

// NewHub creates a hub that draws assigned topics from topics.
func NewHub(topics TopicProvider, opts ...Option) *Hub {
	nop := zerolog.Nop()
	h := &Hub{
		commands: make(chan *Command, DefaultCommandBuffer),
		stopped:  make(chan struct{}),
		clients:  make(map[string]*Client),
		registry: NewRegistry(utils.NewID),
		rooms:    NewRoomStore(topics),
		topics:   topics,
		metrics:  nopRecorder{},
		log:      &nop,
		now:      time.Now,
		newID:    utils.NewID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run processes commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	h.log.Info().Msg("hub started")
	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("hub stopped")
			return
		case cmd := <-h.commands:
			cmd.reply <- h.handle(cmd)
		}
	}
}

func (h *Hub) handle(cmd *Command) Reply {
	switch cmd.Kind {
	case CommandConnect:
		h.connect(cmd.Client)
		return Reply{}
	case CommandDisconnect:
		h.disconnect(cmd.Client)
		return Reply{}
	case CommandJoinRoom:
		snap, err := h.joinRoom(cmd.Client, cmd.Name, cmd.RoomKind, cmd.RoomID)
		return Reply{Room: snap, Err: err}
	case CommandSendMessage:
		msg, err := h.sendMessage(cmd.Client, cmd.Text)
		return Reply{Message: msg, Err: err}
	case CommandSetTopic:
		return Reply{Err: h.setTopic(cmd.Client, cmd.Text)}
	case CommandAgreeOnTopic:
		all, err := h.toggleAgreement(cmd.Client, cmd.Agreed)
		return Reply{AllAgreed: all, Err: err}
	case CommandLeaveRoom:
		h.leave(cmd.Client)
		return Reply{}
	case CommandListRooms:
		return Reply{Rooms: h.activeRooms()}
	case CommandGetRoom:
		room, ok := h.rooms.Get(cmd.RoomID)
		if !ok {
			return Reply{Err: coreError(ErrRoomNotFound)}
		}
		return Reply{Summary: room.Summary()}
	default:
		return Reply{Err: badRequest("unknown command")}
	}
}

// do submits cmd and waits for its reply.
func (h *Hub) do(ctx context.Context, cmd *Command) Reply {
	cmd.reply = make(chan Reply, 1)
	select {
	case h.commands <- cmd:
	case <-ctx.Done():
		return Reply{Err: ctx.Err()}
	case <-h.stopped:
		return Reply{Err: ErrHubStopped}
	}
	select {
	case reply := <-cmd.reply:
		return reply
	case <-ctx.Done():
		return Reply{Err: ctx.Err()}
	case <-h.stopped:
		return Reply{Err: ErrHubStopped}
	}
}

// RegisterClient marks a connection as connected so it receives room directory updates.
func (h *Hub) RegisterClient(ctx context.Context, c *Client) error {
	return h.do(ctx, &Command{Kind: CommandConnect, Client: c}).Err
}

// UnregisterClient handles a transport disconnect: the client leaves its room
// and stops receiving events. Calling it twice is a no-op.
func (h *Hub) UnregisterClient(ctx context.Context, c *Client) error {
	return h.do(ctx, &Command{Kind: CommandDisconnect, Client: c}).Err
}

// JoinRoom places the client in a room of the given kind and returns its snapshot.
// A non-empty roomID is honoured only when it names an active room of the same kind.
func (h *Hub) JoinRoom(ctx context.Context, c *Client, name string, kind RoomKind, roomID string) (RoomSnapshot, error) {
	reply := h.do(ctx, &Command{Kind: CommandJoinRoom, Client: c, Name: name, RoomKind: kind, RoomID: roomID})
	return reply.Room, reply.Err
}

// SendMessage posts content to the client's room.
func (h *Hub) SendMessage(ctx context.Context, c *Client, content string) (Message, error) {
	reply := h.do(ctx, &Command{Kind: CommandSendMessage, Client: c, Text: content})
	return reply.Message, reply.Err
}

// SetTopic overwrites the topic of the client's free-topic or open-topic room.
func (h *Hub) SetTopic(ctx context.Context, c *Client, topic string) error {
	return h.do(ctx, &Command{Kind: CommandSetTopic, Client: c, Text: topic}).Err
}

// AgreeOnTopic records the client's agreement in an assigned-topic room and
// reports whether both members now agree.
func (h *Hub) AgreeOnTopic(ctx context.Context, c *Client, agreed bool) (bool, error) {
	reply := h.do(ctx, &Command{Kind: CommandAgreeOnTopic, Client: c, Agreed: agreed})
	return reply.AllAgreed, reply.Err
}

// LeaveRoom removes the client from its room. It is safe to call repeatedly.
func (h *Hub) LeaveRoom(ctx context.Context, c *Client) error {
	return h.do(ctx, &Command{Kind: CommandLeaveRoom, Client: c}).Err
}

// ActiveRooms returns the room directory.
func (h *Hub) ActiveRooms(ctx context.Context) ([]RoomSummary, error) {
	reply := h.do(ctx, &Command{Kind: CommandListRooms})
	return reply.Rooms, reply.Err
}

// Room returns the summary of any room created since start, closed ones included.
func (h *Hub) Room(ctx context.Context, id string) (RoomSummary, error) {
	reply := h.do(ctx, &Command{Kind: CommandGetRoom, RoomID: id})
	return reply.Summary, reply.Err
}
