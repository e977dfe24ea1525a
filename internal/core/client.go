package core

// DefaultClientBuffer is the event buffer used when NewClient gets a non-positive size.
const DefaultClientBuffer = 64

// Client is a connected peer as seen by the core layer. ID is the stable
// connection handle supplied by the transport.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}
