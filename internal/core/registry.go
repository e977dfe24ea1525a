package core

// Participant is a named client occupying at most one room.
type Participant struct {
	ID     string
	Name   string
	RoomID string

	client *Client
}

// Member returns the public view of the participant.
func (p *Participant) Member() Member {
	return Member{ID: p.ID, Name: p.Name}
}

// Registry maps connection handles to participants. Lookups by connection are
// direct. It is owned by the hub loop and is not safe for concurrent use on its own.
type Registry struct {
	byID     map[string]*Participant
	byClient map[string]*Participant
	newID    func() string
}

// NewRegistry builds an empty registry.
func NewRegistry(newID func() string) *Registry {
	return &Registry{
		byID:     make(map[string]*Participant),
		byClient: make(map[string]*Participant),
		newID:    newID,
	}
}

// Register creates a participant for the client. If the connection already has
// one, that participant is returned together with ErrDuplicateConnection.
func (r *Registry) Register(c *Client, name string) (*Participant, error) {
	if existing, ok := r.byClient[c.ID]; ok {
		return existing, ErrDuplicateConnection
	}
	p := &Participant{ID: r.newID(), Name: name, client: c}
	r.byID[p.ID] = p
	r.byClient[c.ID] = p
	return p, nil
}

// Find returns the participant registered for a connection handle.
func (r *Registry) Find(clientID string) (*Participant, bool) {
	p, ok := r.byClient[clientID]
	return p, ok
}

// Get returns a participant by id.
func (r *Registry) Get(participantID string) (*Participant, bool) {
	p, ok := r.byID[participantID]
	return p, ok
}

// Unregister removes a participant. Unknown ids are ignored.
func (r *Registry) Unregister(participantID string) {
	p, ok := r.byID[participantID]
	if !ok {
		return
	}
	delete(r.byID, participantID)
	if current, ok := r.byClient[p.client.ID]; ok && current == p {
		delete(r.byClient, p.client.ID)
	}
}

// Len returns the number of registered participants.
func (r *Registry) Len() int {
	return len(r.byID)
}
