package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedTopics cycles through a list so tests know which topic comes next.
type fixedTopics struct {
	list []string
	i    int
}

func (f *fixedTopics) Random() string {
	t := f.list[f.i%len(f.list)]
	f.i++
	return t
}

func (f *fixedTopics) Next(current string) string {
	for range f.list {
		t := f.Random()
		if t != current {
			return t
		}
	}
	return current
}

func newTestHub(t *testing.T, opts ...Option) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(&fixedTopics{list: []string{"T1", "T2", "T3"}}, opts...)
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func connect(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()

	c := NewClient(id, 0)
	require.NoError(t, hub.RegisterClient(testCtx(t), c))
	return c
}

func testCtx(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// drain returns the kinds of every event already queued for a client.
// Hub calls deliver events before replying, so the queue is complete once a call returns.
func drain(c *Client) []EventKind {
	var kinds []EventKind
	for {
		select {
		case ev := <-c.Events:
			kinds = append(kinds, ev.Kind)
		default:
			return kinds
		}
	}
}

func withoutDirectory(kinds []EventKind) []EventKind {
	out := kinds[:0:0]
	for _, k := range kinds {
		if k != EventRoomsUpdated {
			out = append(out, k)
		}
	}
	return out
}
