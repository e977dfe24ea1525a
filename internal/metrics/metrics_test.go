package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/debate-server/internal/core"
	"github.com/vovakirdan/debate-server/internal/topics"
)

var _ core.Recorder = (*Metrics)(nil)

func TestMetricsFollowHubActivity(t *testing.T) {
	m := New()
	hub := core.NewHub(topics.Default(), core.WithRecorder(m))

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(runCtx)

	ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()

	alice := core.NewClient("a", 0)
	bob := core.NewClient("b", 0)
	for _, c := range []*core.Client{alice, bob} {
		require.NoError(t, hub.RegisterClient(ctx, c))
		_, err := hub.JoinRoom(ctx, c, c.ID, core.KindAssignedTopic, "")
		require.NoError(t, err)
	}
	_, err := hub.SendMessage(ctx, alice, "hello")
	require.NoError(t, err)
	_, err = hub.AgreeOnTopic(ctx, alice, true)
	require.NoError(t, err)
	_, err = hub.AgreeOnTopic(ctx, bob, true)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.connectedClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeRooms))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.roomsCreated.WithLabelValues(string(core.KindAssignedTopic))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.messages))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.topicRotations))

	require.NoError(t, hub.UnregisterClient(ctx, alice))
	require.NoError(t, hub.UnregisterClient(ctx, bob))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.connectedClients))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activeRooms))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.MessagePosted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "debate_messages_total 1")
}
