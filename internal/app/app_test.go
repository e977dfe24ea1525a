package app

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/debate-server/internal/config"
	"github.com/vovakirdan/debate-server/internal/proto"
)

func TestAppServesMetricsForJoinedRooms(t *testing.T) {
	cfg := config.Default()
	application := New(&cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go application.Hub().Run(ctx)

	ts := httptest.NewServer(application.Handler())
	defer ts.Close()

	dialCtx, dialCancel := context.WithTimeout(ctx, 5*time.Second)
	defer dialCancel()
	conn, _, err := websocket.Dial(dialCtx, strings.Replace(ts.URL, "http", "ws", 1)+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	join := proto.Inbound{Type: proto.InboundTypeJoinRoom, ID: "1", Data: []byte(`{"name":"alice","kind":"free-topic"}`)}
	require.NoError(t, wsjson.Write(dialCtx, conn, join))
	for {
		var out proto.Outbound
		require.NoError(t, wsjson.Read(dialCtx, conn, &out))
		if out.Type == proto.OutboundTypeAck && out.ID == "1" {
			require.Nil(t, out.Error)
			break
		}
	}

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `debate_rooms_created_total{kind="free-topic"} 1`)
	assert.Contains(t, string(body), "debate_active_rooms 1")
	assert.Contains(t, string(body), "debate_connected_clients 1")
}

func TestAppRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	application := New(&cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
