package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/debate-server/internal/proto"
)

// frame mirrors proto.Outbound with the payload kept raw.
type frame struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	name := flag.String("name", "tester", "display name")
	kind := flag.String("kind", "free-topic", "room kind: assigned-topic, free-topic, open-topic")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ, id string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, ID: id, Data: payload}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoinRoom, "join", proto.JoinRoomData{Name: *name, Kind: *kind}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeSendMessage, "msg", proto.SendMessageData{Content: *text}); err != nil {
		return err
	}

	for {
		var out frame
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received outbound: type=%s", out.Type)
		if out.ID != "" {
			fmt.Printf(" id=%s", out.ID)
		}
		if out.Event != "" {
			fmt.Printf(" event=%s", out.Event)
		}
		fmt.Println()

		if out.Error != nil {
			return fmt.Errorf("%s: %s", out.Error.Code, out.Error.Msg)
		}

		switch {
		case out.Type == proto.OutboundTypeAck && out.ID == "join":
			var room proto.Room
			if err := json.Unmarshal(out.Data, &room); err != nil {
				return fmt.Errorf("unmarshal room: %w", err)
			}
			fmt.Printf("Joined: room=%s kind=%s topic=%q users=%d\n", room.ID, room.Kind, room.Topic, len(room.Users))
		case out.Event == proto.EventMessage:
			var msg proto.ChatMessage
			if err := json.Unmarshal(out.Data, &msg); err != nil {
				return fmt.Errorf("unmarshal message: %w", err)
			}
			fmt.Printf("Message: sender=%s content=%q at=%s\n", msg.Sender, msg.Content, msg.Timestamp.Format(time.RFC3339))
			return nil
		}
	}
}
