package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/debate-server/internal/proto"
)

type frame struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	name := flag.String("name", "cli-user", "display name")
	kind := flag.String("kind", "assigned-topic", "room kind: assigned-topic, free-topic, open-topic")
	room := flag.String("room", "", "explicit room id (open-topic rooms)")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	c := &chat{ctx: ctx, conn: conn}
	if err := c.send(proto.InboundTypeJoinRoom, proto.JoinRoomData{Name: *name, Kind: *kind, RoomID: *room}); err != nil {
		return err
	}

	fmt.Printf("Connected to %s as %s (%s)\n", *addr, *name, *kind)
	fmt.Println("Type messages and press Enter. Commands: /topic <text>, /agree, /disagree, /rooms, /leave. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	c.writeLoop()

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

type chat struct {
	ctx  context.Context
	conn *websocket.Conn
	seq  int
}

func (c *chat) send(typ string, data any) error {
	c.seq++
	var payload json.RawMessage
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		payload = raw
	}
	if err := wsjson.Write(c.ctx, c.conn, proto.Inbound{Type: typ, ID: strconv.Itoa(c.seq), Data: payload}); err != nil {
		return fmt.Errorf("send %s: %w", typ, err)
	}
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var out frame
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if out.Error != nil {
			fmt.Printf("! %s: %s\n", out.Error.Code, out.Error.Msg)
			continue
		}
		if out.Type == proto.OutboundTypeAck {
			printAck(out)
			continue
		}
		printEvent(out)
	}
}

func printAck(out frame) {
	var room proto.Room
	if err := json.Unmarshal(out.Data, &room); err == nil && room.ID != "" {
		fmt.Printf("* joined room %s, topic: %q, %d/2 debaters\n", room.ID, room.Topic, len(room.Users))
		return
	}
	var rooms []proto.RoomSummary
	if err := json.Unmarshal(out.Data, &rooms); err == nil {
		for _, r := range rooms {
			fmt.Printf("* %s [%s] %q %d/2\n", r.ID, r.Kind, r.Topic, len(r.Users))
		}
	}
}

func printEvent(out frame) {
	switch out.Event {
	case proto.EventMessage:
		var msg proto.ChatMessage
		if err := json.Unmarshal(out.Data, &msg); err != nil {
			log.Printf("unmarshal message: %v", err)
			return
		}
		fmt.Printf("%s: %s\n", msg.Sender, msg.Content)
	case proto.EventUserJoined:
		var user proto.User
		if err := json.Unmarshal(out.Data, &user); err != nil {
			log.Printf("unmarshal userJoined: %v", err)
			return
		}
		fmt.Printf("* %s joined, the debate starts\n", user.Name)
	case proto.EventUserLeft:
		fmt.Println("* your opponent left")
	case proto.EventTopicChanged:
		var data proto.EventTopicChangedData
		if err := json.Unmarshal(out.Data, &data); err != nil {
			log.Printf("unmarshal topicChanged: %v", err)
			return
		}
		fmt.Printf("* new topic: %q\n", data.Topic)
	case proto.EventTimerReset:
		fmt.Println("* timer reset")
	case proto.EventRoomClosed:
		fmt.Println("* room closed")
	case proto.EventRoomsUpdated:
		// directory noise
	default:
		fmt.Printf("event=%s data=%s\n", out.Event, string(out.Data))
	}
}

func (c *chat) writeLoop() {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}
			if err := c.dispatch(text); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func (c *chat) dispatch(text string) error {
	switch {
	case strings.HasPrefix(text, "/topic "):
		return c.send(proto.InboundTypeSetTopic, proto.SetTopicData{Topic: strings.TrimPrefix(text, "/topic ")})
	case text == "/agree":
		return c.send(proto.InboundTypeAgreeOnTopic, proto.AgreeOnTopicData{Agreed: true})
	case text == "/disagree":
		return c.send(proto.InboundTypeAgreeOnTopic, proto.AgreeOnTopicData{Agreed: false})
	case text == "/rooms":
		return c.send(proto.InboundTypeGetActiveRooms, nil)
	case text == "/leave":
		return c.send(proto.InboundTypeLeaveRoom, nil)
	default:
		return c.send(proto.InboundTypeSendMessage, proto.SendMessageData{Content: text})
	}
}
