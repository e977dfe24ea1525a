package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"slices"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/debate-server/internal/config"
	"github.com/vovakirdan/debate-server/internal/core"
	"github.com/vovakirdan/debate-server/internal/proto"
	"github.com/vovakirdan/debate-server/internal/utils"
)

const disconnectTimeout = 5 * time.Second

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub *core.Hub
	cfg *config.Config
	log *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, cfg: cfg, log: logger}
}

func (h *WSHandler) acceptOptions() *websocket.AcceptOptions {
	if len(h.cfg.AllowedOrigins) == 0 || slices.Contains(h.cfg.AllowedOrigins, "*") {
		return &websocket.AcceptOptions{InsecureSkipVerify: true}
	}
	return &websocket.AcceptOptions{OriginPatterns: h.cfg.AllowedOrigins}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, h.acceptOptions())
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")
	if h.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(h.cfg.MaxMessageBytes)
	}

	client := core.NewClient(utils.NewID(), h.cfg.ClientBuffer)
	if err := h.hub.RegisterClient(ctx, client); err != nil {
		h.log.Error().Err(err).Msg("register client")
		conn.Close(websocket.StatusTryAgainLater, "server unavailable")
		return
	}
	defer func() {
		// The request context is already cancelled here.
		dctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if err := h.hub.UnregisterClient(dctx, client); err != nil {
			h.log.Warn().Err(err).Str("client_id", client.ID).Msg("unregister client")
		}
	}()

	h.log.Debug().Str("client_id", client.ID).Msg("ws connected")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != -1 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Str("client_id", client.ID).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	limiter := newRateLimiter(h.cfg.RateLimitPerMinute)
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		// Every frame counts against the limit, malformed ones included.
		allowed := limiter.allow()

		var inbound proto.Inbound
		if err := json.Unmarshal(data, &inbound); err != nil {
			h.log.Debug().Err(err).Str("client_id", client.ID).Msg("malformed inbound frame")
			perr := &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed message"}
			if !allowed {
				perr = rateLimitedError()
			}
			if err := wsjson.Write(ctx, conn, proto.Outbound{Type: proto.OutboundTypeError, Error: perr}); err != nil {
				return err
			}
			continue
		}

		var out *proto.Outbound
		// Leaving stays possible for a limited client.
		if allowed || inbound.Type == proto.InboundTypeLeaveRoom {
			out, err = h.handleInbound(ctx, client, inbound)
			if err != nil {
				return err
			}
		} else {
			out = nack(inbound, rateLimitedError())
		}
		if out == nil {
			continue
		}
		if err := wsjson.Write(ctx, conn, out); err != nil {
			return err
		}
	}
}

func rateLimitedError() *proto.Error {
	return &proto.Error{Code: core.ErrCodeRateLimited, Msg: "too many requests"}
}

// handleInbound runs one request against the hub and builds its acknowledgment.
// A nil Outbound means the request has none. Errors are returned only when the
// connection must be closed.
func (h *WSHandler) handleInbound(ctx context.Context, client *core.Client, inbound proto.Inbound) (*proto.Outbound, error) {
	logger := h.log.With().Str("client_id", client.ID).Str("type", inbound.Type).Logger()

	fail := func(err error) (*proto.Outbound, error) {
		if isFatal(err) {
			return nil, err
		}
		logger.Debug().Err(err).Msg("request rejected")
		return nack(inbound, protoError(err)), nil
	}
	badPayload := func(err error) (*proto.Outbound, error) {
		logger.Debug().Err(err).Msg("invalid payload")
		return nack(inbound, &proto.Error{Code: core.ErrCodeBadRequest, Msg: err.Error()}), nil
	}

	switch inbound.Type {
	case proto.InboundTypeGetActiveRooms:
		rooms, err := h.hub.ActiveRooms(ctx)
		if err != nil {
			return fail(err)
		}
		return ack(inbound, roomSummaries(rooms)), nil

	case proto.InboundTypeJoinRoom:
		var data proto.JoinRoomData
		if err := proto.Decode(inbound.Data, &data); err != nil {
			return badPayload(err)
		}
		kind, _ := core.ParseRoomKind(data.Kind)
		snap, err := h.hub.JoinRoom(ctx, client, data.Name, kind, data.RoomID)
		if err != nil {
			return fail(err)
		}
		return ack(inbound, roomSnapshot(snap)), nil

	case proto.InboundTypeSendMessage:
		var data proto.SendMessageData
		if err := proto.Decode(inbound.Data, &data); err != nil {
			return badPayload(err)
		}
		if _, err := h.hub.SendMessage(ctx, client, data.Content); err != nil {
			return fail(err)
		}
		return ack(inbound, proto.SendMessageAck{Delivered: true}), nil

	case proto.InboundTypeSetTopic:
		var data proto.SetTopicData
		if err := proto.Decode(inbound.Data, &data); err != nil {
			return badPayload(err)
		}
		if err := h.hub.SetTopic(ctx, client, data.Topic); err != nil {
			return fail(err)
		}
		return ack(inbound, proto.SetTopicAck{Success: true}), nil

	case proto.InboundTypeAgreeOnTopic:
		var data proto.AgreeOnTopicData
		if err := proto.Decode(inbound.Data, &data); err != nil {
			return badPayload(err)
		}
		all, err := h.hub.AgreeOnTopic(ctx, client, data.Agreed)
		if err != nil {
			return fail(err)
		}
		return ack(inbound, proto.AgreeOnTopicAck{Success: true, AllAgreed: all}), nil

	case proto.InboundTypeLeaveRoom:
		if err := h.hub.LeaveRoom(ctx, client); err != nil && isFatal(err) {
			return nil, err
		}
		return nil, nil

	default:
		return &proto.Outbound{
			Type:  proto.OutboundTypeError,
			ID:    inbound.ID,
			Error: &proto.Error{Code: core.ErrCodeUnknownRequest, Msg: "unknown message type"},
		}, nil
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
