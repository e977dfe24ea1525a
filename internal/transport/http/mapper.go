package http

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/vovakirdan/debate-server/internal/core"
	"github.com/vovakirdan/debate-server/internal/proto"
)

// isFatal reports errors after which the connection cannot be served any more.
func isFatal(err error) bool {
	return errors.Is(err, core.ErrHubStopped) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func protoError(err error) *proto.Error {
	ce := core.AsCoreError(err)
	if ce == nil {
		return nil
	}
	return &proto.Error{Code: ce.Code, Msg: ce.Message}
}

// nack builds the negative acknowledgment for a request, keeping the boolean
// fields each request type promises.
func nack(inbound proto.Inbound, perr *proto.Error) *proto.Outbound {
	out := &proto.Outbound{Type: proto.OutboundTypeAck, ID: inbound.ID, Error: perr}
	switch inbound.Type {
	case proto.InboundTypeSendMessage:
		out.Data = proto.SendMessageAck{Delivered: false}
	case proto.InboundTypeSetTopic:
		out.Data = proto.SetTopicAck{Success: false}
	case proto.InboundTypeAgreeOnTopic:
		out.Data = proto.AgreeOnTopicAck{Success: false, AllAgreed: false}
	case proto.InboundTypeJoinRoom, proto.InboundTypeGetActiveRooms, proto.InboundTypeLeaveRoom:
	default:
		out.Type = proto.OutboundTypeError
	}
	return out
}

func ack(inbound proto.Inbound, data any) *proto.Outbound {
	return &proto.Outbound{Type: proto.OutboundTypeAck, ID: inbound.ID, Data: data}
}

func toUsers(members []core.Member) []proto.User {
	return lo.Map(members, func(m core.Member, _ int) proto.User {
		return proto.User{ID: m.ID, Name: m.Name}
	})
}

func toChatMessage(m core.Message) proto.ChatMessage {
	return proto.ChatMessage{
		ID:            m.ID,
		Content:       m.Content,
		Sender:        m.Sender,
		Timestamp:     m.CreatedAt,
		IsSystem:      m.System,
		IsAgreement:   m.Agreement,
		IsTopicChange: m.TopicChange,
	}
}

func roomSnapshot(s core.RoomSnapshot) proto.Room {
	agreed := s.Agreed
	if agreed == nil {
		agreed = map[string]bool{}
	}
	return proto.Room{
		ID:        s.ID,
		Kind:      string(s.Kind),
		Users:     toUsers(s.Members),
		Messages:  lo.Map(s.Messages, func(m core.Message, _ int) proto.ChatMessage { return toChatMessage(m) }),
		Topic:     s.Topic,
		Agreed:    agreed,
		StartTime: s.CreatedAt,
		Active:    s.Active,
	}
}

func roomSummary(s core.RoomSummary) proto.RoomSummary {
	return proto.RoomSummary{
		ID:        s.ID,
		Kind:      string(s.Kind),
		Topic:     s.Topic,
		StartTime: s.CreatedAt,
		Active:    s.Active,
		Users:     toUsers(s.Members),
	}
}

func roomSummaries(rooms []core.RoomSummary) []proto.RoomSummary {
	return lo.Map(rooms, func(r core.RoomSummary, _ int) proto.RoomSummary { return roomSummary(r) })
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	out := proto.Outbound{Type: proto.OutboundTypeEvent, Event: event.Kind.String()}
	switch event.Kind {
	case core.EventUserJoined:
		out.Data = proto.User{ID: event.Member.ID, Name: event.Member.Name}
	case core.EventUserLeft:
		out.Data = proto.EventUserLeftData{RoomID: event.RoomID, UserID: event.ParticipantID}
	case core.EventMessage:
		out.Data = toChatMessage(event.Message)
	case core.EventTopicChanged:
		out.Data = proto.EventTopicChangedData{RoomID: event.RoomID, Topic: event.Topic}
	case core.EventTimerReset, core.EventRoomClosed:
		out.Data = proto.EventRoomData{RoomID: event.RoomID}
	case core.EventRoomsUpdated:
		out.Data = roomSummaries(event.Rooms)
	}
	return out
}
