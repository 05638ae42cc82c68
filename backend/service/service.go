package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Tajmaha8849/VideoCall/backend/model"
	"github.com/Tajmaha8849/VideoCall/backend/registry"
	"github.com/Tajmaha8849/VideoCall/backend/storage"
	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
)

// User-facing failure messages. Everything else stays in the logs.
const (
	msgNameRequired  = "Name is required"
	msgCodeRequired  = "Room code is required"
	msgAlreadyInRoom = "Already in a room"
	msgRoomNotFound  = "Room not found"
	msgRoomIsFull    = "Room is full"
	msgInternal      = "Internal error"
)

type (
	RoomStore interface {
		CreateRoom(hostID, hostName string) (*model.Room, error)
		JoinRoom(code, connID, name string) (*model.Room, error)
		RemoveMember(code, connID string) (*model.Room, bool)
		GetMembers(code string) ([]model.Participant, bool)
	}

	ConnRegistry interface {
		Bind(connID, roomCode, name string)
		Lookup(connID string) (registry.Binding, bool)
		Unbind(connID string)
	}

	Switch interface {
		Attach(connID string, wire model.Wire)
		Detach(connID string)
		Send(ctx context.Context, connID string, event any) bool
	}

	// Service is the signaling coordinator. It consumes inbound events from
	// per-connection wires, drives the room store and registry, and emits
	// targeted or broadcast events through the switch.
	//
	// mx serializes event handling with disconnect cleanup: the registry and
	// store are mutated in multi-step sequences, and a transport-side
	// disconnect must never interleave with a join still in flight on the
	// connection's dispatch goroutine.
	Service struct {
		store  RoomStore
		reg    ConnRegistry
		sw     Switch
		mx     sync.Mutex
		logger zerolog.Logger
	}

	Config struct {
		RoomStore RoomStore
		Registry  ConnRegistry
		Switch    Switch
		Logger    *zerolog.Logger
	}
)

func NewService(cfg Config) *Service {
	return &Service{
		store:  cfg.RoomStore,
		reg:    cfg.Registry,
		sw:     cfg.Switch,
		logger: cfg.Logger.With().Str("component", "coordinator").Logger(),
	}
}

// Connect attaches a wire and starts dispatching its inbound events.
// The dispatch goroutine lives until ctx is canceled or RX is closed.
func (svc *Service) Connect(ctx context.Context, connID string, wire model.Wire) {
	svc.sw.Attach(connID, wire)
	go svc.dispatch(ctx, connID, wire.RX)
}

// Disconnect tears down everything the connection left behind. Safe to call
// more than once for the same connection.
func (svc *Service) Disconnect(ctx context.Context, connID string) {
	defer svc.sw.Detach(connID)

	svc.mx.Lock()
	defer svc.mx.Unlock()

	binding, ok := svc.reg.Lookup(connID)
	if !ok {
		return // never joined a room, or already cleaned up
	}
	svc.reg.Unbind(connID)

	room, deleted := svc.store.RemoveMember(binding.RoomCode, connID)
	if deleted {
		svc.logger.Debug().
			Str("roomCode", binding.RoomCode).
			Msg("room deleted")
		return
	}
	if room == nil {
		return // removal raced with deletion, nothing to announce
	}

	left := model.UserLeft{
		Type:   model.EventUserLeft,
		UserID: connID,
		Users:  room.Members,
	}
	for _, m := range room.Members {
		svc.sw.Send(ctx, m.ID, left)
	}
	svc.logger.Debug().
		Str("connID", connID).
		Str("roomCode", binding.RoomCode).
		Msg("participant left room")
}

func (svc *Service) dispatch(ctx context.Context, connID string, rx <-chan model.Inbound) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-rx:
			if !ok {
				return
			}
			ev.From = connID
			svc.handle(ctx, ev)
		}
	}
}

func (svc *Service) handle(ctx context.Context, ev model.Inbound) {
	svc.mx.Lock()
	defer svc.mx.Unlock()

	if e := svc.logger.Trace(); e.Enabled() {
		e.Str("connID", ev.From).Str("event", spew.Sdump(ev)).Msg("inbound event")
	}

	switch ev.Type {
	case model.EventCreateRoom:
		svc.createRoom(ctx, ev)
	case model.EventJoinRoom:
		svc.joinRoom(ctx, ev)
	case model.EventOffer, model.EventAnswer, model.EventICECandidate:
		svc.relay(ctx, ev)
	case model.EventTranslationAudio:
		svc.translationAudio(ctx, ev)
	default:
		svc.logger.Debug().
			Str("connID", ev.From).
			Str("type", ev.Type).
			Msg("unknown event type")
	}
}

func (svc *Service) createRoom(ctx context.Context, ev model.Inbound) {
	if ev.Name == "" {
		svc.sendError(ctx, ev.From, msgNameRequired)
		return
	}
	if _, ok := svc.reg.Lookup(ev.From); ok {
		svc.sendError(ctx, ev.From, msgAlreadyInRoom)
		return
	}

	room, err := svc.store.CreateRoom(ev.From, ev.Name)
	if err != nil {
		svc.logger.Error().Err(err).Msg("room creation failed")
		svc.sendError(ctx, ev.From, msgInternal)
		return
	}
	svc.reg.Bind(ev.From, room.Code, ev.Name)

	svc.sw.Send(ctx, ev.From, model.RoomCreated{
		Type:     model.EventRoomCreated,
		RoomCode: room.Code,
		IsHost:   true,
		Users:    room.Members,
	})
	svc.logger.Debug().
		Str("connID", ev.From).
		Str("roomCode", room.Code).
		Msg("room created")
}

func (svc *Service) joinRoom(ctx context.Context, ev model.Inbound) {
	if ev.Name == "" {
		svc.sendError(ctx, ev.From, msgNameRequired)
		return
	}
	if ev.RoomCode == "" {
		svc.sendError(ctx, ev.From, msgCodeRequired)
		return
	}
	if _, ok := svc.reg.Lookup(ev.From); ok {
		svc.sendError(ctx, ev.From, msgAlreadyInRoom)
		return
	}

	code := strings.ToUpper(ev.RoomCode)
	room, err := svc.store.JoinRoom(code, ev.From, ev.Name)
	switch {
	case errors.Is(err, storage.ErrRoomNotFound):
		svc.sendError(ctx, ev.From, msgRoomNotFound)
		return
	case errors.Is(err, storage.ErrRoomIsFull):
		svc.sendError(ctx, ev.From, msgRoomIsFull)
		return
	case err != nil:
		svc.logger.Error().Err(err).Str("roomCode", code).Msg("join failed")
		svc.sendError(ctx, ev.From, msgInternal)
		return
	}
	svc.reg.Bind(ev.From, room.Code, ev.Name)

	svc.sw.Send(ctx, ev.From, model.RoomJoined{
		Type:     model.EventRoomJoined,
		RoomCode: room.Code,
		IsHost:   false,
		Users:    room.Members,
	})

	joined := model.UserJoined{
		Type:  model.EventUserJoined,
		User:  model.Participant{ID: ev.From, Name: ev.Name},
		Users: room.Members,
	}
	for _, m := range room.Members {
		if m.ID != ev.From {
			svc.sw.Send(ctx, m.ID, joined)
		}
	}
	svc.logger.Debug().
		Str("connID", ev.From).
		Str("roomCode", room.Code).
		Msg("participant joined room")
}

// relay forwards an opaque handshake payload to its target, tagged with the
// sender's connection ID. Sender and target must share a room; everything
// else is dropped without an error since signaling to a vanished peer is
// expected to be transient.
func (svc *Service) relay(ctx context.Context, ev model.Inbound) {
	if ev.Target == "" {
		svc.logger.Debug().Str("connID", ev.From).Str("type", ev.Type).Msg("relay without target")
		return
	}
	sender, ok := svc.reg.Lookup(ev.From)
	if !ok {
		svc.logger.Debug().Str("connID", ev.From).Str("type", ev.Type).Msg("relay from unaffiliated connection")
		return
	}
	target, ok := svc.reg.Lookup(ev.Target)
	if !ok || target.RoomCode != sender.RoomCode {
		svc.logger.Debug().
			Str("connID", ev.From).
			Str("target", ev.Target).
			Str("type", ev.Type).
			Msg("relay target not in sender's room, dropped")
		return
	}

	var out any
	switch ev.Type {
	case model.EventOffer:
		out = model.Offer{Type: model.EventOffer, Offer: ev.Offer, Caller: ev.From}
	case model.EventAnswer:
		out = model.Answer{Type: model.EventAnswer, Answer: ev.Answer, Answerer: ev.From}
	case model.EventICECandidate:
		out = model.ICECandidate{Type: model.EventICECandidate, Candidate: ev.Candidate, Sender: ev.From}
	}
	svc.sw.Send(ctx, ev.Target, out)
}

// translationAudio broadcasts a translated audio blob to every other room
// member. A sender outside any room is dropped silently.
func (svc *Service) translationAudio(ctx context.Context, ev model.Inbound) {
	binding, ok := svc.reg.Lookup(ev.From)
	if !ok {
		return
	}
	members, ok := svc.store.GetMembers(binding.RoomCode)
	if !ok {
		// registry says the sender is in a room the store does not have;
		// the two must never disagree
		svc.logger.Error().
			Str("connID", ev.From).
			Str("roomCode", binding.RoomCode).
			Msg("registry/store membership mismatch")
		return
	}

	audio := model.TranslationAudio{
		Type:     model.EventTranslationAudio,
		Audio:    ev.Audio,
		Language: ev.Language,
		Sender:   ev.From,
	}
	for _, m := range members {
		if m.ID != ev.From {
			svc.sw.Send(ctx, m.ID, audio)
		}
	}
}

func (svc *Service) sendError(ctx context.Context, connID, message string) {
	svc.sw.Send(ctx, connID, model.ErrorEvent{
		Type:    model.EventError,
		Message: message,
	})
}
