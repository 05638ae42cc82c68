package model

import (
	"encoding/json"
	"time"
)

// MaxRoomSize is the hard cap on participants per room.
const MaxRoomSize = 4

// Inbound event types sent by clients.
const (
	EventCreateRoom       = "create-room"
	EventJoinRoom         = "join-room"
	EventOffer            = "offer"
	EventAnswer           = "answer"
	EventICECandidate     = "ice-candidate"
	EventTranslationAudio = "translation-audio"
)

// Outbound event types sent by the coordinator.
const (
	EventRoomCreated = "room-created"
	EventRoomJoined  = "room-joined"
	EventUserJoined  = "user-joined"
	EventUserLeft    = "user-left"
	EventError       = "error"
)

type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// Room is owned exclusively by the room store. Members keep join order,
// which is informational only.
type Room struct {
	Code      string
	CreatedAt time.Time
	Members   []Participant
}

// RoomInfo is a read-only room summary for the ops API.
type RoomInfo struct {
	Code      string    `json:"room_code"`
	Members   int       `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// Inbound is the envelope for every client event. Payload fields are opaque
// to the coordinator and relayed unchanged.
type Inbound struct {
	Type      string          `json:"type"`
	Name      string          `json:"name,omitempty"`
	RoomCode  string          `json:"roomCode,omitempty"`
	Target    string          `json:"target,omitempty"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
	Audio     json.RawMessage `json:"audio,omitempty"`
	Language  string          `json:"language,omitempty"`

	// From is re-assigned by the transport based on the websocket session.
	From string `json:"-"`
}

type RoomCreated struct {
	Type     string        `json:"type"`
	RoomCode string        `json:"roomCode"`
	IsHost   bool          `json:"isHost"`
	Users    []Participant `json:"users"`
}

type RoomJoined struct {
	Type     string        `json:"type"`
	RoomCode string        `json:"roomCode"`
	IsHost   bool          `json:"isHost"`
	Users    []Participant `json:"users"`
}

type UserJoined struct {
	Type  string        `json:"type"`
	User  Participant   `json:"user"`
	Users []Participant `json:"users"`
}

type UserLeft struct {
	Type   string        `json:"type"`
	UserID string        `json:"userId"`
	Users  []Participant `json:"users"`
}

type Offer struct {
	Type   string          `json:"type"`
	Offer  json.RawMessage `json:"offer"`
	Caller string          `json:"caller"`
}

type Answer struct {
	Type     string          `json:"type"`
	Answer   json.RawMessage `json:"answer"`
	Answerer string          `json:"answerer"`
}

type ICECandidate struct {
	Type      string          `json:"type"`
	Candidate json.RawMessage `json:"candidate"`
	Sender    string          `json:"sender"`
}

type TranslationAudio struct {
	Type     string          `json:"type"`
	Audio    json.RawMessage `json:"audio"`
	Language string          `json:"language"`
	Sender   string          `json:"sender"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Wire connects one websocket session to the coordinator.
// RX carries decoded client events, TX carries outbound events to marshal.
type Wire struct {
	RX chan Inbound
	TX chan any
}

func NewWire() Wire {
	return Wire{
		RX: make(chan Inbound),
		TX: make(chan any),
	}
}
