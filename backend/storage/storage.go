// Package storage defines the room store failure contract shared by
// implementations and their consumers.
package storage

import "errors"

var (
	ErrRoomNotFound  = errors.New("room is not found")
	ErrRoomIsFull    = errors.New("room is full")
	ErrAlreadyJoined = errors.New("already a member of this room")
)
