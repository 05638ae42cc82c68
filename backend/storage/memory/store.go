package memory

import (
	"sync"
	"time"

	"github.com/Tajmaha8849/VideoCall/backend/model"
	"github.com/Tajmaha8849/VideoCall/backend/roomcode"
	"github.com/Tajmaha8849/VideoCall/backend/storage"
)

// MemStore is the authoritative in-memory room store. All check-then-mutate
// sequences run under a single mutex, so a join can never overshoot capacity.
type MemStore struct {
	mx *sync.Mutex
	db map[string]*model.Room
}

func NewMemStore() *MemStore {
	return &MemStore{
		mx: &sync.Mutex{},
		db: make(map[string]*model.Room),
	}
}

// CreateRoom makes a room with a fresh unique code and the host as its only
// member. Code generation failure is an internal error, not a user-facing one.
func (ms *MemStore) CreateRoom(hostID, hostName string) (*model.Room, error) {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	code, err := roomcode.GenerateUnique(func(code string) bool {
		_, taken := ms.db[code]
		return !taken
	})
	if err != nil {
		return nil, err
	}

	room := &model.Room{
		Code:      code,
		CreatedAt: time.Now(),
		Members: []model.Participant{
			{ID: hostID, Name: hostName, IsHost: true},
		},
	}
	ms.db[code] = room
	return snapshot(room), nil
}

// JoinRoom adds a non-host participant. Capacity check and insert are one
// critical section.
func (ms *MemStore) JoinRoom(code, connID, name string) (*model.Room, error) {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	room, ok := ms.db[code]
	if !ok {
		return nil, storage.ErrRoomNotFound
	}
	for _, m := range room.Members {
		if m.ID == connID {
			return nil, storage.ErrAlreadyJoined
		}
	}
	if len(room.Members) == model.MaxRoomSize {
		return nil, storage.ErrRoomIsFull
	}

	room.Members = append(room.Members, model.Participant{ID: connID, Name: name})
	return snapshot(room), nil
}

// RemoveMember drops a participant and deletes the room once it is empty.
// Unknown codes and members are a no-op, since disconnect cleanup may race
// with room deletion.
func (ms *MemStore) RemoveMember(code, connID string) (*model.Room, bool) {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	room, ok := ms.db[code]
	if !ok {
		return nil, false
	}
	for i, m := range room.Members {
		if m.ID == connID {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			break
		}
	}
	if len(room.Members) == 0 {
		delete(ms.db, code)
		return nil, true
	}
	return snapshot(room), false
}

// GetMembers returns a join-ordered membership snapshot.
func (ms *MemStore) GetMembers(code string) ([]model.Participant, bool) {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	room, ok := ms.db[code]
	if !ok {
		return nil, false
	}
	return snapshot(room).Members, true
}

func (ms *MemStore) Rooms() []model.RoomInfo {
	ms.mx.Lock()
	defer ms.mx.Unlock()

	infos := make([]model.RoomInfo, 0, len(ms.db))
	for _, room := range ms.db {
		infos = append(infos, model.RoomInfo{
			Code:      room.Code,
			Members:   len(room.Members),
			CreatedAt: room.CreatedAt,
		})
	}
	return infos
}

// snapshot copies a room so callers never alias store-owned state.
func snapshot(room *model.Room) *model.Room {
	members := make([]model.Participant, len(room.Members))
	copy(members, room.Members)
	return &model.Room{
		Code:      room.Code,
		CreatedAt: room.CreatedAt,
		Members:   members,
	}
}
