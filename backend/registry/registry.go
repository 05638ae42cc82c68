package registry

import "sync"

// Binding is the reverse index entry for one connection: which room it sits
// in and the display name it registered with.
type Binding struct {
	RoomCode string
	Name     string
}

// Registry maps live connection IDs to their room binding. It holds only the
// room code, never the room itself, so room deletion cannot leave dangling
// aliases here.
type Registry struct {
	mx *sync.Mutex
	db map[string]Binding
}

func New() *Registry {
	return &Registry{
		mx: &sync.Mutex{},
		db: make(map[string]Binding),
	}
}

func (r *Registry) Bind(connID, roomCode, name string) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.db[connID] = Binding{RoomCode: roomCode, Name: name}
}

func (r *Registry) Lookup(connID string) (Binding, bool) {
	r.mx.Lock()
	defer r.mx.Unlock()
	b, ok := r.db[connID]
	return b, ok
}

// Unbind is idempotent. Disconnect cleanup must never fail even if the entry
// was already removed.
func (r *Registry) Unbind(connID string) {
	r.mx.Lock()
	defer r.mx.Unlock()
	delete(r.db, connID)
}
