package _switch

import (
	"context"
	"sync"
	"time"

	"github.com/Tajmaha8849/VideoCall/backend/model"
	"github.com/rs/zerolog"
)

const (
	defaultFwdTimout = time.Second
)

// Switch owns the delivery plane: one wire per live connection. The
// coordinator decides who receives an event, the switch only moves it.
type Switch struct {
	logger zerolog.Logger
	mx     *sync.RWMutex
	wires  map[string]model.Wire
}

func NewSwitch(logger *zerolog.Logger) *Switch {
	return &Switch{
		logger: logger.With().Str("component", "switch").Logger(),
		mx:     &sync.RWMutex{},
		wires:  make(map[string]model.Wire),
	}
}

func (sw *Switch) Attach(connID string, wire model.Wire) {
	sw.mx.Lock()
	sw.wires[connID] = wire
	sw.mx.Unlock()
	sw.logger.Debug().
		Str("connID", connID).
		Msg("endpoint attached")
}

func (sw *Switch) Detach(connID string) {
	sw.mx.Lock()
	delete(sw.wires, connID)
	sw.mx.Unlock()
	sw.logger.Debug().
		Str("connID", connID).
		Msg("endpoint detached")
}

// Send forwards an event to one connection, fire-and-forget. A missing or
// dead endpoint is reported as false and never blocks the caller beyond the
// forward timeout.
func (sw *Switch) Send(ctx context.Context, connID string, event any) bool {
	sw.mx.RLock()
	wire, ok := sw.wires[connID]
	sw.mx.RUnlock()

	if !ok {
		sw.logger.Debug().Str("dst", connID).Msg("cannot forward, dst not found")
		return false
	}

	var sent bool
	tCh := time.NewTimer(defaultFwdTimout)
	select {
	case <-ctx.Done():
	case <-tCh.C:
		sw.logger.Error().Str("dst", connID).Msg("dead endpoint")
	case wire.TX <- event:
		sw.logger.Trace().Str("dst", connID).Msg("event is forwarded")
		sent = true
	}
	tCh.Stop()
	return sent
}
