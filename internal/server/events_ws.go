package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/finobai/finobai/internal/events"
)

// EventsHandler streams bus events to websocket clients.
type EventsHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewEventsHandler creates a new events websocket handler
func NewEventsHandler(bus *events.Bus, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		bus: bus,
		log: log.With().Str("component", "events_ws").Logger(),
	}
}

// HandleWebSocket handles GET /api/events/ws
//
// Each connection gets its own bus subscription; the bus drops events
// for subscribers that stop draining, so one stuck dashboard cannot
// stall analysis.
func (h *EventsHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection closed")

	id, ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(id)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.log.Info().Int("subscriber", id).Msg("Events client connected")

	// Drain reads so client close frames are noticed.
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Int("subscriber", id).Msg("Events client disconnected")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			writeCtx, writeCancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, event)
			writeCancel()
			if err != nil {
				h.log.Debug().Err(err).Int("subscriber", id).Msg("WebSocket write failed")
				return
			}
		}
	}
}
