package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gyaneshwarpardhi/wirelab/internal/engine"
	"github.com/gyaneshwarpardhi/wirelab/internal/event"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 16 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Stream message kinds.
const (
	kindSnapshot = "snapshot"
	kindResult   = "result"
	kindError    = "error"
	kindClosed   = "closed"
)

// streamMessage is every frame the server sends on a session stream.
type streamMessage struct {
	Kind    string              `json:"kind"`
	Session *engine.SessionInfo `json:"session,omitempty"`
	Result  *engine.EventResult `json:"result,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// streamConn serialises writes; gorilla connections allow one writer at a time.
type streamConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *streamConn) send(m streamMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(m); err != nil {
		slog.Warn("stream write failed", "err", err)
		return err
	}
	return nil
}

// GET /v1/sessions/{id}/stream
//
// The client receives a snapshot, then every result applied to the session,
// whichever connection submitted it. Events sent by the client as JSON frames
// are applied like POST /v1/sessions/{id}/events; only failures are answered
// directly, successes arrive through the result stream.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	results, cancel, err := h.eng.Subscribe(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	defer cancel()

	info, err := h.eng.Session(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "session_id", id, "err", err)
		return
	}
	defer ws.Close()
	conn := &streamConn{ws: ws}
	slog.Info("stream opened", "session_id", id)

	if err := conn.send(streamMessage{Kind: kindSnapshot, Session: info}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var ev event.Event
			if err := ws.ReadJSON(&ev); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Warn("stream read failed", "session_id", id, "err", err)
				}
				return
			}
			ev.SessionID = id
			if ev.ID == "" {
				ev.ID = uuid.New().String()
			}
			ev.ReceivedAt = time.Now()
			if _, err := h.eng.ProcessSync(r.Context(), &ev); err != nil {
				if conn.send(streamMessage{Kind: kindError, Error: err.Error()}) != nil {
					return
				}
			}
		}
	}()

	for {
		select {
		case res, ok := <-results:
			if !ok {
				_ = conn.send(streamMessage{Kind: kindClosed})
				slog.Info("stream closed: session ended", "session_id", id)
				return
			}
			if conn.send(streamMessage{Kind: kindResult, Result: res}) != nil {
				return
			}
		case <-done:
			slog.Info("stream closed by client", "session_id", id)
			return
		}
	}
}
