package router

import (
	"errors"
	"fmt"
	"net"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
)

// WSHandlers holds the callbacks for a WebSocket route. All fields are optional.
type WSHandlers[C handler.Context] struct {
	// Upgrade runs after the router's before stages and before the handshake
	// is accepted. Halting it sends the attached response instead of upgrading.
	// After stages never run for WebSocket routes.
	Upgrade handler.Middleware[C]

	// Open runs once the connection is established.
	Open func(ctx C, conn *Conn)

	// Message runs for every inbound data message.
	Message func(ctx C, conn *Conn, msg Message)

	// Close runs once the connection ends, with the peer's close code when one
	// was received, websocket.CloseInternalServerErr when Open or Message
	// panicked, and websocket.CloseAbnormalClosure otherwise.
	Close func(ctx C, conn *Conn, code int, reason string)
}

// Message is an inbound WebSocket message.
type Message struct {
	Type int
	Data []byte
}

// Text returns the message payload as a string.
func (m Message) Text() string {
	return string(m.Data)
}

// Conn is a WebSocket connection safe for concurrent writers.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// Send writes a message of the given websocket type.
func (c *Conn) Send(msgType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(msgType, data)
}

// SendText writes a text message.
func (c *Conn) SendText(text string) error {
	return c.Send(websocket.TextMessage, []byte(text))
}

// SendJSON writes v as a JSON text message.
func (c *Conn) SendJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// Close sends a close frame with code and reason. The read loop ends once
// the peer answers.
func (c *Conn) Close(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	return c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.ws.RemoteAddr()
}

// Subprotocol returns the negotiated subprotocol.
func (c *Conn) Subprotocol() string {
	return c.ws.Subprotocol()
}

// WS registers WebSocket callbacks for pattern.
func (m *mux[C]) WS(pattern string, h WSHandlers[C]) {
	m.checkSealed()
	if err := m.wsTree.insertRoute(pattern, &h); err != nil {
		panic(fmt.Errorf("websocket route: %w", err))
	}
}

// serveWebSocket handles an upgrade request. It reports false when no
// WebSocket route matches, leaving the request to regular dispatch.
// The global before stages run first, then the route's Upgrade hook; either
// may halt to send its response instead of upgrading.
func (m *mux[C]) serveWebSocket(ww *responseWriter, ctx C) bool {
	r := ctx.Request()
	ep, params := m.wsTree.findRoute(requestPath(r))
	if ep == nil {
		return false
	}
	h := ep.value

	ctx, err := m.chain.runBefore(ctx)
	if err != nil {
		m.fail(ww, ctx, err)
		return true
	}
	if ctx.Locked() {
		m.send(ww, ctx)
		return true
	}

	ctx.SetParams(unescapeParams(r, params))

	if h.Upgrade != nil {
		res, err := h.Upgrade(ctx)
		if err != nil {
			m.fail(ww, ctx, err)
			return true
		}
		ctx = applyResult(ctx, res)
		if ctx.Locked() {
			m.send(ww, ctx)
			return true
		}
	}

	ws, err := m.upgrader.Upgrade(ww, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		m.logger.DebugContext(r.Context(), "websocket upgrade failed",
			logger.Error(err),
			logger.Path(r.URL.Path),
			logger.Pattern(ep.pattern),
		)
		return true
	}

	m.runConn(ctx, h, ws)
	return true
}

// runConn drives one connection until the peer goes away.
func (m *mux[C]) runConn(ctx C, h *WSHandlers[C], ws *websocket.Conn) {
	conn := &Conn{ws: ws}
	defer ws.Close()

	if m.wsReadLimit > 0 {
		ws.SetReadLimit(m.wsReadLimit)
	}

	code, reason := websocket.CloseAbnormalClosure, ""

	// Close always runs; a panicking callback ends the connection with 1011
	defer func() {
		if p := recover(); p != nil {
			m.logger.ErrorContext(ctx, "websocket callback panicked",
				logger.Error(&panicError{value: p}),
				logger.Stack(debug.Stack()),
			)
			code, reason = websocket.CloseInternalServerErr, "internal error"
			_ = conn.Close(code, reason)
		}
		if h.Close != nil {
			h.Close(ctx, conn, code, reason)
		}
	}()

	if h.Open != nil {
		h.Open(ctx, conn)
	}

	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				code, reason = ce.Code, ce.Text
			} else {
				m.logger.DebugContext(ctx, "websocket read failed", logger.Error(err))
			}
			break
		}
		if h.Message != nil {
			h.Message(ctx, conn, Message{Type: msgType, Data: data})
		}
	}
}
