package ws

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/hub"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/jwt"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBufferSize bounds the per-connection outbound queue. A full queue
	// drops the frame rather than blocking a publisher.
	sendBufferSize = 32
)

var ackPayload = []byte(`{"ack": "Message received"}`)

// Gateway owns the WebSocket connection lifecycle: admission, group
// membership and the per-connection read/write pumps. Sockets never leak
// outside this package; publishers only see the hub.
type Gateway struct {
	hub        *hub.Hub
	jwtService jwt.Service
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewGateway creates a new delivery gateway
func NewGateway(h *hub.Hub, jwtService jwt.Service, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		hub:        h,
		jwtService: jwtService,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeNotifications handles GET /ws/notifications/{userID}?token=...
//
// Admission requires a valid access token whose subject equals the path
// user id. Any failure answers a bare 401 before the upgrade; nothing is
// ever joined for a rejected connection.
func (g *Gateway) ServeNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	subject, err := g.jwtService.ValidateConnectionToken(r.URL.Query().Get("token"))
	if err != nil || subject != userID {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response
		return
	}

	c := newClient(conn, g.logger)
	group := hub.UserGroup(userID)
	g.hub.Join(group, c)

	g.logger.Debug("websocket connection admitted",
		"connection_id", c.id, "user_id", userID)

	go c.writePump()
	c.readPump()

	// readPump returns on any disconnect path; leave is idempotent
	g.hub.Leave(group, c)
	c.close()

	g.logger.Debug("websocket connection closed",
		"connection_id", c.id, "user_id", userID)
}

// client is one live connection. It satisfies hub.Conn so the hub can
// dispatch to it without knowing about sockets.
type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func newClient(conn *websocket.Conn, logger *slog.Logger) *client {
	return &client{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Send implements hub.Conn. It never blocks: a closed or saturated
// connection drops the frame.
func (c *client) Send(payload []byte) {
	select {
	case <-c.done:
	case c.send <- payload:
	default:
		c.logger.Warn("dropping frame for slow websocket consumer", "connection_id", c.id)
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump consumes inbound frames until the connection dies. The protocol
// is push-dominant: every inbound frame is answered with a receipt ack and
// otherwise ignored.
func (c *client) readPump() {
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read error", "connection_id", c.id, "error", err)
			}
			return
		}
		c.Send(ackPayload)
	}
}

// writePump owns all writes to the socket. It drains the send queue and
// keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
