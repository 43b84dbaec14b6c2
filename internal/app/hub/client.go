/*
This file defines the Client struct, representing one live WebSocket connection.
It manages the connection lifecycle, the read/write pumps, and dispatching each
inbound event to the hub component that handles it.
*/
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pulsehub/internal/app/user"
	"pulsehub/internal/pkg/errs"
	"pulsehub/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a frame sent by the client.
	maxFrameSize = 8192

	// sendQueueSize is the per-connection outbound buffer. A connection that
	// cannot drain it has events dropped rather than blocking the sender.
	sendQueueSize = 256
)

// Client represents an active WebSocket connection, associated with a user or
// still anonymous.
type Client struct {
	// the hub this connection belongs to.
	hub *Hub

	// underlying WebSocket connection object. Nil in tests that exercise the
	// hub without running the pumps.
	conn *websocket.Conn

	// identity of the user this connection is associated with; empty while
	// anonymous. Guarded by identityMu.
	userID     string
	identityMu sync.RWMutex

	// a buffered channel used to queue frames waiting to be sent out.
	send chan []byte

	// sendMu guards sendClosed so no enqueue races the queue close.
	sendMu     sync.RWMutex
	sendClosed bool

	// structured logger with connection context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded connection. initialUserID may
// be empty; it is set when the transport layer resolved an identity token
// during the upgrade.
func NewClient(h *Hub, wsConn *websocket.Conn, initialUserID string) *Client {
	connID := uuid.New().String()

	clientLogger := logx.Logger().With().
		Str("conn_id", connID).
		Logger()

	return &Client{
		hub:    h,
		conn:   wsConn,
		userID: initialUserID,
		send:   make(chan []byte, sendQueueSize),
		logger: clientLogger,
	}
}

// UserID returns the identity associated with this connection, or "" while anonymous.
func (c *Client) UserID() string {
	c.identityMu.RLock()
	defer c.identityMu.RUnlock()
	return c.userID
}

func (c *Client) setUserID(userID string) {
	c.identityMu.Lock()
	c.userID = userID
	c.identityMu.Unlock()
}

// ReadPump reads frames from the WebSocket connection, handles heartbeats,
// and dispatches each inbound event. It performs cleanup when the connection
// closes, however that happens.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxFrameSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading frame (client close/going away)")
			}
			break
		}

		c.processInbound(frame)
	}
}

// cleanupOnDisconnect unregisters the connection from the hub and closes the
// socket when ReadPump terminates.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Connection cleanup starting.")

	c.hub.Unregister(context.Background(), c)

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Connection close error")
	}
}

// processInbound parses one raw frame and dispatches it to the owning
// component. Each inbound event is exactly one of the hub's operations.
func (c *Client) processInbound(frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		c.logger.Warn().Err(err).
			Bytes("frame", frame).
			Msg("Client sent invalid JSON")
		return
	}

	ctx := context.Background()

	switch env.Type {
	case EventJoinUserRoom:
		if userID, ok := c.decodeUserID(env); ok {
			c.hub.JoinUserRoom(c, userID)
		}

	case EventUserLogin:
		if userID, ok := c.decodeUserID(env); ok {
			c.hub.Login(ctx, c, userID)
		}

	case EventUserLogout:
		if userID, ok := c.decodeUserID(env); ok {
			c.hub.Logout(ctx, userID)
		}

	case EventUpdateSettings:
		var patch user.SettingsPatch
		if err := json.Unmarshal(env.Payload, &patch); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid updateSettings payload")
			c.hub.sendError(c, EventUpdateError, errs.NewError(errs.ErrInvalidParams))
			return
		}
		c.hub.UpdateSettings(ctx, c, patch)

	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid sendMessage payload")
			c.hub.sendError(c, EventMessageError, errs.NewError(errs.ErrInvalidParams))
			return
		}
		c.hub.SendDirectMessage(ctx, c, p)

	case EventCreateUpdate:
		var p CreateUpdatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid createUpdate payload")
			c.hub.sendError(c, EventUpdateError, errs.NewError(errs.ErrInvalidParams))
			return
		}
		c.hub.PublishUpdate(ctx, c, p)

	case EventUpdateReaction:
		var p UpdateReactionPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid updateReaction payload")
			c.hub.sendError(c, EventUpdateError, errs.NewError(errs.ErrInvalidParams))
			return
		}
		c.hub.React(ctx, c, p)

	default:
		c.logger.Warn().Str("event", string(env.Type)).Msg("Client sent unsupported event type")
	}
}

// decodeUserID parses the bare-string payload carried by the presence events.
func (c *Client) decodeUserID(env Envelope) (string, bool) {
	var userID string
	if err := json.Unmarshal(env.Payload, &userID); err != nil {
		c.logger.Warn().Err(err).Str("event", string(env.Type)).Msg("Client sent invalid user id payload")
		return "", false
	}
	return userID, true
}

// WritePump writes frames from the send channel to the WebSocket connection
// and keeps the heartbeat alive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if !c.writeQueuedFrame(frame, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedFrame writes one frame pulled from the send channel.
// Returns false if the WritePump loop should terminate.
func (c *Client) writeQueuedFrame(frame []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		c.logger.Error().Err(err).Msg("Error writing frame")
		return false
	}

	return true
}

// writePingMessage sends a periodic Ping to maintain the heartbeat.
// Returns false if the WritePump loop should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// enqueue queues one outbound frame. Delivery is fire-and-forget: when the
// queue is full or already closed the frame is dropped.
func (c *Client) enqueue(frame []byte) bool {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()

	if c.sendClosed {
		return false
	}

	select {
	case c.send <- frame:
		return true
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, dropping frame")
		return false
	}
}

// closeSend closes the outbound queue exactly once. WritePump responds by
// sending a close frame and shutting the socket down.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.sendClosed {
		c.sendClosed = true
		close(c.send)
	}
}
