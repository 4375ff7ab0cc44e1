package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
	"github.com/bayanihanplus/realtime-gateway/internal/service"
	"github.com/gorilla/websocket"
)

// WSHandler owns the socket transport: handshake authentication, identity
// registration, and the read/write pumps bridging the connection to the
// presence directory.
type WSHandler struct {
	logger       *slog.Logger
	auth         service.Auther
	presence     *service.Presence
	router       *service.MessageRouter
	upgrader     websocket.Upgrader
	sendBuffer   int
	writeTimeout time.Duration
}

func NewWSHandler(logger *slog.Logger, auth service.Auther, presence *service.Presence, router *service.MessageRouter, cfg *config.Config) *WSHandler {
	return &WSHandler{
		logger:   logger,
		auth:     auth,
		presence: presence,
		router:   router,
		upgrader: websocket.Upgrader{
			// Clients are mobile apps, not browsers; origin checks don't apply.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sendBuffer:   cfg.Transport.SendBuffer,
		writeTimeout: cfg.Transport.WriteTimeout,
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	userID := r.URL.Query().Get("userId")

	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws upgrade failed", "err", err)
		return
	}
	defer sock.Close()

	// Authenticate before any state is created. A rejected connection gets
	// the error frame and nothing else, no matter what userId it claimed.
	claims, err := h.auth.Verify(token)
	if err != nil {
		h.logger.Warn("connection rejected",
			"err", err,
			"remote", r.RemoteAddr,
			"missing_token", errors.Is(err, service.ErrMissingToken),
		)
		_ = sock.WriteJSON(model.NewAuthError())
		return
	}

	conn := registry.NewConnector(r.Context(), h.sendBuffer)
	defer conn.Close()
	defer h.presence.Disconnect(conn)

	h.logger.Info("ws opened",
		"conn_id", conn.ID(),
		"claim_id", claims.Identity(),
		"auto_register", userID != "",
	)

	// The write pump must be draining before registration replays the
	// pending buffer, or a large backlog would stall against a full channel.
	go h.writePump(sock, conn)

	// Auto-registration uses the handshake userId, not the token claim;
	// clients that omit it stay unregistered until they send register_user.
	if userID != "" {
		h.presence.Connect(userID, conn)
	}

	h.readPump(r, sock, conn)
}

func (h *WSHandler) readPump(r *http.Request, sock *websocket.Conn, conn registry.Connector) {
	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			h.logger.Debug("ws closed", "conn_id", conn.ID(), "err", err)
			return
		}

		var env model.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.logger.Warn("unparseable frame", "conn_id", conn.ID(), "err", err)
			continue
		}

		switch env.Event {
		case model.EventRegisterUser:
			var identity model.UserID
			if err := json.Unmarshal(env.Payload, &identity); err != nil || identity == "" {
				h.logger.Warn("register_user with bad payload", "conn_id", conn.ID())
				continue
			}
			h.presence.Reregister(identity.String(), conn)

		case model.EventSendMessage:
			var msg model.ChatMessage
			if err := json.Unmarshal(env.Payload, &msg); err != nil {
				h.logger.Warn("send_message with bad payload", "conn_id", conn.ID(), "err", err)
				continue
			}
			h.router.Route(r.Context(), &msg)

		case model.EventFriendRequestRead:
			// Accepted and ignored; the client contract reserves it for a
			// future read receipt.

		default:
			h.logger.Debug("unknown event", "event", env.Event, "conn_id", conn.ID())
		}
	}
}

func (h *WSHandler) writePump(sock *websocket.Conn, conn registry.Connector) {
	for {
		select {
		case <-conn.Done():
			return
		case f := <-conn.Recv():
			_ = sock.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := sock.WriteJSON(f); err != nil {
				h.logger.Warn("ws send failed", "conn_id", conn.ID(), "err", err)
				// Unblock the read pump so the lifecycle teardown runs.
				_ = sock.Close()
				return
			}
		}
	}
}
