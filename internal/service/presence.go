package service

import (
	"log/slog"
	"time"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/pending"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
)

// Presence is the connection lifecycle manager: it moves identities in and
// out of the directory and replays the pending buffer on registration.
type Presence struct {
	logger      *slog.Logger
	dir         *registry.Directory
	buf         *pending.Buffer
	sendTimeout time.Duration
}

func NewPresenceService(logger *slog.Logger, dir *registry.Directory, buf *pending.Buffer, cfg *config.Config) *Presence {
	return &Presence{
		logger:      logger,
		dir:         dir,
		buf:         buf,
		sendTimeout: cfg.Transport.SendTimeout,
	}
}

// Connect registers identity on conn, replays every buffered item for it, and
// announces the identity online to all connections.
//
// Buffered items are replayed as "notification" events regardless of their
// original kind; clients discriminate on the payload's type field. This
// mirrors the client contract and is not a simplification.
func (s *Presence) Connect(identity string, conn registry.Connector) {
	s.dir.Register(identity, conn)

	items := s.buf.DrainAll(identity)
	for _, item := range items {
		conn.Send(model.Frame{Event: model.EventNotification, Payload: item}, s.sendTimeout)
	}

	s.dir.Broadcast(model.Frame{
		Event:   model.EventPresenceUpdate,
		Payload: model.PresenceUpdate{UserID: identity, Online: true},
	}, s.sendTimeout)

	s.logger.Info("user registered",
		"user_id", identity,
		"conn_id", conn.ID(),
		"replayed", len(items),
	)
}

// Reregister updates the presence entry for identity without draining the
// buffer or broadcasting a presence update. This is the explicit
// register_user fallback for clients that did not pass userId at handshake
// time; its asymmetry with Connect is inherited behavior, kept until product
// says otherwise.
func (s *Presence) Reregister(identity string, conn registry.Connector) {
	s.dir.Register(identity, conn)
	s.logger.Info("user re-registered", "user_id", identity, "conn_id", conn.ID())
}

// Disconnect removes whatever identity conn was registered under and, if one
// was found, announces it offline.
func (s *Presence) Disconnect(conn registry.Connector) {
	identity, ok := s.dir.RemoveByConn(conn.ID())
	if !ok {
		return
	}

	s.dir.Broadcast(model.Frame{
		Event:   model.EventPresenceUpdate,
		Payload: model.PresenceUpdate{UserID: identity, Online: false},
	}, s.sendTimeout)

	s.logger.Info("user disconnected", "user_id", identity, "conn_id", conn.ID())
}
