package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/pending"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
)

// MessageRouter resolves the recipient of an inbound chat message and either
// delivers it live or parks it in the pending buffer. There is no ack
// protocol and no retry: one live attempt, one buffered fallback.
type MessageRouter struct {
	logger      *slog.Logger
	dir         *registry.Directory
	buf         *pending.Buffer
	enricher    *Enricher
	sendTimeout time.Duration
}

func NewMessageRouter(logger *slog.Logger, dir *registry.Directory, buf *pending.Buffer, enricher *Enricher, cfg *config.Config) *MessageRouter {
	return &MessageRouter{
		logger:      logger,
		dir:         dir,
		buf:         buf,
		enricher:    enricher,
		sendTimeout: cfg.Transport.SendTimeout,
	}
}

// Route delivers msg to its recipient, live or buffered, then echoes it to
// the sender's own connection when the sender is online. The echo is a UI
// convenience keyed solely off the sender's presence; it does not depend on
// whether the recipient was reachable and never creates a buffered copy for
// the sender.
func (r *MessageRouter) Route(ctx context.Context, msg *model.ChatMessage) {
	r.enricher.ResolvePeers(ctx, msg)

	if conn, ok := r.dir.Lookup(msg.ToUserID.String()); ok {
		conn.Send(model.Frame{Event: model.EventMessage, Payload: msg}, r.sendTimeout)
		r.logger.Debug("message delivered live",
			"from", msg.FromUserID, "to", msg.ToUserID, "conn_id", conn.ID())
	} else {
		r.buf.Enqueue(msg.ToUserID.String(), msg.Pending())
		r.logger.Debug("recipient offline, message buffered",
			"from", msg.FromUserID, "to", msg.ToUserID)
	}

	if sender, ok := r.dir.Lookup(msg.FromUserID.String()); ok {
		sender.Send(model.Frame{Event: model.EventMessage, Payload: msg}, r.sendTimeout)
	}
}
