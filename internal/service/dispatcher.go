package service

import (
	"log/slog"
	"time"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/pending"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
)

// Dispatcher applies the live-or-buffered delivery decision to notifications.
// The contract is identical whether the caller is the /notify endpoint or an
// internal social event; the dispatcher does not distinguish origin.
type Dispatcher struct {
	logger      *slog.Logger
	dir         *registry.Directory
	buf         *pending.Buffer
	sendTimeout time.Duration
}

func NewDispatcher(logger *slog.Logger, dir *registry.Directory, buf *pending.Buffer, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		logger:      logger,
		dir:         dir,
		buf:         buf,
		sendTimeout: cfg.Transport.SendTimeout,
	}
}

// Dispatch pushes n to recipient's live connection when there is one,
// otherwise buffers it for the recipient's next registration. It reports
// whether delivery was immediate. An offline recipient is a normal branch,
// not an error.
func (d *Dispatcher) Dispatch(recipient string, n *model.Notification) bool {
	if conn, ok := d.dir.Lookup(recipient); ok {
		conn.Send(model.Frame{Event: model.EventNotification, Payload: n}, d.sendTimeout)
		d.logger.Info("notification sent", "user_id", recipient, "type", n.Type)
		return true
	}

	d.buf.Enqueue(recipient, n)
	d.logger.Info("notification stored for offline user", "user_id", recipient, "type", n.Type)
	return false
}
