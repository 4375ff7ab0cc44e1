package registry

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/google/uuid"
)

// Interface guard
var _ Connector = (*conn)(nil)

// Connector is the live-connection handle stored in the Directory. The
// transport layer owns the underlying socket; the directory only pushes
// frames through this handle and never tears the socket down itself.
type Connector interface {
	ID() uuid.UUID
	// Send pushes a frame into the connection's outbound buffer. It waits at
	// most timeout for space and reports whether the frame was accepted.
	// Delivery past this point is fire-and-forget.
	Send(f model.Frame, timeout time.Duration) bool
	Recv() <-chan model.Frame
	Done() <-chan struct{}
	Close()
}

type conn struct {
	id        uuid.UUID
	ctx       context.Context
	cancel    context.CancelFunc
	sendCh    chan model.Frame
	closeOnce sync.Once
	dropped   atomic.Uint64
}

func NewConnector(ctx context.Context, bufferSize int) Connector {
	childCtx, cancel := context.WithCancel(ctx)
	return &conn{
		id:     uuid.New(),
		ctx:    childCtx,
		cancel: cancel,
		sendCh: make(chan model.Frame, bufferSize),
	}
}

func (c *conn) ID() uuid.UUID { return c.id }

func (c *conn) Send(f model.Frame, timeout time.Duration) bool {
	select {
	case <-c.ctx.Done():
		return false
	case c.sendCh <- f:
		return true
	default:
	}

	// Buffer saturated: wait out transient jitter, then drop.
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-c.ctx.Done():
		return false
	case c.sendCh <- f:
		return true
	case <-t.C:
		c.dropped.Add(1)
		return false
	}
}

func (c *conn) Recv() <-chan model.Frame { return c.sendCh }

func (c *conn) Done() <-chan struct{} { return c.ctx.Done() }

// Close cancels the connector. The send channel is deliberately left open:
// concurrent Send calls race with teardown, and a closed channel would turn
// that race into a panic. Pumps must select on Done.
func (c *conn) Close() {
	c.closeOnce.Do(c.cancel)
}
