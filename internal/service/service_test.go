package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/pending"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Transport: config.TransportConfig{
			SendBuffer:  16,
			SendTimeout: 100 * time.Millisecond,
		},
	}
}

// fixture bundles the shared state the lifecycle/routing services operate on.
type fixture struct {
	dir *registry.Directory
	buf *pending.Buffer
}

func newFixture() *fixture {
	return &fixture{
		dir: registry.NewDirectory(),
		buf: pending.NewBuffer(),
	}
}

func (f *fixture) presence() *Presence {
	return NewPresenceService(newTestLogger(), f.dir, f.buf, testConfig())
}

func (f *fixture) dispatcher() *Dispatcher {
	return NewDispatcher(newTestLogger(), f.dir, f.buf, testConfig())
}

func (f *fixture) router(resolver NameResolver) *MessageRouter {
	return NewMessageRouter(newTestLogger(), f.dir, f.buf,
		NewEnricher(newTestLogger(), resolver), testConfig())
}

func newConn(t *testing.T) registry.Connector {
	t.Helper()
	c := registry.NewConnector(context.Background(), 16)
	t.Cleanup(c.Close)
	return c
}

func recvFrame(t *testing.T, c registry.Connector) model.Frame {
	t.Helper()
	select {
	case f := <-c.Recv():
		return f
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return model.Frame{}
	}
}

func expectNoFrame(t *testing.T, c registry.Connector) {
	t.Helper()
	select {
	case f := <-c.Recv():
		t.Fatalf("unexpected frame: %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
}

// nameTable is a canned NameResolver.
type nameTable map[string]string

func (n nameTable) Username(_ context.Context, id string) (string, error) {
	return n[id], nil
}
