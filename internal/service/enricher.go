package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
)

// NameResolver is implemented by the user directory adapter. An unknown id
// resolves to the empty string without error; errors mean the store itself
// is unhealthy.
type NameResolver interface {
	Username(ctx context.Context, id string) (string, error)
}

// Enricher fills in display names the client left blank, so buffered
// messages and toasts can say who they are from. Lookups go through an LRU
// cache and a circuit breaker; when the directory is unhealthy the message
// keeps moving with whatever names it already had.
type Enricher struct {
	logger   *slog.Logger
	resolver NameResolver
	cache    *lru.Cache[string, string]
	breaker  *gobreaker.CircuitBreaker
}

func NewEnricher(logger *slog.Logger, resolver NameResolver) *Enricher {
	cache, _ := lru.New[string, string](4096)

	return &Enricher{
		logger:   logger,
		resolver: resolver,
		cache:    cache,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "user-directory",
			Timeout: 30 * time.Second,
		}),
	}
}

// ResolvePeers fills FromUserName and ToUserName on msg when they are empty.
// The two lookups run concurrently; failures leave the field empty and never
// block delivery.
func (e *Enricher) ResolvePeers(ctx context.Context, msg *model.ChatMessage) {
	g, gCtx := errgroup.WithContext(ctx)

	if msg.FromUserName == "" {
		g.Go(func() error {
			msg.FromUserName = e.resolve(gCtx, msg.FromUserID.String())
			return nil
		})
	}
	if msg.ToUserName == "" {
		g.Go(func() error {
			msg.ToUserName = e.resolve(gCtx, msg.ToUserID.String())
			return nil
		})
	}

	_ = g.Wait()
}

func (e *Enricher) resolve(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}

	if name, ok := e.cache.Get(id); ok {
		return name
	}

	res, err := e.breaker.Execute(func() (any, error) {
		return e.resolver.Username(ctx, id)
	})
	if err != nil {
		e.logger.Debug("name lookup failed", "user_id", id, "err", err)
		return ""
	}

	name, _ := res.(string)
	if name != "" {
		e.cache.Add(id, name)
	}
	return name
}
