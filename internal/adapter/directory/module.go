package directory

import (
	"context"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("directory",
	fx.Provide(
		func(cfg *config.Config) (*Store, error) {
			return Open(cfg.Directory.Path)
		},
		fx.Annotate(
			func(s *Store) *Store { return s },
			fx.As(new(service.NameResolver)),
		),
	),
	fx.Invoke(func(lc fx.Lifecycle, s *Store) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return s.Close()
			},
		})
	}),
)
