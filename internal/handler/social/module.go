package social

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/fx"
)

var Module = fx.Module("social-handler",
	fx.Provide(
		NewHandler,
		NewRouter,
	),
	fx.Invoke(RegisterHandlers),
	fx.Invoke(func(lc fx.Lifecycle, router *message.Router) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				// Run blocks; detach it from the start hook's deadline.
				go func() {
					_ = router.Run(context.Background())
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return router.Close()
			},
		})
	}),
)
