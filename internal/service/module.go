package service

import "go.uber.org/fx"

var Module = fx.Module("service",
	fx.Provide(
		fx.Annotate(
			NewAuthService,
			fx.As(new(Auther)),
		),
		NewEnricher,
		NewPresenceService,
		NewMessageRouter,
		NewDispatcher,
	),
)
