package cmd

import (
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/infra/server/http"
	"github.com/bayanihanplus/realtime-gateway/internal/adapter/directory"
	"github.com/bayanihanplus/realtime-gateway/internal/adapter/pubsub"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/pending"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
	"github.com/bayanihanplus/realtime-gateway/internal/handler/httpapi"
	"github.com/bayanihanplus/realtime-gateway/internal/handler/social"
	"github.com/bayanihanplus/realtime-gateway/internal/handler/ws"
	"github.com/bayanihanplus/realtime-gateway/internal/service"
	"go.uber.org/fx"
)

func NewApp(cfg *config.Config) *fx.App {
	return fx.New(
		fx.Provide(
			func() *config.Config { return cfg },
			ProvideLogger,
			ProvideWatermillLogger,
			ProvidePubSub,
			func(ps *gochannel.GoChannel) message.Publisher { return ps },
			func(ps *gochannel.GoChannel) message.Subscriber { return ps },
		),
		registry.Module,
		pending.Module,
		directory.Module,
		service.Module,
		pubsub.Module,
		social.Module,
		ws.Module,
		httpapi.Module,
		http.Module,
	)
}

func ProvideLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)
	return logger
}

func ProvideWatermillLogger(logger *slog.Logger) watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logger)
}

// ProvidePubSub builds the in-process social event bus. The gateway is
// single-node; a broker-backed bus would only matter for the multi-instance
// topology this service does not target.
func ProvidePubSub(wlog watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, wlog)
}
