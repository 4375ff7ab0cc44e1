package social

import (
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/bayanihanplus/realtime-gateway/internal/adapter/pubsub"
)

// NewRouter builds the watermill router for the social event bus.
func NewRouter(wlog watermill.LoggerAdapter) (*message.Router, error) {
	return message.NewRouter(message.RouterConfig{}, wlog)
}

// RegisterHandlers binds every social topic to its handler.
func RegisterHandlers(router *message.Router, sub message.Subscriber, h *Handler, logger *slog.Logger) {
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		LoggingMiddleware(logger),
		middleware.Timeout(30*time.Second),
	)

	router.AddNoPublisherHandler(
		"on_friend_request",
		pubsub.TopicFriendRequest,
		sub,
		h.OnFriendRequest,
	)
}

// LoggingMiddleware records handling latency per bus message.
func LoggingMiddleware(logger *slog.Logger) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			start := time.Now()
			msgs, err := h(msg)

			logger.Debug("social event handled",
				"msg_id", msg.UUID,
				"duration_ms", time.Since(start).Milliseconds(),
				"success", err == nil,
			)
			return msgs, err
		}
	}
}
