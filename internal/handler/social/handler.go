package social

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bayanihanplus/realtime-gateway/internal/adapter/pubsub"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/service"
)

// Handler consumes social events from the bus and turns them into user
// notifications, which then follow the same live-or-buffered path as
// everything else.
type Handler struct {
	logger     *slog.Logger
	dispatcher *service.Dispatcher
}

func NewHandler(logger *slog.Logger, dispatcher *service.Dispatcher) *Handler {
	return &Handler{logger: logger, dispatcher: dispatcher}
}

// OnFriendRequest notifies the recipient of a new friend request. A payload
// that cannot be decoded is acked and dropped: redelivering it cannot make it
// parseable.
func (h *Handler) OnFriendRequest(msg *message.Message) error {
	var ev pubsub.FriendRequestEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		h.logger.Error("friend request event decode failed", "msg_id", msg.UUID, "err", err)
		return nil
	}
	if ev.ToUserID == "" {
		h.logger.Warn("friend request event missing recipient", "msg_id", msg.UUID)
		return nil
	}

	from := ev.FromUserName
	if from == "" {
		from = ev.FromUserID.String()
	}

	h.dispatcher.Dispatch(ev.ToUserID.String(), &model.Notification{
		Message: fmt.Sprintf("%s sent you a friend request", from),
		Type:    "friend_request",
	})
	return nil
}
