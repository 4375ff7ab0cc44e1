// Package pubsub is the in-process social event bus. The CRUD layer (friend
// requests and similar social flows) publishes here; the gateway consumes and
// turns events into user notifications.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
)

// TopicFriendRequest carries one event per friend request created.
const TopicFriendRequest = "social.friend_request.v1"

// FriendRequestEvent is the bus payload for a newly created friend request.
type FriendRequestEvent struct {
	FromUserID   model.UserID `json:"fromUserId"`
	ToUserID     model.UserID `json:"toUserId"`
	FromUserName string       `json:"fromUserName,omitempty"`
	OccurredAt   int64        `json:"occurredAt"`
}

// SocialPublisher is the boundary the rest of the application calls when a
// social event occurs.
type SocialPublisher interface {
	PublishFriendRequest(ctx context.Context, ev FriendRequestEvent) error
}

type socialPublisher struct {
	publisher message.Publisher
}

func NewSocialPublisher(pub message.Publisher) SocialPublisher {
	return &socialPublisher{publisher: pub}
}

func (p *socialPublisher) PublishFriendRequest(ctx context.Context, ev FriendRequestEvent) error {
	if ev.OccurredAt == 0 {
		ev.OccurredAt = time.Now().UnixMilli()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("social publisher: marshal failure: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(TopicFriendRequest, msg); err != nil {
		return fmt.Errorf("social publisher: publish to %s: %w", TopicFriendRequest, err)
	}

	return nil
}
