package notifications

import "context"

type SubscribeInput struct {
	Endpoint *string
	Protocol *string
}

type SubscribeOutput struct {
	SubscriberId string
}

// NotificationService manages sync-alert subscriptions and delivers the
// alerts the stream processor raises after a batch sync lands.
type NotificationService interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error)
	Unsubscribe(ctx context.Context, subscriberId string) error
	Publish(ctx context.Context, subject string, message string) error
}
