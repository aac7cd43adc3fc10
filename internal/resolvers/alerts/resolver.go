package alerts

import (
	"context"
	"encoding/json"

	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/notifications"
	"supersimple.dev/cloud/internal/resolvers"
)

type Subscription struct {
	SubscriberId string `json:"subscriberId"`
}

type AlertResolver struct {
	notifications notifications.NotificationService
}

func NewResolver(service notifications.NotificationService) resolvers.Service {
	return &AlertResolver{
		notifications: service,
	}
}

func (ar *AlertResolver) GetHandlers() map[string]resolvers.Handler {
	return map[string]resolvers.Handler{
		"subscribeSyncAlerts":   ar.Subscribe,
		"unsubscribeSyncAlerts": ar.Unsubscribe,
	}
}

func (ar *AlertResolver) Subscribe(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Endpoint *string `json:"endpoint"`
		Protocol *string `json:"protocol"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	if payload.Endpoint == nil || *payload.Endpoint == "" {
		return nil, exceptions.InvalidInput("subscription endpoint is required")
	}
	if payload.Protocol == nil || *payload.Protocol == "" {
		return nil, exceptions.InvalidInput("subscription protocol is required")
	}
	output, err := ar.notifications.Subscribe(ctx, notifications.SubscribeInput{
		Endpoint: payload.Endpoint,
		Protocol: payload.Protocol,
	})
	if err != nil {
		return nil, err
	}
	return Subscription{SubscriberId: output.SubscriberId}, nil
}

func (ar *AlertResolver) Unsubscribe(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		SubscriberId string `json:"subscriberId"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	if payload.SubscriberId == "" {
		return nil, exceptions.InvalidInput("subscriberId is required")
	}
	if err := ar.notifications.Unsubscribe(ctx, payload.SubscriberId); err != nil {
		return nil, err
	}
	return Subscription{SubscriberId: payload.SubscriberId}, nil
}
