package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"supersimple.dev/cloud/internal/notifications"
)

type SNSClient interface {
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
	Unsubscribe(ctx context.Context, params *sns.UnsubscribeInput, optFns ...func(*sns.Options)) (*sns.UnsubscribeOutput, error)
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

var _ SNSClient = (*sns.Client)(nil)

type NotificationSNSService struct {
	Sns      SNSClient
	TopicArn string
}

func (n *NotificationSNSService) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	output, err := n.Sns.Subscribe(ctx, &sns.SubscribeInput{
		Endpoint:              input.Endpoint,
		Protocol:              input.Protocol,
		TopicArn:              aws.String(n.TopicArn),
		ReturnSubscriptionArn: true,
	})

	if err != nil {
		return nil, err
	}

	return &notifications.SubscribeOutput{
		SubscriberId: *output.SubscriptionArn,
	}, nil
}

func (n *NotificationSNSService) Unsubscribe(ctx context.Context, subscriberId string) error {
	_, err := n.Sns.Unsubscribe(ctx, &sns.UnsubscribeInput{
		SubscriptionArn: aws.String(subscriberId),
	})

	return err
}

func (n *NotificationSNSService) Publish(ctx context.Context, subject string, message string) error {
	_, err := n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})

	return err
}
