package main

import (
	"context"
	"os"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	auditData "supersimple.dev/cloud/internal/dynamodb/audits"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/events"
	snsServices "supersimple.dev/cloud/internal/sns/services"
)

type Processor struct {
	Handlers []events.EventFilter
	Logger   zerolog.Logger
}

func NewProcessor() Processor {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	tableName := os.Getenv("TABLE_NAME")
	topicArn := os.Getenv("TOPIC_ARN")
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	client := dynamodb.NewFromConfig(cfg)
	marshaler := token.NewGCM()
	return Processor{
		Logger: logger,
		Handlers: []events.EventFilter{
			events.DefaultAuditHandler(auditData.NewAuditService(tableName, client, marshaler)),
			events.DefaultSyncAlertHandler(&snsServices.NotificationSNSService{
				Sns:      sns.NewFromConfig(cfg),
				TopicArn: topicArn,
			}),
		},
	}
}

func (p *Processor) HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	for _, record := range event.Records {
		for _, handler := range p.Handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				p.Logger.Error().
					Err(err).
					Str("eventName", record.EventName).
					Msg("Stream handler failed")
				return err
			}
		}
	}
	return nil
}

func main() {
	processor := NewProcessor()
	lambda.Start(processor.HandleRequest)
}
