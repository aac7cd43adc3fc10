package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"
	auditData "supersimple.dev/cloud/internal/dynamodb/audits"
	clientData "supersimple.dev/cloud/internal/dynamodb/clients"
	deckData "supersimple.dev/cloud/internal/dynamodb/decks"
	invoiceData "supersimple.dev/cloud/internal/dynamodb/invoices"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/resolvers"
	"supersimple.dev/cloud/internal/resolvers/alerts"
	"supersimple.dev/cloud/internal/resolvers/audits"
	"supersimple.dev/cloud/internal/resolvers/clients"
	"supersimple.dev/cloud/internal/resolvers/decks"
	"supersimple.dev/cloud/internal/resolvers/invoices"
	snsServices "supersimple.dev/cloud/internal/sns/services"
)

type App struct {
	Router *resolvers.Router
}

func NewApp() App {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	tableName := os.Getenv("TABLE_NAME")
	topicArn := os.Getenv("TOPIC_ARN")
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	client := dynamodb.NewFromConfig(cfg)
	snsClient := sns.NewFromConfig(cfg)
	marshaler := token.NewGCM()
	router := resolvers.NewRouter(
		logger,
		clients.NewResolver(clientData.NewClientService(tableName, client, marshaler)),
		invoices.NewResolver(invoiceData.NewInvoiceService(tableName, client, marshaler)),
		decks.NewResolver(deckData.NewDeckService(tableName, client, marshaler)),
		audits.NewResolver(auditData.NewAuditService(tableName, client, marshaler)),
		alerts.NewResolver(&snsServices.NotificationSNSService{
			Sns:      snsClient,
			TopicArn: topicArn,
		}),
	)
	logger.Info().Strs("fields", router.Fields()).Msg("Resolver ready")
	return App{
		Router: router,
	}
}

func (app *App) HandleRequest(ctx context.Context, request resolvers.Request) (resolvers.Response, error) {
	return app.Router.Invoke(ctx, request), nil
}

func main() {
	app := NewApp()
	lambda.Start(app.HandleRequest)
}
