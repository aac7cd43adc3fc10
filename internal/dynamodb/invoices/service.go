package invoices

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/dynamodb/services"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/keys"
)

const DefaultStatus = "DRAFT"

// NewInvoiceService wires the invoice entity into the shared table.
// Invoices list newest first; GSI1SK encodes the creation date and never
// changes after create.
func NewInvoiceService(tableName string, client services.DynamoDBClient, marshaler token.TokenMarshaler) data.InvoiceDataService {
	return &services.SingleTableService[data.InvoiceDTO, data.InvoiceInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "invoice",
		Ascending:      false,
		Key:            keys.Invoice,
		ListKey:        keys.InvoiceList,
		InputId: func(input data.InvoiceInputDTO) data.Optional[string] {
			return input.Id
		},
		OnCreate: func(key keys.PrimaryKey, listKey keys.ListKey, userId string, id string, input data.InvoiceInputDTO, now time.Time) (data.InvoiceDTO, error) {
			clientName, ok := input.ClientName.Get()
			if !ok || clientName == "" {
				return data.InvoiceDTO{}, exceptions.InvalidInput("invoice clientName is required")
			}
			lineItems, ok := input.LineItems.Get()
			if !ok || len(lineItems) == 0 {
				return data.InvoiceDTO{}, exceptions.InvalidInput("invoice requires at least one line item")
			}
			nowMs := now.UnixMilli()
			createdAt := input.CreatedAt.Or(nowMs)
			return data.InvoiceDTO{
				PK:         key.PK,
				SK:         key.SK,
				GSI1PK:     listKey.GSI1PK,
				GSI1SK:     keys.ByDate(time.UnixMilli(createdAt)),
				UserId:     userId,
				Id:         id,
				ClientName: clientName,
				LineItems:  lineItems,
				Status:     input.Status.Or(DefaultStatus),
				Currency:   input.Currency.Ptr(),
				DueDate:    input.DueDate.Ptr(),
				Notes:      input.Notes.Ptr(),
				CreatedAt:  createdAt,
				UpdatedAt:  input.UpdatedAt.Or(nowMs),
				SyncedAt:   nowMs,
			}, nil
		},
		OnUpdate: func(input data.InvoiceInputDTO, update expression.UpdateBuilder) (expression.UpdateBuilder, int, error) {
			fields := 0
			if input.ClientName.IsNull() {
				return update, fields, exceptions.InvalidInput("invoice clientName cannot be cleared")
			}
			if clientName, ok := input.ClientName.Get(); ok {
				if clientName == "" {
					return update, fields, exceptions.InvalidInput("invoice clientName cannot be empty")
				}
				update = update.Set(expression.Name("clientName"), expression.Value(clientName))
				fields++
			}
			if input.LineItems.IsNull() {
				return update, fields, exceptions.InvalidInput("invoice line items cannot be cleared")
			}
			if lineItems, ok := input.LineItems.Get(); ok {
				if len(lineItems) == 0 {
					return update, fields, exceptions.InvalidInput("invoice requires at least one line item")
				}
				update = update.Set(expression.Name("lineItems"), expression.Value(lineItems))
				fields++
			}
			if status, ok := input.Status.Get(); ok {
				update = update.Set(expression.Name("status"), expression.Value(status))
				fields++
			}
			if currency, ok := input.Currency.Get(); ok {
				update = update.Set(expression.Name("currency"), expression.Value(currency))
				fields++
			} else if input.Currency.IsNull() {
				update = update.Remove(expression.Name("currency"))
				fields++
			}
			if dueDate, ok := input.DueDate.Get(); ok {
				update = update.Set(expression.Name("dueDate"), expression.Value(dueDate))
				fields++
			} else if input.DueDate.IsNull() {
				update = update.Remove(expression.Name("dueDate"))
				fields++
			}
			if notes, ok := input.Notes.Get(); ok {
				update = update.Set(expression.Name("notes"), expression.Value(notes))
				fields++
			} else if input.Notes.IsNull() {
				update = update.Remove(expression.Name("notes"))
				fields++
			}
			return update, fields, nil
		},
	}
}
