package clients

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/dynamodb/services"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/keys"
)

// NewClientService wires the CRM client entity into the shared table.
// Clients list alphabetically, so GSI1SK carries the name and follows it on
// rename.
func NewClientService(tableName string, client services.DynamoDBClient, marshaler token.TokenMarshaler) data.ClientDataService {
	return &services.SingleTableService[data.ClientDTO, data.ClientInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "client",
		Ascending:      true,
		Key:            keys.Client,
		ListKey:        keys.ClientList,
		InputId: func(input data.ClientInputDTO) data.Optional[string] {
			return input.Id
		},
		OnCreate: func(key keys.PrimaryKey, listKey keys.ListKey, userId string, id string, input data.ClientInputDTO, now time.Time) (data.ClientDTO, error) {
			name, ok := input.Name.Get()
			if !ok || name == "" {
				return data.ClientDTO{}, exceptions.InvalidInput("client name is required")
			}
			nowMs := now.UnixMilli()
			return data.ClientDTO{
				PK:        key.PK,
				SK:        key.SK,
				GSI1PK:    listKey.GSI1PK,
				GSI1SK:    keys.ByName(name),
				UserId:    userId,
				Id:        id,
				Name:      name,
				Email:     input.Email.Ptr(),
				Phone:     input.Phone.Ptr(),
				Company:   input.Company.Ptr(),
				Notes:     input.Notes.Ptr(),
				Tags:      input.Tags.Or([]string{}),
				CreatedAt: input.CreatedAt.Or(nowMs),
				UpdatedAt: input.UpdatedAt.Or(nowMs),
				SyncedAt:  nowMs,
			}, nil
		},
		OnUpdate: func(input data.ClientInputDTO, update expression.UpdateBuilder) (expression.UpdateBuilder, int, error) {
			fields := 0
			if input.Name.IsNull() {
				return update, fields, exceptions.InvalidInput("client name cannot be cleared")
			}
			if name, ok := input.Name.Get(); ok {
				if name == "" {
					return update, fields, exceptions.InvalidInput("client name cannot be empty")
				}
				update = update.
					Set(expression.Name("name"), expression.Value(name)).
					Set(expression.Name(keys.AttrGSI1SK), expression.Value(keys.ByName(name)))
				fields++
			}
			update, fields = setOrRemove(update, fields, "email", input.Email)
			update, fields = setOrRemove(update, fields, "phone", input.Phone)
			update, fields = setOrRemove(update, fields, "company", input.Company)
			update, fields = setOrRemove(update, fields, "notes", input.Notes)
			if tags, ok := input.Tags.Get(); ok {
				update = update.Set(expression.Name("tags"), expression.Value(tags))
				fields++
			} else if input.Tags.IsNull() {
				update = update.Set(expression.Name("tags"), expression.Value([]string{}))
				fields++
			}
			return update, fields, nil
		},
	}
}

func setOrRemove(update expression.UpdateBuilder, fields int, field string, value data.Optional[string]) (expression.UpdateBuilder, int) {
	if v, ok := value.Get(); ok {
		return update.Set(expression.Name(field), expression.Value(v)), fields + 1
	}
	if value.IsNull() {
		return update.Remove(expression.Name(field)), fields + 1
	}
	return update, fields
}
