package decks

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/dynamodb/services"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/keys"
)

// NewDeckService wires the flashcard deck entity into the shared table.
// Cards live inside the deck record; the apps never address a card alone.
func NewDeckService(tableName string, client services.DynamoDBClient, marshaler token.TokenMarshaler) data.DeckDataService {
	return &services.SingleTableService[data.DeckDTO, data.DeckInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "deck",
		Ascending:      true,
		Key:            keys.Deck,
		ListKey:        keys.DeckList,
		InputId: func(input data.DeckInputDTO) data.Optional[string] {
			return input.Id
		},
		OnCreate: func(key keys.PrimaryKey, listKey keys.ListKey, userId string, id string, input data.DeckInputDTO, now time.Time) (data.DeckDTO, error) {
			name, ok := input.Name.Get()
			if !ok || name == "" {
				return data.DeckDTO{}, exceptions.InvalidInput("deck name is required")
			}
			nowMs := now.UnixMilli()
			return data.DeckDTO{
				PK:          key.PK,
				SK:          key.SK,
				GSI1PK:      listKey.GSI1PK,
				GSI1SK:      keys.ByName(name),
				UserId:      userId,
				Id:          id,
				Name:        name,
				Description: input.Description.Ptr(),
				Cards:       input.Cards.Or([]data.CardDTO{}),
				CreatedAt:   input.CreatedAt.Or(nowMs),
				UpdatedAt:   input.UpdatedAt.Or(nowMs),
				SyncedAt:    nowMs,
			}, nil
		},
		OnUpdate: func(input data.DeckInputDTO, update expression.UpdateBuilder) (expression.UpdateBuilder, int, error) {
			fields := 0
			if input.Name.IsNull() {
				return update, fields, exceptions.InvalidInput("deck name cannot be cleared")
			}
			if name, ok := input.Name.Get(); ok {
				if name == "" {
					return update, fields, exceptions.InvalidInput("deck name cannot be empty")
				}
				update = update.
					Set(expression.Name("name"), expression.Value(name)).
					Set(expression.Name(keys.AttrGSI1SK), expression.Value(keys.ByName(name)))
				fields++
			}
			if description, ok := input.Description.Get(); ok {
				update = update.Set(expression.Name("description"), expression.Value(description))
				fields++
			} else if input.Description.IsNull() {
				update = update.Remove(expression.Name("description"))
				fields++
			}
			if cards, ok := input.Cards.Get(); ok {
				update = update.Set(expression.Name("cards"), expression.Value(cards))
				fields++
			} else if input.Cards.IsNull() {
				update = update.Set(expression.Name("cards"), expression.Value([]data.CardDTO{}))
				fields++
			}
			return update, fields, nil
		},
	}
}
