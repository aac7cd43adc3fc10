package audits

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/dynamodb/services"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/keys"
)

// NewAuditService wires the audit trail into the shared table. Entries are
// written by the stream processor, listed newest first, and expire via TTL.
// They are never updated in place.
func NewAuditService(tableName string, client services.DynamoDBClient, marshaler token.TokenMarshaler) data.AuditDataService {
	return &services.SingleTableService[data.AuditDTO, data.AuditInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Name:           "audit log",
		Ascending:      false,
		Key:            keys.Audit,
		ListKey:        keys.AuditList,
		InputId: func(input data.AuditInputDTO) data.Optional[string] {
			return input.Id
		},
		OnCreate: func(key keys.PrimaryKey, listKey keys.ListKey, userId string, id string, input data.AuditInputDTO, now time.Time) (data.AuditDTO, error) {
			resourceId, ok := input.ResourceId.Get()
			if !ok {
				return data.AuditDTO{}, exceptions.InvalidInput("audit resourceId is required")
			}
			resourceType, ok := input.ResourceType.Get()
			if !ok {
				return data.AuditDTO{}, exceptions.InvalidInput("audit resourceType is required")
			}
			action, ok := input.Action.Get()
			if !ok {
				return data.AuditDTO{}, exceptions.InvalidInput("audit action is required")
			}
			nowMs := now.UnixMilli()
			expiresIn := input.ExpiresIn.Or(now.Unix() + data.AuditExpirySeconds)
			return data.AuditDTO{
				PK:           key.PK,
				SK:           key.SK,
				GSI1PK:       listKey.GSI1PK,
				GSI1SK:       keys.ByDate(now),
				UserId:       userId,
				Id:           id,
				ResourceId:   resourceId,
				ResourceType: resourceType,
				Action:       action,
				Message:      input.Message.Or(""),
				ExpiresIn:    &expiresIn,
				CreatedAt:    nowMs,
				UpdatedAt:    nowMs,
				SyncedAt:     nowMs,
			}, nil
		},
		OnUpdate: func(input data.AuditInputDTO, update expression.UpdateBuilder) (expression.UpdateBuilder, int, error) {
			return update, 0, exceptions.InvalidInput("audit log entries are immutable")
		},
	}
}
