package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/keys"
)

func auditedEntity(entityType keys.EntityType) bool {
	switch entityType {
	case keys.TypeClient, keys.TypeInvoice, keys.TypeDeck:
		return true
	}
	return false
}

func _getRecordImage(record events.DynamoDBEventRecord) map[string]events.DynamoDBAttributeValue {
	if record.Change.NewImage != nil {
		return record.Change.NewImage
	}
	return record.Change.OldImage
}

func _action(eventName string) string {
	switch eventName {
	case "INSERT":
		return "created"
	case "MODIFY":
		return "updated"
	case "REMOVE":
		return "deleted"
	}
	return ""
}

func _displayName(entityType keys.EntityType, image map[string]events.DynamoDBAttributeValue) string {
	field := "name"
	if entityType == keys.TypeInvoice {
		field = "clientName"
	}
	if value, ok := image[field]; ok {
		return value.String()
	}
	return ""
}

// AuditTrailHandler turns every entity mutation flowing off the table stream
// into an audit entry under the owning user.
type AuditTrailHandler struct {
	Audits data.AuditDataService
}

func DefaultAuditHandler(db data.AuditDataService) *AuditTrailHandler {
	return &AuditTrailHandler{
		Audits: db,
	}
}

func (ah *AuditTrailHandler) Filter(record events.DynamoDBEventRecord) bool {
	if _action(record.EventName) == "" {
		return false
	}
	parsed, ok := keys.ParsePK(record.Change.Keys[keys.AttrPK].String())
	return ok && auditedEntity(parsed.EntityType)
}

func (ah *AuditTrailHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	parsed, ok := keys.ParsePK(record.Change.Keys[keys.AttrPK].String())
	if !ok {
		return nil
	}
	action := _action(record.EventName)
	image := _getRecordImage(record)
	message := fmt.Sprintf("%s %s (%s) was %s",
		parsed.EntityType, parsed.Id, _displayName(parsed.EntityType, image), action)
	_, err := ah.Audits.Create(ctx, parsed.UserId, data.AuditInputDTO{
		ResourceId:   data.Some(parsed.Id),
		ResourceType: data.Some(string(parsed.EntityType)),
		Action:       data.Some(action),
		Message:      data.Some(message),
	})
	return err
}
