package events

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"supersimple.dev/cloud/internal/keys"
	"supersimple.dev/cloud/internal/notifications"
)

// SyncAlertHandler notifies subscribers when an offline-created record lands
// through a batch sync. A fresh create stamps createdAt and syncedAt from the
// same clock read; an uploaded offline record carries its original createdAt,
// so createdAt < syncedAt identifies the sync path.
type SyncAlertHandler struct {
	Notifications notifications.NotificationService
}

func DefaultSyncAlertHandler(service notifications.NotificationService) *SyncAlertHandler {
	return &SyncAlertHandler{
		Notifications: service,
	}
}

func _numberAttr(image map[string]events.DynamoDBAttributeValue, field string) (int64, bool) {
	value, ok := image[field]
	if !ok || value.DataType() != events.DataTypeNumber {
		return 0, false
	}
	n, err := strconv.ParseInt(value.Number(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (sh *SyncAlertHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != "INSERT" {
		return false
	}
	parsed, ok := keys.ParsePK(record.Change.Keys[keys.AttrPK].String())
	if !ok || !auditedEntity(parsed.EntityType) {
		return false
	}
	createdAt, ok := _numberAttr(record.Change.NewImage, "createdAt")
	if !ok {
		return false
	}
	syncedAt, ok := _numberAttr(record.Change.NewImage, "syncedAt")
	if !ok {
		return false
	}
	return createdAt < syncedAt
}

func (sh *SyncAlertHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	parsed, ok := keys.ParsePK(record.Change.Keys[keys.AttrPK].String())
	if !ok {
		return nil
	}
	message := fmt.Sprintf("%s %s (%s) was synced from an offline change",
		parsed.EntityType, parsed.Id,
		_displayName(parsed.EntityType, record.Change.NewImage))
	return sh.Notifications.Publish(ctx, "Offline records synced", message)
}
