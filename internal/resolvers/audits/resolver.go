package audits

import (
	"context"
	"encoding/json"

	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/resolvers"
)

type AuditLog struct {
	Id           string `json:"id"`
	ResourceId   string `json:"resourceId"`
	ResourceType string `json:"resourceType"`
	Action       string `json:"action"`
	Message      string `json:"message"`
	CreatedAt    int64  `json:"createdAt"`
}

func NewAuditLog(dto data.AuditDTO) AuditLog {
	return AuditLog{
		Id:           dto.Id,
		ResourceId:   dto.ResourceId,
		ResourceType: dto.ResourceType,
		Action:       dto.Action,
		Message:      dto.Message,
		CreatedAt:    dto.CreatedAt,
	}
}

type AuditLogPage struct {
	Items     []AuditLog `json:"items"`
	NextToken *string    `json:"nextToken"`
}

// AuditResolver only reads; entries are written by the stream processor.
type AuditResolver struct {
	data data.AuditDataService
}

func NewResolver(data data.AuditDataService) resolvers.Service {
	return &AuditResolver{
		data: data,
	}
}

func (ar *AuditResolver) GetHandlers() map[string]resolvers.Handler {
	return map[string]resolvers.Handler{
		"listAuditLogs": ar.ListAuditLogs,
	}
}

func (ar *AuditResolver) ListAuditLogs(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var params data.QueryParams
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, exceptions.InvalidInput(err.Error())
		}
	}
	results, err := ar.data.List(ctx, userId, params)
	if err != nil {
		return nil, err
	}
	items := make([]AuditLog, 0, len(results.Items))
	for _, dto := range results.Items {
		items = append(items, NewAuditLog(dto))
	}
	return AuditLogPage{
		Items:     items,
		NextToken: results.NextToken,
	}, nil
}
