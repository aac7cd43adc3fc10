package clients

import (
	"context"
	"encoding/json"

	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/resolvers"
)

type ClientResolver struct {
	data data.ClientDataService
}

func NewResolver(data data.ClientDataService) resolvers.Service {
	return &ClientResolver{
		data: data,
	}
}

func (cr *ClientResolver) GetHandlers() map[string]resolvers.Handler {
	return map[string]resolvers.Handler{
		"createClient": cr.CreateClient,
		"updateClient": cr.UpdateClient,
		"getClient":    cr.GetClient,
		"listClients":  cr.ListClients,
		"deleteClient": cr.DeleteClient,
		"syncClients":  cr.SyncClients,
	}
}

func (cr *ClientResolver) CreateClient(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Input data.ClientInputDTO `json:"input"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	dto, err := cr.data.Create(ctx, userId, payload.Input)
	if err != nil {
		return nil, err
	}
	return NewClient(dto), nil
}

func (cr *ClientResolver) UpdateClient(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Input data.ClientInputDTO `json:"input"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	id, ok := payload.Input.Id.Get()
	if !ok || id == "" {
		return nil, exceptions.InvalidInput("client id is required")
	}
	dto, err := cr.data.Update(ctx, userId, id, payload.Input)
	if err != nil {
		return nil, err
	}
	return NewClient(dto), nil
}

func (cr *ClientResolver) GetClient(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	if payload.Id == "" {
		return nil, exceptions.InvalidInput("client id is required")
	}
	dto, err := cr.data.Get(ctx, userId, payload.Id)
	if err != nil {
		return nil, err
	}
	return NewClient(dto), nil
}

func (cr *ClientResolver) ListClients(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var params data.QueryParams
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, exceptions.InvalidInput(err.Error())
		}
	}
	results, err := cr.data.List(ctx, userId, params)
	if err != nil {
		return nil, err
	}
	return NewClientPage(results), nil
}

func (cr *ClientResolver) DeleteClient(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	if payload.Id == "" {
		return nil, exceptions.InvalidInput("client id is required")
	}
	if err := cr.data.Delete(ctx, userId, payload.Id); err != nil {
		return nil, err
	}
	return DeleteClientOutput{Id: payload.Id}, nil
}

func (cr *ClientResolver) SyncClients(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Items []data.ClientInputDTO `json:"items"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	dtos, err := cr.data.Sync(ctx, userId, payload.Items)
	if err != nil {
		return nil, err
	}
	items := make([]Client, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, NewClient(dto))
	}
	return SyncClientsOutput{
		Synced: len(items),
		Items:  items,
	}, nil
}
