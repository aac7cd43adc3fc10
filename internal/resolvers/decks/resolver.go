package decks

import (
	"context"
	"encoding/json"

	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/resolvers"
)

type DeckResolver struct {
	data data.DeckDataService
}

func NewResolver(data data.DeckDataService) resolvers.Service {
	return &DeckResolver{
		data: data,
	}
}

func (dr *DeckResolver) GetHandlers() map[string]resolvers.Handler {
	return map[string]resolvers.Handler{
		"createDeck": dr.CreateDeck,
		"updateDeck": dr.UpdateDeck,
		"getDeck":    dr.GetDeck,
		"listDecks":  dr.ListDecks,
		"deleteDeck": dr.DeleteDeck,
		"syncDecks":  dr.SyncDecks,
	}
}

func (dr *DeckResolver) CreateDeck(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Input data.DeckInputDTO `json:"input"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	dto, err := dr.data.Create(ctx, userId, payload.Input)
	if err != nil {
		return nil, err
	}
	return NewDeck(dto), nil
}

func (dr *DeckResolver) UpdateDeck(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Input data.DeckInputDTO `json:"input"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	id, ok := payload.Input.Id.Get()
	if !ok || id == "" {
		return nil, exceptions.InvalidInput("deck id is required")
	}
	dto, err := dr.data.Update(ctx, userId, id, payload.Input)
	if err != nil {
		return nil, err
	}
	return NewDeck(dto), nil
}

func (dr *DeckResolver) GetDeck(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	if payload.Id == "" {
		return nil, exceptions.InvalidInput("deck id is required")
	}
	dto, err := dr.data.Get(ctx, userId, payload.Id)
	if err != nil {
		return nil, err
	}
	return NewDeck(dto), nil
}

func (dr *DeckResolver) ListDecks(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var params data.QueryParams
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, exceptions.InvalidInput(err.Error())
		}
	}
	results, err := dr.data.List(ctx, userId, params)
	if err != nil {
		return nil, err
	}
	return NewDeckPage(results), nil
}

func (dr *DeckResolver) DeleteDeck(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	if payload.Id == "" {
		return nil, exceptions.InvalidInput("deck id is required")
	}
	if err := dr.data.Delete(ctx, userId, payload.Id); err != nil {
		return nil, err
	}
	return DeleteDeckOutput{Id: payload.Id}, nil
}

func (dr *DeckResolver) SyncDecks(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Items []data.DeckInputDTO `json:"items"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	dtos, err := dr.data.Sync(ctx, userId, payload.Items)
	if err != nil {
		return nil, err
	}
	items := make([]Deck, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, NewDeck(dto))
	}
	return SyncDecksOutput{
		Synced: len(items),
		Items:  items,
	}, nil
}
