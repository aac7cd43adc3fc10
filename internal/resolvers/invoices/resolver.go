package invoices

import (
	"context"
	"encoding/json"

	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/resolvers"
)

// InvoiceResolver has no delete field: the invoicing app only deletes
// locally, so the cloud surface never grew one.
type InvoiceResolver struct {
	data data.InvoiceDataService
}

func NewResolver(data data.InvoiceDataService) resolvers.Service {
	return &InvoiceResolver{
		data: data,
	}
}

func (ir *InvoiceResolver) GetHandlers() map[string]resolvers.Handler {
	return map[string]resolvers.Handler{
		"createInvoice": ir.CreateInvoice,
		"updateInvoice": ir.UpdateInvoice,
		"getInvoice":    ir.GetInvoice,
		"listInvoices":  ir.ListInvoices,
		"syncInvoices":  ir.SyncInvoices,
	}
}

func (ir *InvoiceResolver) CreateInvoice(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Input data.InvoiceInputDTO `json:"input"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	dto, err := ir.data.Create(ctx, userId, payload.Input)
	if err != nil {
		return nil, err
	}
	return NewInvoice(dto), nil
}

func (ir *InvoiceResolver) UpdateInvoice(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Input data.InvoiceInputDTO `json:"input"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	id, ok := payload.Input.Id.Get()
	if !ok || id == "" {
		return nil, exceptions.InvalidInput("invoice id is required")
	}
	dto, err := ir.data.Update(ctx, userId, id, payload.Input)
	if err != nil {
		return nil, err
	}
	return NewInvoice(dto), nil
}

func (ir *InvoiceResolver) GetInvoice(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Id string `json:"id"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	if payload.Id == "" {
		return nil, exceptions.InvalidInput("invoice id is required")
	}
	dto, err := ir.data.Get(ctx, userId, payload.Id)
	if err != nil {
		return nil, err
	}
	return NewInvoice(dto), nil
}

func (ir *InvoiceResolver) ListInvoices(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var params data.QueryParams
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, exceptions.InvalidInput(err.Error())
		}
	}
	results, err := ir.data.List(ctx, userId, params)
	if err != nil {
		return nil, err
	}
	return NewInvoicePage(results), nil
}

func (ir *InvoiceResolver) SyncInvoices(ctx context.Context, userId string, args json.RawMessage) (interface{}, error) {
	var payload struct {
		Items []data.InvoiceInputDTO `json:"items"`
	}
	if err := json.Unmarshal(args, &payload); err != nil {
		return nil, exceptions.InvalidInput(err.Error())
	}
	dtos, err := ir.data.Sync(ctx, userId, payload.Items)
	if err != nil {
		return nil, err
	}
	items := make([]Invoice, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, NewInvoice(dto))
	}
	return SyncInvoicesOutput{
		Synced: len(items),
		Items:  items,
	}, nil
}
