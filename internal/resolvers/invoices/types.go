package invoices

import (
	"supersimple.dev/cloud/internal/data"
)

type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Invoice struct {
	Id         string     `json:"id"`
	ClientName string     `json:"clientName"`
	LineItems  []LineItem `json:"lineItems"`
	Status     string     `json:"status"`
	Currency   *string    `json:"currency"`
	DueDate    *int64     `json:"dueDate"`
	Notes      *string    `json:"notes"`
	CreatedAt  int64      `json:"createdAt"`
	UpdatedAt  int64      `json:"updatedAt"`
	SyncedAt   int64      `json:"syncedAt"`
}

func NewInvoice(dto data.InvoiceDTO) Invoice {
	lineItems := make([]LineItem, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		lineItems = append(lineItems, LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}
	return Invoice{
		Id:         dto.Id,
		ClientName: dto.ClientName,
		LineItems:  lineItems,
		Status:     dto.Status,
		Currency:   dto.Currency,
		DueDate:    dto.DueDate,
		Notes:      dto.Notes,
		CreatedAt:  dto.CreatedAt,
		UpdatedAt:  dto.UpdatedAt,
		SyncedAt:   dto.SyncedAt,
	}
}

type InvoicePage struct {
	Items     []Invoice `json:"items"`
	NextToken *string   `json:"nextToken"`
}

func NewInvoicePage(results data.QueryResults[data.InvoiceDTO]) InvoicePage {
	items := make([]Invoice, 0, len(results.Items))
	for _, dto := range results.Items {
		items = append(items, NewInvoice(dto))
	}
	return InvoicePage{
		Items:     items,
		NextToken: results.NextToken,
	}
}

type SyncInvoicesOutput struct {
	Synced int       `json:"synced"`
	Items  []Invoice `json:"items"`
}
