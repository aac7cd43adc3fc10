package data

type LineItemDTO struct {
	Description string  `dynamodbav:"description"`
	Quantity    float64 `dynamodbav:"quantity"`
	UnitPrice   float64 `dynamodbav:"unitPrice"`
}

type InvoiceDTO struct {
	PK         string        `dynamodbav:"PK"`
	SK         string        `dynamodbav:"SK"`
	GSI1PK     string        `dynamodbav:"GSI1PK"`
	GSI1SK     string        `dynamodbav:"GSI1SK"`
	UserId     string        `dynamodbav:"userId"`
	Id         string        `dynamodbav:"id"`
	ClientName string        `dynamodbav:"clientName"`
	LineItems  []LineItemDTO `dynamodbav:"lineItems"`
	Status     string        `dynamodbav:"status"`
	Currency   *string       `dynamodbav:"currency,omitempty"`
	DueDate    *int64        `dynamodbav:"dueDate,omitempty"`
	Notes      *string       `dynamodbav:"notes,omitempty"`
	CreatedAt  int64         `dynamodbav:"createdAt"`
	UpdatedAt  int64         `dynamodbav:"updatedAt"`
	SyncedAt   int64         `dynamodbav:"syncedAt"`
}

type InvoiceInputDTO struct {
	Id         Optional[string]        `json:"id"`
	ClientName Optional[string]        `json:"clientName"`
	LineItems  Optional[[]LineItemDTO] `json:"lineItems"`
	Status     Optional[string]        `json:"status"`
	Currency   Optional[string]        `json:"currency"`
	DueDate    Optional[int64]         `json:"dueDate"`
	Notes      Optional[string]        `json:"notes"`
	CreatedAt  Optional[int64]         `json:"createdAt"`
	UpdatedAt  Optional[int64]         `json:"updatedAt"`
}

type InvoiceDataService interface {
	Repository[InvoiceDTO, InvoiceInputDTO]
}
