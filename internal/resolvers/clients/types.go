package clients

import (
	"supersimple.dev/cloud/internal/data"
)

// Client is the external shape. Every optional field is present in the
// output; absence in storage surfaces as an explicit null, never a missing
// key.
type Client struct {
	Id        string   `json:"id"`
	Name      string   `json:"name"`
	Email     *string  `json:"email"`
	Phone     *string  `json:"phone"`
	Company   *string  `json:"company"`
	Notes     *string  `json:"notes"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	SyncedAt  int64    `json:"syncedAt"`
}

func NewClient(dto data.ClientDTO) Client {
	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}
	return Client{
		Id:        dto.Id,
		Name:      dto.Name,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Company:   dto.Company,
		Notes:     dto.Notes,
		Tags:      tags,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		SyncedAt:  dto.SyncedAt,
	}
}

type ClientPage struct {
	Items     []Client `json:"items"`
	NextToken *string  `json:"nextToken"`
}

func NewClientPage(results data.QueryResults[data.ClientDTO]) ClientPage {
	items := make([]Client, 0, len(results.Items))
	for _, dto := range results.Items {
		items = append(items, NewClient(dto))
	}
	return ClientPage{
		Items:     items,
		NextToken: results.NextToken,
	}
}

type SyncClientsOutput struct {
	Synced int      `json:"synced"`
	Items  []Client `json:"items"`
}

type DeleteClientOutput struct {
	Id string `json:"id"`
}
