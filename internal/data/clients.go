package data

type ClientDTO struct {
	PK        string   `dynamodbav:"PK"`
	SK        string   `dynamodbav:"SK"`
	GSI1PK    string   `dynamodbav:"GSI1PK"`
	GSI1SK    string   `dynamodbav:"GSI1SK"`
	UserId    string   `dynamodbav:"userId"`
	Id        string   `dynamodbav:"id"`
	Name      string   `dynamodbav:"name"`
	Email     *string  `dynamodbav:"email,omitempty"`
	Phone     *string  `dynamodbav:"phone,omitempty"`
	Company   *string  `dynamodbav:"company,omitempty"`
	Notes     *string  `dynamodbav:"notes,omitempty"`
	Tags      []string `dynamodbav:"tags"`
	CreatedAt int64    `dynamodbav:"createdAt"`
	UpdatedAt int64    `dynamodbav:"updatedAt"`
	SyncedAt  int64    `dynamodbav:"syncedAt"`
}

type ClientInputDTO struct {
	Id        Optional[string]   `json:"id"`
	Name      Optional[string]   `json:"name"`
	Email     Optional[string]   `json:"email"`
	Phone     Optional[string]   `json:"phone"`
	Company   Optional[string]   `json:"company"`
	Notes     Optional[string]   `json:"notes"`
	Tags      Optional[[]string] `json:"tags"`
	CreatedAt Optional[int64]    `json:"createdAt"`
	UpdatedAt Optional[int64]    `json:"updatedAt"`
}

type ClientDataService interface {
	Repository[ClientDTO, ClientInputDTO]
}
