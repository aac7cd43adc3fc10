package data

type CardDTO struct {
	Id    string `dynamodbav:"id"`
	Front string `dynamodbav:"front"`
	Back  string `dynamodbav:"back"`
}

type DeckDTO struct {
	PK          string    `dynamodbav:"PK"`
	SK          string    `dynamodbav:"SK"`
	GSI1PK      string    `dynamodbav:"GSI1PK"`
	GSI1SK      string    `dynamodbav:"GSI1SK"`
	UserId      string    `dynamodbav:"userId"`
	Id          string    `dynamodbav:"id"`
	Name        string    `dynamodbav:"name"`
	Description *string   `dynamodbav:"description,omitempty"`
	Cards       []CardDTO `dynamodbav:"cards"`
	CreatedAt   int64     `dynamodbav:"createdAt"`
	UpdatedAt   int64     `dynamodbav:"updatedAt"`
	SyncedAt    int64     `dynamodbav:"syncedAt"`
}

type DeckInputDTO struct {
	Id          Optional[string]    `json:"id"`
	Name        Optional[string]    `json:"name"`
	Description Optional[string]    `json:"description"`
	Cards       Optional[[]CardDTO] `json:"cards"`
	CreatedAt   Optional[int64]     `json:"createdAt"`
	UpdatedAt   Optional[int64]     `json:"updatedAt"`
}

type DeckDataService interface {
	Repository[DeckDTO, DeckInputDTO]
}
