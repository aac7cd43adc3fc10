package data

// Five years before audit entries expire out of the table.
const AuditExpirySeconds = 60 * 60 * 24 * 365 * 5

type AuditDTO struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI1PK       string `dynamodbav:"GSI1PK"`
	GSI1SK       string `dynamodbav:"GSI1SK"`
	UserId       string `dynamodbav:"userId"`
	Id           string `dynamodbav:"id"`
	ResourceId   string `dynamodbav:"resourceId"`
	ResourceType string `dynamodbav:"resourceType"`
	Action       string `dynamodbav:"action"`
	Message      string `dynamodbav:"message"`
	ExpiresIn    *int64 `dynamodbav:"expiresIn,omitempty"`
	CreatedAt    int64  `dynamodbav:"createdAt"`
	UpdatedAt    int64  `dynamodbav:"updatedAt"`
	SyncedAt     int64  `dynamodbav:"syncedAt"`
}

type AuditInputDTO struct {
	Id           Optional[string] `json:"id"`
	ResourceId   Optional[string] `json:"resourceId"`
	ResourceType Optional[string] `json:"resourceType"`
	Action       Optional[string] `json:"action"`
	Message      Optional[string] `json:"message"`
	ExpiresIn    Optional[int64]  `json:"expiresIn"`
}

type AuditDataService interface {
	Repository[AuditDTO, AuditInputDTO]
}
