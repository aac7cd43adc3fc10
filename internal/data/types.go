package data

import "context"

const (
	DefaultLimit = 50
	MaxLimit     = 100

	// MaxSyncBatch matches the transactional write limit of the storage
	// engine. Larger batches are rejected before any write happens.
	MaxSyncBatch = 25
)

type QueryParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken"`
}

func (q *QueryParams) GetLimit() *int32 {
	limit := int32(q.Limit)
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return &limit
}

type QueryResults[T interface{}] struct {
	Items     []T     `json:"items"`
	NextToken *string `json:"nextToken"`
}

type NextToken map[string]map[string]string

// Repository is the uniform access surface every entity family exposes.
type Repository[T interface{}, I interface{}] interface {
	Get(ctx context.Context, userId string, itemId string) (T, error)
	Create(ctx context.Context, userId string, input I) (T, error)
	Update(ctx context.Context, userId string, itemId string, input I) (T, error)
	List(ctx context.Context, userId string, params QueryParams) (QueryResults[T], error)
	Delete(ctx context.Context, userId string, itemId string) error
	Sync(ctx context.Context, userId string, inputs []I) ([]T, error)
}
