package token

import "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

// TokenMarshaler turns a query's last evaluated key into an opaque
// continuation token and back. Tokens are bound to the owning user: a token
// minted for one user fails to unmarshal for any other.
type TokenMarshaler interface {
	Marshal(userId string, lastKey map[string]types.AttributeValue) (*string, error)

	Unmarshal(userId string, token *string) (map[string]types.AttributeValue, error)
}
