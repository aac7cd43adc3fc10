package keys

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Single-table attribute and index names shared by every entity family.
const (
	AttrPK     = "PK"
	AttrSK     = "SK"
	AttrGSI1PK = "GSI1PK"
	AttrGSI1SK = "GSI1SK"

	ListIndex = "GSI1"

	MetadataSK = "METADATA"
)

type EntityType string

const (
	TypeClient  EntityType = "CLIENT"
	TypeInvoice EntityType = "INVOICE"
	TypeDeck    EntityType = "DECK"
	TypeAudit   EntityType = "AUDIT"
)

// PrimaryKey locates one entity record: PK=USER#{uid}#{TYPE}#{id}, SK=METADATA.
type PrimaryKey struct {
	PK string
	SK string
}

// ListKey is the partition of the listing index: GSI1PK=USER#{uid}#TYPE#{TYPE}.
type ListKey struct {
	GSI1PK string
}

func primary(userId string, entityType EntityType, id string) PrimaryKey {
	return PrimaryKey{
		PK: fmt.Sprintf("USER#%s#%s#%s", userId, entityType, id),
		SK: MetadataSK,
	}
}

func list(userId string, entityType EntityType) ListKey {
	return ListKey{
		GSI1PK: fmt.Sprintf("USER#%s#TYPE#%s", userId, entityType),
	}
}

// One constructor per entity type keeps key formats out of call sites.

func Client(userId string, id string) PrimaryKey {
	return primary(userId, TypeClient, id)
}

func Invoice(userId string, id string) PrimaryKey {
	return primary(userId, TypeInvoice, id)
}

func Deck(userId string, id string) PrimaryKey {
	return primary(userId, TypeDeck, id)
}

func Audit(userId string, id string) PrimaryKey {
	return primary(userId, TypeAudit, id)
}

func ClientList(userId string) ListKey {
	return list(userId, TypeClient)
}

func InvoiceList(userId string) ListKey {
	return list(userId, TypeInvoice)
}

func DeckList(userId string) ListKey {
	return list(userId, TypeDeck)
}

func AuditList(userId string) ListKey {
	return list(userId, TypeAudit)
}

// ByName builds a GSI1SK for alphabetically listed entities.
func ByName(name string) string {
	return "NAME#" + name
}

// ByDate builds a GSI1SK for chronologically listed entities. RFC3339 sorts
// lexicographically, which is what a range query needs.
func ByDate(t time.Time) string {
	return "DATE#" + t.UTC().Format(time.RFC3339)
}

func (pk PrimaryKey) AttributeValues() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: pk.PK},
		AttrSK: &types.AttributeValueMemberS{Value: pk.SK},
	}
}

// Parsed is a decomposed partition key, recovered from stream records.
type Parsed struct {
	UserId     string
	EntityType EntityType
	Id         string
}

// ParsePK splits USER#{uid}#{TYPE}#{id} back into its parts. Ids never
// contain '#', so the tail is unambiguous.
func ParsePK(pk string) (Parsed, bool) {
	parts := strings.SplitN(pk, "#", 4)
	if len(parts) != 4 || parts[0] != "USER" {
		return Parsed{}, false
	}
	return Parsed{
		UserId:     parts[1],
		EntityType: EntityType(parts[2]),
		Id:         parts[3],
	}, true
}
