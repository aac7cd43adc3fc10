package test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"supersimple.dev/cloud/internal/keys"
)

// FakeDynamoDB is an in-memory stand-in for the single table, faithful to
// the narrow slice of DynamoDB the repository uses: conditional puts,
// conditional updates with SET/REMOVE expressions, listing-index queries
// with pagination, deletes, and transactional batch puts.
type FakeDynamoDB struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue

	// Writes counts mutations, so tests can assert a rejected call never
	// touched storage.
	Writes int
}

func NewFakeDynamoDB() *FakeDynamoDB {
	return &FakeDynamoDB{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

// StringAttr reads a string attribute from a raw item, or "" when absent.
func StringAttr(item map[string]types.AttributeValue, field string) string {
	if sv, ok := item[field].(*types.AttributeValueMemberS); ok {
		return sv.Value
	}
	return ""
}

func itemKey(item map[string]types.AttributeValue) string {
	return StringAttr(item, keys.AttrPK) + "|" + StringAttr(item, keys.AttrSK)
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	copied := make(map[string]types.AttributeValue, len(item))
	for field, value := range item {
		copied[field] = value
	}
	return copied
}

func resolveName(token string, names map[string]string) string {
	token = strings.TrimSpace(token)
	if resolved, ok := names[token]; ok {
		return resolved
	}
	return token
}

func attrEqual(a types.AttributeValue, b types.AttributeValue) bool {
	av, aok := a.(*types.AttributeValueMemberS)
	bv, bok := b.(*types.AttributeValueMemberS)
	if aok && bok {
		return av.Value == bv.Value
	}
	an, aok := a.(*types.AttributeValueMemberN)
	bn, bok := b.(*types.AttributeValueMemberN)
	if aok && bok {
		return an.Value == bn.Value
	}
	return false
}

func trimParens(expr string) string {
	expr = strings.TrimSpace(expr)
	for strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
		depth := 0
		balanced := true
		inner := expr[1 : len(expr)-1]
		for _, r := range inner {
			switch r {
			case '(':
				depth++
			case ')':
				depth--
				if depth < 0 {
					balanced = false
				}
			}
		}
		if !balanced || depth != 0 {
			break
		}
		expr = strings.TrimSpace(inner)
	}
	return expr
}

func splitAnd(expr string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i+5 <= len(expr); i++ {
		switch expr[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && expr[i:i+5] == " AND " {
			parts = append(parts, expr[last:i])
			last = i + 5
		}
	}
	parts = append(parts, expr[last:])
	return parts
}

func evalCondition(expr string, names map[string]string, values map[string]types.AttributeValue, item map[string]types.AttributeValue) bool {
	expr = trimParens(expr)
	parts := splitAnd(expr)
	if len(parts) > 1 {
		for _, part := range parts {
			if !evalCondition(part, names, values, item) {
				return false
			}
		}
		return true
	}
	switch {
	case strings.HasPrefix(expr, "attribute_not_exists"):
		field := resolveName(argOf(expr), names)
		return item == nil || item[field] == nil
	case strings.HasPrefix(expr, "attribute_exists"):
		field := resolveName(argOf(expr), names)
		return item != nil && item[field] != nil
	case strings.Contains(expr, " = "):
		sides := strings.SplitN(expr, " = ", 2)
		field := resolveName(sides[0], names)
		expected := values[strings.TrimSpace(sides[1])]
		return item != nil && item[field] != nil && attrEqual(item[field], expected)
	}
	return false
}

func argOf(expr string) string {
	open := strings.Index(expr, "(")
	close := strings.LastIndex(expr, ")")
	if open < 0 || close < open {
		return ""
	}
	return strings.TrimSpace(expr[open+1 : close])
}

func applyUpdate(expr string, names map[string]string, values map[string]types.AttributeValue, item map[string]types.AttributeValue) {
	for _, clause := range strings.Split(expr, "\n") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "SET "):
			for _, assignment := range strings.Split(clause[4:], ", ") {
				sides := strings.SplitN(assignment, " = ", 2)
				if len(sides) != 2 {
					continue
				}
				item[resolveName(sides[0], names)] = values[strings.TrimSpace(sides[1])]
			}
		case strings.HasPrefix(clause, "REMOVE "):
			for _, field := range strings.Split(clause[7:], ", ") {
				delete(item, resolveName(field, names))
			}
		}
	}
}

func (f *FakeDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := itemKey(params.Item)
	existing := f.items[key]
	if params.ConditionExpression != nil {
		if !evalCondition(*params.ConditionExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues, existing) {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	f.items[key] = copyItem(params.Item)
	f.Writes++
	return &dynamodb.PutItemOutput{}, nil
}

func (f *FakeDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemKey(params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (f *FakeDynamoDB) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing := f.items[itemKey(params.Key)]
	if params.ConditionExpression != nil {
		if !evalCondition(*params.ConditionExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues, existing) {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	if existing == nil {
		existing = copyItem(params.Key)
		f.items[itemKey(params.Key)] = existing
	}
	if params.UpdateExpression != nil {
		applyUpdate(*params.UpdateExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues, existing)
	}
	f.Writes++
	output := &dynamodb.UpdateItemOutput{}
	if params.ReturnValues == types.ReturnValueAllNew {
		output.Attributes = copyItem(existing)
	}
	return output, nil
}

func (f *FakeDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sides := strings.SplitN(trimParens(*params.KeyConditionExpression), " = ", 2)
	field := resolveName(sides[0], params.ExpressionAttributeNames)
	expected := params.ExpressionAttributeValues[strings.TrimSpace(sides[1])]

	var matched []map[string]types.AttributeValue
	for _, item := range f.items {
		if item[field] != nil && attrEqual(item[field], expected) {
			matched = append(matched, copyItem(item))
		}
	}
	ascending := params.ScanIndexForward == nil || *params.ScanIndexForward
	sort.Slice(matched, func(i, j int) bool {
		a := StringAttr(matched[i], keys.AttrGSI1SK)
		b := StringAttr(matched[j], keys.AttrGSI1SK)
		if ascending {
			return a < b
		}
		return a > b
	})

	start := 0
	if params.ExclusiveStartKey != nil {
		after := itemKey(params.ExclusiveStartKey)
		for i, item := range matched {
			if itemKey(item) == after {
				start = i + 1
				break
			}
		}
	}
	end := len(matched)
	if params.Limit != nil && start+int(*params.Limit) < end {
		end = start + int(*params.Limit)
	}
	page := matched[start:end]
	output := &dynamodb.QueryOutput{Items: page}
	if end < len(matched) && len(page) > 0 {
		last := page[len(page)-1]
		output.LastEvaluatedKey = map[string]types.AttributeValue{
			keys.AttrPK:     last[keys.AttrPK],
			keys.AttrSK:     last[keys.AttrSK],
			keys.AttrGSI1PK: last[keys.AttrGSI1PK],
			keys.AttrGSI1SK: last[keys.AttrGSI1SK],
		}
	}
	return output, nil
}

func (f *FakeDynamoDB) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemKey(params.Key))
	f.Writes++
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *FakeDynamoDB) TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, write := range params.TransactItems {
		if write.Put != nil {
			f.items[itemKey(write.Put.Item)] = copyItem(write.Put.Item)
			f.Writes++
		}
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// Item exposes a stored record for white-box assertions on raw attributes.
func (f *FakeDynamoDB) Item(pk string, sk string) (map[string]types.AttributeValue, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[pk+"|"+sk]
	if !ok {
		return nil, false
	}
	return copyItem(item), true
}
