package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"supersimple.dev/cloud/internal/data"
	"supersimple.dev/cloud/internal/dynamodb/token"
	"supersimple.dev/cloud/internal/exceptions"
	"supersimple.dev/cloud/internal/keys"
)

// SingleTableService implements data.Repository for one entity family over
// the shared table. The entity packages configure it with key constructors
// and the create/update attribute mapping; everything else is uniform.
//
// Create is guarded by attribute_not_exists(PK) and surfaces a conflict on
// the second attempt. Update is guarded by attribute_exists(PK) plus an
// ownership check on userId, and surfaces not-found whether the record is
// missing or owned by someone else. Sync writes the whole batch in one
// transaction, all-or-nothing.
type SingleTableService[T interface{}, I interface{}] struct {
	DynamoDB       DynamoDBClient
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Name           string
	Ascending      bool
	Key            func(userId string, id string) keys.PrimaryKey
	ListKey        func(userId string) keys.ListKey
	InputId        func(I) data.Optional[string]
	OnCreate       func(key keys.PrimaryKey, listKey keys.ListKey, userId string, id string, input I, now time.Time) (T, error)
	OnUpdate       func(input I, update expression.UpdateBuilder) (expression.UpdateBuilder, int, error)
}

func conditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (rs *SingleTableService[T, I]) newItemId(input I) string {
	if id, ok := rs.InputId(input).Get(); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func (rs *SingleTableService[T, I]) buildItem(userId string, id string, input I, now time.Time) (T, map[string]types.AttributeValue, error) {
	shim, err := rs.OnCreate(rs.Key(userId, id), rs.ListKey(userId), userId, id, input, now)
	if err != nil {
		return shim, nil, err
	}
	item, err := attributevalue.MarshalMap(shim)
	return shim, item, err
}

func (rs *SingleTableService[T, I]) Create(ctx context.Context, userId string, input I) (T, error) {
	id := rs.newItemId(input)
	shim, item, err := rs.buildItem(userId, id, input, time.Now())
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name(keys.AttrPK).AttributeNotExists()).
		Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		if conditionFailed(err) {
			return shim, exceptions.Conflict(rs.Name, id)
		}
		return shim, err
	}
	return shim, nil
}

func (rs *SingleTableService[T, I]) Update(ctx context.Context, userId string, itemId string, input I) (T, error) {
	var shim T
	now := time.Now().UnixMilli()
	update := expression.
		Set(expression.Name("updatedAt"), expression.Value(now)).
		Set(expression.Name("syncedAt"), expression.Value(now))
	update, fields, err := rs.OnUpdate(input, update)
	if err != nil {
		return shim, err
	}
	if fields == 0 {
		return shim, exceptions.InvalidInput(fmt.Sprintf("update requires at least one %s field", rs.Name))
	}
	condition := expression.Name(keys.AttrPK).AttributeExists().
		And(expression.Name("userId").Equal(expression.Value(userId)))
	expr, err := expression.NewBuilder().WithCondition(condition).WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       rs.Key(userId, itemId).AttributeValues(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if conditionFailed(err) {
			// A missing record and someone else's record answer the same.
			return shim, exceptions.NotFound(rs.Name, itemId)
		}
		return shim, err
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &shim)
	return shim, err
}

func (rs *SingleTableService[T, I]) Get(ctx context.Context, userId string, itemId string) (T, error) {
	var shim T
	response, err := rs.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(rs.TableName),
		Key:       rs.Key(userId, itemId).AttributeValues(),
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, exceptions.NotFound(rs.Name, itemId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *SingleTableService[T, I]) List(ctx context.Context, userId string, params data.QueryParams) (data.QueryResults[T], error) {
	keyEx := expression.Key(keys.AttrGSI1PK).Equal(expression.Value(rs.ListKey(userId).GSI1PK))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	startKey, err := rs.TokenMarshaler.Unmarshal(userId, params.NextToken)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	output, err := rs.DynamoDB.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(rs.TableName),
		IndexName:                 aws.String(keys.ListIndex),
		Limit:                     params.GetLimit(),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ExclusiveStartKey:         startKey,
		ScanIndexForward:          aws.Bool(rs.Ascending),
	})
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	var items []T
	err = attributevalue.UnmarshalListOfMaps(output.Items, &items)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	nextToken, err := rs.TokenMarshaler.Marshal(userId, output.LastEvaluatedKey)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	return data.QueryResults[T]{
		Items:     items,
		NextToken: nextToken,
	}, nil
}

func (rs *SingleTableService[T, I]) Delete(ctx context.Context, userId string, itemId string) error {
	_, err := rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(rs.TableName),
		Key:       rs.Key(userId, itemId).AttributeValues(),
	})
	return err
}

func (rs *SingleTableService[T, I]) Sync(ctx context.Context, userId string, inputs []I) ([]T, error) {
	if len(inputs) == 0 {
		return nil, exceptions.InvalidInput(fmt.Sprintf("sync requires at least one %s", rs.Name))
	}
	if len(inputs) > data.MaxSyncBatch {
		return nil, exceptions.InvalidInput(fmt.Sprintf("sync accepts at most %d items, got %d", data.MaxSyncBatch, len(inputs)))
	}
	now := time.Now()
	shims := make([]T, 0, len(inputs))
	writes := make([]types.TransactWriteItem, 0, len(inputs))
	for _, input := range inputs {
		shim, item, err := rs.buildItem(userId, rs.newItemId(input), input, now)
		if err != nil {
			return nil, err
		}
		shims = append(shims, shim)
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(rs.TableName),
				Item:      item,
			},
		})
	}
	_, err := rs.DynamoDB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: writes,
	})
	if err != nil {
		return nil, err
	}
	return shims, nil
}
