// Package dynamo implements the entity store on a DynamoDB single table
// using a PK/SK key schema.
package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

type Store struct {
	client    *dynamodb.Client
	tableName string
	logger    *logrus.Logger
}

func NewStore(client *dynamodb.Client, tableName string, logger *logrus.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

func key(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

func (s *Store) getItem(ctx context.Context, pk, sk string) (map[string]types.AttributeValue, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       key(pk, sk),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return result.Item, nil
}

// scanPrefix collects all items whose PK starts with the given prefix.
// TODO: replace with a GSI query once the table carries one; scans are fine
// at current data volumes.
func (s *Store) scanPrefix(ctx context.Context, prefix string) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		result, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(s.tableName),
			FilterExpression: aws.String("begins_with(PK, :prefix) AND SK = :sk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":prefix": &types.AttributeValueMemberS{Value: prefix},
				":sk":     &types.AttributeValueMemberS{Value: "METADATA"},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan items: %w", err)
		}

		items = append(items, result.Items...)
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return items, nil
}

// addToCounter atomically adjusts a numeric attribute on an item and
// returns the new value.
func (s *Store) addToCounter(ctx context.Context, pk, sk, attr string, delta int) (int, error) {
	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.tableName),
		Key:              key(pk, sk),
		UpdateExpression: aws.String("ADD #attr :delta"),
		ExpressionAttributeNames: map[string]string{
			"#attr": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update counter: %w", err)
	}

	n, ok := result.Attributes[attr].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter attribute %s missing from update result", attr)
	}

	count, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse counter value: %w", err)
	}
	return count, nil
}
