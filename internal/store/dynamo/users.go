package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func userPK(phone string) string {
	return "USER#" + phone
}

func (s *Store) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	item, err := s.getItem(ctx, userPK(phone), "METADATA")
	if err != nil {
		s.logger.WithError(err).Error("Failed to get user from DynamoDB")
		return nil, err
	}
	if item == nil {
		return nil, store.ErrNotFound
	}

	var u models.User
	if err := attributevalue.UnmarshalMap(item, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetOrCreateUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	u, err := s.GetUserByPhone(ctx, phone)
	if err == nil {
		u.UpdatedAt = time.Now().UTC()
		if err := s.touchUser(ctx, u); err != nil {
			s.logger.WithError(err).Warn("Failed to touch user timestamp")
		}
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	newUser := models.User{
		ID:        uuid.New().String(),
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	item, err := attributevalue.MarshalMap(newUser)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: userPK(phone)}
	item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// Lost a create race; the winner's record is authoritative.
			return s.GetUserByPhone(ctx, phone)
		}
		s.logger.WithError(err).Error("Failed to create user in DynamoDB")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &newUser, nil
}

func (s *Store) touchUser(ctx context.Context, u *models.User) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.tableName),
		Key:              key(userPK(u.Phone), "METADATA"),
		UpdateExpression: aws.String("SET updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: u.UpdatedAt.Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to touch user: %w", err)
	}
	return nil
}
