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

func (s *Store) LikeVideo(ctx context.Context, videoID, userID string) (int, error) {
	v, err := s.GetVideo(ctx, videoID)
	if err != nil {
		return 0, err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"PK":         &types.AttributeValueMemberS{Value: videoPK(videoID)},
			"SK":         &types.AttributeValueMemberS{Value: "LIKE#" + userID},
			"created_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// Already liked; idempotent.
			return v.LikeCount, nil
		}
		return 0, fmt.Errorf("failed to store like: %w", err)
	}

	return s.addToCounter(ctx, videoPK(videoID), "METADATA", "like_count", 1)
}

func (s *Store) UnlikeVideo(ctx context.Context, videoID, userID string) (int, error) {
	v, err := s.GetVideo(ctx, videoID)
	if err != nil {
		return 0, err
	}

	result, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.tableName),
		Key:          key(videoPK(videoID), "LIKE#"+userID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete like: %w", err)
	}
	if result.Attributes == nil {
		// Was not liked; idempotent.
		return v.LikeCount, nil
	}

	return s.addToCounter(ctx, videoPK(videoID), "METADATA", "like_count", -1)
}

func (s *Store) CreateReport(ctx context.Context, r models.Report) (models.Report, error) {
	if _, err := s.GetVideo(ctx, r.VideoID); err != nil {
		return models.Report{}, err
	}

	r.ID = uuid.New().String()
	r.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to marshal report: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: "REPORT#" + r.ID}
	item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to store report in DynamoDB")
		return models.Report{}, fmt.Errorf("failed to store report: %w", err)
	}
	return r, nil
}

func (s *Store) CreateShare(ctx context.Context, sh models.Share) (int, error) {
	if _, err := s.GetVideo(ctx, sh.VideoID); err != nil {
		return 0, err
	}

	sh.ID = uuid.New().String()
	sh.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(sh)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal share: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: "SHARE#" + sh.ID}
	item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to store share: %w", err)
	}

	return s.addToCounter(ctx, videoPK(sh.VideoID), "METADATA", "share_count", 1)
}

func (s *Store) ListFilterPresets(ctx context.Context) ([]models.FilterPreset, error) {
	items, err := s.scanPrefix(ctx, "FILTER#")
	if err != nil {
		return nil, err
	}

	var presets []models.FilterPreset
	if err := attributevalue.UnmarshalListOfMaps(items, &presets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal filter presets: %w", err)
	}
	return presets, nil
}

// SeedFilterPresets writes the catalog entries; called once at startup.
func (s *Store) SeedFilterPresets(ctx context.Context, presets []models.FilterPreset) error {
	for _, p := range presets {
		item, err := attributevalue.MarshalMap(p)
		if err != nil {
			return fmt.Errorf("failed to marshal filter preset: %w", err)
		}
		item["PK"] = &types.AttributeValueMemberS{Value: "FILTER#" + p.ID}
		item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

		_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.tableName),
			Item:      item,
		})
		if err != nil {
			return fmt.Errorf("failed to seed filter preset %s: %w", p.ID, err)
		}
	}
	return nil
}

func (s *Store) CreateCheckout(ctx context.Context, c models.CheckoutSession) (models.CheckoutSession, error) {
	c.ID = uuid.New().String()
	c.Status = models.CheckoutStatusPending
	c.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("failed to marshal checkout: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: "CHECKOUT#" + c.ID}
	item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return models.CheckoutSession{}, fmt.Errorf("failed to store checkout: %w", err)
	}
	return c, nil
}

func (s *Store) GetCheckout(ctx context.Context, id string) (*models.CheckoutSession, error) {
	item, err := s.getItem(ctx, "CHECKOUT#"+id, "METADATA")
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, store.ErrNotFound
	}

	var c models.CheckoutSession
	if err := attributevalue.UnmarshalMap(item, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout: %w", err)
	}
	return &c, nil
}
