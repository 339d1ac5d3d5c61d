package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

func commentPK(id string) string {
	return "COMMENT#" + id
}

func (s *Store) CreateComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	if _, err := s.GetVideo(ctx, c.VideoID); err != nil {
		return models.Comment{}, err
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return models.Comment{}, fmt.Errorf("failed to marshal comment: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: commentPK(c.ID)}
	item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to store comment in DynamoDB")
		return models.Comment{}, fmt.Errorf("failed to store comment: %w", err)
	}

	if _, err := s.addToCounter(ctx, videoPK(c.VideoID), "METADATA", "comment_count", 1); err != nil {
		s.logger.WithError(err).Warn("Failed to bump comment count")
	}
	return c, nil
}

func (s *Store) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	item, err := s.getItem(ctx, commentPK(id), "METADATA")
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, store.ErrNotFound
	}

	var c models.Comment
	if err := attributevalue.UnmarshalMap(item, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comment: %w", err)
	}
	return &c, nil
}

func (s *Store) ListComments(ctx context.Context, videoID string, limit int) ([]models.Comment, error) {
	items, err := s.scanPrefix(ctx, "COMMENT#")
	if err != nil {
		return nil, err
	}

	var all []models.Comment
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comments: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}

	var out []models.Comment
	for _, c := range all {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	c, err := s.GetComment(ctx, id)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       key(commentPK(id), "METADATA"),
	})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	if _, err := s.addToCounter(ctx, videoPK(c.VideoID), "METADATA", "comment_count", -1); err != nil {
		s.logger.WithError(err).Warn("Failed to drop comment count")
	}
	return nil
}
