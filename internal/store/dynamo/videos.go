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

func videoPK(id string) string {
	return "VIDEO#" + id
}

func (s *Store) CreateVideo(ctx context.Context, v models.Video) (models.Video, error) {
	v.ID = uuid.New().String()
	v.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return models.Video{}, fmt.Errorf("failed to marshal video: %w", err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: videoPK(v.ID)}
	item["SK"] = &types.AttributeValueMemberS{Value: "METADATA"}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to store video in DynamoDB")
		return models.Video{}, fmt.Errorf("failed to store video: %w", err)
	}
	return v, nil
}

func (s *Store) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	item, err := s.getItem(ctx, videoPK(id), "METADATA")
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, store.ErrNotFound
	}

	var v models.Video
	if err := attributevalue.UnmarshalMap(item, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video: %w", err)
	}
	return &v, nil
}

func (s *Store) listVideos(ctx context.Context) ([]models.Video, error) {
	items, err := s.scanPrefix(ctx, "VIDEO#")
	if err != nil {
		return nil, err
	}

	var videos []models.Video
	if err := attributevalue.UnmarshalListOfMaps(items, &videos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal videos: %w", err)
	}

	sort.Slice(videos, func(i, j int) bool {
		if !videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].CreatedAt.After(videos[j].CreatedAt)
		}
		return videos[i].ID > videos[j].ID
	})
	return videos, nil
}

func (s *Store) ListFeed(ctx context.Context, f store.FeedFilter) ([]models.Video, string, error) {
	all, err := s.listVideos(ctx)
	if err != nil {
		return nil, "", err
	}

	start := 0
	if f.Cursor != "" {
		for i, v := range all {
			if v.ID == f.Cursor {
				start = i + 1
				break
			}
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	page := all[start:end]

	next := ""
	if end < len(all) && len(page) > 0 {
		next = page[len(page)-1].ID
	}
	return page, next, nil
}

func (s *Store) ListVideosByHashtag(ctx context.Context, tag string, limit int) ([]models.Video, error) {
	all, err := s.listVideos(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}

	var out []models.Video
	for _, v := range all {
		for _, t := range v.Hashtags {
			if t == tag {
				out = append(out, v)
				break
			}
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) TrendingHashtags(ctx context.Context, limit int) ([]models.HashtagCount, error) {
	all, err := s.listVideos(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, v := range all {
		for _, t := range v.Hashtags {
			counts[t]++
		}
	}

	out := make([]models.HashtagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, models.HashtagCount{Tag: tag, Videos: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Videos != out[j].Videos {
			return out[i].Videos > out[j].Videos
		}
		return out[i].Tag < out[j].Tag
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
