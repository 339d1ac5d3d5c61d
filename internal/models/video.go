package models

import "time"

type Video struct {
	ID           string    `json:"id" dynamodbav:"id"`
	AuthorID     string    `json:"author_id" dynamodbav:"author_id"`
	Caption      string    `json:"caption" dynamodbav:"caption"`
	VideoURL     string    `json:"video_url" dynamodbav:"video_url"`
	Hashtags     []string  `json:"hashtags,omitempty" dynamodbav:"hashtags,omitempty"`
	Mentions     []string  `json:"mentions,omitempty" dynamodbav:"mentions,omitempty"`
	LikeCount    int       `json:"like_count" dynamodbav:"like_count"`
	ShareCount   int       `json:"share_count" dynamodbav:"share_count"`
	CommentCount int       `json:"comment_count" dynamodbav:"comment_count"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// HashtagCount is one entry of the trending listing.
type HashtagCount struct {
	Tag    string `json:"tag"`
	Videos int    `json:"videos"`
}
