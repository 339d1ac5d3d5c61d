package models

import "time"

type Comment struct {
	ID        string    `json:"id" dynamodbav:"id"`
	VideoID   string    `json:"video_id" dynamodbav:"video_id"`
	AuthorID  string    `json:"author_id" dynamodbav:"author_id"`
	Text      string    `json:"text" dynamodbav:"text"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}
