package models

import "time"

type Share struct {
	ID        string    `json:"id" dynamodbav:"id"`
	VideoID   string    `json:"video_id" dynamodbav:"video_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}
