package models

import "time"

// User is keyed by phone number. It is created on first successful OTP
// verification and timestamp-touched on every one after that.
type User struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Name      string    `json:"name,omitempty" dynamodbav:"name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" dynamodbav:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}
