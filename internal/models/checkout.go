package models

import "time"

// CheckoutStatus values for a checkout session. No payment gateway is
// wired; sessions stay pending.
const (
	CheckoutStatusPending = "pending"
)

type CheckoutSession struct {
	ID          string    `json:"id" dynamodbav:"id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	AmountCents int64     `json:"amount_cents" dynamodbav:"amount_cents"`
	Currency    string    `json:"currency" dynamodbav:"currency"`
	Description string    `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}
