package models

import "time"

// ReportReason enumerates the accepted report categories.
const (
	ReportReasonSpam     = "spam"
	ReportReasonAbuse    = "abuse"
	ReportReasonNudity   = "nudity"
	ReportReasonViolence = "violence"
	ReportReasonOther    = "other"
)

type Report struct {
	ID         string    `json:"id" dynamodbav:"id"`
	VideoID    string    `json:"video_id" dynamodbav:"video_id"`
	ReporterID string    `json:"reporter_id" dynamodbav:"reporter_id"`
	Reason     string    `json:"reason" dynamodbav:"reason"`
	Details    string    `json:"details,omitempty" dynamodbav:"details,omitempty"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
}
