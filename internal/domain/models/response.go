package models

import "time"

// Response is one answered /ask question.
type Response struct {
	ID              int64     `json:"id"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	ConfidenceScore *float64  `json:"confidence_score"`
	ErrorMessage    *string   `json:"error_message"`
	UserID          string    `json:"user_id,omitempty"`
	SessionID       string    `json:"session_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ResponseFilter struct {
	Skip      int
	Limit     int
	UserID    string
	SessionID string
}
