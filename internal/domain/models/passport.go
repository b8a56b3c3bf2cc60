package models

import "time"

type PassportData struct {
	ID               int64      `json:"id"`
	PassportNumber   string     `json:"passport_number"`
	FullName         string     `json:"full_name"`
	Nationality      string     `json:"nationality"`
	DateOfBirth      string     `json:"date_of_birth"`
	PlaceOfBirth     string     `json:"place_of_birth"`
	DateOfIssue      string     `json:"date_of_issue"`
	DateOfExpiry     string     `json:"date_of_expiry"`
	IssuingAuthority string     `json:"issuing_authority"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}
