package models

// UserProfile defines the structure for delegate profiles
type UserProfile struct {
	UserID        string `dynamodbav:"id" json:"id"`
	FullName      string `dynamodbav:"full_name,omitempty" json:"full_name,omitempty"`
	Organization  string `dynamodbav:"organization,omitempty" json:"organization,omitempty"`
	JobTitle      string `dynamodbav:"job_title,omitempty" json:"job_title,omitempty"`
	Country       string `dynamodbav:"country,omitempty" json:"country,omitempty"`
	Bio           string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	BadgePhotoKey string `dynamodbav:"badge_photo_key,omitempty" json:"badge_photo_key,omitempty"`
}

// UserSummary is the lightweight profile shape joined into connection listings
// and group validation results
type UserSummary struct {
	UserID       string `json:"id"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization"`
	JobTitle     string `json:"job_title,omitempty"`
	Country      string `json:"country,omitempty"`
}

// UsersTable is the DynamoDB table name for delegate profiles
const UsersTable = "users"
