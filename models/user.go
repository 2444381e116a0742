package models

// User defines the structure for attendee records
type User struct {
	UserID            string   `dynamodbav:"userId" json:"userId"`
	InsideFair        bool     `dynamodbav:"insideFair" json:"insideFair"`
	LastSeen          string   `dynamodbav:"lastSeen" json:"lastSeen"`
	InterestTags      []string `dynamodbav:"interestTags,omitempty" json:"interestTags,omitempty"`
	FreeTextInterests string   `dynamodbav:"freeTextInterests,omitempty" json:"freeTextInterests,omitempty"`
}

// UsersTable is the DynamoDB table name for attendees
const UsersTable = "Users"
