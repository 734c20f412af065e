package models

type Connection struct {
	ConnectionID      string `dynamodbav:"id" json:"id"`
	RequesterID       string `dynamodbav:"requester_id" json:"requester_id"` // ✅ Used in GSI
	RecipientID       string `dynamodbav:"recipient_id" json:"recipient_id"` // ✅ Used in GSI
	Status            string `dynamodbav:"status" json:"status"`             // pending, accepted, declined
	ConnectionMessage string `dynamodbav:"connection_message,omitempty" json:"connection_message,omitempty"`
	CreatedDate       string `dynamodbav:"created_date" json:"created_date"`
	UpdatedDate       string `dynamodbav:"updated_date" json:"updated_date"`
}

// ConnectionsTable is the DynamoDB table name for delegate connections
const ConnectionsTable = "delegate_connections"

// GSI names used for the symmetric (either-direction) lookups
const (
	RequesterRecipientIndex = "requester-recipient-index"
	RecipientRequesterIndex = "recipient-requester-index"
)
