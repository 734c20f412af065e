package models

type Notification struct {
	UserID          string `dynamodbav:"user_id" json:"user_id"`           // ✅ Partition Key
	CreatedDate     string `dynamodbav:"created_date" json:"created_date"` // ✅ Sort Key
	NotificationID  string `dynamodbav:"id" json:"id"`
	Type            string `dynamodbav:"type" json:"type"`
	Title           string `dynamodbav:"title" json:"title"`
	Body            string `dynamodbav:"body" json:"body"`
	Link            string `dynamodbav:"link,omitempty" json:"link,omitempty"`
	RelatedEntityID string `dynamodbav:"related_entity_id,omitempty" json:"related_entity_id,omitempty"`
	ReadStatus      bool   `dynamodbav:"read_status" json:"read_status"`
}

// NotificationsTable is the DynamoDB table name for in-app notifications
const NotificationsTable = "notifications"
