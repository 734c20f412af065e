package models

type ChatMessage struct {
	ConversationID   string `dynamodbav:"conversation_id" json:"conversation_id"` // ✅ Partition Key (pair key)
	CreatedDate      string `dynamodbav:"created_date" json:"created_date"`       // ✅ Sort Key
	MessageID        string `dynamodbav:"id" json:"id"`
	SenderID         string `dynamodbav:"sender_id" json:"sender_id"`
	RecipientID      string `dynamodbav:"recipient_id" json:"recipient_id"`
	Message          string `dynamodbav:"message" json:"message"`
	MessageType      string `dynamodbav:"message_type" json:"message_type"`
	MessageContext   string `dynamodbav:"message_context" json:"message_context"` // direct, meeting
	MeetingRequestID string `dynamodbav:"meeting_request_id,omitempty" json:"meeting_request_id,omitempty"`
	ReadStatus       bool   `dynamodbav:"read_status" json:"read_status"`
}

// ChatMessagesTable is the DynamoDB table name for delegate chat messages
const ChatMessagesTable = "chat_messages"
