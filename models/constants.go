package models

// ✅ Connection Statuses
const (
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
	ConnectionStatusDeclined = "declined"
)

// ✅ Message Contexts (direct, meeting)
const (
	MessageContextDirect  = "direct"
	MessageContextMeeting = "meeting"
)

// ✅ Message Types
const (
	MessageTypeText = "text"
)

// ✅ Notification Types
const (
	NotificationTypeConnectionRequest  = "new_connection_request"
	NotificationTypeConnectionAccepted = "connection_accepted"
	NotificationTypeConnectionDeclined = "connection_declined"
	NotificationTypeNewMessage         = "new_message"
)

// ✅ Message body length bounds for direct messages
const (
	MessageMinLength = 1
	MessageMaxLength = 5000
)
