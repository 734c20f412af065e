package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"connectping_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

var (
	ErrNotConnected         = errors.New("users must be connected to exchange direct messages")
	ErrInvalidMessageLength = errors.New("message must be between 1 and 5000 characters")
)

// sortableTimeLayout is a fixed-width RFC3339 variant. created_date is a
// DynamoDB sort key, so the rendered strings must sort lexicographically;
// RFC3339Nano trims trailing zeros and does not.
const sortableTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type MessageService struct {
	Dynamo        DynamoClient
	Connections   *ConnectionService
	Profiles      *UserProfileService
	Notifications *NotificationService
}

// DirectMessageView is a stored message joined with both parties' names
type DirectMessageView struct {
	models.ChatMessage
	SenderName    string `json:"sender_name,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
}

// DirectThread is the result of fetching a conversation
type DirectThread struct {
	Messages    []models.ChatMessage `json:"messages"`
	TotalCount  int                  `json:"total_count"`
	UnreadCount int                  `json:"unread_count"`
}

// ConversationID builds the canonical pair key for two delegates, so both
// directions of a conversation land in the same partition
func ConversationID(userID, otherUserID string) string {
	if userID < otherUserID {
		return userID + "#" + otherUserID
	}
	return otherUserID + "#" + userID
}

// SendDirectMessage stores a direct message after checking the connection
// gate. The accepted-connection check happens at write time; there is no
// stored constraint behind it.
func (s *MessageService) SendDirectMessage(ctx context.Context, senderID, recipientID, body string) (*DirectMessageView, error) {
	if senderID == recipientID {
		return nil, ErrSameUser
	}
	if len(body) < models.MessageMinLength || len(body) > models.MessageMaxLength {
		return nil, ErrInvalidMessageLength
	}

	allowed, _, err := s.Connections.CanDirectMessage(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotConnected
	}

	message := models.ChatMessage{
		ConversationID: ConversationID(senderID, recipientID),
		CreatedDate:    time.Now().UTC().Format(sortableTimeLayout),
		MessageID:      uuid.New().String(),
		SenderID:       senderID,
		RecipientID:    recipientID,
		Message:        body,
		MessageType:    models.MessageTypeText,
		MessageContext: models.MessageContextDirect,
		ReadStatus:     false,
	}

	if err := s.Dynamo.PutItem(ctx, models.ChatMessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	log.Printf("📩 Direct message stored: %s -> %s (%s)", senderID, recipientID, message.MessageID)

	view := &DirectMessageView{ChatMessage: message}
	if profile, err := s.Profiles.GetUserProfile(ctx, senderID); err == nil && profile != nil {
		view.SenderName = profile.FullName
	}
	if profile, err := s.Profiles.GetUserProfile(ctx, recipientID); err == nil && profile != nil {
		view.RecipientName = profile.FullName
	}

	s.Notifications.Dispatch(models.Notification{
		UserID:          recipientID,
		Type:            models.NotificationTypeNewMessage,
		Title:           "New message",
		Body:            view.SenderName + " sent you a message",
		Link:            "/messages/" + senderID,
		RelatedEntityID: message.MessageID,
	})

	return view, nil
}

// GetDirectMessages returns the direct conversation between viewer and other,
// oldest first. Every unread message addressed to the viewer is flipped to
// read in a single transactional write as part of the fetch, so concurrent
// fetches never observe a partially-read thread.
func (s *MessageService) GetDirectMessages(ctx context.Context, viewerID, otherUserID string) (*DirectThread, error) {
	if viewerID == otherUserID {
		return nil, ErrSameUser
	}

	allowed, _, err := s.Connections.CanDirectMessage(ctx, viewerID, otherUserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrNotConnected
	}

	keyCondition := "conversation_id = :conversation"
	expressionValues := map[string]types.AttributeValue{
		":conversation": &types.AttributeValueMemberS{Value: ConversationID(viewerID, otherUserID)},
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.ChatMessagesTable, keyCondition, expressionValues, nil, 0, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var all []models.ChatMessage
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	// Meeting-context messages share the pair partition but do not belong to
	// the direct thread
	messages := []models.ChatMessage{}
	for _, message := range all {
		if message.MessageContext == models.MessageContextDirect {
			messages = append(messages, message)
		}
	}

	var writeItems []types.TransactWriteItem
	unreadCount := 0
	for i, message := range messages {
		if message.RecipientID != viewerID || message.ReadStatus {
			continue
		}
		unreadCount++
		writeItems = append(writeItems, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(models.ChatMessagesTable),
				Key: map[string]types.AttributeValue{
					"conversation_id": &types.AttributeValueMemberS{Value: message.ConversationID},
					"created_date":    &types.AttributeValueMemberS{Value: message.CreatedDate},
				},
				UpdateExpression: aws.String("SET read_status = :read"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":read": &types.AttributeValueMemberBOOL{Value: true},
				},
			},
		})
		messages[i].ReadStatus = true
	}

	if len(writeItems) > 0 {
		if err := s.Dynamo.TransactWriteItems(ctx, writeItems); err != nil {
			return nil, fmt.Errorf("failed to mark messages as read: %w", err)
		}
		log.Printf("✅ Marked %d messages as read for %s in conversation with %s", unreadCount, viewerID, otherUserID)
	}

	return &DirectThread{
		Messages:    messages,
		TotalCount:  len(messages),
		UnreadCount: unreadCount,
	}, nil
}
