package services

import (
	"context"
	"log"
	"time"

	"connectping_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// NotificationService creates in-app notification records. Delivery is
// advisory: a failed insert is logged and swallowed so the triggering
// operation succeeds or fails on its own.
type NotificationService struct {
	Dynamo DynamoClient
}

// Emit stores a notification record. Never returns an error to the caller.
func (s *NotificationService) Emit(ctx context.Context, notification models.Notification) {
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.New().String()
	}
	if notification.CreatedDate == "" {
		notification.CreatedDate = time.Now().UTC().Format(sortableTimeLayout)
	}

	if err := s.Dynamo.PutItem(ctx, models.NotificationsTable, notification); err != nil {
		log.Printf("⚠️ Failed to store %s notification for %s: %v", notification.Type, notification.UserID, err)
		return
	}

	log.Printf("🔔 Notification stored for %s (%s)", notification.UserID, notification.Type)
}

// Dispatch emits a notification on a detached goroutine so the parent
// operation never blocks on it. Uses a background context because the
// request context may already be cancelled by the time the insert runs.
func (s *NotificationService) Dispatch(notification models.Notification) {
	go s.Emit(context.Background(), notification)
}

// ListNotifications returns a delegate's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID string, limit int32) ([]models.Notification, error) {
	keyCondition := "user_id = :user"
	expressionValues := map[string]types.AttributeValue{
		":user": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.NotificationsTable, keyCondition, expressionValues, nil, limit, false)
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(items))
	for _, item := range items {
		var notification models.Notification
		if err := attributevalue.UnmarshalMap(item, &notification); err != nil {
			log.Printf("⚠️ Skipping malformed notification row: %v", err)
			continue
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

// MarkNotificationRead flips a single notification's read flag
func (s *NotificationService) MarkNotificationRead(ctx context.Context, userID, createdDate string) error {
	key := map[string]types.AttributeValue{
		"user_id":      &types.AttributeValueMemberS{Value: userID},
		"created_date": &types.AttributeValueMemberS{Value: createdDate},
	}
	updateExpression := "SET read_status = :read"
	expressionValues := map[string]types.AttributeValue{
		":read": &types.AttributeValueMemberBOOL{Value: true},
	}

	_, err := s.Dynamo.UpdateItem(ctx, models.NotificationsTable, updateExpression, key, expressionValues, nil)
	return err
}
