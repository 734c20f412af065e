package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"connectping_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Connection lifecycle errors surfaced to the HTTP layer. Conflict cases keep
// distinct messages so the client can tell "already connected" from "request
// already pending".
var (
	ErrSameUser           = errors.New("cannot perform this action on yourself")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyConnected   = errors.New("users are already connected")
	ErrRequestPending     = errors.New("a connection request is already pending")
	ErrConnectionNotFound = errors.New("connection request not found")
	ErrInvalidDecision    = errors.New("decision must be 'accepted' or 'declined'")
	ErrNotPending         = errors.New("connection request is no longer pending")
)

type ConnectionService struct {
	Dynamo        DynamoClient
	Profiles      *UserProfileService
	Notifications *NotificationService
}

// FindConnectionBetween looks up the connection row for an unordered pair by
// querying both directions of the requester/recipient GSIs. At most one row
// is expected per pair; extras are logged and the first one wins.
func (s *ConnectionService) FindConnectionBetween(ctx context.Context, userID, otherUserID string) (*models.Connection, error) {
	if userID == otherUserID {
		return nil, ErrSameUser
	}

	forward, err := s.queryDirected(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	reverse, err := s.queryDirected(ctx, otherUserID, userID)
	if err != nil {
		return nil, err
	}

	matches := append(forward, reverse...)
	if len(matches) == 0 {
		return nil, nil
	}
	if len(matches) > 1 {
		log.Printf("⚠️ Found %d connection rows between %s and %s, expected at most 1", len(matches), userID, otherUserID)
	}

	return &matches[0], nil
}

// CanDirectMessage is the single authoritative accepted-status check. Every
// gated path (message send, message fetch, permission endpoint, group
// validation) goes through here.
func (s *ConnectionService) CanDirectMessage(ctx context.Context, userID, otherUserID string) (bool, *models.Connection, error) {
	connection, err := s.FindConnectionBetween(ctx, userID, otherUserID)
	if err != nil {
		return false, nil, err
	}
	if connection == nil || connection.Status != models.ConnectionStatusAccepted {
		return false, nil, nil
	}
	return true, connection, nil
}

// SendConnectionRequest creates a fresh pending request from requester to
// recipient. A declined row between the pair is deleted first so the pair can
// start over; a pending or accepted row is a conflict.
func (s *ConnectionService) SendConnectionRequest(ctx context.Context, requesterID, recipientID, message string) (*models.Connection, error) {
	if requesterID == recipientID {
		return nil, ErrSameUser
	}

	requesterProfile, err := s.Profiles.GetUserProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requesterProfile == nil {
		return nil, fmt.Errorf("requester %s: %w", requesterID, ErrUserNotFound)
	}

	recipientProfile, err := s.Profiles.GetUserProfile(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipientProfile == nil {
		return nil, fmt.Errorf("recipient %s: %w", recipientID, ErrUserNotFound)
	}

	existing, err := s.FindConnectionBetween(ctx, requesterID, recipientID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.ConnectionStatusAccepted:
			return nil, ErrAlreadyConnected
		case models.ConnectionStatusPending:
			return nil, ErrRequestPending
		case models.ConnectionStatusDeclined:
			// Re-requesting after a decline resets the pair: drop the old row
			// and fall through to a fresh pending insert.
			key := map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: existing.ConnectionID},
			}
			if err := s.Dynamo.DeleteItem(ctx, models.ConnectionsTable, key); err != nil {
				return nil, err
			}
			log.Printf("🔄 Cleared declined connection %s between %s and %s", existing.ConnectionID, requesterID, recipientID)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	connection := models.Connection{
		ConnectionID:      uuid.New().String(),
		RequesterID:       requesterID,
		RecipientID:       recipientID,
		Status:            models.ConnectionStatusPending,
		ConnectionMessage: message,
		CreatedDate:       now,
		UpdatedDate:       now,
	}

	if err := s.Dynamo.PutItem(ctx, models.ConnectionsTable, connection); err != nil {
		return nil, err
	}

	log.Printf("✅ Connection request created: %s -> %s (%s)", requesterID, recipientID, connection.ConnectionID)

	s.Notifications.Dispatch(models.Notification{
		UserID:          recipientID,
		Type:            models.NotificationTypeConnectionRequest,
		Title:           "New connection request",
		Body:            requesterProfile.FullName + " would like to connect with you",
		Link:            "/delegates/" + requesterID,
		RelatedEntityID: connection.ConnectionID,
	})

	return &connection, nil
}

// RespondToConnectionRequest moves a pending request to accepted or declined.
func (s *ConnectionService) RespondToConnectionRequest(ctx context.Context, connectionID, decision string) (*models.Connection, error) {
	if decision != models.ConnectionStatusAccepted && decision != models.ConnectionStatusDeclined {
		return nil, ErrInvalidDecision
	}

	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: connectionID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.ConnectionsTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrConnectionNotFound
	}

	var connection models.Connection
	if err := attributevalue.UnmarshalMap(item, &connection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connection %s: %w", connectionID, err)
	}

	if connection.Status != models.ConnectionStatusPending {
		return nil, ErrNotPending
	}

	now := time.Now().UTC().Format(time.RFC3339)
	updateExpression := "SET #s = :status, updated_date = :updated"
	expressionValues := map[string]types.AttributeValue{
		":status":  &types.AttributeValueMemberS{Value: decision},
		":updated": &types.AttributeValueMemberS{Value: now},
	}
	expressionNames := map[string]string{
		"#s": "status",
	}

	if _, err := s.Dynamo.UpdateItem(ctx, models.ConnectionsTable, updateExpression, key, expressionValues, expressionNames); err != nil {
		return nil, err
	}

	connection.Status = decision
	connection.UpdatedDate = now

	log.Printf("✅ Connection %s %s by %s", connectionID, decision, connection.RecipientID)

	notificationType := models.NotificationTypeConnectionAccepted
	title := "Connection request accepted"
	if decision == models.ConnectionStatusDeclined {
		notificationType = models.NotificationTypeConnectionDeclined
		title = "Connection request declined"
	}

	responderName := connection.RecipientID
	if profile, err := s.Profiles.GetUserProfile(ctx, connection.RecipientID); err == nil && profile != nil {
		responderName = profile.FullName
	}

	s.Notifications.Dispatch(models.Notification{
		UserID:          connection.RequesterID,
		Type:            notificationType,
		Title:           title,
		Body:            responderName + " has " + decision + " your connection request",
		Link:            "/delegates/" + connection.RecipientID,
		RelatedEntityID: connection.ConnectionID,
	})

	return &connection, nil
}

// ConnectionWithProfile pairs a connection row with the other party's summary
type ConnectionWithProfile struct {
	models.Connection
	OtherUser *models.UserSummary `json:"other_user,omitempty"`
}

// ConnectionListing groups a delegate's connections by state
type ConnectionListing struct {
	PendingSent     []ConnectionWithProfile `json:"pending_sent"`
	PendingReceived []ConnectionWithProfile `json:"pending_received"`
	Accepted        []ConnectionWithProfile `json:"accepted"`
	Declined        []ConnectionWithProfile `json:"declined"`
	All             []ConnectionWithProfile `json:"all"`
}

// ListConnectionsForUser fetches every connection row where the user is
// requester or recipient and groups them, joining the other party's profile
// summary. A missing profile does not drop the row.
func (s *ConnectionService) ListConnectionsForUser(ctx context.Context, userID string) (*ConnectionListing, error) {
	sent, err := s.queryByIndex(ctx, models.RequesterRecipientIndex, "requester_id = :user", userID)
	if err != nil {
		return nil, err
	}
	received, err := s.queryByIndex(ctx, models.RecipientRequesterIndex, "recipient_id = :user", userID)
	if err != nil {
		return nil, err
	}

	listing := &ConnectionListing{
		PendingSent:     []ConnectionWithProfile{},
		PendingReceived: []ConnectionWithProfile{},
		Accepted:        []ConnectionWithProfile{},
		Declined:        []ConnectionWithProfile{},
		All:             []ConnectionWithProfile{},
	}

	for _, connection := range append(sent, received...) {
		otherID := connection.RecipientID
		if connection.RecipientID == userID {
			otherID = connection.RequesterID
		}

		entry := ConnectionWithProfile{Connection: connection}
		if summary, err := s.Profiles.GetUserSummary(ctx, otherID); err == nil && summary != nil {
			entry.OtherUser = summary
		} else if err != nil {
			log.Printf("⚠️ Failed to join profile %s into connection listing: %v", otherID, err)
		}

		switch {
		case connection.Status == models.ConnectionStatusPending && connection.RequesterID == userID:
			listing.PendingSent = append(listing.PendingSent, entry)
		case connection.Status == models.ConnectionStatusPending:
			listing.PendingReceived = append(listing.PendingReceived, entry)
		case connection.Status == models.ConnectionStatusAccepted:
			listing.Accepted = append(listing.Accepted, entry)
		case connection.Status == models.ConnectionStatusDeclined:
			listing.Declined = append(listing.Declined, entry)
		}
		listing.All = append(listing.All, entry)
	}

	return listing, nil
}

///// 🔹🔹🔹 Helper Methods 🔹🔹🔹 /////

// queryDirected fetches connection rows with an exact requester -> recipient
// direction via the requester GSI
func (s *ConnectionService) queryDirected(ctx context.Context, requesterID, recipientID string) ([]models.Connection, error) {
	keyCondition := "requester_id = :requester AND recipient_id = :recipient"
	expressionValues := map[string]types.AttributeValue{
		":requester": &types.AttributeValueMemberS{Value: requesterID},
		":recipient": &types.AttributeValueMemberS{Value: recipientID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ConnectionsTable, models.RequesterRecipientIndex, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, err
	}

	var connections []models.Connection
	if err := attributevalue.UnmarshalListOfMaps(items, &connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	return connections, nil
}

func (s *ConnectionService) queryByIndex(ctx context.Context, indexName, keyCondition, userID string) ([]models.Connection, error) {
	expressionValues := map[string]types.AttributeValue{
		":user": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.ConnectionsTable, indexName, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, err
	}

	var connections []models.Connection
	if err := attributevalue.UnmarshalListOfMaps(items, &connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	return connections, nil
}
