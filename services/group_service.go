package services

import (
	"context"
	"errors"
	"log"

	"connectping_server/models"
)

// ErrNoRecipients is returned when the cleaned recipient list is empty
var ErrNoRecipients = errors.New("cannot message yourself")

// GroupService pre-checks whether a group meeting request is allowed by
// fanning the connection resolver out over every intended recipient
type GroupService struct {
	Connections *ConnectionService
	Profiles    *UserProfileService
}

// ConnectionCheck is the per-recipient result of a group validation
type ConnectionCheck struct {
	RecipientID  string              `json:"recipient_id"`
	Connected    bool                `json:"connected"`
	ConnectionID string              `json:"connection_id,omitempty"`
	Error        string              `json:"error,omitempty"`
	Profile      *models.UserSummary `json:"profile,omitempty"`
}

type GroupValidation struct {
	AllConnected        bool              `json:"all_connected"`
	ConnectedCount      int               `json:"connected_count"`
	ConnectionChecks    []ConnectionCheck `json:"connection_checks"`
	CanSendGroupMeeting bool              `json:"can_send_group_meeting"`
}

// ValidateGroupConnections checks each recipient independently, preserving
// input order and duplicates. A failed check for one recipient is recorded on
// that entry instead of aborting the batch; unconnected recipients get a
// profile summary attached so the client can show who is blocking the group.
func (s *GroupService) ValidateGroupConnections(ctx context.Context, requesterID string, recipientIDs []string) (*GroupValidation, error) {
	recipients := make([]string, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		if recipientID == requesterID {
			continue
		}
		recipients = append(recipients, recipientID)
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	result := &GroupValidation{
		AllConnected:     true,
		ConnectionChecks: make([]ConnectionCheck, 0, len(recipients)),
	}

	for _, recipientID := range recipients {
		check := ConnectionCheck{RecipientID: recipientID}

		allowed, connection, err := s.Connections.CanDirectMessage(ctx, requesterID, recipientID)
		if err != nil {
			log.Printf("⚠️ Group validation check failed for %s -> %s: %v", requesterID, recipientID, err)
			check.Error = "failed to check connection status"
		} else if allowed {
			check.Connected = true
			check.ConnectionID = connection.ConnectionID
		}

		if !check.Connected {
			result.AllConnected = false
			if summary, err := s.Profiles.GetUserSummary(ctx, recipientID); err == nil && summary != nil {
				check.Profile = summary
			}
		} else {
			result.ConnectedCount++
		}

		result.ConnectionChecks = append(result.ConnectionChecks, check)
	}

	result.CanSendGroupMeeting = result.AllConnected
	return result, nil
}
