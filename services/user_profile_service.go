package services

import (
	"context"
	"fmt"

	"connectping_server/models"
	"connectping_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo DynamoClient
}

// AddUserProfile adds a new delegate profile to DynamoDB
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	err := ups.Dynamo.PutItem(ctx, models.UsersTable, profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a delegate profile by ID. Returns (nil, nil) when
// no profile exists so callers can distinguish not-found from a storage
// failure.
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", userID, err)
	}

	return &profile, nil
}

// GetUserSummary returns the lightweight profile shape joined into connection
// listings and group validation results. Returns (nil, nil) when the profile
// does not exist.
func (ups *UserProfileService) GetUserSummary(ctx context.Context, userID string) (*models.UserSummary, error) {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UsersTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	return &models.UserSummary{
		UserID:       utils.ExtractString(item, "id"),
		FullName:     utils.ExtractString(item, "full_name"),
		Organization: utils.ExtractString(item, "organization"),
		JobTitle:     utils.ExtractString(item, "job_title"),
		Country:      utils.ExtractString(item, "country"),
	}, nil
}

// UpdateUserProfile updates selected fields of an existing delegate profile
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: userID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for k, v := range updates {
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","

		expressionAttributeValues[placeholder] = &types.AttributeValueMemberS{Value: v}
		expressionAttributeNames[attributeName] = k
	}

	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ups.Dynamo.UpdateItem(ctx, models.UsersTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, err
	}

	return &updatedProfile, nil
}

// DeleteUserProfile removes a delegate profile from DynamoDB
func (ups *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: userID},
	}
	return ups.Dynamo.DeleteItem(ctx, models.UsersTable, key)
}
