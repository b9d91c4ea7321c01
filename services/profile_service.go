package services

import (
	"context"
	"fmt"

	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileService reads user profiles. Profile creation and editing live
// in another service; the matchmaking side only consumes them.
type ProfileService struct {
	Dynamo *DynamoService
}

// GetProfile retrieves a user profile by ID. Returns (nil, nil) when no
// profile exists.
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ps.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// GetActiveProfile retrieves a profile and requires it to be active.
// Missing or deactivated profiles yield ErrProfileNotFound.
func (ps *ProfileService) GetActiveProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := ps.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsActive {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}
