package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SwipeService validates and records swipes. PASS swipes it persists
// itself; LIKE swipes are handed to the MatchService so the swipe row
// and any resulting match commit together.
type SwipeService struct {
	Dynamo  *DynamoService
	Profile *ProfileService
	Blocks  *BlockService
	Match   *MatchService
}

// Swipe records a directed swipe from fromUserID to toUserID. The
// validation checks run in a fixed order and each one short-circuits.
func (s *SwipeService) Swipe(ctx context.Context, fromUserID, toUserID, action string) (*SwipeResult, error) {
	if fromUserID == toUserID {
		return nil, ErrCannotSwipeSelf
	}
	if action != models.SwipeActionLike && action != models.SwipeActionPass {
		return nil, ErrInvalidAction
	}

	existing, err := s.getSwipe(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySwiped
	}

	if _, err := s.Profile.GetActiveProfile(ctx, fromUserID); err != nil {
		return nil, err
	}
	if _, err := s.Profile.GetActiveProfile(ctx, toUserID); err != nil {
		return nil, err
	}

	blocked, err := s.Blocks.IsBlockedEitherDirection(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	if action == models.SwipeActionLike {
		return s.Match.CoordinateLike(ctx, fromUserID, toUserID)
	}

	swipe := newSwipe(fromUserID, toUserID, models.SwipeActionPass)
	err = s.Dynamo.PutItemIfAbsent(ctx, models.SwipesTable, swipe, "fromUserId")
	if err != nil {
		if errors.Is(err, ErrConditionalCheckFailed) {
			return nil, ErrAlreadySwiped
		}
		return nil, fmt.Errorf("failed to record pass %s -> %s: %w", fromUserID, toUserID, err)
	}

	log.Printf("✅ %s passed on %s", fromUserID, toUserID)
	return &SwipeResult{Swipe: swipe, Matched: false}, nil
}

// getSwipe reads the directed swipe row, nil when absent.
func (s *SwipeService) getSwipe(ctx context.Context, fromUserID, toUserID string) (map[string]types.AttributeValue, error) {
	key := map[string]types.AttributeValue{
		"fromUserId": &types.AttributeValueMemberS{Value: fromUserID},
		"toUserId":   &types.AttributeValueMemberS{Value: toUserID},
	}
	item, err := s.Dynamo.GetItemConsistent(ctx, models.SwipesTable, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing swipe: %w", err)
	}
	return item, nil
}
