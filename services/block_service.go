package services

import (
	"context"
	"fmt"

	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// BlockService answers block-relationship questions. Blocks are managed
// by the moderation side of the platform; here they are read-only.
type BlockService struct {
	Dynamo *DynamoService
}

// IsBlockedEitherDirection reports whether userID1 blocked userID2 or
// the other way around.
func (bs *BlockService) IsBlockedEitherDirection(ctx context.Context, userID1, userID2 string) (bool, error) {
	blocked, err := bs.exists(ctx, userID1, userID2)
	if err != nil {
		return false, err
	}
	if blocked {
		return true, nil
	}
	return bs.exists(ctx, userID2, userID1)
}

// BlockedUserIDs returns every user in a block relationship with
// userID, in either direction. Used to build discovery exclusions.
func (bs *BlockService) BlockedUserIDs(ctx context.Context, userID string) (map[string]bool, error) {
	blocked := make(map[string]bool)

	// Users this user blocked
	keyCondition := "blockerId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}
	items, err := bs.Dynamo.QueryItems(ctx, models.BlocksTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}
	for _, item := range items {
		var block models.Block
		if err := attributevalue.UnmarshalMap(item, &block); err != nil {
			continue
		}
		blocked[block.BlockedUserID] = true
	}

	// Users who blocked this user
	reverseCondition := "blockedUserId = :userId"
	items, err = bs.Dynamo.QueryItemsWithIndex(ctx, models.BlocksTable, models.BlockedUserIDIndex, reverseCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reverse blocks: %w", err)
	}
	for _, item := range items {
		var block models.Block
		if err := attributevalue.UnmarshalMap(item, &block); err != nil {
			continue
		}
		blocked[block.BlockerID] = true
	}

	return blocked, nil
}

func (bs *BlockService) exists(ctx context.Context, blockerID, blockedUserID string) (bool, error) {
	key := map[string]types.AttributeValue{
		"blockerId":     &types.AttributeValueMemberS{Value: blockerID},
		"blockedUserId": &types.AttributeValueMemberS{Value: blockedUserID},
	}
	item, err := bs.Dynamo.GetItem(ctx, models.BlocksTable, key)
	if err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return item != nil, nil
}
