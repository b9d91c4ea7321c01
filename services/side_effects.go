package services

import (
	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Builders for the transact items the match coordinator commits. All
// attribute maps are built by hand so the builders cannot fail; the
// attribute names line up with the dynamodbav tags in models.

// putSwipeItem inserts the directed swipe row, guarded so the same
// ordered pair can never be written twice.
func putSwipeItem(swipe *models.Swipe) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(models.SwipesTable),
			Item: map[string]types.AttributeValue{
				"swipeId":    &types.AttributeValueMemberS{Value: swipe.SwipeID},
				"fromUserId": &types.AttributeValueMemberS{Value: swipe.FromUserID},
				"toUserId":   &types.AttributeValueMemberS{Value: swipe.ToUserID},
				"action":     &types.AttributeValueMemberS{Value: swipe.Action},
				"createdAt":  &types.AttributeValueMemberS{Value: swipe.CreatedAt},
			},
			ConditionExpression: aws.String("attribute_not_exists(fromUserId)"),
		},
	}
}

// checkNoReciprocalLikeItem asserts no LIKE exists from toUserID back
// to fromUserID. A reciprocal PASS passes the condition; only a LIKE
// that committed concurrently fails it.
func checkNoReciprocalLikeItem(fromUserID, toUserID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		ConditionCheck: &types.ConditionCheck{
			TableName: aws.String(models.SwipesTable),
			Key: map[string]types.AttributeValue{
				"fromUserId": &types.AttributeValueMemberS{Value: toUserID},
				"toUserId":   &types.AttributeValueMemberS{Value: fromUserID},
			},
			ConditionExpression: aws.String("attribute_not_exists(fromUserId) OR #action <> :like"),
			ExpressionAttributeNames: map[string]string{
				"#action": "action",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":like": &types.AttributeValueMemberS{Value: models.SwipeActionLike},
			},
		},
	}
}

// checkReciprocalLikeItem asserts the reciprocal swipe exists and is a
// LIKE, so a match can only ever commit alongside both directed likes.
func checkReciprocalLikeItem(fromUserID, toUserID string) types.TransactWriteItem {
	return types.TransactWriteItem{
		ConditionCheck: &types.ConditionCheck{
			TableName: aws.String(models.SwipesTable),
			Key: map[string]types.AttributeValue{
				"fromUserId": &types.AttributeValueMemberS{Value: toUserID},
				"toUserId":   &types.AttributeValueMemberS{Value: fromUserID},
			},
			ConditionExpression: aws.String("attribute_exists(fromUserId) AND #action = :like"),
			ExpressionAttributeNames: map[string]string{
				"#action": "action",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":like": &types.AttributeValueMemberS{Value: models.SwipeActionLike},
			},
		},
	}
}

// putMatchItem inserts the canonical match row. The condition is the
// arbiter of the mutual-like race: of two concurrent transactions for
// the same pair, exactly one passes it.
func putMatchItem(match *models.Match) types.TransactWriteItem {
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(models.MatchesTable),
			Item: map[string]types.AttributeValue{
				"matchId":   &types.AttributeValueMemberS{Value: match.MatchID},
				"userAId":   &types.AttributeValueMemberS{Value: match.UserAID},
				"userBId":   &types.AttributeValueMemberS{Value: match.UserBID},
				"createdAt": &types.AttributeValueMemberS{Value: match.CreatedAt},
			},
			ConditionExpression: aws.String("attribute_not_exists(userAId)"),
		},
	}
}

// sideEffectItems builds the one conversation, two participant rows and
// two notifications that ride in the winning match transaction. Only
// the match coordinator calls this, and only for a match it is about to
// insert, so the side effects can never run twice for one match.
func sideEffectItems(match *models.Match, fromUserID, toUserID, now string) []types.TransactWriteItem {
	conversationID := uuid.NewString()

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName: aws.String(models.ConversationsTable),
				Item: map[string]types.AttributeValue{
					"conversationId": &types.AttributeValueMemberS{Value: conversationID},
					"type":           &types.AttributeValueMemberS{Value: models.ConversationTypePrivate},
					"matchId":        &types.AttributeValueMemberS{Value: match.MatchID},
					"createdAt":      &types.AttributeValueMemberS{Value: now},
				},
			},
		},
	}

	for _, userID := range []string{fromUserID, toUserID} {
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(models.ConversationParticipantsTable),
				Item: map[string]types.AttributeValue{
					"conversationId": &types.AttributeValueMemberS{Value: conversationID},
					"userId":         &types.AttributeValueMemberS{Value: userID},
					"joinedAt":       &types.AttributeValueMemberS{Value: now},
				},
			},
		})
	}

	// One notification per direction
	pairs := [][2]string{{fromUserID, toUserID}, {toUserID, fromUserID}}
	for _, pair := range pairs {
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(models.NotificationsTable),
				Item: map[string]types.AttributeValue{
					"notificationId": &types.AttributeValueMemberS{Value: uuid.NewString()},
					"receiverId":     &types.AttributeValueMemberS{Value: pair[1]},
					"senderId":       &types.AttributeValueMemberS{Value: pair[0]},
					"type":           &types.AttributeValueMemberS{Value: models.NotificationTypeMatchCreated},
					"referenceId":    &types.AttributeValueMemberS{Value: match.MatchID},
					"createdAt":      &types.AttributeValueMemberS{Value: now},
				},
			},
		})
	}

	return items
}
