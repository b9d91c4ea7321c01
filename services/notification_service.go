package services

import (
	"context"
	"fmt"
	"sort"

	"kindler_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// NotificationService reads back persisted notifications. Creation
// happens only inside the match transaction; delivery to devices is
// another system's job.
type NotificationService struct {
	Dynamo *DynamoService
}

// GetNotifications returns a user's notifications, newest first.
func (ns *NotificationService) GetNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	keyCondition := "receiverId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}
	items, err := ns.Dynamo.QueryItems(ctx, models.NotificationsTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	notifications := []models.Notification{}
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notifications: %w", err)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})
	return notifications, nil
}
